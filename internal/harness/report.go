package harness

import (
	"fmt"
	"strings"
	"time"

	"github.com/dstokesj/loginbench/internal/models"
)

// FormatReport renders a markdown summary of a finished run.
func FormatReport(run *models.TestRun) string {
	var b strings.Builder

	b.WriteString("## Frontend Test Results\n\n")
	b.WriteString(fmt.Sprintf("**Target:** %s\n", run.TargetURL))
	b.WriteString(fmt.Sprintf("**Run:** `%s`\n\n", run.ID))

	if run.Outcome == models.RunOutcomeSkipped {
		b.WriteString("No scenarios to run - testing skipped.\n")
		return b.String()
	}

	for _, res := range run.Results {
		mark := "✅"
		if res.Status == models.ScenarioFailed {
			mark = "❌"
		}
		b.WriteString(fmt.Sprintf("- %s **%s** (%s)\n", mark, res.Name, res.Duration.Round(time.Millisecond)))
		if res.Detail != "" {
			b.WriteString(fmt.Sprintf("  - %s\n", res.Detail))
		}
	}

	b.WriteString(fmt.Sprintf("\n%s\n", Summary(run)))
	return b.String()
}

// Summary returns a one-line statement of the run outcome.
func Summary(run *models.TestRun) string {
	switch run.Outcome {
	case models.RunOutcomeAllPassed:
		return fmt.Sprintf("All %d scenarios passed.", run.ScenariosTotal)
	case models.RunOutcomeAllFailed:
		return fmt.Sprintf("All %d scenarios failed.", run.ScenariosTotal)
	case models.RunOutcomeSomeFailed:
		return fmt.Sprintf("%d of %d scenarios passed, %d failed.",
			run.ScenariosPassed, run.ScenariosTotal, run.ScenariosFailed)
	case models.RunOutcomeSkipped:
		return "Testing skipped: no scenarios."
	default:
		return "Run ended with an error."
	}
}
