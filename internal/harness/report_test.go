package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dstokesj/loginbench/internal/models"
)

func reportRun() *models.TestRun {
	finished := time.Now().UTC()
	return &models.TestRun{
		ID:         "run-1",
		TargetURL:  "http://127.0.0.1:3000",
		Outcome:    models.RunOutcomeSomeFailed,
		StartedAt:  finished.Add(-3 * time.Second),
		FinishedAt: &finished,

		ScenariosTotal:  2,
		ScenariosPassed: 1,
		ScenariosFailed: 1,
		Results: []models.ScenarioResult{
			{Name: "Successful login", Status: models.ScenarioPassed, Duration: 1200 * time.Millisecond},
			{Name: "Failed login", Status: models.ScenarioFailed, Detail: "#status-message: text mismatch", Duration: 900 * time.Millisecond},
		},
	}
}

func TestFormatReport(t *testing.T) {
	report := FormatReport(reportRun())

	assert.Contains(t, report, "## Frontend Test Results")
	assert.Contains(t, report, "http://127.0.0.1:3000")
	assert.Contains(t, report, "✅ **Successful login**")
	assert.Contains(t, report, "❌ **Failed login**")
	assert.Contains(t, report, "#status-message: text mismatch")
	assert.Contains(t, report, "1 of 2 scenarios passed, 1 failed.")
}

func TestFormatReportSkipped(t *testing.T) {
	run := &models.TestRun{
		ID:        "run-2",
		TargetURL: "http://127.0.0.1:3000",
		Outcome:   models.RunOutcomeSkipped,
		StartedAt: time.Now().UTC(),
	}

	report := FormatReport(run)
	assert.Contains(t, report, "testing skipped")
	assert.NotContains(t, report, "✅")
}

func TestSummary(t *testing.T) {
	testCases := map[string]struct {
		outcome models.RunOutcome
		want    string
	}{
		"all passed":  {models.RunOutcomeAllPassed, "All 2 scenarios passed."},
		"all failed":  {models.RunOutcomeAllFailed, "All 2 scenarios failed."},
		"some failed": {models.RunOutcomeSomeFailed, "1 of 2 scenarios passed, 1 failed."},
		"skipped":     {models.RunOutcomeSkipped, "Testing skipped: no scenarios."},
		"error":       {models.RunOutcomeError, "Run ended with an error."},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			run := reportRun()
			run.Outcome = tc.outcome
			assert.Equal(t, tc.want, Summary(run))
		})
	}
}
