package models

import (
	"fmt"
	"time"
)

// RunOutcome represents the aggregate result of one harness run
type RunOutcome string

const (
	RunOutcomeAllPassed  RunOutcome = "all_passed"
	RunOutcomeSomeFailed RunOutcome = "some_failed"
	RunOutcomeAllFailed  RunOutcome = "all_failed"
	RunOutcomeSkipped    RunOutcome = "skipped"
	RunOutcomeError      RunOutcome = "error"
)

// ScenarioStatus represents the result of a single scenario
type ScenarioStatus string

const (
	ScenarioPassed ScenarioStatus = "passed"
	ScenarioFailed ScenarioStatus = "failed"
)

// ScenarioResult records the outcome of one executed scenario
type ScenarioResult struct {
	Name     string         `json:"name" db:"name"`
	Status   ScenarioStatus `json:"status" db:"status"`
	Detail   string         `json:"detail,omitempty" db:"detail"`
	Duration time.Duration  `json:"duration" db:"duration_ms"`
}

// TestRun records one harness run against the fixture
type TestRun struct {
	ID              string           `json:"id" db:"id"`
	TargetURL       string           `json:"target_url" db:"target_url"`
	Outcome         RunOutcome       `json:"outcome" db:"outcome"`
	StartedAt       time.Time        `json:"started_at" db:"started_at"`
	FinishedAt      *time.Time       `json:"finished_at,omitempty" db:"finished_at"`
	ScenariosTotal  int              `json:"scenarios_total" db:"scenarios_total"`
	ScenariosPassed int              `json:"scenarios_passed" db:"scenarios_passed"`
	ScenariosFailed int              `json:"scenarios_failed" db:"scenarios_failed"`
	Results         []ScenarioResult `json:"results,omitempty" db:"-"`
}

// Validate checks if the run fields are consistent
func (r *TestRun) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}

	switch r.Outcome {
	case RunOutcomeAllPassed, RunOutcomeSomeFailed, RunOutcomeAllFailed, RunOutcomeSkipped, RunOutcomeError:
	default:
		return fmt.Errorf("invalid run outcome: %s", r.Outcome)
	}

	if r.ScenariosTotal < 0 || r.ScenariosPassed < 0 || r.ScenariosFailed < 0 {
		return fmt.Errorf("scenario counts must be non-negative")
	}

	if r.ScenariosPassed+r.ScenariosFailed > r.ScenariosTotal {
		return fmt.Errorf("passed+failed cannot exceed total")
	}

	return nil
}

// IsFinished reports whether the run has completed
func (r *TestRun) IsFinished() bool {
	return r.FinishedAt != nil
}

// Passed reports whether every scenario in the run passed
func (r *TestRun) Passed() bool {
	return r.Outcome == RunOutcomeAllPassed
}
