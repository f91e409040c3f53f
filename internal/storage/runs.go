// Package storage persists harness run history to SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dstokesj/loginbench/internal/models"
)

// CreateRun inserts a new test run record
func CreateRun(db *sql.DB, run *models.TestRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}

	query := `
		INSERT INTO runs (
			id, target_url, outcome, started_at, finished_at,
			scenarios_total, scenarios_passed, scenarios_failed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		run.ID, run.TargetURL, run.Outcome, run.StartedAt, run.FinishedAt,
		run.ScenariosTotal, run.ScenariosPassed, run.ScenariosFailed,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun updates a run with its final outcome and counts
func FinishRun(db *sql.DB, run *models.TestRun) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}

	query := `
		UPDATE runs
		SET outcome = ?, finished_at = ?,
		    scenarios_total = ?, scenarios_passed = ?, scenarios_failed = ?
		WHERE id = ?
	`

	result, err := db.Exec(query,
		run.Outcome, run.FinishedAt,
		run.ScenariosTotal, run.ScenariosPassed, run.ScenariosFailed,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("run not found: %s", run.ID)
	}

	return nil
}

// SaveScenarioResult appends one scenario result to a run
func SaveScenarioResult(db *sql.DB, runID string, res *models.ScenarioResult) error {
	if res.Name == "" {
		return fmt.Errorf("scenario result name is required")
	}
	if res.Status != models.ScenarioPassed && res.Status != models.ScenarioFailed {
		return fmt.Errorf("invalid scenario status: %s", res.Status)
	}

	query := `
		INSERT INTO scenario_results (run_id, name, status, detail, duration_ms)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, runID, res.Name, res.Status, res.Detail, res.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to save scenario result: %w", err)
	}

	return nil
}

// SaveRun persists a finished run together with its scenario results
func SaveRun(db *sql.DB, run *models.TestRun) error {
	if err := CreateRun(db, run); err != nil {
		return err
	}
	for i := range run.Results {
		if err := SaveScenarioResult(db, run.ID, &run.Results[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns the most recent runs, newest first
func ListRuns(db *sql.DB, limit int) ([]models.TestRun, error) {
	if limit < 1 {
		limit = 20
	}

	query := `
		SELECT id, target_url, outcome, started_at, finished_at,
		       scenarios_total, scenarios_passed, scenarios_failed
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.TestRun
	for rows.Next() {
		var run models.TestRun
		var targetURL sql.NullString
		var finishedAt sql.NullTime

		if err := rows.Scan(
			&run.ID, &targetURL, &run.Outcome, &run.StartedAt, &finishedAt,
			&run.ScenariosTotal, &run.ScenariosPassed, &run.ScenariosFailed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.TargetURL = targetURL.String
		if finishedAt.Valid {
			t := finishedAt.Time
			run.FinishedAt = &t
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// GetRunResults returns the scenario results recorded for a run
func GetRunResults(db *sql.DB, runID string) ([]models.ScenarioResult, error) {
	query := `
		SELECT name, status, detail, duration_ms
		FROM scenario_results
		WHERE run_id = ?
		ORDER BY id
	`

	rows, err := db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenario results: %w", err)
	}
	defer rows.Close()

	var results []models.ScenarioResult
	for rows.Next() {
		var res models.ScenarioResult
		var detail sql.NullString
		var durationMs int64

		if err := rows.Scan(&res.Name, &res.Status, &detail, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan scenario result: %w", err)
		}

		res.Detail = detail.String
		res.Duration = time.Duration(durationMs) * time.Millisecond

		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scenario results: %w", err)
	}

	return results, nil
}
