package harness

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dstokesj/loginbench/internal/config"
	"github.com/dstokesj/loginbench/internal/models"
	"github.com/dstokesj/loginbench/internal/storage"
)

// Runner enumerates scenarios, executes them through a driver and records
// the aggregated run.
type Runner struct {
	enumerator Enumerator // nil means offline: built-in scenarios only
	driver     Driver
	db         *sql.DB // nil disables persistence
	logger     *zap.Logger
	cfg        *config.Config
}

func NewRunner(enumerator Enumerator, driver Driver, db *sql.DB, logger *zap.Logger, cfg *config.Config) *Runner {
	return &Runner{
		enumerator: enumerator,
		driver:     driver,
		db:         db,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run executes a full test run against baseURL and returns the recorded run.
// Enumeration failures fall back to the built-in scenarios rather than
// aborting the run.
func (r *Runner) Run(ctx context.Context, baseURL, description string) (*models.TestRun, error) {
	run := &models.TestRun{
		ID:        uuid.New().String(),
		TargetURL: baseURL,
		StartedAt: time.Now().UTC(),
	}

	scenarios := r.scenarios(ctx, description)
	if max := r.cfg.Harness.MaxScenarios; max > 0 && len(scenarios) > max {
		r.logger.Warn("capping scenario list",
			zap.Int("enumerated", len(scenarios)),
			zap.Int("max", max))
		scenarios = scenarios[:max]
	}

	run.ScenariosTotal = len(scenarios)
	if len(scenarios) == 0 {
		run.Outcome = models.RunOutcomeSkipped
		r.finish(run)
		return run, r.persist(run)
	}

	for _, sc := range scenarios {
		result, fault := r.runScenario(ctx, baseURL, sc)
		run.Results = append(run.Results, result)
		if result.Status == models.ScenarioPassed {
			run.ScenariosPassed++
		} else {
			run.ScenariosFailed++
		}

		// A harness fault is not a verdict on the page; abort the run
		// and record it as errored rather than failed.
		if fault != nil {
			r.logger.Error("run aborted", zap.Error(fault))
			run.Outcome = models.RunOutcomeError
			r.finish(run)
			return run, r.persist(run)
		}
	}

	switch {
	case run.ScenariosFailed == 0:
		run.Outcome = models.RunOutcomeAllPassed
	case run.ScenariosPassed == 0:
		run.Outcome = models.RunOutcomeAllFailed
	default:
		run.Outcome = models.RunOutcomeSomeFailed
	}
	r.finish(run)

	return run, r.persist(run)
}

func (r *Runner) scenarios(ctx context.Context, description string) []models.Scenario {
	defaults := DefaultScenarios(r.cfg.Login.ValidUsername, r.cfg.Login.ValidPassword)
	if r.enumerator == nil {
		return defaults
	}

	if description == "" {
		description = DefaultDescription
	}
	scenarios, err := r.enumerator.Enumerate(ctx, description)
	if err != nil {
		r.logger.Warn("scenario enumeration failed, using built-in scenarios", zap.Error(err))
		return defaults
	}
	if len(scenarios) == 0 {
		r.logger.Warn("enumerator returned no scenarios, using built-in scenarios")
		return defaults
	}
	return scenarios
}

// runScenario executes one scenario. The returned error is non-nil only
// for harness faults (a dead context, not an assertion mismatch); those
// abort the run instead of counting against the page.
func (r *Runner) runScenario(ctx context.Context, baseURL string, sc models.Scenario) (models.ScenarioResult, error) {
	r.logger.Info("running scenario", zap.String("name", sc.Name))
	start := time.Now()

	result := models.ScenarioResult{
		Name:     sc.Name,
		Status:   models.ScenarioPassed,
		Duration: 0,
	}

	var fault error
	if err := r.driver.Run(ctx, baseURL, sc); err != nil {
		result.Status = models.ScenarioFailed
		result.Detail = err.Error()
		if isFault(err) {
			fault = err
		}
		r.logger.Warn("scenario failed",
			zap.String("name", sc.Name),
			zap.Error(err))
	}

	result.Duration = time.Since(start)
	return result, fault
}

func isFault(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (r *Runner) finish(run *models.TestRun) {
	now := time.Now().UTC()
	run.FinishedAt = &now
}

func (r *Runner) persist(run *models.TestRun) error {
	if r.db == nil {
		return nil
	}
	if err := storage.SaveRun(r.db, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// WaitReady polls the health endpoint until the server answers or the
// context expires.
func WaitReady(ctx context.Context, baseURL string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	healthURL := baseURL + "/healthz"

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("server not ready: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
