package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dstokesj/loginbench/internal/config"
	"github.com/dstokesj/loginbench/internal/harness"
	"github.com/dstokesj/loginbench/internal/login"
	"github.com/dstokesj/loginbench/internal/models"
	"github.com/dstokesj/loginbench/internal/storage"
	"github.com/dstokesj/loginbench/internal/web"
)

var (
	testOffline     bool
	testNoBrowser   bool
	testDescription string
	testTargetURL   string
	testKeepOpen    bool
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run frontend test scenarios against the login page",
	Long: `Boots the login page (unless --url points at a running instance),
enumerates test scenarios, executes them and prints a markdown report.

Scenario enumeration asks a Gemini model for scenarios derived from a change
description; --offline skips the model and uses the built-in scenarios.
--no-browser exercises the plain form-post path over HTTP instead of driving
a Chromium instance. --keep-open leaves the booted fixture server running
after the report, for poking at it manually; stop it with Ctrl+C.`,
	RunE: runTest,
}

func init() {
	testCmd.Flags().BoolVar(&testOffline, "offline", false, "use built-in scenarios, skip LLM enumeration")
	testCmd.Flags().BoolVar(&testNoBrowser, "no-browser", false, "drive the form-post path over HTTP instead of a browser")
	testCmd.Flags().StringVar(&testDescription, "description", "", "change description for scenario enumeration")
	testCmd.Flags().StringVar(&testTargetURL, "url", "", "test a running instance instead of booting one")
	testCmd.Flags().BoolVar(&testKeepOpen, "keep-open", false, "leave the fixture server running after the run")
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()

	db, err := storage.InitDB(cfg.Harness.HistoryDBPath)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()

	baseURL := testTargetURL
	var shutdown func()
	if baseURL == "" {
		baseURL = cfg.GetBaseURL()
		shutdown, err = startServer(cfg, logger)
		if err != nil {
			return err
		}
		if !testKeepOpen {
			defer shutdown()
		}

		readyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := harness.WaitReady(readyCtx, baseURL); err != nil {
			return err
		}
	}

	enumerator := newEnumerator(ctx, cfg, logger)

	driver, err := newDriver(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close()

	runner := harness.NewRunner(enumerator, driver, db, logger, cfg)
	run, err := runner.Run(ctx, baseURL, testDescription)
	if err != nil {
		return err
	}

	fmt.Print(harness.FormatReport(run))

	if testKeepOpen && shutdown != nil {
		logger.Info("fixture server left running", zap.String("url", baseURL))
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		shutdown()
	}

	switch run.Outcome {
	case models.RunOutcomeAllPassed, models.RunOutcomeSkipped:
		return nil
	default:
		return fmt.Errorf("%d of %d scenarios failed", run.ScenariosFailed, run.ScenariosTotal)
	}
}

// newEnumerator returns nil (offline mode) when --offline is set or no API
// key is configured; the runner then falls back to built-in scenarios.
func newEnumerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) harness.Enumerator {
	if testOffline {
		return nil
	}

	apiKey := cfg.HarnessAPIKey()
	if apiKey == "" {
		logger.Warn("no API key set, using built-in scenarios",
			zap.String("env", cfg.Harness.APIKeyEnv))
		return nil
	}

	enumerator, err := harness.NewGenAIEnumerator(ctx, apiKey, cfg.Harness.Model)
	if err != nil {
		logger.Warn("enumerator unavailable, using built-in scenarios", zap.Error(err))
		return nil
	}
	return enumerator
}

func newDriver(ctx context.Context, cfg *config.Config) (harness.Driver, error) {
	if testNoBrowser {
		return harness.NewFormDriver(cfg.Harness.NavigationTimeout)
	}
	return harness.NewRodDriver(ctx, cfg.Harness.Headless, cfg.Harness.NavigationTimeout)
}

func startServer(cfg *config.Config, logger *zap.Logger) (func(), error) {
	validator := login.NewValidator(cfg.Login.ValidUsername, cfg.Login.ValidPassword)
	h := web.NewHandlers(validator, logger)

	r, err := web.NewRouter(cfg, h, logger)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:         cfg.GetAddr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("fixture server starting", zap.String("url", cfg.GetBaseURL()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("fixture server failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
