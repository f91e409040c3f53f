package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dstokesj/loginbench/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded test runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := storage.InitDB(cfg.Harness.HistoryDBPath)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()

	runs, err := storage.ListRuns(db, historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %-12s  %d/%d passed  %s  %s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Outcome,
			run.ScenariosPassed,
			run.ScenariosTotal,
			run.TargetURL,
			run.ID)
	}
	return nil
}
