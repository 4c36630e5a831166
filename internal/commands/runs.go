package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newRunsCommand() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded forecast and backtest runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(workspace)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runRuns(absDir)
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", ".", "workspace directory")

	return cmd
}

func runRuns(dir string) error {
	s, err := openStore(dir)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	runs, err := s.ListRuns()
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-14s %-10s %-10s %-7s %-9s %-9s %s\n",
		"RUN", "KIND", "BASE YEAR", "YEARS", "WARNINGS", "COMMIT", "CREATED")
	for _, r := range runs {
		fmt.Printf("%-14s %-10s %-10d %-7d %-9d %-9s %s\n",
			r.RunID, r.Kind, r.BaseYear, r.ForecastYears, r.Warnings,
			r.CommitHash, r.CreatedAt.Local().Format(time.DateTime))
	}
	return nil
}
