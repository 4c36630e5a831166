package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fincast-dev/fincast/internal/forecast"
	"github.com/fincast-dev/fincast/internal/report"
	"github.com/fincast-dev/fincast/internal/runlog"
)

func newBacktestCommand(verbose *bool) *cobra.Command {
	var workspace string
	var baseYear int
	var years int

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Forecast from a past base year and score against actuals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(workspace)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runBacktest(absDir, baseYear, years, *verbose)
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", ".", "workspace directory")
	cmd.Flags().IntVar(&baseYear, "base-year", 0, "base fiscal year to rewind to (overrides config)")
	cmd.Flags().IntVar(&years, "years", 0, "forecast years (overrides config)")

	return cmd
}

func runBacktest(dir string, baseYear, years int, verbose bool) error {
	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, hist, err := loadWorkspace(dir)
	if err != nil {
		return err
	}
	if baseYear > 0 {
		cfg.Forecast.BaseYear = baseYear
	}
	if years > 0 {
		cfg.Forecast.NForecastYears = years
	}

	bt, err := forecast.Backtest(cfg, hist, log)
	if err != nil {
		return fmt.Errorf("running backtest: %w", err)
	}

	fmt.Print(report.RenderBacktest(bt))

	s, err := openStore(dir)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	now := time.Now()
	runID, err := nextRunID(s, now)
	if err != nil {
		return err
	}

	exportDir := filepath.Join(dir, forecastsDir, runID)
	if err := report.ExportBacktest(exportDir, bt); err != nil {
		return fmt.Errorf("exporting backtest: %w", err)
	}
	log.Info("exported backtest", zap.String("run_id", runID), zap.String("dir", exportDir))

	if err := s.SaveRun(runID, "backtest", "", bt.Forecast); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	if err := runlog.Append(dir, []runlog.Entry{{
		Timestamp: now,
		RunID:     runID,
		Kind:      "backtest",
		BaseYear:  bt.BaseYear,
		Years:     cfg.Forecast.NForecastYears,
		Warnings:  len(bt.Forecast.Warnings),
	}}); err != nil {
		return fmt.Errorf("appending run log: %w", err)
	}

	fmt.Printf("\nRun %s exported to %s\n", runID, exportDir)
	return nil
}
