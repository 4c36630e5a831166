package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fincast-dev/fincast/internal/assumptions"
	"github.com/fincast-dev/fincast/internal/forecast"
	"github.com/fincast-dev/fincast/internal/gitops"
	"github.com/fincast-dev/fincast/internal/report"
	"github.com/fincast-dev/fincast/internal/runlog"
)

func newForecastCommand(verbose *bool) *cobra.Command {
	var workspace string
	var years int
	var baseYear int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Run a forecast from the workspace's historical statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(workspace)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runForecast(absDir, years, baseYear, *verbose)
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", ".", "workspace directory")
	cmd.Flags().IntVar(&years, "years", 0, "forecast years (overrides config)")
	cmd.Flags().IntVar(&baseYear, "base-year", 0, "base fiscal year (overrides config)")

	return cmd
}

func runForecast(dir string, years, baseYear int, verbose bool) error {
	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg, hist, err := loadWorkspace(dir)
	if err != nil {
		return err
	}
	if years > 0 {
		cfg.Forecast.NForecastYears = years
	}
	if baseYear > 0 {
		cfg.Forecast.BaseYear = baseYear
	}

	asm, err := assumptions.Resolve(hist, cfg)
	if err != nil {
		return fmt.Errorf("resolving assumptions: %w", err)
	}

	res, err := forecast.NewEngine(cfg, hist, asm, log).Run()
	if err != nil {
		return fmt.Errorf("running forecast: %w", err)
	}

	fmt.Print(report.RenderResult(res))

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
	if err := report.ExportResult(exportDir, res); err != nil {
		return fmt.Errorf("exporting statements: %w", err)
	}
	log.Info("exported forecast", zap.String("run_id", runID), zap.String("dir", exportDir))

	hash := ""
	if cfg.Git.AutoCommit && gitops.IsRepo(dir) {
		dirty, err := gitops.HasChanges(dir)
		if err != nil {
			return err
		}
		if dirty {
			hash, err = gitops.CommitAll(dir, "forecast: "+runID, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
			if err != nil {
				return fmt.Errorf("committing forecast: %w", err)
			}
		}
	}

	if err := s.SaveRun(runID, "forecast", hash, res); err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	if err := runlog.Append(dir, []runlog.Entry{{
		Timestamp:  now,
		RunID:      runID,
		Kind:       "forecast",
		BaseYear:   res.BaseYear,
		Years:      cfg.Forecast.NForecastYears,
		Warnings:   len(res.Warnings),
		CommitHash: hash,
	}}); err != nil {
		return fmt.Errorf("appending run log: %w", err)
	}

	fmt.Printf("\nRun %s exported to %s\n", runID, exportDir)
	return nil
}
