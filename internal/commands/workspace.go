package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fincast-dev/fincast/internal/config"
	"github.com/fincast-dev/fincast/internal/history"
	"github.com/fincast-dev/fincast/internal/model"
	"github.com/fincast-dev/fincast/internal/runid"
	"github.com/fincast-dev/fincast/internal/store"
)

const (
	configFile   = "fincast.yaml"
	dataDir      = "data"
	forecastsDir = "forecasts"
	storePath    = ".fincast/runs.db"
)

// loadWorkspace reads the config and historical statements from a workspace
// directory.
func loadWorkspace(dir string) (*config.Config, model.HistoricalFinancials, error) {
	cfg, err := config.Load(filepath.Join(dir, configFile))
	if err != nil {
		return nil, model.HistoricalFinancials{}, fmt.Errorf("loading %s: %w", configFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, model.HistoricalFinancials{}, fmt.Errorf("invalid config: %w", err)
	}

	hist, err := history.Load(filepath.Join(dir, dataDir))
	if err != nil {
		return nil, model.HistoricalFinancials{}, fmt.Errorf("loading historical statements: %w", err)
	}
	return cfg, hist, nil
}

// openStore opens the workspace's runs database.
func openStore(dir string) (*store.Store, error) {
	return store.Open(filepath.Join(dir, storePath))
}

// nextRunID allocates the next sequential run ID for the current month.
func nextRunID(s *store.Store, now time.Time) (string, error) {
	prev, err := s.LastRunID()
	if err != nil {
		return "", fmt.Errorf("reading last run ID: %w", err)
	}
	return runid.Next(prev, now.Year(), int(now.Month())), nil
}
