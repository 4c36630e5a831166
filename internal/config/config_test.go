package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Procter & Gamble", "PG")
	cfg.Forecast.BaseYear = 2023
	growth := 0.04
	cfg.Overrides.RevenueGrowth = &growth

	path := filepath.Join(t.TempDir(), "fincast.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Company.Name, got.Company.Name)
	assert.Equal(t, cfg.Company.Ticker, got.Company.Ticker)
	assert.Equal(t, 2023, got.Forecast.BaseYear)
	assert.Equal(t, cfg.Forecast.NForecastYears, got.Forecast.NForecastYears)
	assert.Equal(t, cfg.Forecast.NInputYears, got.Forecast.NInputYears)
	assert.Equal(t, cfg.Financing.LTLoanYears, got.Financing.LTLoanYears)
	assert.InDelta(t, cfg.Financing.PctFinancingWithDebt, got.Financing.PctFinancingWithDebt, 0.001)
	require.NotNil(t, got.Overrides.RevenueGrowth)
	assert.InDelta(t, 0.04, *got.Overrides.RevenueGrowth, 0.0001)
	assert.Nil(t, got.Overrides.TaxRate)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Costco Wholesale", "COST")

	assert.Equal(t, "Costco Wholesale", cfg.Company.Name)
	assert.Equal(t, "COST", cfg.Company.Ticker)
	assert.Equal(t, 0, cfg.Forecast.BaseYear, "0 means latest historical year")
	assert.Equal(t, 2, cfg.Forecast.NForecastYears)
	assert.Equal(t, 3, cfg.Forecast.NInputYears)
	assert.Equal(t, 10, cfg.Financing.LTLoanYears)
	assert.Equal(t, 1, cfg.Financing.STLoanYears)
	assert.InDelta(t, 0.70, cfg.Financing.PctFinancingWithDebt, 0.001)
	assert.True(t, cfg.Git.AutoCommit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Co", "TST")
	path := filepath.Join(t.TempDir(), "fincast.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Co")
	assert.Contains(t, contents, "ticker: TST")
	assert.Contains(t, contents, "n_forecast_years: 2")
	assert.Contains(t, contents, "lt_loan_years: 10")
	assert.Contains(t, contents, "pct_financing_with_debt: 0.7")
	assert.NotContains(t, contents, "revenue_growth", "unset overrides are omitted")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero forecast years", func(c *Config) { c.Forecast.NForecastYears = 0 }, "n_forecast_years"},
		{"negative input years", func(c *Config) { c.Forecast.NInputYears = -1 }, "n_input_years"},
		{"zero lt loan years", func(c *Config) { c.Financing.LTLoanYears = 0 }, "lt_loan_years"},
		{"zero st loan years", func(c *Config) { c.Financing.STLoanYears = 0 }, "st_loan_years"},
		{"debt pct above one", func(c *Config) { c.Financing.PctFinancingWithDebt = 1.5 }, "pct_financing_with_debt"},
		{"negative cash threshold", func(c *Config) { c.Financing.MinimumCashThreshold = -10 }, "minimum_cash_threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("Test Co", "")
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
