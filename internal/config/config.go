package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level fincast.yaml configuration for one company
// workspace.
type Config struct {
	Company   CompanyConfig   `yaml:"company"`
	Forecast  ForecastConfig  `yaml:"forecast"`
	Financing FinancingConfig `yaml:"financing"`
	Overrides Overrides       `yaml:"overrides,omitempty"`
	Git       GitConfig       `yaml:"git"`
}

// CompanyConfig identifies the company being forecast.
type CompanyConfig struct {
	Name   string `yaml:"name"`
	Ticker string `yaml:"ticker,omitempty"`
}

// ForecastConfig defines the forecast window.
type ForecastConfig struct {
	BaseYear       int `yaml:"base_year"` // 0 = latest historical year
	NForecastYears int `yaml:"n_forecast_years"`
	NInputYears    int `yaml:"n_input_years"` // trailing years used to derive ratios
}

// FinancingConfig holds the fixed financing-policy assumptions that cannot be
// derived from historical data.
type FinancingConfig struct {
	LTLoanYears          int     `yaml:"lt_loan_years"`
	STLoanYears          int     `yaml:"st_loan_years"`
	PctFinancingWithDebt float64 `yaml:"pct_financing_with_debt"`
	MinimumCashThreshold float64 `yaml:"minimum_cash_threshold"` // 0 = derive from historical cash/revenue
}

// Overrides short-circuit assumption derivation for individual line items.
// A nil field means "derive from history".
type Overrides struct {
	RevenueGrowth      *float64 `yaml:"revenue_growth,omitempty"`
	COGSPctRevenue     *float64 `yaml:"cogs_pct_revenue,omitempty"`
	SGAPctRevenue      *float64 `yaml:"sga_pct_revenue,omitempty"`
	TaxRate            *float64 `yaml:"tax_rate,omitempty"`
	PayoutRatio        *float64 `yaml:"payout_ratio,omitempty"`
	CapexPctRevenue    *float64 `yaml:"capex_pct_revenue,omitempty"`
	CostOfDebt         *float64 `yaml:"cost_of_debt,omitempty"`
	DepreciationRate   *float64 `yaml:"depreciation_rate,omitempty"`
	ARPctRevenue       *float64 `yaml:"ar_pct_revenue,omitempty"`
	InventoryPctCOGS   *float64 `yaml:"inventory_pct_cogs,omitempty"`
	APPctCOGS          *float64 `yaml:"ap_pct_cogs,omitempty"`
	ReturnSTInvestment *float64 `yaml:"return_st_investment,omitempty"`
	RepurchasePctNI    *float64 `yaml:"repurchase_pct_net_income,omitempty"`
}

// GitConfig controls git versioning of the company workspace.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a fincast.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(companyName, ticker string) *Config {
	return &Config{
		Company: CompanyConfig{
			Name:   companyName,
			Ticker: ticker,
		},
		Forecast: ForecastConfig{
			BaseYear:       0,
			NForecastYears: 2,
			NInputYears:    3,
		},
		Financing: FinancingConfig{
			LTLoanYears:          10,
			STLoanYears:          1,
			PctFinancingWithDebt: 0.70,
			MinimumCashThreshold: 0,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Fincast",
			AuthorEmail: "runs@fincast.dev",
		},
	}
}

// Validate checks the recognized option ranges before a forecast run.
func (c *Config) Validate() error {
	if c.Forecast.NForecastYears <= 0 {
		return fmt.Errorf("n_forecast_years must be > 0, got %d", c.Forecast.NForecastYears)
	}
	if c.Forecast.NInputYears <= 0 {
		return fmt.Errorf("n_input_years must be > 0, got %d", c.Forecast.NInputYears)
	}
	if c.Financing.LTLoanYears <= 0 {
		return fmt.Errorf("lt_loan_years must be > 0, got %d", c.Financing.LTLoanYears)
	}
	if c.Financing.STLoanYears <= 0 {
		return fmt.Errorf("st_loan_years must be > 0, got %d", c.Financing.STLoanYears)
	}
	if p := c.Financing.PctFinancingWithDebt; p < 0 || p > 1 {
		return fmt.Errorf("pct_financing_with_debt must be within [0, 1], got %g", p)
	}
	if c.Financing.MinimumCashThreshold < 0 {
		return fmt.Errorf("minimum_cash_threshold must be >= 0, got %g", c.Financing.MinimumCashThreshold)
	}
	return nil
}
