// Package store persists forecast runs to a SQLite database so past runs can
// be listed and compared without re-reading exported CSVs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fincast-dev/fincast/internal/forecast"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the runs database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the runs database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening runs db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	RunID         string
	Kind          string
	BaseYear      int
	ForecastYears int
	Warnings      int
	CommitHash    string
	CreatedAt     time.Time
}

// SaveRun stores a run's metadata, assumptions and statement lines in one
// transaction. Values are stored as decimal strings so nothing is lost to
// float conversion.
func (s *Store) SaveRun(runID, kind, commitHash string, res *forecast.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	forecastYears := len(res.Income) - 1

	_, err = tx.Exec(`INSERT OR REPLACE INTO runs
		(run_id, kind, base_year, forecast_years, warnings, commit_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, kind, res.BaseYear, forecastYears, len(res.Warnings), commitHash, now)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	insertLine, err := tx.Prepare(`INSERT OR REPLACE INTO statement_lines
		(run_id, statement, fiscal_year, line_item, value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = insertLine.Close() }()

	write := func(statement string, year int, item string, v decimal.Decimal) error {
		_, err := insertLine.Exec(runID, statement, year, item, v.String())
		return err
	}

	for _, p := range res.Income {
		for item, v := range map[string]decimal.Decimal{
			"revenue":            p.Revenue,
			"cogs":               p.COGS,
			"gross_profit":       p.GrossProfit,
			"sga":                p.SGA,
			"depreciation":       p.Depreciation,
			"ebit":               p.EBIT,
			"interest_expense":   p.InterestExpense,
			"interest_income":    p.InterestIncome,
			"pretax_income":      p.PretaxIncome,
			"tax":                p.Tax,
			"net_income":         p.NetIncome,
			"dividends_declared": p.DividendsDeclared,
		} {
			if err := write("income", p.Year, item, v); err != nil {
				return fmt.Errorf("income %d/%s: %w", p.Year, item, err)
			}
		}
	}
	for _, p := range res.CashBudget {
		for item, v := range map[string]decimal.Decimal{
			"beginning_cash": p.BeginningCash,
			"operating":      p.Operating,
			"investing":      p.Investing,
			"financing":      p.Financing,
			"external":       p.External,
			"discretionary":  p.Discretionary,
			"net_change":     p.NetChange,
			"ending_cash":    p.EndingCash,
		} {
			if err := write("cash_budget", p.Year, item, v); err != nil {
				return fmt.Errorf("cash budget %d/%s: %w", p.Year, item, err)
			}
		}
	}
	for _, p := range res.Debt {
		for item, v := range map[string]decimal.Decimal{
			"st_draw":      p.STDraw,
			"st_repayment": p.STRepayment,
			"st_ending":    p.STEnding,
			"lt_draw":      p.LTDraw,
			"lt_repayment": p.LTRepayment,
			"lt_ending":    p.LTEnding,
		} {
			if err := write("debt", p.Year, item, v); err != nil {
				return fmt.Errorf("debt %d/%s: %w", p.Year, item, err)
			}
		}
	}
	for _, p := range res.BalanceSheet {
		for item, v := range map[string]decimal.Decimal{
			"cash":              p.Cash,
			"st_investment":     p.STInvestment,
			"receivables":       p.AccountsReceivable,
			"inventory":         p.Inventory,
			"net_ppe":           p.NetPPE,
			"total_assets":      p.TotalAssets,
			"payables":          p.AccountsPayable,
			"short_term_debt":   p.ShortTermDebt,
			"long_term_debt":    p.LongTermDebt,
			"total_liabilities": p.TotalLiabilities,
			"retained_earnings": p.RetainedEarnings,
			"total_equity":      p.TotalEquity,
		} {
			if err := write("balance_sheet", p.Year, item, v); err != nil {
				return fmt.Errorf("balance sheet %d/%s: %w", p.Year, item, err)
			}
		}
	}

	insertAsm, err := tx.Prepare(`INSERT OR REPLACE INTO assumptions
		(run_id, name, value, source) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = insertAsm.Close() }()

	asm := res.Assumptions
	for name, a := range map[string]struct {
		value  decimal.Decimal
		source string
	}{
		"revenue_growth":          {asm.RevenueGrowth.Value, string(asm.RevenueGrowth.Source)},
		"cogs_pct_revenue":        {asm.COGSPctRevenue.Value, string(asm.COGSPctRevenue.Source)},
		"sga_pct_revenue":         {asm.SGAPctRevenue.Value, string(asm.SGAPctRevenue.Source)},
		"tax_rate":                {asm.TaxRate.Value, string(asm.TaxRate.Source)},
		"payout_ratio":            {asm.PayoutRatio.Value, string(asm.PayoutRatio.Source)},
		"repurchase_pct_ni":       {asm.RepurchasePctNI.Value, string(asm.RepurchasePctNI.Source)},
		"ar_pct_revenue":          {asm.ARPctRevenue.Value, string(asm.ARPctRevenue.Source)},
		"inventory_pct_cogs":      {asm.InventoryPctCOGS.Value, string(asm.InventoryPctCOGS.Source)},
		"ap_pct_cogs":             {asm.APPctCOGS.Value, string(asm.APPctCOGS.Source)},
		"capex_pct_revenue":       {asm.CapexPctRevenue.Value, string(asm.CapexPctRevenue.Source)},
		"depreciation_rate":       {asm.DepreciationRate.Value, string(asm.DepreciationRate.Source)},
		"cost_of_debt":            {asm.CostOfDebt.Value, string(asm.CostOfDebt.Source)},
		"return_st_investment":    {asm.ReturnSTInvestment.Value, string(asm.ReturnSTInvestment.Source)},
		"min_cash_pct_revenue":    {asm.MinCashPctRevenue.Value, string(asm.MinCashPctRevenue.Source)},
		"pct_financing_with_debt": {asm.PctFinancingWithDebt.Value, string(asm.PctFinancingWithDebt.Source)},
	} {
		if _, err := insertAsm.Exec(runID, name, a.value.String(), a.source); err != nil {
			return fmt.Errorf("assumption %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns() ([]RunSummary, error) {
	rows, err := s.db.Query(`SELECT run_id, kind, base_year, forecast_years, warnings,
		COALESCE(commit_hash, ''), created_at FROM runs ORDER BY created_at DESC, run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var created string
		if err := rows.Scan(&r.RunID, &r.Kind, &r.BaseYear, &r.ForecastYears,
			&r.Warnings, &r.CommitHash, &created); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
		}
		r.CreatedAt = ts
		out = append(out, r)
	}
	return out, rows.Err()
}

// LastRunID returns the most recently created run ID, or "" when the store is
// empty.
func (s *Store) LastRunID() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT run_id FROM runs ORDER BY created_at DESC, run_id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Line fetches one persisted statement value.
func (s *Store) Line(runID, statement string, year int, item string) (decimal.Decimal, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM statement_lines
		WHERE run_id = ? AND statement = ? AND fiscal_year = ? AND line_item = ?`,
		runID, statement, year, item).Scan(&raw)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}
