package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincast-dev/fincast/internal/assumptions"
	"github.com/fincast-dev/fincast/internal/forecast"
	"github.com/fincast-dev/fincast/internal/model"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func sampleResult() *forecast.Result {
	return &forecast.Result{
		BaseYear: 2024,
		Assumptions: assumptions.Set{
			RevenueGrowth: assumptions.Assumption{Value: dec(0.10), Source: assumptions.SourceDerived},
			TaxRate:       assumptions.Assumption{Value: dec(0.25), Source: assumptions.SourceOverridden},
		},
		Income: []model.IncomeStatementPeriod{
			{Year: 2024, Revenue: dec(1100), NetIncome: dec(114.75)},
			{Year: 2025, Revenue: dec(1210), NetIncome: dec(131.25)},
		},
		CashBudget: []model.CashBudgetPeriod{
			{Year: 2024, BeginningCash: dec(110), EndingCash: dec(110)},
			{Year: 2025, BeginningCash: dec(110), Operating: dec(169.75), EndingCash: dec(121)},
		},
		Debt: []model.DebtScheduleState{
			{Year: 2024, STEnding: dec(40), LTEnding: dec(200)},
			{Year: 2025, STRepayment: dec(40), LTRepayment: dec(20), LTDraw: dec(5.355), LTEnding: dec(185.355)},
		},
		BalanceSheet: []model.BalanceSheetPeriod{
			{Year: 2024, Cash: dec(110), TotalAssets: dec(891), TotalEquity: dec(585)},
			{Year: 2025, Cash: dec(121), TotalAssets: dec(930.6), TotalEquity: dec(672.645)},
		},
		Checks: []model.BalanceCheckResult{
			{Year: 2024, Balanced: true},
			{Year: 2025, Residual: dec(0.5)},
		},
		Warnings: []string{"year 2025: balance sheet off by 0.500000"},
	}
}

func TestRenderResult(t *testing.T) {
	out := RenderResult(sampleResult())

	assert.Contains(t, out, "INCOME STATEMENT")
	assert.Contains(t, out, "2024")
	assert.Contains(t, out, "2025")
	assert.Contains(t, out, "1210.00")
	assert.Contains(t, out, "Ending cash")
	assert.Contains(t, out, "OFF by 0.500000")
	assert.Contains(t, out, "revenue_growth")
	assert.Contains(t, out, "(derived)")
	assert.Contains(t, out, "(overridden)")
	assert.Contains(t, out, "WARNINGS")
}

func TestRenderBacktest(t *testing.T) {
	bt := &forecast.BacktestResult{
		BaseYear: 2023,
		Variances: []model.BacktestVariance{
			{Year: 2024, LineItem: "revenue", Forecast: dec(102), Actual: dec(100),
				Absolute: dec(2), Percent: dec(2)},
		},
	}
	out := RenderBacktest(bt)
	assert.Contains(t, out, "base year 2023")
	assert.Contains(t, out, "revenue")
	assert.Contains(t, out, "2.00%")
}

func TestExportResult(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ExportResult(dir, sampleResult()))

	for _, name := range []string{IncomeCSV, CashCSV, DebtCSV, BalanceCSV} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, IncomeCSV))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "line_item,2024,2025", lines[0])
	assert.Contains(t, string(data), "Revenue,1100,1210")
}

func TestExportBacktest(t *testing.T) {
	dir := t.TempDir()
	bt := &forecast.BacktestResult{
		BaseYear: 2023,
		Variances: []model.BacktestVariance{
			{Year: 2024, LineItem: "revenue", Forecast: dec(102), Actual: dec(100),
				Absolute: dec(2), Percent: dec(2)},
		},
	}
	require.NoError(t, ExportBacktest(dir, bt))

	data, err := os.ReadFile(filepath.Join(dir, BacktestCSV))
	require.NoError(t, err)
	assert.Contains(t, string(data), "year,line_item,forecast,actual,variance,variance_pct")
	assert.Contains(t, string(data), "2024,revenue,102,100,2,2.0000")
}
