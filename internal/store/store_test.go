package store

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincast-dev/fincast/internal/forecast"
	"github.com/fincast-dev/fincast/internal/model"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun() *forecast.Result {
	return &forecast.Result{
		BaseYear: 2024,
		Income: []model.IncomeStatementPeriod{
			{Year: 2024, Revenue: dec(1100)},
			{Year: 2025, Revenue: dec(1210), NetIncome: dec(131.25)},
		},
		CashBudget: []model.CashBudgetPeriod{
			{Year: 2024, EndingCash: dec(110)},
			{Year: 2025, EndingCash: dec(121)},
		},
		Debt: []model.DebtScheduleState{
			{Year: 2024, LTEnding: dec(200)},
			{Year: 2025, LTEnding: dec(185.355)},
		},
		BalanceSheet: []model.BalanceSheetPeriod{
			{Year: 2024, TotalAssets: dec(891)},
			{Year: 2025, TotalAssets: dec(930.6)},
		},
		Warnings: []string{"one"},
	}
}

func TestSaveAndListRuns(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.SaveRun("2026-08-001", "forecast", "abc1234", sampleRun()))

	runs, err := s.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "2026-08-001", runs[0].RunID)
	assert.Equal(t, "forecast", runs[0].Kind)
	assert.Equal(t, 2024, runs[0].BaseYear)
	assert.Equal(t, 1, runs[0].ForecastYears)
	assert.Equal(t, 1, runs[0].Warnings)
	assert.Equal(t, "abc1234", runs[0].CommitHash)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestSaveRunIsIdempotent(t *testing.T) {
	s := openStore(t)

	require.NoError(t, s.SaveRun("2026-08-001", "forecast", "", sampleRun()))
	require.NoError(t, s.SaveRun("2026-08-001", "forecast", "", sampleRun()))

	runs, err := s.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestLine(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.SaveRun("2026-08-001", "forecast", "", sampleRun()))

	v, err := s.Line("2026-08-001", "income", 2025, "revenue")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec(1210)))

	v, err = s.Line("2026-08-001", "debt", 2025, "lt_ending")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec(185.355)), "decimal text round-trips exactly")
}

func TestLastRunID(t *testing.T) {
	s := openStore(t)

	id, err := s.LastRunID()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.SaveRun("2026-08-001", "forecast", "", sampleRun()))
	require.NoError(t, s.SaveRun("2026-08-002", "backtest", "", sampleRun()))

	id, err = s.LastRunID()
	require.NoError(t, err)
	assert.Equal(t, "2026-08-002", id)
}
