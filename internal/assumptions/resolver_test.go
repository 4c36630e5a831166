package assumptions

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincast-dev/fincast/internal/config"
	"github.com/fincast-dev/fincast/internal/model"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func sampleHistory() model.HistoricalFinancials {
	year := func(y int, rev float64) model.HistoricalYear {
		return model.HistoricalYear{
			Year:               y,
			Revenue:            dec(rev),
			COGS:               dec(rev * 0.60),
			SGA:                dec(rev * 0.20),
			Depreciation:       dec(8),
			InterestExpense:    dec(4),
			InterestIncome:     dec(0.5),
			PretaxIncome:       dec(rev * 0.15),
			TaxProvision:       dec(rev * 0.15 * 0.25),
			NetIncome:          dec(rev * 0.15 * 0.75),
			Cash:               dec(rev * 0.10),
			AccountsReceivable: dec(rev * 0.12),
			Inventory:          dec(rev * 0.60 * 0.15),
			NetPPE:             dec(80),
			AccountsPayable:    dec(rev * 0.60 * 0.10),
			ShortTermDebt:      dec(20),
			LongTermDebt:       dec(60),
			CapitalExpenditure: dec(rev * 0.05),
			DividendsPaid:      dec(rev * 0.15 * 0.75 * 0.40),
		}
	}
	return model.NewHistoricalFinancials([]model.HistoricalYear{
		year(2022, 100), year(2023, 110), year(2024, 121),
	})
}

func TestResolveDerivesFromHistory(t *testing.T) {
	cfg := config.Default("Acme", "")
	cfg.Forecast.NInputYears = 3

	set, err := Resolve(sampleHistory(), cfg)
	require.NoError(t, err)

	assert.True(t, set.RevenueGrowth.Value.Equal(dec(0.10)),
		"growth %s", set.RevenueGrowth.Value)
	assert.Equal(t, SourceDerived, set.RevenueGrowth.Source)
	assert.True(t, set.COGSPctRevenue.Value.Equal(dec(0.60)))
	assert.True(t, set.SGAPctRevenue.Value.Equal(dec(0.20)))
	assert.True(t, set.TaxRate.Value.Equal(dec(0.25)))
	assert.True(t, set.PayoutRatio.Value.Equal(dec(0.40)))
	assert.True(t, set.ARPctRevenue.Value.Equal(dec(0.12)))
	assert.True(t, set.InventoryPctCOGS.Value.Equal(dec(0.15)))
	assert.True(t, set.APPctCOGS.Value.Equal(dec(0.10)))
	assert.True(t, set.CapexPctRevenue.Value.Equal(dec(0.05)))
	assert.True(t, set.CostOfDebt.Value.Equal(dec(0.05)), "4 / 80 of total debt")
	assert.Equal(t, SourceDerived, set.CostOfDebt.Source)
	assert.Equal(t, SourceConfig, set.PctFinancingWithDebt.Source)
	assert.Equal(t, 10, set.LTLoanYears)
	assert.Equal(t, 1, set.STLoanYears)
}

func TestResolveOverrideShortCircuits(t *testing.T) {
	cfg := config.Default("Acme", "")
	growth := 0.30 // outside the derived clamp, overrides are taken as given
	tax := 0.21
	cfg.Overrides.RevenueGrowth = &growth
	cfg.Overrides.TaxRate = &tax

	set, err := Resolve(sampleHistory(), cfg)
	require.NoError(t, err)

	assert.True(t, set.RevenueGrowth.Value.Equal(dec(0.30)))
	assert.Equal(t, SourceOverridden, set.RevenueGrowth.Source)
	assert.True(t, set.TaxRate.Value.Equal(dec(0.21)))
	assert.Equal(t, SourceOverridden, set.TaxRate.Source)
}

func TestResolveClampsDerivedGrowth(t *testing.T) {
	hist := model.NewHistoricalFinancials([]model.HistoricalYear{
		{Year: 2023, Revenue: dec(100), COGS: dec(60), SGA: dec(20),
			PretaxIncome: dec(20), TaxProvision: dec(5), NetIncome: dec(15),
			Cash: dec(10), AccountsReceivable: dec(12), Inventory: dec(9),
			AccountsPayable: dec(6), NetPPE: dec(80), Depreciation: dec(8),
			CapitalExpenditure: dec(5)},
		{Year: 2024, Revenue: dec(200), COGS: dec(120), SGA: dec(40),
			PretaxIncome: dec(40), TaxProvision: dec(10), NetIncome: dec(30),
			Cash: dec(20), AccountsReceivable: dec(24), Inventory: dec(18),
			AccountsPayable: dec(12), NetPPE: dec(90), Depreciation: dec(9),
			CapitalExpenditure: dec(10)},
	})

	set, err := Resolve(hist, config.Default("Acme", ""))
	require.NoError(t, err)
	assert.True(t, set.RevenueGrowth.Value.Equal(dec(0.15)),
		"doubling revenue clamps to the ceiling, got %s", set.RevenueGrowth.Value)
}

func TestResolveInsufficientHistory(t *testing.T) {
	cfg := config.Default("Acme", "")
	cfg.Forecast.NInputYears = 1

	_, err := Resolve(sampleHistory(), cfg)
	require.Error(t, err)

	var ihe *InsufficientHistoryError
	require.True(t, errors.As(err, &ihe))
	assert.Equal(t, "revenue_growth", ihe.Assumption)
	assert.Equal(t, 2, ihe.Required)
	assert.Equal(t, 1, ihe.Available)
}

func TestResolveDefaultsWithoutDebt(t *testing.T) {
	hist := sampleHistory()
	for i := range hist.Years {
		hist.Years[i].ShortTermDebt = decimal.Zero
		hist.Years[i].LongTermDebt = decimal.Zero
		hist.Years[i].InterestExpense = decimal.Zero
	}

	set, err := Resolve(hist, config.Default("Acme", ""))
	require.NoError(t, err)
	assert.True(t, set.CostOfDebt.Value.Equal(dec(0.05)))
	assert.Equal(t, SourceDefault, set.CostOfDebt.Source)
}
