package assumptions

import (
	"github.com/shopspring/decimal"

	"github.com/fincast-dev/fincast/internal/config"
	"github.com/fincast-dev/fincast/internal/model"
)

// Sanity bounds applied to derived values. Overrides are taken as given and
// are never clamped.
var (
	growthFloor   = decimal.NewFromFloat(-0.10)
	growthCeil    = decimal.NewFromFloat(0.15)
	taxFloor      = decimal.NewFromFloat(0.10)
	taxCeil       = decimal.NewFromFloat(0.40)
	debtFloor     = decimal.NewFromFloat(0.03)
	debtCeil      = decimal.NewFromFloat(0.15)
	stReturnFloor = decimal.NewFromFloat(0.01)
	stReturnCeil  = decimal.NewFromFloat(0.08)
	payoutFloor   = decimal.Zero
	payoutCeil    = decimal.NewFromInt(1)

	defaultCostOfDebt = decimal.NewFromFloat(0.05)
	defaultDeprRate   = decimal.NewFromFloat(0.10)
)

// Resolve derives a complete assumption set from the trailing
// cfg.Forecast.NInputYears of history, applying config overrides first and
// sanity clamps to derived values. Operating assumptions with no usable
// history produce an InsufficientHistoryError; rate-style assumptions
// (cost of debt, short-term return, depreciation rate) fall back to
// documented defaults when the ratio is undefined for every input year.
func Resolve(hist model.HistoricalFinancials, cfg *config.Config) (Set, error) {
	window := trailing(hist, cfg.Forecast.NInputYears)
	ov := cfg.Overrides

	var set Set
	var err error

	if set.RevenueGrowth, err = resolveGrowth(window, ov.RevenueGrowth); err != nil {
		return Set{}, err
	}

	ratios := []struct {
		dst  *Assumption
		name string
		ov   *float64
		num  func(model.HistoricalYear) decimal.Decimal
		den  func(model.HistoricalYear) decimal.Decimal
		lo   *decimal.Decimal
		hi   *decimal.Decimal
	}{
		{&set.COGSPctRevenue, "cogs_pct_revenue", ov.COGSPctRevenue,
			func(y model.HistoricalYear) decimal.Decimal { return y.COGS },
			func(y model.HistoricalYear) decimal.Decimal { return y.Revenue }, nil, nil},
		{&set.SGAPctRevenue, "sga_pct_revenue", ov.SGAPctRevenue,
			func(y model.HistoricalYear) decimal.Decimal { return y.SGA },
			func(y model.HistoricalYear) decimal.Decimal { return y.Revenue }, nil, nil},
		{&set.TaxRate, "tax_rate", ov.TaxRate,
			func(y model.HistoricalYear) decimal.Decimal { return y.TaxProvision },
			func(y model.HistoricalYear) decimal.Decimal { return y.PretaxIncome },
			&taxFloor, &taxCeil},
		{&set.PayoutRatio, "payout_ratio", ov.PayoutRatio,
			func(y model.HistoricalYear) decimal.Decimal { return y.DividendsPaid },
			func(y model.HistoricalYear) decimal.Decimal { return y.NetIncome },
			&payoutFloor, &payoutCeil},
		{&set.ARPctRevenue, "ar_pct_revenue", ov.ARPctRevenue,
			func(y model.HistoricalYear) decimal.Decimal { return y.AccountsReceivable },
			func(y model.HistoricalYear) decimal.Decimal { return y.Revenue }, nil, nil},
		{&set.InventoryPctCOGS, "inventory_pct_cogs", ov.InventoryPctCOGS,
			func(y model.HistoricalYear) decimal.Decimal { return y.Inventory },
			func(y model.HistoricalYear) decimal.Decimal { return y.COGS }, nil, nil},
		{&set.APPctCOGS, "ap_pct_cogs", ov.APPctCOGS,
			func(y model.HistoricalYear) decimal.Decimal { return y.AccountsPayable },
			func(y model.HistoricalYear) decimal.Decimal { return y.COGS }, nil, nil},
		{&set.CapexPctRevenue, "capex_pct_revenue", ov.CapexPctRevenue,
			func(y model.HistoricalYear) decimal.Decimal { return y.CapitalExpenditure },
			func(y model.HistoricalYear) decimal.Decimal { return y.Revenue }, nil, nil},
		{&set.MinCashPctRevenue, "min_cash_pct_revenue", nil,
			func(y model.HistoricalYear) decimal.Decimal { return y.Cash },
			func(y model.HistoricalYear) decimal.Decimal { return y.Revenue }, nil, nil},
	}
	for _, r := range ratios {
		*r.dst, err = resolveRatio(window, r.name, r.ov, r.num, r.den, r.lo, r.hi)
		if err != nil {
			return Set{}, err
		}
	}

	set.RepurchasePctNI = resolveRateWithDefault(window, ov.RepurchasePctNI,
		func(y model.HistoricalYear) decimal.Decimal { return y.StockRepurchase },
		func(y model.HistoricalYear) decimal.Decimal { return y.NetIncome },
		decimal.Zero, payoutFloor, payoutCeil)

	set.CostOfDebt = resolveRateWithDefault(window, ov.CostOfDebt,
		func(y model.HistoricalYear) decimal.Decimal { return y.InterestExpense },
		func(y model.HistoricalYear) decimal.Decimal { return y.ShortTermDebt.Add(y.LongTermDebt) },
		defaultCostOfDebt, debtFloor, debtCeil)

	set.ReturnSTInvestment = resolveRateWithDefault(window, ov.ReturnSTInvestment,
		func(y model.HistoricalYear) decimal.Decimal { return y.InterestIncome },
		func(y model.HistoricalYear) decimal.Decimal { return y.Cash },
		set.CostOfDebt.Value.Sub(decimal.NewFromFloat(0.01)), stReturnFloor, stReturnCeil)

	set.DepreciationRate = resolveRateWithDefault(window, ov.DepreciationRate,
		func(y model.HistoricalYear) decimal.Decimal { return y.Depreciation },
		func(y model.HistoricalYear) decimal.Decimal { return y.NetPPE },
		defaultDeprRate, decimal.Zero, decimal.NewFromInt(1))

	set.PctFinancingWithDebt = Assumption{
		Value:  decimal.NewFromFloat(cfg.Financing.PctFinancingWithDebt),
		Source: SourceConfig,
	}
	set.MinimumCashThreshold = decimal.NewFromFloat(cfg.Financing.MinimumCashThreshold)
	set.LTLoanYears = cfg.Financing.LTLoanYears
	set.STLoanYears = cfg.Financing.STLoanYears
	return set, nil
}

// trailing returns the last n years of history, oldest first.
func trailing(hist model.HistoricalFinancials, n int) []model.HistoricalYear {
	years := hist.Years
	if n > 0 && len(years) > n {
		years = years[len(years)-n:]
	}
	return years
}

func resolveGrowth(window []model.HistoricalYear, override *float64) (Assumption, error) {
	if override != nil {
		return Assumption{Value: decimal.NewFromFloat(*override), Source: SourceOverridden}, nil
	}
	if len(window) < 2 {
		return Assumption{}, &InsufficientHistoryError{
			Assumption: "revenue_growth", Required: 2, Available: len(window),
		}
	}
	sum := decimal.Zero
	pairs := 0
	for i := 1; i < len(window); i++ {
		prev := window[i-1].Revenue
		if prev.IsZero() {
			continue
		}
		sum = sum.Add(window[i].Revenue.Sub(prev).Div(prev.Abs()))
		pairs++
	}
	if pairs == 0 {
		return Assumption{}, &InsufficientHistoryError{
			Assumption: "revenue_growth", Required: 2, Available: len(window),
		}
	}
	avg := sum.Div(decimal.NewFromInt(int64(pairs)))
	return Assumption{Value: clamp(avg, growthFloor, growthCeil), Source: SourceDerived}, nil
}

func resolveRatio(window []model.HistoricalYear, name string, override *float64,
	num, den func(model.HistoricalYear) decimal.Decimal, lo, hi *decimal.Decimal) (Assumption, error) {

	if override != nil {
		return Assumption{Value: decimal.NewFromFloat(*override), Source: SourceOverridden}, nil
	}
	avg, usable := avgRatio(window, num, den)
	if usable == 0 {
		return Assumption{}, &InsufficientHistoryError{
			Assumption: name, Required: 1, Available: 0,
		}
	}
	if lo != nil {
		avg = clamp(avg, *lo, *hi)
	}
	return Assumption{Value: avg, Source: SourceDerived}, nil
}

// resolveRateWithDefault is for rate-style assumptions whose denominator can
// legitimately be zero across the whole window (a company with no debt, no
// securities). The fallback keeps the projection runnable.
func resolveRateWithDefault(window []model.HistoricalYear, override *float64,
	num, den func(model.HistoricalYear) decimal.Decimal,
	fallback, lo, hi decimal.Decimal) Assumption {

	if override != nil {
		return Assumption{Value: decimal.NewFromFloat(*override), Source: SourceOverridden}
	}
	avg, usable := avgRatio(window, num, den)
	if usable == 0 {
		return Assumption{Value: clamp(fallback, lo, hi), Source: SourceDefault}
	}
	return Assumption{Value: clamp(avg, lo, hi), Source: SourceDerived}
}

func avgRatio(window []model.HistoricalYear,
	num, den func(model.HistoricalYear) decimal.Decimal) (decimal.Decimal, int) {

	sum := decimal.Zero
	usable := 0
	for _, y := range window {
		d := den(y)
		if d.IsZero() {
			continue
		}
		sum = sum.Add(num(y).Div(d))
		usable++
	}
	if usable == 0 {
		return decimal.Zero, 0
	}
	return sum.Div(decimal.NewFromInt(int64(usable))), usable
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
