package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fincast-dev/fincast/internal/assumptions"
	"github.com/fincast-dev/fincast/internal/config"
	"github.com/fincast-dev/fincast/internal/model"
)

// BacktestResult pairs a historical-base forecast with its variance against
// reported actuals.
type BacktestResult struct {
	BaseYear  int
	Forecast  *Result
	Variances []model.BacktestVariance
}

// Backtest rewinds to cfg.Forecast.BaseYear, resolves assumptions and runs
// the forecast using only history up to that year, then scores each forecast
// year against the actuals that followed. Years beyond the available actuals
// are skipped.
func Backtest(cfg *config.Config, hist model.HistoricalFinancials, log *zap.Logger) (*BacktestResult, error) {
	baseYear := cfg.Forecast.BaseYear
	if baseYear <= 0 {
		return nil, fmt.Errorf("backtest requires an explicit base_year in the config")
	}
	if baseYear >= hist.LatestYear() {
		return nil, fmt.Errorf("base year %d leaves no actuals to compare against (history ends %d)",
			baseYear, hist.LatestYear())
	}

	truncated := hist.Through(baseYear)
	asm, err := assumptions.Resolve(truncated, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving assumptions as of %d: %w", baseYear, err)
	}

	res, err := NewEngine(cfg, truncated, asm, log).Run()
	if err != nil {
		return nil, err
	}

	bt := &BacktestResult{BaseYear: baseYear, Forecast: res}
	for i := 1; i < len(res.Income); i++ {
		year := res.Income[i].Year
		actual, ok := hist.ByYear(year)
		if !ok {
			continue
		}
		bt.Variances = append(bt.Variances,
			variance(year, "revenue", res.Income[i].Revenue, actual.Revenue),
			variance(year, "gross_profit", res.Income[i].GrossProfit, actual.GrossProfit),
			variance(year, "net_income", res.Income[i].NetIncome, actual.NetIncome),
			variance(year, "ending_cash", res.CashBudget[i].EndingCash, actual.Cash),
			variance(year, "total_assets", res.BalanceSheet[i].TotalAssets, actual.TotalAssets),
			variance(year, "total_equity", res.BalanceSheet[i].TotalEquity, actual.TotalEquity),
		)
	}
	log.Info("backtest complete",
		zap.Int("base_year", baseYear),
		zap.Int("scored_years", len(bt.Variances)/6))
	return bt, nil
}

func variance(year int, item string, forecast, actual decimal.Decimal) model.BacktestVariance {
	abs := forecast.Sub(actual)
	pct := decimal.Zero
	if !actual.IsZero() {
		pct = abs.Div(actual.Abs()).Mul(decimal.NewFromInt(100))
	}
	return model.BacktestVariance{
		Year:     year,
		LineItem: item,
		Forecast: forecast,
		Actual:   actual,
		Absolute: abs,
		Percent:  pct,
	}
}
