package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fincast-dev/fincast/internal/assumptions"
	"github.com/fincast-dev/fincast/internal/config"
	"github.com/fincast-dev/fincast/internal/model"
)

// Engine runs the forecast pipeline: income statement, cash budget and debt
// schedule, balance sheet, balance check, one year at a time. Each year is
// fully determined by the prior year's closing state and the assumption set,
// so a run is deterministic and needs no iterative solving.
type Engine struct {
	cfg  *config.Config
	hist model.HistoricalFinancials
	asm  assumptions.Set
	log  *zap.Logger
}

// Result is the full output of one forecast run. All statement slices are
// parallel and include the base year at index 0; forecast years follow.
type Result struct {
	BaseYear     int
	Assumptions  assumptions.Set
	Income       []model.IncomeStatementPeriod
	CashBudget   []model.CashBudgetPeriod
	Debt         []model.DebtScheduleState
	BalanceSheet []model.BalanceSheetPeriod
	Checks       []model.BalanceCheckResult
	Warnings     []string
}

// periodState is the closing state a forecast year reads from its
// predecessor.
type periodState struct {
	income  model.IncomeStatementPeriod
	balance model.BalanceSheetPeriod
	debt    model.DebtScheduleState
}

// NewEngine wires a forecast engine. The assumption set must already be
// resolved; the logger may not be nil.
func NewEngine(cfg *config.Config, hist model.HistoricalFinancials, asm assumptions.Set, log *zap.Logger) *Engine {
	return &Engine{cfg: cfg, hist: hist, asm: asm, log: log}
}

// Run projects cfg.Forecast.NForecastYears years forward from the base year.
func (e *Engine) Run() (*Result, error) {
	base, ok := e.baseYear()
	if !ok {
		return nil, fmt.Errorf("base year %d not present in history", e.cfg.Forecast.BaseYear)
	}

	state := e.seedBase(base)

	res := &Result{
		BaseYear:     base.Year,
		Assumptions:  e.asm,
		Income:       []model.IncomeStatementPeriod{state.income},
		CashBudget:   []model.CashBudgetPeriod{baseCashBudget(state)},
		Debt:         []model.DebtScheduleState{state.debt},
		BalanceSheet: []model.BalanceSheetPeriod{state.balance},
	}
	res.Checks = append(res.Checks, checkBalance(state.balance))

	debt := newDebtManager(state.debt.STEnding, state.debt.LTEnding, e.asm.LTLoanYears)

	for i := 1; i <= e.cfg.Forecast.NForecastYears; i++ {
		year := base.Year + i

		is := e.projectIncome(year, &state)
		cb, ds, warnings := e.buildCashBudget(year, &state, is, debt)
		bs := e.buildBalanceSheet(year, &state, is, cb, ds)
		check := checkBalance(bs)

		if !check.Balanced {
			warnings = append(warnings, (&BalanceCheckFailure{Year: year, Residual: check.Residual}).Error())
		}
		for _, w := range warnings {
			e.log.Warn("forecast warning", zap.Int("year", year), zap.String("warning", w))
		}

		e.log.Debug("projected year",
			zap.Int("year", year),
			zap.String("revenue", is.Revenue.StringFixed(2)),
			zap.String("net_income", is.NetIncome.StringFixed(2)),
			zap.String("ending_cash", cb.EndingCash.StringFixed(2)))

		res.Income = append(res.Income, is)
		res.CashBudget = append(res.CashBudget, cb)
		res.Debt = append(res.Debt, ds)
		res.BalanceSheet = append(res.BalanceSheet, bs)
		res.Checks = append(res.Checks, check)
		res.Warnings = append(res.Warnings, warnings...)

		state = periodState{income: is, balance: bs, debt: ds}
	}
	return res, nil
}

func (e *Engine) baseYear() (model.HistoricalYear, bool) {
	if e.cfg.Forecast.BaseYear > 0 {
		return e.hist.ByYear(e.cfg.Forecast.BaseYear)
	}
	return e.hist.Latest()
}

// seedBase converts the historical base year into the period-zero state the
// first forecast year reads. Residual "other" lines are sized so the seeded
// balance sheet reproduces the historical totals exactly.
func (e *Engine) seedBase(base model.HistoricalYear) periodState {
	is := model.IncomeStatementPeriod{
		Year:              base.Year,
		Revenue:           base.Revenue,
		COGS:              base.COGS,
		GrossProfit:       base.GrossProfit,
		SGA:               base.SGA,
		Depreciation:      base.Depreciation,
		EBIT:              base.OperatingIncome,
		InterestExpense:   base.InterestExpense,
		InterestIncome:    base.InterestIncome,
		PretaxIncome:      base.PretaxIncome,
		Tax:               base.TaxProvision,
		NetIncome:         base.NetIncome,
		DividendsDeclared: base.DividendsPaid,
	}

	otherCA := base.CurrentAssets.Sub(base.Cash).Sub(base.AccountsReceivable).Sub(base.Inventory)
	otherNCA := base.TotalAssets.Sub(base.CurrentAssets).
		Sub(base.NetPPE).Sub(base.Goodwill).Sub(base.Intangibles)
	otherCL := base.CurrentLiabilities.Sub(base.AccountsPayable).Sub(base.ShortTermDebt)
	otherNCL := base.TotalLiabilities.Sub(base.CurrentLiabilities).Sub(base.LongTermDebt)
	otherEquity := base.TotalEquity.Sub(base.RetainedEarnings)

	bs := model.BalanceSheetPeriod{
		Year:                       base.Year,
		Cash:                       base.Cash,
		STInvestment:               decimal.Zero,
		AccountsReceivable:         base.AccountsReceivable,
		Inventory:                  base.Inventory,
		OtherCurrentAssets:         otherCA,
		CurrentAssets:              base.CurrentAssets,
		GrossPPE:                   base.GrossPPE,
		AccumulatedDepreciation:    base.AccumulatedDepreciation,
		NetPPE:                     base.NetPPE,
		Goodwill:                   base.Goodwill,
		Intangibles:                base.Intangibles,
		OtherNonCurrentAssets:      otherNCA,
		TotalAssets:                base.TotalAssets,
		AccountsPayable:            base.AccountsPayable,
		ShortTermDebt:              base.ShortTermDebt,
		OtherCurrentLiabilities:    otherCL,
		CurrentLiabilities:         base.CurrentLiabilities,
		LongTermDebt:               base.LongTermDebt,
		OtherNonCurrentLiabilities: otherNCL,
		TotalLiabilities:           base.TotalLiabilities,
		RetainedEarnings:           base.RetainedEarnings,
		OtherEquity:                otherEquity,
		TotalEquity:                base.TotalEquity,
	}

	ds := model.DebtScheduleState{
		Year:            base.Year,
		STBeginning:     base.ShortTermDebt,
		STEnding:        base.ShortTermDebt,
		LTBeginning:     base.LongTermDebt,
		LTEnding:        base.LongTermDebt,
		InterestExpense: base.InterestExpense,
	}

	return periodState{income: is, balance: bs, debt: ds}
}

// baseCashBudget is the period-zero placeholder: no flows, ending cash equal
// to the historical balance.
func baseCashBudget(state periodState) model.CashBudgetPeriod {
	return model.CashBudgetPeriod{
		Year:          state.income.Year,
		BeginningCash: state.balance.Cash,
		EndingCash:    state.balance.Cash,
	}
}

// minCashFor returns the cash floor for a forecast year: the configured
// absolute threshold when set, otherwise a fraction of that year's revenue.
func (e *Engine) minCashFor(revenue decimal.Decimal) decimal.Decimal {
	if e.asm.MinimumCashThreshold.IsPositive() {
		return e.asm.MinimumCashThreshold
	}
	return revenue.Mul(e.asm.MinCashPctRevenue.Value)
}
