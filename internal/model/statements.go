package model

import "github.com/shopspring/decimal"

// IncomeStatementPeriod is one forecast year's income statement.
// Index 0 of a forecast run carries base-year actuals.
type IncomeStatementPeriod struct {
	Year              int
	Revenue           decimal.Decimal
	COGS              decimal.Decimal
	GrossProfit       decimal.Decimal
	SGA               decimal.Decimal
	Depreciation      decimal.Decimal
	EBIT              decimal.Decimal
	InterestExpense   decimal.Decimal
	InterestIncome    decimal.Decimal
	PretaxIncome      decimal.Decimal
	Tax               decimal.Decimal
	NetIncome         decimal.Decimal
	DividendsDeclared decimal.Decimal // declared on this year's income, paid next year
}

// CashBudgetPeriod is one forecast year's cash budget, broken into the five
// cash flow categories. Invariant:
// EndingCash = BeginningCash + Operating + Investing + Financing + External + Discretionary.
type CashBudgetPeriod struct {
	Year          int
	BeginningCash decimal.Decimal
	Operating     decimal.Decimal // net income + depreciation - working capital change
	Investing     decimal.Decimal // -capex
	Financing     decimal.Decimal // debt draws - principal repayments
	External      decimal.Decimal // equity issued - dividends paid - repurchases
	Discretionary decimal.Decimal // ST investment redemption - new ST investment
	NetChange     decimal.Decimal
	EndingCash    decimal.Decimal
}

// DebtScheduleState is one forecast year's debt activity. Interest is always
// computed on the beginning balances, never on this period's endings.
type DebtScheduleState struct {
	Year             int
	STBeginning      decimal.Decimal
	STDraw           decimal.Decimal
	STRepayment      decimal.Decimal
	STEnding         decimal.Decimal
	LTBeginning      decimal.Decimal
	LTDraw           decimal.Decimal
	LTRepayment      decimal.Decimal
	LTEnding         decimal.Decimal
	InterestExpense  decimal.Decimal
	RepaymentClamped bool // a scheduled repayment exceeded the outstanding balance
}

// BalanceSheetPeriod is a full balance sheet snapshot. Cash is taken verbatim
// from the matching CashBudgetPeriod's ending cash.
type BalanceSheetPeriod struct {
	Year int

	Cash                    decimal.Decimal
	AccountsReceivable      decimal.Decimal
	Inventory               decimal.Decimal
	STInvestment            decimal.Decimal
	OtherCurrentAssets      decimal.Decimal
	CurrentAssets           decimal.Decimal
	GrossPPE                decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	NetPPE                  decimal.Decimal
	Goodwill                decimal.Decimal
	Intangibles             decimal.Decimal
	OtherNonCurrentAssets   decimal.Decimal
	TotalAssets             decimal.Decimal

	AccountsPayable            decimal.Decimal
	ShortTermDebt              decimal.Decimal
	OtherCurrentLiabilities    decimal.Decimal
	CurrentLiabilities         decimal.Decimal
	LongTermDebt               decimal.Decimal
	OtherNonCurrentLiabilities decimal.Decimal
	TotalLiabilities           decimal.Decimal

	RetainedEarnings decimal.Decimal
	OtherEquity      decimal.Decimal
	TotalEquity      decimal.Decimal
}

// BalanceCheckResult is the per-period residual of the accounting identity.
type BalanceCheckResult struct {
	Year     int
	Residual decimal.Decimal // TotalAssets - TotalLiabilities - TotalEquity
	Balanced bool            // |Residual| <= tolerance
}

// BacktestVariance compares one forecast line item against the reported actual.
type BacktestVariance struct {
	Year     int
	LineItem string
	Forecast decimal.Decimal
	Actual   decimal.Decimal
	Absolute decimal.Decimal // Forecast - Actual
	Percent  decimal.Decimal // Absolute / Actual * 100, zero when Actual is zero
}
