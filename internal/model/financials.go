package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// HistoricalYear holds one fiscal year of reported financials.
// All amounts are in the reporting currency (typically millions).
type HistoricalYear struct {
	Year int

	// Income statement
	Revenue         decimal.Decimal
	COGS            decimal.Decimal
	GrossProfit     decimal.Decimal
	SGA             decimal.Decimal
	Depreciation    decimal.Decimal
	OperatingIncome decimal.Decimal
	InterestExpense decimal.Decimal
	InterestIncome  decimal.Decimal
	PretaxIncome    decimal.Decimal
	TaxProvision    decimal.Decimal
	NetIncome       decimal.Decimal

	// Balance sheet
	Cash                    decimal.Decimal
	AccountsReceivable      decimal.Decimal
	Inventory               decimal.Decimal
	CurrentAssets           decimal.Decimal
	GrossPPE                decimal.Decimal
	AccumulatedDepreciation decimal.Decimal
	NetPPE                  decimal.Decimal
	Goodwill                decimal.Decimal
	Intangibles             decimal.Decimal
	TotalAssets             decimal.Decimal
	AccountsPayable         decimal.Decimal
	ShortTermDebt           decimal.Decimal
	CurrentLiabilities      decimal.Decimal
	LongTermDebt            decimal.Decimal
	TotalLiabilities        decimal.Decimal
	RetainedEarnings        decimal.Decimal
	TotalEquity             decimal.Decimal

	// Cash flow statement
	OperatingCashFlow  decimal.Decimal
	CapitalExpenditure decimal.Decimal // stored positive
	DividendsPaid      decimal.Decimal // stored positive
	StockRepurchase    decimal.Decimal // stored positive
}

// HistoricalFinancials is an ordered sequence of reported fiscal years,
// oldest first. It is read-only to the forecast pipeline.
type HistoricalFinancials struct {
	Years []HistoricalYear
}

// NewHistoricalFinancials sorts years ascending and returns the container.
func NewHistoricalFinancials(years []HistoricalYear) HistoricalFinancials {
	sorted := make([]HistoricalYear, len(years))
	copy(sorted, years)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })
	return HistoricalFinancials{Years: sorted}
}

// Len returns the number of historical years.
func (h HistoricalFinancials) Len() int {
	return len(h.Years)
}

// Latest returns the most recent year. ok is false when empty.
func (h HistoricalFinancials) Latest() (HistoricalYear, bool) {
	if len(h.Years) == 0 {
		return HistoricalYear{}, false
	}
	return h.Years[len(h.Years)-1], true
}

// ByYear returns the entry for a fiscal year.
func (h HistoricalFinancials) ByYear(year int) (HistoricalYear, bool) {
	for _, y := range h.Years {
		if y.Year == year {
			return y, true
		}
	}
	return HistoricalYear{}, false
}

// Through returns a copy containing only years up to and including baseYear.
// Used for backtests, where later actuals must not leak into the forecast.
func (h HistoricalFinancials) Through(baseYear int) HistoricalFinancials {
	var years []HistoricalYear
	for _, y := range h.Years {
		if y.Year <= baseYear {
			years = append(years, y)
		}
	}
	return HistoricalFinancials{Years: years}
}

// LatestYear returns the most recent fiscal year number, or 0 when empty.
func (h HistoricalFinancials) LatestYear() int {
	if y, ok := h.Latest(); ok {
		return y.Year
	}
	return 0
}
