package assumptions

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Provenance records where a resolved assumption value came from.
type Provenance string

const (
	// SourceDerived means the value was computed from historical ratios.
	SourceDerived Provenance = "derived"
	// SourceOverridden means the value was fixed in the config overrides.
	SourceOverridden Provenance = "overridden"
	// SourceDefault means no usable history existed and a documented
	// fallback was applied (rate-style assumptions only).
	SourceDefault Provenance = "default"
	// SourceConfig means the value is a fixed policy setting from the
	// config, never derived (financing mix, loan terms).
	SourceConfig Provenance = "config"
)

// Assumption is one resolved forecast input with its provenance.
type Assumption struct {
	Value  decimal.Decimal
	Source Provenance
}

// Set is a fully resolved set of forecast assumptions. Every field is present
// and numeric once Resolve returns; downstream projection never checks for
// absence.
type Set struct {
	RevenueGrowth      Assumption // year-over-year growth rate
	COGSPctRevenue     Assumption
	SGAPctRevenue      Assumption
	TaxRate            Assumption
	PayoutRatio        Assumption // dividends declared / net income
	RepurchasePctNI    Assumption // stock repurchases / net income
	ARPctRevenue       Assumption // receivables as a fraction of revenue (DSO/365)
	InventoryPctCOGS   Assumption
	APPctCOGS          Assumption
	CapexPctRevenue    Assumption
	DepreciationRate   Assumption // depreciation / beginning net PPE
	CostOfDebt         Assumption
	ReturnSTInvestment Assumption
	MinCashPctRevenue  Assumption // used when no absolute threshold is configured

	// Fixed financing policy, taken from config.
	PctFinancingWithDebt Assumption
	MinimumCashThreshold decimal.Decimal // absolute; zero means derive per period
	LTLoanYears          int
	STLoanYears          int
}

// InsufficientHistoryError reports that a required assumption could not be
// derived from the available historical years.
type InsufficientHistoryError struct {
	Assumption string
	Required   int
	Available  int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history for %s: need %d years, have %d",
		e.Assumption, e.Required, e.Available)
}
