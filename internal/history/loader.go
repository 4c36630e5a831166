package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fincast-dev/fincast/internal/model"
)

// Statement file names expected inside the data directory.
const (
	IncomeStatementFile = "income-statement.csv"
	BalanceSheetFile    = "balance-sheet.csv"
	CashFlowFile        = "cash-flow.csv"
)

// MissingDataError reports a required line item absent for a fiscal year.
type MissingDataError struct {
	Year  int
	Field string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missing required line item %q for fiscal year %d", e.Field, e.Year)
}

type statementKind int

const (
	income statementKind = iota
	balance
	cashflow
)

// fieldSpec maps one model field to its line item aliases in a statement.
// Required fields raise MissingDataError when absent; optional fields default
// to zero. Absolute fields are stored unsigned regardless of the cash flow
// statement's sign convention.
type fieldSpec struct {
	name     string
	kind     statementKind
	aliases  []string
	required bool
	absolute bool
	assign   func(*model.HistoricalYear, decimal.Decimal)
}

var fields = []fieldSpec{
	{"revenue", income, []string{"revenue", "total revenue", "net sales"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.Revenue = v }},
	{"cogs", income, []string{"cost of goods sold", "cost of revenue", "cogs"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.COGS = v }},
	{"gross_profit", income, []string{"gross profit"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.GrossProfit = v }},
	{"sga", income, []string{"selling general and administrative", "sga", "operating expenses"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.SGA = v }},
	{"depreciation", income, []string{"depreciation", "depreciation and amortization"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.Depreciation = v }},
	{"operating_income", income, []string{"operating income", "ebit"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.OperatingIncome = v }},
	{"interest_expense", income, []string{"interest expense"}, false, true,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.InterestExpense = v }},
	{"interest_income", income, []string{"interest income", "interest and investment income"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.InterestIncome = v }},
	{"pretax_income", income, []string{"pretax income", "income before tax"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.PretaxIncome = v }},
	{"tax_provision", income, []string{"tax provision", "income tax expense"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.TaxProvision = v }},
	{"net_income", income, []string{"net income"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.NetIncome = v }},

	{"cash", balance, []string{"cash", "cash and cash equivalents"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.Cash = v }},
	{"accounts_receivable", balance, []string{"accounts receivable", "receivables"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.AccountsReceivable = v }},
	{"inventory", balance, []string{"inventory"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.Inventory = v }},
	{"current_assets", balance, []string{"current assets", "total current assets"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.CurrentAssets = v }},
	{"gross_ppe", balance, []string{"gross ppe", "gross property plant and equipment"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.GrossPPE = v }},
	{"accumulated_depreciation", balance, []string{"accumulated depreciation"}, false, true,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.AccumulatedDepreciation = v }},
	{"net_ppe", balance, []string{"net ppe", "net property plant and equipment"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.NetPPE = v }},
	{"goodwill", balance, []string{"goodwill"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.Goodwill = v }},
	{"intangibles", balance, []string{"intangibles", "other intangible assets"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.Intangibles = v }},
	{"total_assets", balance, []string{"total assets"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.TotalAssets = v }},
	{"accounts_payable", balance, []string{"accounts payable", "payables"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.AccountsPayable = v }},
	{"short_term_debt", balance, []string{"short term debt", "current debt"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.ShortTermDebt = v }},
	{"current_liabilities", balance, []string{"current liabilities", "total current liabilities"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.CurrentLiabilities = v }},
	{"long_term_debt", balance, []string{"long term debt"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.LongTermDebt = v }},
	{"total_liabilities", balance, []string{"total liabilities", "total liabilities net minority interest"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.TotalLiabilities = v }},
	{"retained_earnings", balance, []string{"retained earnings"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.RetainedEarnings = v }},
	{"total_equity", balance, []string{"total equity", "stockholders equity", "total equity gross minority interest"}, true, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.TotalEquity = v }},

	{"operating_cash_flow", cashflow, []string{"operating cash flow", "cash flow from operations"}, false, false,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.OperatingCashFlow = v }},
	{"capital_expenditure", cashflow, []string{"capital expenditure", "capital expenditures", "capex"}, true, true,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.CapitalExpenditure = v }},
	{"dividends_paid", cashflow, []string{"dividends paid", "cash dividends paid", "common stock dividend paid"}, false, true,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.DividendsPaid = v }},
	{"stock_repurchase", cashflow, []string{"stock repurchase", "repurchase of capital stock"}, false, true,
		func(y *model.HistoricalYear, v decimal.Decimal) { y.StockRepurchase = v }},
}

// Load reads the three statement CSVs from dir and assembles them into
// historical financials, one entry per fiscal year present in the income
// statement. Required line items absent for any year produce a
// MissingDataError.
func Load(dir string) (model.HistoricalFinancials, error) {
	tables := map[statementKind]statementTable{}
	for _, src := range []struct {
		kind statementKind
		name string
	}{
		{income, IncomeStatementFile},
		{balance, BalanceSheetFile},
		{cashflow, CashFlowFile},
	} {
		kind, name := src.kind, src.name
		table, err := readStatementFile(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				return model.HistoricalFinancials{}, fmt.Errorf("statement file %s not found in %s", name, dir)
			}
			return model.HistoricalFinancials{}, err
		}
		tables[kind] = table
	}

	yearSet := tables[income].years()
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) == 0 {
		return model.HistoricalFinancials{}, fmt.Errorf("no fiscal years found in %s", IncomeStatementFile)
	}

	out := make([]model.HistoricalYear, 0, len(years))
	for _, year := range years {
		y := model.HistoricalYear{Year: year}
		for _, f := range fields {
			v, ok := tables[f.kind].lookup(year, f.aliases)
			if !ok {
				if f.required {
					return model.HistoricalFinancials{}, &MissingDataError{Year: year, Field: f.name}
				}
				continue
			}
			if f.absolute {
				v = v.Abs()
			}
			f.assign(&y, v)
		}
		fillDerived(&y)
		out = append(out, y)
	}
	return model.NewHistoricalFinancials(out), nil
}

// fillDerived computes subtotal lines the source statements may omit.
func fillDerived(y *model.HistoricalYear) {
	if y.GrossProfit.IsZero() {
		y.GrossProfit = y.Revenue.Sub(y.COGS)
	}
	if y.OperatingIncome.IsZero() {
		y.OperatingIncome = y.GrossProfit.Sub(y.SGA).Sub(y.Depreciation)
	}
	if y.PretaxIncome.IsZero() {
		y.PretaxIncome = y.OperatingIncome.Sub(y.InterestExpense).Add(y.InterestIncome)
	}
	if y.TaxProvision.IsZero() {
		y.TaxProvision = y.PretaxIncome.Sub(y.NetIncome)
	}
	if y.NetPPE.IsZero() && !y.GrossPPE.IsZero() {
		y.NetPPE = y.GrossPPE.Sub(y.AccumulatedDepreciation)
	}
}
