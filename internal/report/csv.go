package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fincast-dev/fincast/internal/forecast"
	"github.com/fincast-dev/fincast/internal/model"
)

// Exported file names, written into the forecasts directory of a workspace.
const (
	IncomeCSV   = "income-statement.csv"
	CashCSV     = "cash-budget.csv"
	DebtCSV     = "debt-schedule.csv"
	BalanceCSV  = "balance-sheet.csv"
	BacktestCSV = "backtest.csv"
)

// ExportResult writes the run's statements as CSVs under dir, line items as
// rows and years as columns, mirroring the input statement layout.
func ExportResult(dir string, res *forecast.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	years := make([]int, len(res.Income))
	for i, is := range res.Income {
		years[i] = is.Year
	}

	if err := writeStatementCSV(filepath.Join(dir, IncomeCSV), years, incomeLines(res.Income)); err != nil {
		return err
	}
	if err := writeStatementCSV(filepath.Join(dir, CashCSV), years, cashLines(res.CashBudget)); err != nil {
		return err
	}
	if err := writeStatementCSV(filepath.Join(dir, DebtCSV), years, debtLines(res.Debt)); err != nil {
		return err
	}
	return writeStatementCSV(filepath.Join(dir, BalanceCSV), years, balanceLines(res.BalanceSheet))
}

// ExportBacktest writes backtest variances as one row per year and line item.
func ExportBacktest(dir string, bt *forecast.BacktestResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, BacktestCSV))
	if err != nil {
		return fmt.Errorf("creating %s: %w", BacktestCSV, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write([]string{"year", "line_item", "forecast", "actual", "variance", "variance_pct"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, v := range bt.Variances {
		row := []string{
			strconv.Itoa(v.Year), v.LineItem,
			v.Forecast.String(), v.Actual.String(),
			v.Absolute.String(), v.Percent.StringFixed(4),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing %d/%s: %w", v.Year, v.LineItem, err)
		}
	}
	return cw.Error()
}

// statementLine is one exported row: a label and its value per year.
type statementLine struct {
	label  string
	values []decimal.Decimal
}

func writeStatementCSV(path string, years []int, lines []statementLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	header := make([]string, 0, len(years)+1)
	header = append(header, "line_item")
	for _, y := range years {
		header = append(header, strconv.Itoa(y))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, line := range lines {
		row := make([]string, 0, len(line.values)+1)
		row = append(row, line.label)
		for _, v := range line.values {
			row = append(row, v.String())
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing line %q: %w", line.label, err)
		}
	}
	return cw.Error()
}

func incomeLines(periods []model.IncomeStatementPeriod) []statementLine {
	line := func(label string, get func(model.IncomeStatementPeriod) decimal.Decimal) statementLine {
		return collect(label, periods, get)
	}
	return []statementLine{
		line("Revenue", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.Revenue }),
		line("Cost Of Goods Sold", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.COGS }),
		line("Gross Profit", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.GrossProfit }),
		line("Selling General And Administrative", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.SGA }),
		line("Depreciation", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.Depreciation }),
		line("Operating Income", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.EBIT }),
		line("Interest Expense", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.InterestExpense }),
		line("Interest Income", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.InterestIncome }),
		line("Pretax Income", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.PretaxIncome }),
		line("Tax Provision", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.Tax }),
		line("Net Income", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.NetIncome }),
		line("Dividends Declared", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.DividendsDeclared }),
	}
}

func cashLines(periods []model.CashBudgetPeriod) []statementLine {
	line := func(label string, get func(model.CashBudgetPeriod) decimal.Decimal) statementLine {
		return collect(label, periods, get)
	}
	return []statementLine{
		line("Beginning Cash", func(p model.CashBudgetPeriod) decimal.Decimal { return p.BeginningCash }),
		line("Operating", func(p model.CashBudgetPeriod) decimal.Decimal { return p.Operating }),
		line("Investing", func(p model.CashBudgetPeriod) decimal.Decimal { return p.Investing }),
		line("Financing", func(p model.CashBudgetPeriod) decimal.Decimal { return p.Financing }),
		line("External", func(p model.CashBudgetPeriod) decimal.Decimal { return p.External }),
		line("Discretionary", func(p model.CashBudgetPeriod) decimal.Decimal { return p.Discretionary }),
		line("Net Change", func(p model.CashBudgetPeriod) decimal.Decimal { return p.NetChange }),
		line("Ending Cash", func(p model.CashBudgetPeriod) decimal.Decimal { return p.EndingCash }),
	}
}

func debtLines(periods []model.DebtScheduleState) []statementLine {
	line := func(label string, get func(model.DebtScheduleState) decimal.Decimal) statementLine {
		return collect(label, periods, get)
	}
	return []statementLine{
		line("ST Beginning", func(p model.DebtScheduleState) decimal.Decimal { return p.STBeginning }),
		line("ST Draw", func(p model.DebtScheduleState) decimal.Decimal { return p.STDraw }),
		line("ST Repayment", func(p model.DebtScheduleState) decimal.Decimal { return p.STRepayment }),
		line("ST Ending", func(p model.DebtScheduleState) decimal.Decimal { return p.STEnding }),
		line("LT Beginning", func(p model.DebtScheduleState) decimal.Decimal { return p.LTBeginning }),
		line("LT Draw", func(p model.DebtScheduleState) decimal.Decimal { return p.LTDraw }),
		line("LT Repayment", func(p model.DebtScheduleState) decimal.Decimal { return p.LTRepayment }),
		line("LT Ending", func(p model.DebtScheduleState) decimal.Decimal { return p.LTEnding }),
		line("Interest Expense", func(p model.DebtScheduleState) decimal.Decimal { return p.InterestExpense }),
	}
}

func balanceLines(periods []model.BalanceSheetPeriod) []statementLine {
	line := func(label string, get func(model.BalanceSheetPeriod) decimal.Decimal) statementLine {
		return collect(label, periods, get)
	}
	return []statementLine{
		line("Cash", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.Cash }),
		line("Short Term Investments", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.STInvestment }),
		line("Accounts Receivable", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.AccountsReceivable }),
		line("Inventory", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.Inventory }),
		line("Other Current Assets", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.OtherCurrentAssets }),
		line("Total Current Assets", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.CurrentAssets }),
		line("Net PPE", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.NetPPE }),
		line("Goodwill", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.Goodwill }),
		line("Intangibles", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.Intangibles }),
		line("Other Non Current Assets", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.OtherNonCurrentAssets }),
		line("Total Assets", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.TotalAssets }),
		line("Accounts Payable", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.AccountsPayable }),
		line("Short Term Debt", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.ShortTermDebt }),
		line("Other Current Liabilities", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.OtherCurrentLiabilities }),
		line("Total Current Liabilities", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.CurrentLiabilities }),
		line("Long Term Debt", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.LongTermDebt }),
		line("Other Non Current Liabilities", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.OtherNonCurrentLiabilities }),
		line("Total Liabilities", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.TotalLiabilities }),
		line("Retained Earnings", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.RetainedEarnings }),
		line("Other Equity", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.OtherEquity }),
		line("Total Equity", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.TotalEquity }),
	}
}

func collect[T any](label string, periods []T, get func(T) decimal.Decimal) statementLine {
	values := make([]decimal.Decimal, len(periods))
	for i, p := range periods {
		values[i] = get(p)
	}
	return statementLine{label: label, values: values}
}
