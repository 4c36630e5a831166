package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fincast-dev/fincast/internal/assumptions"
	"github.com/fincast-dev/fincast/internal/forecast"
	"github.com/fincast-dev/fincast/internal/model"
)

const labelWidth = 28

// RenderResult formats a forecast run as aligned text tables, one column per
// year. The first column carries the base year's actuals.
func RenderResult(res *forecast.Result) string {
	var b strings.Builder

	years := make([]int, len(res.Income))
	for i, is := range res.Income {
		years[i] = is.Year
	}

	writeHeader(&b, "INCOME STATEMENT", years)
	income := func(label string, get func(model.IncomeStatementPeriod) decimal.Decimal) {
		writeRow(&b, label, res.Income, get)
	}
	income("Revenue", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.Revenue })
	income("COGS", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.COGS })
	income("Gross profit", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.GrossProfit })
	income("SG&A", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.SGA })
	income("Depreciation", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.Depreciation })
	income("EBIT", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.EBIT })
	income("Interest expense", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.InterestExpense })
	income("Interest income", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.InterestIncome })
	income("Pretax income", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.PretaxIncome })
	income("Tax", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.Tax })
	income("Net income", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.NetIncome })
	income("Dividends declared", func(p model.IncomeStatementPeriod) decimal.Decimal { return p.DividendsDeclared })

	writeHeader(&b, "CASH BUDGET", years)
	cash := func(label string, get func(model.CashBudgetPeriod) decimal.Decimal) {
		writeRow(&b, label, res.CashBudget, get)
	}
	cash("Beginning cash", func(p model.CashBudgetPeriod) decimal.Decimal { return p.BeginningCash })
	cash("Operating", func(p model.CashBudgetPeriod) decimal.Decimal { return p.Operating })
	cash("Investing", func(p model.CashBudgetPeriod) decimal.Decimal { return p.Investing })
	cash("Financing", func(p model.CashBudgetPeriod) decimal.Decimal { return p.Financing })
	cash("External", func(p model.CashBudgetPeriod) decimal.Decimal { return p.External })
	cash("Discretionary", func(p model.CashBudgetPeriod) decimal.Decimal { return p.Discretionary })
	cash("Net change", func(p model.CashBudgetPeriod) decimal.Decimal { return p.NetChange })
	cash("Ending cash", func(p model.CashBudgetPeriod) decimal.Decimal { return p.EndingCash })

	writeHeader(&b, "DEBT SCHEDULE", years)
	debt := func(label string, get func(model.DebtScheduleState) decimal.Decimal) {
		writeRow(&b, label, res.Debt, get)
	}
	debt("ST beginning", func(p model.DebtScheduleState) decimal.Decimal { return p.STBeginning })
	debt("ST draw", func(p model.DebtScheduleState) decimal.Decimal { return p.STDraw })
	debt("ST repayment", func(p model.DebtScheduleState) decimal.Decimal { return p.STRepayment })
	debt("ST ending", func(p model.DebtScheduleState) decimal.Decimal { return p.STEnding })
	debt("LT beginning", func(p model.DebtScheduleState) decimal.Decimal { return p.LTBeginning })
	debt("LT draw", func(p model.DebtScheduleState) decimal.Decimal { return p.LTDraw })
	debt("LT repayment", func(p model.DebtScheduleState) decimal.Decimal { return p.LTRepayment })
	debt("LT ending", func(p model.DebtScheduleState) decimal.Decimal { return p.LTEnding })

	writeHeader(&b, "BALANCE SHEET", years)
	bs := func(label string, get func(model.BalanceSheetPeriod) decimal.Decimal) {
		writeRow(&b, label, res.BalanceSheet, get)
	}
	bs("Cash", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.Cash })
	bs("ST investments", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.STInvestment })
	bs("Accounts receivable", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.AccountsReceivable })
	bs("Inventory", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.Inventory })
	bs("Current assets", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.CurrentAssets })
	bs("Net PPE", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.NetPPE })
	bs("Total assets", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.TotalAssets })
	bs("Accounts payable", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.AccountsPayable })
	bs("Short-term debt", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.ShortTermDebt })
	bs("Long-term debt", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.LongTermDebt })
	bs("Total liabilities", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.TotalLiabilities })
	bs("Retained earnings", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.RetainedEarnings })
	bs("Total equity", func(p model.BalanceSheetPeriod) decimal.Decimal { return p.TotalEquity })

	b.WriteString("\nBALANCE CHECK\n")
	for _, check := range res.Checks {
		status := "ok"
		if !check.Balanced {
			status = fmt.Sprintf("OFF by %s", check.Residual.StringFixed(6))
		}
		fmt.Fprintf(&b, "  %d  %s\n", check.Year, status)
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\nWARNINGS\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}

	b.WriteString("\nASSUMPTIONS\n")
	for _, a := range assumptionRows(res.Assumptions) {
		fmt.Fprintf(&b, "  %-*s %12s  (%s)\n", labelWidth, a.name, a.value.StringFixed(4), a.source)
	}
	return b.String()
}

// RenderBacktest formats backtest variances as one table.
func RenderBacktest(bt *forecast.BacktestResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BACKTEST from base year %d\n\n", bt.BaseYear)
	fmt.Fprintf(&b, "  %-6s %-14s %14s %14s %14s %10s\n",
		"year", "line item", "forecast", "actual", "variance", "pct")
	for _, v := range bt.Variances {
		fmt.Fprintf(&b, "  %-6d %-14s %14s %14s %14s %9s%%\n",
			v.Year, v.LineItem,
			v.Forecast.StringFixed(2), v.Actual.StringFixed(2),
			v.Absolute.StringFixed(2), v.Percent.StringFixed(2))
	}
	return b.String()
}

type assumptionRow struct {
	name   string
	value  decimal.Decimal
	source assumptions.Provenance
}

func assumptionRows(a assumptions.Set) []assumptionRow {
	return []assumptionRow{
		{"revenue_growth", a.RevenueGrowth.Value, a.RevenueGrowth.Source},
		{"cogs_pct_revenue", a.COGSPctRevenue.Value, a.COGSPctRevenue.Source},
		{"sga_pct_revenue", a.SGAPctRevenue.Value, a.SGAPctRevenue.Source},
		{"tax_rate", a.TaxRate.Value, a.TaxRate.Source},
		{"payout_ratio", a.PayoutRatio.Value, a.PayoutRatio.Source},
		{"repurchase_pct_ni", a.RepurchasePctNI.Value, a.RepurchasePctNI.Source},
		{"ar_pct_revenue", a.ARPctRevenue.Value, a.ARPctRevenue.Source},
		{"inventory_pct_cogs", a.InventoryPctCOGS.Value, a.InventoryPctCOGS.Source},
		{"ap_pct_cogs", a.APPctCOGS.Value, a.APPctCOGS.Source},
		{"capex_pct_revenue", a.CapexPctRevenue.Value, a.CapexPctRevenue.Source},
		{"depreciation_rate", a.DepreciationRate.Value, a.DepreciationRate.Source},
		{"cost_of_debt", a.CostOfDebt.Value, a.CostOfDebt.Source},
		{"return_st_investment", a.ReturnSTInvestment.Value, a.ReturnSTInvestment.Source},
		{"min_cash_pct_revenue", a.MinCashPctRevenue.Value, a.MinCashPctRevenue.Source},
		{"pct_financing_with_debt", a.PctFinancingWithDebt.Value, a.PctFinancingWithDebt.Source},
	}
}

func writeHeader(b *strings.Builder, title string, years []int) {
	fmt.Fprintf(b, "\n%s\n", title)
	fmt.Fprintf(b, "  %-*s", labelWidth, "")
	for _, y := range years {
		fmt.Fprintf(b, " %12d", y)
	}
	b.WriteString("\n")
}

func writeRow[T any](b *strings.Builder, label string, periods []T, get func(T) decimal.Decimal) {
	fmt.Fprintf(b, "  %-*s", labelWidth, label)
	for _, p := range periods {
		fmt.Fprintf(b, " %12s", get(p).StringFixed(2))
	}
	b.WriteString("\n")
}
