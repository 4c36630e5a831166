package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/fincast-dev/fincast/internal/model"
)

// projectIncome builds the income statement for one forecast year from the
// prior period's closing state. Interest expense is charged on the prior
// period's ending debt balances and interest income on the prior period's
// short-term investment, so the statement never depends on this period's
// financing decision.
func (e *Engine) projectIncome(year int, prev *periodState) model.IncomeStatementPeriod {
	a := e.asm

	revenue := prev.income.Revenue.Mul(decimal.NewFromInt(1).Add(a.RevenueGrowth.Value))
	cogs := revenue.Mul(a.COGSPctRevenue.Value)
	gross := revenue.Sub(cogs)
	sga := revenue.Mul(a.SGAPctRevenue.Value)
	depr := prev.balance.NetPPE.Mul(a.DepreciationRate.Value)
	ebit := gross.Sub(sga).Sub(depr)

	priorDebt := prev.debt.STEnding.Add(prev.debt.LTEnding)
	interest := priorDebt.Mul(a.CostOfDebt.Value)
	intIncome := prev.balance.STInvestment.Mul(a.ReturnSTInvestment.Value)

	ebt := ebit.Sub(interest).Add(intIncome)
	tax := decimal.Zero
	if ebt.IsPositive() {
		tax = ebt.Mul(a.TaxRate.Value)
	}
	ni := ebt.Sub(tax)

	declared := decimal.Zero
	if ni.IsPositive() {
		declared = ni.Mul(a.PayoutRatio.Value)
	}

	return model.IncomeStatementPeriod{
		Year:              year,
		Revenue:           revenue,
		COGS:              cogs,
		GrossProfit:       gross,
		SGA:               sga,
		Depreciation:      depr,
		EBIT:              ebit,
		InterestExpense:   interest,
		InterestIncome:    intIncome,
		PretaxIncome:      ebt,
		Tax:               tax,
		NetIncome:         ni,
		DividendsDeclared: declared,
	}
}

// repurchaseFor sizes this period's stock repurchase off net income. Loss
// years buy back nothing.
func (e *Engine) repurchaseFor(is model.IncomeStatementPeriod) decimal.Decimal {
	if !is.NetIncome.IsPositive() {
		return decimal.Zero
	}
	return is.NetIncome.Mul(e.asm.RepurchasePctNI.Value)
}
