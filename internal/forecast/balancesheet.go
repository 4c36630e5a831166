package forecast

import (
	"github.com/fincast-dev/fincast/internal/model"
)

// buildBalanceSheet assembles the year's closing balance sheet. Cash comes
// verbatim from the cash budget's ending cash; no line exists to absorb an
// imbalance. Residual "other" lines carry forward unchanged from the base
// year.
func (e *Engine) buildBalanceSheet(year int, prev *periodState, is model.IncomeStatementPeriod,
	cb model.CashBudgetPeriod, ds model.DebtScheduleState) model.BalanceSheetPeriod {

	wc := e.workingCapitalFor(is)
	pb := prev.balance

	stInvestment := pb.STInvestment.Sub(cb.Discretionary)
	currentAssets := cb.EndingCash.Add(stInvestment).
		Add(wc.receivables).Add(wc.inventory).Add(pb.OtherCurrentAssets)

	grossPPE := pb.GrossPPE.Add(wc.capex)
	accumDepr := pb.AccumulatedDepreciation.Add(is.Depreciation)
	netPPE := pb.NetPPE.Add(wc.capex).Sub(is.Depreciation)

	totalAssets := currentAssets.Add(netPPE).
		Add(pb.Goodwill).Add(pb.Intangibles).Add(pb.OtherNonCurrentAssets)

	currentLiabilities := wc.payables.Add(ds.STEnding).Add(pb.OtherCurrentLiabilities)
	totalLiabilities := currentLiabilities.Add(ds.LTEnding).Add(pb.OtherNonCurrentLiabilities)

	dividendsPaid := prev.income.DividendsDeclared
	repurchase := e.repurchaseFor(is)
	equityIssued := cb.External.Add(dividendsPaid).Add(repurchase)

	retained := pb.RetainedEarnings.Add(is.NetIncome).Sub(dividendsPaid)
	otherEquity := pb.OtherEquity.Add(equityIssued).Sub(repurchase)

	return model.BalanceSheetPeriod{
		Year:                       year,
		Cash:                       cb.EndingCash,
		AccountsReceivable:         wc.receivables,
		Inventory:                  wc.inventory,
		STInvestment:               stInvestment,
		OtherCurrentAssets:         pb.OtherCurrentAssets,
		CurrentAssets:              currentAssets,
		GrossPPE:                   grossPPE,
		AccumulatedDepreciation:    accumDepr,
		NetPPE:                     netPPE,
		Goodwill:                   pb.Goodwill,
		Intangibles:                pb.Intangibles,
		OtherNonCurrentAssets:      pb.OtherNonCurrentAssets,
		TotalAssets:                totalAssets,
		AccountsPayable:            wc.payables,
		ShortTermDebt:              ds.STEnding,
		OtherCurrentLiabilities:    pb.OtherCurrentLiabilities,
		CurrentLiabilities:         currentLiabilities,
		LongTermDebt:               ds.LTEnding,
		OtherNonCurrentLiabilities: pb.OtherNonCurrentLiabilities,
		TotalLiabilities:           totalLiabilities,
		RetainedEarnings:           retained,
		OtherEquity:                otherEquity,
		TotalEquity:                retained.Add(otherEquity),
	}
}
