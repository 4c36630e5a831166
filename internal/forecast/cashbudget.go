package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/fincast-dev/fincast/internal/model"
)

// workingCapital holds the balance-driven lines both the cash budget and the
// balance sheet read for one forecast year. Both sides derive them from the
// same income statement, so the statements can never disagree.
type workingCapital struct {
	receivables decimal.Decimal
	inventory   decimal.Decimal
	payables    decimal.Decimal
	capex       decimal.Decimal
}

func (e *Engine) workingCapitalFor(is model.IncomeStatementPeriod) workingCapital {
	return workingCapital{
		receivables: is.Revenue.Mul(e.asm.ARPctRevenue.Value),
		inventory:   is.COGS.Mul(e.asm.InventoryPctCOGS.Value),
		payables:    is.COGS.Mul(e.asm.APPctCOGS.Value),
		capex:       is.Revenue.Mul(e.asm.CapexPctRevenue.Value),
	}
}

// buildCashBudget settles one forecast year's cash. The financing decision
// runs in two layers against the minimum cash floor:
//
//  1. a short-term draw that restores the operating position (prior cash plus
//     operating cash flow) to the floor, and
//  2. after investing, scheduled repayments, dividends and repurchases, a
//     remaining shortfall raised as long-term debt and equity in the
//     configured mix, landing ending cash exactly on the floor.
//
// A surplus above the floor rolls into a new one-year short-term investment,
// but only in years that raised no financing.
func (e *Engine) buildCashBudget(year int, prev *periodState, is model.IncomeStatementPeriod,
	debt *debtManager) (model.CashBudgetPeriod, model.DebtScheduleState, []string) {

	wc := e.workingCapitalFor(is)

	deltaWC := wc.receivables.Sub(prev.balance.AccountsReceivable).
		Add(wc.inventory.Sub(prev.balance.Inventory)).
		Sub(wc.payables.Sub(prev.balance.AccountsPayable))
	operating := is.NetIncome.Add(is.Depreciation).Sub(deltaWC)
	investing := wc.capex.Neg()

	dividendsPaid := prev.income.DividendsDeclared
	repurchase := e.repurchaseFor(is)
	stRedemption := prev.balance.STInvestment

	stRepay := debt.scheduledST()
	ltDue := debt.scheduledLT()
	ltRepay := ltDue
	clamped := false
	var warnings []string
	if ltDue.GreaterThan(debt.ltBalance) {
		ltRepay = debt.ltBalance
		clamped = true
		warnings = append(warnings, (&NegativeDebtError{
			Year: year, Tranche: "long-term",
			Scheduled: ltDue, Balance: debt.ltBalance,
		}).Error())
	}

	minCash := e.minCashFor(is.Revenue)
	prevCash := prev.balance.Cash

	stDraw := decimal.Zero
	if floor := minCash.Sub(prevCash.Add(operating)); floor.IsPositive() {
		stDraw = floor
	}

	position := prevCash.Add(operating).Add(investing).Add(stDraw).
		Sub(stRepay).Sub(ltRepay).
		Sub(dividendsPaid).Sub(repurchase).
		Add(stRedemption)

	need := decimal.Zero
	if shortfall := minCash.Sub(position); shortfall.IsPositive() {
		need = shortfall
	}
	ltDraw := need.Mul(e.asm.PctFinancingWithDebt.Value)
	equityIssued := need.Sub(ltDraw)

	ending := position.Add(need)
	newInvestment := decimal.Zero
	if stDraw.IsZero() && need.IsZero() && ending.GreaterThan(minCash) {
		newInvestment = ending.Sub(minCash)
	}

	financing := stDraw.Add(ltDraw).Sub(stRepay).Sub(ltRepay)
	external := equityIssued.Sub(dividendsPaid).Sub(repurchase)
	discretionary := stRedemption.Sub(newInvestment)
	netChange := operating.Add(investing).Add(financing).Add(external).Add(discretionary)

	cb := model.CashBudgetPeriod{
		Year:          year,
		BeginningCash: prevCash,
		Operating:     operating,
		Investing:     investing,
		Financing:     financing,
		External:      external,
		Discretionary: discretionary,
		NetChange:     netChange,
		EndingCash:    prevCash.Add(netChange),
	}

	debt.settle(stRepay, stDraw, ltRepay, ltDraw, e.asm.LTLoanYears)
	ds := model.DebtScheduleState{
		Year:             year,
		STBeginning:      prev.debt.STEnding,
		STDraw:           stDraw,
		STRepayment:      stRepay,
		STEnding:         debt.stBalance,
		LTBeginning:      prev.debt.LTEnding,
		LTDraw:           ltDraw,
		LTRepayment:      ltRepay,
		LTEnding:         debt.ltBalance,
		InterestExpense:  is.InterestExpense,
		RepaymentClamped: clamped,
	}
	return cb, ds, warnings
}
