package forecast

import (
	"github.com/shopspring/decimal"
)

// ltTranche is one long-term borrowing amortized straight-line. Repayment
// starts the year after the draw; the final installment pays off whatever
// principal is left on the tranche so division residue never lingers.
type ltTranche struct {
	outstanding decimal.Decimal
	annual      decimal.Decimal
	remaining   int
}

func (t ltTranche) due() decimal.Decimal {
	if t.remaining <= 1 {
		return t.outstanding
	}
	return t.annual
}

// debtManager tracks outstanding balances and scheduled repayments across
// forecast periods. Short-term loans are one-year paper: the full balance
// drawn in one period is due the next. Long-term tranches amortize evenly
// over the configured term.
type debtManager struct {
	stBalance decimal.Decimal
	ltBalance decimal.Decimal
	tranches  []ltTranche
}

// newDebtManager seeds the manager from the opening balance sheet. The
// opening long-term balance is treated as a single tranche with a full
// remaining term.
func newDebtManager(stDebt, ltDebt decimal.Decimal, ltYears int) *debtManager {
	m := &debtManager{stBalance: stDebt, ltBalance: ltDebt}
	if ltDebt.IsPositive() && ltYears > 0 {
		m.tranches = append(m.tranches, newTranche(ltDebt, ltYears))
	}
	return m
}

func newTranche(principal decimal.Decimal, years int) ltTranche {
	return ltTranche{
		outstanding: principal,
		annual:      principal.Div(decimal.NewFromInt(int64(years))),
		remaining:   years,
	}
}

// scheduledST returns this period's contractual short-term repayment: the
// whole outstanding balance.
func (m *debtManager) scheduledST() decimal.Decimal {
	return m.stBalance
}

// scheduledLT sums the amortization due this period across live tranches.
// Callers clamp against the outstanding balance.
func (m *debtManager) scheduledLT() decimal.Decimal {
	due := decimal.Zero
	for _, t := range m.tranches {
		due = due.Add(t.due())
	}
	return due
}

// settle applies this period's repayments and new draws. A long-term draw
// becomes a fresh tranche that starts amortizing next period.
func (m *debtManager) settle(stRepay, stDraw, ltRepay, ltDraw decimal.Decimal, ltYears int) {
	m.stBalance = m.stBalance.Sub(stRepay).Add(stDraw)
	m.ltBalance = m.ltBalance.Sub(ltRepay).Add(ltDraw)

	live := m.tranches[:0]
	for _, t := range m.tranches {
		t.outstanding = t.outstanding.Sub(t.due())
		t.remaining--
		if t.remaining > 0 && t.outstanding.IsPositive() {
			live = append(live, t)
		}
	}
	m.tranches = live

	if ltDraw.IsPositive() && ltYears > 0 {
		m.tranches = append(m.tranches, newTranche(ltDraw, ltYears))
	}
}
