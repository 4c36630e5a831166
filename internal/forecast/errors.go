package forecast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NegativeDebtError reports a scheduled repayment that exceeded the
// outstanding balance. The engine clamps the repayment and carries this as a
// warning rather than failing the run.
type NegativeDebtError struct {
	Year      int
	Tranche   string
	Scheduled decimal.Decimal
	Balance   decimal.Decimal
}

func (e *NegativeDebtError) Error() string {
	return fmt.Sprintf("year %d: scheduled %s repayment %s exceeds outstanding balance %s, clamped",
		e.Year, e.Tranche, e.Scheduled.StringFixed(2), e.Balance.StringFixed(2))
}

// BalanceCheckFailure reports a period whose balance sheet residual exceeded
// tolerance. Carried as a warning; the run output is still returned.
type BalanceCheckFailure struct {
	Year     int
	Residual decimal.Decimal
}

func (e *BalanceCheckFailure) Error() string {
	return fmt.Sprintf("year %d: balance sheet off by %s", e.Year, e.Residual.StringFixed(6))
}
