package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/fincast-dev/fincast/internal/model"
)

// checkTolerance absorbs rounding noise in reported historical data. The
// projection itself is exact decimal arithmetic and contributes no residual
// of its own.
var checkTolerance = decimal.NewFromFloat(0.01)

// checkBalance verifies the accounting identity on one balance sheet.
func checkBalance(bs model.BalanceSheetPeriod) model.BalanceCheckResult {
	residual := bs.TotalAssets.Sub(bs.TotalLiabilities).Sub(bs.TotalEquity)
	return model.BalanceCheckResult{
		Year:     bs.Year,
		Residual: residual,
		Balanced: residual.Abs().LessThanOrEqual(checkTolerance),
	}
}
