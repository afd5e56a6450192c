package derive

import (
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

var hundred = decimal.NewFromInt(100)

// BudgetProgress is a budget's spending position. Ratio is spent/amount,
// unclamped; Percent is the display value, clamped to 100.
type BudgetProgress struct {
	Ratio    decimal.Decimal
	Percent  decimal.Decimal
	Severity model.Severity
}

// Progress computes the progress of a budget with the given ceiling and
// notification threshold. Severity is error at or past the threshold,
// warning at or past half of it, success below.
func Progress(spent, amount, threshold decimal.Decimal) BudgetProgress {
	ratio := decimal.Zero
	if amount.IsPositive() {
		ratio = spent.Div(amount)
	}

	percent := ratio.Mul(hundred)
	if percent.GreaterThan(hundred) {
		percent = hundred
	}

	severity := model.SeveritySuccess
	switch {
	case ratio.GreaterThanOrEqual(threshold):
		severity = model.SeverityError
	case ratio.GreaterThanOrEqual(threshold.Div(decimal.NewFromInt(2))):
		severity = model.SeverityWarning
	}

	return BudgetProgress{Ratio: ratio, Percent: percent, Severity: severity}
}

// BudgetProgressOf computes Progress from a budget record.
func BudgetProgressOf(b model.Budget) BudgetProgress {
	return Progress(b.Spent, b.Amount, b.NotificationThreshold)
}
