// Package reconciliation holds the close-out arithmetic for cash sessions.
// Kept as pure functions so the repository can run them inside the closing
// transaction and the tests can exercise them without a database.
package reconciliation

import (
	"github.com/shopspring/decimal"
)

// Result is the outcome of comparing a counted drawer against the ledger.
type Result struct {
	ExpectedClosing decimal.Decimal
	Difference      decimal.Decimal // actual - expected; positive = overage, negative = shortage
}

// Compute derives the expected closing balance from the session's opening
// balance and accumulated totals, and the signed variance against the
// physically counted amount. A non-zero difference is a recorded fact, not an
// error.
func Compute(openingBalance, totalIncome, totalExpense, actualClosing decimal.Decimal) Result {
	expected := openingBalance.Add(totalIncome).Sub(totalExpense)
	return Result{
		ExpectedClosing: expected,
		Difference:      actualClosing.Sub(expected),
	}
}

// IsShortage reports whether the drawer came up short.
func (r Result) IsShortage() bool {
	return r.Difference.IsNegative()
}

// IsOverage reports whether the drawer held more than expected.
func (r Result) IsOverage() bool {
	return r.Difference.IsPositive()
}
