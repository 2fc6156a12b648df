package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus indicates the state of a cash session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// Denominations is an opaque physical cash count, keyed by denomination label
// (e.g. "100", "0.50") with the number of pieces counted. Stored as JSONB.
type Denominations map[string]int

// CashSession is a time-boxed cashier shift against exactly one register.
//
// TotalIncome/TotalExpense are maintained aggregates equal to the sum of the
// session's own movements by type; they are only written inside the movement
// posting transaction. At most one OPEN session may exist per register, backed
// by a partial unique index on (register_id) WHERE status = 'OPEN'.
type CashSession struct {
	SessionID     string        `json:"sessionID"`
	RegisterID    string        `json:"registerID"`
	CashierUserID string        `json:"cashierUserID"`
	SessionNumber int           `json:"sessionNumber"` // Sequential per register, starting at 1
	Status        SessionStatus `json:"status"`
	WorkingDate   time.Time     `json:"workingDate"`

	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`

	// Closing fields, set only by the close action.
	ActualClosing    *decimal.Decimal `json:"actualClosing,omitempty"`
	ExpectedClosing  decimal.Decimal  `json:"expectedClosing"` // openingBalance at open, finalized at close
	Difference       *decimal.Decimal `json:"difference,omitempty"`
	Denominations    Denominations    `json:"denominations,omitempty"`
	Notes            string           `json:"notes"`
	DiscrepancyNotes string           `json:"discrepancyNotes"`

	OpenedAt time.Time  `json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`
	AuditFields
}

// SessionCode renders the per-register sequential number the way receipts
// print it, zero-padded to four digits.
func (s CashSession) SessionCode() string {
	return fmt.Sprintf("%04d", s.SessionNumber)
}

// Total sums a physical cash count given the numeric value of each label.
// Labels that fail to parse are reported so a mistyped count never silently
// drops money.
func (d Denominations) Total() (decimal.Decimal, error) {
	total := decimal.Zero
	for label, count := range d {
		value, err := decimal.NewFromString(label)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid denomination %q: %w", label, err)
		}
		total = total.Add(value.Mul(decimal.NewFromInt(int64(count))))
	}
	return total, nil
}
