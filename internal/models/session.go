package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus mirrors domain.SessionStatus for storage.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "OPEN"
	SessionClosed SessionStatus = "CLOSED"
)

// CashSession is the persistence shape of a session row. Denominations is the
// raw JSONB payload.
type CashSession struct {
	SessionID     string        `db:"session_id"`
	RegisterID    string        `db:"register_id"`
	CashierUserID string        `db:"cashier_user_id"`
	SessionNumber int           `db:"session_number"`
	Status        SessionStatus `db:"status"`
	WorkingDate   time.Time     `db:"working_date"`

	OpeningBalance decimal.Decimal `db:"opening_balance"`
	TotalIncome    decimal.Decimal `db:"total_income"`
	TotalExpense   decimal.Decimal `db:"total_expense"`

	ActualClosing    *decimal.Decimal `db:"actual_closing"`
	ExpectedClosing  decimal.Decimal  `db:"expected_closing"`
	Difference       *decimal.Decimal `db:"difference"`
	Denominations    []byte           `db:"denominations"`
	Notes            string           `db:"notes"`
	DiscrepancyNotes string           `db:"discrepancy_notes"`

	OpenedAt time.Time  `db:"opened_at"`
	ClosedAt *time.Time `db:"closed_at"`
	AuditFields
}
