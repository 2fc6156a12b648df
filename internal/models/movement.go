package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType mirrors domain.MovementType for storage.
type MovementType string

const (
	Income  MovementType = "INCOME"
	Expense MovementType = "EXPENSE"
)

// CashMovement is the persistence shape of a ledger row. Rows are insert-only;
// the sole permitted update is stamping reversed_by_movement_id when a
// reversal is posted.
type CashMovement struct {
	MovementID   string          `db:"movement_id"`
	RegisterID   string          `db:"register_id"`
	SessionID    *string         `db:"session_id"`
	MovementType MovementType    `db:"movement_type"`
	Category     string          `db:"category"`
	Amount       decimal.Decimal `db:"amount"`
	Method       string          `db:"payment_method"`
	Description  string          `db:"description"`
	Reference    string          `db:"reference"`

	PatientID *string `db:"patient_id"`
	InvoiceID *string `db:"invoice_id"`
	ExpenseID *string `db:"expense_id"`

	DocumentType   string `db:"document_type"`
	DocumentNumber string `db:"document_number"`

	OriginalMovementID   *string `db:"original_movement_id"`
	ReversedByMovementID *string `db:"reversed_by_movement_id"`

	MovementDate time.Time `db:"movement_date"`
	AuditFields
}
