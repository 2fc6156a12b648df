package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType indicates the direction of a cash movement. The stored amount
// is always positive; the sign is carried by the type.
type MovementType string

const (
	Income  MovementType = "INCOME"
	Expense MovementType = "EXPENSE"
)

// Opposite returns the inverse movement type, used when posting reversals.
func (t MovementType) Opposite() MovementType {
	if t == Income {
		return Expense
	}
	return Income
}

// PaymentMethod is a closed enum; free-form strings would fragment the
// reporting aggregations.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodCheck    PaymentMethod = "CHECK"
	MethodOther    PaymentMethod = "OTHER"
)

// CashMovement is a single immutable cash event in the append-only ledger.
// There is no update or delete: corrections are posted as reversal movements
// of the opposite type linked through OriginalMovementID.
type CashMovement struct {
	MovementID   string          `json:"movementID"`
	RegisterID   string          `json:"registerID"`
	SessionID    *string         `json:"sessionID,omitempty"` // Optional; must be OPEN at posting time
	MovementType MovementType    `json:"movementType"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"` // Strictly positive
	Method       PaymentMethod   `json:"paymentMethod"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`

	// Opaque links to external collaborators; never dereferenced here.
	PatientID *string `json:"patientID,omitempty"`
	InvoiceID *string `json:"invoiceID,omitempty"`
	ExpenseID *string `json:"expenseID,omitempty"`

	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`

	// Reversal linkage. A movement with OriginalMovementID set is itself a
	// reversal; a movement with ReversedByMovementID set has been corrected.
	OriginalMovementID   *string `json:"originalMovementID,omitempty"`
	ReversedByMovementID *string `json:"reversedByMovementID,omitempty"`

	MovementDate time.Time `json:"movementDate"` // Caller-supplied, may be backdated
	AuditFields
}

// SignedAmount returns the amount with the sign implied by the movement type,
// income positive and expense negative.
func (m CashMovement) SignedAmount() decimal.Decimal {
	if m.MovementType == Expense {
		return m.Amount.Neg()
	}
	return m.Amount
}
