package domain

import "github.com/shopspring/decimal"

// CashRegister represents a named physical cash drawer.
//
// CurrentBalance is a maintained aggregate: it always equals InitialAmount
// plus the signed sum of every movement posted against the register, and is
// only ever written inside the same transaction that inserts a movement.
type CashRegister struct {
	RegisterID        string          `json:"registerID"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Location          string          `json:"location"`
	ResponsibleUserID string          `json:"responsibleUserID"` // Nullable, opaque user reference
	InitialAmount     decimal.Decimal `json:"initialAmount"`     // Set once at creation
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	IsActive          bool            `json:"isActive"`
	AuditFields
}
