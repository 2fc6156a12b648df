package models

import "github.com/shopspring/decimal"

// CashRegister is the persistence shape of a register row.
type CashRegister struct {
	RegisterID        string          `db:"register_id"`
	Name              string          `db:"name"`
	Description       string          `db:"description"`
	Location          string          `db:"location"`
	ResponsibleUserID string          `db:"responsible_user_id"` // Nullable
	InitialAmount     decimal.Decimal `db:"initial_amount"`
	CurrentBalance    decimal.Decimal `db:"current_balance"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}
