package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one (type, category) aggregation bucket.
type CategoryTotal struct {
	MovementType MovementType    `json:"movementType"`
	Category     string          `json:"category"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

// MethodTotal is one (type, payment method) aggregation bucket.
type MethodTotal struct {
	MovementType MovementType    `json:"movementType"`
	Method       PaymentMethod   `json:"paymentMethod"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

// SessionSummary is the computed read-side view of a single session.
type SessionSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	ByCategory   []CategoryTotal `json:"byCategory"`
	ByMethod     []MethodTotal   `json:"byMethod"`
}

// RegisterSnapshot is the live read-side view of one register.
type RegisterSnapshot struct {
	RegisterID     string          `json:"registerID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	MovementsToday int             `json:"movementsToday"`
	HasOpenSession bool            `json:"hasOpenSession"`
}

// DashboardRollup aggregates ledger activity over an arbitrary date range and
// optional single register. Pure read contract; no invariants of its own.
type DashboardRollup struct {
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpense    decimal.Decimal `json:"totalExpense"`
	NetFlow         decimal.Decimal `json:"netFlow"`
	ActiveRegisters int             `json:"activeRegisters"`
	OpenSessions    int             `json:"openSessions"`
	RecentMovements []CashMovement  `json:"recentMovements"`
	ByCategory      []CategoryTotal `json:"byCategory"`
	ByMethod        []MethodTotal   `json:"byMethod"`
}
