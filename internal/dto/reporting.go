package dto

import (
	"time"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryTotalResponse is one (type, category) bucket of an aggregation.
type CategoryTotalResponse struct {
	MovementType string          `json:"movementType"`
	Category     string          `json:"category"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

// MethodTotalResponse is one (type, payment method) bucket of an aggregation.
type MethodTotalResponse struct {
	MovementType string          `json:"movementType"`
	Method       string          `json:"paymentMethod"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

// SessionSummaryResponse is the computed read-side view of one session.
type SessionSummaryResponse struct {
	TotalIncome  decimal.Decimal         `json:"totalIncome"`
	TotalExpense decimal.Decimal         `json:"totalExpense"`
	ByCategory   []CategoryTotalResponse `json:"byCategory"`
	ByMethod     []MethodTotalResponse   `json:"byMethod"`
}

// DashboardParams defines query parameters for the dashboard rollup.
type DashboardParams struct {
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	RegisterID string     `form:"registerID"`
	Recent     int        `form:"recent,default=10"`
}

// DashboardResponse is the rollup over a date range and optional register.
type DashboardResponse struct {
	TotalIncome     decimal.Decimal         `json:"totalIncome"`
	TotalExpense    decimal.Decimal         `json:"totalExpense"`
	NetFlow         decimal.Decimal         `json:"netFlow"`
	ActiveRegisters int                     `json:"activeRegisters"`
	OpenSessions    int                     `json:"openSessions"`
	RecentMovements []MovementResponse      `json:"recentMovements"`
	ByCategory      []CategoryTotalResponse `json:"byCategory"`
	ByMethod        []MethodTotalResponse   `json:"byMethod"`
}

// ExportMovementsParams defines query parameters for the XLSX export.
type ExportMovementsParams struct {
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	RegisterID string     `form:"registerID"`
}

// ToCategoryTotalResponses converts domain category buckets.
func ToCategoryTotalResponses(totals []domain.CategoryTotal) []CategoryTotalResponse {
	res := make([]CategoryTotalResponse, len(totals))
	for i, t := range totals {
		res[i] = CategoryTotalResponse{
			MovementType: string(t.MovementType),
			Category:     t.Category,
			Total:        t.Total,
			Count:        t.Count,
		}
	}
	return res
}

// ToMethodTotalResponses converts domain payment-method buckets.
func ToMethodTotalResponses(totals []domain.MethodTotal) []MethodTotalResponse {
	res := make([]MethodTotalResponse, len(totals))
	for i, t := range totals {
		res[i] = MethodTotalResponse{
			MovementType: string(t.MovementType),
			Method:       string(t.Method),
			Total:        t.Total,
			Count:        t.Count,
		}
	}
	return res
}

// ToSessionSummaryResponse converts a domain.SessionSummary.
func ToSessionSummaryResponse(s *domain.SessionSummary) SessionSummaryResponse {
	return SessionSummaryResponse{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		ByCategory:   ToCategoryTotalResponses(s.ByCategory),
		ByMethod:     ToMethodTotalResponses(s.ByMethod),
	}
}

// ToDashboardResponse converts a domain.DashboardRollup.
func ToDashboardResponse(r *domain.DashboardRollup) DashboardResponse {
	return DashboardResponse{
		TotalIncome:     r.TotalIncome,
		TotalExpense:    r.TotalExpense,
		NetFlow:         r.NetFlow,
		ActiveRegisters: r.ActiveRegisters,
		OpenSessions:    r.OpenSessions,
		RecentMovements: ToMovementResponses(r.RecentMovements),
		ByCategory:      ToCategoryTotalResponses(r.ByCategory),
		ByMethod:        ToMethodTotalResponses(r.ByMethod),
	}
}
