package dto

import (
	"time"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest defines the data needed to open a cashier session.
type OpenSessionRequest struct {
	RegisterID     string          `json:"registerID" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	WorkingDate    *time.Time      `json:"workingDate"` // Defaults to today
	Notes          string          `json:"notes"`
}

// CloseSessionRequest defines the operator-supplied close inputs. The
// expected amount and difference are derived server-side.
type CloseSessionRequest struct {
	ActualClosing    decimal.Decimal `json:"actualClosing"`
	Denominations    map[string]int  `json:"denominations"`
	Notes            string          `json:"notes"`
	DiscrepancyNotes string          `json:"discrepancyNotes"`
}

// AnnotateSessionRequest amends the post-hoc annotation fields of a closed
// session. Pointers distinguish "not provided" from clearing the field.
type AnnotateSessionRequest struct {
	Notes            *string `json:"notes"`
	DiscrepancyNotes *string `json:"discrepancyNotes"`
}

// SessionResponse defines the data returned for a session.
type SessionResponse struct {
	SessionID     string `json:"sessionID"`
	RegisterID    string `json:"registerID"`
	CashierUserID string `json:"cashierUserID"`
	SessionNumber int    `json:"sessionNumber"`
	SessionCode   string `json:"sessionCode"` // Zero-padded presentation
	Status        string `json:"status"`

	WorkingDate    time.Time       `json:"workingDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`

	ExpectedClosing  decimal.Decimal  `json:"expectedClosing"`
	ActualClosing    *decimal.Decimal `json:"actualClosing,omitempty"`
	Difference       *decimal.Decimal `json:"difference,omitempty"`
	Denominations    map[string]int   `json:"denominations,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	DiscrepancyNotes string           `json:"discrepancyNotes,omitempty"`

	OpenedAt time.Time  `json:"openedAt"`
	ClosedAt *time.Time `json:"closedAt,omitempty"`
}

// SessionDetailResponse pairs a session with its computed summary.
type SessionDetailResponse struct {
	Session SessionResponse         `json:"session"`
	Summary *SessionSummaryResponse `json:"summary,omitempty"`
}

// ListSessionsParams defines query parameters for listing sessions.
type ListSessionsParams struct {
	RegisterID string     `form:"registerID"`
	Status     string     `form:"status"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=20"`
	NextToken  *string    `form:"nextToken"`
}

// ListSessionsResponse is a paginated session listing.
type ListSessionsResponse struct {
	Sessions  []SessionResponse `json:"sessions"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToSessionResponse converts a domain.CashSession to its response DTO.
func ToSessionResponse(s *domain.CashSession) SessionResponse {
	return SessionResponse{
		SessionID:        s.SessionID,
		RegisterID:       s.RegisterID,
		CashierUserID:    s.CashierUserID,
		SessionNumber:    s.SessionNumber,
		SessionCode:      s.SessionCode(),
		Status:           string(s.Status),
		WorkingDate:      s.WorkingDate,
		OpeningBalance:   s.OpeningBalance,
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		ExpectedClosing:  s.ExpectedClosing,
		ActualClosing:    s.ActualClosing,
		Difference:       s.Difference,
		Denominations:    s.Denominations,
		Notes:            s.Notes,
		DiscrepancyNotes: s.DiscrepancyNotes,
		OpenedAt:         s.OpenedAt,
		ClosedAt:         s.ClosedAt,
	}
}

// ToSessionResponses converts a slice of sessions to response DTOs.
func ToSessionResponses(sessions []domain.CashSession) []SessionResponse {
	res := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		res[i] = ToSessionResponse(&s)
	}
	return res
}
