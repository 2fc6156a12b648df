package dto

import (
	"time"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostMovementRequest defines the data needed to post a ledger movement.
// Amount is always positive; direction is carried by movementType.
type PostMovementRequest struct {
	RegisterID   string          `json:"registerID" binding:"required"`
	SessionID    *string         `json:"sessionID"`
	MovementType string          `json:"movementType" binding:"required,oneof=INCOME EXPENSE"`
	Category     string          `json:"category" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"paymentMethod" binding:"required,oneof=CASH CARD TRANSFER CHECK OTHER"`
	Description  string          `json:"description" binding:"required"`
	Reference    string          `json:"reference"`

	PatientID *string `json:"patientID"`
	InvoiceID *string `json:"invoiceID"`
	ExpenseID *string `json:"expenseID"`

	DocumentType   string     `json:"documentType"`
	DocumentNumber string     `json:"documentNumber"`
	MovementDate   *time.Time `json:"movementDate"` // Defaults to now; may be backdated
}

// ReverseMovementRequest defines the data needed to reverse a movement.
type ReverseMovementRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID   string          `json:"movementID"`
	RegisterID   string          `json:"registerID"`
	SessionID    *string         `json:"sessionID,omitempty"`
	MovementType string          `json:"movementType"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"paymentMethod"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference,omitempty"`

	PatientID *string `json:"patientID,omitempty"`
	InvoiceID *string `json:"invoiceID,omitempty"`
	ExpenseID *string `json:"expenseID,omitempty"`

	DocumentType   string `json:"documentType,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`

	OriginalMovementID   *string `json:"originalMovementID,omitempty"`
	ReversedByMovementID *string `json:"reversedByMovementID,omitempty"`

	MovementDate time.Time `json:"movementDate"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

// ListMovementsParams defines query parameters for listing movements.
type ListMovementsParams struct {
	RegisterID   string     `form:"registerID"`
	SessionID    string     `form:"sessionID"`
	MovementType string     `form:"movementType"`
	Category     string     `form:"category"`
	From         *time.Time `form:"from" time_format:"2006-01-02"`
	To           *time.Time `form:"to" time_format:"2006-01-02"`
	Limit        int        `form:"limit,default=20"`
	NextToken    *string    `form:"nextToken"`
}

// ListMovementsResponse is a paginated movement listing, movement date
// descending.
type ListMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToMovementResponse converts a domain.CashMovement to its response DTO.
func ToMovementResponse(m *domain.CashMovement) MovementResponse {
	return MovementResponse{
		MovementID:           m.MovementID,
		RegisterID:           m.RegisterID,
		SessionID:            m.SessionID,
		MovementType:         string(m.MovementType),
		Category:             m.Category,
		Amount:               m.Amount,
		Method:               string(m.Method),
		Description:          m.Description,
		Reference:            m.Reference,
		PatientID:            m.PatientID,
		InvoiceID:            m.InvoiceID,
		ExpenseID:            m.ExpenseID,
		DocumentType:         m.DocumentType,
		DocumentNumber:       m.DocumentNumber,
		OriginalMovementID:   m.OriginalMovementID,
		ReversedByMovementID: m.ReversedByMovementID,
		MovementDate:         m.MovementDate,
		CreatedAt:            m.CreatedAt,
		CreatedBy:            m.CreatedBy,
	}
}

// ToMovementResponses converts a slice of movements to response DTOs.
func ToMovementResponses(movements []domain.CashMovement) []MovementResponse {
	res := make([]MovementResponse, len(movements))
	for i, m := range movements {
		res[i] = ToMovementResponse(&m)
	}
	return res
}
