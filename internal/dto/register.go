package dto

import (
	"time"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRegisterRequest defines the data needed to create a cash register.
type CreateRegisterRequest struct {
	Name              string          `json:"name" binding:"required"`
	InitialAmount     decimal.Decimal `json:"initialAmount"`
	Description       string          `json:"description"`
	Location          string          `json:"location"`
	ResponsibleUserID string          `json:"responsibleUserID"`
}

// UpdateRegisterRequest defines the fields allowed for a partial update.
// Pointers distinguish "not provided" from zero values. The balance is not
// updatable through any request shape.
type UpdateRegisterRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Location          *string `json:"location"`
	ResponsibleUserID *string `json:"responsibleUserID"`
}

// RegisterResponse defines the data returned for a register.
type RegisterResponse struct {
	RegisterID        string          `json:"registerID"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Location          string          `json:"location"`
	ResponsibleUserID string          `json:"responsibleUserID,omitempty"`
	InitialAmount     decimal.Decimal `json:"initialAmount"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	IsActive          bool            `json:"isActive"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// ListRegistersParams defines query parameters for listing registers.
type ListRegistersParams struct {
	IncludeInactive bool `form:"includeInactive,default=false"`
}

// RegisterSnapshotResponse is the live per-register view.
type RegisterSnapshotResponse struct {
	RegisterID     string          `json:"registerID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	MovementsToday int             `json:"movementsToday"`
	HasOpenSession bool            `json:"hasOpenSession"`
}

// ToRegisterResponse converts a domain.CashRegister to its response DTO.
func ToRegisterResponse(r *domain.CashRegister) RegisterResponse {
	return RegisterResponse{
		RegisterID:        r.RegisterID,
		Name:              r.Name,
		Description:       r.Description,
		Location:          r.Location,
		ResponsibleUserID: r.ResponsibleUserID,
		InitialAmount:     r.InitialAmount,
		CurrentBalance:    r.CurrentBalance,
		IsActive:          r.IsActive,
		CreatedAt:         r.CreatedAt,
		CreatedBy:         r.CreatedBy,
	}
}

// ToListRegisterResponse converts a slice of registers to response DTOs.
func ToListRegisterResponse(registers []domain.CashRegister) []RegisterResponse {
	res := make([]RegisterResponse, len(registers))
	for i, r := range registers {
		res[i] = ToRegisterResponse(&r)
	}
	return res
}

// ToRegisterSnapshotResponse converts a domain.RegisterSnapshot.
func ToRegisterSnapshotResponse(s *domain.RegisterSnapshot) RegisterSnapshotResponse {
	return RegisterSnapshotResponse{
		RegisterID:     s.RegisterID,
		CurrentBalance: s.CurrentBalance,
		MovementsToday: s.MovementsToday,
		HasOpenSession: s.HasOpenSession,
	}
}
