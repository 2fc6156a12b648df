package services

import (
	"context"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/clinidesk/cashdesk_app/internal/dto"
)

// RegisterReaderSvc defines read operations for cash register data
type RegisterReaderSvc interface {
	// GetRegisterByID retrieves a specific register by its unique identifier.
	GetRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)

	// ListRegisters retrieves the register catalog, optionally including
	// deactivated registers.
	ListRegisters(ctx context.Context, includeInactive bool) ([]domain.CashRegister, error)
}

// RegisterWriterSvc defines write operations for cash register data
type RegisterWriterSvc interface {
	// CreateRegister persists a new register with its starting float.
	CreateRegister(ctx context.Context, req dto.CreateRegisterRequest, creatorUserID string) (*domain.CashRegister, error)

	// UpdateRegister updates descriptive register details. The balance is not
	// reachable from here; only the posting transaction moves it.
	UpdateRegister(ctx context.Context, registerID string, req dto.UpdateRegisterRequest, requestingUserID string) (*domain.CashRegister, error)

	// DeactivateRegister marks a register as inactive. Rejected while the
	// register has an open session.
	DeactivateRegister(ctx context.Context, registerID string, requestingUserID string) error
}

// RegisterSvcFacade combines all register-related service interfaces
type RegisterSvcFacade interface {
	RegisterReaderSvc
	RegisterWriterSvc
}
