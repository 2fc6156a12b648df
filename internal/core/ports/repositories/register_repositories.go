package repositories

import (
	"context"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
)

// RegisterRepositoryFacade persists the register catalog. CurrentBalance is
// never written through this facade; only the movement posting transaction
// touches it.
type RegisterRepositoryFacade interface {
	SaveRegister(ctx context.Context, register domain.CashRegister) error
	FindRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error)
	ListRegisters(ctx context.Context, includeInactive bool) ([]domain.CashRegister, error)
	UpdateRegister(ctx context.Context, register domain.CashRegister) error
	// DeactivateRegister clears the active flag after verifying, inside the
	// same transaction, that the register has no open session. Returns
	// apperrors.ErrHasOpenSession otherwise.
	DeactivateRegister(ctx context.Context, registerID string, userID string) error
}
