package repositories

import (
	"context"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
)

// MovementRepositoryFacade owns the append-only ledger and its atomic posting
// unit. There is no update or delete for a posted movement; the only permitted
// mutation is stamping the reversal link.
type MovementRepositoryFacade interface {
	// SaveMovement executes the posting as one transaction: lock the register
	// row (verifying it exists and is active), lock and verify the session
	// when one is named (OPEN and belonging to the same register), insert the
	// movement, apply the signed amount to the register balance, and bump the
	// session's income or expense total. A failure at any step leaves no
	// partial state.
	SaveMovement(ctx context.Context, movement domain.CashMovement) (*domain.CashMovement, error)

	// SaveReversal posts the offsetting movement with the same atomic effects
	// as SaveMovement and, in the same transaction, stamps
	// reversed_by_movement_id on the original row. Returns
	// apperrors.ErrConflict if the original was already reversed.
	SaveReversal(ctx context.Context, reversal domain.CashMovement, originalMovementID string) (*domain.CashMovement, error)

	FindMovementByID(ctx context.Context, movementID string) (*domain.CashMovement, error)
	ListMovements(ctx context.Context, filter ListMovementsFilter, limit int, nextToken *string) ([]domain.CashMovement, *string, error)
}
