package services

import (
	"context"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/clinidesk/cashdesk_app/internal/dto"
)

// MovementReaderSvc defines read operations for ledger movements
type MovementReaderSvc interface {
	// GetMovementByID retrieves a specific movement by its ID.
	GetMovementByID(ctx context.Context, movementID string) (*domain.CashMovement, error)

	// ListMovements retrieves a paginated list of movements, most recent
	// movement date first.
	ListMovements(ctx context.Context, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error)
}

// MovementWriterSvc defines the append-only write operations of the ledger
type MovementWriterSvc interface {
	// PostMovement validates and posts a new movement, updating the register
	// balance and the open session totals in the same atomic unit.
	PostMovement(ctx context.Context, req dto.PostMovementRequest, creatorUserID string) (*domain.CashMovement, error)

	// ReverseMovement posts the offsetting movement for an existing one and
	// links the pair. A movement can be reversed at most once, and a reversal
	// cannot itself be reversed.
	ReverseMovement(ctx context.Context, movementID string, req dto.ReverseMovementRequest, requestingUserID string) (*domain.CashMovement, error)
}

// MovementSvcFacade combines all movement-related service interfaces
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
}
