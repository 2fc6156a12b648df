package repositories

import (
	"context"
	"time"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SessionClosing carries the operator-supplied inputs of a close action; the
// derived fields (expected, difference) are computed inside the closing
// transaction from totals read under the session row lock.
type SessionClosing struct {
	ActualClosing    decimal.Decimal
	Denominations    domain.Denominations
	Notes            string
	DiscrepancyNotes string
}

// SessionRepositoryFacade persists cash sessions and owns their two atomic
// state transitions.
type SessionRepositoryFacade interface {
	// CreateSession atomically verifies the register is active and has no open
	// session, assigns the next sequential session number under the register
	// row lock, and inserts the OPEN row. The partial unique index on
	// (register_id) WHERE status='OPEN' backs the check; a unique violation is
	// surfaced as apperrors.ErrSessionAlreadyOpen.
	CreateSession(ctx context.Context, session domain.CashSession) (*domain.CashSession, error)

	// CloseSession atomically performs the one-way OPEN->CLOSED transition:
	// it locks the session row, reads the accumulated totals, computes the
	// reconciliation result, and persists the closing fields. Returns
	// apperrors.ErrSessionClosed on a second close.
	CloseSession(ctx context.Context, sessionID string, closing SessionClosing, userID string, closedAt time.Time) (*domain.CashSession, error)

	FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)
	FindOpenSessionByRegister(ctx context.Context, registerID string) (*domain.CashSession, error)
	ListSessions(ctx context.Context, filter ListSessionsFilter, limit int, nextToken *string) ([]domain.CashSession, *string, error)

	// AnnotateSession amends the post-hoc annotation fields of a closed
	// session; everything else is immutable after close.
	AnnotateSession(ctx context.Context, sessionID string, notes *string, discrepancyNotes *string, userID string, updatedAt time.Time) (*domain.CashSession, error)
}
