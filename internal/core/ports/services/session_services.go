package services

import (
	"context"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/clinidesk/cashdesk_app/internal/dto"
)

// SessionReaderSvc defines read operations for cashier session data
type SessionReaderSvc interface {
	// GetSessionByID retrieves a specific session by its ID.
	GetSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error)

	// GetOpenSessionByRegister retrieves the register's open session, if any.
	GetOpenSessionByRegister(ctx context.Context, registerID string) (*domain.CashSession, error)

	// ListSessions retrieves a paginated list of sessions.
	ListSessions(ctx context.Context, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error)
}

// SessionWriterSvc defines the session lifecycle operations
type SessionWriterSvc interface {
	// OpenSession opens a new session on a register. At most one session per
	// register may be open at a time.
	OpenSession(ctx context.Context, req dto.OpenSessionRequest, cashierUserID string) (*domain.CashSession, error)

	// CloseSession performs the one-way close transition, deriving the
	// expected closing amount and the difference server-side.
	CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, requestingUserID string) (*domain.CashSession, error)

	// AnnotateSession amends the notes of a closed session; the reconciled
	// figures stay immutable.
	AnnotateSession(ctx context.Context, sessionID string, req dto.AnnotateSessionRequest, requestingUserID string) (*domain.CashSession, error)
}

// SessionSvcFacade combines all session-related service interfaces
type SessionSvcFacade interface {
	SessionReaderSvc
	SessionWriterSvc
}
