package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clinidesk/cashdesk_app/internal/apperrors"
	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	portssvc "github.com/clinidesk/cashdesk_app/internal/core/ports/services"
	"github.com/clinidesk/cashdesk_app/internal/dto"
	"github.com/clinidesk/cashdesk_app/internal/middleware"
	"github.com/clinidesk/cashdesk_app/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// sessionService provides the cashier session lifecycle.
type sessionService struct {
	sessionRepo portsrepo.SessionRepositoryFacade
	metrics     *metrics.Metrics
	invalidator portssvc.DashboardInvalidator
}

// NewSessionService creates a new SessionService. metrics and invalidator may
// be nil in tests.
func NewSessionService(sessionRepo portsrepo.SessionRepositoryFacade, m *metrics.Metrics, invalidator portssvc.DashboardInvalidator) portssvc.SessionSvcFacade {
	return &sessionService{sessionRepo: sessionRepo, metrics: m, invalidator: invalidator}
}

// Ensure sessionService implements the portssvc.SessionSvcFacade interface
var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

// OpenSession opens a new session against a register. The repository enforces
// the single-open-session rule under the register row lock and assigns the
// sequential session number.
func (s *sessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest, cashierUserID string) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningBalance.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	workingDate := now.Truncate(24 * time.Hour)
	if req.WorkingDate != nil {
		d := req.WorkingDate.UTC()
		workingDate = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}

	session := domain.CashSession{
		SessionID:      uuid.NewString(),
		RegisterID:     req.RegisterID,
		CashierUserID:  cashierUserID,
		Status:         domain.SessionOpen,
		WorkingDate:    workingDate,
		OpeningBalance: req.OpeningBalance,
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		// Until the first movement lands, the drawer should hold exactly
		// what it was opened with.
		ExpectedClosing: req.OpeningBalance,
		Notes:           req.Notes,
		OpenedAt:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     cashierUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: cashierUserID,
		},
	}

	created, err := s.sessionRepo.CreateSession(ctx, session)
	if err != nil {
		logger.Warn("Failed to open session", slog.String("register_id", req.RegisterID), slog.String("error", err.Error()))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementSessionsOpened()
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateDashboard(ctx)
	}
	logger.Info("Session opened",
		slog.String("session_id", created.SessionID),
		slog.String("register_id", created.RegisterID),
		slog.Int("session_number", created.SessionNumber),
	)
	return created, nil
}

// CloseSession performs the one-way close. The expected amount and the
// difference are derived inside the closing transaction; when denominations
// are supplied their total must match the declared counted amount.
func (s *sessionService) CloseSession(ctx context.Context, sessionID string, req dto.CloseSessionRequest, requestingUserID string) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ActualClosing.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: counted closing amount cannot be negative", apperrors.ErrValidation)
	}

	var denoms domain.Denominations
	if len(req.Denominations) > 0 {
		denoms = domain.Denominations(req.Denominations)
		total, err := denoms.Total()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if !total.Equal(req.ActualClosing) {
			return nil, fmt.Errorf("%w: denomination total %s does not match counted amount %s",
				apperrors.ErrValidation, total.String(), req.ActualClosing.String())
		}
	}

	closing := portsrepo.SessionClosing{
		ActualClosing:    req.ActualClosing,
		Denominations:    denoms,
		Notes:            req.Notes,
		DiscrepancyNotes: req.DiscrepancyNotes,
	}

	closed, err := s.sessionRepo.CloseSession(ctx, sessionID, closing, requestingUserID, time.Now().UTC())
	if err != nil {
		logger.Warn("Failed to close session", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementSessionsClosed()
		if closed.Difference != nil && !closed.Difference.IsZero() {
			s.metrics.IncrementSessionDiscrepancies()
		}
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateDashboard(ctx)
	}

	logEvent := logger.Info
	if closed.Difference != nil && !closed.Difference.IsZero() {
		logEvent = logger.Warn
	}
	logEvent("Session closed",
		slog.String("session_id", sessionID),
		slog.String("expected_closing", closed.ExpectedClosing.String()),
		slog.String("difference", closed.Difference.String()),
	)
	return closed, nil
}

// AnnotateSession amends the notes of a closed session.
func (s *sessionService) AnnotateSession(ctx context.Context, sessionID string, req dto.AnnotateSessionRequest, requestingUserID string) (*domain.CashSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Notes == nil && req.DiscrepancyNotes == nil {
		return nil, fmt.Errorf("%w: nothing to annotate", apperrors.ErrValidation)
	}

	annotated, err := s.sessionRepo.AnnotateSession(ctx, sessionID, req.Notes, req.DiscrepancyNotes, requestingUserID, time.Now().UTC())
	if err != nil {
		logger.Warn("Failed to annotate session", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Session annotated", slog.String("session_id", sessionID))
	return annotated, nil
}

// GetSessionByID retrieves a session by ID.
func (s *sessionService) GetSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	return s.sessionRepo.FindSessionByID(ctx, sessionID)
}

// GetOpenSessionByRegister retrieves the register's open session, if any.
func (s *sessionService) GetOpenSessionByRegister(ctx context.Context, registerID string) (*domain.CashSession, error) {
	return s.sessionRepo.FindOpenSessionByRegister(ctx, registerID)
}

// ListSessions retrieves a paginated list of sessions.
func (s *sessionService) ListSessions(ctx context.Context, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error) {
	filter := portsrepo.ListSessionsFilter{
		DateFrom: params.From,
		DateTo:   params.To,
	}
	if params.RegisterID != "" {
		filter.RegisterID = &params.RegisterID
	}
	if params.Status != "" {
		status := domain.SessionStatus(params.Status)
		if status != domain.SessionOpen && status != domain.SessionClosed {
			return nil, fmt.Errorf("%w: unknown session status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}

	sessions, nextToken, err := s.sessionRepo.ListSessions(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListSessionsResponse{
		Sessions:  dto.ToSessionResponses(sessions),
		NextToken: nextToken,
	}, nil
}
