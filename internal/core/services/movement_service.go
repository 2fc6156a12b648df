package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

var (
	ErrAmountNotPositive = fmt.Errorf("%w: movement amount must be strictly positive", apperrors.ErrValidation)
	ErrCategoryMissing   = fmt.Errorf("%w: movement category is required", apperrors.ErrValidation)
)

// movementService provides the append-only ledger operations.
type movementService struct {
	movementRepo portsrepo.MovementRepositoryFacade
	sessionRepo  portsrepo.SessionRepositoryFacade
	metrics      *metrics.Metrics
	invalidator  portssvc.DashboardInvalidator
}

// NewMovementService creates a new MovementService. metrics and invalidator
// may be nil in tests.
func NewMovementService(movementRepo portsrepo.MovementRepositoryFacade, sessionRepo portsrepo.SessionRepositoryFacade, m *metrics.Metrics, invalidator portssvc.DashboardInvalidator) portssvc.MovementSvcFacade {
	return &movementService{
		movementRepo: movementRepo,
		sessionRepo:  sessionRepo,
		metrics:      m,
		invalidator:  invalidator,
	}
}

// Ensure movementService implements the portssvc.MovementSvcFacade interface
var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// PostMovement validates and posts a new ledger movement. The repository runs
// the posting as one transaction against register balance and session totals.
func (s *movementService) PostMovement(ctx context.Context, req dto.PostMovementRequest, creatorUserID string) (*domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}
	if strings.TrimSpace(req.Category) == "" {
		return nil, ErrCategoryMissing
	}

	now := time.Now().UTC()
	movementDate := now
	if req.MovementDate != nil {
		movementDate = req.MovementDate.UTC()
		if movementDate.After(now) {
			return nil, fmt.Errorf("%w: movement date cannot be in the future", apperrors.ErrValidation)
		}
	}

	movement := domain.CashMovement{
		MovementID:     uuid.NewString(),
		RegisterID:     req.RegisterID,
		SessionID:      req.SessionID,
		MovementType:   domain.MovementType(req.MovementType),
		Category:       strings.TrimSpace(req.Category),
		Amount:         req.Amount,
		Method:         domain.PaymentMethod(req.Method),
		Description:    req.Description,
		Reference:      req.Reference,
		PatientID:      req.PatientID,
		InvoiceID:      req.InvoiceID,
		ExpenseID:      req.ExpenseID,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		MovementDate:   movementDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.movementRepo.SaveMovement(ctx, movement)
	if err != nil {
		logger.Warn("Failed to post movement",
			slog.String("register_id", req.RegisterID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementMovementsPosted(string(saved.MovementType))
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateDashboard(ctx)
	}
	logger.Info("Movement posted",
		slog.String("movement_id", saved.MovementID),
		slog.String("register_id", saved.RegisterID),
		slog.String("movement_type", string(saved.MovementType)),
		slog.String("amount", saved.Amount.String()),
	)
	return saved, nil
}

// ReverseMovement posts the offsetting movement for an existing one. The new
// movement carries the opposite type and the same amount; the repository
// stamps the link in the same transaction. A reversal lands in the register's
// currently open session when there is one, otherwise outside any session.
func (s *movementService) ReverseMovement(ctx context.Context, movementID string, req dto.ReverseMovementRequest, requestingUserID string) (*domain.CashMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if original.OriginalMovementID != nil {
		return nil, fmt.Errorf("%w: movement %s is itself a reversal", apperrors.ErrConflict, movementID)
	}
	if original.ReversedByMovementID != nil {
		return nil, fmt.Errorf("%w: movement %s already reversed", apperrors.ErrConflict, movementID)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	var sessionID *string
	openSession, err := s.sessionRepo.FindOpenSessionByRegister(ctx, original.RegisterID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if openSession != nil {
		sessionID = &openSession.SessionID
	}

	now := time.Now().UTC()
	reversal := domain.CashMovement{
		MovementID:         uuid.NewString(),
		RegisterID:         original.RegisterID,
		SessionID:          sessionID,
		MovementType:       original.MovementType.Opposite(),
		Category:           original.Category,
		Amount:             original.Amount,
		Method:             original.Method,
		Description:        fmt.Sprintf("Reversal of: %s (%s)", original.Description, req.Reason),
		Reference:          original.Reference,
		PatientID:          original.PatientID,
		InvoiceID:          original.InvoiceID,
		ExpenseID:          original.ExpenseID,
		DocumentType:       original.DocumentType,
		DocumentNumber:     original.DocumentNumber,
		OriginalMovementID: &original.MovementID,
		MovementDate:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	saved, err := s.movementRepo.SaveReversal(ctx, reversal, original.MovementID)
	if err != nil && sessionID != nil && errors.Is(err, apperrors.ErrSessionNotOpen) {
		// The open session can close between the lookup above and the posting
		// transaction; retry once outside any session.
		logger.Info("Session closed while reversing, retrying without a session",
			slog.String("movement_id", movementID), slog.String("session_id", *sessionID))
		reversal.SessionID = nil
		saved, err = s.movementRepo.SaveReversal(ctx, reversal, original.MovementID)
	}
	if err != nil {
		logger.Warn("Failed to reverse movement", slog.String("movement_id", movementID), slog.String("error", err.Error()))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementMovementsReversed()
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateDashboard(ctx)
	}
	logger.Info("Movement reversed",
		slog.String("movement_id", movementID),
		slog.String("reversal_id", saved.MovementID),
	)
	return saved, nil
}

// GetMovementByID retrieves a movement by ID.
func (s *movementService) GetMovementByID(ctx context.Context, movementID string) (*domain.CashMovement, error) {
	return s.movementRepo.FindMovementByID(ctx, movementID)
}

// ListMovements retrieves a paginated list of movements.
func (s *movementService) ListMovements(ctx context.Context, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	filter := portsrepo.ListMovementsFilter{
		DateFrom: params.From,
		DateTo:   params.To,
	}
	if params.RegisterID != "" {
		filter.RegisterID = &params.RegisterID
	}
	if params.SessionID != "" {
		filter.SessionID = &params.SessionID
	}
	if params.MovementType != "" {
		movementType := domain.MovementType(params.MovementType)
		if movementType != domain.Income && movementType != domain.Expense {
			return nil, fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, params.MovementType)
		}
		filter.MovementType = &movementType
	}
	if params.Category != "" {
		filter.Category = &params.Category
	}

	movements, nextToken, err := s.movementRepo.ListMovements(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListMovementsResponse{
		Movements: dto.ToMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}
