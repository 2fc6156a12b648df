package services

import (
	"context"
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
	"github.com/shopspring/decimal"
)

// registerService provides register catalog operations.
type registerService struct {
	registerRepo portsrepo.RegisterRepositoryFacade
}

// NewRegisterService creates a new RegisterService.
func NewRegisterService(registerRepo portsrepo.RegisterRepositoryFacade) portssvc.RegisterSvcFacade {
	return &registerService{registerRepo: registerRepo}
}

// Ensure registerService implements the portssvc.RegisterSvcFacade interface
var _ portssvc.RegisterSvcFacade = (*registerService)(nil)

// CreateRegister creates a new register. The starting float becomes both the
// initial amount and the opening balance of the maintained aggregate.
func (s *registerService) CreateRegister(ctx context.Context, req dto.CreateRegisterRequest, creatorUserID string) (*domain.CashRegister, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: register name is required", apperrors.ErrValidation)
	}
	if req.InitialAmount.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: initial amount cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	register := domain.CashRegister{
		RegisterID:        uuid.NewString(),
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Location:          req.Location,
		ResponsibleUserID: req.ResponsibleUserID,
		InitialAmount:     req.InitialAmount,
		CurrentBalance:    req.InitialAmount,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.registerRepo.SaveRegister(ctx, register); err != nil {
		logger.Error("Failed to save register", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Register created", slog.String("register_id", register.RegisterID), slog.String("name", register.Name))
	return &register, nil
}

// GetRegisterByID retrieves a register by ID.
func (s *registerService) GetRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	return s.registerRepo.FindRegisterByID(ctx, registerID)
}

// ListRegisters retrieves the register catalog.
func (s *registerService) ListRegisters(ctx context.Context, includeInactive bool) ([]domain.CashRegister, error) {
	return s.registerRepo.ListRegisters(ctx, includeInactive)
}

// UpdateRegister applies a partial update to descriptive fields. The balance
// and the initial amount are not reachable from here.
func (s *registerService) UpdateRegister(ctx context.Context, registerID string, req dto.UpdateRegisterRequest, requestingUserID string) (*domain.CashRegister, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	register, err := s.registerRepo.FindRegisterByID(ctx, registerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: register name cannot be empty", apperrors.ErrValidation)
		}
		register.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		register.Description = *req.Description
	}
	if req.Location != nil {
		register.Location = *req.Location
	}
	if req.ResponsibleUserID != nil {
		register.ResponsibleUserID = *req.ResponsibleUserID
	}
	register.LastUpdatedAt = time.Now().UTC()
	register.LastUpdatedBy = requestingUserID

	if err := s.registerRepo.UpdateRegister(ctx, *register); err != nil {
		logger.Error("Failed to update register", slog.String("register_id", registerID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Register updated", slog.String("register_id", registerID))
	return register, nil
}

// DeactivateRegister marks a register as inactive. The repository rejects the
// call while a session is open on it.
func (s *registerService) DeactivateRegister(ctx context.Context, registerID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.registerRepo.DeactivateRegister(ctx, registerID, requestingUserID); err != nil {
		logger.Warn("Failed to deactivate register", slog.String("register_id", registerID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Register deactivated", slog.String("register_id", registerID))
	return nil
}
