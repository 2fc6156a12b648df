package services

import (
	"context"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	"github.com/clinidesk/cashdesk_app/internal/dto"
)

// UserSvcFacade defines the minimal identity operations used for audit
// stamping and login.
type UserSvcFacade interface {
	// CreateUser persists a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// AuthenticateUser verifies credentials and returns the user on success.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)
}
