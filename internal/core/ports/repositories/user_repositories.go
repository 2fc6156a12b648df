package repositories

import (
	"context"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
)

// UserRepositoryFacade persists the minimal identity records used for audit
// stamping and login.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
