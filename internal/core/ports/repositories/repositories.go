// Package repositories defines the persistence facades the core services
// depend on. Implementations live under internal/repositories/database.
package repositories

import (
	"time"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
)

// ListSessionsFilter narrows a session listing. Nil/zero fields are ignored.
type ListSessionsFilter struct {
	RegisterID *string
	Status     *domain.SessionStatus
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ListMovementsFilter narrows a movement listing. Nil/zero fields are ignored.
type ListMovementsFilter struct {
	RegisterID   *string
	SessionID    *string
	MovementType *domain.MovementType
	Category     *string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// RepositoryProvider bundles the concrete repositories for wiring.
type RepositoryProvider struct {
	Register  RegisterRepositoryFacade
	Session   SessionRepositoryFacade
	Movement  MovementRepositoryFacade
	Reporting ReportingRepositoryFacade
	User      UserRepositoryFacade
}
