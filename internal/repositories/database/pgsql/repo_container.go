package pgsql

import (
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	registerRepo := newPgxRegisterRepository(dbPool)
	sessionRepo := newPgxSessionRepository(dbPool)
	movementRepo := newPgxMovementRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		Register:  registerRepo,
		Session:   sessionRepo,
		Movement:  movementRepo,
		Reporting: reportingRepo,
		User:      userRepo,
	}
}
