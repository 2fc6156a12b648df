package services

import (
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	portssvc "github.com/clinidesk/cashdesk_app/internal/core/ports/services"
	"github.com/clinidesk/cashdesk_app/internal/export"
	"github.com/clinidesk/cashdesk_app/internal/platform/cache"
	"github.com/clinidesk/cashdesk_app/internal/platform/config"
	"github.com/clinidesk/cashdesk_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics, cacheClient *cache.Client, exportSvc *export.Service) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Reporting is wired first: the mutating services invalidate its
	// dashboard cache after every posting, open and close.
	container.Reporting = NewReportingService(repos.Reporting, exportSvc, cacheClient, cfg.DashboardCacheTTL)
	container.Register = NewRegisterService(repos.Register)
	container.Session = NewSessionService(repos.Session, m, container.Reporting)
	container.Movement = NewMovementService(repos.Movement, repos.Session, m, container.Reporting)
	container.User = NewUserService(repos.User)

	return container
}
