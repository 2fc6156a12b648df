package repositories

import (
	"context"
	"time"

	"github.com/clinidesk/cashdesk_app/internal/core/domain"
)

// ReportingRepositoryFacade serves the read-only aggregation contract. All
// queries derive from the ledger and session tables; nothing here mutates.
type ReportingRepositoryFacade interface {
	GetSessionSummary(ctx context.Context, sessionID string) (*domain.SessionSummary, error)
	GetRegisterSnapshot(ctx context.Context, registerID string, now time.Time) (*domain.RegisterSnapshot, error)
	GetDashboardRollup(ctx context.Context, from, to time.Time, registerID *string, recentLimit int) (*domain.DashboardRollup, error)
}
