package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	portssvc "github.com/clinidesk/cashdesk_app/internal/core/ports/services"
	"github.com/clinidesk/cashdesk_app/internal/dto"
	"github.com/clinidesk/cashdesk_app/internal/export"
	"github.com/clinidesk/cashdesk_app/internal/middleware"
	"github.com/clinidesk/cashdesk_app/internal/platform/cache"
)

// defaultDashboardWindow is applied when the caller gives no date range.
const defaultDashboardWindow = 30 * 24 * time.Hour

// dashboardCachePrefix namespaces every cached rollup so an invalidation can
// sweep them all with one prefix delete.
const dashboardCachePrefix = "dashboard:"

// reportingService serves the read-only aggregation contract. The dashboard
// rollup is the only cached figure; everything else is computed per request.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	exportSvc     *export.Service
	cache         *cache.Client // nil disables caching
	cacheTTL      time.Duration
}

// NewReportingService creates a new ReportingService. cacheClient may be nil.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, exportSvc *export.Service, cacheClient *cache.Client, cacheTTL time.Duration) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		exportSvc:     exportSvc,
		cache:         cacheClient,
		cacheTTL:      cacheTTL,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetSessionSummary returns the per-session totals broken down by category
// and payment method.
func (s *reportingService) GetSessionSummary(ctx context.Context, sessionID string) (*dto.SessionSummaryResponse, error) {
	summary, err := s.reportingRepo.GetSessionSummary(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	res := dto.ToSessionSummaryResponse(summary)
	return &res, nil
}

// GetRegisterSnapshot returns the live view of one register.
func (s *reportingService) GetRegisterSnapshot(ctx context.Context, registerID string) (*dto.RegisterSnapshotResponse, error) {
	snapshot, err := s.reportingRepo.GetRegisterSnapshot(ctx, registerID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	res := dto.ToRegisterSnapshotResponse(snapshot)
	return &res, nil
}

// GetDashboard returns the rollup over a date range and optional register.
// Results are briefly cached when Redis is configured; a cache failure only
// logs and falls through to the database.
func (s *reportingService) GetDashboard(ctx context.Context, params dto.DashboardParams) (*dto.DashboardResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	to := time.Now().UTC()
	if params.To != nil {
		to = params.To.UTC()
	}
	from := to.Add(-defaultDashboardWindow)
	if params.From != nil {
		from = params.From.UTC()
	}

	var registerID *string
	if params.RegisterID != "" {
		registerID = &params.RegisterID
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%s:%d", dashboardCachePrefix,
		from.Format("2006-01-02"), to.Format("2006-01-02"), params.RegisterID, params.Recent)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var res dto.DashboardResponse
			if err := json.Unmarshal(cached, &res); err == nil {
				return &res, nil
			}
			logger.Warn("Discarding undecodable dashboard cache entry", slog.String("key", cacheKey))
		}
	}

	rollup, err := s.reportingRepo.GetDashboardRollup(ctx, from, to, registerID, params.Recent)
	if err != nil {
		return nil, err
	}
	res := dto.ToDashboardResponse(rollup)

	if s.cache != nil {
		payload, err := json.Marshal(res)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				logger.Warn("Failed to cache dashboard rollup", slog.String("error", err.Error()))
			}
		}
	}

	return &res, nil
}

// InvalidateDashboard drops all cached dashboard rollups. Called by the
// mutating services after a posting, open or close. A failed delete is only
// logged; the entries still expire on their TTL.
func (s *reportingService) InvalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, dashboardCachePrefix); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to invalidate dashboard cache", slog.String("error", err.Error()))
	}
}

// ExportMovements renders the filtered movement listing as an XLSX workbook.
func (s *reportingService) ExportMovements(ctx context.Context, params dto.ExportMovementsParams) ([]byte, error) {
	var registerID *string
	if params.RegisterID != "" {
		registerID = &params.RegisterID
	}
	return s.exportSvc.ExportMovementsXLSX(ctx, registerID, params.From, params.To)
}
