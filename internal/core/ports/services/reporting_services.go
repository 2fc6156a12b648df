package services

import (
	"context"

	"github.com/clinidesk/cashdesk_app/internal/dto"
)

// DashboardInvalidator drops any cached dashboard rollups. The mutating
// services call it after a successful posting, open or close so the dashboard
// never serves totals from before the write.
type DashboardInvalidator interface {
	InvalidateDashboard(ctx context.Context)
}

// ReportingSvcFacade defines the read-only aggregation contract. Every figure
// it returns is derived from the ledger; nothing is cached server-side beyond
// the dashboard rollup.
type ReportingSvcFacade interface {
	DashboardInvalidator

	// GetSessionSummary returns the per-session totals broken down by
	// category and payment method.
	GetSessionSummary(ctx context.Context, sessionID string) (*dto.SessionSummaryResponse, error)

	// GetRegisterSnapshot returns the live view of one register.
	GetRegisterSnapshot(ctx context.Context, registerID string) (*dto.RegisterSnapshotResponse, error)

	// GetDashboard returns the rollup over a date range and optional
	// register, with the most recent movements.
	GetDashboard(ctx context.Context, params dto.DashboardParams) (*dto.DashboardResponse, error)

	// ExportMovements renders the filtered movement listing as an XLSX
	// workbook and returns the serialized bytes.
	ExportMovements(ctx context.Context, params dto.ExportMovementsParams) ([]byte, error)
}
