package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinidesk/cashdesk_app/internal/apperrors"
	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	"github.com/clinidesk/cashdesk_app/internal/models"
	"github.com/clinidesk/cashdesk_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the reporting read contract
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// categoryTotals aggregates ledger rows matching the WHERE fragment into
// (type, category) buckets.
func (r *reportingRepository) categoryTotals(ctx context.Context, where string, args ...interface{}) ([]domain.CategoryTotal, error) {
	query := `
		SELECT movement_type, category, SUM(amount), COUNT(*)
		FROM cash_movements
		` + where + `
		GROUP BY movement_type, category
		ORDER BY movement_type, SUM(amount) DESC
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying category totals: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryTotal{}
	for rows.Next() {
		var row domain.CategoryTotal
		var movementType string
		if err := rows.Scan(&movementType, &row.Category, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning category total row: %w", err)
		}
		row.MovementType = domain.MovementType(movementType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category total rows: %w", err)
	}
	return result, nil
}

// methodTotals aggregates ledger rows matching the WHERE fragment into
// (type, payment method) buckets.
func (r *reportingRepository) methodTotals(ctx context.Context, where string, args ...interface{}) ([]domain.MethodTotal, error) {
	query := `
		SELECT movement_type, payment_method, SUM(amount), COUNT(*)
		FROM cash_movements
		` + where + `
		GROUP BY movement_type, payment_method
		ORDER BY movement_type, SUM(amount) DESC
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying payment method totals: %w", err)
	}
	defer rows.Close()

	result := []domain.MethodTotal{}
	for rows.Next() {
		var row domain.MethodTotal
		var movementType, method string
		if err := rows.Scan(&movementType, &method, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning payment method total row: %w", err)
		}
		row.MovementType = domain.MovementType(movementType)
		row.Method = domain.PaymentMethod(method)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment method total rows: %w", err)
	}
	return result, nil
}

// GetSessionSummary computes a session's totals broken down by category and
// payment method, derived from the ledger rather than the stored aggregates.
func (r *reportingRepository) GetSessionSummary(ctx context.Context, sessionID string) (*domain.SessionSummary, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cash_sessions WHERE session_id = $1);`, sessionID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error checking session %s: %w", sessionID, err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}

	summary := domain.SessionSummary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	summary.ByCategory, err = r.categoryTotals(ctx, `WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, err
	}
	summary.ByMethod, err = r.methodTotals(ctx, `WHERE session_id = $1`, sessionID)
	if err != nil {
		return nil, err
	}

	for _, bucket := range summary.ByCategory {
		if bucket.MovementType == domain.Income {
			summary.TotalIncome = summary.TotalIncome.Add(bucket.Total)
		} else {
			summary.TotalExpense = summary.TotalExpense.Add(bucket.Total)
		}
	}

	return &summary, nil
}

// GetRegisterSnapshot returns the live view of one register: its maintained
// balance, today's movement count and whether a session is open.
func (r *reportingRepository) GetRegisterSnapshot(ctx context.Context, registerID string, now time.Time) (*domain.RegisterSnapshot, error) {
	snapshot := domain.RegisterSnapshot{RegisterID: registerID}

	err := r.Pool.QueryRow(ctx, `SELECT current_balance FROM cash_registers WHERE register_id = $1;`, registerID).Scan(&snapshot.CurrentBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error querying register %s for snapshot: %w", registerID, err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	err = r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM cash_movements
		WHERE register_id = $1 AND movement_date >= $2 AND movement_date < $3;
	`, registerID, dayStart, dayEnd).Scan(&snapshot.MovementsToday)
	if err != nil {
		return nil, fmt.Errorf("error counting today's movements for register %s: %w", registerID, err)
	}

	err = r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cash_sessions WHERE register_id = $1 AND status = 'OPEN');`, registerID).Scan(&snapshot.HasOpenSession)
	if err != nil {
		return nil, fmt.Errorf("error checking open session for register %s: %w", registerID, err)
	}

	return &snapshot, nil
}

// GetDashboardRollup aggregates ledger activity over a date range and
// optional single register.
func (r *reportingRepository) GetDashboardRollup(ctx context.Context, from, to time.Time, registerID *string, recentLimit int) (*domain.DashboardRollup, error) {
	if recentLimit <= 0 {
		recentLimit = 10
	}

	where := `WHERE movement_date >= $1 AND movement_date <= $2`
	args := []interface{}{from, to}
	if registerID != nil {
		args = append(args, *registerID)
		where += fmt.Sprintf(` AND register_id = $%d`, len(args))
	}

	rollup := domain.DashboardRollup{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	err := r.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN movement_type = 'INCOME' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN movement_type = 'EXPENSE' THEN amount ELSE 0 END), 0)
		FROM cash_movements
		`+where+`;
	`, args...).Scan(&rollup.TotalIncome, &rollup.TotalExpense)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard totals: %w", err)
	}
	rollup.NetFlow = rollup.TotalIncome.Sub(rollup.TotalExpense)

	err = r.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM cash_registers WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM cash_sessions WHERE status = 'OPEN');
	`).Scan(&rollup.ActiveRegisters, &rollup.OpenSessions)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard counts: %w", err)
	}

	rollup.ByCategory, err = r.categoryTotals(ctx, where, args...)
	if err != nil {
		return nil, err
	}
	rollup.ByMethod, err = r.methodTotals(ctx, where, args...)
	if err != nil {
		return nil, err
	}

	recentArgs := append(append([]interface{}{}, args...), recentLimit)
	recentQuery := `
		SELECT ` + movementColumns + `
		FROM cash_movements
		` + where + `
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $` + fmt.Sprintf("%d", len(recentArgs)) + `;
	`
	rows, err := r.Pool.Query(ctx, recentQuery, recentArgs...)
	if err != nil {
		return nil, fmt.Errorf("error querying recent movements: %w", err)
	}
	defer rows.Close()

	recent := []models.CashMovement{}
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning recent movement row: %w", err)
		}
		recent = append(recent, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent movement rows: %w", err)
	}
	rollup.RecentMovements = mapping.ToDomainMovementSlice(recent)

	return &rollup, nil
}
