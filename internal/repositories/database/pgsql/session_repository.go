package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clinidesk/cashdesk_app/internal/apperrors"
	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	"github.com/clinidesk/cashdesk_app/internal/models"
	"github.com/clinidesk/cashdesk_app/internal/utils/mapping"
	"github.com/clinidesk/cashdesk_app/internal/utils/pagination"
	"github.com/clinidesk/cashdesk_app/internal/utils/reconciliation"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSessionRepository struct {
	BaseRepository
}

// newPgxSessionRepository creates a new repository for cashier session data.
func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxSessionRepository implements portsrepo.SessionRepositoryFacade
var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

const sessionColumns = `session_id, register_id, cashier_user_id, session_number, status, working_date, opening_balance, total_income, total_expense, actual_closing, expected_closing, difference, denominations, notes, discrepancy_notes, opened_at, closed_at, created_at, created_by, last_updated_at, last_updated_by`

// scanSessionRow scans one session row into its model shape.
func scanSessionRow(row pgx.Row) (models.CashSession, error) {
	var m models.CashSession
	err := row.Scan(
		&m.SessionID,
		&m.RegisterID,
		&m.CashierUserID,
		&m.SessionNumber,
		&m.Status,
		&m.WorkingDate,
		&m.OpeningBalance,
		&m.TotalIncome,
		&m.TotalExpense,
		&m.ActualClosing,
		&m.ExpectedClosing,
		&m.Difference,
		&m.Denominations,
		&m.Notes,
		&m.DiscrepancyNotes,
		&m.OpenedAt,
		&m.ClosedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateSession opens a session: under the register row lock it verifies the
// register is active and idle, assigns the next sequential session number, and
// inserts the OPEN row. The partial unique index on (register_id) WHERE
// status = 'OPEN' backs the idle check against concurrent opens.
func (r *PgxSessionRepository) CreateSession(ctx context.Context, session domain.CashSession) (*domain.CashSession, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var isActive bool
	err = tx.QueryRow(ctx, `SELECT is_active FROM cash_registers WHERE register_id = $1 FOR UPDATE;`, session.RegisterID).Scan(&isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: register %s", apperrors.ErrNotFound, session.RegisterID)
		}
		return nil, fmt.Errorf("failed to lock register %s for session open: %w", session.RegisterID, err)
	}
	if !isActive {
		return nil, apperrors.ErrRegisterInactive
	}

	var hasOpen bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cash_sessions WHERE register_id = $1 AND status = 'OPEN');`, session.RegisterID).Scan(&hasOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to check open session for register %s: %w", session.RegisterID, err)
	}
	if hasOpen {
		return nil, apperrors.ErrSessionAlreadyOpen
	}

	err = tx.QueryRow(ctx, `SELECT COALESCE(MAX(session_number), 0) + 1 FROM cash_sessions WHERE register_id = $1;`, session.RegisterID).Scan(&session.SessionNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to assign session number for register %s: %w", session.RegisterID, err)
	}

	m, err := mapping.ToModelSession(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session %s: %w", session.SessionID, err)
	}

	query := `
		INSERT INTO cash_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, query,
		m.SessionID,
		m.RegisterID,
		m.CashierUserID,
		m.SessionNumber,
		m.Status,
		m.WorkingDate,
		m.OpeningBalance,
		m.TotalIncome,
		m.TotalExpense,
		m.ActualClosing,
		m.ExpectedClosing,
		m.Difference,
		m.Denominations,
		m.Notes,
		m.DiscrepancyNotes,
		m.OpenedAt,
		m.ClosedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The partial unique index caught a concurrent open.
			return nil, apperrors.ErrSessionAlreadyOpen
		}
		return nil, fmt.Errorf("failed to insert session %s: %w", m.SessionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &session, nil
}

// CloseSession performs the one-way OPEN->CLOSED transition. The expected
// amount and difference are derived from the totals read under the session row
// lock, never from client input.
func (r *PgxSessionRepository) CloseSession(ctx context.Context, sessionID string, closing portsrepo.SessionClosing, userID string, closedAt time.Time) (*domain.CashSession, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanSessionRow(tx.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_sessions WHERE session_id = $1 FOR UPDATE;`, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to lock session %s for close: %w", sessionID, err)
	}
	if m.Status != models.SessionOpen {
		return nil, apperrors.ErrSessionClosed
	}

	result := reconciliation.Compute(m.OpeningBalance, m.TotalIncome, m.TotalExpense, closing.ActualClosing)

	var denoms []byte
	if closing.Denominations != nil {
		denoms, err = json.Marshal(closing.Denominations)
		if err != nil {
			return nil, fmt.Errorf("failed to encode denominations for session %s: %w", sessionID, err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE cash_sessions
		SET status = 'CLOSED', actual_closing = $2, expected_closing = $3, difference = $4,
		    denominations = $5, notes = $6, discrepancy_notes = $7, closed_at = $8,
		    last_updated_at = $8, last_updated_by = $9
		WHERE session_id = $1;
	`, sessionID, closing.ActualClosing, result.ExpectedClosing, result.Difference,
		denoms, closing.Notes, closing.DiscrepancyNotes, closedAt, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to close session %s: %w", sessionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = models.SessionClosed
	m.ActualClosing = &closing.ActualClosing
	m.ExpectedClosing = result.ExpectedClosing
	m.Difference = &result.Difference
	m.Denominations = denoms
	m.Notes = closing.Notes
	m.DiscrepancyNotes = closing.DiscrepancyNotes
	m.ClosedAt = &closedAt
	m.LastUpdatedAt = closedAt
	m.LastUpdatedBy = userID

	d, err := mapping.ToDomainSession(m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode closed session %s: %w", sessionID, err)
	}
	return &d, nil
}

// FindSessionByID retrieves a session by its ID.
func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.CashSession, error) {
	m, err := scanSessionRow(r.Pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_sessions WHERE session_id = $1;`, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by ID %s: %w", sessionID, err)
	}
	d, err := mapping.ToDomainSession(m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &d, nil
}

// FindOpenSessionByRegister retrieves the register's open session. Returns
// apperrors.ErrNotFound when the register is idle.
func (r *PgxSessionRepository) FindOpenSessionByRegister(ctx context.Context, registerID string) (*domain.CashSession, error) {
	m, err := scanSessionRow(r.Pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_sessions WHERE register_id = $1 AND status = 'OPEN';`, registerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find open session for register %s: %w", registerID, err)
	}
	d, err := mapping.ToDomainSession(m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", m.SessionID, err)
	}
	return &d, nil
}

// ListSessions retrieves a paginated list of sessions ordered by
// (opened_at, session_id) descending, using token-based pagination.
func (r *PgxSessionRepository) ListSessions(ctx context.Context, filter portsrepo.ListSessionsFilter, limit int, nextToken *string) ([]domain.CashSession, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	conditions := []string{}
	args := []interface{}{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.RegisterID != nil {
		addCondition("register_id = $%d", *filter.RegisterID)
	}
	if filter.Status != nil {
		addCondition("status = $%d", string(*filter.Status))
	}
	if filter.DateFrom != nil {
		addCondition("working_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("working_date <= $%d", *filter.DateTo)
	}
	if nextToken != nil && *nextToken != "" {
		lastOpenedAt, lastSessionID, decodeErr := pagination.DecodeDateIDToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison so sessions sharing an opened_at are not skipped
		// across a page boundary.
		args = append(args, lastOpenedAt, lastSessionID)
		conditions = append(conditions, fmt.Sprintf("(opened_at, session_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + sessionColumns + ` FROM cash_sessions`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY opened_at DESC, session_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []domain.CashSession{}
	for rows.Next() {
		m, err := scanSessionRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		d, err := mapping.ToDomainSession(m)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode session %s: %w", m.SessionID, err)
		}
		sessions = append(sessions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	var newToken *string
	if len(sessions) > limit {
		sessions = sessions[:limit]
		last := sessions[len(sessions)-1]
		token := pagination.EncodeDateIDToken(last.OpenedAt, last.SessionID)
		newToken = &token
	}
	return sessions, newToken, nil
}

// AnnotateSession amends the notes of a closed session. The reconciled
// figures are immutable after close, so only the two note columns move.
func (r *PgxSessionRepository) AnnotateSession(ctx context.Context, sessionID string, notes *string, discrepancyNotes *string, userID string, updatedAt time.Time) (*domain.CashSession, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanSessionRow(tx.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_sessions WHERE session_id = $1 FOR UPDATE;`, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to lock session %s for annotation: %w", sessionID, err)
	}
	if m.Status != models.SessionClosed {
		return nil, fmt.Errorf("%w: session %s is still open", apperrors.ErrConflict, sessionID)
	}

	if notes != nil {
		m.Notes = *notes
	}
	if discrepancyNotes != nil {
		m.DiscrepancyNotes = *discrepancyNotes
	}
	m.LastUpdatedAt = updatedAt
	m.LastUpdatedBy = userID

	_, err = tx.Exec(ctx, `
		UPDATE cash_sessions
		SET notes = $2, discrepancy_notes = $3, last_updated_at = $4, last_updated_by = $5
		WHERE session_id = $1;
	`, sessionID, m.Notes, m.DiscrepancyNotes, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to annotate session %s: %w", sessionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	d, err := mapping.ToDomainSession(m)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &d, nil
}
