package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinidesk/cashdesk_app/internal/apperrors"
	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	"github.com/clinidesk/cashdesk_app/internal/models"
	"github.com/clinidesk/cashdesk_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRegisterRepository struct {
	BaseRepository
}

// newPgxRegisterRepository creates a new repository for register catalog data.
func newPgxRegisterRepository(pool *pgxpool.Pool) portsrepo.RegisterRepositoryFacade {
	return &PgxRegisterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRegisterRepository implements portsrepo.RegisterRepositoryFacade
var _ portsrepo.RegisterRepositoryFacade = (*PgxRegisterRepository)(nil)

const registerColumns = `register_id, name, description, location, responsible_user_id, initial_amount, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

// scanRegisterRow scans one register row into its model shape.
func scanRegisterRow(row pgx.Row) (models.CashRegister, error) {
	var m models.CashRegister
	var responsibleID sql.NullString
	err := row.Scan(
		&m.RegisterID,
		&m.Name,
		&m.Description,
		&m.Location,
		&responsibleID,
		&m.InitialAmount,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.CashRegister{}, err
	}
	if responsibleID.Valid {
		m.ResponsibleUserID = responsibleID.String
	}
	return m, nil
}

// SaveRegister inserts a new register with its starting float.
func (r *PgxRegisterRepository) SaveRegister(ctx context.Context, register domain.CashRegister) error {
	m := mapping.ToModelRegister(register)

	query := `
		INSERT INTO cash_registers (` + registerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	var responsibleID sql.NullString
	if m.ResponsibleUserID != "" {
		responsibleID = sql.NullString{String: m.ResponsibleUserID, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.RegisterID,
		m.Name,
		m.Description,
		m.Location,
		responsibleID,
		m.InitialAmount,
		m.CurrentBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: active register named %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save register %s: %w", m.RegisterID, err)
	}
	return nil
}

// FindRegisterByID retrieves a register by its ID.
func (r *PgxRegisterRepository) FindRegisterByID(ctx context.Context, registerID string) (*domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers WHERE register_id = $1;`

	m, err := scanRegisterRow(r.Pool.QueryRow(ctx, query, registerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find register by ID %s: %w", registerID, err)
	}

	d := mapping.ToDomainRegister(m)
	return &d, nil
}

// ListRegisters retrieves the register catalog, active first, name order.
func (r *PgxRegisterRepository) ListRegisters(ctx context.Context, includeInactive bool) ([]domain.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY is_active DESC, name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query registers: %w", err)
	}
	defer rows.Close()

	registers := []domain.CashRegister{}
	for rows.Next() {
		m, err := scanRegisterRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan register row: %w", err)
		}
		registers = append(registers, mapping.ToDomainRegister(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating register rows: %w", err)
	}
	return registers, nil
}

// UpdateRegister updates descriptive register details. The balance columns are
// deliberately absent from the statement.
func (r *PgxRegisterRepository) UpdateRegister(ctx context.Context, register domain.CashRegister) error {
	m := mapping.ToModelRegister(register)

	query := `
		UPDATE cash_registers
		SET name = $2, description = $3, location = $4, responsible_user_id = $5, last_updated_at = $6, last_updated_by = $7
		WHERE register_id = $1;
	`
	var responsibleID sql.NullString
	if m.ResponsibleUserID != "" {
		responsibleID = sql.NullString{String: m.ResponsibleUserID, Valid: true}
	}

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.RegisterID,
		m.Name,
		m.Description,
		m.Location,
		responsibleID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: active register named %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update register %s: %w", m.RegisterID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateRegister clears the active flag after verifying, under the
// register row lock, that no session is open on it.
func (r *PgxRegisterRepository) DeactivateRegister(ctx context.Context, registerID string, userID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var isActive bool
	err = tx.QueryRow(ctx, `SELECT is_active FROM cash_registers WHERE register_id = $1 FOR UPDATE;`, registerID).Scan(&isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock register %s for deactivation: %w", registerID, err)
	}
	if !isActive {
		return apperrors.ErrRegisterInactive
	}

	var hasOpen bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cash_sessions WHERE register_id = $1 AND status = 'OPEN');`, registerID).Scan(&hasOpen)
	if err != nil {
		return fmt.Errorf("failed to check open session for register %s: %w", registerID, err)
	}
	if hasOpen {
		return apperrors.ErrHasOpenSession
	}

	_, err = tx.Exec(ctx, `
		UPDATE cash_registers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE register_id = $1;
	`, registerID, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate register %s: %w", registerID, err)
	}

	return r.Commit(ctx, tx)
}
