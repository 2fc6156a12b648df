package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/clinidesk/cashdesk_app/internal/apperrors"
	"github.com/clinidesk/cashdesk_app/internal/core/domain"
	portsrepo "github.com/clinidesk/cashdesk_app/internal/core/ports/repositories"
	"github.com/clinidesk/cashdesk_app/internal/models"
	"github.com/clinidesk/cashdesk_app/internal/utils/mapping"
	"github.com/clinidesk/cashdesk_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for the movement ledger.
func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxMovementRepository implements portsrepo.MovementRepositoryFacade
var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

const movementColumns = `movement_id, register_id, session_id, movement_type, category, amount, payment_method, description, reference, patient_id, invoice_id, expense_id, document_type, document_number, original_movement_id, reversed_by_movement_id, movement_date, created_at, created_by, last_updated_at, last_updated_by`

// scanMovementRow scans one ledger row into its model shape.
func scanMovementRow(row pgx.Row) (models.CashMovement, error) {
	var m models.CashMovement
	err := row.Scan(
		&m.MovementID,
		&m.RegisterID,
		&m.SessionID,
		&m.MovementType,
		&m.Category,
		&m.Amount,
		&m.Method,
		&m.Description,
		&m.Reference,
		&m.PatientID,
		&m.InvoiceID,
		&m.ExpenseID,
		&m.DocumentType,
		&m.DocumentNumber,
		&m.OriginalMovementID,
		&m.ReversedByMovementID,
		&m.MovementDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// postMovementInTx runs the shared posting steps inside an open transaction:
// lock and verify the register, lock and verify the named session, insert the
// ledger row, apply the signed amount to the register balance, and bump the
// session total for the movement's type.
func (r *PgxMovementRepository) postMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.CashMovement) error {
	var isActive bool
	err := tx.QueryRow(ctx, `SELECT is_active FROM cash_registers WHERE register_id = $1 FOR UPDATE;`, movement.RegisterID).Scan(&isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: register %s", apperrors.ErrNotFound, movement.RegisterID)
		}
		return fmt.Errorf("failed to lock register %s for posting: %w", movement.RegisterID, err)
	}
	if !isActive {
		return apperrors.ErrRegisterInactive
	}

	if movement.SessionID != nil {
		var sessionRegisterID string
		var status models.SessionStatus
		err = tx.QueryRow(ctx, `SELECT register_id, status FROM cash_sessions WHERE session_id = $1 FOR UPDATE;`, *movement.SessionID).Scan(&sessionRegisterID, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, *movement.SessionID)
			}
			return fmt.Errorf("failed to lock session %s for posting: %w", *movement.SessionID, err)
		}
		if status != models.SessionOpen || sessionRegisterID != movement.RegisterID {
			return apperrors.ErrSessionNotOpen
		}
	}

	m := mapping.ToModelMovement(movement)
	query := `
		INSERT INTO cash_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err = tx.Exec(ctx, query,
		m.MovementID,
		m.RegisterID,
		m.SessionID,
		m.MovementType,
		m.Category,
		m.Amount,
		m.Method,
		m.Description,
		m.Reference,
		m.PatientID,
		m.InvoiceID,
		m.ExpenseID,
		m.DocumentType,
		m.DocumentNumber,
		m.OriginalMovementID,
		m.ReversedByMovementID,
		m.MovementDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", m.MovementID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE cash_registers
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE register_id = $1;
	`, movement.RegisterID, movement.SignedAmount(), m.CreatedAt, m.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to apply movement %s to register balance: %w", m.MovementID, err)
	}

	if movement.SessionID != nil {
		totalColumn := "total_income"
		if movement.MovementType == domain.Expense {
			totalColumn = "total_expense"
		}
		_, err = tx.Exec(ctx, `
			UPDATE cash_sessions
			SET `+totalColumn+` = `+totalColumn+` + $2, last_updated_at = $3, last_updated_by = $4
			WHERE session_id = $1;
		`, *movement.SessionID, movement.Amount, m.CreatedAt, m.CreatedBy)
		if err != nil {
			return fmt.Errorf("failed to apply movement %s to session totals: %w", m.MovementID, err)
		}
	}

	return nil
}

// SaveMovement posts a movement as one transaction; a failure at any step
// leaves no partial state.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.CashMovement) (*domain.CashMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.postMovementInTx(ctx, tx, movement); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &movement, nil
}

// SaveReversal posts the offsetting movement and stamps the original row in
// the same transaction. The original is locked first so two concurrent
// reversals serialize; the loser sees the stamp and gets a conflict.
func (r *PgxMovementRepository) SaveReversal(ctx context.Context, reversal domain.CashMovement, originalMovementID string) (*domain.CashMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var reversedBy *string
	var originalOf *string
	err = tx.QueryRow(ctx, `SELECT reversed_by_movement_id, original_movement_id FROM cash_movements WHERE movement_id = $1 FOR UPDATE;`, originalMovementID).Scan(&reversedBy, &originalOf)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, originalMovementID)
		}
		return nil, fmt.Errorf("failed to lock movement %s for reversal: %w", originalMovementID, err)
	}
	if reversedBy != nil {
		return nil, fmt.Errorf("%w: movement %s already reversed", apperrors.ErrConflict, originalMovementID)
	}
	if originalOf != nil {
		return nil, fmt.Errorf("%w: movement %s is itself a reversal", apperrors.ErrConflict, originalMovementID)
	}

	if err := r.postMovementInTx(ctx, tx, reversal); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE cash_movements
		SET reversed_by_movement_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE movement_id = $1;
	`, originalMovementID, reversal.MovementID, reversal.CreatedAt, reversal.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to stamp reversal on movement %s: %w", originalMovementID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &reversal, nil
}

// FindMovementByID retrieves a movement by its ID.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.CashMovement, error) {
	m, err := scanMovementRow(r.Pool.QueryRow(ctx, `SELECT `+movementColumns+` FROM cash_movements WHERE movement_id = $1;`, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find movement by ID %s: %w", movementID, err)
	}
	d := mapping.ToDomainMovement(m)
	return &d, nil
}

// ListMovements retrieves a paginated list of movements ordered by
// (movement_date DESC, created_at DESC), using token-based pagination.
func (r *PgxMovementRepository) ListMovements(ctx context.Context, filter portsrepo.ListMovementsFilter, limit int, nextToken *string) ([]domain.CashMovement, *string, error) {
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
	if filter.SessionID != nil {
		addCondition("session_id = $%d", *filter.SessionID)
	}
	if filter.MovementType != nil {
		addCondition("movement_type = $%d", string(*filter.MovementType))
	}
	if filter.Category != nil {
		addCondition("category = $%d", *filter.Category)
	}
	if filter.DateFrom != nil {
		addCondition("movement_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCondition("movement_date <= $%d", *filter.DateTo)
	}
	if nextToken != nil && *nextToken != "" {
		lastMovementDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable across equal dates.
		args = append(args, lastMovementDate, lastCreatedAt)
		conditions = append(conditions, fmt.Sprintf("(movement_date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + movementColumns + ` FROM cash_movements`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY movement_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	movements := []models.CashMovement{}
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating movement rows: %w", err)
	}

	var newToken *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		token := pagination.EncodeToken(last.MovementDate, last.CreatedAt)
		newToken = &token
	}
	return mapping.ToDomainMovementSlice(movements), newToken, nil
}
