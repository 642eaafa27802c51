package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SpinWheel_Go/internal/domain"
	"github.com/osse101/SpinWheel_Go/internal/repository"
	"github.com/osse101/SpinWheel_Go/internal/utils"
)

const wheelColumns = `wheel_id, name, description, allow_rigging, require_reason_for_rigging,
	default_weight, rig_target_id, rig_hidden, rig_reason, rig_set_by, rig_set_at,
	total_spins, version, created_at, updated_at`

const participantColumns = `participant_id, wheel_id, name, weight, original_weight,
	selection_count, last_selected_at, created_at`

// WheelRepository implements repository.Wheel for PostgreSQL
type WheelRepository struct {
	db *pgxpool.Pool
}

// NewWheelRepository creates a new WheelRepository
func NewWheelRepository(db *pgxpool.Pool) *WheelRepository {
	return &WheelRepository{db: db}
}

// CreateWheel inserts a wheel and its initial participants in one transaction
func (r *WheelRepository) CreateWheel(ctx context.Context, wheel *domain.Wheel) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	rigTarget, rigHidden, rigReason, rigSetBy, rigSetAt := rigColumns(wheel.Rigging)
	err = tx.QueryRow(ctx, `
		INSERT INTO wheels (wheel_id, name, description, allow_rigging, require_reason_for_rigging,
			default_weight, rig_target_id, rig_hidden, rig_reason, rig_set_by, rig_set_at, total_spins, name_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING version, created_at, updated_at`,
		wheel.ID, wheel.Name, wheel.Description, wheel.Settings.AllowRigging,
		wheel.Settings.RequireReasonForRigging, wheel.Settings.DefaultWeight,
		rigTarget, rigHidden, rigReason, rigSetBy, rigSetAt, wheel.TotalSpins, utils.FoldName(wheel.Name),
	).Scan(&wheel.Version, &wheel.CreatedAt, &wheel.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateWheel, err)
	}

	for i := range wheel.Participants {
		wheel.Participants[i].WheelID = wheel.ID
		if err := insertParticipant(ctx, tx, &wheel.Participants[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// GetWheel retrieves a wheel with its participants in creation order
func (r *WheelRepository) GetWheel(ctx context.Context, id uuid.UUID) (*domain.Wheel, error) {
	return getWheel(ctx, r.db, id, false)
}

// ListWheels returns every wheel with its participants, oldest first
func (r *WheelRepository) ListWheels(ctx context.Context) ([]domain.Wheel, error) {
	return listWheels(ctx, r.db, `SELECT `+wheelColumns+` FROM wheels ORDER BY created_at, wheel_id`)
}

// GetWheelsByName returns every wheel whose name matches case-insensitively, oldest first
func (r *WheelRepository) GetWheelsByName(ctx context.Context, name string) ([]domain.Wheel, error) {
	return listWheels(ctx, r.db, `SELECT `+wheelColumns+` FROM wheels WHERE name_key = $1 ORDER BY created_at, wheel_id`, utils.FoldName(name))
}

// DeleteWheel removes a wheel; participants go with it via ON DELETE CASCADE
func (r *WheelRepository) DeleteWheel(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM wheels WHERE wheel_id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteWheel, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWheelNotFound
	}
	return nil
}

// AddParticipant inserts one participant. Name collisions map to domain.ErrDuplicateParticipant.
func (r *WheelRepository) AddParticipant(ctx context.Context, participant *domain.Participant) error {
	return insertParticipant(ctx, r.db, participant)
}

// GetParticipants returns a wheel's participants in creation order
func (r *WheelRepository) GetParticipants(ctx context.Context, wheelID uuid.UUID) ([]domain.Participant, error) {
	return getParticipants(ctx, r.db, wheelID)
}

// BeginTx starts a wheel transaction
func (r *WheelRepository) BeginTx(ctx context.Context) (repository.WheelTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &wheelTx{tx: tx}, nil
}

// wheelTx implements repository.WheelTx over a pgx transaction
type wheelTx struct {
	tx pgx.Tx
}

func (t *wheelTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *wheelTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetWheelForUpdate loads the wheel and holds its row lock until the transaction ends
func (t *wheelTx) GetWheelForUpdate(ctx context.Context, id uuid.UUID) (*domain.Wheel, error) {
	return getWheel(ctx, t.tx, id, true)
}

// SaveParticipants writes back the mutable fields of every participant in one batch
func (t *wheelTx) SaveParticipants(ctx context.Context, participants []domain.Participant) error {
	if len(participants) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range participants {
		batch.Queue(`
			UPDATE wheel_participants
			SET weight = $3, original_weight = $4, selection_count = $5, last_selected_at = $6
			WHERE participant_id = $1 AND wheel_id = $2`,
			p.ID, p.WheelID, p.Weight, p.OriginalWeight, p.SelectionCount, p.LastSelectedAt)
	}

	br := t.tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, p := range participants {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToSaveParticipants, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", domain.ErrParticipantNotFound, p.ID)
		}
	}
	return nil
}

// UpdateParticipant writes a single participant, including its name
func (t *wheelTx) UpdateParticipant(ctx context.Context, p *domain.Participant) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE wheel_participants
		SET name = $3, name_key = $4, weight = $5, original_weight = $6,
			selection_count = $7, last_selected_at = $8
		WHERE participant_id = $1 AND wheel_id = $2`,
		p.ID, p.WheelID, p.Name, utils.FoldName(p.Name), p.Weight, p.OriginalWeight,
		p.SelectionCount, p.LastSelectedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateParticipant
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateParticipant, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

// DeleteParticipant removes one participant from a wheel
func (t *wheelTx) DeleteParticipant(ctx context.Context, wheelID, participantID uuid.UUID) error {
	tag, err := t.tx.Exec(ctx,
		`DELETE FROM wheel_participants WHERE participant_id = $1 AND wheel_id = $2`,
		participantID, wheelID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteParticipant, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

// SaveWheel performs the version-checked write of wheel-level state
func (t *wheelTx) SaveWheel(ctx context.Context, wheel *domain.Wheel) error {
	rigTarget, rigHidden, rigReason, rigSetBy, rigSetAt := rigColumns(wheel.Rigging)
	err := t.tx.QueryRow(ctx, `
		UPDATE wheels
		SET name = $3, description = $4, allow_rigging = $5, require_reason_for_rigging = $6,
			default_weight = $7, rig_target_id = $8, rig_hidden = $9, rig_reason = $10,
			rig_set_by = $11, rig_set_at = $12, total_spins = $13, name_key = $14,
			version = version + 1, updated_at = NOW()
		WHERE wheel_id = $1 AND version = $2
		RETURNING version, updated_at`,
		wheel.ID, wheel.Version, wheel.Name, wheel.Description, wheel.Settings.AllowRigging,
		wheel.Settings.RequireReasonForRigging, wheel.Settings.DefaultWeight,
		rigTarget, rigHidden, rigReason, rigSetBy, rigSetAt, wheel.TotalSpins, utils.FoldName(wheel.Name),
	).Scan(&wheel.Version, &wheel.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrVersionConflict
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveWheel, err)
	}
	return nil
}

// ---- shared helpers ----

func insertParticipant(ctx context.Context, q querier, p *domain.Participant) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := q.Exec(ctx, `
		INSERT INTO wheel_participants (participant_id, wheel_id, name, name_key, weight,
			original_weight, selection_count, last_selected_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.WheelID, p.Name, utils.FoldName(p.Name), p.Weight, p.OriginalWeight,
		p.SelectionCount, p.LastSelectedAt, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateParticipant
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddParticipant, err)
	}
	return nil
}

func getWheel(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*domain.Wheel, error) {
	query := `SELECT ` + wheelColumns + ` FROM wheels WHERE wheel_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	wheel, err := scanWheel(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWheelNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWheel, err)
	}

	wheel.Participants, err = getParticipants(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return wheel, nil
}

func listWheels(ctx context.Context, q querier, query string, args ...any) ([]domain.Wheel, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListWheels, err)
	}
	wheels, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Wheel, error) {
		w, err := scanWheel(row)
		if err != nil {
			return domain.Wheel{}, err
		}
		return *w, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanWheel, err)
	}

	for i := range wheels {
		wheels[i].Participants, err = getParticipants(ctx, q, wheels[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return wheels, nil
}

func getParticipants(ctx context.Context, q querier, wheelID uuid.UUID) ([]domain.Participant, error) {
	rows, err := q.Query(ctx,
		`SELECT `+participantColumns+` FROM wheel_participants WHERE wheel_id = $1 ORDER BY seq`,
		wheelID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetParticipants, err)
	}

	participants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Participant, error) {
		var p domain.Participant
		var lastSelected pgtype.Timestamptz
		err := row.Scan(&p.ID, &p.WheelID, &p.Name, &p.Weight, &p.OriginalWeight,
			&p.SelectionCount, &lastSelected, &p.CreatedAt)
		p.LastSelectedAt = ptrTime(lastSelected)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanParticipant, err)
	}
	return participants, nil
}

func scanWheel(row pgx.Row) (*domain.Wheel, error) {
	var w domain.Wheel
	var (
		rigTarget pgtype.UUID
		rigHidden bool
		rigReason string
		rigSetBy  string
		rigSetAt  pgtype.Timestamptz
	)

	err := row.Scan(&w.ID, &w.Name, &w.Description, &w.Settings.AllowRigging,
		&w.Settings.RequireReasonForRigging, &w.Settings.DefaultWeight,
		&rigTarget, &rigHidden, &rigReason, &rigSetBy, &rigSetAt,
		&w.TotalSpins, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if target := nullableUUID(rigTarget); target != nil {
		w.Rigging = &domain.Rigging{
			TargetParticipantID: *target,
			Hidden:              rigHidden,
			Reason:              rigReason,
			SetBy:               rigSetBy,
		}
		if setAt := ptrTime(rigSetAt); setAt != nil {
			w.Rigging.SetAt = *setAt
		}
	}
	return &w, nil
}

// rigColumns flattens an optional rig into its nullable column values
func rigColumns(rig *domain.Rigging) (target *uuid.UUID, hidden bool, reason, setBy string, setAt *time.Time) {
	if rig == nil {
		return nil, false, "", "", nil
	}
	id := rig.TargetParticipantID
	at := rig.SetAt
	return &id, rig.Hidden, rig.Reason, rig.SetBy, &at
}
