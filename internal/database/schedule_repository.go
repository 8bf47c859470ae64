package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/offerwatch/offerwatch/internal/domain"
)

// ScheduleRepository persists the single ScheduleState record driving the
// wake scheduler. Absence of the row means no alarm is armed.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Get returns the persisted schedule state, or domain.ErrScheduleNotArmed
// when no alarm is armed.
func (r *ScheduleRepository) Get(ctx context.Context) (*domain.ScheduleState, error) {
	var state domain.ScheduleState
	query := `SELECT next_fire_at, last_outcome, updated_at FROM schedule_state WHERE id = 1`

	err := r.db.GetContext(ctx, &state, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrScheduleNotArmed
		}
		return nil, fmt.Errorf("failed to get schedule state: %w", err)
	}

	return &state, nil
}

// Put upserts the schedule state, last write wins.
func (r *ScheduleRepository) Put(ctx context.Context, state *domain.ScheduleState) error {
	query := `
		INSERT INTO schedule_state (id, next_fire_at, last_outcome, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			next_fire_at = EXCLUDED.next_fire_at,
			last_outcome = EXCLUDED.last_outcome,
			updated_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query, state.NextFireAt, string(state.LastOutcome))
	if err != nil {
		return fmt.Errorf("failed to put schedule state: %w", err)
	}

	return nil
}

// Clear removes the schedule state; the scheduler is then disarmed.
func (r *ScheduleRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedule_state WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to clear schedule state: %w", err)
	}
	return nil
}
