package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/vhpires/groupcast/internal/model"
)

var ErrScheduleNotFound = errors.New("schedule not found")

// Repository provides access to the schedules table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new schedule repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a schedule by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	query := `
		SELECT id, ad_id, instance_id, status, delay_min, delay_max, created_at, updated_at
		FROM schedules
		WHERE id = $1;
    `

	var s model.Schedule
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.AdID, &s.InstanceID, &s.Status,
		&s.DelayMin, &s.DelayMax, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}

		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return &s, nil
}

// SetStatus updates the status of a schedule by its ID. An INACTIVE
// schedule stops producing claimable deliveries immediately: the claim
// predicate checks the parent status on every tick.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status model.ScheduleStatus) error {
	query := `
		UPDATE schedules
		SET status = $1, updated_at = NOW()
		WHERE id = $2;
    `

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrScheduleNotFound
	}

	return nil
}
