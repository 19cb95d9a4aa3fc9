package delivery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/vhpires/groupcast/internal/model"
)

var (
	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrNoDeliveriesFound = errors.New("no deliveries found")
)

// Repository provides access to the deliveries and delivery_attempts tables.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new delivery repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// claimQuery flips due deliveries to SENDING and returns them in one
// statement. Exclusivity across concurrent worker processes comes from
// the row locks taken by the inner select: FOR UPDATE SKIP LOCKED
// makes overlapping claimants see disjoint row sets, and the UPDATE
// commits before any claimant can observe the rows again.
//
// Besides PENDING-and-due rows of ACTIVE schedules, the predicate also
// reclaims rows abandoned in SENDING by a crashed process: any row
// whose claim is older than the stale threshold is fair game again.
const claimQuery = `
	UPDATE deliveries d
	SET status = 'SENDING', updated_at = NOW()
	FROM (
		SELECT d2.id, s.ad_id
		FROM deliveries d2
		JOIN schedules s ON s.id = d2.schedule_id
		WHERE s.status = 'ACTIVE'
		  AND d2.scheduled_at <= NOW()
		  AND (
			d2.status = 'PENDING'
			OR (d2.status = 'SENDING' AND d2.updated_at < NOW() - $2::interval)
		  )
		ORDER BY d2.scheduled_at
		LIMIT $1
		FOR UPDATE OF d2 SKIP LOCKED
	) due
	WHERE d.id = due.id
	RETURNING d.id, d.schedule_id, due.ad_id, d.instance_id, d.group_id,
	          d.status, d.scheduled_at, d.retry_count, COALESCE(d.last_error, ''),
	          d.created_at, d.updated_at;
`

// ClaimDue atomically claims up to limit due deliveries, transitioning
// them PENDING -> SENDING. SENDING rows older than staleAfter are
// treated as abandoned and reclaimed. Returns an empty slice when
// nothing is due.
func (r *Repository) ClaimDue(ctx context.Context, limit int, staleAfter time.Duration) ([]model.Delivery, error) {
	stale := fmt.Sprintf("%d seconds", int(staleAfter.Seconds()))

	// The claim mutates state, so it must bypass dbpg's read routing:
	// on a replica the UPDATE either errors (hot standby) or silently
	// voids the exclusivity guarantee.
	rows, err := r.db.Master.QueryContext(ctx, claimQuery, limit, stale)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []model.Delivery
	for rows.Next() {
		var d model.Delivery
		if err := rows.Scan(
			&d.ID, &d.ScheduleID, &d.AdID, &d.InstanceID, &d.GroupID,
			&d.Status, &d.ScheduledAt, &d.RetryCount, &d.LastError,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan claimed delivery: %w", err)
		}

		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read claimed deliveries: %w", err)
	}

	return deliveries, nil
}

// MarkSent transitions a claimed delivery to its terminal SENT state.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE deliveries
		SET status = 'SENT', updated_at = NOW()
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark delivery sent: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrDeliveryNotFound
	}

	return nil
}

// MarkFailedOrRetry increments the retry count and records the error.
// If the new count reaches the ceiling the delivery terminates as
// FAILED; otherwise it reverts to PENDING so a later loop iteration
// re-claims it. Returns the resulting status.
func (r *Repository) MarkFailedOrRetry(ctx context.Context, id uuid.UUID, sendErr string, ceiling int) (model.DeliveryStatus, error) {
	query := `
		UPDATE deliveries
		SET retry_count = retry_count + 1,
		    last_error = $2,
		    status = CASE WHEN retry_count + 1 >= $3 THEN 'FAILED' ELSE 'PENDING' END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING status;
    `

	// UPDATE..RETURNING, so it must run on the master like the claim.
	var status model.DeliveryStatus
	err := r.db.Master.QueryRowContext(ctx, query, id, sendErr, ceiling).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrDeliveryNotFound
		}

		return "", fmt.Errorf("failed to mark delivery failed or retry: %w", err)
	}

	return status, nil
}

// RecordAttempt appends an immutable audit row for one send attempt.
func (r *Repository) RecordAttempt(ctx context.Context, deliveryID uuid.UUID, success bool, attemptErr string) error {
	query := `
		INSERT INTO delivery_attempts (id, delivery_id, success, error, created_at)
		VALUES ($1, $2, $3, $4, NOW());
    `

	_, err := r.db.ExecContext(ctx, query, uuid.New(), deliveryID, success, attemptErr)
	if err != nil {
		return fmt.Errorf("failed to record delivery attempt: %w", err)
	}

	return nil
}

// CreateBatch inserts the deliveries produced by a schedule activation
// in a single transaction, one row per target group.
func (r *Repository) CreateBatch(ctx context.Context, deliveries []model.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO deliveries (id, schedule_id, instance_id, group_id, status, scheduled_at, retry_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, NOW(), NOW());
    `

	for _, d := range deliveries {
		if _, err := tx.ExecContext(ctx, query,
			d.ID, d.ScheduleID, d.InstanceID, d.GroupID, d.Status, d.ScheduledAt,
		); err != nil {
			return fmt.Errorf("failed to insert delivery for group %s: %w", d.GroupID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delivery batch: %w", err)
	}

	return nil
}

// GetStatusByID retrieves the status of a delivery by its ID.
func (r *Repository) GetStatusByID(ctx context.Context, id uuid.UUID) (model.DeliveryStatus, error) {
	query := `
		SELECT status
		FROM deliveries
		WHERE id = $1;
    `

	var status model.DeliveryStatus
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrDeliveryNotFound
		}

		return "", fmt.Errorf("failed to get delivery status: %w", err)
	}

	return status, nil
}

// ListBySchedule retrieves all deliveries of a schedule ordered by
// their send time.
func (r *Repository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.Delivery, error) {
	query := `
		SELECT id, schedule_id, instance_id, group_id, status, scheduled_at,
		       retry_count, COALESCE(last_error, ''), created_at, updated_at
		FROM deliveries
		WHERE schedule_id = $1
		ORDER BY scheduled_at;
    `

	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []model.Delivery
	for rows.Next() {
		var d model.Delivery
		if err := rows.Scan(
			&d.ID, &d.ScheduleID, &d.InstanceID, &d.GroupID, &d.Status,
			&d.ScheduledAt, &d.RetryCount, &d.LastError, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}

		deliveries = append(deliveries, d)
	}

	if len(deliveries) == 0 {
		return nil, ErrNoDeliveriesFound
	}

	return deliveries, nil
}
