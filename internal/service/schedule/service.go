package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/model"
	"github.com/vhpires/groupcast/internal/spread"
)

var ErrNoTargetGroups = errors.New("schedule has no target groups")

//go:generate mockgen -source=service.go -destination=../../mocks/service/schedule/mock.go -package=mocks

type scheduleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.ScheduleStatus) error
}

type deliveryRepository interface {
	CreateBatch(ctx context.Context, deliveries []model.Delivery) error
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
}

// Service activates and deactivates schedules. Activation is the only
// place deliveries are created: one PENDING row per target group, with
// send times produced by the spreader.
type Service struct {
	schedules  scheduleRepository
	deliveries deliveryRepository
	cache      cache
}

// NewService creates a schedule service.
func NewService(schedules scheduleRepository, deliveries deliveryRepository, c cache) *Service {
	return &Service{schedules: schedules, deliveries: deliveries, cache: c}
}

// Activate flips the schedule ACTIVE and bulk-creates its deliveries.
// The first delivery is due immediately; each subsequent one is pushed
// out by a randomized gap within the schedule's delay window. The
// schedule's messaging instance is denormalized onto every row so the
// dispatch loop can route gateway calls without extra joins.
func (s *Service) Activate(ctx context.Context, strategy retry.Strategy, scheduleID uuid.UUID, groupIDs []string) ([]model.Delivery, error) {
	if len(groupIDs) == 0 {
		return nil, ErrNoTargetGroups
	}

	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	times := spread.Times(len(groupIDs), sched.DelayMin, sched.DelayMax, time.Now().UTC())

	deliveries := make([]model.Delivery, 0, len(groupIDs))
	for i, groupID := range groupIDs {
		deliveries = append(deliveries, model.Delivery{
			ID:          uuid.New(),
			ScheduleID:  sched.ID,
			AdID:        sched.AdID,
			InstanceID:  sched.InstanceID,
			GroupID:     groupID,
			Status:      model.DeliveryStatusPending,
			ScheduledAt: times[i],
		})
	}

	if err := s.deliveries.CreateBatch(ctx, deliveries); err != nil {
		return nil, fmt.Errorf("create deliveries: %w", err)
	}

	if err := s.schedules.SetStatus(ctx, scheduleID, model.ScheduleStatusActive); err != nil {
		return nil, fmt.Errorf("activate schedule: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, scheduleKey(scheduleID), string(model.ScheduleStatusActive)); err != nil {
		zlog.Logger.Error().Err(err).Str("schedule_id", scheduleID.String()).Msg("failed to cache schedule status")
	}

	zlog.Logger.Info().
		Str("schedule_id", scheduleID.String()).
		Int("deliveries", len(deliveries)).
		Msg("schedule activated")

	return deliveries, nil
}

// Deactivate flips the schedule INACTIVE. Pending deliveries stay in
// place but stop being claimable until reactivation.
func (s *Service) Deactivate(ctx context.Context, strategy retry.Strategy, scheduleID uuid.UUID) error {
	if err := s.schedules.SetStatus(ctx, scheduleID, model.ScheduleStatusInactive); err != nil {
		return fmt.Errorf("deactivate schedule: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, scheduleKey(scheduleID), string(model.ScheduleStatusInactive)); err != nil {
		zlog.Logger.Error().Err(err).Str("schedule_id", scheduleID.String()).Msg("failed to cache schedule status")
	}

	return nil
}

func scheduleKey(id uuid.UUID) string {
	return "schedule:" + id.String()
}
