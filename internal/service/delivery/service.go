package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/delivery/mock.go -package=mocks

type deliveryRepository interface {
	GetStatusByID(ctx context.Context, id uuid.UUID) (model.DeliveryStatus, error)
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.Delivery, error)
}

type cache interface {
	SetWithRetry(ctx context.Context, strategy retry.Strategy, key string, value interface{}) error
	GetWithRetry(ctx context.Context, strategy retry.Strategy, key string) (string, error)
}

// Service answers delivery status queries for the API, cache-first.
// Deliveries are async by nature; this read path is the only way their
// outcome becomes user-visible.
type Service struct {
	repo  deliveryRepository
	cache cache
}

// NewService creates a delivery service.
func NewService(repo deliveryRepository, c cache) *Service {
	return &Service{repo: repo, cache: c}
}

// GetStatusByID returns the delivery status, consulting the cache
// before the store. Only terminal statuses are served from cache: the
// dispatch loop mutates rows without touching redis, so a cached
// PENDING or SENDING may be stale.
func (s *Service) GetStatusByID(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.DeliveryStatus, error) {
	cached, err := s.cache.GetWithRetry(ctx, strategy, deliveryKey(id))
	if err != nil && !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Str("delivery_id", id.String()).Msg("failed to get delivery status from cache")
	}

	switch model.DeliveryStatus(cached) {
	case model.DeliveryStatusSent, model.DeliveryStatusFailed:
		return model.DeliveryStatus(cached), nil
	}

	status, err := s.repo.GetStatusByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get delivery status: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, strategy, deliveryKey(id), string(status)); err != nil {
		zlog.Logger.Error().Err(err).Str("delivery_id", id.String()).Msg("failed to cache delivery status")
	}

	return status, nil
}

// ListBySchedule returns all deliveries of a schedule.
func (s *Service) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]model.Delivery, error) {
	deliveries, err := s.repo.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	return deliveries, nil
}

func deliveryKey(id uuid.UUID) string {
	return "delivery:" + id.String()
}
