// Package worker contains the dispatch loop and its supervisor: the
// component that claims due deliveries, pushes them through the
// WhatsApp gateway, and reconciles the outcome.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/vhpires/groupcast/internal/gateway"
	"github.com/vhpires/groupcast/internal/model"
	"github.com/vhpires/groupcast/internal/rabbitmq/queue"
)

const (
	// BatchSize bounds how many deliveries one iteration claims.
	BatchSize = 10
	// TickInterval is the supervisor period between iterations.
	TickInterval = 30 * time.Second
	// RetryCeiling is the retry count at which a delivery terminates
	// as FAILED.
	RetryCeiling = 3

	// staleClaimAfter is how long a SENDING claim may age before the
	// store treats it as abandoned by a crashed process.
	staleClaimAfter = 2 * TickInterval
)

// ErrAdHasNoItems is a permanent content failure: the delivery's ad
// has nothing to send, so the gateway is never called.
var ErrAdHasNoItems = errors.New("ad has no items configured")

// fallbackText is sent when an ad item carries neither image nor caption.
const fallbackText = "Mensagem sem texto"

//go:generate mockgen -source=dispatcher.go -destination=../mocks/worker/mock.go -package=mocks

type deliveryStore interface {
	ClaimDue(ctx context.Context, limit int, staleAfter time.Duration) ([]model.Delivery, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailedOrRetry(ctx context.Context, id uuid.UUID, sendErr string, ceiling int) (model.DeliveryStatus, error)
	RecordAttempt(ctx context.Context, deliveryID uuid.UUID, success bool, attemptErr string) error
}

type adStore interface {
	Items(ctx context.Context, adID uuid.UUID) ([]model.AdItem, error)
}

type outcomePublisher interface {
	Publish(msg queue.DeliveryOutcome, strategy retry.Strategy) error
}

// Dispatcher runs the dispatch loop. It is safe to share across
// tickers: a CAS guard skips a tick entirely while a previous
// iteration is still executing. Cross-process exclusivity is the
// store's claim statement, not this guard.
type Dispatcher struct {
	deliveries  deliveryStore
	ads         adStore
	provider    gateway.Provider
	outcomes    outcomePublisher
	strategy    retry.Strategy
	sendTimeout time.Duration

	running atomic.Bool
}

// NewDispatcher creates a dispatcher. sendTimeout bounds each gateway
// call independently of the gateway's own retry backoff.
func NewDispatcher(
	deliveries deliveryStore,
	ads adStore,
	provider gateway.Provider,
	outcomes outcomePublisher,
	strategy retry.Strategy,
	sendTimeout time.Duration,
) *Dispatcher {
	return &Dispatcher{
		deliveries:  deliveries,
		ads:         ads,
		provider:    provider,
		outcomes:    outcomes,
		strategy:    strategy,
		sendTimeout: sendTimeout,
	}
}

// RunOnce executes a single loop iteration: claim a batch, dispatch
// each delivery sequentially, reconcile outcomes. A claim failure
// aborts the iteration; per-delivery failures never do.
func (d *Dispatcher) RunOnce(ctx context.Context) {
	if !d.running.CompareAndSwap(false, true) {
		zlog.Logger.Debug().Msg("previous iteration still running, skipping tick")
		return
	}
	defer d.running.Store(false)

	batch, err := d.deliveries.ClaimDue(ctx, BatchSize, staleClaimAfter)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to claim due deliveries")
		return
	}

	if len(batch) == 0 {
		return
	}

	zlog.Logger.Info().Int("count", len(batch)).Msg("dispatching claimed deliveries")

	// Sequential on purpose: delivery i+1 starts only after i's outcome
	// is persisted, which bounds the outbound burst rate.
	for i := range batch {
		d.dispatch(ctx, &batch[i])
	}
}

// dispatch drives one claimed delivery to SENT, PENDING (retry) or
// FAILED. Errors are contained here; batch-mates are never affected.
func (d *Dispatcher) dispatch(ctx context.Context, dl *model.Delivery) {
	sendErr := d.send(ctx, dl)

	if sendErr == nil {
		if err := d.deliveries.MarkSent(ctx, dl.ID); err != nil {
			zlog.Logger.Error().Err(err).Str("delivery_id", dl.ID.String()).Msg("failed to mark delivery sent")
		}
		d.recordAttempt(ctx, dl.ID, true, "")
		d.publishOutcome(dl, true, "")
		return
	}

	zlog.Logger.Error().
		Err(sendErr).
		Str("delivery_id", dl.ID.String()).
		Str("group_id", dl.GroupID).
		Int("retry_count", dl.RetryCount).
		Msg("delivery send failed")

	status, err := d.deliveries.MarkFailedOrRetry(ctx, dl.ID, sendErr.Error(), RetryCeiling)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("delivery_id", dl.ID.String()).Msg("failed to update delivery after send failure")
	} else if status == model.DeliveryStatusFailed {
		zlog.Logger.Warn().Str("delivery_id", dl.ID.String()).Msg("delivery reached retry ceiling, marked failed")
	}

	d.recordAttempt(ctx, dl.ID, false, sendErr.Error())
	d.publishOutcome(dl, false, sendErr.Error())
}

// send resolves the ad content and performs the gateway call. The
// provider is already wrapped with the retry policy, so a returned
// error means the policy is exhausted or the failure is permanent.
func (d *Dispatcher) send(ctx context.Context, dl *model.Delivery) error {
	items, err := d.ads.Items(ctx, dl.AdID)
	if err != nil {
		return fmt.Errorf("resolve ad items: %w", err)
	}
	if len(items) == 0 {
		return ErrAdHasNoItems
	}

	// Only the first item is sent for now; items stay ordered so a
	// multi-item loop is a local change.
	first := items[0]

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	if first.ImageURL != "" {
		_, err = d.provider.SendMedia(sendCtx, gateway.SendMediaParams{
			InstanceID: dl.InstanceID,
			GroupID:    dl.GroupID,
			MediaURL:   first.ImageURL,
			MediaType:  "image",
			Text:       first.Text,
		})
		return err
	}

	text := first.Text
	if text == "" {
		text = fallbackText
	}

	_, err = d.provider.SendText(sendCtx, gateway.SendTextParams{
		InstanceID: dl.InstanceID,
		GroupID:    dl.GroupID,
		Text:       text,
	})
	return err
}

// recordAttempt appends the audit row. Audit is best-effort: a failure
// is logged and never propagates to the dispatch outcome.
func (d *Dispatcher) recordAttempt(ctx context.Context, id uuid.UUID, success bool, attemptErr string) {
	if err := d.deliveries.RecordAttempt(ctx, id, success, attemptErr); err != nil {
		zlog.Logger.Error().Err(err).Str("delivery_id", id.String()).Msg("failed to record delivery attempt")
	}
}

// publishOutcome emits the outcome event. Best-effort as well.
func (d *Dispatcher) publishOutcome(dl *model.Delivery, success bool, outcomeErr string) {
	msg := queue.DeliveryOutcome{
		DeliveryID: dl.ID,
		ScheduleID: dl.ScheduleID,
		GroupID:    dl.GroupID,
		Success:    success,
		Error:      outcomeErr,
		At:         time.Now().UTC(),
	}

	if err := d.outcomes.Publish(msg, d.strategy); err != nil {
		zlog.Logger.Error().Err(err).Str("delivery_id", dl.ID.String()).Msg("failed to publish delivery outcome")
	}
}
