// Package queue publishes delivery outcome events for external
// consumers (reporting, billing). The dispatch engine only ever
// publishes; nothing in this process consumes.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
)

const (
	ExchangeName     = "groupcast-exchange"
	OutcomeQueueName = "delivery-outcomes"
	RoutingKey       = "delivery.outcome"
)

// DeliveryOutcome is emitted once per dispatch attempt outcome, after
// the delivery row has been reconciled.
type DeliveryOutcome struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	ScheduleID uuid.UUID `json:"schedule_id"`
	GroupID    string    `json:"group_id"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	At         time.Time `json:"at"`
}

// OutcomeQueue declares the outcome topology and wraps the publisher.
type OutcomeQueue struct {
	Publisher *rabbitmq.Publisher
}

// NewOutcomeQueue declares the exchange and the durable outcome queue
// and binds them.
func NewOutcomeQueue(ch *rabbitmq.Channel) (*OutcomeQueue, error) {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	q, err := qm.DeclareQueue(OutcomeQueueName, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare outcome queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the outcome queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())

	return &OutcomeQueue{Publisher: pub}, nil
}

// Publish sends one outcome event.
func (q *OutcomeQueue) Publish(msg DeliveryOutcome, strategy retry.Strategy) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, RoutingKey, "application/json", strategy)
}
