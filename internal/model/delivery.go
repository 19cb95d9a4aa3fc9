package model

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryStatus is the lifecycle state of a single delivery.
//
// PENDING and SENDING are non-terminal; SENT and FAILED are terminal.
// SENDING is transient: it marks an exclusive claim held by one dispatch
// loop iteration and must never be observed as a steady state.
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "PENDING"
	DeliveryStatusSending DeliveryStatus = "SENDING"
	DeliveryStatusSent    DeliveryStatus = "SENT"
	DeliveryStatusFailed  DeliveryStatus = "FAILED"
)

// Delivery is one planned send of one ad to one WhatsApp group under
// one schedule. Rows are created in bulk when a schedule is activated
// and mutated only by the dispatch loop afterwards.
type Delivery struct {
	ID          uuid.UUID      `json:"id"`
	ScheduleID  uuid.UUID      `json:"schedule_id"`
	AdID        uuid.UUID      `json:"ad_id"`
	InstanceID  string         `json:"instance_id"`
	GroupID     string         `json:"group_id"`
	Status      DeliveryStatus `json:"status"`
	ScheduledAt time.Time      `json:"scheduled_at"`
	RetryCount  int            `json:"retry_count"`
	LastError   string         `json:"last_error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DeliveryAttempt is an append-only audit record of one send attempt.
// It is written once per dispatch attempt and never read by the
// dispatch logic itself.
type DeliveryAttempt struct {
	ID         uuid.UUID `json:"id"`
	DeliveryID uuid.UUID `json:"delivery_id"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
