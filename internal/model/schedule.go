package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleStatus is the state of a campaign. Only ACTIVE schedules
// produce deliveries eligible for dispatch.
type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "ACTIVE"
	ScheduleStatusInactive ScheduleStatus = "INACTIVE"
)

// Schedule is a campaign: it references an ad, the messaging instance
// that sends it, and owns its deliveries (cascading lifecycle).
// DelayMin/DelayMax bound the randomized gap, in minutes, between
// consecutive delivery send times.
type Schedule struct {
	ID         uuid.UUID      `json:"id"`
	AdID       uuid.UUID      `json:"ad_id"`
	InstanceID string         `json:"instance_id"`
	Status     ScheduleStatus `json:"status"`
	DelayMin   int            `json:"delay_min"`
	DelayMax   int            `json:"delay_max"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
