package model

import (
	"time"

	"github.com/google/uuid"
)

// Ad is an ordered sequence of items to broadcast.
type Ad struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AdItem is one message of an ad: an optional image plus caption.
type AdItem struct {
	ID       uuid.UUID `json:"id"`
	AdID     uuid.UUID `json:"ad_id"`
	ImageURL string    `json:"image_url,omitempty"`
	Text     string    `json:"text,omitempty"`
	Position int       `json:"position"`
}
