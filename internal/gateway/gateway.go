// Package gateway abstracts the outbound WhatsApp channel.
//
// Concrete providers are swappable behind the Provider interface; the
// dispatch loop only ever sees an eventually-successful call or an
// error after the retry policy is exhausted.
package gateway

import "context"

//go:generate mockgen -source=gateway.go -destination=../mocks/gateway/mock.go -package=mocks

// Group is one WhatsApp group reachable through a messaging instance.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SendTextParams addresses a plain-text message.
type SendTextParams struct {
	InstanceID string
	GroupID    string
	Text       string
}

// SendMediaParams addresses a media message with an optional caption.
type SendMediaParams struct {
	InstanceID string
	GroupID    string
	MediaURL   string
	MediaType  string
	Text       string
}

// SendResult carries the provider-assigned message id.
type SendResult struct {
	MessageID string `json:"message_id"`
}

// Provider is the capability set of an outbound WhatsApp channel.
type Provider interface {
	Connect(ctx context.Context, instanceID string) error
	GetGroups(ctx context.Context, instanceID string) ([]Group, error)
	SendText(ctx context.Context, params SendTextParams) (SendResult, error)
	SendMedia(ctx context.Context, params SendMediaParams) (SendResult, error)
}
