package gateway

import "context"

// Meta is a placeholder adapter for the official WhatsApp Business
// Cloud API. It satisfies Provider so the selection wiring is in place
// before the integration lands.
type Meta struct{}

func NewMeta() *Meta { return &Meta{} }

func (m *Meta) Connect(ctx context.Context, instanceID string) error {
	return ErrNotImplemented
}

func (m *Meta) GetGroups(ctx context.Context, instanceID string) ([]Group, error) {
	return nil, ErrNotImplemented
}

func (m *Meta) SendText(ctx context.Context, params SendTextParams) (SendResult, error) {
	return SendResult{}, ErrNotImplemented
}

func (m *Meta) SendMedia(ctx context.Context, params SendMediaParams) (SendResult, error) {
	return SendResult{}, ErrNotImplemented
}
