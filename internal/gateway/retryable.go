package gateway

import (
	"context"
	"errors"

	"github.com/vhpires/groupcast/pkg/backoff"
)

// retryable decorates any Provider with the backoff policy, one wrap
// per operation, so every call either eventually succeeds or fails
// after policy exhaustion. Malformed responses are contract errors and
// short-circuit the policy.
type retryable struct {
	next   Provider
	policy backoff.Policy
}

// WithRetry wraps provider so each operation runs under policy.
func WithRetry(provider Provider, policy backoff.Policy) Provider {
	return &retryable{next: provider, policy: policy}
}

func (r *retryable) Connect(ctx context.Context, instanceID string) error {
	return r.policy.WithName("whatsapp.connect").Do(ctx, func(ctx context.Context) error {
		return classify(r.next.Connect(ctx, instanceID))
	})
}

func (r *retryable) GetGroups(ctx context.Context, instanceID string) ([]Group, error) {
	var groups []Group
	err := r.policy.WithName("whatsapp.getGroups").Do(ctx, func(ctx context.Context) error {
		var err error
		groups, err = r.next.GetGroups(ctx, instanceID)
		return classify(err)
	})
	return groups, err
}

func (r *retryable) SendText(ctx context.Context, params SendTextParams) (SendResult, error) {
	var res SendResult
	err := r.policy.WithName("whatsapp.sendText").Do(ctx, func(ctx context.Context) error {
		var err error
		res, err = r.next.SendText(ctx, params)
		return classify(err)
	})
	return res, err
}

func (r *retryable) SendMedia(ctx context.Context, params SendMediaParams) (SendResult, error) {
	var res SendResult
	err := r.policy.WithName("whatsapp.sendMedia").Do(ctx, func(ctx context.Context) error {
		var err error
		res, err = r.next.SendMedia(ctx, params)
		return classify(err)
	})
	return res, err
}

// classify marks non-retryable provider errors as permanent for the
// backoff executor. Transport errors and remote rejections stay
// retryable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrNotImplemented) {
		return backoff.Permanent(err)
	}
	return err
}
