// Package backoff provides a bounded exponential-backoff executor for
// fallible operations against external systems (the WhatsApp provider
// in particular).
//
// The executor is deliberately deterministic: no jitter, the delay
// before retry k is min(BaseDelay * Factor^(k-1), MaxDelay). Callers
// must ensure the wrapped operation is safe to invoke multiple times,
// since retries may duplicate its side effects at the channel level.
package backoff

import (
	"context"
	"errors"
	"time"

	"github.com/wb-go/wbf/zlog"
)

// Policy configures the executor. Retries is the number of re-attempts
// after the first call, so an operation runs at most Retries+1 times.
type Policy struct {
	Retries   int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Factor    float64
	Name      string
}

// DefaultPolicy mirrors the knobs used for provider calls when none
// are configured.
var DefaultPolicy = Policy{
	Retries:   3,
	BaseDelay: 300 * time.Millisecond,
	MaxDelay:  3 * time.Second,
	Factor:    2,
	Name:      "operation",
}

// WithName returns a copy of the policy carrying an operation name for
// the log sink.
func (p Policy) WithName(name string) Policy {
	p.Name = name
	return p
}

// Delay returns the pause before retry attempt k (1-based):
// min(BaseDelay * Factor^(k-1), MaxDelay).
func (p Policy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Factor)
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Do runs fn until it succeeds, returns a permanent error, the context
// is cancelled, or the attempt budget is exhausted. The last error is
// returned after exhaustion. Every failed attempt is logged with its
// index; the upcoming delay is omitted on the final failure.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= p.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			zlog.Logger.Warn().
				Err(perm.err).
				Str("operation", p.Name).
				Int("attempt", attempt).
				Msg("permanent error, not retrying")
			return perm.err
		}

		if attempt == p.Retries {
			zlog.Logger.Error().
				Err(lastErr).
				Str("operation", p.Name).
				Int("attempt", attempt).
				Msg("retry budget exhausted")
			break
		}

		delay := p.Delay(attempt + 1)
		zlog.Logger.Warn().
			Err(lastErr).
			Str("operation", p.Name).
			Int("attempt", attempt).
			Dur("next_delay", delay).
			Msg("attempt failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as non-retryable: Do stops immediately and
// surfaces the wrapped error as-is.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}
