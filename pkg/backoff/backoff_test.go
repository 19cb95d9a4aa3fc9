package backoff

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func TestMain(m *testing.M) {
	zlog.Init()
	os.Exit(m.Run())
}

func testPolicy() Policy {
	return Policy{
		Retries:   3,
		BaseDelay: time.Millisecond,
		MaxDelay:  4 * time.Millisecond,
		Factor:    2,
		Name:      "test",
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	var calls int

	err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	sentinel := errors.New("provider down")
	var calls int

	p := testPolicy()
	p.Retries = 2

	err := p.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls, "expected initial attempt plus two retries")
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	sentinel := errors.New("bad request")
	var calls int

	err := testPolicy().Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(sentinel)
	})

	require.Error(t, err)
	assert.Equal(t, sentinel, err, "permanent error must surface unwrapped")
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int
	err := testPolicy().Do(ctx, func(ctx context.Context) error {
		calls++
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := testPolicy()
	p.BaseDelay = time.Minute
	p.MaxDelay = time.Minute

	var calls int
	err := p.Do(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDelay_ExponentialWithCap(t *testing.T) {
	p := Policy{BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, Factor: 2}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 100 * time.Millisecond},
		{attempt: 2, want: 200 * time.Millisecond},
		{attempt: 3, want: 300 * time.Millisecond},
		{attempt: 10, want: 300 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestPermanent_NilPassthrough(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}

func TestPermanent_Unwraps(t *testing.T) {
	sentinel := errors.New("boom")
	assert.ErrorIs(t, Permanent(sentinel), sentinel)
}

func TestWithName(t *testing.T) {
	p := DefaultPolicy.WithName("whatsapp.sendText")

	assert.Equal(t, "whatsapp.sendText", p.Name)
	assert.Equal(t, "operation", DefaultPolicy.Name, "WithName must not mutate the receiver")
}
