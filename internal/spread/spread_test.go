package spread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimes_FirstIsImmediate(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	times := Times(5, 1, 4, start)

	require.Len(t, times, 5)
	assert.True(t, times[0].Equal(start), "first delivery must be due immediately")
}

func TestTimes_GapsWithinWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// A larger count makes it overwhelmingly likely that a broken
	// window would produce at least one out-of-range gap.
	times := Times(200, 1, 4, start)
	require.Len(t, times, 200)

	for i := 1; i < len(times); i++ {
		gap := times[i].Sub(times[i-1])

		assert.GreaterOrEqual(t, gap, 1*time.Minute, "gap %d below window", i)
		assert.LessOrEqual(t, gap, 4*time.Minute, "gap %d above window", i)
		assert.Zero(t, gap%time.Minute, "gap %d must be whole minutes", i)
	}
}

func TestTimes_NonDecreasing(t *testing.T) {
	times := Times(50, 0, 3, time.Now().UTC())

	for i := 1; i < len(times); i++ {
		assert.False(t, times[i].Before(times[i-1]), "timestamps must never go backwards")
	}
}

func TestTimes_ZeroCount(t *testing.T) {
	assert.Nil(t, Times(0, 1, 4, time.Now()))
	assert.Nil(t, Times(-3, 1, 4, time.Now()))
}

func TestTimes_SingleDelivery(t *testing.T) {
	start := time.Now().UTC()

	times := Times(1, 1, 4, start)

	require.Len(t, times, 1)
	assert.True(t, times[0].Equal(start))
}

func TestTimes_InvertedWindowCollapsesToMin(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	times := Times(10, 5, 2, start)

	require.Len(t, times, 10)
	for i := 1; i < len(times); i++ {
		assert.Equal(t, 5*time.Minute, times[i].Sub(times[i-1]))
	}
}

func TestTimes_NegativeMinClampedToZero(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	times := Times(10, -3, 0, start)

	require.Len(t, times, 10)
	for _, ts := range times {
		assert.True(t, ts.Equal(start), "zero window means every delivery is due at start")
	}
}
