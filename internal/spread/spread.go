// Package spread produces the send times for a batch of deliveries.
//
// Bursting a few hundred group sends through one WhatsApp instance at
// the same instant is the fastest way to get it throttled or banned,
// so consecutive sends are pushed apart by a randomized gap.
package spread

import (
	"math/rand"
	"time"
)

// Times returns exactly count timestamps for one schedule activation.
// The first equals start (sent immediately); each subsequent timestamp
// adds a uniformly-random whole number of minutes in [minDelay,
// maxDelay] to the previous one, so the sequence is non-decreasing.
func Times(count, minDelay, maxDelay int, start time.Time) []time.Time {
	if count <= 0 {
		return nil
	}
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}

	times := make([]time.Time, 0, count)
	current := start

	for i := 0; i < count; i++ {
		if i == 0 {
			times = append(times, current)
			continue
		}

		gap := time.Duration(minDelay+rand.Intn(maxDelay-minDelay+1)) * time.Minute
		current = current.Add(gap)
		times = append(times, current)
	}

	return times
}
