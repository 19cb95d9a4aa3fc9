package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/vhpires/groupcast/internal/worker"
)

func TestSupervisor_RunsImmediatelyAndStopsOnCancel(t *testing.T) {
	d, m := newDispatcher(t)

	// The boot-time drain runs before the first timer tick.
	m.deliveries.EXPECT().
		ClaimDue(gomock.Any(), worker.BatchSize, gomock.Any()).
		Return(nil, nil).
		MinTimes(1)

	s := worker.NewSupervisor(d)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop after context cancellation")
	}
}
