package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wb-go/wbf/zlog"
)

// Supervisor starts the dispatch loop once at boot (draining any
// backlog accumulated while the process was down) and then re-arms it
// on a fixed interval for the process lifetime. Overlap protection is
// the dispatcher's own guard; the supervisor only fires the timer.
type Supervisor struct {
	dispatcher *Dispatcher
	interval   time.Duration
}

// NewSupervisor creates a supervisor with the standard tick interval.
func NewSupervisor(d *Dispatcher) *Supervisor {
	return &Supervisor{dispatcher: d, interval: TickInterval}
}

// Run blocks until ctx is cancelled.
func (s *Supervisor) Run(ctx context.Context) {
	zlog.Logger.Info().Dur("interval", s.interval).Msg("delivery dispatch supervisor started")

	s.dispatcher.RunOnce(ctx)

	c := cron.New()
	c.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		s.dispatcher.RunOnce(ctx)
	}))
	c.Start()

	<-ctx.Done()

	// Stop returns once any in-flight iteration finishes.
	<-c.Stop().Done()
	zlog.Logger.Info().Msg("delivery dispatch supervisor stopped")
}
