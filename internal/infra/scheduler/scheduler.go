package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher is the minimal interface the scheduler needs from the catalog
// use case.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler periodically reloads the catalog snapshot. The catalog is
// small, so a full reload per tick is cheaper than invalidation tracking.
type Scheduler struct {
	interval time.Duration
	target   Refresher
	log      *zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler constructs a scheduler that calls target.Refresh every
// interval. If interval <= 0 it defaults to 5 minutes.
func NewScheduler(interval time.Duration, target Refresher, logger *zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		interval: interval,
		target:   target,
		log:      logger,
		done:     make(chan struct{}),
	}
}

// Start begins the refresh loop in a background goroutine. Calling Start
// twice has no effect.
func (s *Scheduler) Start(parentCtx context.Context) {
	if s.ctx != nil {
		return
	}
	ctx, cancel := context.WithCancel(parentCtx)
	s.ctx = ctx
	s.cancel = cancel

	go s.loop()
}

func (s *Scheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer func() {
		ticker.Stop()
		close(s.done)
	}()

	s.log.Info().Dur("interval", s.interval).Msg("catalog refresh scheduler started")
	for {
		select {
		case <-s.ctx.Done():
			s.log.Info().Msg("catalog refresh scheduler stopping")
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
			if err := s.target.Refresh(runCtx); err != nil {
				s.log.Warn().Err(err).Msg("catalog refresh failed")
			}
			cancel()
		}
	}
}

// Stop cancels the scheduler and waits for the loop to finish. Idempotent.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.ctx = nil
	s.cancel = nil
	s.done = make(chan struct{})
}
