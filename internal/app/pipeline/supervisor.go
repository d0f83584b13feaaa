package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Supervisor drives repeated scan-and-process cycles until its context is
// cancelled. It is the outermost failure boundary: scan errors and panics
// escaping a cycle are logged, followed by an extended backoff, and the
// loop continues. The process never terminates on its own; only the
// operator's interrupt (context cancellation) stops it, after the current
// cycle finishes.
type Supervisor struct {
	pipeline     *Pipeline
	pollInterval time.Duration
	errorBackoff time.Duration
	log          *zap.Logger
}

// NewSupervisor creates a Supervisor polling at pollInterval, backing off
// errorBackoff after a failed cycle.
func NewSupervisor(p *Pipeline, pollInterval, errorBackoff time.Duration, log *zap.Logger) *Supervisor {
	return &Supervisor{
		pipeline:     p,
		pollInterval: pollInterval,
		errorBackoff: errorBackoff,
		log:          log.Named("supervisor"),
	}
}

// Run blocks until ctx is cancelled. The first cycle starts immediately;
// each subsequent cycle starts pollInterval after the previous one
// completed (errorBackoff after a failed one).
func (s *Supervisor) Run(ctx context.Context) error {
	s.log.Info("watch loop started",
		zap.Duration("poll_interval", s.pollInterval))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("watch loop stopping")
			return ctx.Err()
		case <-timer.C:
		}

		delay := s.pollInterval
		if err := s.safeCycle(ctx); err != nil {
			s.log.Error("cycle failed, backing off",
				zap.Duration("backoff", s.errorBackoff),
				zap.Error(err))
			delay = s.errorBackoff
		}
		timer.Reset(delay)
	}
}

// safeCycle confines panics to the cycle that raised them.
func (s *Supervisor) safeCycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle panic: %v", r)
		}
	}()
	_, err = s.pipeline.RunCycle(ctx)
	return err
}
