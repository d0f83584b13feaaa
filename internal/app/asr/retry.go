package asr

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy drives repeated upload attempts for retryable failures.
// Sleep is injectable so the backoff is observable with a fake clock in
// tests; when nil, time.Sleep is used.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Sleep       func(time.Duration)
}

// Do runs fn up to MaxAttempts times, sleeping Backoff between attempts.
// Non-retryable errors (timeouts, server errors, malformed responses) are
// returned immediately; so is context cancellation.
func (p RetryPolicy) Do(ctx context.Context, log *zap.Logger, fn func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempt >= p.MaxAttempts {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("transcription attempt failed, backing off",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.MaxAttempts),
			zap.Duration("backoff", p.Backoff),
			zap.Error(err))
		sleep(p.Backoff)
	}
}
