package asr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRetryPolicyRetriesConnectionFailures(t *testing.T) {
	var sleeps []time.Duration
	policy := RetryPolicy{
		MaxAttempts: 3,
		Backoff:     5 * time.Second,
		Sleep:       func(d time.Duration) { sleeps = append(sleeps, d) },
	}

	calls := 0
	err := policy.Do(context.Background(), zap.NewNop(), func() error {
		calls++
		if calls < 3 {
			return connectionErr("refused", nil)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, sleeps)
}

func TestRetryPolicyStopsOnNonRetryable(t *testing.T) {
	var sleeps int
	policy := RetryPolicy{
		MaxAttempts: 3,
		Backoff:     time.Second,
		Sleep:       func(time.Duration) { sleeps++ },
	}

	for _, failure := range []*Error{
		timeoutErr("deadline", nil),
		serverErr("boom", nil),
		malformedErr("bad json", nil),
	} {
		calls := 0
		err := policy.Do(context.Background(), zap.NewNop(), func() error {
			calls++
			return failure
		})
		assert.ErrorIs(t, err, failure)
		assert.Equal(t, 1, calls, "kind %s must not be retried", failure.Kind)
	}
	assert.Zero(t, sleeps)
}

func TestRetryPolicyExhaustsBudget(t *testing.T) {
	var sleeps int
	policy := RetryPolicy{
		MaxAttempts: 3,
		Backoff:     time.Second,
		Sleep:       func(time.Duration) { sleeps++ },
	}

	calls := 0
	err := policy.Do(context.Background(), zap.NewNop(), func() error {
		calls++
		return connectionErr("refused", nil)
	})

	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, sleeps)
}

func TestRetryPolicyHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := RetryPolicy{MaxAttempts: 3, Backoff: time.Second, Sleep: func(time.Duration) {}}
	calls := 0
	err := policy.Do(ctx, zap.NewNop(), func() error {
		calls++
		return connectionErr("refused", nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
