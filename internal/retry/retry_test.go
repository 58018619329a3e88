package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func recordingSleep(delays *[]time.Duration) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestDoSucceedsOnThirdAttempt(t *testing.T) {
	var delays []time.Duration
	attempts := 0

	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   func(error) bool { return true },
		Sleep:       recordingSleep(&delays),
	}

	err := policy.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestDoStopsOnPermanentError(t *testing.T) {
	var delays []time.Duration
	attempts := 0
	permanent := errors.New("permanent")

	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
		Sleep:       recordingSleep(&delays),
	}

	err := policy.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, delays)
}

func TestDoExhaustsAttempts(t *testing.T) {
	var delays []time.Duration
	attempts := 0

	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   func(error) bool { return true },
		Sleep:       recordingSleep(&delays),
	}

	err := policy.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, attempts)
	assert.Len(t, delays, 2)
}

func TestDoNilRetryableIsPermanent(t *testing.T) {
	attempts := 0
	policy := Policy{MaxAttempts: 3, BaseDelay: time.Second}

	err := policy.Do(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, attempts)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Retryable:   func(error) bool { return true },
		Sleep:       SystemSleep,
	}

	err := policy.Do(ctx, func(ctx context.Context) error {
		return errTransient
	})

	assert.ErrorIs(t, err, context.Canceled)
}
