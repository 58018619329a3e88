package retry

import (
	"context"
	"time"
)

// SleepFunc suspends the caller for the given duration or until the context
// is done. Tests inject a recording implementation to avoid real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func SystemSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Policy is a bounded retry with exponential backoff. Retryable decides
// whether an error is transient; a nil Retryable treats every error as
// permanent.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Retryable   func(error) bool
	Sleep       SleepFunc
}

// Do runs op up to MaxAttempts times. The delay doubles after each failed
// attempt starting from BaseDelay. Permanent errors and the final attempt's
// error are returned as-is.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SystemSleep
	}

	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}
		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
		delay *= 2
	}
	return err
}
