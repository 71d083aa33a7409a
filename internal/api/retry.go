package api

import (
	"context"
	"math"
	"time"
)

// RetryConfig describes the backoff schedule between request attempts.
// The schedule is deterministic: no jitter, and all retryable failure
// classes (5xx, network error, timeout) share one attempt counter.
type RetryConfig struct {
	// BaseDelay is the delay after the first failed attempt.
	BaseDelay time.Duration
	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration
	// Multiplier is the factor applied per failed attempt.
	Multiplier float64
}

// DefaultRetryConfig returns the production schedule: 1s, 2s, 4s, ...
// capped at 8s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		BaseDelay:  time.Second,
		MaxDelay:   8 * time.Second,
		Multiplier: 2.0,
	}
}

// Delay returns the backoff before retrying after the given zero-based
// failed attempt.
func (r RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt))
	if delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}
	return time.Duration(delay)
}

// Wait sleeps for the attempt's backoff delay, returning early with the
// context's error if the caller cancels.
func (r RetryConfig) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
