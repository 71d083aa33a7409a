package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryConfig_DelaySchedule(t *testing.T) {
	cfg := DefaultRetryConfig()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 8 * time.Second}, // capped
		{10, 8 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestRetryConfig_DelayIsDeterministic(t *testing.T) {
	cfg := DefaultRetryConfig()
	// No jitter: repeated calls yield identical delays.
	for i := 0; i < 5; i++ {
		assert.Equal(t, 2*time.Second, cfg.Delay(1))
	}
}

func TestRetryConfig_Wait(t *testing.T) {
	cfg := RetryConfig{BaseDelay: 5 * time.Millisecond, MaxDelay: 8 * time.Millisecond, Multiplier: 2}

	start := time.Now()
	err := cfg.Wait(context.Background(), 0)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestRetryConfig_WaitCancelled(t *testing.T) {
	cfg := DefaultRetryConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cfg.Wait(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
}
