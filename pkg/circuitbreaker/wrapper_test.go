package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mqbroker/internal/config"
)

func TestWrapper_TripsAndRejects(t *testing.T) {
	w := NewWrapper(FromConfig("test-trip", config.CircuitBreakerConfig{
		MaxRequests:    1,
		TimeoutSeconds: 60,
		FailureRatio:   0.5,
		MinRequests:    2,
	}))

	failing := func(context.Context) error { return errors.New("down") }

	for i := 0; i < 2; i++ {
		err := w.Execute(context.Background(), failing)
		require.EqualError(t, err, "down")
	}
	assert.True(t, w.IsOpen())

	called := false
	err := w.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsRejection(err))
	assert.False(t, called)
}

func TestWrapper_StaysClosedOnSuccess(t *testing.T) {
	w := NewWrapper(DefaultConfig("test-closed"))

	for i := 0; i < 5; i++ {
		assert.NoError(t, w.Execute(context.Background(), func(context.Context) error { return nil }))
	}
	assert.Equal(t, gobreaker.StateClosed, w.State())
	assert.Equal(t, "test-closed", w.Name())
}

func TestWrapper_CancelledContext(t *testing.T) {
	w := NewWrapper(DefaultConfig("test-ctx"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Execute(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromConfig_Defaults(t *testing.T) {
	cfg := FromConfig("x", config.CircuitBreakerConfig{})
	assert.Equal(t, uint32(3), cfg.MaxRequests)
	assert.Equal(t, 60*time.Second, cfg.Interval)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.ReadyToTrip(gobreaker.Counts{Requests: 2, TotalFailures: 2}))
	assert.True(t, cfg.ReadyToTrip(gobreaker.Counts{Requests: 4, TotalFailures: 2}))
}
