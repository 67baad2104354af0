package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowWithinWindow(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.Stop()

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_StopEndsCleanup(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)

	rl.Stop()
	rl.Stop()

	select {
	case <-rl.stopCh:
	default:
		t.Fatal("stop channel still open after Stop")
	}
}

func TestServer_ShutdownStopsRateLimiter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 5
	cfg.EnableMetrics = false

	server := NewServer(cfg, Dependencies{})
	require.NotNil(t, server.rateLimiter)

	// Shutdown on a never-started server must still reap the goroutine.
	require.NoError(t, server.Shutdown(context.Background()))

	select {
	case <-server.rateLimiter.stopCh:
	default:
		t.Fatal("shutdown left the rate limiter running")
	}
}
