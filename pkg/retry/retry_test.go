package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetrier(attempts int) *Retrier {
	return New(
		WithMaxAttempts(attempts),
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(5*time.Millisecond),
		WithJitter(0),
		WithRetryIf(retryUnlessPermanent),
	)
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := fastRetrier(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesTransientFailures(t *testing.T) {
	calls := 0
	err := fastRetrier(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	boom := errors.New("still down")
	calls := 0
	err := fastRetrier(3).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentErrorStopsRetrying(t *testing.T) {
	boom := errors.New("bad request")
	calls := 0
	err := fastRetrier(5).Do(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(boom)
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDo_CanceledContextStopsBetweenAttempts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	boom := errors.New("unreachable")
	calls := 0
	err := fastRetrier(5).Do(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

// The preset retriers guard calls whose errors arrive unwrapped from the
// driver, so a bare error must still trigger a retry.
func TestPresets_RetryBareErrors(t *testing.T) {
	for name, r := range map[string]*Retrier{
		"connect":  ConnectRetrier(),
		"database": DatabaseRetrier(),
		"publish":  PublishRetrier(),
	} {
		t.Run(name, func(t *testing.T) {
			calls := 0
			err := r.Do(context.Background(), func(ctx context.Context) error {
				calls++
				if calls == 1 {
					return errors.New("transient")
				}
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, 2, calls)
		})
	}
}
