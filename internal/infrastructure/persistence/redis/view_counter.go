package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
	"github.com/roomie-hub/roomie-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// VIEW COUNTER
// ══════════════════════════════════════════════════════════════════════════════

// ViewSink receives flushed view counts. Satisfied by profile.Repository.
type ViewSink interface {
	IncrementViews(ctx context.Context, id shared.ProfileID, delta int) error
}

// ViewCounter buffers profile view increments in a Redis hash so that hot
// profiles do not turn every read into a database write. Counts are drained
// to the sink by Flush, which the server runs on a timer.
type ViewCounter struct {
	cache   *Cache
	sink    ViewSink
	retrier *retry.Retrier
}

// NewViewCounter creates a ViewCounter draining into sink.
func NewViewCounter(cache *Cache, sink ViewSink) *ViewCounter {
	return &ViewCounter{cache: cache, sink: sink, retrier: retry.DatabaseRetrier()}
}

// RecordView increments the pending counter for a profile.
func (v *ViewCounter) RecordView(ctx context.Context, id shared.ProfileID) error {
	return v.cache.client.HIncrBy(ctx, PrefixViews, id.String(), 1).Err()
}

// Flush drains all pending counters into the sink and returns how many
// views were written. Each field is removed before the database write; the
// write is retried with backoff, and a write that still fails re-adds the
// count so the next flush picks it up again.
func (v *ViewCounter) Flush(ctx context.Context) (int, error) {
	pending, err := v.cache.client.HGetAll(ctx, PrefixViews).Result()
	if err != nil {
		return 0, fmt.Errorf("view counter: read pending: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	var (
		flushed  int
		firstErr error
	)
	for field, raw := range pending {
		delta, convErr := strconv.Atoi(raw)
		if convErr != nil || delta <= 0 {
			// corrupt field, drop it
			_ = v.cache.client.HDel(ctx, PrefixViews, field).Err()
			continue
		}

		if err := v.cache.client.HDel(ctx, PrefixViews, field).Err(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		id := shared.ProfileID(field)
		writeErr := v.retrier.Do(ctx, func(ctx context.Context) error {
			return v.sink.IncrementViews(ctx, id, delta)
		})
		if writeErr != nil {
			// put the count back so the next flush retries it
			_ = v.cache.client.HIncrBy(ctx, PrefixViews, field, int64(delta)).Err()
			if firstErr == nil {
				firstErr = writeErr
			}
			continue
		}
		flushed += delta
	}
	return flushed, firstErr
}
