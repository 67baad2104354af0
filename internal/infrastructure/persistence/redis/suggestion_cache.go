package redis

import (
	"context"
	"errors"
	"time"

	"github.com/roomie-hub/roomie-hub/pkg/circuitbreaker"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUGGESTION CACHE
// ══════════════════════════════════════════════════════════════════════════════

// SuggestionCache caches location type-ahead results in Redis. A miss (or
// any Redis failure) simply means the caller recomputes from the database,
// so read errors are swallowed. A circuit breaker keeps a down Redis from
// adding connect timeouts to every suggestion request.
type SuggestionCache struct {
	cache   *Cache
	breaker *circuitbreaker.CircuitBreaker
}

// NewSuggestionCache creates a SuggestionCache backed by cache.
func NewSuggestionCache(cache *Cache) *SuggestionCache {
	breaker := circuitbreaker.New("suggestion-cache",
		circuitbreaker.WithFailureThreshold(3),
		circuitbreaker.WithTimeout(15*time.Second),
		circuitbreaker.WithIsFailure(func(err error) bool {
			// a miss is a normal outcome, not a Redis failure
			return !errors.Is(err, ErrCacheMiss)
		}),
	)
	return &SuggestionCache{cache: cache, breaker: breaker}
}

// GetSuggestions returns the cached suggestion list for key and whether it
// was present.
func (s *SuggestionCache) GetSuggestions(ctx context.Context, key string) ([]string, bool) {
	var values []string
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.cache.Get(ctx, SuggestKey(key), &values)
	})
	if err != nil {
		// a miss, an open breaker and an unreachable cache all mean "recompute"
		return nil, false
	}
	return values, true
}

// SetSuggestions stores values under key for ttl. Failures are ignored;
// the next lookup falls through to the database.
func (s *SuggestionCache) SetSuggestions(ctx context.Context, key string, values []string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = TTLSuggestions
	}
	_ = s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.cache.Set(ctx, SuggestKey(key), values, ttl)
	})
}
