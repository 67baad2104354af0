package query

import (
	"context"
	"strings"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUGGEST LOCATIONS QUERY
//
// Type-ahead for the location inputs. Distinct values are cheap to cache;
// the suggestion set only changes when profiles register or move.
// ══════════════════════════════════════════════════════════════════════════════

// Suggestion bounds.
const (
	SuggestionLimit    = 10
	MinSuggestQueryLen = 2
)

// SuggestionCache stores suggestion lists by key. Implementations live in
// infrastructure; lookups are best effort and a miss falls through to the
// repository.
type SuggestionCache interface {
	GetSuggestions(ctx context.Context, key string) ([]string, bool)
	SetSuggestions(ctx context.Context, key string, values []string, ttl time.Duration)
}

// SuggestLocationsQuery holds the type-ahead parameters.
type SuggestLocationsQuery struct {
	// Q is the prefix typed so far.
	Q string

	// Kind selects cities or states.
	Kind LocationKind
}

// LocationKind selects which location attribute to suggest.
type LocationKind string

const (
	KindCity  LocationKind = "city"
	KindState LocationKind = "state"
)

// IsValid checks that the kind is known.
func (k LocationKind) IsValid() bool {
	return k == KindCity || k == KindState
}

// Validate normalizes the parameters.
func (q *SuggestLocationsQuery) Validate() error {
	q.Q = strings.TrimSpace(q.Q)
	if q.Kind == "" {
		q.Kind = KindCity
	}
	if !q.Kind.IsValid() {
		return shared.NewDomainError("query", "SuggestLocations", shared.ErrInvalidInput, "unknown location kind")
	}
	return nil
}

// SuggestLocationsResult holds the suggestions.
type SuggestLocationsResult struct {
	Suggestions []string `json:"suggestions"`
}

// SuggestLocationsHandler executes location type-ahead lookups.
type SuggestLocationsHandler struct {
	profiles profile.Repository
	cache    SuggestionCache
	ttl      time.Duration
}

// NewSuggestLocationsHandler creates the handler. cache may be nil.
func NewSuggestLocationsHandler(profiles profile.Repository, cache SuggestionCache, ttl time.Duration) *SuggestLocationsHandler {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SuggestLocationsHandler{profiles: profiles, cache: cache, ttl: ttl}
}

// Handle returns up to SuggestionLimit distinct location values matching
// the typed prefix.
func (h *SuggestLocationsHandler) Handle(ctx context.Context, query SuggestLocationsQuery) (*SuggestLocationsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := &SuggestLocationsResult{Suggestions: []string{}}
	if len(query.Q) < MinSuggestQueryLen {
		return result, nil
	}

	key := string(query.Kind) + ":" + strings.ToLower(query.Q)
	if h.cache != nil {
		if cached, ok := h.cache.GetSuggestions(ctx, key); ok {
			result.Suggestions = cached
			return result, nil
		}
	}

	var (
		values []string
		err    error
	)
	switch query.Kind {
	case KindState:
		values, err = h.profiles.DistinctStates(ctx, query.Q, SuggestionLimit)
	default:
		values, err = h.profiles.DistinctCities(ctx, query.Q, SuggestionLimit)
	}
	if err != nil {
		return nil, shared.WrapError("query", "SuggestLocations", shared.ErrExternalService, "suggestion lookup failed", err)
	}

	if h.cache != nil {
		h.cache.SetSuggestions(ctx, key, values, h.ttl)
	}

	result.Suggestions = values
	return result, nil
}
