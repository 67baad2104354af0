package query

import (
	"context"
	"strings"

	"github.com/roomie-hub/roomie-hub/internal/domain/matching"
	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEARCH PROFILES QUERY
//
// Free-text lookup across name, bio and location. Unlike the match query
// this is unpaginated; it returns the first N hits.
// ══════════════════════════════════════════════════════════════════════════════

// Search result bounds.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 20
	MinSearchQueryLen  = 2
)

// SearchProfilesQuery holds the search parameters.
type SearchProfilesQuery struct {
	// Q is the search text; shorter than two characters yields no results.
	Q string

	// ViewerID is the browsing user; empty for anonymous visitors.
	ViewerID string

	Limit int
}

// Validate normalizes the parameters.
func (q *SearchProfilesQuery) Validate() error {
	q.Q = strings.TrimSpace(q.Q)
	if q.Limit <= 0 {
		q.Limit = DefaultSearchLimit
	}
	if q.Limit > MaxSearchLimit {
		q.Limit = MaxSearchLimit
	}
	return nil
}

// SearchProfilesResult holds the hits.
type SearchProfilesResult struct {
	Results []MatchDTO `json:"results"`
	Query   string     `json:"query"`
}

// SearchProfilesHandler executes free-text searches.
type SearchProfilesHandler struct {
	profiles  profile.Repository
	anonymous matching.ScoreProvider
}

// NewSearchProfilesHandler creates the handler.
func NewSearchProfilesHandler(profiles profile.Repository, anonymous matching.ScoreProvider) *SearchProfilesHandler {
	return &SearchProfilesHandler{profiles: profiles, anonymous: anonymous}
}

// Handle runs the search. A too-short query returns an empty result rather
// than an error so type-ahead callers need no special casing.
func (h *SearchProfilesHandler) Handle(ctx context.Context, query SearchProfilesQuery) (*SearchProfilesResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := &SearchProfilesResult{Results: []MatchDTO{}, Query: query.Q}
	if len(query.Q) < MinSearchQueryLen {
		return result, nil
	}

	var viewer *profile.Profile
	provider := h.anonymous
	if query.ViewerID != "" {
		v, err := h.profiles.GetByID(ctx, shared.ProfileID(query.ViewerID))
		if err != nil {
			return nil, err
		}
		viewer = v
		provider = matching.NewCompatibilityProvider(viewer)
	}

	builder := profile.NewFilterBuilder().TextSearch(query.Q)
	if viewer != nil {
		builder.ExcludeProfile(viewer.ID)
	}

	page := shared.PageRequest{Page: 1, Limit: query.Limit}
	hits, err := h.profiles.Find(ctx, builder.Build(), page)
	if err != nil {
		return nil, shared.WrapError("query", "SearchProfiles", shared.ErrExternalService, "search failed", err)
	}

	for _, p := range hits {
		result.Results = append(result.Results, buildMatchDTO(p, viewer, provider))
	}

	return result, nil
}
