// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roomie-hub/roomie-hub/internal/domain/matching"
	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// FIND MATCHES QUERY
//
// The central query of the service: one page of candidate roommates matching
// the viewer's criteria, each annotated with a compatibility score. Criteria
// compose as a conjunction: adding a second criterion narrows the result,
// never replaces the first.
// ══════════════════════════════════════════════════════════════════════════════

// Pagination bounds for match queries.
const (
	DefaultMatchLimit = 20
	MaxMatchLimit     = 50
)

// FindMatchesQuery holds the search parameters.
type FindMatchesQuery struct {
	// ViewerID identifies the browsing user. Empty means an anonymous
	// visitor: scores come from the randomized provider and the viewer's
	// own profile is not excluded.
	ViewerID string

	// ─────────────────────────────────────────────────────────────────────────
	// Soft criteria (zero values and wildcards are ignored)
	// ─────────────────────────────────────────────────────────────────────────

	City     string
	State    string
	MinRent  int
	MaxRent  int
	Gender   profile.GenderPreference
	Food     profile.FoodPreference
	Duration profile.Duration

	// ─────────────────────────────────────────────────────────────────────────
	// Presentation
	// ─────────────────────────────────────────────────────────────────────────

	// SortBy defaults to compatibility.
	SortBy profile.SortKey

	Page  int
	Limit int
}

// Validate rejects unknown enum values and normalizes defaults.
func (q *FindMatchesQuery) Validate() error {
	if q.Gender != "" && !q.Gender.IsValid() {
		return profile.ErrInvalidPreference
	}
	if q.Food != "" && !q.Food.IsValid() {
		return profile.ErrInvalidPreference
	}
	if q.Duration != "" && !q.Duration.IsValid() {
		return profile.ErrInvalidPreference
	}
	if q.MinRent < 0 || q.MaxRent < 0 {
		return profile.ErrInvalidRentRange
	}
	if q.SortBy == "" {
		q.SortBy = profile.SortCompatibility
	}
	if !q.SortBy.IsValid() {
		return shared.NewDomainError("query", "FindMatches", shared.ErrInvalidInput, "unknown sort key")
	}
	return nil
}

// MatchDTO is one candidate in a match result page.
type MatchDTO struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Age      int                  `json:"age"`
	Gender   profile.Gender       `json:"gender"`
	Bio      string               `json:"bio,omitempty"`
	Avatar   string               `json:"avatar,omitempty"`
	Location profile.Location     `json:"location"`
	Prefs    *profile.Preferences `json:"preferences,omitempty"`
	Room     *profile.RoomDetails `json:"room_details,omitempty"`

	// Compatibility is the 0-100 match score for this viewer. Nil only
	// when scoring was impossible.
	Compatibility *int `json:"compatibility_score,omitempty"`

	// Quality is the human-readable band for the score.
	Quality matching.MatchQuality `json:"match_quality,omitempty"`

	// IsSaved reports whether the viewer bookmarked this candidate.
	// Always false for anonymous visitors.
	IsSaved bool `json:"is_saved"`

	CreatedAt time.Time `json:"created_at"`
}

// FindMatchesResult is one page of candidates plus pagination metadata.
type FindMatchesResult struct {
	Matches    []MatchDTO      `json:"matches"`
	Pagination shared.PageInfo `json:"pagination"`
}

// FindMatchesHandler executes match queries.
type FindMatchesHandler struct {
	profiles  profile.Repository
	anonymous matching.ScoreProvider
}

// NewFindMatchesHandler creates the handler. The anonymous provider scores
// candidates for visitors without a profile.
func NewFindMatchesHandler(profiles profile.Repository, anonymous matching.ScoreProvider) *FindMatchesHandler {
	return &FindMatchesHandler{profiles: profiles, anonymous: anonymous}
}

// Handle runs the query.
func (h *FindMatchesHandler) Handle(ctx context.Context, query FindMatchesQuery) (*FindMatchesResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	viewer, provider, err := h.resolveViewer(ctx, query.ViewerID)
	if err != nil {
		return nil, err
	}

	builder := profile.NewFilterBuilder().
		CityContains(query.City).
		StateContains(query.State).
		RentBetween(query.MinRent, query.MaxRent).
		GenderMatches(query.Gender).
		FoodMatches(query.Food).
		DurationMatches(query.Duration)
	if viewer != nil {
		builder.ExcludeProfile(viewer.ID)
	}
	filter := builder.Build()

	page := shared.NewPageRequest(query.Page, query.Limit, DefaultMatchLimit, MaxMatchLimit)

	// Page fetch and total count hit independent indexes; run them in
	// parallel.
	var (
		candidates []*profile.Profile
		total      int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = h.profiles.Find(gctx, filter, page)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.profiles.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, shared.WrapError("query", "FindMatches", shared.ErrExternalService, "match lookup failed", err)
	}

	matches := make([]MatchDTO, 0, len(candidates))
	for _, candidate := range candidates {
		matches = append(matches, buildMatchDTO(candidate, viewer, provider))
	}

	sortMatches(matches, query.SortBy)

	return &FindMatchesResult{
		Matches:    matches,
		Pagination: shared.NewPageInfo(page, total),
	}, nil
}

// resolveViewer loads the viewer's profile when an ID was supplied and picks
// the score provider accordingly.
func (h *FindMatchesHandler) resolveViewer(ctx context.Context, viewerID string) (*profile.Profile, matching.ScoreProvider, error) {
	if viewerID == "" {
		return nil, h.anonymous, nil
	}
	viewer, err := h.profiles.GetByID(ctx, shared.ProfileID(viewerID))
	if err != nil {
		return nil, nil, err
	}
	return viewer, matching.NewCompatibilityProvider(viewer), nil
}

func buildMatchDTO(candidate, viewer *profile.Profile, provider matching.ScoreProvider) MatchDTO {
	score := provider.Score(candidate)
	compat := score.Int()

	dto := MatchDTO{
		ID:            candidate.ID.String(),
		Name:          candidate.Name,
		Age:           candidate.Age,
		Gender:        candidate.Gender,
		Bio:           candidate.Bio,
		Avatar:        candidate.Avatar,
		Location:      candidate.Location,
		Prefs:         candidate.Preferences,
		Room:          candidate.RoomDetails,
		Compatibility: &compat,
		Quality:       score.Quality(),
		CreatedAt:     candidate.CreatedAt,
	}
	if viewer != nil {
		dto.IsSaved = viewer.HasSaved(candidate.ID)
	}
	return dto
}

// sortMatches reorders the retrieved page in place. The repository returns
// pages in creation order; per-page re-sorting mirrors the presentation
// contract, not a global ordering.
func sortMatches(matches []MatchDTO, key profile.SortKey) {
	switch key {
	case profile.SortRent:
		sort.SliceStable(matches, func(i, j int) bool {
			return sortRentOf(matches[i]) < sortRentOf(matches[j])
		})
	case profile.SortAge:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Age < matches[j].Age
		})
	case profile.SortRecent:
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		})
	default:
		sort.SliceStable(matches, func(i, j int) bool {
			return deref(matches[i].Compatibility) > deref(matches[j].Compatibility)
		})
	}
}

func sortRentOf(m MatchDTO) int {
	if m.Room != nil && m.Room.Rent > 0 {
		return m.Room.Rent
	}
	if m.Prefs != nil {
		return m.Prefs.RentRange.Max
	}
	return 0
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
