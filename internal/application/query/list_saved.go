package query

import (
	"context"

	"github.com/roomie-hub/roomie-hub/internal/domain/matching"
	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST SAVED QUERY
// ══════════════════════════════════════════════════════════════════════════════

// Saved-list page bounds.
const (
	DefaultSavedLimit = 20
	MaxSavedLimit     = 50
)

// ListSavedQuery fetches one page of the viewer's bookmarked profiles.
type ListSavedQuery struct {
	ViewerID string

	// Page is 1-based; zero means first page.
	Page int

	// Limit is the page size; zero means DefaultSavedLimit.
	Limit int
}

// Validate checks the required parameters.
func (q *ListSavedQuery) Validate() error {
	if q.ViewerID == "" {
		return profile.ErrInvalidProfileID
	}
	return nil
}

// ListSavedResult holds one page of the viewer's saved profiles, scored.
type ListSavedResult struct {
	Saved      []MatchDTO      `json:"saved"`
	Pagination shared.PageInfo `json:"pagination"`
}

// ListSavedHandler executes saved-list lookups.
type ListSavedHandler struct {
	profiles profile.Repository
}

// NewListSavedHandler creates the handler.
func NewListSavedHandler(profiles profile.Repository) *ListSavedHandler {
	return &ListSavedHandler{profiles: profiles}
}

// Handle loads one page of the viewer's saved set. Pagination runs over the
// stored bookmark list, so deactivated and deleted bookmarks still count
// toward the totals while dropping out of the page itself.
func (h *ListSavedHandler) Handle(ctx context.Context, query ListSavedQuery) (*ListSavedResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	viewer, err := h.profiles.GetByID(ctx, shared.ProfileID(query.ViewerID))
	if err != nil {
		return nil, err
	}

	total := len(viewer.SavedProfiles)
	page := shared.NewPageRequest(query.Page, query.Limit, DefaultSavedLimit, MaxSavedLimit)

	result := &ListSavedResult{
		Saved:      []MatchDTO{},
		Pagination: shared.NewPageInfo(page, total),
	}

	offset := page.Offset()
	if offset >= total {
		return result, nil
	}
	end := offset + page.Limit
	if end > total {
		end = total
	}

	saved, err := h.profiles.GetByIDs(ctx, viewer.SavedProfiles[offset:end])
	if err != nil {
		return nil, shared.WrapError("query", "ListSaved", shared.ErrExternalService, "saved lookup failed", err)
	}

	provider := matching.NewCompatibilityProvider(viewer)
	for _, p := range saved {
		if !p.IsActive {
			continue
		}
		dto := buildMatchDTO(p, viewer, provider)
		result.Saved = append(result.Saved, dto)
	}

	return result, nil
}
