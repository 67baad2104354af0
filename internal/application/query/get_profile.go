package query

import (
	"context"

	"github.com/roomie-hub/roomie-hub/internal/domain/matching"
	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROFILE QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetProfileQuery fetches a single profile by ID.
type GetProfileQuery struct {
	// ProfileID is the profile to fetch.
	ProfileID string

	// ViewerID is the browsing user; empty for anonymous visitors.
	ViewerID string
}

// Validate checks the required parameters.
func (q *GetProfileQuery) Validate() error {
	if q.ProfileID == "" {
		return profile.ErrInvalidProfileID
	}
	return nil
}

// ProfileDTO is the full profile view.
type ProfileDTO struct {
	MatchDTO

	Email        string `json:"email,omitempty"`
	ProfileViews int    `json:"profile_views"`
	IsActive     bool   `json:"is_active"`
}

// ViewCounter buffers profile view increments. Implementations flush
// asynchronously; a view is never allowed to fail the read path.
type ViewCounter interface {
	RecordView(ctx context.Context, id shared.ProfileID) error
}

// GetProfileHandler executes profile lookups.
type GetProfileHandler struct {
	profiles profile.Repository
	views    ViewCounter
	events   shared.EventBus
}

// NewGetProfileHandler creates the handler. views and events may be nil.
func NewGetProfileHandler(profiles profile.Repository, views ViewCounter, events shared.EventBus) *GetProfileHandler {
	return &GetProfileHandler{profiles: profiles, views: views, events: events}
}

// Handle fetches the profile. Every fetch bumps the view counter, owner
// self-views included; the caller's compatibility score is attached when the
// viewer has a profile of their own.
func (h *GetProfileHandler) Handle(ctx context.Context, query GetProfileQuery) (*ProfileDTO, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	p, err := h.profiles.GetByID(ctx, shared.ProfileID(query.ProfileID))
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, profile.ErrProfileNotFound
	}

	isOwner := query.ViewerID != "" && query.ViewerID == query.ProfileID

	dto := &ProfileDTO{
		MatchDTO: MatchDTO{
			ID:        p.ID.String(),
			Name:      p.Name,
			Age:       p.Age,
			Gender:    p.Gender,
			Bio:       p.Bio,
			Avatar:    p.Avatar,
			Location:  p.Location,
			Prefs:     p.Preferences,
			Room:      p.RoomDetails,
			CreatedAt: p.CreatedAt,
		},
		ProfileViews: p.ProfileViews,
		IsActive:     p.IsActive,
	}
	if isOwner {
		dto.Email = p.Email
	}

	// Compatibility and saved state only make sense for a foreign viewer
	// with a profile.
	if query.ViewerID != "" && !isOwner {
		viewer, err := h.profiles.GetByID(ctx, shared.ProfileID(query.ViewerID))
		if err == nil {
			score := matching.Score(viewer, p)
			compat := score.Int()
			dto.Compatibility = &compat
			dto.Quality = score.Quality()
			dto.IsSaved = viewer.HasSaved(p.ID)
		}
	}

	h.recordView(ctx, p.ID, query.ViewerID)

	return dto, nil
}

// recordView bumps the counter and emits the viewed event. Both are best
// effort; errors never surface to the reader.
func (h *GetProfileHandler) recordView(ctx context.Context, id shared.ProfileID, viewerID string) {
	if h.views != nil {
		_ = h.views.RecordView(ctx, id)
	}
	if h.events != nil {
		_ = h.events.Publish(profile.NewProfileViewedEvent(id, shared.ProfileID(viewerID)))
	}
}
