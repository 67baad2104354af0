package query

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STATS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetStatsQuery fetches marketplace counters, plus the viewer's personal
// numbers when a viewer is supplied.
type GetStatsQuery struct {
	ViewerID string
}

// StatsDTO holds the counters.
type StatsDTO struct {
	// Marketplace-wide numbers.
	ActiveProfiles int `json:"active_profiles"`
	RoomsOffered   int `json:"rooms_offered"`

	// Viewer numbers; only set when a viewer was supplied.
	ProfileViews *int       `json:"profile_views,omitempty"`
	SavedCount   *int       `json:"saved_count,omitempty"`
	MemberSince  *time.Time `json:"member_since,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// GetStatsHandler executes stats lookups.
type GetStatsHandler struct {
	profiles profile.Repository
}

// NewGetStatsHandler creates the handler.
func NewGetStatsHandler(profiles profile.Repository) *GetStatsHandler {
	return &GetStatsHandler{profiles: profiles}
}

// Handle gathers the counters. The two marketplace counts run in parallel.
func (h *GetStatsHandler) Handle(ctx context.Context, query GetStatsQuery) (*StatsDTO, error) {
	stats := &StatsDTO{GeneratedAt: time.Now().UTC()}

	allActive := profile.NewFilterBuilder().Build()
	offering := profile.NewFilterBuilder().OffersRoom().Build()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := h.profiles.Count(gctx, allActive)
		stats.ActiveProfiles = n
		return err
	})
	g.Go(func() error {
		n, err := h.profiles.Count(gctx, offering)
		stats.RoomsOffered = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, shared.WrapError("query", "GetStats", shared.ErrExternalService, "stats lookup failed", err)
	}

	if query.ViewerID != "" {
		viewer, err := h.profiles.GetByID(ctx, shared.ProfileID(query.ViewerID))
		if err != nil {
			return nil, err
		}
		views := viewer.ProfileViews
		saved := len(viewer.SavedProfiles)
		since := viewer.CreatedAt
		stats.ProfileViews = &views
		stats.SavedCount = &saved
		stats.MemberSince = &since
	}

	return stats, nil
}
