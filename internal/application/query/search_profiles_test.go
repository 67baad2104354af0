package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/persistence/memory"
)

func TestSearchProfiles_MatchesAcrossFields(t *testing.T) {
	repo := newSearchFixture(t)
	h := NewSearchProfilesHandler(repo, fixedProvider())

	res, err := h.Handle(context.Background(), SearchProfilesQuery{Q: "austin"})
	require.NoError(t, err)

	ids := make([]string, 0, len(res.Results))
	for _, r := range res.Results {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{"local", "mover"}, ids)
}

func TestSearchProfiles_ShortQueryYieldsNothing(t *testing.T) {
	repo := newSearchFixture(t)
	h := NewSearchProfilesHandler(repo, fixedProvider())

	res, err := h.Handle(context.Background(), SearchProfilesQuery{Q: " a "})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
}

func TestSearchProfiles_ViewerExcludedFromHits(t *testing.T) {
	repo := newSearchFixture(t)
	h := NewSearchProfilesHandler(repo, fixedProvider())

	res, err := h.Handle(context.Background(), SearchProfilesQuery{Q: "austin", ViewerID: "local"})
	require.NoError(t, err)

	require.Len(t, res.Results, 1)
	assert.Equal(t, "mover", res.Results[0].ID)
}

func TestSearchProfiles_LimitIsCapped(t *testing.T) {
	repo := newSearchFixture(t)
	_ = NewSearchProfilesHandler(repo, fixedProvider())

	query := SearchProfilesQuery{Q: "austin", Limit: 500}
	require.NoError(t, query.Validate())
	assert.Equal(t, MaxSearchLimit, query.Limit)
}

func newSearchFixture(t *testing.T) *memory.ProfileRepository {
	t.Helper()
	repo := memory.NewProfileRepository()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	seedProfile(t, repo, "local", base)
	seedProfile(t, repo, "mover", base.Add(time.Minute),
		withCity("Boston", "Massachusetts"),
		func(p *profile.NewProfileParams) { p.Bio = "Relocating to Austin for work" })
	seedProfile(t, repo, "elsewhere", base.Add(2*time.Minute),
		withCity("Boston", "Massachusetts"))

	return repo
}
