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

func TestListSaved_ReturnsScoredBookmarks(t *testing.T) {
	repo := memory.NewProfileRepository()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	viewer := seedProfile(t, repo, "viewer", base)
	first := seedProfile(t, repo, "first", base.Add(time.Minute))
	second := seedProfile(t, repo, "second", base.Add(2*time.Minute), withCity("Dallas", "Texas"))
	seedProfile(t, repo, "unsaved", base.Add(3*time.Minute))

	require.NoError(t, viewer.Save(first.ID))
	require.NoError(t, viewer.Save(second.ID))
	require.NoError(t, repo.Update(context.Background(), viewer))

	h := NewListSavedHandler(repo)
	res, err := h.Handle(context.Background(), ListSavedQuery{ViewerID: "viewer"})
	require.NoError(t, err)

	require.Len(t, res.Saved, 2)
	assert.Equal(t, 2, res.Pagination.TotalResults)
	assert.Equal(t, 1, res.Pagination.TotalPages)
	for _, dto := range res.Saved {
		assert.True(t, dto.IsSaved)
		require.NotNil(t, dto.Compatibility)
	}
}

func TestListSaved_PaginatesBookmarks(t *testing.T) {
	repo := memory.NewProfileRepository()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	viewer := seedProfile(t, repo, "viewer", base)
	for _, name := range []string{"first", "second", "third"} {
		p := seedProfile(t, repo, name, base.Add(time.Minute))
		require.NoError(t, viewer.Save(p.ID))
	}
	require.NoError(t, repo.Update(context.Background(), viewer))

	h := NewListSavedHandler(repo)

	pageOne, err := h.Handle(context.Background(), ListSavedQuery{ViewerID: "viewer", Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, pageOne.Saved, 2)
	assert.Equal(t, 3, pageOne.Pagination.TotalResults)
	assert.Equal(t, 2, pageOne.Pagination.TotalPages)
	assert.True(t, pageOne.Pagination.HasNext)
	assert.False(t, pageOne.Pagination.HasPrev)

	pageTwo, err := h.Handle(context.Background(), ListSavedQuery{ViewerID: "viewer", Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, pageTwo.Saved, 1)
	assert.False(t, pageTwo.Pagination.HasNext)
	assert.True(t, pageTwo.Pagination.HasPrev)

	beyond, err := h.Handle(context.Background(), ListSavedQuery{ViewerID: "viewer", Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Saved)
}

func TestListSaved_DeactivatedBookmarksDropOut(t *testing.T) {
	repo := memory.NewProfileRepository()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	viewer := seedProfile(t, repo, "viewer", base)
	target := seedProfile(t, repo, "target", base.Add(time.Minute))

	require.NoError(t, viewer.Save(target.ID))
	require.NoError(t, repo.Update(context.Background(), viewer))

	target.Deactivate()
	require.NoError(t, repo.Update(context.Background(), target))

	h := NewListSavedHandler(repo)
	res, err := h.Handle(context.Background(), ListSavedQuery{ViewerID: "viewer"})
	require.NoError(t, err)

	assert.Empty(t, res.Saved)
	assert.Equal(t, 1, res.Pagination.TotalResults)
}

func TestListSaved_EmptySet(t *testing.T) {
	repo := memory.NewProfileRepository()
	seedProfile(t, repo, "viewer", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	h := NewListSavedHandler(repo)
	res, err := h.Handle(context.Background(), ListSavedQuery{ViewerID: "viewer"})
	require.NoError(t, err)

	assert.NotNil(t, res.Saved)
	assert.Empty(t, res.Saved)
}

func TestListSaved_RequiresViewer(t *testing.T) {
	h := NewListSavedHandler(memory.NewProfileRepository())
	_, err := h.Handle(context.Background(), ListSavedQuery{})
	assert.ErrorIs(t, err, profile.ErrInvalidProfileID)
}
