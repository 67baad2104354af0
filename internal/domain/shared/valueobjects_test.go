package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfileID(t *testing.T) {
	id, err := NewProfileID("  abc-123  ")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id.String())
	assert.True(t, id.IsValid())
	assert.False(t, id.IsEmpty())

	_, err = NewProfileID("   ")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestNewPageRequest_Normalization(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		wantPage    int
		wantLimit   int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"limit above cap", 2, 500, 2, 50},
		{"limit at cap", 2, 50, 2, 50},
		{"normal", 3, 5, 3, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := NewPageRequest(tc.page, tc.limit, 20, 50)
			assert.Equal(t, tc.wantPage, req.Page)
			assert.Equal(t, tc.wantLimit, req.Limit)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Limit: 20}.Offset())
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"empty result set", 1, 20, 0, 0, false, false},
		{"single partial page", 1, 20, 7, 1, false, false},
		{"exact multiple", 1, 20, 40, 2, true, false},
		{"middle page", 2, 20, 55, 3, true, true},
		{"last page", 3, 20, 55, 3, false, true},
		{"page past the end", 9, 20, 55, 3, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := NewPageInfo(PageRequest{Page: tc.page, Limit: tc.limit}, tc.total)
			assert.Equal(t, tc.page, info.CurrentPage)
			assert.Equal(t, tc.wantPages, info.TotalPages)
			assert.Equal(t, tc.total, info.TotalResults)
			assert.Equal(t, tc.wantNext, info.HasNext)
			assert.Equal(t, tc.wantPrev, info.HasPrev)
		})
	}
}
