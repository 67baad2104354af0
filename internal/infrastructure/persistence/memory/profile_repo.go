// Package memory provides an in-memory profile repository. It backs unit
// tests and local development without a database; the reference filter
// evaluation keeps its behaviour aligned with the postgres implementation.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ProfileRepository is a concurrency-safe in-memory profile.Repository.
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[shared.ProfileID]*profile.Profile
}

// NewProfileRepository creates an empty repository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[shared.ProfileID]*profile.Profile)}
}

// Create stores a new profile.
func (r *ProfileRepository) Create(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.ID]; ok {
		return profile.ErrProfileAlreadyExists
	}
	for _, existing := range r.profiles {
		if existing.Email == p.Email {
			return profile.ErrProfileAlreadyExists
		}
	}
	r.profiles[p.ID] = clone(p)
	return nil
}

// GetByID returns a profile by ID.
func (r *ProfileRepository) GetByID(_ context.Context, id shared.ProfileID) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return clone(p), nil
}

// GetByEmail returns a profile by account email.
func (r *ProfileRepository) GetByEmail(_ context.Context, email string) (*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, p := range r.profiles {
		if p.Email == email {
			return clone(p), nil
		}
	}
	return nil, profile.ErrProfileNotFound
}

// GetByIDs returns the known profiles among ids, in input order.
func (r *ProfileRepository) GetByIDs(_ context.Context, ids []shared.ProfileID) ([]*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*profile.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

// Update replaces a stored profile.
func (r *ProfileRepository) Update(_ context.Context, p *profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[p.ID]; !ok {
		return profile.ErrProfileNotFound
	}
	r.profiles[p.ID] = clone(p)
	return nil
}

// Find returns one page matching the filter, newest first.
func (r *ProfileRepository) Find(_ context.Context, filter profile.MatchFilter, page shared.PageRequest) ([]*profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.matchedLocked(filter)

	offset := page.Offset()
	if offset >= len(matched) {
		return []*profile.Profile{}, nil
	}
	end := offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]*profile.Profile, 0, end-offset)
	for _, p := range matched[offset:end] {
		out = append(out, clone(p))
	}
	return out, nil
}

// Count returns the number of profiles matching the filter.
func (r *ProfileRepository) Count(_ context.Context, filter profile.MatchFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.matchedLocked(filter)), nil
}

// IncrementViews adds delta to the view counter.
func (r *ProfileRepository) IncrementViews(_ context.Context, id shared.ProfileID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return profile.ErrProfileNotFound
	}
	p.ProfileViews += delta
	return nil
}

// AddSaved adds target to owner's saved set.
func (r *ProfileRepository) AddSaved(_ context.Context, owner, target shared.ProfileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[owner]
	if !ok {
		return profile.ErrProfileNotFound
	}
	if !p.HasSaved(target) {
		p.SavedProfiles = append(p.SavedProfiles, target)
	}
	return nil
}

// RemoveSaved removes target from owner's saved set.
func (r *ProfileRepository) RemoveSaved(_ context.Context, owner, target shared.ProfileID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[owner]
	if !ok {
		return profile.ErrProfileNotFound
	}
	p.Unsave(target)
	return nil
}

// DistinctCities returns distinct city names of active profiles matching q.
func (r *ProfileRepository) DistinctCities(_ context.Context, q string, limit int) ([]string, error) {
	return r.distinct(q, limit, func(p *profile.Profile) string { return p.Location.City }), nil
}

// DistinctStates returns distinct state names of active profiles matching q.
func (r *ProfileRepository) DistinctStates(_ context.Context, q string, limit int) ([]string, error) {
	return r.distinct(q, limit, func(p *profile.Profile) string { return p.Location.State }), nil
}

func (r *ProfileRepository) distinct(q string, limit int, field func(*profile.Profile) string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q = strings.ToLower(q)
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, p := range r.profiles {
		if !p.IsActive {
			continue
		}
		v := field(p)
		if !strings.Contains(strings.ToLower(v), q) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	if limit > 0 && len(values) > limit {
		values = values[:limit]
	}
	return values
}

// matchedLocked collects matches sorted by creation time descending, ID as
// tiebreaker so pagination stays deterministic.
func (r *ProfileRepository) matchedLocked(filter profile.MatchFilter) []*profile.Profile {
	matched := make([]*profile.Profile, 0)
	for _, p := range r.profiles {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched
}

// clone deep-copies the mutable parts so callers cannot alias stored state.
func clone(p *profile.Profile) *profile.Profile {
	cp := *p
	if p.Preferences != nil {
		prefs := *p.Preferences
		cp.Preferences = &prefs
	}
	if p.RoomDetails != nil {
		details := *p.RoomDetails
		details.Images = append([]string(nil), p.RoomDetails.Images...)
		details.Amenities = append([]string(nil), p.RoomDetails.Amenities...)
		cp.RoomDetails = &details
	}
	cp.SavedProfiles = append([]shared.ProfileID(nil), p.SavedProfiles...)
	return &cp
}
