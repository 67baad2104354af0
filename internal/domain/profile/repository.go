package profile

import (
	"context"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// Repository defines the storage contract for profiles.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// ─────────────────────────────────────────────────────────────────────────
	// CRUD Operations
	// ─────────────────────────────────────────────────────────────────────────

	// Create creates a new profile.
	// Returns ErrProfileAlreadyExists when the email is taken.
	Create(ctx context.Context, p *Profile) error

	// GetByID returns a profile by ID.
	// Returns ErrProfileNotFound when no profile exists.
	GetByID(ctx context.Context, id shared.ProfileID) (*Profile, error)

	// GetByEmail returns a profile by account email.
	// Returns ErrProfileNotFound when no profile exists.
	GetByEmail(ctx context.Context, email string) (*Profile, error)

	// GetByIDs returns the profiles for the given IDs, skipping unknown ones.
	GetByIDs(ctx context.Context, ids []shared.ProfileID) ([]*Profile, error)

	// Update persists all mutable fields of a profile.
	// Returns ErrProfileNotFound when no profile exists.
	Update(ctx context.Context, p *Profile) error

	// ─────────────────────────────────────────────────────────────────────────
	// Match queries
	// ─────────────────────────────────────────────────────────────────────────

	// Find returns one page of profiles matching the filter, ordered by
	// creation time descending for stable pagination. Callers re-sort the
	// page by the requested key.
	Find(ctx context.Context, filter MatchFilter, page shared.PageRequest) ([]*Profile, error)

	// Count returns the total number of profiles matching the filter.
	Count(ctx context.Context, filter MatchFilter) (int, error)

	// ─────────────────────────────────────────────────────────────────────────
	// Counters and saved set
	// ─────────────────────────────────────────────────────────────────────────

	// IncrementViews adds delta to the profile view counter. Fire and
	// forget relative to match queries; no consistency guarantee with a
	// concurrently computed score.
	IncrementViews(ctx context.Context, id shared.ProfileID, delta int) error

	// AddSaved adds target to owner's saved set, ignoring duplicates.
	AddSaved(ctx context.Context, owner, target shared.ProfileID) error

	// RemoveSaved removes target from owner's saved set.
	RemoveSaved(ctx context.Context, owner, target shared.ProfileID) error

	// ─────────────────────────────────────────────────────────────────────────
	// Suggestions
	// ─────────────────────────────────────────────────────────────────────────

	// DistinctCities returns distinct city names of active profiles
	// matching the case-insensitive substring q, capped at limit.
	DistinctCities(ctx context.Context, q string, limit int) ([]string, error)

	// DistinctStates returns distinct state names of active profiles
	// matching the case-insensitive substring q, capped at limit.
	DistinctStates(ctx context.Context, q string, limit int) ([]string, error)
}
