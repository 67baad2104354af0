package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProfileRepository implements profile.Repository for PostgreSQL.
type ProfileRepository struct {
	conn *Connection
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(conn *Connection) *ProfileRepository {
	return &ProfileRepository{conn: conn}
}

const profileColumns = `id, email, password_hash, name, age, gender, bio, avatar,
	   city, state, area, lat, lng, preferences, room_details,
	   is_active, profile_views, created_at, updated_at`

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Create creates a new profile.
func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (
			id, email, password_hash, name, age, gender, bio, avatar,
			city, state, area, lat, lng, preferences, room_details,
			is_active, profile_views, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	prefsJSON, roomJSON, err := marshalSubObjects(p)
	if err != nil {
		return err
	}

	var lat, lng *float64
	if p.Location.Coordinates != nil {
		lat = &p.Location.Coordinates.Lat
		lng = &p.Location.Coordinates.Lng
	}

	_, err = r.conn.Exec(ctx, query,
		p.ID.String(),
		p.Email,
		p.PasswordHash,
		p.Name,
		p.Age,
		string(p.Gender),
		p.Bio,
		p.Avatar,
		p.Location.City,
		p.Location.State,
		p.Location.Area,
		lat,
		lng,
		prefsJSON,
		roomJSON,
		p.IsActive,
		p.ProfileViews,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return profile.ErrProfileAlreadyExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByID returns a profile by ID, with its saved set loaded.
func (r *ProfileRepository) GetByID(ctx context.Context, id shared.ProfileID) (*profile.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = $1`, profileColumns)

	p, err := r.scanProfile(r.conn.QueryRow(ctx, query, id.String()))
	if err != nil {
		return nil, err
	}
	if err := r.loadSaved(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByEmail returns a profile by account email, with its saved set loaded.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE email = $1`, profileColumns)

	p, err := r.scanProfile(r.conn.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	if err := r.loadSaved(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByIDs returns the known profiles among ids. Saved sets are not loaded;
// candidate listings never need them.
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []shared.ProfileID) ([]*profile.Profile, error) {
	if len(ids) == 0 {
		return []*profile.Profile{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = ANY($1)`, profileColumns)
	rows, err := r.conn.Query(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	return r.scanProfiles(rows)
}

// Update persists all mutable profile fields. The saved set is managed by
// AddSaved/RemoveSaved, not here.
func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles SET
			email = $2, password_hash = $3, name = $4, age = $5, gender = $6,
			bio = $7, avatar = $8, city = $9, state = $10, area = $11,
			lat = $12, lng = $13, preferences = $14, room_details = $15,
			is_active = $16, profile_views = $17, updated_at = $18
		WHERE id = $1
	`

	prefsJSON, roomJSON, err := marshalSubObjects(p)
	if err != nil {
		return err
	}

	var lat, lng *float64
	if p.Location.Coordinates != nil {
		lat = &p.Location.Coordinates.Lat
		lng = &p.Location.Coordinates.Lng
	}

	tag, err := r.conn.Exec(ctx, query,
		p.ID.String(),
		p.Email,
		p.PasswordHash,
		p.Name,
		p.Age,
		string(p.Gender),
		p.Bio,
		p.Avatar,
		p.Location.City,
		p.Location.State,
		p.Location.Area,
		lat,
		lng,
		prefsJSON,
		roomJSON,
		p.IsActive,
		p.ProfileViews,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Match queries
// ─────────────────────────────────────────────────────────────────────────────

// Find returns one page of profiles matching the filter, newest first.
func (r *ProfileRepository) Find(ctx context.Context, filter profile.MatchFilter, page shared.PageRequest) ([]*profile.Profile, error) {
	where, args := buildFilterSQL(filter)

	args = append(args, page.Limit, page.Offset())
	query := fmt.Sprintf(
		`SELECT %s FROM profiles %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		profileColumns, where, len(args)-1, len(args),
	)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	return r.scanProfiles(rows)
}

// Count returns the total number of profiles matching the filter.
func (r *ProfileRepository) Count(ctx context.Context, filter profile.MatchFilter) (int, error) {
	where, args := buildFilterSQL(filter)
	query := "SELECT COUNT(*) FROM profiles " + where

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Counters and saved set
// ─────────────────────────────────────────────────────────────────────────────

// IncrementViews adds delta to the view counter.
func (r *ProfileRepository) IncrementViews(ctx context.Context, id shared.ProfileID, delta int) error {
	query := `UPDATE profiles SET profile_views = profile_views + $2 WHERE id = $1`

	tag, err := r.conn.Exec(ctx, query, id.String(), delta)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

// AddSaved adds target to owner's saved set, ignoring duplicates.
func (r *ProfileRepository) AddSaved(ctx context.Context, owner, target shared.ProfileID) error {
	query := `
		INSERT INTO saved_profiles (owner_id, target_id)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, target_id) DO NOTHING
	`

	_, err := r.conn.Exec(ctx, query, owner.String(), target.String())
	if err != nil {
		if IsForeignKeyViolation(err) {
			return profile.ErrProfileNotFound
		}
		return fmt.Errorf("failed to add saved profile: %w", err)
	}
	return nil
}

// RemoveSaved removes target from owner's saved set.
func (r *ProfileRepository) RemoveSaved(ctx context.Context, owner, target shared.ProfileID) error {
	query := `DELETE FROM saved_profiles WHERE owner_id = $1 AND target_id = $2`

	if _, err := r.conn.Exec(ctx, query, owner.String(), target.String()); err != nil {
		return fmt.Errorf("failed to remove saved profile: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Suggestions
// ─────────────────────────────────────────────────────────────────────────────

// DistinctCities returns distinct city names of active profiles matching q.
func (r *ProfileRepository) DistinctCities(ctx context.Context, q string, limit int) ([]string, error) {
	return r.distinct(ctx, "city", q, limit)
}

// DistinctStates returns distinct state names of active profiles matching q.
func (r *ProfileRepository) DistinctStates(ctx context.Context, q string, limit int) ([]string, error) {
	return r.distinct(ctx, "state", q, limit)
}

func (r *ProfileRepository) distinct(ctx context.Context, column, q string, limit int) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM profiles
		WHERE is_active = TRUE AND %s ILIKE $1
		ORDER BY %s
		LIMIT $2
	`, column, column, column)

	rows, err := r.conn.Query(ctx, query, "%"+escapeLike(q)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer rows.Close()

	values := make([]string, 0, limit)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// loadSaved fills the profile's saved set from the saved_profiles table.
func (r *ProfileRepository) loadSaved(ctx context.Context, p *profile.Profile) error {
	query := `SELECT target_id FROM saved_profiles WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.conn.Query(ctx, query, p.ID.String())
	if err != nil {
		return fmt.Errorf("failed to query saved profiles: %w", err)
	}
	defer rows.Close()

	saved := make([]shared.ProfileID, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan saved profile: %w", err)
		}
		saved = append(saved, shared.ProfileID(id))
	}
	p.SavedProfiles = saved
	return rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Row scanning
// ─────────────────────────────────────────────────────────────────────────────

func (r *ProfileRepository) scanProfiles(rows pgx.Rows) ([]*profile.Profile, error) {
	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) scanProfile(row pgx.Row) (*profile.Profile, error) {
	var (
		p         profile.Profile
		id        string
		gender    string
		lat, lng  *float64
		prefsJSON []byte
		roomJSON  []byte
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&id,
		&p.Email,
		&p.PasswordHash,
		&p.Name,
		&p.Age,
		&gender,
		&p.Bio,
		&p.Avatar,
		&p.Location.City,
		&p.Location.State,
		&p.Location.Area,
		&lat,
		&lng,
		&prefsJSON,
		&roomJSON,
		&p.IsActive,
		&p.ProfileViews,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	p.ID = shared.ProfileID(id)
	p.Gender = profile.Gender(gender)
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	p.SavedProfiles = make([]shared.ProfileID, 0)

	if lat != nil && lng != nil {
		p.Location.Coordinates = &profile.Coordinates{Lat: *lat, Lng: *lng}
	}
	if len(prefsJSON) > 0 {
		var prefs profile.Preferences
		if err := json.Unmarshal(prefsJSON, &prefs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
		}
		p.Preferences = &prefs
	}
	if len(roomJSON) > 0 {
		var room profile.RoomDetails
		if err := json.Unmarshal(roomJSON, &room); err != nil {
			return nil, fmt.Errorf("failed to unmarshal room details: %w", err)
		}
		p.RoomDetails = &room
	}

	return &p, nil
}

func marshalSubObjects(p *profile.Profile) ([]byte, []byte, error) {
	var prefsJSON, roomJSON []byte
	var err error

	if p.Preferences != nil {
		prefsJSON, err = json.Marshal(p.Preferences)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal preferences: %w", err)
		}
	}
	if p.RoomDetails != nil {
		roomJSON, err = json.Marshal(p.RoomDetails)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal room details: %w", err)
		}
	}
	return prefsJSON, roomJSON, nil
}
