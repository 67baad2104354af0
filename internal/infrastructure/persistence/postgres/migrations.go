package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_profiles",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_saved_profiles",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_match_indexes",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE PROFILES
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create profiles table
-- Version: 001

CREATE TABLE IF NOT EXISTS profiles (
    id UUID PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name VARCHAR(100) NOT NULL,
    age INTEGER NOT NULL,
    gender VARCHAR(10) NOT NULL,
    bio TEXT NOT NULL DEFAULT '',
    avatar TEXT NOT NULL DEFAULT '',
    city VARCHAR(100) NOT NULL,
    state VARCHAR(100) NOT NULL,
    area VARCHAR(100) NOT NULL DEFAULT '',
    lat DOUBLE PRECISION,
    lng DOUBLE PRECISION,

    -- Optional sub-objects stored whole; NULL means "never provided",
    -- which scoring treats differently from an empty object.
    preferences JSONB,
    room_details JSONB,

    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    profile_views INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_gender CHECK (gender IN ('Male', 'Female', 'Other')),
    CONSTRAINT valid_age CHECK (age BETWEEN 18 AND 65),
    CONSTRAINT valid_views CHECK (profile_views >= 0)
);

-- Match queries always filter on is_active and paginate on created_at.
CREATE INDEX IF NOT EXISTS idx_profiles_active_created
    ON profiles(is_active, created_at DESC);
`

const migration001Down = `
DROP TABLE IF EXISTS profiles;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE SAVED PROFILES
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
-- Migration: Create saved_profiles table
-- Version: 002

-- One row per bookmark; the self-save invariant is enforced here as well
-- as in the domain.
CREATE TABLE IF NOT EXISTS saved_profiles (
    owner_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    target_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (owner_id, target_id),
    CONSTRAINT no_self_save CHECK (owner_id <> target_id)
);

CREATE INDEX IF NOT EXISTS idx_saved_profiles_owner ON saved_profiles(owner_id);
`

const migration002Down = `
DROP TABLE IF EXISTS saved_profiles;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE MATCH INDEXES
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
-- Migration: Indexes for the match filter and type-ahead queries
-- Version: 003

-- Location criteria are case-insensitive substring matches.
CREATE INDEX IF NOT EXISTS idx_profiles_city_lower ON profiles(LOWER(city));
CREATE INDEX IF NOT EXISTS idx_profiles_state_lower ON profiles(LOWER(state));

-- Lifestyle criteria hit JSONB preference fields.
CREATE INDEX IF NOT EXISTS idx_profiles_gender_pref
    ON profiles((preferences->>'gender_preference'));
CREATE INDEX IF NOT EXISTS idx_profiles_food_pref
    ON profiles((preferences->>'food_preference'));
CREATE INDEX IF NOT EXISTS idx_profiles_duration
    ON profiles((preferences->>'duration'));

-- Rent bounds compare the numeric preference range and the listed room rent.
CREATE INDEX IF NOT EXISTS idx_profiles_rent_max
    ON profiles(((preferences->'rent_range'->>'max')::int));
CREATE INDEX IF NOT EXISTS idx_profiles_room_rent
    ON profiles(((room_details->>'rent')::int));
`

const migration003Down = `
DROP INDEX IF EXISTS idx_profiles_city_lower;
DROP INDEX IF EXISTS idx_profiles_state_lower;
DROP INDEX IF EXISTS idx_profiles_gender_pref;
DROP INDEX IF EXISTS idx_profiles_food_pref;
DROP INDEX IF EXISTS idx_profiles_duration;
DROP INDEX IF EXISTS idx_profiles_rent_max;
DROP INDEX IF EXISTS idx_profiles_room_rent;
`
