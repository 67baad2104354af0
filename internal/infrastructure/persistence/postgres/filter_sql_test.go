package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

func TestBuildFilterSQL_Empty(t *testing.T) {
	where, args := buildFilterSQL(profile.MatchFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildFilterSQL_ActiveAndExclusion(t *testing.T) {
	filter := profile.NewFilterBuilder().
		ExcludeProfile(shared.ProfileID("me")).
		Build()

	where, args := buildFilterSQL(filter)
	assert.Equal(t, "WHERE is_active = TRUE AND id <> $1", where)
	assert.Equal(t, []interface{}{"me"}, args)
}

func TestBuildFilterSQL_GroupsAreANDedClausesAreORed(t *testing.T) {
	filter := profile.NewFilterBuilder().
		GenderMatches(profile.GenderPrefFemale).
		FoodMatches(profile.FoodVegetarian).
		Build()

	where, args := buildFilterSQL(filter)

	assert.Equal(t,
		"WHERE is_active = TRUE AND "+
			"(preferences->>'gender_preference' = $1 OR "+
			"preferences->>'gender_preference' = $2 OR "+
			"gender = $3) AND "+
			"(preferences->>'food_preference' = $4 OR "+
			"preferences->>'food_preference' = $5)",
		where)
	assert.Equal(t, []interface{}{"Any", "Female", "Female", "Any", "Vegetarian"}, args)
}

func TestBuildFilterSQL_RentBounds(t *testing.T) {
	filter := profile.NewFilterBuilder().RentBetween(500, 1200).Build()

	where, args := buildFilterSQL(filter)

	assert.Equal(t,
		"WHERE is_active = TRUE AND "+
			"((preferences->'rent_range'->>'max')::int >= $1 OR "+
			"NULLIF((room_details->>'rent')::int, 0) >= $2 OR "+
			"(preferences->'rent_range'->>'min')::int <= $3 OR "+
			"NULLIF((room_details->>'rent')::int, 0) <= $4)",
		where)
	assert.Equal(t, []interface{}{500, 500, 1200, 1200}, args)
}

func TestBuildFilterSQL_ContainsUsesILIKEAndEscapes(t *testing.T) {
	filter := profile.NewFilterBuilder().CityContains("50% off_aus").Build()

	where, args := buildFilterSQL(filter)

	assert.Equal(t, "WHERE is_active = TRUE AND (city ILIKE $1)", where)
	require.Len(t, args, 1)
	assert.Equal(t, `%50\% off\_aus%`, args[0])
}

func TestBuildFilterSQL_TextSearchSpansColumns(t *testing.T) {
	filter := profile.NewFilterBuilder().TextSearch("austin").Build()

	where, args := buildFilterSQL(filter)

	assert.Equal(t,
		"WHERE is_active = TRUE AND "+
			"(name ILIKE $1 OR city ILIKE $2 OR state ILIKE $3 OR bio ILIKE $4)",
		where)
	assert.Len(t, args, 4)
}

func TestBuildFilterSQL_PlaceholdersStaySequential(t *testing.T) {
	filter := profile.NewFilterBuilder().
		ExcludeProfile(shared.ProfileID("me")).
		CityContains("austin").
		RentBetween(500, 0).
		DurationMatches(profile.DurationShort).
		Build()

	where, args := buildFilterSQL(filter)

	// $1..$N with no gaps or repeats.
	for i := 1; i <= len(args); i++ {
		assert.Contains(t, where, "$"+string(rune('0'+i)))
	}
	assert.Len(t, args, 5)
}
