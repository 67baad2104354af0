package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

func filterProfile(t *testing.T, id string, mutate func(*NewProfileParams)) *Profile {
	t.Helper()
	params := NewProfileParams{
		ID:       id,
		Email:    id + "@example.com",
		Name:     "Profile " + id,
		Age:      28,
		Gender:   GenderMale,
		Location: Location{City: "Austin", State: "Texas"},
	}
	if mutate != nil {
		mutate(&params)
	}
	p, err := NewProfile(params)
	require.NoError(t, err)
	return p
}

func TestFilterBuilder_SoftCriteriaDoNotOverwriteEachOther(t *testing.T) {
	filter := NewFilterBuilder().
		GenderMatches(GenderPrefFemale).
		FoodMatches(FoodVegetarian).
		DurationMatches(DurationMedium).
		Build()

	// Each soft criterion keeps its own OR-group; a later one must never
	// replace an earlier one.
	require.Len(t, filter.Groups(), 3)
	assert.True(t, filter.HasGroup(GroupGender))
	assert.True(t, filter.HasGroup(GroupFood))
	assert.True(t, filter.HasGroup(GroupDuration))

	// A candidate passing only two of the three groups is rejected.
	p := filterProfile(t, "x", func(params *NewProfileParams) {
		params.Gender = GenderFemale
		prefs := DefaultPreferences()
		prefs.FoodPreference = FoodVegetarian
		prefs.Duration = DurationShort // fails the duration group
		params.Preferences = &prefs
	})
	assert.False(t, filter.Matches(p))

	p2 := filterProfile(t, "y", func(params *NewProfileParams) {
		params.Gender = GenderFemale
		prefs := DefaultPreferences()
		prefs.FoodPreference = FoodVegetarian
		prefs.Duration = DurationFlexible
		params.Preferences = &prefs
	})
	assert.True(t, filter.Matches(p2))
}

func TestFilterBuilder_GenderUnionSemantics(t *testing.T) {
	filter := NewFilterBuilder().GenderMatches(GenderPrefFemale).Build()

	// A male candidate whose own preference is the wildcard qualifies.
	anyPref := filterProfile(t, "a", func(params *NewProfileParams) {
		params.Gender = GenderMale
	})
	assert.True(t, filter.Matches(anyPref))

	// A female candidate qualifies through her own gender even with a
	// non-matching preference.
	female := filterProfile(t, "b", func(params *NewProfileParams) {
		params.Gender = GenderFemale
		prefs := DefaultPreferences()
		prefs.GenderPreference = GenderPrefMale
		params.Preferences = &prefs
	})
	assert.True(t, filter.Matches(female))

	// A male candidate looking for males does not.
	male := filterProfile(t, "c", func(params *NewProfileParams) {
		params.Gender = GenderMale
		prefs := DefaultPreferences()
		prefs.GenderPreference = GenderPrefMale
		params.Preferences = &prefs
	})
	assert.False(t, filter.Matches(male))
}

func TestFilterBuilder_WildcardRequestsDisableCriteria(t *testing.T) {
	filter := NewFilterBuilder().
		GenderMatches(GenderPrefAny).
		FoodMatches(FoodAny).
		DurationMatches(DurationFlexible).
		Build()

	assert.Empty(t, filter.Groups())
}

func TestFilterBuilder_RentBoundsInclusive(t *testing.T) {
	filter := NewFilterBuilder().RentBetween(1000, 1000).Build()

	// Offering a room at exactly the requested rent qualifies: the filter
	// uses >=/<=, a looser test than the scorer's strict overlap.
	offering := filterProfile(t, "a", func(params *NewProfileParams) {
		params.RoomDetails = &RoomDetails{IsOffering: true, Rent: 1000}
	})
	offering.Preferences = nil
	assert.True(t, filter.Matches(offering))

	// Without preferences or a room rent no rent clause can fire.
	bare := filterProfile(t, "b", nil)
	bare.Preferences = nil
	assert.False(t, filter.Matches(bare))
}

func TestFilterBuilder_MinRentAloneMatchesCeilings(t *testing.T) {
	filter := NewFilterBuilder().RentBetween(900, 0).Build()

	within := filterProfile(t, "a", func(params *NewProfileParams) {
		prefs := DefaultPreferences()
		prefs.RentRange = RentRange{Min: 300, Max: 900}
		params.Preferences = &prefs
	})
	assert.True(t, filter.Matches(within))

	below := filterProfile(t, "b", func(params *NewProfileParams) {
		prefs := DefaultPreferences()
		prefs.RentRange = RentRange{Min: 300, Max: 800}
		params.Preferences = &prefs
	})
	assert.False(t, filter.Matches(below))
}

func TestFilter_CityStateSubstringCaseInsensitive(t *testing.T) {
	filter := NewFilterBuilder().CityContains("aus").StateContains("TEX").Build()

	p := filterProfile(t, "a", nil)
	assert.True(t, filter.Matches(p))

	elsewhere := filterProfile(t, "b", func(params *NewProfileParams) {
		params.Location = Location{City: "Boston", State: "Massachusetts"}
	})
	assert.False(t, filter.Matches(elsewhere))
}

func TestFilter_InactiveAlwaysExcluded(t *testing.T) {
	filter := NewFilterBuilder().Build()

	p := filterProfile(t, "a", nil)
	p.Deactivate()
	assert.False(t, filter.Matches(p))
}

func TestFilter_ExcludesViewer(t *testing.T) {
	filter := NewFilterBuilder().ExcludeProfile(shared.ProfileID("me")).Build()

	me := filterProfile(t, "me", nil)
	other := filterProfile(t, "other", nil)

	assert.False(t, filter.Matches(me))
	assert.True(t, filter.Matches(other))
}

func TestFilter_TextSearchSpansFields(t *testing.T) {
	filter := NewFilterBuilder().TextSearch("austin").Build()

	byCity := filterProfile(t, "a", nil)
	assert.True(t, filter.Matches(byCity))

	byBio := filterProfile(t, "b", func(params *NewProfileParams) {
		params.Location = Location{City: "Boston", State: "Massachusetts"}
		params.Bio = "Moving from Austin next month"
	})
	assert.True(t, filter.Matches(byBio))

	noMatch := filterProfile(t, "c", func(params *NewProfileParams) {
		params.Location = Location{City: "Boston", State: "Massachusetts"}
	})
	assert.False(t, filter.Matches(noMatch))
}

func TestFilter_PreferenceClausesSkipProfilesWithoutPreferences(t *testing.T) {
	filter := NewFilterBuilder().FoodMatches(FoodVegetarian).Build()

	p := filterProfile(t, "a", nil)
	p.Preferences = nil
	assert.False(t, filter.Matches(p))
}

func TestSortKey_IsValid(t *testing.T) {
	for _, key := range []SortKey{SortCompatibility, SortRent, SortAge, SortRecent} {
		assert.True(t, key.IsValid())
	}
	assert.False(t, SortKey("name").IsValid())
	assert.False(t, SortKey("").IsValid())
}
