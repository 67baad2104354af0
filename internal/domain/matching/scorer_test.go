package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
)

func testProfile(t *testing.T, id string, mutate func(*profile.NewProfileParams)) *profile.Profile {
	t.Helper()
	params := profile.NewProfileParams{
		ID:       id,
		Email:    id + "@example.com",
		Name:     "Profile " + id,
		Age:      25,
		Gender:   profile.GenderFemale,
		Location: profile.Location{City: "Austin", State: "Texas"},
	}
	if mutate != nil {
		mutate(&params)
	}
	p, err := profile.NewProfile(params)
	require.NoError(t, err)
	return p
}

func prefsWith(mutate func(*profile.Preferences)) *profile.Preferences {
	prefs := profile.DefaultPreferences()
	if mutate != nil {
		mutate(&prefs)
	}
	return &prefs
}

func TestScore_SameCityDefaultPreferences(t *testing.T) {
	a := testProfile(t, "a", nil)
	b := testProfile(t, "b", nil)

	// Same city (30/30), overlapping default rent ranges (25/25), and all
	// four lifestyle factors match on wildcards (45/45).
	assert.Equal(t, MatchScore(100), Score(a, b))
}

func TestScore_ShortCircuitWithoutPreferences(t *testing.T) {
	a := testProfile(t, "a", nil)
	b := testProfile(t, "b", nil)
	b.Preferences = nil

	// Same city earns 30, rent cannot overlap an unknown range but still
	// weighs 25, and scoring stops at the checkpoint: round(30/55*100).
	score, breakdown := ScoreWithBreakdown(a, b)
	assert.Equal(t, MatchScore(55), score)
	require.Len(t, breakdown, 2)
	assert.Equal(t, FactorLocation, breakdown[0].Factor)
	assert.Equal(t, FactorRent, breakdown[1].Factor)
	assert.Equal(t, 0, breakdown[1].Points)
}

func TestScore_ShortCircuitWithRoomRent(t *testing.T) {
	a := testProfile(t, "a", nil)
	b := testProfile(t, "b", func(p *profile.NewProfileParams) {
		p.RoomDetails = &profile.RoomDetails{IsOffering: true, Rent: 900}
	})
	b.Preferences = nil

	// Same city plus rent overlap against the offered room: the partial
	// score is computed out of 55, then rescaled to 100.
	assert.Equal(t, MatchScore(100), Score(a, b))
}

func TestScore_NonOverlappingRentAllLifestyleMatch(t *testing.T) {
	a := testProfile(t, "a", func(p *profile.NewProfileParams) {
		p.Preferences = prefsWith(func(prefs *profile.Preferences) {
			prefs.RentRange = profile.RentRange{Min: 300, Max: 500}
		})
	})
	b := testProfile(t, "b", func(p *profile.NewProfileParams) {
		p.Preferences = prefsWith(func(prefs *profile.Preferences) {
			prefs.RentRange = profile.RentRange{Min: 1500, Max: 2000}
		})
	})

	// 30 location + 0 rent + 45 lifestyle out of 100.
	assert.Equal(t, MatchScore(75), Score(a, b))
}

func TestScore_TouchingRentRangesDoNotOverlap(t *testing.T) {
	a := testProfile(t, "a", func(p *profile.NewProfileParams) {
		p.Preferences = prefsWith(func(prefs *profile.Preferences) {
			prefs.RentRange = profile.RentRange{Min: 300, Max: 1000}
		})
	})
	b := testProfile(t, "b", func(p *profile.NewProfileParams) {
		p.Preferences = prefsWith(func(prefs *profile.Preferences) {
			prefs.RentRange = profile.RentRange{Min: 1000, Max: 2000}
		})
	})

	// A shared endpoint is zero overlap for the scorer, even though the
	// match filter's looser >=/<= test would admit the same pair.
	_, breakdown := ScoreWithBreakdown(a, b)
	assert.Equal(t, 0, breakdown[1].Points)
}

func TestScore_SameStateHalfCredit(t *testing.T) {
	a := testProfile(t, "a", nil)
	b := testProfile(t, "b", func(p *profile.NewProfileParams) {
		p.Location = profile.Location{City: "Dallas", State: "Texas"}
	})

	// 15 location + 25 rent + 45 lifestyle = 85.
	assert.Equal(t, MatchScore(85), Score(a, b))
}

func TestScore_LifestyleMismatches(t *testing.T) {
	a := testProfile(t, "a", func(p *profile.NewProfileParams) {
		p.Preferences = prefsWith(func(prefs *profile.Preferences) {
			prefs.FoodPreference = profile.FoodVegetarian
			prefs.SmokingPreference = profile.SmokingNonSmoker
			prefs.PetPreference = profile.PetNone
			prefs.Schedule = profile.ScheduleEarlyRiser
		})
	})
	b := testProfile(t, "b", func(p *profile.NewProfileParams) {
		p.Preferences = prefsWith(func(prefs *profile.Preferences) {
			prefs.FoodPreference = profile.FoodNonVegetarian
			prefs.SmokingPreference = profile.SmokingSmoker
			prefs.PetPreference = profile.PetFriendly
			prefs.Schedule = profile.ScheduleNightOwl
		})
	})

	// Only location and rent earn points: 55/100.
	assert.Equal(t, MatchScore(55), Score(a, b))
}

func TestScore_WildcardMatchesEitherSide(t *testing.T) {
	a := testProfile(t, "a", func(p *profile.NewProfileParams) {
		p.Preferences = prefsWith(func(prefs *profile.Preferences) {
			prefs.FoodPreference = profile.FoodVegetarian
		})
	})
	b := testProfile(t, "b", func(p *profile.NewProfileParams) {
		p.Preferences = prefsWith(func(prefs *profile.Preferences) {
			prefs.FoodPreference = profile.FoodAny
		})
	})

	_, breakdown := ScoreWithBreakdown(a, b)
	food := breakdown[2]
	assert.Equal(t, FactorFood, food.Factor)
	assert.Equal(t, food.Weight, food.Points)
}

func TestScore_Symmetric(t *testing.T) {
	variants := []func(*profile.NewProfileParams){
		nil,
		func(p *profile.NewProfileParams) {
			p.Location = profile.Location{City: "Dallas", State: "Texas"}
			p.Preferences = prefsWith(func(prefs *profile.Preferences) {
				prefs.RentRange = profile.RentRange{Min: 400, Max: 800}
				prefs.FoodPreference = profile.FoodVegetarian
				prefs.Schedule = profile.ScheduleNightOwl
			})
		},
		func(p *profile.NewProfileParams) {
			p.Location = profile.Location{City: "Denver", State: "Colorado"}
			p.Preferences = prefsWith(func(prefs *profile.Preferences) {
				prefs.SmokingPreference = profile.SmokingSmoker
				prefs.PetPreference = profile.PetNone
			})
		},
	}

	// Symmetry holds as long as neither side lists a room rent; a room
	// collapses the candidate-side interval and breaks the mirror.
	for i, va := range variants {
		for j, vb := range variants {
			a := testProfile(t, "a", va)
			b := testProfile(t, "b", vb)
			assert.Equal(t, Score(a, b), Score(b, a), "variant pair (%d,%d)", i, j)
		}
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	mutations := []func(*profile.NewProfileParams){
		nil,
		func(p *profile.NewProfileParams) {
			p.Location = profile.Location{City: "Seattle", State: "Washington"}
		},
		func(p *profile.NewProfileParams) {
			p.RoomDetails = &profile.RoomDetails{IsOffering: true, Rent: 5000}
		},
		func(p *profile.NewProfileParams) {
			p.Preferences = prefsWith(func(prefs *profile.Preferences) {
				prefs.RentRange = profile.RentRange{Min: 0, Max: 0}
				prefs.FoodPreference = profile.FoodNonVegetarian
				prefs.SmokingPreference = profile.SmokingSmoker
				prefs.PetPreference = profile.PetFriendly
				prefs.Schedule = profile.ScheduleNightOwl
			})
		},
	}

	for _, ma := range mutations {
		for _, mb := range mutations {
			a := testProfile(t, "a", ma)
			b := testProfile(t, "b", mb)
			b.Preferences = nil

			assert.True(t, Score(a, b).IsValid())

			b = testProfile(t, "b", mb)
			assert.True(t, Score(a, b).IsValid())
		}
	}
}

func TestMatchScoreQuality(t *testing.T) {
	tests := []struct {
		score   MatchScore
		quality MatchQuality
	}{
		{100, MatchQualityExcellent},
		{80, MatchQualityExcellent},
		{79, MatchQualityGood},
		{60, MatchQualityGood},
		{59, MatchQualityFair},
		{40, MatchQualityFair},
		{39, MatchQualityPoor},
		{20, MatchQualityPoor},
		{19, MatchQualityNone},
		{0, MatchQualityNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.quality, tt.score.Quality(), "score %d", tt.score)
	}
}
