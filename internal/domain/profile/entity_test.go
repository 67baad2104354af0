package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

func validParams() NewProfileParams {
	return NewProfileParams{
		ID:       "7f9c24e5-2f13-4a39-9c71-1f6f2f4c5b1a",
		Email:    "  Alice@Example.COM ",
		Name:     "  Alice  ",
		Age:      26,
		Gender:   GenderFemale,
		Location: Location{City: "Austin", State: "Texas"},
	}
}

func TestNewProfile_AppliesDefaultsAndNormalizes(t *testing.T) {
	p, err := NewProfile(validParams())
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, "Alice", p.Name)
	assert.True(t, p.IsActive)
	assert.Zero(t, p.ProfileViews)
	assert.NotNil(t, p.SavedProfiles)
	assert.Empty(t, p.SavedProfiles)

	require.NotNil(t, p.Preferences)
	assert.Equal(t, DefaultPreferences(), *p.Preferences)
	assert.Nil(t, p.RoomDetails)
}

func TestNewProfile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*NewProfileParams)
		wantErr error
	}{
		{"empty id", func(p *NewProfileParams) { p.ID = "" }, ErrInvalidProfileID},
		{"blank name", func(p *NewProfileParams) { p.Name = "   " }, ErrInvalidName},
		{"too young", func(p *NewProfileParams) { p.Age = 17 }, ErrInvalidAge},
		{"too old", func(p *NewProfileParams) { p.Age = 66 }, ErrInvalidAge},
		{"unknown gender", func(p *NewProfileParams) { p.Gender = "Unknown" }, ErrInvalidGender},
		{"missing city", func(p *NewProfileParams) { p.Location.City = "" }, ErrInvalidLocation},
		{"inverted rent range", func(p *NewProfileParams) {
			prefs := DefaultPreferences()
			prefs.RentRange = RentRange{Min: 900, Max: 500}
			p.Preferences = &prefs
		}, ErrInvalidRentRange},
		{"bad enum in preferences", func(p *NewProfileParams) {
			prefs := DefaultPreferences()
			prefs.Schedule = "Nocturnal"
			p.Preferences = &prefs
		}, ErrInvalidPreference},
		{"negative room rent", func(p *NewProfileParams) {
			p.RoomDetails = &RoomDetails{IsOffering: true, Rent: -50}
		}, ErrInvalidRoomDetails},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)
			_, err := NewProfile(params)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewProfile_AgeBoundsAreInclusive(t *testing.T) {
	for _, age := range []int{MinAge, MaxAge} {
		params := validParams()
		params.Age = age
		_, err := NewProfile(params)
		assert.NoError(t, err)
	}
}

func TestProfile_SaveAndUnsave(t *testing.T) {
	p, err := NewProfile(validParams())
	require.NoError(t, err)

	other := shared.ProfileID("b2a4d7c1-90ab-4cde-8f12-3456789abcde")

	require.NoError(t, p.Save(other))
	assert.True(t, p.HasSaved(other))

	// Saving twice is a no-op, not an error.
	require.NoError(t, p.Save(other))
	assert.Len(t, p.SavedProfiles, 1)

	p.Unsave(other)
	assert.False(t, p.HasSaved(other))

	// Unsaving something never saved is harmless.
	p.Unsave(other)
	assert.Empty(t, p.SavedProfiles)
}

func TestProfile_SaveSelfRejected(t *testing.T) {
	p, err := NewProfile(validParams())
	require.NoError(t, err)

	err = p.Save(p.ID)
	assert.ErrorIs(t, err, ErrSelfSave)
	assert.Empty(t, p.SavedProfiles)
}

func TestProfile_DeactivateReactivate(t *testing.T) {
	p, err := NewProfile(validParams())
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.IsActive)

	p.Reactivate()
	assert.True(t, p.IsActive)
}

func TestProfile_EffectiveRentRange(t *testing.T) {
	p, err := NewProfile(validParams())
	require.NoError(t, err)

	// Preference range wins when no room rent is listed.
	rr, ok := p.EffectiveRentRange()
	require.True(t, ok)
	assert.Equal(t, DefaultPreferences().RentRange, rr)

	// A listed room rent collapses the interval to a single point.
	p.RoomDetails = &RoomDetails{IsOffering: true, Rent: 1200}
	rr, ok = p.EffectiveRentRange()
	require.True(t, ok)
	assert.Equal(t, RentRange{Min: 1200, Max: 1200}, rr)

	// Neither source present.
	p.RoomDetails = nil
	p.Preferences = nil
	_, ok = p.EffectiveRentRange()
	assert.False(t, ok)
}

func TestProfile_SortRent(t *testing.T) {
	p, err := NewProfile(validParams())
	require.NoError(t, err)

	assert.Equal(t, DefaultPreferences().RentRange.Max, p.SortRent())

	p.RoomDetails = &RoomDetails{IsOffering: true, Rent: 750}
	assert.Equal(t, 750, p.SortRent())

	p.RoomDetails = nil
	p.Preferences = nil
	assert.Zero(t, p.SortRent())
}

func TestProfile_ApplyPartialUpdate(t *testing.T) {
	p, err := NewProfile(validParams())
	require.NoError(t, err)
	originalAge := p.Age

	name := " Alice Cooper "
	bio := "Quiet, tidy, works from home."
	err = p.Apply(Update{Name: &name, Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Alice Cooper", p.Name)
	assert.Equal(t, bio, p.Bio)
	assert.Equal(t, originalAge, p.Age)

	// Updated preferences replace the whole sub-object.
	prefs := DefaultPreferences()
	prefs.SmokingPreference = SmokingAny
	err = p.Apply(Update{Preferences: &prefs})
	require.NoError(t, err)
	assert.Equal(t, SmokingAny, p.Preferences.SmokingPreference)

	// The stored copy is detached from the caller's value.
	prefs.SmokingPreference = SmokingSmoker
	assert.Equal(t, SmokingAny, p.Preferences.SmokingPreference)
}

func TestProfile_ApplyRejectsInvalidFields(t *testing.T) {
	p, err := NewProfile(validParams())
	require.NoError(t, err)

	badAge := 12
	assert.ErrorIs(t, p.Apply(Update{Age: &badAge}), ErrInvalidAge)

	badName := "  "
	assert.ErrorIs(t, p.Apply(Update{Name: &badName}), ErrInvalidName)

	badLoc := Location{City: "Austin"}
	assert.ErrorIs(t, p.Apply(Update{Location: &badLoc}), ErrInvalidLocation)
}

func TestUpdate_IsEmpty(t *testing.T) {
	assert.True(t, Update{}.IsEmpty())

	bio := ""
	assert.False(t, Update{Bio: &bio}.IsEmpty())
}

func TestRentRange_Overlap(t *testing.T) {
	tests := []struct {
		name string
		a, b RentRange
		want int
	}{
		{"identical", RentRange{500, 1000}, RentRange{500, 1000}, 500},
		{"partial", RentRange{500, 1000}, RentRange{800, 1500}, 200},
		{"touching endpoints", RentRange{500, 1000}, RentRange{1000, 1500}, 0},
		{"disjoint", RentRange{500, 800}, RentRange{900, 1500}, 0},
		{"contained", RentRange{300, 2000}, RentRange{700, 900}, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlap(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlap(tc.a))
			assert.Equal(t, tc.want > 0, tc.a.Overlaps(tc.b))
		})
	}
}
