// Package profile contains the roommate profile domain model.
// This is the core of the business logic - no external dependencies here.
package profile

import (
	"strings"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Gender is the profile owner's gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// IsValid checks that the gender is one of the known values.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// GenderPreference is the preferred gender of a roommate. "Any" is the
// wildcard that disables the criterion on either side of a comparison.
type GenderPreference string

const (
	GenderPrefMale   GenderPreference = "Male"
	GenderPrefFemale GenderPreference = "Female"
	GenderPrefAny    GenderPreference = "Any"
)

// IsValid checks that the preference is one of the known values.
func (g GenderPreference) IsValid() bool {
	switch g {
	case GenderPrefMale, GenderPrefFemale, GenderPrefAny:
		return true
	default:
		return false
	}
}

// IsWildcard reports whether the preference matches anything.
func (g GenderPreference) IsWildcard() bool {
	return g == GenderPrefAny
}

// Duration is the intended length of stay.
type Duration string

const (
	DurationShort    Duration = "1-3 months"
	DurationMedium   Duration = "3-6 months"
	DurationLong     Duration = "6-12 months"
	DurationYearPlus Duration = "12+ months"
	DurationFlexible Duration = "Flexible"
)

// IsValid checks that the duration is one of the known values.
func (d Duration) IsValid() bool {
	switch d {
	case DurationShort, DurationMedium, DurationLong, DurationYearPlus, DurationFlexible:
		return true
	default:
		return false
	}
}

// IsWildcard reports whether the duration matches anything.
func (d Duration) IsWildcard() bool {
	return d == DurationFlexible
}

// FoodPreference is the dietary preference.
type FoodPreference string

const (
	FoodVegetarian    FoodPreference = "Vegetarian"
	FoodNonVegetarian FoodPreference = "Non-Vegetarian"
	FoodAny           FoodPreference = "Any"
)

// IsValid checks that the preference is one of the known values.
func (f FoodPreference) IsValid() bool {
	switch f {
	case FoodVegetarian, FoodNonVegetarian, FoodAny:
		return true
	default:
		return false
	}
}

// IsWildcard reports whether the preference matches anything.
func (f FoodPreference) IsWildcard() bool {
	return f == FoodAny
}

// SmokingPreference is the smoking preference.
type SmokingPreference string

const (
	SmokingNonSmoker SmokingPreference = "Non-smoker"
	SmokingSmoker    SmokingPreference = "Smoker"
	SmokingAny       SmokingPreference = "Any"
)

// IsValid checks that the preference is one of the known values.
func (s SmokingPreference) IsValid() bool {
	switch s {
	case SmokingNonSmoker, SmokingSmoker, SmokingAny:
		return true
	default:
		return false
	}
}

// PetPreference is the pet preference.
type PetPreference string

const (
	PetFriendly PetPreference = "Pet-friendly"
	PetNone     PetPreference = "No pets"
	PetAny      PetPreference = "Any"
)

// IsValid checks that the preference is one of the known values.
func (p PetPreference) IsValid() bool {
	switch p {
	case PetFriendly, PetNone, PetAny:
		return true
	default:
		return false
	}
}

// Schedule is the daily schedule preference. "Flexible" plays the role of
// the wildcard for this enum.
type Schedule string

const (
	ScheduleEarlyRiser Schedule = "Early riser"
	ScheduleNightOwl   Schedule = "Night owl"
	ScheduleFlexible   Schedule = "Flexible"
)

// IsValid checks that the schedule is one of the known values.
func (s Schedule) IsValid() bool {
	switch s {
	case ScheduleEarlyRiser, ScheduleNightOwl, ScheduleFlexible:
		return true
	default:
		return false
	}
}

// RoomType is the type of room being offered.
type RoomType string

const (
	RoomPrivate RoomType = "Private"
	RoomShared  RoomType = "Shared"
	RoomStudio  RoomType = "Studio"
)

// IsValid checks that the room type is one of the known values.
func (r RoomType) IsValid() bool {
	switch r {
	case RoomPrivate, RoomShared, RoomStudio:
		return true
	default:
		return false
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Coordinates is an optional geographic location.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location is where the profile owner is looking for a roommate.
// City and state are mandatory; area and coordinates are optional.
type Location struct {
	City        string       `json:"city"`
	State       string       `json:"state"`
	Area        string       `json:"area,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// IsValid checks that the mandatory fields are present.
func (l Location) IsValid() bool {
	return strings.TrimSpace(l.City) != "" && strings.TrimSpace(l.State) != ""
}

// SameCity reports whether both locations are in the same city.
func (l Location) SameCity(other Location) bool {
	return l.City == other.City
}

// SameState reports whether both locations are in the same state.
func (l Location) SameState(other Location) bool {
	return l.State == other.State
}

// RentRange is an inclusive monthly rent interval.
type RentRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// IsValid checks the interval invariant min <= max and non-negativity.
func (r RentRange) IsValid() bool {
	return r.Min >= 0 && r.Min <= r.Max
}

// Overlap returns the size of the intersection with another range.
// Touching intervals (shared endpoint only) count as zero overlap.
func (r RentRange) Overlap(other RentRange) int {
	overlap := min(r.Max, other.Max) - max(r.Min, other.Min)
	if overlap < 0 {
		return 0
	}
	return overlap
}

// Overlaps reports whether the two ranges share more than a single point.
func (r RentRange) Overlaps(other RentRange) bool {
	return r.Overlap(other) > 0
}

// ══════════════════════════════════════════════════════════════════════════════
// PREFERENCES
// ══════════════════════════════════════════════════════════════════════════════

// Preferences holds the lifestyle preferences used for matching.
// A nil *Preferences on a profile means the sub-object was never provided;
// the scorer treats that case specially (partial-score short-circuit).
type Preferences struct {
	RentRange         RentRange         `json:"rent_range"`
	Duration          Duration          `json:"duration"`
	GenderPreference  GenderPreference  `json:"gender_preference"`
	FoodPreference    FoodPreference    `json:"food_preference"`
	SmokingPreference SmokingPreference `json:"smoking_preference"`
	PetPreference     PetPreference     `json:"pet_preference"`
	Schedule          Schedule          `json:"schedule"`
}

// DefaultPreferences returns the preference defaults applied at registration.
// Defaults are filled in here, at construction time, rather than scattered
// across storage or call sites.
func DefaultPreferences() Preferences {
	return Preferences{
		RentRange:         RentRange{Min: 300, Max: 2000},
		Duration:          DurationFlexible,
		GenderPreference:  GenderPrefAny,
		FoodPreference:    FoodAny,
		SmokingPreference: SmokingNonSmoker,
		PetPreference:     PetAny,
		Schedule:          ScheduleFlexible,
	}
}

// Validate checks every preference field.
func (p Preferences) Validate() error {
	if !p.RentRange.IsValid() {
		return ErrInvalidRentRange
	}
	if !p.Duration.IsValid() || !p.GenderPreference.IsValid() || !p.FoodPreference.IsValid() ||
		!p.SmokingPreference.IsValid() || !p.PetPreference.IsValid() || !p.Schedule.IsValid() {
		return ErrInvalidPreference
	}
	return nil
}

// RoomDetails describes a room the profile owner is offering, if any.
type RoomDetails struct {
	IsOffering  bool     `json:"is_offering"`
	Rent        int      `json:"rent,omitempty"`
	Images      []string `json:"images,omitempty"`
	Description string   `json:"description,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	RoomType    RoomType `json:"room_type,omitempty"`
}

// Validate checks room details consistency.
func (r RoomDetails) Validate() error {
	if r.Rent < 0 {
		return ErrInvalidRoomDetails
	}
	if r.RoomType != "" && !r.RoomType.IsValid() {
		return ErrInvalidRoomDetails
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Age bounds enforced on every profile.
const (
	MinAge = 18
	MaxAge = 65
)

// Profile is a user's roommate-matching record.
type Profile struct {
	// ID is the opaque unique identifier (UUID).
	ID shared.ProfileID

	// Email and PasswordHash identify the account. The hash is produced by
	// an external hashing capability; this package never sees plaintext.
	Email        string
	PasswordHash string

	// Demographic data.
	Name   string
	Age    int
	Gender Gender

	// Bio is a free-text self description.
	Bio string

	// Avatar is a URL to the profile picture.
	Avatar string

	// Location is mandatory.
	Location Location

	// Preferences is nil when the user never provided one.
	Preferences *Preferences

	// RoomDetails is nil unless the user filled in room info.
	RoomDetails *RoomDetails

	// IsActive gates matchability. Deactivation is the soft delete; profiles
	// are never physically removed.
	IsActive bool

	// ProfileViews counts how often the profile was opened.
	ProfileViews int

	// SavedProfiles is the set of profile IDs this user bookmarked.
	// Never contains the profile's own ID.
	SavedProfiles []shared.ProfileID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfileParams are the inputs accepted at registration.
type NewProfileParams struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Age          int
	Gender       Gender
	Bio          string
	Avatar       string
	Location     Location

	// Preferences is optional; defaults are applied when nil.
	Preferences *Preferences

	// RoomDetails is optional.
	RoomDetails *RoomDetails
}

// NewProfile constructs a valid, active profile with preference defaults
// filled in.
func NewProfile(params NewProfileParams) (*Profile, error) {
	id, err := shared.NewProfileID(params.ID)
	if err != nil {
		return nil, ErrInvalidProfileID
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrInvalidName
	}
	if params.Age < MinAge || params.Age > MaxAge {
		return nil, ErrInvalidAge
	}
	if !params.Gender.IsValid() {
		return nil, ErrInvalidGender
	}
	if !params.Location.IsValid() {
		return nil, ErrInvalidLocation
	}

	prefs := DefaultPreferences()
	if params.Preferences != nil {
		prefs = *params.Preferences
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	if params.RoomDetails != nil {
		if err := params.RoomDetails.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()

	return &Profile{
		ID:            id,
		Email:         strings.ToLower(strings.TrimSpace(params.Email)),
		PasswordHash:  params.PasswordHash,
		Name:          strings.TrimSpace(params.Name),
		Age:           params.Age,
		Gender:        params.Gender,
		Bio:           params.Bio,
		Avatar:        params.Avatar,
		Location:      params.Location,
		Preferences:   &prefs,
		RoomDetails:   params.RoomDetails,
		IsActive:      true,
		ProfileViews:  0,
		SavedProfiles: make([]shared.ProfileID, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Behaviour
// ─────────────────────────────────────────────────────────────────────────────

// Deactivate performs the soft delete. The profile stops appearing in any
// match result but keeps its data.
func (p *Profile) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now().UTC()
}

// Reactivate makes the profile matchable again.
func (p *Profile) Reactivate() {
	p.IsActive = true
	p.UpdatedAt = time.Now().UTC()
}

// HasSaved reports whether the given profile is in the saved set.
func (p *Profile) HasSaved(id shared.ProfileID) bool {
	for _, saved := range p.SavedProfiles {
		if saved == id {
			return true
		}
	}
	return false
}

// Save adds a profile to the saved set. Saving oneself is rejected to
// preserve the savedProfiles invariant.
func (p *Profile) Save(id shared.ProfileID) error {
	if id == p.ID {
		return ErrSelfSave
	}
	if p.HasSaved(id) {
		return nil
	}
	p.SavedProfiles = append(p.SavedProfiles, id)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// Unsave removes a profile from the saved set.
func (p *Profile) Unsave(id shared.ProfileID) {
	for i, saved := range p.SavedProfiles {
		if saved == id {
			p.SavedProfiles = append(p.SavedProfiles[:i], p.SavedProfiles[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// IsOfferingRoom reports whether this profile lists a room.
func (p *Profile) IsOfferingRoom() bool {
	return p.RoomDetails != nil && p.RoomDetails.IsOffering
}

// EffectiveRentRange returns the rent interval this profile occupies for
// matching: a degenerate [rent, rent] interval when the profile lists a
// room rent, otherwise the preference range. ok is false when neither
// exists.
func (p *Profile) EffectiveRentRange() (RentRange, bool) {
	if p.RoomDetails != nil && p.RoomDetails.Rent > 0 {
		return RentRange{Min: p.RoomDetails.Rent, Max: p.RoomDetails.Rent}, true
	}
	if p.Preferences != nil {
		return p.Preferences.RentRange, true
	}
	return RentRange{}, false
}

// SortRent returns the value used when sorting a page by rent: the offered
// room rent when present, else the preference ceiling, else 0.
func (p *Profile) SortRent() int {
	if p.RoomDetails != nil && p.RoomDetails.Rent > 0 {
		return p.RoomDetails.Rent
	}
	if p.Preferences != nil {
		return p.Preferences.RentRange.Max
	}
	return 0
}

// ─────────────────────────────────────────────────────────────────────────────
// Partial updates
// ─────────────────────────────────────────────────────────────────────────────

// Update carries a field-level partial update: only non-nil fields change.
type Update struct {
	Name        *string
	Age         *int
	Bio         *string
	Avatar      *string
	Location    *Location
	Preferences *Preferences
	RoomDetails *RoomDetails
}

// IsEmpty reports whether the update carries no changes.
func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Age == nil && u.Bio == nil && u.Avatar == nil &&
		u.Location == nil && u.Preferences == nil && u.RoomDetails == nil
}

// Apply merges the update into the profile, validating each supplied field.
func (p *Profile) Apply(u Update) error {
	if u.Name != nil {
		if strings.TrimSpace(*u.Name) == "" {
			return ErrInvalidName
		}
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Age != nil {
		if *u.Age < MinAge || *u.Age > MaxAge {
			return ErrInvalidAge
		}
		p.Age = *u.Age
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	if u.Location != nil {
		if !u.Location.IsValid() {
			return ErrInvalidLocation
		}
		p.Location = *u.Location
	}
	if u.Preferences != nil {
		if err := u.Preferences.Validate(); err != nil {
			return err
		}
		prefs := *u.Preferences
		p.Preferences = &prefs
	}
	if u.RoomDetails != nil {
		if err := u.RoomDetails.Validate(); err != nil {
			return err
		}
		details := *u.RoomDetails
		p.RoomDetails = &details
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}
