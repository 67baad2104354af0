package profile

import (
	"strings"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCH FILTER
//
// A filter is a conjunction of named clause groups: clauses within a group
// are ORed, groups are ANDed. Every soft criterion (rent bounds, gender,
// food, duration) contributes its own group, so activating a second
// criterion can never discard the first one. Repositories translate the
// structure into their query language; Matches gives the reference
// in-memory evaluation.
// ══════════════════════════════════════════════════════════════════════════════

// Field identifies a profile attribute a clause tests.
type Field string

const (
	FieldName       Field = "name"
	FieldBio        Field = "bio"
	FieldCity       Field = "location.city"
	FieldState      Field = "location.state"
	FieldGender     Field = "gender"
	FieldGenderPref Field = "preferences.gender_preference"
	FieldFoodPref   Field = "preferences.food_preference"
	FieldDuration   Field = "preferences.duration"
	FieldRentMin    Field = "preferences.rent_min"
	FieldRentMax    Field = "preferences.rent_max"
	FieldRoomRent   Field = "room.rent"
)

// Op is the comparison a clause applies.
type Op string

const (
	// OpEq is exact equality against Str.
	OpEq Op = "eq"

	// OpContains is case-insensitive substring match against Str.
	OpContains Op = "contains"

	// OpGTE and OpLTE compare numeric fields against Num.
	OpGTE Op = "gte"
	OpLTE Op = "lte"
)

// Clause is a single acceptance test.
type Clause struct {
	Field Field
	Op    Op
	Str   string
	Num   int
}

// Group is a named disjunction of clauses.
type Group struct {
	Name    string
	Clauses []Clause
}

// MatchFilter selects candidate profiles.
type MatchFilter struct {
	// ActiveOnly excludes soft-deleted profiles. Always true for match
	// queries; inactive profiles never appear in results.
	ActiveOnly bool

	// ExcludeID removes the viewer's own profile from results.
	ExcludeID shared.ProfileID

	groups []Group
}

// Groups returns the accumulated clause groups.
func (f MatchFilter) Groups() []Group {
	return f.groups
}

// HasGroup reports whether a group with the given name was added.
func (f MatchFilter) HasGroup(name string) bool {
	for _, g := range f.groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// Matches evaluates the filter against a profile in memory.
func (f MatchFilter) Matches(p *Profile) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	if !f.ExcludeID.IsEmpty() && p.ID == f.ExcludeID {
		return false
	}
	for _, group := range f.groups {
		matched := false
		for _, clause := range group.Clauses {
			if clause.matches(p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// matches evaluates a single clause. Clauses on preference fields never
// match a profile without a preferences sub-object.
func (c Clause) matches(p *Profile) bool {
	switch c.Op {
	case OpEq, OpContains:
		value, ok := stringField(p, c.Field)
		if !ok {
			return false
		}
		if c.Op == OpEq {
			return value == c.Str
		}
		return strings.Contains(strings.ToLower(value), strings.ToLower(c.Str))
	case OpGTE, OpLTE:
		value, ok := numericField(p, c.Field)
		if !ok {
			return false
		}
		if c.Op == OpGTE {
			return value >= c.Num
		}
		return value <= c.Num
	default:
		return false
	}
}

func stringField(p *Profile, field Field) (string, bool) {
	switch field {
	case FieldName:
		return p.Name, true
	case FieldBio:
		return p.Bio, true
	case FieldCity:
		return p.Location.City, true
	case FieldState:
		return p.Location.State, true
	case FieldGender:
		return string(p.Gender), true
	case FieldGenderPref:
		if p.Preferences == nil {
			return "", false
		}
		return string(p.Preferences.GenderPreference), true
	case FieldFoodPref:
		if p.Preferences == nil {
			return "", false
		}
		return string(p.Preferences.FoodPreference), true
	case FieldDuration:
		if p.Preferences == nil {
			return "", false
		}
		return string(p.Preferences.Duration), true
	default:
		return "", false
	}
}

func numericField(p *Profile, field Field) (int, bool) {
	switch field {
	case FieldRentMin:
		if p.Preferences == nil {
			return 0, false
		}
		return p.Preferences.RentRange.Min, true
	case FieldRentMax:
		if p.Preferences == nil {
			return 0, false
		}
		return p.Preferences.RentRange.Max, true
	case FieldRoomRent:
		if p.RoomDetails == nil || p.RoomDetails.Rent <= 0 {
			return 0, false
		}
		return p.RoomDetails.Rent, true
	default:
		return 0, false
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// FILTER BUILDER
// ══════════════════════════════════════════════════════════════════════════════

// Group names used by the builder. Repositories and tests key off these.
const (
	GroupCity     = "city"
	GroupState    = "state"
	GroupRent     = "rent"
	GroupGender   = "gender"
	GroupFood     = "food"
	GroupDuration = "duration"
	GroupText     = "text"
	GroupRoom     = "room"
)

// FilterBuilder accumulates criteria and produces a MatchFilter. Criteria
// with wildcard or zero values are no-ops, so callers can feed raw query
// parameters straight through.
type FilterBuilder struct {
	filter MatchFilter
}

// NewFilterBuilder starts a filter that only admits active profiles.
func NewFilterBuilder() *FilterBuilder {
	return &FilterBuilder{filter: MatchFilter{ActiveOnly: true}}
}

// Build returns the accumulated filter.
func (b *FilterBuilder) Build() MatchFilter {
	return b.filter
}

// ExcludeProfile removes the given profile (the viewer) from results.
func (b *FilterBuilder) ExcludeProfile(id shared.ProfileID) *FilterBuilder {
	b.filter.ExcludeID = id
	return b
}

// CityContains filters by case-insensitive substring on the city.
func (b *FilterBuilder) CityContains(city string) *FilterBuilder {
	if strings.TrimSpace(city) == "" {
		return b
	}
	b.addGroup(GroupCity, Clause{Field: FieldCity, Op: OpContains, Str: city})
	return b
}

// StateContains filters by case-insensitive substring on the state.
func (b *FilterBuilder) StateContains(state string) *FilterBuilder {
	if strings.TrimSpace(state) == "" {
		return b
	}
	b.addGroup(GroupState, Clause{Field: FieldState, Op: OpContains, Str: state})
	return b
}

// RentBetween filters by requested rent bounds. A candidate qualifies when
// its preference range or offered-room rent satisfies any bound: minRent
// alone admits anyone whose ceiling is >= minRent, maxRent alone admits
// anyone whose floor is <= maxRent. Zero bounds are ignored. This is a
// looser test than the scorer's overlap factor and intentionally so.
func (b *FilterBuilder) RentBetween(minRent, maxRent int) *FilterBuilder {
	var clauses []Clause
	if minRent > 0 {
		clauses = append(clauses,
			Clause{Field: FieldRentMax, Op: OpGTE, Num: minRent},
			Clause{Field: FieldRoomRent, Op: OpGTE, Num: minRent},
		)
	}
	if maxRent > 0 {
		clauses = append(clauses,
			Clause{Field: FieldRentMin, Op: OpLTE, Num: maxRent},
			Clause{Field: FieldRoomRent, Op: OpLTE, Num: maxRent},
		)
	}
	if len(clauses) == 0 {
		return b
	}
	b.addGroup(GroupRent, clauses...)
	return b
}

// GenderMatches filters by requested gender with union semantics: a
// candidate qualifies when its own gender preference is the wildcard,
// equals the requested value, or the candidate's own gender equals the
// requested value. "Any" disables the criterion.
func (b *FilterBuilder) GenderMatches(g GenderPreference) *FilterBuilder {
	if g == "" || g.IsWildcard() {
		return b
	}
	b.addGroup(GroupGender,
		Clause{Field: FieldGenderPref, Op: OpEq, Str: string(GenderPrefAny)},
		Clause{Field: FieldGenderPref, Op: OpEq, Str: string(g)},
		Clause{Field: FieldGender, Op: OpEq, Str: string(g)},
	)
	return b
}

// FoodMatches filters by requested food preference with wildcard-union
// semantics. "Any" disables the criterion.
func (b *FilterBuilder) FoodMatches(f FoodPreference) *FilterBuilder {
	if f == "" || f.IsWildcard() {
		return b
	}
	b.addGroup(GroupFood,
		Clause{Field: FieldFoodPref, Op: OpEq, Str: string(FoodAny)},
		Clause{Field: FieldFoodPref, Op: OpEq, Str: string(f)},
	)
	return b
}

// DurationMatches filters by requested stay duration with wildcard-union
// semantics. "Flexible" disables the criterion.
func (b *FilterBuilder) DurationMatches(d Duration) *FilterBuilder {
	if d == "" || d.IsWildcard() {
		return b
	}
	b.addGroup(GroupDuration,
		Clause{Field: FieldDuration, Op: OpEq, Str: string(DurationFlexible)},
		Clause{Field: FieldDuration, Op: OpEq, Str: string(d)},
	)
	return b
}

// OffersRoom keeps only profiles listing a room with a positive rent.
func (b *FilterBuilder) OffersRoom() *FilterBuilder {
	b.addGroup(GroupRoom, Clause{Field: FieldRoomRent, Op: OpGTE, Num: 1})
	return b
}

// TextSearch filters by case-insensitive substring across name, bio, city
// and state.
func (b *FilterBuilder) TextSearch(q string) *FilterBuilder {
	if strings.TrimSpace(q) == "" {
		return b
	}
	b.addGroup(GroupText,
		Clause{Field: FieldName, Op: OpContains, Str: q},
		Clause{Field: FieldCity, Op: OpContains, Str: q},
		Clause{Field: FieldState, Op: OpContains, Str: q},
		Clause{Field: FieldBio, Op: OpContains, Str: q},
	)
	return b
}

// addGroup replaces a group with the same name instead of duplicating it.
func (b *FilterBuilder) addGroup(name string, clauses ...Clause) {
	for i, g := range b.filter.groups {
		if g.Name == name {
			b.filter.groups[i].Clauses = clauses
			return
		}
	}
	b.filter.groups = append(b.filter.groups, Group{Name: name, Clauses: clauses})
}

// ══════════════════════════════════════════════════════════════════════════════
// SORTING
// ══════════════════════════════════════════════════════════════════════════════

// SortKey selects the result ordering of a match query.
type SortKey string

const (
	// SortCompatibility orders by computed compatibility, descending.
	SortCompatibility SortKey = "compatibility"

	// SortRent orders by effective rent, ascending.
	SortRent SortKey = "rent"

	// SortAge orders by age, ascending.
	SortAge SortKey = "age"

	// SortRecent orders by creation time, descending.
	SortRecent SortKey = "recent"
)

// IsValid checks that the sort key is one of the known values.
func (s SortKey) IsValid() bool {
	switch s {
	case SortCompatibility, SortRent, SortAge, SortRecent:
		return true
	default:
		return false
	}
}
