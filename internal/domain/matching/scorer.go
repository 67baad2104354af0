// Package matching implements the pairwise compatibility score between two
// roommate profiles. Scoring is pure: no state, no I/O, deterministic for a
// given pair, and safe to call concurrently.
package matching

import (
	"math"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCH SCORE
// ══════════════════════════════════════════════════════════════════════════════

// MatchScore is a 0-100 compatibility score.
type MatchScore int

// IsValid checks that the score is within bounds.
func (m MatchScore) IsValid() bool {
	return m >= 0 && m <= 100
}

// Int returns the score as a plain int.
func (m MatchScore) Int() int {
	return int(m)
}

// Quality returns the qualitative band of the score.
func (m MatchScore) Quality() MatchQuality {
	switch {
	case m >= 80:
		return MatchQualityExcellent
	case m >= 60:
		return MatchQualityGood
	case m >= 40:
		return MatchQualityFair
	case m >= 20:
		return MatchQualityPoor
	default:
		return MatchQualityNone
	}
}

// MatchQuality is a human-readable compatibility band.
type MatchQuality string

const (
	MatchQualityExcellent MatchQuality = "excellent" // 80-100
	MatchQualityGood      MatchQuality = "good"      // 60-79
	MatchQualityFair      MatchQuality = "fair"      // 40-59
	MatchQualityPoor      MatchQuality = "poor"      // 20-39
	MatchQualityNone      MatchQuality = "none"      // 0-19
)

// FactorResult records a single factor's contribution to a score.
type FactorResult struct {
	// Factor is the factor name.
	Factor string

	// Weight is the factor's share of the denominator.
	Weight int

	// Points is what the pair earned, 0..Weight.
	Points int
}

// Factor names appearing in score breakdowns.
const (
	FactorLocation = "location"
	FactorRent     = "rent_overlap"
	FactorFood     = "food"
	FactorSmoking  = "smoking"
	FactorPet      = "pet"
	FactorSchedule = "schedule"
)

// Factor weights. Location and rent always execute, so the denominator is
// at least 55 and division by zero cannot occur.
const (
	weightLocation = 30
	weightRent     = 25
	weightFood     = 15
	weightSmoking  = 15
	weightPet      = 10
	weightSchedule = 5
)

// ══════════════════════════════════════════════════════════════════════════════
// SCORER
//
// Weighted factor sum. Each factor adds its weight to the running
// denominator whether or not points were earned. When either side has no
// preferences sub-object at all, scoring stops after the location and rent
// factors and the partial sum is rescaled out of 55 - not padded with
// zeroes out of 100. The denominator therefore depends on the path taken,
// and the rescale must mirror exactly which factors executed.
// ══════════════════════════════════════════════════════════════════════════════

// Score computes the compatibility of candidate as seen by viewer.
// For the documented factor set the result is symmetric in its arguments.
func Score(viewer, candidate *profile.Profile) MatchScore {
	score, _ := ScoreWithBreakdown(viewer, candidate)
	return score
}

// ScoreWithBreakdown computes the score together with the per-factor
// contributions that produced it.
func ScoreWithBreakdown(viewer, candidate *profile.Profile) (MatchScore, []FactorResult) {
	points, weights := 0, 0
	breakdown := make([]FactorResult, 0, 6)

	record := func(name string, weight, earned int) {
		points += earned
		weights += weight
		breakdown = append(breakdown, FactorResult{Factor: name, Weight: weight, Points: earned})
	}

	// Location: same city is a full match, same state a half one.
	locPoints := 0
	switch {
	case viewer.Location.SameCity(candidate.Location):
		locPoints = weightLocation
	case viewer.Location.SameState(candidate.Location):
		locPoints = weightLocation / 2
	}
	record(FactorLocation, weightLocation, locPoints)

	// Rent overlap: the viewer's preference range against the candidate's
	// effective range (offered room rent collapses to a point interval).
	// The weight counts even when either range is unknown.
	rentPoints := 0
	if viewer.Preferences != nil {
		if candidateRange, ok := candidate.EffectiveRentRange(); ok {
			if viewer.Preferences.RentRange.Overlaps(candidateRange) {
				rentPoints = weightRent
			}
		}
	}
	record(FactorRent, weightRent, rentPoints)

	// Partial-data checkpoint: without a preferences sub-object on either
	// side the remaining factors are unanswerable, so the pair is scored
	// out of what was measured so far.
	if viewer.Preferences == nil || candidate.Preferences == nil {
		return rescale(points, weights), breakdown
	}

	vp, cp := viewer.Preferences, candidate.Preferences

	record(FactorFood, weightFood, matchPoints(weightFood,
		string(vp.FoodPreference), string(cp.FoodPreference), string(profile.FoodAny)))

	record(FactorSmoking, weightSmoking, matchPoints(weightSmoking,
		string(vp.SmokingPreference), string(cp.SmokingPreference), string(profile.SmokingAny)))

	record(FactorPet, weightPet, matchPoints(weightPet,
		string(vp.PetPreference), string(cp.PetPreference), string(profile.PetAny)))

	// Schedule uses "Flexible" as its wildcard instead of "Any".
	record(FactorSchedule, weightSchedule, matchPoints(weightSchedule,
		string(vp.Schedule), string(cp.Schedule), string(profile.ScheduleFlexible)))

	return rescale(points, weights), breakdown
}

// matchPoints awards the full weight when both sides agree exactly or
// either side holds the wildcard value.
func matchPoints(weight int, a, b, wildcard string) int {
	if a == b || a == wildcard || b == wildcard {
		return weight
	}
	return 0
}

// rescale normalizes earned points to 0-100 over the executed weight.
func rescale(points, weights int) MatchScore {
	return MatchScore(math.Round(float64(points) / float64(weights) * 100))
}
