package matching

import (
	"math/rand"
	"sync"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
)

// ScoreProvider yields a compatibility score for a candidate profile.
// Which implementation is used depends on whether a viewer identity is
// present: authenticated browsing gets the real scorer, anonymous browsing
// gets plausible-looking randomized scores that are never persisted.
type ScoreProvider interface {
	Score(candidate *profile.Profile) MatchScore
}

// CompatibilityProvider scores candidates against a fixed viewer profile.
type CompatibilityProvider struct {
	viewer *profile.Profile
}

// NewCompatibilityProvider creates a provider for the given viewer.
func NewCompatibilityProvider(viewer *profile.Profile) *CompatibilityProvider {
	return &CompatibilityProvider{viewer: viewer}
}

// Score implements ScoreProvider.
func (p *CompatibilityProvider) Score(candidate *profile.Profile) MatchScore {
	return Score(p.viewer, candidate)
}

// Randomized score bounds for anonymous viewers: [RandomScoreMin, RandomScoreMax).
const (
	RandomScoreMin = 70
	RandomScoreMax = 95
)

// RandomizedProvider yields uniform scores in [70,95) for anonymous
// viewers. Safe for concurrent use.
type RandomizedProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomizedProvider creates a provider reading from src. Tests pass a
// fixed-seed source; nil gets a time-seeded one.
func NewRandomizedProvider(src rand.Source) *RandomizedProvider {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RandomizedProvider{rng: rand.New(src)}
}

// Score implements ScoreProvider.
func (p *RandomizedProvider) Score(_ *profile.Profile) MatchScore {
	p.mu.Lock()
	defer p.mu.Unlock()
	return MatchScore(RandomScoreMin + p.rng.Intn(RandomScoreMax-RandomScoreMin))
}
