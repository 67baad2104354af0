package matching

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomizedProvider_Range(t *testing.T) {
	provider := NewRandomizedProvider(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		score := provider.Score(nil)
		assert.GreaterOrEqual(t, score.Int(), RandomScoreMin)
		assert.Less(t, score.Int(), RandomScoreMax)
	}
}

func TestRandomizedProvider_DeterministicWithFixedSeed(t *testing.T) {
	a := NewRandomizedProvider(rand.NewSource(42))
	b := NewRandomizedProvider(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Score(nil), b.Score(nil))
	}
}

func TestCompatibilityProvider_DelegatesToScorer(t *testing.T) {
	viewer := testProfile(t, "viewer", nil)
	candidate := testProfile(t, "candidate", nil)

	provider := NewCompatibilityProvider(viewer)
	assert.Equal(t, Score(viewer, candidate), provider.Score(candidate))
}
