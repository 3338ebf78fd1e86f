// file: internal/similarity/similarity_test.go
// version: 1.1.0
// guid: 8a9b0c1d-2e3f-4a5b-6c7d-8e9f0a1b2c3e

package similarity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityIdentical(t *testing.T) {
	s := NewScorer(DefaultCacheSize)
	for _, in := range []string{"", "a", "残業なし", "it engineer"} {
		assert.Equal(t, 1.0, s.Similarity(in, in))
	}
}

func TestSimilarityBoundsAndSymmetry(t *testing.T) {
	s := NewScorer(DefaultCacheSize)
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"残業なし", "残業ほぼなし"},
		{"アットホーム", "アットホームな職場"},
		{"abc", "xyz"},
		{"a", "ab"},
	}
	for _, p := range pairs {
		ab := s.Similarity(p[0], p[1])
		ba := s.Similarity(p[1], p[0])
		assert.GreaterOrEqual(t, ab, 0.0)
		assert.LessOrEqual(t, ab, 1.0)
		assert.InDelta(t, ab, ba, 1e-12, "similarity must be symmetric for %q/%q", p[0], p[1])
	}
}

func TestSimilarityKnownDistances(t *testing.T) {
	s := NewScorer(0)
	// kitten→sitting: distance 3, maxLen 7
	assert.InDelta(t, 4.0/7.0, s.Similarity("kitten", "sitting"), 1e-12)
	// One substitution over four runes
	assert.InDelta(t, 3.0/4.0, s.Similarity("残業なし", "残業アし"), 1e-12)
}

func TestSimilarityLengthPruning(t *testing.T) {
	s := NewScorer(0)
	// Lengths differing by more than half the longer length short-circuit to 0
	assert.Equal(t, 0.0, s.Similarity("ab", "abcdefgh"))
	assert.Equal(t, 0.0, s.Similarity("", "xx"))
}

func TestSimilarityLongInputTruncation(t *testing.T) {
	s := NewScorer(0)
	long := strings.Repeat("あ", 300)
	// Identical beyond the cap: truncation makes them compare equal
	assert.Equal(t, 1.0, s.Similarity(long+"X", long+"Y"))
}

func TestSimilarityCacheBound(t *testing.T) {
	s := NewScorer(50)
	for i := 0; i < 500; i++ {
		a := strings.Repeat("a", i%10+1)
		b := strings.Repeat("b", i%10+1) + string(rune('a'+i%26))
		s.Similarity(a, b)
	}
	size, limit := s.CacheStats()
	assert.Equal(t, 50, limit)
	assert.LessOrEqual(t, size, 50)
}

func TestSimilarityCacheHitReturnsSameScore(t *testing.T) {
	s := NewScorer(DefaultCacheSize)
	first := s.Similarity("アットホーム", "アットホームな")
	second := s.Similarity("アットホーム", "アットホームな")
	assert.Equal(t, first, second)
	size, _ := s.CacheStats()
	assert.Greater(t, size, 0)
}

func TestClearCache(t *testing.T) {
	s := NewScorer(DefaultCacheSize)
	s.Similarity("abc", "abd")
	s.ClearCache()
	size, _ := s.CacheStats()
	assert.Equal(t, 0, size)
}

func TestSimilarityUncachedSkipsCache(t *testing.T) {
	s := NewScorer(DefaultCacheSize)

	got := s.SimilarityUncached("kitten", "sitting")
	assert.InDelta(t, 4.0/7.0, got, 1e-9)
	size, _ := s.CacheStats()
	assert.Zero(t, size)

	// The cached path stores the same score.
	assert.InDelta(t, got, s.Similarity("kitten", "sitting"), 1e-9)
	size, _ = s.CacheStats()
	assert.Equal(t, 1, size)
}
