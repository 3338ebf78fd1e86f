// file: internal/similarity/similarity.go
// version: 1.1.0
// guid: 7f8a9b0c-1d2e-3f4a-5b6c-7d8e9f0a1b2d

// Package similarity scores approximate string similarity for the fuzzy
// matching stage: a normalized Levenshtein ratio with pruning, a rune cap
// on pathological inputs, and an LRU cache for short pairs.
package similarity

import (
	"fmt"

	"github.com/mkurosawa/honne/internal/cache"
)

const (
	// maxCompareRunes truncates longer inputs before comparison. Lossy for
	// very long strings, by contract: fuzzy windows never exceed this.
	maxCompareRunes = 100
	// cacheEligibleRunes bounds the combined length of cacheable pairs so
	// the cache holds many small entries rather than few huge ones.
	cacheEligibleRunes = 50

	// DefaultCacheSize is the similarity cache capacity.
	DefaultCacheSize = 2000
)

// Scorer computes edit-distance similarity in [0,1]. Safe for concurrent use.
type Scorer struct {
	cache *cache.LRU[float64]
}

// NewScorer creates a scorer with a cache of the given capacity. A capacity
// of zero or less disables caching.
func NewScorer(cacheSize int) *Scorer {
	s := &Scorer{}
	if cacheSize > 0 {
		s.cache = cache.NewLRU[float64](cacheSize)
	}
	return s
}

// Similarity returns (maxLen-editDistance)/maxLen over runes: 1.0 iff the
// strings are equal, symmetric, monotonically decreasing with edit distance.
func (s *Scorer) Similarity(a, b string) float64 {
	return s.similarity(a, b, true)
}

// SimilarityUncached scores without reading or writing the cache, for callers
// that have caching switched off.
func (s *Scorer) SimilarityUncached(a, b string) float64 {
	return s.similarity(a, b, false)
}

func (s *Scorer) similarity(a, b string, useCache bool) float64 {
	if a == b {
		return 1
	}
	ra := truncateRunes(a, maxCompareRunes)
	rb := truncateRunes(b, maxCompareRunes)
	la, lb := len(ra), len(rb)
	longer := la
	if lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 1
	}
	// Length pruning: strings this different cannot clear any useful
	// threshold, skip the DP entirely.
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if diff*2 > longer {
		return 0
	}

	var key string
	cacheable := useCache && s.cache != nil && la+lb < cacheEligibleRunes
	if cacheable {
		key = fmt.Sprintf("%d:%d:%s|%s", la, lb, string(ra), string(rb))
		if v, ok := s.cache.Get(key); ok {
			return v
		}
	}

	dist := levenshtein(ra, rb)
	sim := float64(longer-dist) / float64(longer)
	if cacheable {
		s.cache.Set(key, sim)
	}
	return sim
}

// CacheStats returns current and maximum cache sizes.
func (s *Scorer) CacheStats() (size, limit int) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Len(), s.cache.Cap()
}

// ClearCache drops all cached scores.
func (s *Scorer) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func truncateRunes(s string, limit int) []rune {
	r := []rune(s)
	if len(r) > limit {
		r = r[:limit]
	}
	return r
}

// levenshtein computes edit distance with two rolling rows over the shorter
// string, giving O(min(len)) memory instead of a full matrix.
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
