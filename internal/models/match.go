// file: internal/models/match.go
// version: 1.2.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9a0b1c2d3e

package models

import "time"

// MatchType identifies which matching stage produced a match.
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchNormalized MatchType = "normalized"
	MatchFuzzy      MatchType = "fuzzy"
	MatchPartial    MatchType = "partial"
)

// EnhancedPhraseMatch locates one finding's phrase in the original posting
// text. StartIndex/EndIndex are byte offsets into the original string with
// Phrase == text[StartIndex:EndIndex].
type EnhancedPhraseMatch struct {
	StartIndex     int       `json:"start_index"`
	EndIndex       int       `json:"end_index"`
	Phrase         string    `json:"phrase"`
	OriginalPhrase string    `json:"original_phrase"`
	MatchType      MatchType `json:"match_type"`
	Confidence     float64   `json:"confidence"`
	Finding        *Finding  `json:"finding,omitempty"`
	ID             string    `json:"id"`
}

// PhraseMatch is the legacy match shape kept for older call sites that
// predate confidence scoring.
type PhraseMatch struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Phrase     string   `json:"phrase"`
	Finding    *Finding `json:"finding,omitempty"`
}

// ToPhraseMatches strips the enhanced fields down to the legacy shape.
func ToPhraseMatches(matches []EnhancedPhraseMatch) []PhraseMatch {
	out := make([]PhraseMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, PhraseMatch{
			StartIndex: m.StartIndex,
			EndIndex:   m.EndIndex,
			Phrase:     m.Phrase,
			Finding:    m.Finding,
		})
	}
	return out
}

// MatchStats summarizes one matching run.
type MatchStats struct {
	TotalMatches      int               `json:"total_matches"`
	ByType            map[MatchType]int `json:"by_type"`
	AverageConfidence float64           `json:"average_confidence"`
	ProcessingTime    time.Duration     `json:"processing_time"`
}

// ComputeMatchStats builds run statistics from a finished match set.
func ComputeMatchStats(matches []EnhancedPhraseMatch, elapsed time.Duration) MatchStats {
	stats := MatchStats{
		TotalMatches:   len(matches),
		ByType:         make(map[MatchType]int),
		ProcessingTime: elapsed,
	}
	if len(matches) == 0 {
		return stats
	}
	sum := 0.0
	for _, m := range matches {
		stats.ByType[m.MatchType]++
		sum += m.Confidence
	}
	stats.AverageConfidence = sum / float64(len(matches))
	return stats
}

// CacheStats reports current and maximum sizes of the engine caches.
type CacheStats struct {
	MatchCacheSize       int `json:"match_cache_size"`
	MatchCacheLimit      int `json:"match_cache_limit"`
	SimilarityCacheSize  int `json:"similarity_cache_size"`
	SimilarityCacheLimit int `json:"similarity_cache_limit"`
}
