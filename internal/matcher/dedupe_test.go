// file: internal/matcher/dedupe_test.go
// version: 1.0.0
// guid: 8c9d0e1f-2a3b-4c5d-6e7f-8a9b0c1d2e12

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkurosawa/honne/internal/models"
)

func span(start, end int, confidence float64) models.EnhancedPhraseMatch {
	return models.EnhancedPhraseMatch{
		StartIndex: start,
		EndIndex:   end,
		Confidence: confidence,
		MatchType:  models.MatchExact,
	}
}

func assertNoOverlap(t *testing.T, matches []models.EnhancedPhraseMatch) {
	t.Helper()
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].StartIndex, matches[i-1].EndIndex,
			"matches %d and %d overlap", i-1, i)
	}
}

func TestDedupeIdenticalSpans(t *testing.T) {
	got := Dedupe([]models.EnhancedPhraseMatch{
		span(0, 10, 0.9),
		span(0, 10, 1.0),
		span(0, 10, 0.7),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Confidence)
}

func TestDedupeOverlapLongerWins(t *testing.T) {
	got := Dedupe([]models.EnhancedPhraseMatch{
		span(0, 5, 1.0),
		span(3, 20, 0.7),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].StartIndex)
	assert.Equal(t, 20, got[0].EndIndex)
}

func TestDedupeOverlapTieConfidenceWins(t *testing.T) {
	got := Dedupe([]models.EnhancedPhraseMatch{
		span(0, 10, 0.7),
		span(5, 15, 0.9),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 0.9, got[0].Confidence)
}

func TestDedupeDisjointKeptSorted(t *testing.T) {
	got := Dedupe([]models.EnhancedPhraseMatch{
		span(20, 30, 0.9),
		span(0, 10, 1.0),
		span(10, 20, 0.7),
	})
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].StartIndex)
	assert.Equal(t, 10, got[1].StartIndex)
	assert.Equal(t, 20, got[2].StartIndex)
	assertNoOverlap(t, got)
}

func TestDedupeMixed(t *testing.T) {
	got := Dedupe([]models.EnhancedPhraseMatch{
		span(0, 8, 1.0),
		span(2, 6, 0.9),  // contained, shorter, dropped
		span(8, 12, 0.7), // adjacent, kept
		span(10, 30, 0.8),
	})
	assertNoOverlap(t, got)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].StartIndex)
	assert.Equal(t, 10, got[1].StartIndex)
	assert.Equal(t, 30, got[1].EndIndex)
}

func TestDedupeEmptyAndSingle(t *testing.T) {
	assert.Empty(t, Dedupe(nil))
	one := []models.EnhancedPhraseMatch{span(3, 7, 1.0)}
	assert.Equal(t, one, Dedupe(one))
}
