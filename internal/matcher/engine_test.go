// file: internal/matcher/engine_test.go
// version: 1.3.0
// guid: 9d0e1f2a-3b4c-5d6e-7f8a-9b0c1d2e3f13

package matcher

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkurosawa/honne/internal/models"
)

func findingWithPhrase(phrase string, keywords ...string) models.Finding {
	return models.Finding{
		OriginalPhrase:     phrase,
		PotentialRealities: []string{"建前の可能性あり"},
		PointsToCheck:      []string{"面接で確認する"},
		RelatedKeywords:    keywords,
	}
}

func TestFindMatchesEndToEnd(t *testing.T) {
	e := NewEngine(0, 0)
	text := "職種：ＩＴエンジニア\n給与：年俸５００万円〜"
	findings := []models.Finding{
		findingWithPhrase("ITエンジニア"),
		findingWithPhrase("年俸500万円"),
	}

	matches := e.FindMatches(context.Background(), text, findings, models.DefaultMatchingOptions())
	require.Len(t, matches, 2)

	first, second := matches[0], matches[1]
	assert.Equal(t, models.MatchNormalized, first.MatchType)
	assert.Equal(t, "ＩＴエンジニア", first.Phrase)
	assert.Equal(t, first.Phrase, text[first.StartIndex:first.EndIndex])
	assert.Equal(t, 0.9, first.Confidence)

	assert.Equal(t, models.MatchNormalized, second.MatchType)
	assert.Equal(t, "年俸５００万円", second.Phrase)
	assert.Equal(t, second.Phrase, text[second.StartIndex:second.EndIndex])

	// Sorted and non-overlapping.
	assert.Less(t, first.StartIndex, second.StartIndex)
	assert.GreaterOrEqual(t, second.StartIndex, first.EndIndex)

	// Each match carries its source finding.
	require.NotNil(t, first.Finding)
	assert.Equal(t, "ITエンジニア", first.Finding.OriginalPhrase)

	stats := e.Stats()
	assert.Equal(t, 2, stats.TotalMatches)
	assert.Equal(t, 2, stats.ByType[models.MatchNormalized])
	assert.InDelta(t, 0.9, stats.AverageConfidence, 1e-9)
}

func TestFindMatchesIDFormats(t *testing.T) {
	e := NewEngine(0, 0)
	text := "残業なしの求人、住宅手当あり"
	findings := []models.Finding{
		findingWithPhrase("残業なし"),
		findingWithPhrase("福利厚生バッチリ", "住宅手当"),
	}

	matches := e.FindMatches(context.Background(), text, findings, models.DefaultMatchingOptions())
	require.Len(t, matches, 2)

	assert.Equal(t, fmt.Sprintf("finding-0-main-exact-%d", matches[0].StartIndex), matches[0].ID)
	assert.Equal(t, fmt.Sprintf("finding-1-related-0-exact-%d", matches[1].StartIndex), matches[1].ID)
}

func TestFindMatchesPrimarySuppressesRelated(t *testing.T) {
	e := NewEngine(0, 0)
	// Both the primary phrase and the related keyword occur; only the
	// primary span may be reported.
	text := "残業なしの求人です"
	findings := []models.Finding{findingWithPhrase("残業なし", "求人")}

	matches := e.FindMatches(context.Background(), text, findings, models.DefaultMatchingOptions())
	require.Len(t, matches, 1)
	assert.Equal(t, "残業なし", matches[0].Phrase)
	assert.Contains(t, matches[0].ID, "-main-")
}

func TestFindMatchesEmptyInputs(t *testing.T) {
	e := NewEngine(0, 0)
	opts := models.DefaultMatchingOptions()

	got := e.FindMatches(context.Background(), "", []models.Finding{findingWithPhrase("残業なし")}, opts)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got = e.FindMatches(context.Background(), "残業なしの求人", nil, opts)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindMatchesMalformedFindings(t *testing.T) {
	e := NewEngine(0, 0)
	text := "残業なしの求人"
	findings := []models.Finding{
		{OriginalPhrase: ""},
		{OriginalPhrase: "   "},
		{OriginalPhrase: "あ"}, // below minimum length
		findingWithPhrase("残業なし"),
	}

	matches := e.FindMatches(context.Background(), text, findings, models.DefaultMatchingOptions())
	require.Len(t, matches, 1)
	assert.Equal(t, "残業なし", matches[0].Phrase)
	assert.Equal(t, "finding-3-main-exact-0", matches[0].ID)
}

func TestFindMatchesCancelledContext(t *testing.T) {
	e := NewEngine(0, 0)
	text := "残業なしの求人"
	findings := []models.Finding{findingWithPhrase("残業なし")}
	opts := models.DefaultMatchingOptions()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := e.FindMatches(ctx, text, findings, opts)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// The interrupted run must not be cached: a healthy call with the same
	// inputs still finds the phrase.
	assert.Zero(t, e.CacheStats().MatchCacheSize)
	got = e.FindMatches(context.Background(), text, findings, opts)
	require.Len(t, got, 1)
	assert.Equal(t, "残業なし", got[0].Phrase)
	assert.Equal(t, 1, e.CacheStats().MatchCacheSize)
}

func TestFindMatchesExpiredTimeoutNotCached(t *testing.T) {
	e := NewEngine(0, 0)
	text := "残業なしの求人"
	findings := []models.Finding{findingWithPhrase("残業なし")}

	opts := models.DefaultMatchingOptions()
	opts.ProcessingTimeout = time.Nanosecond
	got := e.FindMatches(context.Background(), text, findings, opts)
	assert.Empty(t, got)
	assert.Zero(t, e.CacheStats().MatchCacheSize)

	opts.ProcessingTimeout = 0
	got = e.FindMatches(context.Background(), text, findings, opts)
	require.Len(t, got, 1)
	assert.Equal(t, "残業なし", got[0].Phrase)
}

func TestFindMatchesResultCached(t *testing.T) {
	e := NewEngine(0, 0)
	text := "残業なしの求人"
	findings := []models.Finding{findingWithPhrase("残業なし")}
	opts := models.DefaultMatchingOptions()

	first := e.FindMatches(context.Background(), text, findings, opts)
	assert.Equal(t, 1, e.CacheStats().MatchCacheSize)
	second := e.FindMatches(context.Background(), text, findings, opts)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, e.CacheStats().MatchCacheSize)

	// A different option set is a different cache entry.
	opts.EnableNormalization = false
	e.FindMatches(context.Background(), text, findings, opts)
	assert.Equal(t, 2, e.CacheStats().MatchCacheSize)
}

func TestFindMatchesCacheBounded(t *testing.T) {
	e := NewEngine(10, 0)
	findings := []models.Finding{findingWithPhrase("残業なし")}
	opts := models.DefaultMatchingOptions()

	for i := 0; i < 25; i++ {
		text := fmt.Sprintf("求人番号%d：残業なし", i)
		e.FindMatches(context.Background(), text, findings, opts)
	}
	stats := e.CacheStats()
	assert.Equal(t, 10, stats.MatchCacheLimit)
	assert.LessOrEqual(t, stats.MatchCacheSize, 10)
}

func TestFindMatchesNoOverlapAcrossFindings(t *testing.T) {
	e := NewEngine(0, 0)
	// Two findings whose phrases overlap in the text; overlap resolution
	// must keep the longer span.
	text := "完全週休二日制で残業なし"
	findings := []models.Finding{
		findingWithPhrase("週休二日"),
		findingWithPhrase("完全週休二日制"),
	}

	matches := e.FindMatches(context.Background(), text, findings, models.DefaultMatchingOptions())
	require.Len(t, matches, 1)
	assert.Equal(t, "完全週休二日制", matches[0].Phrase)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].StartIndex, matches[i-1].EndIndex)
	}
}

func TestClearCaches(t *testing.T) {
	e := NewEngine(0, 0)
	e.FindMatches(context.Background(), "残業なしの求人", []models.Finding{findingWithPhrase("残業なし")}, models.DefaultMatchingOptions())
	require.NotZero(t, e.CacheStats().MatchCacheSize)

	e.ClearCaches()
	stats := e.CacheStats()
	assert.Zero(t, stats.MatchCacheSize)
	assert.Zero(t, stats.SimilarityCacheSize)
}
