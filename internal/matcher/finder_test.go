// file: internal/matcher/finder_test.go
// version: 1.2.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c10

package matcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkurosawa/honne/internal/models"
	"github.com/mkurosawa/honne/internal/similarity"
)

func newTestFinder() *Finder {
	return NewFinder(similarity.NewScorer(similarity.DefaultCacheSize))
}

func TestExactMatchPrecedence(t *testing.T) {
	f := newTestFinder()
	text := "年俸500万円のITエンジニア求人"
	opts := models.DefaultMatchingOptions()
	opts.EnableNormalization = false

	matches := f.FindPhrase(context.Background(), text, "500万円", opts)
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, models.MatchExact, m.MatchType)
	assert.Equal(t, 1.0, m.Confidence)
	assert.Equal(t, "500万円", text[m.StartIndex:m.EndIndex])
	assert.Equal(t, "500万円", m.Phrase)
}

func TestExactMatchMultipleOccurrences(t *testing.T) {
	f := newTestFinder()
	text := "研修あり。資格取得支援の研修あり。"
	matches := f.FindPhrase(context.Background(), text, "研修あり", models.DefaultMatchingOptions())
	require.Len(t, matches, 2)
	assert.Less(t, matches[0].StartIndex, matches[1].StartIndex)
	for _, m := range matches {
		assert.Equal(t, "研修あり", text[m.StartIndex:m.EndIndex])
	}
}

func TestNormalizedMatchRecoversWidthVariance(t *testing.T) {
	f := newTestFinder()
	text := "募集職種はＩＴエンジニアです"
	opts := models.DefaultMatchingOptions()
	opts.EnableExactMatch = false

	matches := f.FindPhrase(context.Background(), text, "ITエンジニア", opts)
	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, models.MatchNormalized, m.MatchType)
	assert.Equal(t, 0.9, m.Confidence)
	// Returned phrase is the original full-width substring, not the query
	assert.Equal(t, "ＩＴエンジニア", m.Phrase)
	assert.Equal(t, m.Phrase, text[m.StartIndex:m.EndIndex])
	assert.Equal(t, "ITエンジニア", m.OriginalPhrase)
}

func TestExactShortCircuitsNormalized(t *testing.T) {
	f := newTestFinder()
	// Phrase occurs both literally and in full-width form. The exact stage
	// wins and the full-width occurrence is never reported.
	text := "IT研修およびＩＴ研修の制度あり"
	matches := f.FindPhrase(context.Background(), text, "IT研修", models.DefaultMatchingOptions())
	require.Len(t, matches, 1)
	assert.Equal(t, models.MatchExact, matches[0].MatchType)
	assert.Equal(t, 0, matches[0].StartIndex)
}

func TestShortPhraseSkipped(t *testing.T) {
	f := newTestFinder()
	opts := models.DefaultMatchingOptions()
	opts.EnableFuzzyMatching = true
	for _, phrase := range []string{"", " ", "あ", "x"} {
		assert.Empty(t, f.FindPhrase(context.Background(), "ああああ x x", phrase, opts),
			"phrase %q should be skipped", phrase)
	}
}

func TestEmptyTextSafe(t *testing.T) {
	f := newTestFinder()
	assert.Empty(t, f.FindPhrase(context.Background(), "", "残業なし", models.DefaultMatchingOptions()))
}

func TestNormalizedMatchAcrossNewline(t *testing.T) {
	f := newTestFinder()
	// Newlines normalize to spaces, so a phrase with a space matches text
	// with a line break.
	text := "東京\n勤務"
	opts := models.DefaultMatchingOptions()
	opts.EnableExactMatch = false
	matches := f.FindPhrase(context.Background(), text, "東京 勤務", opts)
	require.Len(t, matches, 1)
	assert.Equal(t, "東京\n勤務", matches[0].Phrase)
}

func TestStagesDisabled(t *testing.T) {
	f := newTestFinder()
	opts := models.MatchingOptions{} // everything off
	assert.Empty(t, f.FindPhrase(context.Background(), "残業なしの求人", "残業なし", opts))
}
