// file: internal/matcher/fuzzy.go
// version: 2.1.0
// guid: 1d2e3f4a-5b6c-7d8e-9f0a-1b2c3d4e5f61

package matcher

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mkurosawa/honne/internal/models"
	"github.com/mkurosawa/honne/internal/textnorm"
)

const (
	// maxFuzzyIterations caps how many candidate windows one fuzzy search
	// scores; the scan step grows with the search range to stay under it.
	maxFuzzyIterations = 200
	// ctxCheckInterval is how often the scan loops poll for cancellation.
	ctxCheckInterval = 20
	// preciseRefineBelow triggers the unit-step refinement pass when the
	// best windowed score is below this.
	preciseRefineBelow = 0.95
	// preciseRefineRadius is the refinement scan radius in runes.
	preciseRefineRadius = 10
)

// fuzzyMatch runs the windowed approximate search. Both sides are flexibly
// normalized first; if the phrase does not survive even that folding as a
// substring, there is nothing trustworthy to anchor a window on and the
// search aborts.
func (f *Finder) fuzzyMatch(ctx context.Context, text, phrase string, opts models.MatchingOptions) ([]models.EnhancedPhraseMatch, error) {
	flexText := textnorm.NormalizeFlexible(text)
	flexPhrase := textnorm.NormalizeFlexible(phrase)
	if flexPhrase == "" || flexText == "" {
		return nil, nil
	}
	// Cheap subsequence screen before the substring scan.
	if !fuzzy.Match(flexPhrase, flexText) {
		return nil, nil
	}
	flexIdx := strings.Index(flexText, flexPhrase)
	if flexIdx < 0 {
		return nil, nil
	}

	textRunes := []rune(text)
	phraseLen := len([]rune(phrase))
	if phraseLen > len(textRunes) {
		return nil, nil
	}

	// Estimate the original-text start by linear proportion, then scan a
	// bounded window around it.
	estimate := 0
	if len(flexText) > 0 {
		estimate = flexIdx * len(textRunes) / len(flexText)
	}
	window := opts.MaxSearchRange
	if window <= 0 {
		window = models.DefaultMatchingOptions().MaxSearchRange
	}
	if opts.EnableDynamicWindow && phraseLen*2 > window {
		window = phraseLen * 2
	}

	lo := estimate - window
	if lo < 0 {
		lo = 0
	}
	hi := estimate + window
	if limit := len(textRunes) - phraseLen; hi > limit {
		hi = limit
	}
	if hi < lo {
		return nil, nil
	}

	step := scanStep(hi - lo)

	threshold := opts.FuzzyThreshold
	if threshold <= 0 {
		threshold = models.DefaultMatchingOptions().FuzzyThreshold
	}

	bestPos, bestScore, err := f.scanWindows(ctx, textRunes, flexPhrase, phraseLen, lo, hi, step, opts.EnableSimilarityCache)
	if err != nil {
		return nil, err
	}
	if bestPos < 0 || bestScore < threshold {
		return nil, nil
	}

	if opts.EnablePreciseFuzzy && bestScore < preciseRefineBelow {
		rlo := bestPos - preciseRefineRadius
		if rlo < lo {
			rlo = lo
		}
		rhi := bestPos + preciseRefineRadius
		if rhi > hi {
			rhi = hi
		}
		if pos, score, rerr := f.scanWindows(ctx, textRunes, flexPhrase, phraseLen, rlo, rhi, 1, opts.EnableSimilarityCache); rerr == nil && score > bestScore {
			bestPos, bestScore = pos, score
		}
	}

	start := byteOffset(text, textRunes, bestPos)
	end := byteOffset(text, textRunes, bestPos+phraseLen)
	return []models.EnhancedPhraseMatch{{
		StartIndex:     start,
		EndIndex:       end,
		Phrase:         text[start:end],
		OriginalPhrase: phrase,
		MatchType:      models.MatchFuzzy,
		Confidence:     bestScore,
	}}, nil
}

// scanStep returns the stride that keeps scanning a span of candidate
// positions within the iteration budget: span/step+1 <= maxFuzzyIterations.
func scanStep(span int) int {
	return span/maxFuzzyIterations + 1
}

// scanWindows scores candidate windows of phraseLen runes between lo and hi
// (inclusive) at the given step, returning the best position and score.
// Cancellation is polled every ctxCheckInterval iterations; on cancellation
// the best result so far is returned with the context error.
func (f *Finder) scanWindows(ctx context.Context, textRunes []rune, flexPhrase string, phraseLen, lo, hi, step int, useCache bool) (int, float64, error) {
	similarity := f.scorer.Similarity
	if !useCache {
		similarity = f.scorer.SimilarityUncached
	}
	bestPos := -1
	bestScore := 0.0
	iterations := 0
	for pos := lo; pos <= hi; pos += step {
		iterations++
		if iterations%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return bestPos, bestScore, err
			}
		}
		candidate := textnorm.NormalizeFlexible(string(textRunes[pos : pos+phraseLen]))
		score := similarity(candidate, flexPhrase)
		if score > bestScore {
			bestScore = score
			bestPos = pos
		}
	}
	return bestPos, bestScore, nil
}

// byteOffset converts a rune index into a byte offset of text.
func byteOffset(text string, runes []rune, runeIdx int) int {
	if runeIdx >= len(runes) {
		return len(text)
	}
	off := 0
	for i := 0; i < runeIdx; i++ {
		off += utf8.RuneLen(runes[i])
	}
	return off
}
