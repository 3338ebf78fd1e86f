// file: internal/matcher/finder.go
// version: 1.3.0
// guid: 0c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e60

// Package matcher locates the spans of LLM-reported phrases in the original
// posting text. Matching runs in strict priority order: exact containment,
// then width/punctuation-normalized containment with position remapping,
// then an optional windowed fuzzy search.
package matcher

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/mkurosawa/honne/internal/models"
	"github.com/mkurosawa/honne/internal/similarity"
	"github.com/mkurosawa/honne/internal/textnorm"
)

// MinPhraseRunes is the minimum phrase length considered matchable. Shorter
// phrases produce too many spurious hits to be useful.
const MinPhraseRunes = 2

const (
	confidenceExact      = 1.0
	confidenceNormalized = 0.9
)

// Finder matches a single phrase against the full text.
type Finder struct {
	scorer *similarity.Scorer
}

// NewFinder creates a finder using the given similarity scorer for the
// fuzzy stage.
func NewFinder(scorer *similarity.Scorer) *Finder {
	return &Finder{scorer: scorer}
}

// FindPhrase returns all candidate matches for one phrase. Each stage that
// produces at least one result short-circuits the remaining stages. The
// function never panics past its boundary; internal failures log and yield
// zero matches.
func (f *Finder) FindPhrase(ctx context.Context, text, phrase string, opts models.MatchingOptions) []models.EnhancedPhraseMatch {
	phrase = strings.TrimSpace(phrase)
	if text == "" || utf8.RuneCountInString(phrase) < MinPhraseRunes {
		return nil
	}

	return safePhraseSearch(phrase, opts, func() ([]models.EnhancedPhraseMatch, error) {
		if opts.EnableExactMatch {
			if matches := exactMatches(text, phrase); len(matches) > 0 {
				debugStage(opts, "exact", phrase, len(matches))
				return matches, nil
			}
		}
		if opts.EnableNormalization {
			if matches := normalizedMatches(text, phrase, opts); len(matches) > 0 {
				debugStage(opts, "normalized", phrase, len(matches))
				return matches, nil
			}
		}
		if opts.EnableFuzzyMatching {
			matches, err := f.fuzzyMatch(ctx, text, phrase, opts)
			if err != nil {
				logMatchError(errFuzzyMatching, phrase, opts, err)
				return nil, nil
			}
			if len(matches) > 0 {
				debugStage(opts, "fuzzy", phrase, len(matches))
			}
			return matches, nil
		}
		return nil, nil
	})
}

// exactMatches scans for literal occurrences of phrase in text.
func exactMatches(text, phrase string) []models.EnhancedPhraseMatch {
	var out []models.EnhancedPhraseMatch
	for off := 0; off < len(text); {
		i := strings.Index(text[off:], phrase)
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(phrase)
		out = append(out, models.EnhancedPhraseMatch{
			StartIndex:     start,
			EndIndex:       end,
			Phrase:         phrase,
			OriginalPhrase: phrase,
			MatchType:      models.MatchExact,
			Confidence:     confidenceExact,
		})
		off = end
	}
	return out
}

// normalizedMatches searches in normalized space and remaps every hit back
// to original coordinates. Hits whose normalized span cannot be mapped to a
// consistent original span are dropped, never approximated.
func normalizedMatches(text, phrase string, opts models.MatchingOptions) []models.EnhancedPhraseMatch {
	mapper := textnorm.NewMapper(text)
	normText := mapper.Normalized()
	normPhrase := textnorm.Normalize(phrase)
	if normPhrase == "" || normText == "" {
		return nil
	}

	var out []models.EnhancedPhraseMatch
	for off := 0; off < len(normText); {
		i := strings.Index(normText[off:], normPhrase)
		if i < 0 {
			break
		}
		normStart := off + i
		start, end, ok := mapper.MapRange(normStart, len(normPhrase))
		if ok {
			out = append(out, models.EnhancedPhraseMatch{
				StartIndex:     start,
				EndIndex:       end,
				Phrase:         text[start:end],
				OriginalPhrase: phrase,
				MatchType:      models.MatchNormalized,
				Confidence:     confidenceNormalized,
			})
		} else {
			logMatchError(errPositionCalculation, phrase, opts,
				errMapFailed(normStart, len(normPhrase)))
		}
		off = normStart + len(normPhrase)
	}
	return out
}

type mapFailedError struct {
	start, length int
}

func (e mapFailedError) Error() string {
	return "no consistent original span for normalized range"
}

func errMapFailed(start, length int) error {
	return mapFailedError{start: start, length: length}
}

func debugStage(opts models.MatchingOptions, stage, phrase string, count int) {
	if opts.Debug {
		log.Printf("[DEBUG] matcher: stage=%s phrase=%q matches=%d", stage, phrase, count)
	}
}
