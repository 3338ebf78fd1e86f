// file: internal/matcher/dedupe.go
// version: 1.0.0
// guid: 2e3f4a5b-6c7d-8e9f-0a1b-2c3d4e5f6a72

package matcher

import (
	"sort"

	"github.com/mkurosawa/honne/internal/models"
)

// Dedupe removes duplicate spans and resolves overlaps. Among overlapping
// candidates the longer span wins, ties broken by higher confidence; when a
// later candidate beats the previously kept one, the kept one is retracted.
// Output is sorted by start index ascending and contains no overlaps.
func Dedupe(matches []models.EnhancedPhraseMatch) []models.EnhancedPhraseMatch {
	if len(matches) <= 1 {
		return matches
	}

	sorted := make([]models.EnhancedPhraseMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartIndex != sorted[j].StartIndex {
			return sorted[i].StartIndex < sorted[j].StartIndex
		}
		if sorted[i].EndIndex != sorted[j].EndIndex {
			return sorted[i].EndIndex < sorted[j].EndIndex
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})

	out := sorted[:0:0]
	for _, cur := range sorted {
		if len(out) == 0 {
			out = append(out, cur)
			continue
		}
		last := &out[len(out)-1]
		if cur.StartIndex == last.StartIndex && cur.EndIndex == last.EndIndex {
			// identical span, lower or equal confidence by sort order
			continue
		}
		if last.EndIndex > cur.StartIndex {
			if spanBeats(cur, *last) {
				out[len(out)-1] = cur
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}

// spanBeats reports whether a should replace b under overlap resolution:
// longer span wins, ties go to the higher confidence.
func spanBeats(a, b models.EnhancedPhraseMatch) bool {
	alen := a.EndIndex - a.StartIndex
	blen := b.EndIndex - b.StartIndex
	if alen != blen {
		return alen > blen
	}
	return a.Confidence > b.Confidence
}
