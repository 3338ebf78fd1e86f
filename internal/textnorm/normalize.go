// file: internal/textnorm/normalize.go
// version: 1.3.0
// guid: 2a3b4c5d-6e7f-8a9b-0c1d-2e3f4a5b6c7d

// Package textnorm canonicalizes Japanese text so that different renderings
// of the same content (full-width vs half-width, spacing, punctuation)
// become comparable, and maps positions in normalized text back to the
// original string.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

const (
	fullwidthASCIIStart = 0xFF01 // ！
	fullwidthASCIIEnd   = 0xFF5E // ～
	fullwidthOffset     = 0xFEE0
)

// fullFragment is the per-rune transform of the full normalizer: any
// whitespace becomes a single ASCII space, ideographic sentence punctuation
// is dropped, the full-width ASCII block is shifted to half-width, and
// remaining full-width forms are narrowed where a narrow variant exists.
func fullFragment(r rune) string {
	switch {
	case unicode.IsSpace(r):
		return " "
	case r == '、' || r == '。':
		return ""
	case r >= fullwidthASCIIStart && r <= fullwidthASCIIEnd:
		return string(r - fullwidthOffset)
	}
	if p := width.LookupRune(r); p.Kind() == width.EastAsianFullwidth {
		if n := p.Narrow(); n != 0 {
			return string(n)
		}
	}
	return string(r)
}

// lightFragment only folds full-width digits and letters and unifies
// whitespace. It skips symbol handling for performance-sensitive callers.
func lightFragment(r rune) string {
	switch {
	case unicode.IsSpace(r):
		return " "
	case r >= '０' && r <= '９', r >= 'Ａ' && r <= 'Ｚ', r >= 'ａ' && r <= 'ｚ':
		return string(r - fullwidthOffset)
	}
	return string(r)
}

// flexFragment additionally treats newlines, slashes, commas and periods as
// generic separators and lowercases, so phrases survive line-wrap variation.
func flexFragment(r rune) string {
	switch r {
	case '\n', '\r', '/', '／', ',', '，', '.', '．', '、', '。':
		return " "
	}
	return strings.ToLower(fullFragment(r))
}

// mapEntry records, for the rune starting at byte offset orig in the
// original string, the byte offset norm in the normalized string at which
// that rune's contribution begins.
type mapEntry struct {
	orig int
	norm int
}

// build runs one normalization pass. Consecutive spaces collapse to one and
// leading/trailing spaces are dropped: a pending space is only flushed when
// a later non-space fragment arrives, and is attributed to the whitespace
// run that produced it. When wantMap is set, the returned entries cover
// every rune of the original plus a trailing sentinel at (len(text), len(norm)).
func build(text string, fragment func(rune) string, wantMap bool) (string, []mapEntry) {
	var b strings.Builder
	b.Grow(len(text))
	var entries []mapEntry
	if wantMap {
		entries = make([]mapEntry, 0, len(text)/2+2)
	}
	pendingSpace := false
	for i, r := range text {
		frag := fragment(r)
		switch frag {
		case " ":
			if wantMap {
				entries = append(entries, mapEntry{orig: i, norm: b.Len()})
			}
			if b.Len() > 0 {
				pendingSpace = true
			}
		case "":
			if wantMap {
				entries = append(entries, mapEntry{orig: i, norm: b.Len()})
			}
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			if wantMap {
				entries = append(entries, mapEntry{orig: i, norm: b.Len()})
			}
			b.WriteString(frag)
		}
	}
	if wantMap {
		entries = append(entries, mapEntry{orig: len(text), norm: b.Len()})
	}
	return b.String(), entries
}

// Normalize applies the full normalization: full-width to half-width,
// symbol unification, whitespace collapsing and sentence punctuation
// stripping. It is total and idempotent; empty or invalid input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	norm, _ := build(text, fullFragment, false)
	return norm
}

// NormalizeLight folds only full-width digits/letters and whitespace.
func NormalizeLight(text string) string {
	if text == "" {
		return ""
	}
	norm, _ := build(text, lightFragment, false)
	return norm
}

// NormalizeFlexible applies the full normalization plus separator collapsing
// and lowercasing, for fuzzy comparison across formatting variation.
func NormalizeFlexible(text string) string {
	if text == "" {
		return ""
	}
	norm, _ := build(text, flexFragment, false)
	return norm
}
