// file: internal/textnorm/mapping.go
// version: 1.2.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

package textnorm

import "sort"

// Mapper holds one normalization pass over an original string together with
// the per-rune mapping table needed to project normalized positions back to
// original byte offsets. Normalization is not length-preserving, so naive
// index arithmetic is wrong; the table is mandatory.
type Mapper struct {
	original string
	norm     string
	entries  []mapEntry
}

// NewMapper builds the mapping table for the full normalizer. The table is
// built once per call and discarded with the Mapper.
func NewMapper(original string) *Mapper {
	norm, entries := build(original, fullFragment, true)
	return &Mapper{original: original, norm: norm, entries: entries}
}

// Normalized returns the fully normalized text. It equals Normalize(original).
func (m *Mapper) Normalized() string {
	return m.norm
}

// MapRange projects the normalized byte range [normStart, normStart+normLen)
// back to byte offsets in the original string. It returns ok=false when the
// range does not land on consistent rune boundaries; callers must then drop
// the candidate rather than fabricate a position.
func (m *Mapper) MapRange(normStart, normLen int) (start, end int, ok bool) {
	if normStart < 0 || normLen <= 0 || normStart+normLen > len(m.norm) {
		return 0, 0, false
	}
	// entries[i] covers normalized bytes [entries[i].norm, entries[i+1].norm)
	// for the rune at original offset entries[i].orig; the last entry is a
	// sentinel. Runes that normalize to nothing cover an empty range and are
	// skipped naturally by searching on the following entry.
	n := len(m.entries) - 1
	if n < 1 {
		return 0, 0, false
	}
	i := sort.Search(n, func(i int) bool { return m.entries[i+1].norm > normStart })
	if i == n || m.entries[i].norm != normStart {
		return 0, 0, false
	}
	start = m.entries[i].orig

	target := normStart + normLen
	j := sort.Search(n, func(j int) bool { return m.entries[j+1].norm >= target })
	if j == n || m.entries[j+1].norm != target {
		return 0, 0, false
	}
	end = m.entries[j+1].orig
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}
