package search

import (
	"sort"
	"strings"
)

// Markers wrapped around matched substrings in highlighted output.
const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// renderHighlight wraps the given spans of text in highlight markers.
// Overlapping or touching spans are merged first (hyphen compounds emit two
// tokens over the same span). Returns "" when there is nothing to highlight,
// so callers can omit the field. The source text is never mutated.
func renderHighlight(text string, spans []span) string {
	if len(spans) == 0 {
		return ""
	}

	merged := mergeSpans(spans)

	var b strings.Builder
	b.Grow(len(text) + len(merged)*(len(markOpen)+len(markClose)))

	last := 0
	for _, sp := range merged {
		if sp.start < last || sp.end > len(text) {
			continue
		}
		b.WriteString(text[last:sp.start])
		b.WriteString(markOpen)
		b.WriteString(text[sp.start:sp.end])
		b.WriteString(markClose)
		last = sp.end
	}
	b.WriteString(text[last:])
	return b.String()
}

func mergeSpans(spans []span) []span {
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	merged := sorted[:1]
	for _, sp := range sorted[1:] {
		lastIdx := len(merged) - 1
		if sp.start <= merged[lastIdx].end {
			if sp.end > merged[lastIdx].end {
				merged[lastIdx].end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}
