// Package fuzzy implements approximate string matching on top of a bounded
// Damerau-Levenshtein distance.
package fuzzy

// DistanceWithLimit computes the Damerau-Levenshtein distance between two
// strings (insertions, deletions, substitutions, and adjacent transpositions),
// working on runes so Unicode input is handled correctly. It returns
// maxDistance + 1 as soon as the distance is known to exceed maxDistance.
func DistanceWithLimit(a, b string, maxDistance int) int {
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	lengthDiff := lenA - lenB
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}
	if lengthDiff > maxDistance {
		return maxDistance + 1
	}

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// Three rolling rows: transpositions need the i-2 row as well.
	prevPrevRow := make([]int, lenB+1)
	prevRow := make([]int, lenB+1)
	currRow := make([]int, lenB+1)

	for j := 0; j <= lenB; j++ {
		prevRow[j] = j
	}

	for i := 1; i <= lenA; i++ {
		currRow[0] = i
		minInRow := i

		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			deletion := prevRow[j] + 1
			insertion := currRow[j-1] + 1
			substitution := prevRow[j-1] + cost

			currRow[j] = min3(deletion, insertion, substitution)

			if i > 1 && j > 1 &&
				runesA[i-1] == runesB[j-2] &&
				runesA[i-2] == runesB[j-1] {
				transposition := prevPrevRow[j-2] + cost
				if transposition < currRow[j] {
					currRow[j] = transposition
				}
			}

			if currRow[j] < minInRow {
				minInRow = currRow[j]
			}
		}

		// Once every cell in a row exceeds the limit the result must too.
		if minInRow > maxDistance {
			return maxDistance + 1
		}

		prevPrevRow, prevRow, currRow = prevRow, currRow, prevPrevRow
	}

	return prevRow[lenB]
}

// lengthRatioLimit bounds how much longer one token may be than the other
// before Similarity skips the distance computation entirely.
const lengthRatioLimit = 2

// Similarity scores how close two normalized tokens are, in [0, 1].
// Equal tokens short-circuit to 1. Tokens whose lengths differ by more than
// the shorter token's length score 0 without computing a distance, which
// bounds the worst-case cost per comparison. Otherwise the score is the
// Damerau-Levenshtein distance normalized by the longer token's rune length.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	lenA := len([]rune(a))
	lenB := len([]rune(b))
	shorter, longer := lenA, lenB
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if longer > shorter*lengthRatioLimit {
		return 0
	}

	dist := DistanceWithLimit(a, b, longer)
	if dist >= longer {
		return 0
	}
	return 1 - float64(dist)/float64(longer)
}

// HasPrefixFold reports whether token starts with prefix. Both arguments are
// expected to be already normalized.
func HasPrefixFold(token, prefix string) bool {
	return len(prefix) <= len(token) && token[:len(prefix)] == prefix
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
