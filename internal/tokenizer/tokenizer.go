// Package tokenizer turns raw text into normalized, comparable tokens.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Token is a normalized token together with its byte span in the sanitized
// source text. Start/End are used to map matches back to highlight offsets.
type Token struct {
	Text  string
	Start int
	End   int
}

// foldTransformer strips combining marks: NFD decomposition, remove Mn, recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases a string and strips diacritics ("Café" -> "cafe").
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Sanitize replaces invalid UTF-8 byte sequences with the Unicode replacement
// character. Tokenization never fails on malformed input.
func Sanitize(s string) string {
	return strings.ToValidUTF8(s, string(unicode.ReplacementChar))
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Normalize splits text into lowercase, diacritic-free tokens with byte
// offsets. Runs of letters and digits form tokens; a hyphen joins two runs
// into a compound, which is emitted both as written ("e-mail") and with the
// hyphens removed ("email"), sharing the same span. Empty or symbol-only
// input yields an empty slice.
func Normalize(text string) []Token {
	text = Sanitize(text)

	tokens := make([]Token, 0)

	runStart := -1
	hasHyphen := false
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		// A run may end with a dangling hyphen ("well- known"); trim it.
		raw := strings.TrimRight(text[runStart:end], "-")
		if raw == "" {
			runStart = -1
			hasHyphen = false
			return
		}
		spanEnd := runStart + len(raw)
		folded := Fold(raw)
		tokens = append(tokens, Token{Text: folded, Start: runStart, End: spanEnd})
		if hasHyphen && strings.Contains(folded, "-") {
			joined := strings.ReplaceAll(folded, "-", "")
			if joined != "" {
				tokens = append(tokens, Token{Text: joined, Start: runStart, End: spanEnd})
			}
		}
		runStart = -1
		hasHyphen = false
	}

	for i, r := range text {
		switch {
		case isTokenRune(r):
			if runStart < 0 {
				runStart = i
			}
		case r == '-' && runStart >= 0:
			// A hyphen only continues a run that is already open.
			hasHyphen = true
		default:
			flush(i)
		}
	}
	flush(len(text))

	return tokens
}

// Terms returns just the normalized token strings of text.
func Terms(text string) []string {
	tokens := Normalize(text)
	terms := make([]string, len(tokens))
	for i, t := range tokens {
		terms[i] = t.Text
	}
	return terms
}
