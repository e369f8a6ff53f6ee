package matcher

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes runes and drops the combining marks, so
// "coração" becomes "coracao" before the ASCII filter below.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases the input, removes diacritics, maps everything that
// is not a letter or digit to a space and collapses whitespace. It is total
// and idempotent; empty or all-punctuation input yields "".
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens splits the normalized form of s into words.
func Tokens(s string) []string {
	normed := Normalize(s)
	if normed == "" {
		return nil
	}
	return strings.Fields(normed)
}

// normalizeKeywordList normalizes and dedupes a keyword list, dropping
// entries that normalize to the empty string.
func normalizeKeywordList(words []string) []compiledKeyword {
	if len(words) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(words))
	res := make([]compiledKeyword, 0, len(words))
	for _, w := range words {
		normed := Normalize(w)
		if normed == "" {
			continue
		}
		if _, ok := seen[normed]; ok {
			continue
		}
		seen[normed] = struct{}{}
		res = append(res, compiledKeyword{norm: normed, display: strings.TrimSpace(w)})
	}
	return res
}
