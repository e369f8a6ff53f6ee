package matcher

import (
	"strings"
	"unicode/utf8"
)

type synonymVariant struct {
	norm    string
	display string
}

// buildSynonyms maps each normalized canonical keyword to its normalized
// variants. Variants that collapse to the canonical form are dropped.
func buildSynonyms(raw map[string][]string) map[string][]synonymVariant {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string][]synonymVariant, len(raw))
	for canonical, variants := range raw {
		cNorm := Normalize(canonical)
		if cNorm == "" {
			continue
		}
		seen := make(map[string]struct{}, len(variants))
		bucket := make([]synonymVariant, 0, len(variants))
		for _, v := range variants {
			vNorm := Normalize(v)
			if vNorm == "" || vNorm == cNorm {
				continue
			}
			if _, ok := seen[vNorm]; ok {
				continue
			}
			seen[vNorm] = struct{}{}
			bucket = append(bucket, synonymVariant{norm: vNorm, display: strings.TrimSpace(v)})
		}
		out[cNorm] = bucket
	}
	return out
}

// matchKeyword reports whether kw (or one of its synonym variants) occurs
// in the normalized text. The second return value names the variant that
// matched, or "" for a direct hit.
func (c *CompiledRules) matchKeyword(textNorm string, kw compiledKeyword) (bool, string) {
	if keywordInText(textNorm, kw.norm) {
		return true, ""
	}
	for _, v := range c.synonyms[kw.norm] {
		if keywordInText(textNorm, v.norm) {
			return true, v.display
		}
	}
	return false, ""
}

// keywordInText matches phrases as substrings and single words on word
// boundaries, so "dor" does not fire inside "dormir".
func keywordInText(text, kw string) bool {
	if kw == "" || text == "" {
		return false
	}
	if strings.Contains(kw, " ") {
		return strings.Contains(text, kw)
	}
	return containsAsWord(text, kw)
}

func containsAsWord(text, word string) bool {
	start := 0
	for start < len(text) {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		idx += start
		var before rune
		if idx > 0 {
			before, _ = utf8.DecodeLastRuneInString(text[:idx])
		}
		var after rune
		if end := idx + len(word); end < len(text) {
			after, _ = utf8.DecodeRuneInString(text[end:])
		}
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		start = idx + len(word)
	}
	return false
}

func isWordRune(r rune) bool {
	if r == 0 || r == utf8.RuneError {
		return false
	}
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
