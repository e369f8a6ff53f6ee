package matcher

import (
	"fmt"
	"strings"
)

var mergeMarkers = []string{"<<<<<<<", "=======", ">>>>>>>"}

// CheckMergeMarkers rejects rule files that still carry unresolved git
// conflict markers, before they get half-parsed into a broken table.
func CheckMergeMarkers(data []byte) error {
	for i, line := range strings.Split(string(data), "\n") {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, mergeMarkers[0]) || strings.HasPrefix(s, mergeMarkers[2]) || s == mergeMarkers[1] {
			return fmt.Errorf("merge conflict marker at line %d: %s", i+1, s)
		}
	}
	return nil
}

// SlugID derives a stable identifier from a display name:
// "Odontologia (Dentista)" becomes "odontologia_dentista".
func SlugID(name string) string {
	normed := Normalize(strings.ReplaceAll(name, "&", " e "))
	if normed == "" {
		return "unknown"
	}
	return strings.Join(strings.Fields(normed), "_")
}

// NormalizeRuleSet cleans a hand-edited rule table: missing ids are
// slugged from the display name, keyword lists are deduped by normalized
// form, and specialties left without keywords are rejected. The returned
// table is validated by a full compile.
func NormalizeRuleSet(rs RuleSet) (RuleSet, error) {
	rs.ApplyDefaults()
	for i := range rs.Specialties {
		sp := &rs.Specialties[i]
		if strings.TrimSpace(sp.ID) == "" {
			sp.ID = SlugID(sp.Name())
		}
		sp.Strong = dedupeKeepOrder(sp.Strong)
		sp.Weak = dedupeKeepOrder(sp.Weak)
	}
	for canonical, variants := range rs.Synonyms {
		rs.Synonyms[canonical] = dedupeKeepOrder(variants)
	}
	if _, err := Compile(rs); err != nil {
		return rs, err
	}
	return rs, nil
}

// MergeSynonyms folds extra synonym entries into the table and bumps its
// version. Existing variants are kept; duplicates (by normalized form)
// are dropped. The generalist flag is set on the fallback specialty so
// the penalty rule applies to it.
func MergeSynonyms(rs RuleSet, extra map[string][]string) RuleSet {
	if rs.Synonyms == nil {
		rs.Synonyms = make(map[string][]string, len(extra))
	}
	for canonical, variants := range extra {
		merged := append(append([]string(nil), rs.Synonyms[canonical]...), variants...)
		rs.Synonyms[canonical] = dedupeKeepOrder(merged)
	}
	for i := range rs.Specialties {
		if rs.Specialties[i].ID == rs.Fallback {
			rs.Specialties[i].Generalist = true
		}
	}
	rs.Version++
	return rs
}

// dedupeKeepOrder drops entries whose normalized form was already seen,
// keeping the first spelling.
func dedupeKeepOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := Normalize(item)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(item))
	}
	return out
}
