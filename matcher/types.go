package matcher

import "strings"

// Specialty is one rule of the table: a suggestion target plus the
// keywords that trigger it. Strong keywords are specific complaints,
// weak keywords are supporting context.
type Specialty struct {
	ID          string   `yaml:"id" json:"id"`
	DisplayName string   `yaml:"displayName" json:"displayName"`
	Strong      []string `yaml:"strong" json:"strong"`
	Weak        []string `yaml:"weak,omitempty" json:"weak,omitempty"`
	Confidence  float64  `yaml:"confidence,omitempty" json:"confidence,omitempty"`
	Generalist  bool     `yaml:"generalist,omitempty" json:"generalist,omitempty"`
}

// Name returns the display name, falling back to the id.
func (s Specialty) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.ID
}

// Scoring holds the weights applied to keyword hits.
type Scoring struct {
	StrongWeight int `yaml:"strongWeight" json:"strongWeight"`
	WeakWeight   int `yaml:"weakWeight" json:"weakWeight"`
	MinScore     int `yaml:"minScore" json:"minScore"`
}

// RuleSet is the full rule table as stored on disk. Declaration order of
// Specialties defines tie-break priority. A RuleSet is loaded once at
// startup, compiled, and never mutated afterwards.
type RuleSet struct {
	Version     int                 `yaml:"version" json:"version"`
	Scoring     Scoring             `yaml:"scoring" json:"scoring"`
	Fallback    string              `yaml:"fallbackSpecialtyId,omitempty" json:"fallbackSpecialtyId,omitempty"`
	Synonyms    map[string][]string `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
	Specialties []Specialty         `yaml:"specialties" json:"specialties"`
}

// ApplyDefaults populates zero scoring values with the stock weights and
// gives confidence-less specialties the neutral base.
func (rs *RuleSet) ApplyDefaults() {
	if rs.Scoring.StrongWeight <= 0 {
		rs.Scoring.StrongWeight = 2
	}
	if rs.Scoring.WeakWeight <= 0 {
		rs.Scoring.WeakWeight = 1
	}
	if rs.Scoring.MinScore <= 0 {
		rs.Scoring.MinScore = 1
	}
	for i := range rs.Specialties {
		if rs.Specialties[i].Confidence == 0 {
			rs.Specialties[i].Confidence = defaultBaseConfidence
		}
	}
}

// Suggestion is the result of matching one query against the rule table.
// An empty SpecialtyID means no suggestion.
type Suggestion struct {
	SpecialtyID   string   `json:"specialtyId,omitempty"`
	SpecialtyName string   `json:"specialtyName,omitempty"`
	Score         int      `json:"score"`
	StrongHits    []string `json:"strongHits,omitempty"`
	WeakHits      []string `json:"weakHits,omitempty"`
	Confidence    float64  `json:"confidence,omitempty"`
	Why           string   `json:"why,omitempty"`
	Fallback      bool     `json:"fallback,omitempty"`
}

// Matched reports whether the query produced a suggestion.
func (s Suggestion) Matched() bool {
	return s.SpecialtyID != ""
}

// MatchedKeywords returns strong and weak hits in one list.
func (s Suggestion) MatchedKeywords() []string {
	if len(s.StrongHits) == 0 && len(s.WeakHits) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.StrongHits)+len(s.WeakHits))
	out = append(out, s.StrongHits...)
	out = append(out, s.WeakHits...)
	return out
}

// Terms renders the matched keywords for display.
func (s Suggestion) Terms() string {
	return strings.Join(s.MatchedKeywords(), ", ")
}

type compiledKeyword struct {
	norm    string
	display string
}

type compiledRule struct {
	spec   Specialty
	strong []compiledKeyword
	weak   []compiledKeyword
}

// CompiledRules is the immutable, pre-normalized form of a RuleSet. It is
// safe for unlimited concurrent readers.
type CompiledRules struct {
	scoring  Scoring
	rules    []compiledRule
	synonyms map[string][]synonymVariant
	fallback *Specialty
}

// Len returns the number of rules in the table.
func (c *CompiledRules) Len() int {
	return len(c.rules)
}
