package matcher

import (
	"fmt"
	"strings"
)

const (
	defaultBaseConfidence = 0.55
	confidenceCeiling     = 0.95

	// DefaultDisclaimer accompanies every rendered suggestion.
	DefaultDisclaimer = "Este app sugere uma especialidade com base no texto informado. " +
		"Não realiza diagnóstico, não prescreve e não define urgência."

	// DefaultNextStep is the generic follow-up advice shown with a result.
	DefaultNextStep = "Busque uma avaliação com um(a) profissional de saúde."

	fallbackWhy = "Não encontrei termos específicos suficientes; sugerindo uma opção mais geral."
	genericWhy  = "Termos relacionados encontrados no texto."

	maxWhyTerms = 6
)

type scoredRule struct {
	rule       *compiledRule
	order      int
	score      int
	strongHits []string
	weakHits   []string
}

// Suggest matches free text against the compiled table and returns the
// best suggestion, or an unmatched Suggestion (optionally carrying the
// configured fallback specialty) when no rule reaches the minimum score.
// It is a pure function of the table and the query; arbitrary input never
// fails, it simply yields no suggestion.
func (c *CompiledRules) Suggest(text string) Suggestion {
	textNorm := Normalize(text)

	var best, runnerUp *scoredRule
	for i := range c.rules {
		cur := c.scoreRule(textNorm, &c.rules[i], i)
		if cur == nil {
			continue
		}
		if c.better(cur, best) {
			if best != nil && c.better(best, runnerUp) {
				runnerUp = best
			}
			best = cur
		} else if c.better(cur, runnerUp) {
			runnerUp = cur
		}
	}

	if best == nil {
		return c.noMatch()
	}

	// A generalist win with a close, more specific runner-up yields to the
	// runner-up: "dor no dente e cansaço" should reach the dentist, not the
	// general practitioner.
	if best.rule.spec.Generalist && runnerUp != nil && !runnerUp.rule.spec.Generalist &&
		runnerUp.score > 0 && runnerUp.score >= best.score-1 {
		best = runnerUp
	}

	sp := best.rule.spec
	return Suggestion{
		SpecialtyID:   sp.ID,
		SpecialtyName: sp.Name(),
		Score:         best.score,
		StrongHits:    best.strongHits,
		WeakHits:      best.weakHits,
		Confidence:    confidenceFromScore(sp.Confidence, best.score),
		Why:           whyText(best.strongHits, best.weakHits),
	}
}

// scoreRule returns nil when the rule does not reach the minimum score.
func (c *CompiledRules) scoreRule(textNorm string, rule *compiledRule, order int) *scoredRule {
	if textNorm == "" {
		return nil
	}
	var strongHits, weakHits []string
	for _, kw := range rule.strong {
		if ok, via := c.matchKeyword(textNorm, kw); ok {
			strongHits = append(strongHits, hitLabel(kw, via))
		}
	}
	for _, kw := range rule.weak {
		if ok, via := c.matchKeyword(textNorm, kw); ok {
			weakHits = append(weakHits, hitLabel(kw, via))
		}
	}
	score := c.scoring.StrongWeight*len(strongHits) + c.scoring.WeakWeight*len(weakHits)
	if score < c.scoring.MinScore {
		return nil
	}
	return &scoredRule{
		rule:       rule,
		order:      order,
		score:      score,
		strongHits: strongHits,
		weakHits:   weakHits,
	}
}

// better ranks candidates by weighted score, then strong-hit count, then
// base confidence. Full ties keep the earlier-declared rule, which makes
// the ranking deterministic for any table ordering.
func (c *CompiledRules) better(a, b *scoredRule) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	if a.score != b.score {
		return a.score > b.score
	}
	if len(a.strongHits) != len(b.strongHits) {
		return len(a.strongHits) > len(b.strongHits)
	}
	if a.rule.spec.Confidence != b.rule.spec.Confidence {
		return a.rule.spec.Confidence > b.rule.spec.Confidence
	}
	return a.order < b.order
}

func (c *CompiledRules) noMatch() Suggestion {
	if c.fallback == nil {
		return Suggestion{}
	}
	return Suggestion{
		SpecialtyID:   c.fallback.ID,
		SpecialtyName: c.fallback.Name(),
		Confidence:    confidenceFromScore(c.fallback.Confidence, 0),
		Why:           fallbackWhy,
		Fallback:      true,
	}
}

func hitLabel(kw compiledKeyword, viaSynonym string) string {
	if viaSynonym == "" {
		return kw.display
	}
	return fmt.Sprintf("%s (sin.: %s)", kw.display, viaSynonym)
}

func whyText(strongHits, weakHits []string) string {
	var parts []string
	if len(strongHits) > 0 {
		parts = append(parts, "Sinais fortes: "+strings.Join(capTerms(strongHits), ", "))
	}
	if len(weakHits) > 0 {
		parts = append(parts, "Sinais fracos: "+strings.Join(capTerms(weakHits), ", "))
	}
	if len(parts) == 0 {
		return genericWhy
	}
	return strings.Join(parts, " | ")
}

func capTerms(terms []string) []string {
	if len(terms) <= maxWhyTerms {
		return terms
	}
	return terms[:maxWhyTerms]
}

func confidenceFromScore(base float64, score int) float64 {
	if base <= 0 {
		base = defaultBaseConfidence
	}
	extra := 0.02 * float64(score-1)
	if extra < 0 {
		extra = 0
	}
	if conf := base + extra; conf < confidenceCeiling {
		return conf
	}
	return confidenceCeiling
}
