package matcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRulesFile is where the bootstrap rule table is written.
const DefaultRulesFile = "rules.yaml"

// DefaultSynonyms maps patient language to common clinical variants. The
// canonical side must be a keyword of some specialty for the variants to
// have any effect.
var DefaultSynonyms = map[string][]string{
	"dor de cabeça":     {"cefaleia"},
	"falta de ar":       {"dispneia"},
	"desmaio":           {"síncope", "sincope"},
	"formigamento":      {"parestesia"},
	"dor nas costas":    {"lombalgia"},
	"dor no estômago":   {"epigastralgia", "dor epigástrica"},
	"azia":              {"pirose"},
	"refluxo":           {"refluxo gastroesofágico", "drge"},
	"pressão alta":      {"hipertensão"},
	"infecção urinária": {"itu"},
	"dor ao urinar":     {"disúria", "disuria"},
	"cálculo renal":     {"nefrolitíase", "pedra no rim"},
	"palpitação":        {"palpitações", "palpitacoes"},
	"cárie":             {"cáries"},
}

// DefaultRuleSet returns the built-in pt-BR rule table. It only serves as
// a bootstrap: EnsureRulesFile writes it to disk so operators can edit the
// keywords and weights without rebuilding the binary.
func DefaultRuleSet() RuleSet {
	rs := RuleSet{
		Version:  1,
		Scoring:  Scoring{StrongWeight: 2, WeakWeight: 1, MinScore: 1},
		Fallback: "clinica_medica",
		Synonyms: DefaultSynonyms,
		Specialties: []Specialty{
			{
				ID: "cardiologia", DisplayName: "Cardiologia", Confidence: 0.7,
				Strong: []string{"dor no peito", "aperto no peito", "palpitação", "coração acelerado", "pressão alta"},
				Weak:   []string{"tontura ao levantar", "cansaço aos esforços", "inchaço nas pernas"},
			},
			{
				ID: "dermatologia", DisplayName: "Dermatologia", Confidence: 0.65,
				Strong: []string{"mancha na pele", "coceira na pele", "dermatite", "eczema", "psoríase", "acne"},
				Weak:   []string{"pele irritada", "pele descamando", "alergia na pele"},
			},
			{
				ID: "neurologia", DisplayName: "Neurologia", Confidence: 0.65,
				Strong: []string{"dor de cabeça", "enxaqueca", "formigamento", "desmaio", "convulsão", "avc", "derrame"},
				Weak:   []string{"esquecimento", "confusão mental", "perda de força"},
			},
			{
				ID: "oftalmologia", DisplayName: "Oftalmologia", Confidence: 0.7,
				Strong: []string{"vista embaçada", "visão turva", "dor no olho", "terçol", "olho vermelho"},
				Weak:   []string{"embaçada", "vista cansada", "ardência no olho", "lacrimejamento"},
			},
			{
				ID: "odontologia", DisplayName: "Odontologia (Dentista)", Confidence: 0.75,
				Strong: []string{"dente", "dor de dente", "siso", "gengiva sangrando", "cárie"},
				Weak:   []string{"sensibilidade ao frio", "dor ao mastigar", "mau hálito"},
			},
			{
				ID: "ortopedia", DisplayName: "Ortopedia e Traumatologia", Confidence: 0.65,
				Strong: []string{"dor no joelho", "dor no ombro", "dor nas costas", "fratura", "torci o tornozelo"},
				Weak:   []string{"dor ao caminhar", "dor ao subir escadas", "inchaço na articulação"},
			},
			{
				ID: "gastroenterologia", DisplayName: "Gastroenterologia", Confidence: 0.65,
				Strong: []string{"dor no estômago", "azia", "refluxo", "diarreia", "náusea"},
				Weak:   []string{"má digestão", "gases", "empachamento"},
			},
			{
				ID: "psiquiatria", DisplayName: "Psiquiatria", Confidence: 0.6,
				Strong: []string{"ansiedade", "depressão", "crise de pânico", "insônia", "burnout"},
				Weak:   []string{"desânimo", "tristeza", "sem energia"},
			},
			{
				ID: "endocrinologia", DisplayName: "Endocrinologia e Metabologia", Confidence: 0.6,
				Strong: []string{"diabetes", "tireoide", "acima do peso", "obesidade", "quero emagrecer"},
				Weak:   []string{"muita sede", "fome excessiva", "queda de cabelo"},
			},
			{
				ID: "urologia", DisplayName: "Urologia", Confidence: 0.65,
				Strong: []string{"dor ao urinar", "urina com sangue", "infecção urinária", "cálculo renal"},
				Weak:   []string{"acordo para urinar", "jato fraco"},
			},
			{
				ID: "ginecologia", DisplayName: "Ginecologia e Obstetrícia", Confidence: 0.65,
				Strong: []string{"menstruação irregular", "cólica menstrual", "corrimento", "suspeita de gravidez"},
				Weak:   []string{"dor na relação", "sangramento fora do ciclo"},
			},
			{
				ID: "otorrinolaringologia", DisplayName: "Otorrinolaringologia", Confidence: 0.65,
				Strong: []string{"dor de ouvido", "dor de garganta", "sinusite", "perda de audição", "sangramento nasal"},
				Weak:   []string{"nariz entupido", "espirro", "rouquidão"},
			},
			{
				ID: "pneumologia", DisplayName: "Pneumologia", Confidence: 0.6,
				Strong: []string{"falta de ar", "tosse", "chiado no peito", "asma"},
				Weak:   []string{"catarro", "chiado ao respirar"},
			},
			{
				ID: "clinica_medica", DisplayName: "Clínica Médica", Confidence: 0.5, Generalist: true,
				Strong: []string{"check up", "febre", "mal estar"},
				Weak:   []string{"cansaço", "dor no corpo", "indisposição"},
			},
		},
	}
	rs.ApplyDefaults()
	return rs
}

// EnsureRulesFile writes the default rule table to path when no file
// exists there yet, giving operators a starting point for edits.
func EnsureRulesFile(path string) error {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check rules file: %w", err)
	}
	return SaveRuleSet(clean, DefaultRuleSet())
}

// LoadRuleSetOrDefault loads the rule table from path, falling back to the
// built-in table when the file does not exist. The boolean reports whether
// a file was actually loaded.
func LoadRuleSetOrDefault(path string) (RuleSet, bool, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return DefaultRuleSet(), false, nil
	}
	rs, err := LoadRuleSet(clean)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultRuleSet(), false, nil
		}
		return RuleSet{}, false, err
	}
	return rs, true, nil
}
