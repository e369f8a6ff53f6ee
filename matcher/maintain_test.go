package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Odontologia (Dentista)", want: "odontologia_dentista"},
		{in: "Ginecologia & Obstetrícia", want: "ginecologia_e_obstetricia"},
		{in: "Clínica Médica", want: "clinica_medica"},
		{in: "  ", want: "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlugID(tt.in))
	}
}

func TestCheckMergeMarkers(t *testing.T) {
	assert.NoError(t, CheckMergeMarkers([]byte("version: 1\nspecialties: []\n")))

	err := CheckMergeMarkers([]byte("version: 1\n<<<<<<< HEAD\nspecialties: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	assert.Error(t, CheckMergeMarkers([]byte("a\n=======\nb")))
	assert.Error(t, CheckMergeMarkers([]byte(">>>>>>> branch")))
	// A separator with trailing content is not a conflict marker.
	assert.NoError(t, CheckMergeMarkers([]byte("======= header =======")))
}

func TestNormalizeRuleSet(t *testing.T) {
	rs := RuleSet{
		Synonyms: map[string][]string{"azia": {"pirose", "Pirose!", ""}},
		Specialties: []Specialty{
			{DisplayName: "Odontologia (Dentista)", Strong: []string{"Dente", "dente!", "siso"}},
			{ID: "gastro", Strong: []string{"azia"}, Weak: []string{"gases", "Gases"}},
		},
	}
	cleaned, err := NormalizeRuleSet(rs)
	require.NoError(t, err)

	assert.Equal(t, "odontologia_dentista", cleaned.Specialties[0].ID)
	assert.Equal(t, []string{"Dente", "siso"}, cleaned.Specialties[0].Strong)
	assert.Equal(t, []string{"gases"}, cleaned.Specialties[1].Weak)
	assert.Equal(t, []string{"pirose"}, cleaned.Synonyms["azia"])
}

func TestNormalizeRuleSetRejectsEmptyRules(t *testing.T) {
	_, err := NormalizeRuleSet(RuleSet{
		Specialties: []Specialty{{DisplayName: "Vazio", Strong: []string{"  "}}},
	})
	assert.Error(t, err)
}

func TestMergeSynonyms(t *testing.T) {
	rs := RuleSet{
		Version:  3,
		Fallback: "gp",
		Synonyms: map[string][]string{"azia": {"pirose"}},
		Specialties: []Specialty{
			{ID: "gastro", Strong: []string{"azia"}},
			{ID: "gp", Strong: []string{"febre"}},
		},
	}
	upgraded := MergeSynonyms(rs, map[string][]string{
		"azia":    {"pirose", "queimação"},
		"desmaio": {"síncope"},
	})

	assert.Equal(t, 4, upgraded.Version)
	assert.Equal(t, []string{"pirose", "queimação"}, upgraded.Synonyms["azia"])
	assert.Equal(t, []string{"síncope"}, upgraded.Synonyms["desmaio"])
	assert.True(t, upgraded.Specialties[1].Generalist, "fallback specialty gets the generalist flag")
	assert.False(t, upgraded.Specialties[0].Generalist)
}

func TestDedupeKeepOrder(t *testing.T) {
	out := dedupeKeepOrder([]string{"Cárie", "carie", "cárie!", "gengiva", ""})
	assert.Equal(t, []string{"Cárie", "gengiva"}, out)
}
