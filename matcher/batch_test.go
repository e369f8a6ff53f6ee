package matcher

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseQueryFilePlainText(t *testing.T) {
	path := writeFile(t, "queixas.txt", "\ufeffdor no peito\n\n  coceira na pele  \n")
	queries, err := ParseQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dor no peito", "coceira na pele"}, queries)
}

func TestParseQueryFileCSV(t *testing.T) {
	path := writeFile(t, "queixas.csv", "texto\ndor no peito\n,azia\n")
	queries, err := ParseQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dor no peito", "azia"}, queries, "header row is skipped, first non-empty cell wins")
}

func TestParseQueryFileTSV(t *testing.T) {
	path := writeFile(t, "queixas.tsv", "dor de cabeça\textra\nfebre\t\n")
	queries, err := ParseQueryFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dor de cabeça", "febre"}, queries)
}

func TestWriteResultCSV(t *testing.T) {
	rules, err := Compile(DefaultRuleSet())
	require.NoError(t, err)

	queries := []string{"tenho dor no peito", "texto sem relação"}
	results := make([]Suggestion, len(queries))
	for i, q := range queries {
		results[i] = rules.Suggest(q)
	}

	path := filepath.Join(t.TempDir(), "out", "resultado.csv")
	require.NoError(t, WriteResultCSV(path, queries, results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"texto", "especialidade", "score", "confianca", "termos"}, rows[0])
	assert.Equal(t, "Cardiologia", rows[1][1])
	assert.Equal(t, "Clínica Médica", rows[2][1])
}

func TestWriteResultCSVLengthMismatch(t *testing.T) {
	err := WriteResultCSV(filepath.Join(t.TempDir(), "x.csv"), []string{"a"}, nil)
	assert.Error(t, err)
}
