package matcher

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParseQueryFile reads queries from a file: CSV/TSV files contribute the
// first non-empty cell of each row, anything else is treated as one query
// per line. Blank entries are dropped.
func ParseQueryFile(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseDelimitedQueries(path, ',')
	case ".tsv":
		return parseDelimitedQueries(path, '\t')
	default:
		return parsePlainTextQueries(path)
	}
}

func parsePlainTextQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}

func parseDelimitedQueries(path string, comma rune) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	var out []string
	for i, row := range rows {
		cell := firstNonEmptyCell(row)
		if cell == "" {
			continue
		}
		if i == 0 && isQueryHeader(cell) {
			continue
		}
		out = append(out, cell)
	}
	return out, nil
}

func firstNonEmptyCell(row []string) string {
	for _, cell := range row {
		cell = strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		if cell != "" {
			return cell
		}
	}
	return ""
}

func isQueryHeader(cell string) bool {
	switch Normalize(cell) {
	case "texto", "text", "query", "queixa":
		return true
	}
	return false
}

// WriteResultCSV writes one row per query with the suggested specialty,
// score, confidence and matched terms.
func WriteResultCSV(path string, queries []string, results []Suggestion) error {
	if len(queries) != len(results) {
		return fmt.Errorf("queries/results length mismatch: %d vs %d", len(queries), len(results))
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write([]string{"texto", "especialidade", "score", "confianca", "termos"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, q := range queries {
		res := results[i]
		name := res.SpecialtyName
		if !res.Matched() {
			name = "sem sugestão"
		}
		row := []string{
			q,
			name,
			fmt.Sprintf("%d", res.Score),
			fmt.Sprintf("%.2f", res.Confidence),
			res.Terms(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush result: %w", err)
	}
	return nil
}
