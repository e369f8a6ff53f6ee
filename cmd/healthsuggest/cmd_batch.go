package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"cozyclinic/healthsuggest/matcher"
)

func batchCmd(configPath *string) *cobra.Command {
	var (
		inputPath  string
		outputPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify a file of complaints and write a result CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("missing required --input file")
			}
			_, svc, logger, err := bootstrap(*configPath, false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			queries, err := matcher.ParseQueryFile(inputPath)
			if err != nil {
				return err
			}
			if len(queries) == 0 {
				return errors.New("input file does not contain any texts")
			}

			results := make([]matcher.Suggestion, len(queries))
			for i, q := range queries {
				results[i] = svc.Suggest(q)
			}

			out, err := resolveOutputPath(outputPath, outputDir)
			if err != nil {
				return err
			}
			if err := matcher.WriteResultCSV(out, queries, results); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resultados salvos em %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "text/CSV/TSV file with one complaint per line or row")
	cmd.Flags().StringVar(&outputPath, "output", "", "result CSV path (default uses --output-dir/resultado_*.csv)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "csv", "directory for result CSVs when --output is omitted")
	return cmd
}

func resolveOutputPath(path, dir string) (string, error) {
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
		return abs, nil
	}
	if dir == "" {
		dir = "csv"
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	filename := fmt.Sprintf("resultado_%s.csv", time.Now().Format("20060102150405"))
	return filepath.Join(absDir, filename), nil
}
