package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func suggestCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest TEXT...",
		Short: "Suggest a specialty for a single complaint",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("empty complaint text")
			}
			_, svc, logger, err := bootstrap(*configPath, false)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			sug := svc.Suggest(text)
			out := cmd.OutOrStdout()
			if !sug.Matched() {
				fmt.Fprintln(out, "Sem sugestão")
				return nil
			}
			fmt.Fprintf(out, "%s (score=%d, confiança=%d%%)\n", sug.SpecialtyName, sug.Score, int(sug.Confidence*100))
			if terms := sug.Terms(); terms != "" {
				fmt.Fprintf(out, "  Termos: %s\n", terms)
			}
			if sug.Why != "" {
				fmt.Fprintf(out, "  Por quê: %s\n", sug.Why)
			}
			return nil
		},
	}
}
