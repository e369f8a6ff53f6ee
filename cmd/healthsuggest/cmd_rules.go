package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cozyclinic/healthsuggest/matcher"
)

func rulesCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Maintain the rule table",
	}
	cmd.AddCommand(rulesInitCmd(configPath))
	cmd.AddCommand(rulesNormalizeCmd())
	cmd.AddCommand(rulesUpgradeCmd())
	return cmd
}

func rulesInitCmd(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in rule table to the configured rules file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := matcher.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if force {
				if err := matcher.SaveRuleSet(cfg.RulesPath, matcher.DefaultRuleSet()); err != nil {
					return err
				}
			} else {
				if _, err := os.Stat(cfg.RulesPath); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.RulesPath)
				}
				if err := matcher.EnsureRulesFile(cfg.RulesPath); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ruleset gravado em %s\n", cfg.RulesPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing rules file")
	return cmd
}

func rulesNormalizeCmd() *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Clean a hand-edited rule table and write a validated copy",
		Long: `Normalize slugs missing specialty ids from their display names, dedupes
keyword and synonym lists, rejects files with unresolved git conflict
markers and validates the result with a full compile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" || outputPath == "" {
				return errors.New("both --input and --output are required")
			}
			raw, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read rules: %w", err)
			}
			if err := matcher.CheckMergeMarkers(raw); err != nil {
				return err
			}
			rs, err := matcher.LoadRuleSet(inputPath)
			if err != nil {
				return err
			}
			cleaned, err := matcher.NormalizeRuleSet(rs)
			if err != nil {
				return err
			}
			if err := matcher.SaveRuleSet(outputPath, cleaned); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ruleset normalizado gravado em %s (%d especialidades)\n",
				outputPath, len(cleaned.Specialties))
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "rule table to clean (YAML or JSON)")
	cmd.Flags().StringVar(&outputPath, "output", "", "where to write the cleaned table")
	return cmd
}

func rulesUpgradeCmd() *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Merge the built-in synonym dictionary into a rule table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" || outputPath == "" {
				return errors.New("both --input and --output are required")
			}
			rs, err := matcher.LoadRuleSet(inputPath)
			if err != nil {
				return err
			}
			upgraded := matcher.MergeSynonyms(rs, matcher.DefaultSynonyms)
			if _, err := matcher.Compile(upgraded); err != nil {
				return err
			}
			if err := matcher.SaveRuleSet(outputPath, upgraded); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ruleset atualizado gravado em %s (version=%d)\n",
				outputPath, upgraded.Version)
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPath, "input", "", "rule table to upgrade (YAML or JSON)")
	cmd.Flags().StringVar(&outputPath, "output", "", "where to write the upgraded table")
	return cmd
}
