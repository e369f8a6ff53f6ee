// Command healthsuggest maps free-text symptom descriptions to a suggested
// medical specialty using a keyword rule table. It is not a diagnostic
// tool; it only points at a plausible entry door.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cozyclinic/healthsuggest/matcher"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "healthsuggest",
		Short: "Specialty suggestion from free-text symptom descriptions",
		Long: `Healthsuggest matches a free-text complaint against a keyword rule
table and suggests a medical specialty. It does not diagnose, prescribe
or triage.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (default: ./config.json)")

	cmd.AddCommand(serveCmd(&configPath))
	cmd.AddCommand(suggestCmd(&configPath))
	cmd.AddCommand(batchCmd(&configPath))
	cmd.AddCommand(rulesCmd(&configPath))
	return cmd
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// bootstrap loads config, logger, ruleset and service in one go. When
// ensureRules is set the default rule table is written to disk first so
// the operator has a file to edit.
func bootstrap(configPath string, ensureRules bool) (matcher.Config, *matcher.Service, *zap.Logger, error) {
	cfg, err := matcher.LoadConfig(configPath)
	if err != nil {
		return cfg, nil, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return cfg, nil, nil, err
	}
	if ensureRules {
		if err := matcher.EnsureRulesFile(cfg.RulesPath); err != nil {
			logger.Warn("could not write default rules file", zap.String("path", cfg.RulesPath), zap.Error(err))
		}
	}
	rs, fromFile, err := matcher.LoadRuleSetOrDefault(cfg.RulesPath)
	if err != nil {
		return cfg, nil, logger, err
	}
	if fromFile {
		logger.Info("ruleset loaded", zap.String("path", cfg.RulesPath))
	} else {
		logger.Info("rules file not found, using built-in ruleset", zap.String("path", cfg.RulesPath))
	}
	svc, err := matcher.NewService(rs, cfg, logger)
	if err != nil {
		return cfg, nil, logger, err
	}
	return cfg, svc, logger, nil
}
