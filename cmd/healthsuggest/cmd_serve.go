package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cozyclinic/healthsuggest/internal/web"
)

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the suggestion web app",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, logger, err := bootstrap(*configPath, true)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			srv, err := web.NewServer(svc, logger)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			logger.Info("listening", zap.String("addr", cfg.ListenAddr))
			return http.ListenAndServe(cfg.ListenAddr, srv)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
