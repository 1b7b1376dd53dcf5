package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vyakarni1/vyakarni/internal/config"
	"github.com/vyakarni1/vyakarni/internal/dictionary"
	"github.com/vyakarni1/vyakarni/internal/pipeline"
	"github.com/vyakarni1/vyakarni/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the correction HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := manager.Get()

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		store := dictionary.NewStore(newRedis(cfg))

		rebuild := func(ctx context.Context) (*pipeline.Pipeline, error) {
			return assemble(ctx, manager.Get(), store, log)
		}
		pipe, err := rebuild(cmd.Context())
		if err != nil {
			return err
		}

		srv := server.New(pipe, store, rebuild, log)

		// Rule-table and AI settings follow the config file without a
		// restart.
		manager.OnChange(func(*config.Config) {
			if err := srv.Reload(context.Background()); err != nil {
				log.Warn("config reload failed", zap.Error(err))
			}
		})
		manager.Watch()

		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		return http.ListenAndServe(cfg.HTTPAddr, srv.Handler())
	},
}
