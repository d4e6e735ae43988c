package main

import (
	"context"
	"errors"

	"github.com/danmuck/udpchat/internal/config"
	"github.com/danmuck/udpchat/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func loadServerSettings(root *rootOptions, cmd *cobra.Command, adminAddr string) (config.ServerConfig, error) {
	cfg := config.DefaultServerConfig()
	if root.configPath != "" {
		loaded, err := config.LoadServerConfig(root.configPath)
		if err != nil {
			return config.ServerConfig{}, err
		}
		cfg = loaded
		log.Info().Str("path", root.configPath).Msg("loaded server config")
	}
	if cmd.Flags().Changed("port") || root.configPath == "" {
		cfg.Port = root.port
	}
	if adminAddr != "" {
		cfg.AdminAddr = adminAddr
	}
	return cfg, config.ValidateServerConfig(cfg)
}

func runServer(ctx context.Context, cfg config.ServerConfig) error {
	srv, err := server.New(cfg.Port, config.ServerOptions(cfg)...)
	if err != nil {
		return err
	}
	defer srv.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})
	if cfg.AdminAddr != "" {
		g.Go(func() error {
			return srv.ServeAdmin(ctx, cfg.AdminAddr, cfg.CorsOrigins)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
