package config

import "github.com/danmuck/udpchat/internal/server"

// ServerOptions converts a validated config into server options.
func ServerOptions(cfg ServerConfig) []server.Option {
	opts := []server.Option{
		server.WithID(cfg.ID),
		server.WithFanoutLimit(cfg.FanoutLimit),
	}
	if d, err := cfg.WriteTimeoutDuration(); err == nil {
		opts = append(opts, server.WithWriteTimeout(d))
	}
	return opts
}
