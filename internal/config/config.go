package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/danmuck/udpchat/internal/server"
	"github.com/pelletier/go-toml/v2"
)

const DefaultPort = server.DefaultPort

// ServerConfig is the on-disk server configuration.
type ServerConfig struct {
	ID           string   `toml:"id"`
	Port         uint16   `toml:"port"`
	WriteTimeout string   `toml:"write_timeout"`
	FanoutLimit  int      `toml:"fanout_limit"`
	AdminAddr    string   `toml:"admin_addr"`
	CorsOrigins  []string `toml:"cors_origins"`
}

// DefaultServerConfig mirrors the server package defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ID:           "chat",
		Port:         DefaultPort,
		WriteTimeout: "1s",
		FanoutLimit:  16,
	}
}

func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if strings.TrimSpace(cfg.ID) == "" {
		cfg.ID = "chat"
	}
	if strings.TrimSpace(cfg.WriteTimeout) == "" {
		cfg.WriteTimeout = "1s"
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	d, err := cfg.WriteTimeoutDuration()
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("server config write_timeout must be positive")
	}
	if cfg.FanoutLimit < 0 {
		return fmt.Errorf("server config fanout_limit must not be negative")
	}
	if addr := strings.TrimSpace(cfg.AdminAddr); addr != "" && !strings.Contains(addr, ":") {
		return fmt.Errorf("server config admin_addr must be host:port")
	}
	return nil
}

// WriteTimeoutDuration parses the write_timeout field.
func (c ServerConfig) WriteTimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(c.WriteTimeout))
	if err != nil {
		return 0, fmt.Errorf("parse write_timeout: %w", err)
	}
	return d, nil
}
