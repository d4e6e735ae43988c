package main

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/udpchat/internal/config"
	"github.com/danmuck/udpchat/internal/protocol"
	"github.com/spf13/cobra"
)

type clientFileConfig struct {
	Address    string   `toml:"address"`
	Port       uint16   `toml:"port"`
	ServerPort uint16   `toml:"server_port"`
	Channels   []string `toml:"channels"`
	Message    string   `toml:"message"`
	Interval   string   `toml:"interval"`
	IntervalMS int64    `toml:"interval_ms"`
}

type clientFlags struct {
	address      string
	serverPort   uint16
	channels     []string
	message      string
	intervalSecs uint
}

// clientSettings is the resolved client setup after file and flag overlay.
type clientSettings struct {
	LocalPort  uint16
	Address    netip.Addr
	ServerPort uint16
	Channels   []string
	Message    *protocol.Publish
	Interval   time.Duration
}

func defaultClientSettings() clientSettings {
	return clientSettings{LocalPort: config.DefaultPort}
}

func (s clientSettings) ServerAddr() netip.AddrPort {
	port := s.ServerPort
	if port == 0 {
		port = s.LocalPort
	}
	return netip.AddrPortFrom(s.Address, port)
}

func loadClientConfig(path string, cfg clientSettings) (clientSettings, error) {
	var raw clientFileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return clientSettings{}, fmt.Errorf("load client config: %w", err)
	}

	if meta.IsDefined("address") {
		addr, err := parseServerAddress(raw.Address)
		if err != nil {
			return clientSettings{}, err
		}
		cfg.Address = addr
	}

	if meta.IsDefined("port") {
		cfg.LocalPort = raw.Port
	}

	if meta.IsDefined("server_port") {
		cfg.ServerPort = raw.ServerPort
	}

	if meta.IsDefined("channels") {
		cfg.Channels = normalizeChannels(raw.Channels)
	}

	if meta.IsDefined("message") {
		msg, err := parseMessage(raw.Message)
		if err != nil {
			return clientSettings{}, err
		}
		cfg.Message = msg
	}

	if meta.IsDefined("interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Interval))
		if err != nil {
			return clientSettings{}, fmt.Errorf("parse interval: %w", err)
		}
		cfg.Interval = d
	}

	if meta.IsDefined("interval_ms") {
		cfg.Interval = time.Duration(raw.IntervalMS) * time.Millisecond
	}

	return cfg, nil
}

// resolveClientSettings applies defaults, then the config file, then any
// flags the user set explicitly.
func resolveClientSettings(root *rootOptions, cmd *cobra.Command, flags *clientFlags) (clientSettings, error) {
	cfg := defaultClientSettings()
	if root.configPath != "" {
		loaded, err := loadClientConfig(root.configPath, cfg)
		if err != nil {
			return clientSettings{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("port") || root.configPath == "" {
		cfg.LocalPort = root.port
	}
	if flags.address != "" {
		addr, err := parseServerAddress(flags.address)
		if err != nil {
			return clientSettings{}, err
		}
		cfg.Address = addr
	}
	if cmd.Flags().Changed("server-port") {
		cfg.ServerPort = flags.serverPort
	}
	if len(flags.channels) > 0 {
		cfg.Channels = normalizeChannels(flags.channels)
	}
	if flags.message != "" {
		msg, err := parseMessage(flags.message)
		if err != nil {
			return clientSettings{}, err
		}
		cfg.Message = msg
	}
	if cmd.Flags().Changed("interval") {
		cfg.Interval = time.Duration(flags.intervalSecs) * time.Second
	}

	return cfg, validateClientSettings(cfg)
}

func validateClientSettings(cfg clientSettings) error {
	if !cfg.Address.IsValid() {
		return fmt.Errorf("client requires a server address")
	}
	if len(cfg.Channels) == 0 {
		return fmt.Errorf("client requires at least one channel")
	}
	if cfg.Interval < 0 {
		return fmt.Errorf("client interval must not be negative")
	}
	return nil
}

func parseServerAddress(raw string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("parse server address: %w", err)
	}
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("server address %s is not IPv4", addr)
	}
	return addr, nil
}

func parseMessage(raw string) (*protocol.Publish, error) {
	msg, err := protocol.ParsePublish(raw)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	return &msg, nil
}

func normalizeChannels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, channel := range in {
		v := strings.TrimSpace(channel)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
