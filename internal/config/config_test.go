package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg, err := LoadServerConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ID != "chat" || cfg.Port != DefaultPort || cfg.FanoutLimit != 16 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	d, err := cfg.WriteTimeoutDuration()
	if err != nil || d != time.Second {
		t.Fatalf("unexpected write timeout: %v err=%v", d, err)
	}
}

func TestLoadServerConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
id = "chat-east"
port = 4000
write_timeout = "250ms"
fanout_limit = 4
admin_addr = "127.0.0.1:9137"
`)
	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ID != "chat-east" || cfg.Port != 4000 || cfg.FanoutLimit != 4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.AdminAddr != "127.0.0.1:9137" {
		t.Fatalf("unexpected admin addr: %q", cfg.AdminAddr)
	}
	if len(ServerOptions(cfg)) != 3 {
		t.Fatalf("expected id, fanout and write timeout options")
	}
}

func TestLoadServerConfigRejectsBadValues(t *testing.T) {
	for _, content := range []string{
		`write_timeout = "abc"`,
		`write_timeout = "-1s"`,
		`fanout_limit = -1`,
		`admin_addr = "nope"`,
		`port = "not a number"`,
	} {
		if _, err := LoadServerConfig(writeConfig(t, content)); err == nil {
			t.Fatalf("expected error for %q", content)
		}
	}
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("expected load failure, got %v", err)
	}
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	if err := WriteTemplate(path, "server", false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, "server", false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	cfg, err := LoadServerConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Port != DefaultPort || len(cfg.CorsOrigins) != 1 {
		t.Fatalf("unexpected template config: %+v", cfg)
	}
	if _, err := Template("mystery"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
