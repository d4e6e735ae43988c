package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "server":
		return serverTemplate, nil
	case "client":
		return clientTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serverTemplate = `id = "chat"
port = 31337
write_timeout = "1s"
fanout_limit = 16
# admin_addr = "127.0.0.1:9137"
cors_origins = ["http://localhost:3000"]
`

const clientTemplate = `address = "127.0.0.1"
# server_port defaults to the local port
# server_port = 31337
channels = ["rust_club"]
# message = "rust_club|me|hello world"
interval = "5s"
`
