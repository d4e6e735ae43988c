package server

import "time"

const DefaultPort uint16 = 31337

// Config holds server tuning. The read side has no timeout; the loop
// always waits for the next datagram.
type Config struct {
	ID           string
	WriteTimeout time.Duration
	FanoutLimit  int
}

func DefaultConfig() Config {
	return Config{
		ID:           "chat",
		WriteTimeout: time.Second,
		FanoutLimit:  16,
	}
}

type Option func(*Config)

func WithID(id string) Option {
	return func(c *Config) {
		if id != "" {
			c.ID = id
		}
	}
}

// WithWriteTimeout bounds each fan-out send. Non-positive values are
// ignored; sends always stay bounded.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.WriteTimeout = d
		}
	}
}

// WithFanoutLimit caps concurrent sends for one publish. 1 sends serially.
func WithFanoutLimit(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.FanoutLimit = n
		}
	}
}
