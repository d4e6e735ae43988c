package client

import (
	"context"
	"time"

	"github.com/danmuck/udpchat/internal/protocol"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

// RunConfig drives the interactive client loop.
type RunConfig struct {
	Channels []string
	// Message, when set, is sent once per iteration.
	Message *protocol.Publish
	// Interval bounds each listen. Zero blocks until a datagram arrives.
	Interval time.Duration
}

// Run subscribes to cfg.Channels, then alternates sending cfg.Message and
// listening for one interval, handing every received datagram to sink.
// It returns when ctx is cancelled or a send fails.
func (c *Client) Run(ctx context.Context, cfg RunConfig, sink func(protocol.Datagram)) error {
	stop := context.AfterFunc(ctx, func() {
		_ = c.Close()
	})
	defer stop()

	if err := c.Subscribe(cfg.Channels...); err != nil {
		return contextOr(ctx, err)
	}
	log.Info().
		Str("server", c.server.String()).
		Strs("channels", cfg.Channels).
		Msg("client subscribed")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.Message != nil {
			if err := c.Send(*cfg.Message); err != nil {
				return contextOr(ctx, err)
			}
		}
		if d, ok := c.Listen(cfg.Interval); ok {
			sink(d)
		} else {
			log.Debug().Msg("no messages received")
		}
	}
}

func contextOr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return multierr.Append(ctxErr, err)
	}
	return err
}
