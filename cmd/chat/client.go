package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/danmuck/udpchat/internal/client"
	"github.com/danmuck/udpchat/internal/protocol"
	"github.com/rs/zerolog/log"
)

func runClient(ctx context.Context, cfg clientSettings, out io.Writer) error {
	c, err := client.Connect(cfg.LocalPort, cfg.ServerAddr())
	if err != nil {
		return err
	}
	defer c.Close()

	log.Info().
		Str("local", c.LocalAddr().String()).
		Str("server", c.ServerAddr().String()).
		Msg("client started")

	err = c.Run(ctx, client.RunConfig{
		Channels: cfg.Channels,
		Message:  cfg.Message,
		Interval: cfg.Interval,
	}, func(d protocol.Datagram) {
		fmt.Fprintln(out, protocol.Encode(d))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
