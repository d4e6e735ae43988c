package client

import (
	"errors"
	"net/netip"
	"time"

	"github.com/danmuck/udpchat/internal/protocol"
	"github.com/danmuck/udpchat/internal/transport"
	"github.com/rs/zerolog/log"
)

// Client talks to one fixed server address for its lifetime.
type Client struct {
	socket *transport.Socket
	server netip.AddrPort
}

// Connect binds localPort (0 for ephemeral) and targets server.
func Connect(localPort uint16, server netip.AddrPort) (*Client, error) {
	socket, err := transport.Listen(localPort)
	if err != nil {
		return nil, err
	}
	return &Client{socket: socket, server: server}, nil
}

func (c *Client) LocalAddr() netip.AddrPort {
	return c.socket.LocalAddr()
}

func (c *Client) ServerAddr() netip.AddrPort {
	return c.server
}

func (c *Client) Close() error {
	return c.socket.Close()
}

// Send encodes d and sends it to the server. Errors are not retried.
func (c *Client) Send(d protocol.Datagram) error {
	return c.socket.Send(protocol.EncodeBytes(d), c.server)
}

// Subscribe sends one Subscribe per channel and stops at the first error.
func (c *Client) Subscribe(channels ...string) error {
	for _, channel := range channels {
		if err := c.Send(protocol.NewSubscribe(channel)); err != nil {
			return err
		}
	}
	return nil
}

// Listen waits for one datagram. A timeout <= 0 blocks until something
// arrives. Timeouts, receive failures and undecodable payloads all
// report false.
func (c *Client) Listen(timeout time.Duration) (protocol.Datagram, bool) {
	payload, from, err := c.socket.Receive(timeout)
	if err != nil {
		if !errors.Is(err, transport.ErrTimeout) && !errors.Is(err, transport.ErrClosed) {
			log.Error().Err(err).Msg("failed to receive datagram")
		}
		return nil, false
	}

	d, err := protocol.DecodeBytes(payload)
	if err != nil {
		log.Error().Str("addr", from.String()).Err(err).Msg("failed to parse datagram")
		return nil, false
	}
	return d, true
}
