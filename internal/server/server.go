package server

import (
	"context"
	"errors"
	"net/netip"
	"sync"
	"time"

	"github.com/danmuck/udpchat/internal/observability"
	"github.com/danmuck/udpchat/internal/protocol"
	"github.com/danmuck/udpchat/internal/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	ID       string
	Started  time.Time
	Registry *Registry

	cfg       Config
	socket    *transport.Socket
	closeOnce sync.Once
}

// New binds the server socket on 0.0.0.0:port.
func New(port uint16, opts ...Option) (*Server, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	socket, err := transport.Listen(port)
	if err != nil {
		return nil, err
	}
	socket.SetWriteTimeout(cfg.WriteTimeout)
	observability.RegisterMetrics()

	return &Server{
		ID:       cfg.ID,
		Started:  time.Now(),
		Registry: NewRegistry(),
		cfg:      cfg,
		socket:   socket,
	}, nil
}

// readTimeout is zero: the loop waits for the next datagram indefinitely.
const readTimeout time.Duration = 0

func (s *Server) LocalAddr() netip.AddrPort {
	return s.socket.LocalAddr()
}

// WriteTimeout reports the bound on each fan-out send.
func (s *Server) WriteTimeout() time.Duration {
	return s.socket.WriteTimeout()
}

func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.socket.Close()
	})
	return err
}

// Run receives and dispatches datagrams until ctx is cancelled or the
// socket is closed. Failures within one iteration never stop the loop.
func (s *Server) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.Close()
	})
	defer stop()

	log.Info().Str("server", s.ID).Str("addr", s.LocalAddr().String()).Msg("server listening")
	for {
		err := s.HandleNext()
		if !errors.Is(err, transport.ErrClosed) {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Info().Str("server", s.ID).Msg("server stopped")
			return ctxErr
		}
		return err
	}
}

// HandleNext performs one receive -> decode -> dispatch step. Only
// receive errors are returned; they are also logged.
func (s *Server) HandleNext() error {
	payload, from, err := s.socket.Receive(readTimeout)
	if err != nil {
		if !errors.Is(err, transport.ErrClosed) {
			log.Error().Str("server", s.ID).Err(err).Msg("receive failed")
		}
		return err
	}

	d, err := protocol.DecodeBytes(payload)
	if err != nil {
		observability.RecordDecodeFailure(s.ID)
		log.Error().
			Str("server", s.ID).
			Str("addr", from.String()).
			Err(err).
			Msg("decode failed")
		return nil
	}
	s.dispatch(d, from)
	return nil
}

func (s *Server) dispatch(d protocol.Datagram, from netip.AddrPort) {
	observability.RecordDatagram(s.ID, d.Kind().String())
	log.Debug().
		Str("server", s.ID).
		Str("addr", from.String()).
		Str("kind", d.Kind().String()).
		Func(func(e *zerolog.Event) {
			e.Str("frame", protocol.Encode(d))
		}).
		Msg("handling datagram")

	switch v := d.(type) {
	case protocol.Subscribe:
		s.Registry.Subscribe(v.Channel, from)
	case protocol.Unsubscribe:
		s.Registry.Unsubscribe(v.Channel, from)
	case protocol.Publish:
		if n, err := s.publish(v); err != nil {
			log.Debug().
				Str("server", s.ID).
				Str("channel", v.Channel).
				Int("subscribers", n).
				Int("failed", len(multierr.Errors(err))).
				Err(err).
				Msg("fan-out incomplete")
		}
	case protocol.Error:
		log.Debug().Str("server", s.ID).Str("addr", from.String()).Str("message", v.Message).Msg("received error datagram")
	}
}

// publish sends a fresh copy of p to every current subscriber of its
// channel. The publisher is neither added nor excluded. It returns the
// number of sends attempted and the combined send failures.
func (s *Server) publish(p protocol.Publish) (int, error) {
	subscribers, ok := s.Registry.Subscribers(p.Channel)
	if !ok || len(subscribers) == 0 {
		return 0, nil
	}

	start := time.Now()
	frame := protocol.EncodeBytes(protocol.NewPublish(p.Channel, p.DisplayName, p.Message))
	errs := make([]error, len(subscribers))

	var g errgroup.Group
	g.SetLimit(s.cfg.FanoutLimit)
	for i, addr := range subscribers {
		g.Go(func() error {
			if err := s.socket.Send(frame, addr); err != nil {
				log.Error().
					Str("server", s.ID).
					Str("channel", p.Channel).
					Str("addr", addr.String()).
					Err(err).
					Msg("fan-out send failed")
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	err := multierr.Combine(errs...)
	failed := len(multierr.Errors(err))
	observability.RecordFanout(s.ID, len(subscribers)-failed, failed, time.Since(start))
	return len(subscribers), err
}

// Subscribers returns the current subscriber addresses for channel.
func (s *Server) Subscribers(channel string) []netip.AddrPort {
	addrs, _ := s.Registry.Subscribers(channel)
	return addrs
}

func (s *Server) Channels() []string {
	return s.Registry.Channels()
}
