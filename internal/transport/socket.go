package transport

import (
	"errors"
	"net"
	"net/netip"
	"os"
	"sync/atomic"
	"time"

	"github.com/danmuck/udpchat/internal/protocol"
)

const network = "udp4"

// Socket is one bound UDP endpoint used for both sending and receiving by
// a single owner.
type Socket struct {
	conn         *net.UDPConn
	writeTimeout atomic.Int64
}

// Listen binds 0.0.0.0:port. Port 0 selects an ephemeral port.
func Listen(port uint16) (*Socket, error) {
	addr := net.UDPAddrFromAddrPort(netip.AddrPortFrom(netip.IPv4Unspecified(), port))
	conn, err := net.ListenUDP(network, addr)
	if err != nil {
		return nil, &BindError{Port: port, Err: err}
	}
	return &Socket{conn: conn}, nil
}

// SetWriteTimeout bounds every subsequent Send. Zero disables the bound.
func (s *Socket) SetWriteTimeout(d time.Duration) {
	s.writeTimeout.Store(int64(d))
}

// WriteTimeout reports the bound applied to each Send.
func (s *Socket) WriteTimeout() time.Duration {
	return time.Duration(s.writeTimeout.Load())
}

// LocalAddr returns the bound address.
func (s *Socket) LocalAddr() netip.AddrPort {
	return s.conn.LocalAddr().(*net.UDPAddr).AddrPort()
}

// Send writes b as one datagram. It is never retried.
func (s *Socket) Send(b []byte, to netip.AddrPort) error {
	if err := s.conn.SetWriteDeadline(deadlineFrom(time.Now(), s.WriteTimeout())); err != nil {
		return classify(err)
	}
	_, err := s.conn.WriteToUDPAddrPort(b, to)
	return classify(err)
}

// Receive blocks for one datagram. A timeout <= 0 waits indefinitely.
// Payloads longer than protocol.MaxFrameSize are truncated.
func (s *Socket) Receive(timeout time.Duration) ([]byte, netip.AddrPort, error) {
	if err := s.conn.SetReadDeadline(deadlineFrom(time.Now(), timeout)); err != nil {
		return nil, netip.AddrPort{}, classify(err)
	}

	buf := make([]byte, protocol.MaxFrameSize)
	n, from, err := s.conn.ReadFromUDPAddrPort(buf)
	if err != nil {
		return nil, netip.AddrPort{}, classify(err)
	}
	return buf[:n], unmap(from), nil
}

func (s *Socket) Close() error {
	return s.conn.Close()
}

// deadlineFrom returns the zero time (no deadline) for d <= 0.
func deadlineFrom(now time.Time, d time.Duration) time.Time {
	if d <= 0 {
		return time.Time{}
	}
	return now.Add(d)
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrDeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, net.ErrClosed):
		return ErrClosed
	default:
		return err
	}
}

func unmap(ap netip.AddrPort) netip.AddrPort {
	return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())
}
