package transport

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout = errors.New("transport: receive timed out")
	ErrClosed  = errors.New("transport: socket closed")
)

// BindError reports that the local endpoint could not be bound.
type BindError struct {
	Port uint16
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("transport: bind udp port %d: %v", e.Port, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}
