package protocol

import "errors"

var (
	ErrUnknownKind  = errors.New("protocol: unknown datagram kind")
	ErrMissingField = errors.New("protocol: missing field")
	ErrInvalidUTF8  = errors.New("protocol: frame is not valid utf-8")
)
