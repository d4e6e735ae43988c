package protocol

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const publishFields = 3

// Decode parses one frame. It never panics; malformed input yields an
// error wrapping ErrUnknownKind or ErrMissingField.
func Decode(frame string) (Datagram, error) {
	tag, body, ok := strings.Cut(frame, Separator)
	if len(tag) != 1 || !isKnownKind(Kind(tag[0])) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, frame)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q has no body", ErrMissingField, frame)
	}

	switch Kind(tag[0]) {
	case KindSubscribe:
		return Subscribe{Channel: body}, nil
	case KindUnsubscribe:
		return Unsubscribe{Channel: body}, nil
	case KindPublish:
		p, err := ParsePublish(body)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return Error{Message: body}, nil
	}
}

// DecodeBytes validates b as UTF-8 and decodes it.
func DecodeBytes(b []byte) (Datagram, error) {
	if !utf8.Valid(b) {
		return nil, ErrInvalidUTF8
	}
	return Decode(string(b))
}

// ParsePublish parses a publish body of the form channel|name|message.
// The message keeps any further separators.
func ParsePublish(body string) (Publish, error) {
	parts := strings.SplitN(body, Separator, publishFields)
	if len(parts) < publishFields {
		return Publish{}, fmt.Errorf("%w: publish body %q needs channel, display name and message", ErrMissingField, body)
	}
	return Publish{
		Channel:     parts[0],
		DisplayName: parts[1],
		Message:     parts[2],
	}, nil
}

func isKnownKind(k Kind) bool {
	switch k {
	case KindSubscribe, KindUnsubscribe, KindPublish, KindError:
		return true
	}
	return false
}
