package protocol

const (
	// Separator delimits the tag and fields of a frame.
	Separator = "|"
	// MaxFrameSize is the largest frame a peer reads from one datagram.
	MaxFrameSize = 1024
)

// Kind is the leading tag of a frame.
type Kind byte

const (
	KindSubscribe   Kind = 'S'
	KindUnsubscribe Kind = 'U'
	KindPublish     Kind = 'P'
	KindError       Kind = 'E'
)

func (k Kind) String() string {
	switch k {
	case KindSubscribe:
		return "subscribe"
	case KindUnsubscribe:
		return "unsubscribe"
	case KindPublish:
		return "publish"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Datagram is one application message. The set of implementations is
// closed: Subscribe, Unsubscribe, Publish and Error.
type Datagram interface {
	Kind() Kind
	datagram()
}

// Subscribe registers the sender's address against Channel.
type Subscribe struct {
	Channel string
}

// Unsubscribe removes the sender's address from Channel.
type Unsubscribe struct {
	Channel string
}

// Publish carries one chat line for every subscriber of Channel.
type Publish struct {
	Channel     string
	DisplayName string
	Message     string
}

// Error is an informational notice; receivers never change state on it.
type Error struct {
	Message string
}

func (Subscribe) Kind() Kind   { return KindSubscribe }
func (Unsubscribe) Kind() Kind { return KindUnsubscribe }
func (Publish) Kind() Kind     { return KindPublish }
func (Error) Kind() Kind       { return KindError }

func (Subscribe) datagram()   {}
func (Unsubscribe) datagram() {}
func (Publish) datagram()     {}
func (Error) datagram()       {}

// NewSubscribe builds a Subscribe for channel.
func NewSubscribe(channel string) Datagram {
	return Subscribe{Channel: channel}
}

// NewUnsubscribe builds an Unsubscribe for channel.
func NewUnsubscribe(channel string) Datagram {
	return Unsubscribe{Channel: channel}
}

// NewPublish builds a Publish of message on channel under displayName.
func NewPublish(channel, displayName, message string) Datagram {
	return Publish{Channel: channel, DisplayName: displayName, Message: message}
}

// NewError builds an Error notice carrying message.
func NewError(message string) Datagram {
	return Error{Message: message}
}
