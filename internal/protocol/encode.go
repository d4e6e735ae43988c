package protocol

import "strings"

// Encode renders d as a single frame with no trailing terminator.
func Encode(d Datagram) string {
	var b strings.Builder
	switch v := d.(type) {
	case Subscribe:
		writeFrame(&b, KindSubscribe, v.Channel)
	case Unsubscribe:
		writeFrame(&b, KindUnsubscribe, v.Channel)
	case Publish:
		writeFrame(&b, KindPublish, encodePublishBody(v))
	case Error:
		writeFrame(&b, KindError, v.Message)
	default:
		panic("protocol: encode of unsupported datagram type")
	}
	return b.String()
}

// EncodeBytes is Encode for socket writes.
func EncodeBytes(d Datagram) []byte {
	return []byte(Encode(d))
}

func writeFrame(b *strings.Builder, k Kind, body string) {
	b.Grow(2 + len(body))
	b.WriteByte(byte(k))
	b.WriteString(Separator)
	b.WriteString(body)
}

func encodePublishBody(p Publish) string {
	return p.Channel + Separator + p.DisplayName + Separator + p.Message
}
