// Package protocol owns the datagram wire contract.
//
// Ownership boundary:
// - the four datagram kinds and their tags
// - text frame encode/decode
// - decode error taxonomy
//
// One UDP payload carries exactly one frame: a single-character tag, the
// field separator, then the kind-specific fields. Only Publish splits its
// body further; the last field of every kind absorbs any remaining
// separators verbatim.
package protocol
