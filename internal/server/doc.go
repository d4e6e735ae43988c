// Package server owns the channel registry and the receive/dispatch loop.
//
// The loop handles one datagram at a time: a Publish is fully fanned out
// before the next receive. Subscribers are identified only by the source
// address of their datagrams.
package server
