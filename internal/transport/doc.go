// Package transport owns the UDP endpoint shared by client and server.
//
// A Socket moves raw frames only. Decoding is left to callers so a bad
// payload never surfaces as a transport failure.
package transport
