// Package client sends datagrams to one chat server and listens for the
// publishes it pushes back. There is no heartbeat; a subscribed client
// simply waits.
package client
