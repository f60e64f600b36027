// Package connection provides the minimal default implementation of
// the out-of-scope transport collaborator (spec §1: "the socket
// connection to the observer... a byte stream abstraction is
// assumed"). It is deliberately thin: a real deployment supplies its
// own ports.Connection wired to whatever channel the observer expects.
package connection

import (
	"fmt"
	"net"
	"time"
)

// ErrTransportError is returned when dialing or writing to the peer
// fails.
var ErrTransportError = fmt.Errorf("armnn: transport error")

// TCPConnection is a bare net.Conn-backed ports.Connection. It fails
// fast on Connect rather than retrying, since retry policy belongs to
// the service's run() loop, not the transport itself.
type TCPConnection struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
}

// NewTCPConnection returns a connection that will dial addr on
// Connect. timeout of zero means net.DialTimeout's default behaviour
// (no timeout).
func NewTCPConnection(addr string, timeout time.Duration) *TCPConnection {
	return &TCPConnection{addr: addr, timeout: timeout}
}

// Connect dials the peer. It does not retry or block indefinitely.
func (c *TCPConnection) Connect() error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrTransportError, c.addr, err)
	}
	c.conn = conn
	return nil
}

// Close releases the underlying socket, if any.
func (c *TCPConnection) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Write drains data onto the socket, matching the encoder/transport
// hand-off described in spec §5: the buffer is the single producer,
// this is the single consumer.
func (c *TCPConnection) Write(data []byte) error {
	if c.conn == nil {
		return fmt.Errorf("%w: not connected", ErrTransportError)
	}
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrTransportError, err)
	}
	return nil
}
