// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package remote

import (
	"fmt"
	"net"
	"time"
)

// DefaultReadTimeout bounds every read from the transport.
const DefaultReadTimeout = 10 * time.Second

// readTimeoutConn re-arms the read deadline before each Read, so a single
// read blocks for at most timeout while the whole session may run longer.
type readTimeoutConn struct {
	net.Conn
	timeout time.Duration
}

// withReadTimeout arms the first deadline immediately so a connection that
// cannot take deadlines is rejected before the handshake starts.
func withReadTimeout(c net.Conn, timeout time.Duration) (net.Conn, error) {
	if timeout <= 0 {
		return c, nil
	}
	if err := c.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}
	return &readTimeoutConn{Conn: c, timeout: timeout}, nil
}

func (c *readTimeoutConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}
