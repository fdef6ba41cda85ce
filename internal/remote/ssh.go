// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package remote

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/piconnect/piconnect/internal/logging"
	"github.com/piconnect/piconnect/internal/security"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Options tune how Dial reaches a host. The zero value dials port 22 with
// a 10 second read timeout and accepts any host key.
type Options struct {
	Port        string
	ReadTimeout time.Duration
	DialTimeout time.Duration
	// HostKeyCallback verifies the server key; nil accepts any key.
	HostKeyCallback ssh.HostKeyCallback
}

func (o Options) withDefaults() Options {
	if o.Port == "" {
		o.Port = DefaultPort
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	if o.HostKeyCallback == nil {
		o.HostKeyCallback = ssh.InsecureIgnoreHostKey()
	}
	return o
}

// netDial opens the raw transport. Tests override it.
var netDial = func(network, addr string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, addr, timeout)
}

// Client is an authenticated SSH session with a single remote host.
type Client struct {
	host string
	conn *ssh.Client
}

// Dial opens the transport to host, performs the SSH handshake and
// authenticates with user and password. Failures are returned as *Error
// with KindTransport, KindHandshake or KindAuth. Nothing is retried.
func Dial(host, user string, password security.Secret, opts Options) (*Client, error) {
	opts = opts.withDefaults()
	addr := CanonicalizeHostPort(host, opts.Port)

	logging.Debugf("connecting to %s", addr)
	raw, err := netDial("tcp", addr, opts.DialTimeout)
	if err != nil {
		return nil, Wrap(KindTransport, host, err)
	}
	conn, err := withReadTimeout(raw, opts.ReadTimeout)
	if err != nil {
		raw.Close()
		return nil, Wrap(KindTransport, host, err)
	}
	logging.Debugf("transport to %s open", addr)

	cfg := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.PasswordCallback(func() (string, error) { return password.Reveal(), nil }),
		},
		HostKeyCallback: opts.HostKeyCallback,
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		if IsAuthenticationError(err) {
			return nil, Wrap(KindAuth, host, err)
		}
		return nil, Wrap(KindHandshake, host, err)
	}
	logging.Debugf("authenticated to %s as %s", addr, user)

	return &Client{host: host, conn: ssh.NewClient(sshConn, chans, reqs)}, nil
}

// SSH exposes the underlying client for subsystems such as SFTP.
func (c *Client) SSH() *ssh.Client { return c.conn }

// Exec runs cmd on a new channel and returns its complete standard output.
// A non-zero exit status is not an error: diagnostic tools such as df exit
// non-zero when a single mount is unreadable yet still print a usable table.
func (c *Client) Exec(cmd string) (string, error) {
	sess, err := c.conn.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create channel: %w", err)
	}
	defer sess.Close()

	stdout, err := sess.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to attach to channel output: %w", err)
	}
	if err := sess.Start(cmd); err != nil {
		return "", fmt.Errorf("failed to execute command: %w", err)
	}
	out, err := io.ReadAll(stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read output: %w", err)
	}
	if err := sess.Wait(); err != nil {
		var exitErr *ssh.ExitError
		var missing *ssh.ExitMissingError
		switch {
		case errors.As(err, &exitErr):
			logging.Warnf("%s on %s exited with status %d", cmd, c.host, exitErr.ExitStatus())
		case errors.As(err, &missing):
			logging.Warnf("%s on %s closed without exit status", cmd, c.host)
		default:
			return "", fmt.Errorf("channel close error: %w", err)
		}
	}
	return string(out), nil
}

// Close closes the session and the transport.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// HostKeyCallback returns a verifier backed by a known_hosts file, or nil
// (accept any key) when path is empty.
func HostKeyCallback(path string) (ssh.HostKeyCallback, error) {
	if path == "" {
		return nil, nil
	}
	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load known_hosts %s: %w", path, err)
	}
	return cb, nil
}
