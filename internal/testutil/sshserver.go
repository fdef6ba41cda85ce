// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Package testutil provides in-process SSH endpoints for tests so no real
// remote host is needed.
package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"net"
	"sync"
	"testing"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SSHServer is a minimal SSH server accepting one user/password pair. It
// answers exec requests from Outputs and serves an in-memory SFTP
// subsystem.
type SSHServer struct {
	Addr    string
	HostKey ssh.PublicKey

	mu             sync.Mutex
	outputs        map[string]string
	rejectSessions bool
	execs          []string
	sftpHandlers   sftp.Handlers
}

// NewSSHServer starts a server on 127.0.0.1 that is stopped on test cleanup.
func NewSSHServer(t testing.TB, user, password string, outputs map[string]string) *SSHServer {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate host key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatalf("host key signer: %v", err)
	}
	cfg := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == user && string(pass) == password {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %q", c.User())
		},
	}
	cfg.AddHostKey(signer)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	s := &SSHServer{
		Addr:         ln.Addr().String(),
		HostKey:      signer.PublicKey(),
		outputs:      outputs,
		sftpHandlers: sftp.InMemHandler(),
	}
	go func() {
		for {
			nConn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(nConn, cfg)
		}
	}()
	return s
}

// RejectSessions makes the server refuse every session channel, which
// lets tests fail after authentication succeeded.
func (s *SSHServer) RejectSessions(reject bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectSessions = reject
}

// Execs returns the commands received so far.
func (s *SSHServer) Execs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.execs...)
}

func (s *SSHServer) serve(nConn net.Conn, cfg *ssh.ServerConfig) {
	defer nConn.Close()
	sconn, chans, reqs, err := ssh.NewServerConn(nConn, cfg)
	if err != nil {
		return
	}
	defer sconn.Close()
	go ssh.DiscardRequests(reqs)

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			_ = newCh.Reject(ssh.UnknownChannelType, "unsupported channel type")
			continue
		}
		s.mu.Lock()
		reject := s.rejectSessions
		s.mu.Unlock()
		if reject {
			_ = newCh.Reject(ssh.Prohibited, "sessions disabled")
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			continue
		}
		go s.handleSession(ch, requests)
	}
}

func (s *SSHServer) handleSession(ch ssh.Channel, requests <-chan *ssh.Request) {
	defer ch.Close()
	for req := range requests {
		switch req.Type {
		case "exec":
			var payload struct{ Command string }
			if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
				_ = req.Reply(false, nil)
				continue
			}
			_ = req.Reply(true, nil)
			s.exec(ch, payload.Command)
			return
		case "subsystem":
			var payload struct{ Name string }
			if err := ssh.Unmarshal(req.Payload, &payload); err != nil || payload.Name != "sftp" {
				_ = req.Reply(false, nil)
				continue
			}
			_ = req.Reply(true, nil)
			srv := sftp.NewRequestServer(ch, s.sftpHandlers)
			_ = srv.Serve()
			_ = srv.Close()
			return
		default:
			_ = req.Reply(false, nil)
		}
	}
}

func (s *SSHServer) exec(ch ssh.Channel, cmd string) {
	s.mu.Lock()
	s.execs = append(s.execs, cmd)
	out, ok := s.outputs[cmd]
	s.mu.Unlock()

	status := uint32(0)
	if ok {
		_, _ = io.WriteString(ch, out)
	} else {
		_, _ = io.WriteString(ch.Stderr(), cmd+": command not found\n")
		status = 127
	}
	_, _ = ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
}

// SilentListener accepts TCP connections and never speaks SSH.
func SilentListener(t testing.TB) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	var mu sync.Mutex
	var conns []net.Conn
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	return ln.Addr().String()
}

// ClosedAddr returns a loopback address on which nothing listens.
func ClosedAddr(t testing.TB) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}
