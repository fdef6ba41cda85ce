// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"github.com/piconnect/piconnect/internal/browse"
	"github.com/piconnect/piconnect/internal/model"
	"github.com/piconnect/piconnect/internal/remote"
	"github.com/piconnect/piconnect/internal/security"
)

// Session is the authenticated remote session the service works with.
type Session interface {
	Exec(cmd string) (string, error)
	ReadDir(dir string) ([]model.FileEntry, error)
	Close() error
}

// DialFunc opens an authenticated session. Errors must carry a
// remote.Kind of transport, handshake or auth.
type DialFunc func(host, user string, password security.Secret) (Session, error)

type sshSession struct{ *remote.Client }

func (s sshSession) ReadDir(dir string) ([]model.FileEntry, error) {
	return browse.List(s.SSH(), dir)
}

// SSHDialer returns a DialFunc backed by remote.Dial.
func SSHDialer(opts remote.Options) DialFunc {
	return func(host, user string, password security.Secret) (Session, error) {
		c, err := remote.Dial(host, user, password, opts)
		if err != nil {
			return nil, err
		}
		return sshSession{c}, nil
	}
}
