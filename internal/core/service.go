// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piconnect/piconnect/internal/inventory"
	"github.com/piconnect/piconnect/internal/logging"
	"github.com/piconnect/piconnect/internal/model"
	"github.com/piconnect/piconnect/internal/registry"
	"github.com/piconnect/piconnect/internal/remote"
	"github.com/piconnect/piconnect/internal/security"
)

// ErrConnectionNotFound is returned when no registered connection has the
// requested identifier.
var ErrConnectionNotFound = errors.New("connection not found")

// Service connects to hosts and keeps the resulting records.
type Service struct {
	reg     *registry.Registry
	dial    DialFunc
	command string
}

// Option customizes a Service.
type Option func(*Service)

// WithDialer replaces the SSH dialer.
func WithDialer(d DialFunc) Option { return func(s *Service) { s.dial = d } }

// WithInventoryCommand sets the filesystem-usage command.
func WithInventoryCommand(cmd string) Option { return func(s *Service) { s.command = cmd } }

// NewService returns a service committing to reg. Without options it dials
// over SSH with remote defaults and runs inventory.DefaultCommand.
func NewService(reg *registry.Registry, opts ...Option) *Service {
	s := &Service{
		reg:     reg,
		dial:    SSHDialer(remote.Options{}),
		command: inventory.DefaultCommand,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Connect authenticates to host, takes the storage inventory and commits a
// connection record. The record is returned on success. On any failure the
// registry is left unchanged and the error carries the failed phase as a
// remote.Kind.
func (s *Service) Connect(host, username string, password security.Secret) (model.Connection, error) {
	if host == "" {
		return model.Connection{}, remote.Wrap(remote.KindTransport, host, errors.New("empty host"))
	}

	logging.Debugf("connect %s@%s: connecting", username, host)
	sess, err := s.dial(host, username, password)
	if err != nil {
		logging.Warnf("connect %s@%s: %v", username, host, err)
		return model.Connection{}, err
	}
	defer sess.Close()
	logging.Debugf("connect %s@%s: authenticated", username, host)

	devices, err := inventory.Collect(sess, s.command)
	if err != nil {
		logging.Warnf("connect %s@%s: inventory failed: %v", username, host, err)
		return model.Connection{}, remote.Wrap(remote.KindInventory, host, err)
	}
	logging.Debugf("connect %s@%s: %d storage device(s)", username, host, len(devices))

	rec := model.Connection{
		ID:             uuid.NewString(),
		Name:           model.DisplayName(host),
		IP:             host,
		Username:       username,
		Connected:      true,
		StorageDevices: devices,
	}
	if err := s.reg.Add(rec); err != nil {
		logging.Errorf("connect %s@%s: commit failed: %v", username, host, err)
		return model.Connection{}, remote.Wrap(remote.KindRegistry, host, err)
	}
	for _, d := range rec.StorageDevices {
		logging.Debugf("device %s at %s", d.Name, d.MountPoint)
	}
	logging.Infof("connected to %s with %d storage device(s)", host, len(devices))
	return rec.Clone(), nil
}

// Connections returns a snapshot of all committed connections.
func (s *Service) Connections() []model.Connection {
	return s.reg.List()
}

// ListDirectory re-authenticates to the host of connection id and lists dir
// over SFTP. The password is used once and not kept.
func (s *Service) ListDirectory(id string, password security.Secret, dir string) ([]model.FileEntry, error) {
	rec, ok := s.reg.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConnectionNotFound, id)
	}
	sess, err := s.dial(rec.IP, rec.Username, password)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	entries, err := sess.ReadDir(dir)
	if err != nil {
		return nil, remote.Wrap(remote.KindBrowse, rec.IP, err)
	}
	return entries, nil
}
