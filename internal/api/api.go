// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Package api exposes the operations a front end invokes. Errors leave this
// package as plain localized messages; callers only display them.
package api

import (
	"errors"

	"github.com/piconnect/piconnect/internal/core"
	"github.com/piconnect/piconnect/internal/i18n"
	"github.com/piconnect/piconnect/internal/model"
	"github.com/piconnect/piconnect/internal/remote"
	"github.com/piconnect/piconnect/internal/security"
)

// API is the front end facing surface over a core.Service.
type API struct {
	svc *core.Service
}

// New wraps svc.
func New(svc *core.Service) *API { return &API{svc: svc} }

// ConnectToPi connects to ip and records the connection. It returns true
// on success.
func (a *API) ConnectToPi(ip, username, password string) (bool, error) {
	secret := security.FromString(password)
	defer secret.Zero()

	if _, err := a.svc.Connect(ip, username, secret); err != nil {
		return false, errors.New(Message(err))
	}
	return true, nil
}

// GetConnectedPis returns the current registry snapshot. The error is
// always nil and exists for symmetry with the other operations.
func (a *API) GetConnectedPis() ([]model.Connection, error) {
	return a.svc.Connections(), nil
}

// ListDirectory lists dir on the host of connection piID.
func (a *API) ListDirectory(piID, password, dir string) ([]model.FileEntry, error) {
	secret := security.FromString(password)
	defer secret.Zero()

	entries, err := a.svc.ListDirectory(piID, secret, dir)
	if errors.Is(err, core.ErrConnectionNotFound) {
		return nil, errors.New(i18n.T("connect.error_not_found", piID))
	}
	if err != nil {
		return nil, errors.New(Message(err))
	}
	return entries, nil
}

// Message renders err for display, naming the failed phase, the host and
// the underlying cause.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *remote.Error
	if !errors.As(err, &re) {
		return err.Error()
	}
	var id string
	switch re.Kind {
	case remote.KindTransport:
		id = "connect.error_transport"
	case remote.KindHandshake:
		id = "connect.error_handshake"
	case remote.KindAuth:
		id = "connect.error_auth"
	case remote.KindInventory:
		id = "connect.error_inventory"
	case remote.KindRegistry:
		id = "connect.error_registry"
	case remote.KindBrowse:
		id = "connect.error_browse"
	default:
		id = "connect.error_unknown"
	}
	return i18n.T(id, re.Host, re.Err)
}
