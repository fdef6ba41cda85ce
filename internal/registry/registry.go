// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Package registry keeps the connections established during the life of
// the process. It is append-only: records are written once per successful
// connect and never updated or removed.
package registry

import (
	"errors"
	"sync"

	"github.com/piconnect/piconnect/internal/model"
)

// ErrInvalidRecord is returned by Add for records that do not describe a
// completed connection.
var ErrInvalidRecord = errors.New("record is not a completed connection")

// Registry is a concurrency-safe, append-only list of connections. The zero
// value is ready to use.
type Registry struct {
	mu    sync.Mutex
	conns []model.Connection
}

// New returns an empty registry.
func New() *Registry { return &Registry{} }

// List returns a point-in-time deep copy of all records in insertion order.
func (r *Registry) List() []model.Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Connection, len(r.conns))
	for i, c := range r.conns {
		out[i] = c.Clone()
	}
	return out
}

// Add appends a copy of c. Locking cannot fail, so the only error is
// ErrInvalidRecord for a record without an identifier or not marked
// connected. Callers report it as a failed commit.
func (r *Registry) Add(c model.Connection) error {
	if c.ID == "" || !c.Connected {
		return ErrInvalidRecord
	}
	cp := c.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns = append(r.conns, cp)
	return nil
}

// Find returns a copy of the record with the given identifier.
func (r *Registry) Find(id string) (model.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.conns {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return model.Connection{}, false
}

// Len returns the number of records.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}
