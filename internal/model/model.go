// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model holds the records shared between the establisher, the
// registry and the boundary layer.
package model

import (
	"fmt"
	"time"
)

// Connection is the stored result of a successful connect-and-inventory
// sequence. Records are never modified after creation.
type Connection struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	IP             string          `json:"ip" yaml:"ip"`
	Username       string          `json:"username" yaml:"username"`
	Connected      bool            `json:"connected" yaml:"connected"`
	StorageDevices []StorageDevice `json:"storageDevices" yaml:"storageDevices"`
}

// StorageDevice is a single storage device discovered on a remote host.
// SizeFree never exceeds SizeTotal.
type StorageDevice struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	MountPoint string `json:"mountPoint" yaml:"mountPoint"`
	SizeTotal  uint64 `json:"size_total" yaml:"size_total"`
	SizeFree   uint64 `json:"size_free" yaml:"size_free"`
}

// DisplayName returns the name shown for a connection to host.
func DisplayName(host string) string {
	return fmt.Sprintf("RbPi (%s)", host)
}

// String returns the user@host representation.
func (c Connection) String() string {
	return fmt.Sprintf("%s@%s", c.Username, c.IP)
}

// Clone returns a deep copy so the device slice is not shared.
func (c Connection) Clone() Connection {
	out := c
	if c.StorageDevices != nil {
		out.StorageDevices = make([]StorageDevice, len(c.StorageDevices))
		copy(out.StorageDevices, c.StorageDevices)
	}
	return out
}

// SizeUsed returns the number of bytes in use on the device.
func (d StorageDevice) SizeUsed() uint64 {
	return d.SizeTotal - d.SizeFree
}

// UsedPercent returns the used share of the device in percent. Devices
// with zero capacity report 0.
func (d StorageDevice) UsedPercent() float64 {
	if d.SizeTotal == 0 {
		return 0
	}
	return float64(d.SizeUsed()) / float64(d.SizeTotal) * 100
}

// FileEntry is one item of a remote directory listing.
type FileEntry struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"`
	IsDir    bool      `json:"is_dir" yaml:"is_dir"`
	Size     int64     `json:"size" yaml:"size"`
	Modified time.Time `json:"modified" yaml:"modified"`
}
