// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package inventory

import (
	"fmt"

	"github.com/piconnect/piconnect/internal/logging"
	"github.com/piconnect/piconnect/internal/model"
)

// DefaultCommand is the filesystem-usage command run on the remote host.
const DefaultCommand = "df -h"

// Executor runs a single command on a fresh channel and returns its
// complete standard output.
type Executor interface {
	Exec(cmd string) (string, error)
}

// Collect runs command through exec and parses its output. An empty
// command falls back to DefaultCommand.
func Collect(exec Executor, command string) ([]model.StorageDevice, error) {
	if command == "" {
		command = DefaultCommand
	}
	out, err := exec.Exec(command)
	if err != nil {
		return nil, fmt.Errorf("failed to run %q: %w", command, err)
	}
	devices := ParseDiskUsage(out)
	logging.Debugf("inventory: %d external drive(s) found", len(devices))
	return devices, nil
}
