// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for PiConnect.
//
// Usage:
//
//	go run . connect <host> [flags]
//	./piconnect list [flags]
//
// See --help for options.
package main

import (
	"os"

	"github.com/piconnect/piconnect/internal/logging"
	"github.com/piconnect/piconnect/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
