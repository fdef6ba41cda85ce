// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line front end using Cobra. It loads
// configuration, wires the core service behind the api boundary and prints
// results. Business logic stays in internal/core.
package cli
