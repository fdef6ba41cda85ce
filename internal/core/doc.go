// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Package core establishes connections to remote hosts and commits them to
// the registry. A connection attempt runs strictly in sequence:
//
//	connecting -> handshaking -> authenticating -> inventorying -> committed
//
// Any step may fail, which ends the attempt without touching the registry.
// Nothing is retried and credentials are never stored.
package core
