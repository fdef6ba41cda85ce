// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Package inventory turns the output of a filesystem-usage command run on a
// remote host into storage device records.
//
// Only the df usage table is consulted. A line qualifies as an external
// drive when it has at least six whitespace separated fields, its device
// path matches /dev/sd<letters>[<digits>] and it is not mounted at "/".
// Field 1 is the total size, field 3 the free size and field 5 the mount
// point. Sizes are gigabyte values with an optional G suffix or terabyte
// values with a T suffix; both are converted with decimal units
// (1 GB = 1e9 bytes).
package inventory
