// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package remote

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind identifies the phase of a connection attempt that failed.
type Kind int

const (
	KindUnknown Kind = iota
	// KindTransport: the TCP connection could not be opened or configured.
	KindTransport
	// KindHandshake: the SSH protocol handshake failed.
	KindHandshake
	// KindAuth: the credentials were rejected.
	KindAuth
	// KindInventory: authenticated, but running or reading the diagnostic
	// command failed.
	KindInventory
	// KindRegistry: the connection record could not be committed.
	KindRegistry
	// KindBrowse: authenticated, but a remote file operation failed.
	KindBrowse
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHandshake:
		return "handshake"
	case KindAuth:
		return "auth"
	case KindInventory:
		return "inventory"
	case KindRegistry:
		return "registry"
	case KindBrowse:
		return "browse"
	default:
		return "unknown"
	}
}

// Error carries the failed phase, the host and the underlying cause.
type Error struct {
	Kind Kind
	Host string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failure for %s: %v", e.Kind, e.Host, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as an *Error of the given kind. A nil err stays nil.
func Wrap(kind Kind, host string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Host: host, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsAuthenticationError reports whether err looks like rejected credentials.
func IsAuthenticationError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unable to authenticate") ||
		strings.Contains(msg, "authentication failed") ||
		strings.Contains(msg, "permission denied")
}

// IsTimeoutError reports whether err was caused by a network timeout.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "i/o timeout") || strings.Contains(msg, "deadline exceeded")
}

// IsConnectionRefusedError reports whether the host actively refused or was
// unreachable.
func IsConnectionRefusedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no route to host")
}
