// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package remote

import (
	"errors"
	"net"
	"strings"
)

// DefaultPort is the standard remote-shell port.
const DefaultPort = "22"

// ParseHostPort splits inputs like "host", "host:2222", "[::1]:22",
// "2001:db8::1" or "user@host" into host and port. port is empty when the
// input has none.
func ParseHostPort(in string) (host, port string, err error) {
	s := strings.TrimSpace(in)
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return "", "", errors.New("empty host")
	}

	if strings.HasPrefix(s, "[") {
		end := strings.Index(s, "]")
		if end < 0 {
			return "", "", errors.New("missing ']' in host " + in)
		}
		host = s[1:end]
		rest := s[end+1:]
		if rest != "" {
			if !strings.HasPrefix(rest, ":") || len(rest) == 1 {
				return "", "", errors.New("invalid port in host " + in)
			}
			port = rest[1:]
		}
		return host, port, nil
	}

	// bare IPv6 literal
	if strings.Count(s, ":") > 1 {
		return s, "", nil
	}
	if strings.Contains(s, ":") {
		return net.SplitHostPort(s)
	}
	return s, "", nil
}

// JoinHostPort joins host and port, using defaultPort when port is empty.
func JoinHostPort(host, port, defaultPort string) string {
	if port == "" {
		port = defaultPort
	}
	return net.JoinHostPort(host, port)
}

// CanonicalizeHostPort returns a dialable host:port for in. Unparsable input
// is returned unchanged.
func CanonicalizeHostPort(in, defaultPort string) string {
	if defaultPort == "" {
		defaultPort = DefaultPort
	}
	h, p, err := ParseHostPort(in)
	if err != nil {
		return in
	}
	return JoinHostPort(h, p, defaultPort)
}
