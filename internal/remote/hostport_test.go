// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package remote

import "testing"

func TestHostPortHelpers(t *testing.T) {
	cases := []struct {
		in    string
		host  string
		port  string
		canon string
	}{
		{"example.com", "example.com", "", "example.com:22"},
		{"example.com:2222", "example.com", "2222", "example.com:2222"},
		{"192.168.1.10", "192.168.1.10", "", "192.168.1.10:22"},
		{"192.168.1.10:2200", "192.168.1.10", "2200", "192.168.1.10:2200"},
		{"[2001:db8::1]", "2001:db8::1", "", "[2001:db8::1]:22"},
		{"[2001:db8::1]:2200", "2001:db8::1", "2200", "[2001:db8::1]:2200"},
		{"2001:db8::1", "2001:db8::1", "", "[2001:db8::1]:22"},
		{"user@example.com", "example.com", "", "example.com:22"},
		{"user@[2001:db8::1]:2222", "2001:db8::1", "2222", "[2001:db8::1]:2222"},
	}
	for _, c := range cases {
		h, p, err := ParseHostPort(c.in)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", c.in, err)
		}
		if h != c.host || p != c.port {
			t.Errorf("ParseHostPort(%q) => host=%q port=%q; want host=%q port=%q", c.in, h, p, c.host, c.port)
		}
		if canon := CanonicalizeHostPort(c.in, ""); canon != c.canon {
			t.Errorf("CanonicalizeHostPort(%q) => %q; want %q", c.in, canon, c.canon)
		}
		if joined := JoinHostPort(h, p, "22"); joined != c.canon {
			t.Errorf("JoinHostPort(%q,%q,22) => %q; want %q", h, p, joined, c.canon)
		}
	}
}

func TestParseHostPort_Errors(t *testing.T) {
	for _, in := range []string{"", "  ", "user@", "[::1", "[::1]x", "[::1]:"} {
		if _, _, err := ParseHostPort(in); err == nil {
			t.Errorf("ParseHostPort(%q) expected error", in)
		}
	}
	if got := CanonicalizeHostPort("", "22"); got != "" {
		t.Errorf("unparsable input should be returned unchanged, got %q", got)
	}
}

func TestCanonicalizeHostPort_CustomDefault(t *testing.T) {
	if got := CanonicalizeHostPort("pi.local", "2222"); got != "pi.local:2222" {
		t.Fatalf("got %q", got)
	}
}
