// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestSecretRedactionAndJSON(t *testing.T) {
	s := FromString("supersecret")
	for _, verb := range []string{"%v", "%s", "%+v", "%#v", "%q"} {
		if got := fmt.Sprintf(verb, s); got != "[SECRET]" {
			t.Fatalf("unexpected fmt output for %s: %q", verb, got)
		}
	}
	b, err := json.Marshal(struct{ P Secret }{s})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(b) != `{"P":"[SECRET]"}` {
		t.Fatalf("unexpected json marshal: %s", string(b))
	}
	if s.Reveal() != "supersecret" {
		t.Fatalf("Reveal returned %q", s.Reveal())
	}
}

func TestSecretZero(t *testing.T) {
	s := FromString("abc123")
	(&s).Zero()
	for i, c := range s {
		if c != 0 {
			t.Fatalf("expected zeroed byte at index %d, got %d", i, c)
		}
	}
	var nilSecret *Secret
	nilSecret.Zero()
}

func TestFromBytesCopies(t *testing.T) {
	in := []byte("pw")
	s := FromBytes(in)
	in[0] = 'x'
	if s.Reveal() != "pw" {
		t.Fatalf("FromBytes must copy input, got %q", s.Reveal())
	}
	if FromString("").Empty() != true {
		t.Fatalf("empty secret should report Empty")
	}
}
