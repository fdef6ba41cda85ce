// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/piconnect/piconnect/internal/core"
	"github.com/piconnect/piconnect/internal/i18n"
	"github.com/piconnect/piconnect/internal/registry"
	"github.com/piconnect/piconnect/internal/remote"
	"github.com/piconnect/piconnect/internal/testutil"
)

const dfOut = "Filesystem Size Used Avail Use% Mounted on\n/dev/sda1 20G - 5G - /mnt/backup\n"

func newTestAPI(t *testing.T) (*API, *testutil.SSHServer, *registry.Registry) {
	t.Helper()
	i18n.Init("en")
	srv := testutil.NewSSHServer(t, "pi", "raspberry", map[string]string{"df -h": dfOut})
	reg := registry.New()
	return New(core.NewService(reg)), srv, reg
}

func TestConnectToPi_Success(t *testing.T) {
	a, srv, _ := newTestAPI(t)

	ok, err := a.ConnectToPi(srv.Addr, "pi", "raspberry")
	if err != nil || !ok {
		t.Fatalf("ConnectToPi = %v, %v", ok, err)
	}
	pis, err := a.GetConnectedPis()
	if err != nil {
		t.Fatalf("GetConnectedPis: %v", err)
	}
	if len(pis) != 1 || pis[0].IP != srv.Addr || !pis[0].Connected {
		t.Fatalf("unexpected registry snapshot %+v", pis)
	}
	if len(pis[0].StorageDevices) != 1 || pis[0].StorageDevices[0].SizeTotal != 20_000_000_000 {
		t.Fatalf("unexpected devices %+v", pis[0].StorageDevices)
	}
}

func TestConnectToPi_AuthFailure(t *testing.T) {
	a, srv, reg := newTestAPI(t)

	ok, err := a.ConnectToPi(srv.Addr, "pi", "wrong")
	if ok || err == nil {
		t.Fatalf("expected failure, got %v, %v", ok, err)
	}
	if !strings.Contains(err.Error(), "authentication") {
		t.Fatalf("error should mention authentication: %q", err.Error())
	}
	if reg.Len() != 0 {
		t.Fatalf("registry changed after auth failure")
	}
}

func TestConnectToPi_TransportFailure(t *testing.T) {
	a, _, reg := newTestAPI(t)
	addr := testutil.ClosedAddr(t)

	ok, err := a.ConnectToPi(addr, "pi", "raspberry")
	if ok || err == nil || !strings.HasPrefix(err.Error(), "Failed to connect to "+addr) {
		t.Fatalf("unexpected result %v, %v", ok, err)
	}
	if reg.Len() != 0 {
		t.Fatalf("registry changed after transport failure")
	}
}

func TestConnectToPi_InventoryFailure(t *testing.T) {
	a, srv, reg := newTestAPI(t)
	srv.RejectSessions(true)

	_, err := a.ConnectToPi(srv.Addr, "pi", "raspberry")
	if err == nil || !strings.Contains(err.Error(), "failed to get storage devices") {
		t.Fatalf("unexpected error %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("registry changed after inventory failure")
	}
}

func TestListDirectory_NotFound(t *testing.T) {
	a, _, _ := newTestAPI(t)
	_, err := a.ListDirectory("nope", "x", "/")
	if err == nil || err.Error() != "No connection with id nope" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestMessage(t *testing.T) {
	i18n.Init("en")
	cause := errors.New("boom")
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{cause, "boom"},
		{remote.Wrap(remote.KindTransport, "h", cause), "Failed to connect to h: boom"},
		{remote.Wrap(remote.KindHandshake, "h", cause), "SSH handshake with h failed: boom"},
		{remote.Wrap(remote.KindAuth, "h", cause), "SSH authentication with h failed: boom"},
		{remote.Wrap(remote.KindInventory, "h", cause), "Connected to h but failed to get storage devices: boom"},
		{remote.Wrap(remote.KindRegistry, "h", cause), "Failed to store connection to h: boom"},
		{remote.Wrap(remote.KindBrowse, "h", cause), "Failed to access files on h: boom"},
		{remote.Wrap(remote.KindUnknown, "h", cause), "Connection to h failed: boom"},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
