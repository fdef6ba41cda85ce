// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/piconnect/piconnect/internal/model"
	"github.com/piconnect/piconnect/internal/registry"
	"github.com/piconnect/piconnect/internal/remote"
	"github.com/piconnect/piconnect/internal/security"
)

const dfOut = `Filesystem      Size  Used Avail Use% Mounted on
/dev/root        29G  4.1G   24G  15% /
/dev/sda1        20G     -    5G    - /mnt/backup
`

type fakeSession struct {
	out     string
	execErr error
	entries []model.FileEntry
	dirErr  error
	closed  bool
	cmds    []string
	dirs    []string
}

func (f *fakeSession) Exec(cmd string) (string, error) {
	f.cmds = append(f.cmds, cmd)
	return f.out, f.execErr
}

func (f *fakeSession) ReadDir(dir string) ([]model.FileEntry, error) {
	f.dirs = append(f.dirs, dir)
	return f.entries, f.dirErr
}

func (f *fakeSession) Close() error { f.closed = true; return nil }

func fakeDialer(sess *fakeSession, err error) (DialFunc, *[]string) {
	var calls []string
	return func(host, user string, password security.Secret) (Session, error) {
		calls = append(calls, user+"@"+host+":"+password.Reveal())
		if err != nil {
			return nil, err
		}
		return sess, nil
	}, &calls
}

func TestConnect_Success(t *testing.T) {
	reg := registry.New()
	sess := &fakeSession{out: dfOut}
	dial, calls := fakeDialer(sess, nil)
	svc := NewService(reg, WithDialer(dial))

	rec, err := svc.Connect("192.168.1.20", "pi", security.FromString("raspberry"))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if len(*calls) != 1 || (*calls)[0] != "pi@192.168.1.20:raspberry" {
		t.Fatalf("unexpected dial calls: %v", *calls)
	}
	if !sess.closed {
		t.Errorf("session not closed after connect")
	}
	if sess.cmds[0] != "df -h" {
		t.Errorf("unexpected command %q", sess.cmds[0])
	}
	if !rec.Connected || rec.ID == "" || rec.Name != "RbPi (192.168.1.20)" || rec.IP != "192.168.1.20" || rec.Username != "pi" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(rec.StorageDevices) != 1 {
		t.Fatalf("expected 1 device, got %+v", rec.StorageDevices)
	}
	d := rec.StorageDevices[0]
	if d.MountPoint != "/mnt/backup" || d.SizeTotal != 20_000_000_000 || d.SizeFree != 5_000_000_000 {
		t.Fatalf("unexpected device: %+v", d)
	}

	list := svc.Connections()
	if len(list) != 1 || !reflect.DeepEqual(list[0], rec) {
		t.Fatalf("registry does not hold the returned record: %+v", list)
	}
}

func TestConnect_FreshIdentifiersPerConnect(t *testing.T) {
	reg := registry.New()
	dial, _ := fakeDialer(&fakeSession{out: dfOut}, nil)
	svc := NewService(reg, WithDialer(dial))

	a, err := svc.Connect("h", "pi", security.FromString("pw"))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	b, err := svc.Connect("h", "pi", security.FromString("pw"))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if a.ID == b.ID || a.StorageDevices[0].ID == b.StorageDevices[0].ID {
		t.Fatalf("identifiers reused across connects")
	}
	if reg.Len() != 2 {
		t.Fatalf("same host twice should yield two records, got %d", reg.Len())
	}
}

func TestConnect_DialFailuresLeaveRegistryUnchanged(t *testing.T) {
	kinds := []remote.Kind{remote.KindTransport, remote.KindHandshake, remote.KindAuth}
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			reg := registry.New()
			dial, _ := fakeDialer(nil, remote.Wrap(k, "h", errors.New("boom")))
			svc := NewService(reg, WithDialer(dial))

			rec, err := svc.Connect("h", "pi", security.FromString("pw"))
			if !remote.IsKind(err, k) {
				t.Fatalf("expected kind %v, got %v", k, err)
			}
			if rec.Connected || rec.ID != "" {
				t.Fatalf("failed connect returned a record: %+v", rec)
			}
			if reg.Len() != 0 {
				t.Fatalf("registry mutated on %v failure", k)
			}
		})
	}
}

func TestConnect_InventoryFailure(t *testing.T) {
	reg := registry.New()
	sess := &fakeSession{execErr: errors.New("failed to create channel: rejected")}
	dial, _ := fakeDialer(sess, nil)
	svc := NewService(reg, WithDialer(dial))

	_, err := svc.Connect("h", "pi", security.FromString("pw"))
	if !remote.IsKind(err, remote.KindInventory) {
		t.Fatalf("expected KindInventory, got %v", err)
	}
	if !sess.closed {
		t.Errorf("session must be closed on inventory failure")
	}
	if reg.Len() != 0 {
		t.Fatalf("partial success must not be recorded")
	}
}

func TestConnect_EmptyHost(t *testing.T) {
	dial, calls := fakeDialer(&fakeSession{}, nil)
	svc := NewService(registry.New(), WithDialer(dial))
	_, err := svc.Connect("", "pi", nil)
	if !remote.IsKind(err, remote.KindTransport) {
		t.Fatalf("expected KindTransport, got %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("dialer must not be called for an empty host")
	}
}

func TestConnect_CustomInventoryCommand(t *testing.T) {
	sess := &fakeSession{out: ""}
	dial, _ := fakeDialer(sess, nil)
	svc := NewService(registry.New(), WithDialer(dial), WithInventoryCommand("df -hP"))
	rec, err := svc.Connect("h", "pi", nil)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if sess.cmds[0] != "df -hP" {
		t.Fatalf("unexpected command %q", sess.cmds[0])
	}
	if rec.StorageDevices == nil || len(rec.StorageDevices) != 0 {
		t.Fatalf("expected empty non-nil device list, got %#v", rec.StorageDevices)
	}
}

func TestListDirectory(t *testing.T) {
	reg := registry.New()
	sess := &fakeSession{out: dfOut, entries: []model.FileEntry{{Name: "a", Path: "/mnt/backup/a"}}}
	dial, calls := fakeDialer(sess, nil)
	svc := NewService(reg, WithDialer(dial))

	rec, err := svc.Connect("h", "pi", security.FromString("pw"))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	entries, err := svc.ListDirectory(rec.ID, security.FromString("pw2"), "/mnt/backup")
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "a" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if (*calls)[1] != "pi@h:pw2" {
		t.Fatalf("listing must authenticate with the supplied password, got %v", *calls)
	}
	if sess.dirs[0] != "/mnt/backup" {
		t.Fatalf("unexpected dir %q", sess.dirs[0])
	}

	if _, err := svc.ListDirectory("missing", nil, "/"); !errors.Is(err, ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound, got %v", err)
	}

	sess.dirErr = errors.New("permission denied")
	_, err = svc.ListDirectory(rec.ID, nil, "/root")
	if !remote.IsKind(err, remote.KindBrowse) || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("expected KindBrowse, got %v", err)
	}
}
