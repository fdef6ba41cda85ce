// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "testing"

func TestConnectionClone_DoesNotShareDevices(t *testing.T) {
	orig := Connection{
		ID:             "c1",
		IP:             "10.0.0.2",
		Username:       "pi",
		Connected:      true,
		StorageDevices: []StorageDevice{{ID: "d1", Name: "External Drive (/dev/sda1)", SizeTotal: 10, SizeFree: 5}},
	}
	cp := orig.Clone()
	cp.StorageDevices[0].Name = "changed"
	if orig.StorageDevices[0].Name != "External Drive (/dev/sda1)" {
		t.Fatalf("clone shares device storage with original")
	}
}

func TestConnectionClone_NilDevices(t *testing.T) {
	cp := Connection{ID: "c1"}.Clone()
	if cp.StorageDevices != nil {
		t.Fatalf("expected nil devices, got %v", cp.StorageDevices)
	}
}

func TestStorageDevice_UsedPercent(t *testing.T) {
	tests := []struct {
		name string
		dev  StorageDevice
		want float64
	}{
		{"empty device", StorageDevice{}, 0},
		{"half used", StorageDevice{SizeTotal: 20, SizeFree: 10}, 50},
		{"full", StorageDevice{SizeTotal: 20, SizeFree: 0}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dev.UsedPercent(); got != tt.want {
				t.Errorf("UsedPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplayNameAndString(t *testing.T) {
	if got := DisplayName("192.168.1.20"); got != "RbPi (192.168.1.20)" {
		t.Fatalf("DisplayName = %q", got)
	}
	c := Connection{Username: "pi", IP: "192.168.1.20"}
	if c.String() != "pi@192.168.1.20" {
		t.Fatalf("String = %q", c.String())
	}
}
