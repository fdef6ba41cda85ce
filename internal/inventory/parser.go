// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package inventory

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/piconnect/piconnect/internal/model"
)

const (
	// BytesPerGB is the decimal gigabyte used for all size conversions.
	BytesPerGB = 1_000_000_000
	// gbPerTB scales terabyte values into gigabytes.
	gbPerTB = 1000

	minFields = 6
)

var externalDevice = regexp.MustCompile(`^/dev/sd[a-z]+[0-9]*$`)

// newID is swapped in tests that need deterministic identifiers.
var newID = uuid.NewString

// IsExternalDrive reports whether a df line with the given device path and
// mount point describes a secondary, physically attached disk.
func IsExternalDrive(device, mountPoint string) bool {
	return externalDevice.MatchString(device) && mountPoint != "/"
}

// ExternalDriveName returns the display name for a drive found by the parser.
func ExternalDriveName(device string) string {
	return fmt.Sprintf("External Drive (%s)", device)
}

// ParseSizeGB parses a df size field such as "20G", "1.5T" or "931" into
// gigabytes.
func ParseSizeGB(field string) (float64, error) {
	s := strings.TrimSpace(field)
	s = strings.ReplaceAll(s, ",", ".")
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "T"):
		s = strings.TrimSuffix(s, "T")
		scale = gbPerTB
	case strings.HasSuffix(s, "G"):
		s = strings.TrimSuffix(s, "G")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", field, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid size %q: out of range", field)
	}
	return v * scale, nil
}

// ParseSizeBytes parses a df size field and converts it to bytes.
func ParseSizeBytes(field string) (uint64, error) {
	gb, err := ParseSizeGB(field)
	if err != nil {
		return 0, err
	}
	b := gb * BytesPerGB
	if b >= math.MaxUint64 {
		return 0, fmt.Errorf("invalid size %q: out of range", field)
	}
	return uint64(b), nil
}

// ParseLine parses a single df line. ok is false when the line has too few
// fields or does not describe an external drive.
func ParseLine(line string) (dev model.StorageDevice, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return dev, false
	}
	device, mount := fields[0], fields[5]
	if !IsExternalDrive(device, mount) {
		return dev, false
	}

	total, err := ParseSizeBytes(fields[1])
	if err != nil {
		// keep a non-zero capacity so usage ratios stay defined
		total = 1
	}
	free, err := ParseSizeBytes(fields[3])
	if err != nil {
		free = 0
	}
	if free > total {
		free = total
	}

	return model.StorageDevice{
		ID:         newID(),
		Name:       ExternalDriveName(device),
		MountPoint: mount,
		SizeTotal:  total,
		SizeFree:   free,
	}, true
}

// ParseDiskUsage parses the full output of the usage command. Devices are
// returned in the order their lines appear. Lines of any length are read.
func ParseDiskUsage(output string) []model.StorageDevice {
	devices := []model.StorageDevice{}
	for i, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if i == 0 && isHeader(line) {
			continue
		}
		if dev, ok := ParseLine(line); ok {
			devices = append(devices, dev)
		}
	}
	return devices
}

func isHeader(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "Filesystem")
}
