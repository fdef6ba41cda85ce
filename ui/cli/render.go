// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-yaml"
	"github.com/piconnect/piconnect/internal/i18n"
	"github.com/piconnect/piconnect/internal/model"
)

type outputFormat int

const (
	formatTable outputFormat = iota
	formatJSON
	formatYAML
)

func formatterFor(name string) (outputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table":
		return formatTable, nil
	case "json":
		return formatJSON, nil
	case "yaml", "yml":
		return formatYAML, nil
	}
	return formatTable, errors.New(i18n.T("cli.error_format", name))
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func encode(w io.Writer, f outputFormat, v any) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("format %d is not an encoding", f)
}

// printConnections writes conns with one table row per storage device.
func printConnections(w io.Writer, format string, conns []model.Connection) error {
	f, err := formatterFor(format)
	if err != nil {
		return err
	}
	if conns == nil {
		conns = []model.Connection{}
	}
	if f != formatTable {
		return encode(w, f, conns)
	}
	if len(conns) == 0 {
		_, err := fmt.Fprintln(w, i18n.T("cli.no_connections"))
		return err
	}

	t := newTable(
		i18n.T("table.id"), i18n.T("table.name"), i18n.T("table.user"),
		i18n.T("table.device"), i18n.T("table.mount"),
		i18n.T("table.total"), i18n.T("table.free"), i18n.T("table.used"),
	)
	for _, c := range conns {
		if len(c.StorageDevices) == 0 {
			t.Row(c.ID, c.Name, c.Username, i18n.T("cli.no_devices"), "", "", "", "")
			continue
		}
		for _, d := range c.StorageDevices {
			t.Row(c.ID, c.Name, c.Username, d.Name, d.MountPoint,
				humanize.Bytes(d.SizeTotal), humanize.Bytes(d.SizeFree),
				fmt.Sprintf("%.0f%%", d.UsedPercent()))
		}
	}
	_, err = fmt.Fprintln(w, t.String())
	return err
}

// printEntries writes a directory listing.
func printEntries(w io.Writer, format string, entries []model.FileEntry) error {
	f, err := formatterFor(format)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []model.FileEntry{}
	}
	if f != formatTable {
		return encode(w, f, entries)
	}

	t := newTable(i18n.T("table.entry"), i18n.T("table.kind"), i18n.T("table.size"), i18n.T("table.modified"))
	for _, e := range entries {
		kind, size := i18n.T("table.file"), humanize.Bytes(uint64(max(e.Size, 0)))
		name := e.Name
		if e.IsDir {
			kind, size = i18n.T("table.dir"), ""
			name += "/"
		}
		modified := ""
		if !e.Modified.IsZero() {
			modified = e.Modified.Format("2006-01-02 15:04")
		}
		t.Row(name, kind, size, modified)
	}
	_, err = fmt.Fprintln(w, t.String())
	return err
}
