// Copyright (c) 2026 PiConnect Team
// PiConnect - remote storage inventory over SSH
// This source code is licensed under the MIT license found in the LICENSE file.

// Package browse lists directories on a connected host over SFTP.
package browse

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/piconnect/piconnect/internal/model"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// DirReader is the part of *sftp.Client used for listings.
type DirReader interface {
	ReadDir(p string) ([]os.FileInfo, error)
}

// List opens an SFTP subsystem on client and lists dir.
func List(client *ssh.Client, dir string) ([]model.FileEntry, error) {
	sc, err := sftp.NewClient(client)
	if err != nil {
		return nil, fmt.Errorf("failed to create sftp client: %w", err)
	}
	defer sc.Close()
	return ReadDir(sc, dir)
}

// ReadDir lists dir with directories first, then by name. Hidden entries
// are included.
func ReadDir(r DirReader, dir string) ([]model.FileEntry, error) {
	if dir == "" {
		dir = "."
	}
	infos, err := r.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote directory %s: %w", dir, err)
	}

	entries := make([]model.FileEntry, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, model.FileEntry{
			Name:     fi.Name(),
			Path:     path.Join(dir, fi.Name()),
			IsDir:    fi.IsDir(),
			Size:     fi.Size(),
			Modified: fi.ModTime(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}
