// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-romtext.
//
// go-romtext is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-romtext is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-romtext.  If not, see <https://www.gnu.org/licenses/>.


package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Path represents a parsed archive path with optional internal path.
type Path struct {
	ArchivePath  string // Path to the archive file
	InternalPath string // Path inside the archive (empty means auto-detect)
}

// archiveExtensions are the supported archive extensions.
var archiveExtensions = []string{".zip", ".7z", ".rar"}

// ParsePath parses a path that may reference a file inside an archive.
// It supports MiSTer-style paths like "/roms/gba.zip/rpg/game.gba".
//
// Returns:
//   - (*Path, nil) if the path contains an archive reference
//   - (nil, nil) if the path is not an archive reference
//   - (nil, error) if there was an error checking the path
//
//nolint:nilnil // nil,nil is documented API behavior
func ParsePath(fsys afero.Fs, path string) (*Path, error) {
	normalized := strings.ToLower(filepath.ToSlash(path))

	for _, ext := range archiveExtensions {
		idx := strings.Index(normalized, ext+"/")
		if idx == -1 {
			continue
		}

		archivePath := path[:idx+len(ext)]
		exists, err := fileExists(fsys, archivePath)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		return &Path{
			ArchivePath:  archivePath,
			InternalPath: path[idx+len(ext)+1:],
		}, nil
	}

	if !IsArchiveExtension(filepath.Ext(path)) {
		return nil, nil
	}
	exists, err := fileExists(fsys, path)
	if err != nil || !exists {
		return nil, err
	}
	return &Path{ArchivePath: path}, nil
}

func fileExists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat archive %s: %w", path, err)
	}
}

// IsArchivePath checks if a path references an archive.
// This is a quick check that doesn't verify file existence.
func IsArchivePath(path string) bool {
	normalized := strings.ToLower(filepath.ToSlash(path))

	for _, ext := range archiveExtensions {
		if strings.Contains(normalized, ext+"/") {
			return true
		}
	}

	return IsArchiveExtension(filepath.Ext(path))
}
