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
	"fmt"
	"path/filepath"
	"strings"
)

// romExtensions are the file extensions of Game Boy family dumps.
var romExtensions = map[string]bool{
	".gb":  true,
	".sgb": true,
	".gbc": true,
	".cgb": true,
	".gba": true,
	".agb": true,
}

// IsROMFile checks if a filename has a ROM extension, looking through one
// stream extension so that "game.gbc.zst" counts.
func IsROMFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if IsStreamExtension(ext) {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(filename, filepath.Ext(filename))))
	}
	return romExtensions[ext]
}

// DetectROMFile returns the first ROM file listed in an archive.
func DetectROMFile(arc Archive) (string, error) {
	entries, err := arc.List()
	if err != nil {
		return "", fmt.Errorf("list archive files: %w", err)
	}

	for _, entry := range entries {
		if IsROMFile(entry.Name) {
			return entry.Name, nil
		}
	}

	return "", NoROMFilesError{Archive: "archive"}
}
