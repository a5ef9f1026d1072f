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


//nolint:dupl // Archive implementations are intentionally similar but use different types
package archive

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/spf13/afero"
)

// SevenZipArchive provides access to files in a 7z archive.
type SevenZipArchive struct {
	file   afero.File
	reader *sevenzip.Reader
	path   string
}

// OpenSevenZip opens a 7z archive for reading.
func OpenSevenZip(fsys afero.Fs, path string) (*SevenZipArchive, error) {
	file, size, err := openSized(fsys, path)
	if err != nil {
		return nil, err
	}

	reader, err := sevenzip.NewReader(file, size)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("open 7z archive: %w", err)
	}

	return &SevenZipArchive{
		file:   file,
		reader: reader,
		path:   path,
	}, nil
}

// List returns all files in the 7z archive.
func (sza *SevenZipArchive) List() ([]Entry, error) {
	entries := make([]Entry, 0, len(sza.reader.File))

	for _, file := range sza.reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		entries = append(entries, Entry{
			Name: file.Name,
			Size: int64(file.UncompressedSize), //nolint:gosec // Safe: file sizes don't exceed int64
		})
	}

	return entries, nil
}

// Open opens a file within the 7z archive. Names match case-insensitively.
func (sza *SevenZipArchive) Open(name string) (io.ReadCloser, int64, error) {
	name = filepath.ToSlash(name)

	for _, file := range sza.reader.File {
		if strings.EqualFold(file.Name, name) {
			reader, err := file.Open()
			if err != nil {
				return nil, 0, fmt.Errorf("open file in 7z: %w", err)
			}
			//nolint:gosec // Safe: file sizes don't exceed int64
			return reader, int64(file.UncompressedSize), nil
		}
	}

	return nil, 0, FileNotFoundError{Archive: sza.path, InternalPath: name}
}

// Close closes the underlying file.
func (sza *SevenZipArchive) Close() error {
	return sza.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
