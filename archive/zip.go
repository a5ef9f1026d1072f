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
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ZIPArchive provides access to files in a ZIP archive.
type ZIPArchive struct {
	file   afero.File
	reader *zip.Reader
	path   string
}

// OpenZIP opens a ZIP archive for reading.
func OpenZIP(fsys afero.Fs, path string) (*ZIPArchive, error) {
	file, size, err := openSized(fsys, path)
	if err != nil {
		return nil, err
	}

	reader, err := zip.NewReader(file, size)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("open ZIP archive: %w", err)
	}

	return &ZIPArchive{
		file:   file,
		reader: reader,
		path:   path,
	}, nil
}

// List returns all files in the ZIP archive.
func (za *ZIPArchive) List() ([]Entry, error) {
	entries := make([]Entry, 0, len(za.reader.File))

	for _, file := range za.reader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		entries = append(entries, Entry{
			Name: file.Name,
			Size: int64(file.UncompressedSize64), //nolint:gosec // Safe: file sizes don't exceed int64
		})
	}

	return entries, nil
}

// Open opens a file within the ZIP archive. Names match case-insensitively.
func (za *ZIPArchive) Open(name string) (io.ReadCloser, int64, error) {
	name = filepath.ToSlash(name)

	for _, file := range za.reader.File {
		if strings.EqualFold(file.Name, name) {
			reader, err := file.Open()
			if err != nil {
				return nil, 0, fmt.Errorf("open file in ZIP: %w", err)
			}
			//nolint:gosec // Safe: file sizes don't exceed int64
			return reader, int64(file.UncompressedSize64), nil
		}
	}

	return nil, 0, FileNotFoundError{Archive: za.path, InternalPath: name}
}

// Close closes the underlying file.
func (za *ZIPArchive) Close() error {
	return za.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}

// openSized opens path on fsys and reports its size, as the random-access
// archive readers need both.
func openSized(fsys afero.Fs, path string) (afero.File, int64, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open archive: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, fmt.Errorf("stat archive: %w", err)
	}
	return file, info.Size(), nil
}
