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
	"io"
	"path/filepath"
	"strings"

	"github.com/nwaples/rardecode/v2"
	"github.com/spf13/afero"
)

// RARArchive provides access to files in a RAR archive. RAR volumes are
// read sequentially, so every List and Open rewinds the file.
type RARArchive struct {
	file afero.File
	path string
}

// OpenRAR opens a RAR archive for reading. The signature is checked up front
// so that a damaged file fails here rather than on first use.
func OpenRAR(fsys afero.Fs, path string) (*RARArchive, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open RAR archive: %w", err)
	}

	arc := &RARArchive{file: file, path: path}
	if _, err := arc.rewind(); err != nil {
		_ = file.Close()
		return nil, err
	}
	return arc, nil
}

func (ra *RARArchive) rewind() (*rardecode.Reader, error) {
	if _, err := ra.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek RAR archive: %w", err)
	}
	reader, err := rardecode.NewReader(ra.file)
	if err != nil {
		return nil, fmt.Errorf("create RAR reader: %w", err)
	}
	return reader, nil
}

// List returns all files in the RAR archive.
func (ra *RARArchive) List() ([]Entry, error) {
	reader, err := ra.rewind()
	if err != nil {
		return nil, err
	}

	var entries []Entry //nolint:prealloc // RAR file count unknown until full scan
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read RAR header: %w", err)
		}
		if header.IsDir {
			continue
		}

		entries = append(entries, Entry{Name: header.Name, Size: header.UnPackedSize})
	}

	return entries, nil
}

// Open opens a file within the RAR archive. Names match case-insensitively.
// The returned reader is invalidated by the next List or Open.
func (ra *RARArchive) Open(name string) (io.ReadCloser, int64, error) {
	name = filepath.ToSlash(name)

	reader, err := ra.rewind()
	if err != nil {
		return nil, 0, err
	}

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read RAR header: %w", err)
		}

		if strings.EqualFold(header.Name, name) {
			return io.NopCloser(reader), header.UnPackedSize, nil
		}
	}

	return nil, 0, FileNotFoundError{Archive: ra.path, InternalPath: name}
}

// Close closes the underlying file.
func (ra *RARArchive) Close() error {
	return ra.file.Close() //nolint:wrapcheck // Close error passthrough is intentional
}
