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


// Package archive loads ROM images from disk. A ROM may be stored as a plain
// file, inside a ZIP, 7z or RAR archive, or as a single compressed stream
// such as game.gba.gz.
package archive

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// MaxROMSize is the largest image accepted from any source. It matches the
// 32 MiB GBA cartridge address space.
const MaxROMSize = 32 << 20

// Entry describes a file stored in an archive.
type Entry struct {
	Name string // Full path within archive
	Size int64  // Uncompressed size
}

// Archive provides read access to files within an archive.
type Archive interface {
	// List returns all regular files in the archive.
	List() ([]Entry, error)

	// Open opens a file within the archive for reading.
	// Returns the reader, uncompressed size, and any error.
	Open(name string) (io.ReadCloser, int64, error)

	// Close closes the archive.
	Close() error
}

// Open opens an archive on fsys based on its extension.
// Supported formats: .zip, .7z, .rar
func Open(fsys afero.Fs, path string) (Archive, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".zip":
		return OpenZIP(fsys, path)
	case ".7z":
		return OpenSevenZip(fsys, path)
	case ".rar":
		return OpenRAR(fsys, path)
	default:
		return nil, FormatError{Format: ext}
	}
}

// IsArchiveExtension checks if an extension is a supported archive format.
func IsArchiveExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".zip", ".7z", ".rar":
		return true
	default:
		return false
	}
}

// ReadEntry reads a whole archive entry into memory. Entries stored with a
// stream extension (game.gb.gz) are decompressed on the way.
func ReadEntry(arc Archive, name string) ([]byte, error) {
	reader, size, err := arc.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	if size > MaxROMSize {
		return nil, TooLargeError{Name: name, Size: size}
	}

	ext := filepath.Ext(name)
	if !IsStreamExtension(ext) {
		return readLimited(reader, name)
	}

	stream, err := NewStreamReader(reader, ext)
	if err != nil {
		return nil, err
	}
	defer func() { _ = stream.Close() }()
	return readLimited(stream, name)
}

// readLimited reads r to the end, failing once more than MaxROMSize bytes
// have been produced.
func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) > MaxROMSize {
		return nil, TooLargeError{Name: name, Size: int64(len(data))}
	}
	return data, nil
}
