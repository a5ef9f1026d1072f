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

	"github.com/spf13/afero"
)

// Load reads the ROM image at path and returns it with the name it was found
// under. Path may be a plain dump, a stream-compressed dump, an archive (its
// first ROM entry is used) or an archive path such as "pack.zip/game.gbc".
func Load(fsys afero.Fs, path string) ([]byte, string, error) {
	parsed, err := ParsePath(fsys, path)
	if err != nil {
		return nil, "", err
	}
	if parsed != nil {
		return loadFromArchive(fsys, parsed)
	}

	file, err := fsys.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open ROM: %w", err)
	}
	defer func() { _ = file.Close() }()

	name := filepath.Base(path)
	ext := filepath.Ext(path)
	if !IsStreamExtension(ext) {
		data, err := readLimited(file, name)
		return data, name, err
	}

	stream, err := NewStreamReader(file, ext)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = stream.Close() }()
	data, err := readLimited(stream, name)
	return data, name, err
}

func loadFromArchive(fsys afero.Fs, parsed *Path) ([]byte, string, error) {
	arc, err := Open(fsys, parsed.ArchivePath)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = arc.Close() }()

	name := parsed.InternalPath
	if name == "" {
		if name, err = DetectROMFile(arc); err != nil {
			return nil, "", fmt.Errorf("%s: %w", parsed.ArchivePath, err)
		}
	}

	data, err := ReadEntry(arc, name)
	if err != nil {
		return nil, "", err
	}
	return data, name, nil
}

// Save writes data to path on fsys, compressing it when path carries a
// stream extension. Writing into archives is not supported.
func Save(fsys afero.Fs, path string, data []byte) error {
	if IsArchivePath(path) {
		return FormatError{Format: filepath.Ext(path), Reason: "writing archives is not supported"}
	}

	ext := filepath.Ext(path)
	if !IsStreamExtension(ext) {
		if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
			return fmt.Errorf("write ROM: %w", err)
		}
		return nil
	}

	file, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create ROM: %w", err)
	}

	stream, err := NewStreamWriter(file, ext)
	if err != nil {
		_ = file.Close()
		return err
	}
	if _, err := stream.Write(data); err != nil {
		_ = stream.Close()
		_ = file.Close()
		return fmt.Errorf("write ROM: %w", err)
	}
	if err := stream.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush ROM: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close ROM: %w", err)
	}
	return nil
}
