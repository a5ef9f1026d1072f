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
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// IsStreamExtension reports whether ext names a single-stream compression
// format understood by NewStreamReader and NewStreamWriter.
func IsStreamExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".gz", ".zst", ".xz", ".lzma", ".lz4", ".br":
		return true
	default:
		return false
	}
}

// NewStreamReader wraps r with the decompressor for ext.
func NewStreamReader(r io.Reader, ext string) (io.ReadCloser, error) {
	switch ext = strings.ToLower(ext); ext {
	case ".gz":
		reader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return reader, nil
	case ".zst":
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case ".xz":
		reader, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open xz stream: %w", err)
		}
		return io.NopCloser(reader), nil
	case ".lzma":
		reader, err := lzma.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open lzma stream: %w", err)
		}
		return io.NopCloser(reader), nil
	case ".lz4":
		return io.NopCloser(lz4.NewReader(r)), nil
	case ".br":
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return nil, FormatError{Format: ext, Reason: "not a stream format"}
	}
}

// NewStreamWriter wraps w with the compressor for ext. Close flushes the
// stream but does not close w.
func NewStreamWriter(w io.Writer, ext string) (io.WriteCloser, error) {
	switch ext = strings.ToLower(ext); ext {
	case ".gz":
		return gzip.NewWriter(w), nil
	case ".zst":
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create zstd stream: %w", err)
		}
		return encoder, nil
	case ".xz":
		writer, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create xz stream: %w", err)
		}
		return writer, nil
	case ".lzma":
		writer, err := lzma.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create lzma stream: %w", err)
		}
		return writer, nil
	case ".lz4":
		return lz4.NewWriter(w), nil
	case ".br":
		return brotli.NewWriter(w), nil
	default:
		return nil, FormatError{Format: ext, Reason: "not a stream format"}
	}
}
