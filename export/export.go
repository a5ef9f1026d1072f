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


// Package export serializes extraction results for translators and reads
// their translations back.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/go-romtext/pipeline"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
	FormatPO   Format = "po"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps a format name or file extension (".csv") to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(name), ".")); f {
	case FormatText, FormatCSV, FormatPO, FormatJSON:
		return f, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Write serializes res to w in format f.
func Write(w io.Writer, f Format, res *pipeline.Result) error {
	switch f {
	case FormatText:
		return WriteText(w, res)
	case FormatCSV:
		return WriteCSV(w, res)
	case FormatPO:
		return WritePO(w, res)
	case FormatJSON:
		return WriteJSON(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// each calls fn for every message of res, segment by segment in
// extraction order.
func each(res *pipeline.Result, fn func(segment string, msg pipeline.Message) error) error {
	for _, name := range res.Order {
		for _, msg := range res.Segments[name] {
			if err := fn(name, msg); err != nil {
				return err
			}
		}
	}
	return nil
}
