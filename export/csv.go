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


package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ZaparooProject/go-romtext/pipeline"
)

var csvHeader = []string{"segment", "offset", "original", "translation"}

// ErrMalformedCSV is returned by ReadTranslations for rows it cannot use.
var ErrMalformedCSV = errors.New("malformed translation CSV")

// WriteCSV writes one row per message with an empty translation column.
func WriteCSV(w io.Writer, res *pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	err := each(res, func(segment string, msg pipeline.Message) error {
		return cw.Write([]string{segment, fmt.Sprintf("0x%04X", msg.Offset), msg.Text, ""})
	})
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ReadTranslations reads a CSV produced by WriteCSV and returns the texts
// for segment in row order. Rows whose translation is empty keep the
// original text, so the result always has one entry per message.
func ReadTranslations(r io.Reader, segment string) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}
	if strings.Join(header, ",") != strings.Join(csvHeader, ",") {
		return nil, fmt.Errorf("%w: header %q", ErrMalformedCSV, strings.Join(header, ","))
	}

	var texts []string
	lastOffset := int64(-1)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
		}
		if row[0] != segment {
			continue
		}

		offset, err := strconv.ParseInt(row[1], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: offset %q", ErrMalformedCSV, row[1])
		}
		if offset <= lastOffset {
			return nil, fmt.Errorf("%w: offset 0x%04X out of order", ErrMalformedCSV, offset)
		}
		lastOffset = offset

		if row[3] != "" {
			texts = append(texts, row[3])
		} else {
			texts = append(texts, row[2])
		}
	}
	return texts, nil
}
