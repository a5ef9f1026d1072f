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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/go-romtext/pipeline"
)

// WriteText writes a human readable dump: one "== SEGMENT ==" block per
// segment with each message preceded by its offset.
func WriteText(w io.Writer, res *pipeline.Result) error {
	bw := bufio.NewWriter(w)
	for _, name := range res.Order {
		fmt.Fprintf(bw, "== %s ==\n", strings.ToUpper(name))
		for _, msg := range res.Segments[name] {
			fmt.Fprintf(bw, "Offset: 0x%04X\n%s\n\n", msg.Offset, msg.Text)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
