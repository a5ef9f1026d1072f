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

var poEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

// WritePO writes a gettext catalog. Each message becomes an entry whose
// msgid is "0x<offset>: <text>"; the segment is the msgctxt so equal texts
// in different segments stay distinct.
func WritePO(w io.Writer, res *pipeline.Result) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("# go-romtext PO file\n")
	fmt.Fprintf(bw, "# game: %s\n", res.GameID)
	bw.WriteString("msgid \"\"\nmsgstr \"\"\n\"Content-Type: text/plain; charset=UTF-8\\n\"\n\n")

	_ = each(res, func(segment string, msg pipeline.Message) error {
		fmt.Fprintf(bw, "#: %s:0x%04X\n", segment, msg.Offset)
		fmt.Fprintf(bw, "msgctxt \"%s\"\n", poEscaper.Replace(segment))
		fmt.Fprintf(bw, "msgid \"0x%04X: %s\"\n", msg.Offset, poEscaper.Replace(msg.Text))
		bw.WriteString("msgstr \"\"\n\n")
		return nil
	})

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write po: %w", err)
	}
	return nil
}
