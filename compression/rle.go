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

package compression

// RLE decodes the zero-escaped run-length format: 0x00, v, n with n > 0
// expands to n copies of v; every other byte is a literal.
type RLE struct{}

// Name implements Codec.
func (RLE) Name() string { return NameRLE }

// Decompress implements Codec. Output is capped at MaxOutput.
func (RLE) Decompress(data []byte, start int) ([]byte, int) {
	if start < 0 || start >= len(data) {
		return []byte{}, 0
	}

	out := make([]byte, 0, min(MaxOutput, len(data)-start))
	pos := start
	for pos < len(data) && len(out) < MaxOutput {
		if data[pos] == 0x00 && pos+2 < len(data) && data[pos+2] > 0 {
			value, count := data[pos+1], int(data[pos+2])
			for i := 0; i < count && len(out) < MaxOutput; i++ {
				out = append(out, value)
			}
			pos += 3
			continue
		}
		out = append(out, data[pos])
		pos++
	}
	return out, pos - start
}
