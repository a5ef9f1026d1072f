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

// LZSS decodes an unframed LZSS variant: flag bytes read most significant
// bit first, literal units of one byte and back-reference units of two bytes
// (distance, length nibble). Distance is used as is; length is the low
// nibble of the second byte plus 2.
type LZSS struct{}

// Name implements Codec.
func (LZSS) Name() string { return NameLZSS }

// Decompress implements Codec. Decoding stops when the input is exhausted or
// the output reaches MaxOutput.
func (LZSS) Decompress(data []byte, start int) ([]byte, int) {
	if start < 0 || start >= len(data) {
		return []byte{}, 0
	}

	out := make([]byte, 0, min(MaxOutput, 2*(len(data)-start)))
	pos := start

blocks:
	for pos < len(data) && len(out) < MaxOutput {
		flags := data[pos]
		pos++

		for bit := 7; bit >= 0; bit-- {
			if pos >= len(data) || len(out) >= MaxOutput {
				break blocks
			}
			if flags&(1<<bit) == 0 {
				out = append(out, data[pos])
				pos++
				continue
			}

			if pos+1 >= len(data) {
				pos = len(data)
				break blocks
			}
			distance := int(data[pos])
			length := int(data[pos+1]&0x0F) + 2
			pos += 2
			out = backRef(out, distance, length, MaxOutput)
		}
	}
	return out, pos - start
}
