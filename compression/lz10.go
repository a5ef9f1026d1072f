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

// lz10Signature is the BIOS LZ77 type byte.
const lz10Signature = 0x10

// LZ10 decodes the GBA BIOS LZ77 format: a 4-byte header (0x10 and a 24-bit
// little-endian output length) followed by flag bytes, each governing up to
// eight units read most significant bit first.
type LZ10 struct{}

// Name implements Codec.
func (LZ10) Name() string { return NameLZ10 }

// Decompress implements Codec. Data without the signature passes through.
// The declared length is authoritative: output is truncated to it and padded
// with zeros when the input ends early.
func (LZ10) Decompress(data []byte, start int) ([]byte, int) {
	if start < 0 || start > len(data) {
		return []byte{}, 0
	}
	if len(data)-start < 4 || data[start] != lz10Signature {
		return passThrough(data, start)
	}

	size := int(data[start+1]) | int(data[start+2])<<8 | int(data[start+3])<<16
	out := make([]byte, 0, size)
	pos := start + 4

blocks:
	for len(out) < size && pos < len(data) {
		flags := data[pos]
		pos++

		for bit := 7; bit >= 0 && len(out) < size; bit-- {
			if flags&(1<<bit) == 0 {
				if pos >= len(data) {
					break blocks
				}
				out = append(out, data[pos])
				pos++
				continue
			}

			if pos+1 >= len(data) {
				pos = len(data)
				break blocks
			}
			b1, b2 := data[pos], data[pos+1]
			pos += 2

			length := int(b1>>4) + 3
			distance := (int(b1&0x0F)<<8 | int(b2)) + 1
			out = backRef(out, distance, length, size)
		}
	}

	for len(out) < size {
		out = append(out, 0)
	}
	return out, pos - start
}
