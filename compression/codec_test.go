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

package compression_test

import (
	"bytes"
	"testing"

	"github.com/ZaparooProject/go-romtext/compression"
	"github.com/retroenv/retrogolib/assert"
)

// compressLZ10 is a greedy BIOS LZ77 encoder used to produce test vectors.
func compressLZ10(src []byte) []byte {
	out := []byte{0x10, byte(len(src)), byte(len(src) >> 8), byte(len(src) >> 16)}
	pos := 0
	for pos < len(src) {
		flagIdx := len(out)
		out = append(out, 0)
		for bit := 7; bit >= 0 && pos < len(src); bit-- {
			bestLen, bestDist := 0, 0
			for dist := 1; dist <= 4096 && dist <= pos; dist++ {
				l := 0
				for l < 18 && pos+l < len(src) && src[pos+l-dist] == src[pos+l] {
					l++
				}
				if l > bestLen {
					bestLen, bestDist = l, dist
				}
			}
			if bestLen >= 3 {
				out[flagIdx] |= 1 << bit
				d := bestDist - 1
				out = append(out, byte((bestLen-3)<<4|d>>8), byte(d))
				pos += bestLen
				continue
			}
			out = append(out, src[pos])
			pos++
		}
	}
	return out
}

func TestLZ10_Literals(t *testing.T) {
	t.Parallel()

	input := []byte{0x10, 0x05, 0x00, 0x00, 0x00, 0x41, 0x42, 0x43, 0x44, 0x45}
	out, consumed := compression.LZ10{}.Decompress(input, 0)
	assert.Equal(t, "ABCDE", string(out))
	assert.Equal(t, 10, consumed)
}

func TestLZ10_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "short text", input: []byte("HELLO")},
		{name: "overlapping run", input: bytes.Repeat([]byte("AB"), 40)},
		{name: "single byte run", input: bytes.Repeat([]byte{0x7F}, 300)},
		{name: "dialogue", input: []byte("The quick brown fox. The quick brown dog. The lazy fox.")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			packed := compressLZ10(tt.input)
			// Leading garbage checks that start is honored.
			framed := append([]byte{0xEE, 0xEE}, packed...)
			out, consumed := compression.LZ10{}.Decompress(framed, 2)
			assert.True(t, bytes.Equal(tt.input, out), "decompressed output differs")
			assert.Equal(t, len(packed), consumed)
		})
	}
}

func TestLZ10_Malformed(t *testing.T) {
	t.Parallel()

	// Back-reference before the start of the output emits zeros.
	out, consumed := compression.LZ10{}.Decompress([]byte{0x10, 0x04, 0x00, 0x00, 0x80, 0x10, 0x05}, 0)
	assert.Equal(t, []byte{0, 0, 0, 0}, out)
	assert.Equal(t, 7, consumed)

	// Truncated input is padded to the declared length.
	out, consumed = compression.LZ10{}.Decompress([]byte{0x10, 0x06, 0x00, 0x00, 0x00, 'H', 'I'}, 0)
	assert.Equal(t, []byte{'H', 'I', 0, 0, 0, 0}, out)
	assert.Equal(t, 7, consumed)

	// Missing signature passes through.
	out, consumed = compression.LZ10{}.Decompress([]byte("PLAIN"), 1)
	assert.Equal(t, "LAIN", string(out))
	assert.Equal(t, 4, consumed)

	// Truncated header passes through.
	out, consumed = compression.LZ10{}.Decompress([]byte{0x10, 0x01}, 0)
	assert.Equal(t, []byte{0x10, 0x01}, out)
	assert.Equal(t, 2, consumed)
}

func TestLZSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        []byte
		want         []byte
		wantConsumed int
	}{
		{
			name:         "literals and overlapping reference",
			input:        []byte{0x20, 'A', 'B', 0x02, 0x02},
			want:         []byte("ABABAB"),
			wantConsumed: 5,
		},
		{
			name:         "zero distance emits zeros",
			input:        []byte{0x80, 0x00, 0x01},
			want:         []byte{0, 0, 0},
			wantConsumed: 3,
		},
		{
			name:         "reference past start emits zeros",
			input:        []byte{0x40, 'Z', 0x05, 0x00},
			want:         []byte{'Z', 0, 0},
			wantConsumed: 4,
		},
		{
			name:         "truncated reference",
			input:        []byte{0x40, 'Z', 0x05},
			want:         []byte{'Z'},
			wantConsumed: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, consumed := compression.LZSS{}.Decompress(tt.input, 0)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, tt.wantConsumed, consumed)
		})
	}
}

func TestLZSS_OutputCap(t *testing.T) {
	t.Parallel()

	// One literal, then nothing but maximal distance-1 references.
	input := []byte{0x7F, 'X'}
	input = append(input, bytes.Repeat([]byte{0x01, 0x0F}, 7)...)
	for len(input) < 10000 {
		input = append(input, 0xFF)
		input = append(input, bytes.Repeat([]byte{0x01, 0x0F}, 8)...)
	}
	out, _ := compression.LZSS{}.Decompress(input, 0)
	assert.Equal(t, compression.MaxOutput, len(out))
}

func TestRLE(t *testing.T) {
	t.Parallel()

	out, consumed := compression.RLE{}.Decompress([]byte{0x41, 0x00, 0x42, 0x03, 0x43}, 0)
	assert.Equal(t, "ABBBC", string(out))
	assert.Equal(t, 5, consumed)

	// A zero count is not a run.
	out, consumed = compression.RLE{}.Decompress([]byte{0x00, 0x42, 0x00}, 0)
	assert.Equal(t, []byte{0x00, 0x42, 0x00}, out)
	assert.Equal(t, 3, consumed)

	// Runs are capped.
	big := bytes.Repeat([]byte{0x00, 0x20, 0xFF}, 400)
	out, _ = compression.RLE{}.Decompress(big, 0)
	assert.Equal(t, compression.MaxOutput, len(out))

	out, consumed = compression.RLE{}.Decompress([]byte{1, 2}, 5)
	assert.Equal(t, 0, len(out))
	assert.Equal(t, 0, consumed)
}
