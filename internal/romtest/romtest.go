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

// Package romtest builds synthetic cartridge images for tests.
package romtest

// GBOptions describes a synthetic GB/GBC image.
type GBOptions struct {
	Title    string
	CGBFlag  byte
	CartType byte
	Size     int
}

// NewGB returns an image of opts.Size bytes (32KB when zero) with a GB header
// and a valid header checksum.
func NewGB(opts GBOptions) []byte {
	size := opts.Size
	if size == 0 {
		size = 0x8000
	}
	data := make([]byte, size)

	title := []byte(opts.Title)
	if len(title) > 15 {
		title = title[:15]
	}
	copy(data[0x134:], title)
	data[0x143] = opts.CGBFlag
	data[0x144] = '0'
	data[0x145] = '1'
	data[0x147] = opts.CartType
	data[0x148] = romSizeCode(size)
	data[0x14B] = 0x33

	var sum byte
	for i := 0x134; i <= 0x14C; i++ {
		sum = sum - data[i] - 1
	}
	data[0x14D] = sum
	return data
}

func romSizeCode(size int) byte {
	code := byte(0)
	for s := 0x8000; s < size && code < 8; s <<= 1 {
		code++
	}
	return code
}

// NewGBA returns a GBA image with the BIOS logo check bytes, a title and a
// game code.
func NewGBA(title, gameCode string, size int) []byte {
	if size == 0 {
		size = 0x10000
	}
	data := make([]byte, size)
	copy(data[0x04:], gbaLogo)
	copy(data[0xA0:0xAC], title)
	copy(data[0xAC:0xB0], gameCode)
	copy(data[0xB0:0xB2], "01")
	data[0xB2] = 0x96
	return data
}

// Put copies b into data at off and returns data.
func Put(data []byte, off int, b []byte) []byte {
	copy(data[off:], b)
	return data
}

var gbaLogo = []byte{
	0x24, 0xFF, 0xAE, 0x51, 0x69, 0x9A, 0xA2, 0x21, 0x3D, 0x84, 0x82, 0x0A,
	0x84, 0xE4, 0x09, 0xAD, 0x11, 0x24, 0x8B, 0x98, 0xC0, 0x81, 0x7F, 0x21,
	0xA3, 0x52, 0xBE, 0x19, 0x93, 0x09, 0xCE, 0x20, 0x10, 0x46, 0x4A, 0x4A,
	0xF8, 0x27, 0x31, 0xEC, 0x58, 0xC7, 0xE8, 0x33, 0x82, 0xE3, 0xCE, 0xBF,
	0x85, 0xF4, 0xDF, 0x94, 0xCE, 0x4B, 0x09, 0xC1, 0x94, 0x56, 0x8A, 0xC0,
	0x13, 0x72, 0xA7, 0xFC, 0x9F, 0x84, 0x4D, 0x73, 0xA3, 0xCA, 0x9A, 0x61,
	0x58, 0x97, 0xA3, 0x27, 0xFC, 0x03, 0x98, 0x76, 0x23, 0x1D, 0xC7, 0x61,
	0x03, 0x04, 0xAE, 0x56, 0xBF, 0x38, 0x84, 0x00, 0x40, 0xA7, 0x0E, 0xFD,
	0xFF, 0x52, 0xFE, 0x03, 0x6F, 0x95, 0x30, 0xF1, 0x97, 0xFB, 0xC0, 0x85,
	0x60, 0xD6, 0x80, 0x25, 0xA9, 0x63, 0xBE, 0x03, 0x01, 0x4E, 0x38, 0xE2,
	0xF9, 0xA2, 0x34, 0xFF, 0xBB, 0x3E, 0x03, 0x44, 0x78, 0x00, 0x90, 0xCB,
	0x88, 0x11, 0x3A, 0x94, 0x65, 0xC0, 0x7C, 0x63, 0x87, 0xF0, 0x3C, 0xAF,
	0xD6, 0x25, 0xE4, 0x8B, 0x38, 0x0A, 0xAC, 0x72, 0x21, 0xD4, 0xF8, 0x07,
}
