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

package rom

import (
	"bytes"

	"github.com/ZaparooProject/go-romtext/internal/binary"
)

// GBA header offsets
const (
	gbaHeaderSize         = 0xC0
	gbaNintendoLogoOffset = 0x04
	gbaTitleOffset        = 0xA0
	gbaTitleSize          = 12
	gbaGameCodeOffset     = 0xAC
	gbaGameCodeSize       = 4
	gbaMakerCodeOffset    = 0xB0
	gbaMakerCodeSize      = 2
	gbaFixedValueOffset   = 0xB2
	gbaFixedValue         = 0x96
	gbaVersionOffset      = 0xBC
)

// gbaNintendoLogo is the compressed logo bitmap the GBA BIOS checks at 0x04.
var gbaNintendoLogo = []byte{
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

// GBAHeader holds the GBA cartridge header fields.
type GBAHeader struct {
	Title      string
	GameCode   string
	MakerCode  string
	Version    byte
	LogoValid  bool
	FixedValid bool
}

func hasGBALogo(data []byte) bool {
	if len(data) < gbaHeaderSize {
		return false
	}
	logo := data[gbaNintendoLogoOffset : gbaNintendoLogoOffset+len(gbaNintendoLogo)]
	return bytes.Equal(logo, gbaNintendoLogo) && data[gbaFixedValueOffset] == gbaFixedValue
}

func parseGBAHeader(data []byte) GBAHeader {
	logo := binary.Slice(data, gbaNintendoLogoOffset, len(gbaNintendoLogo))
	return GBAHeader{
		Title:      binary.ASCIIString(binary.Slice(data, gbaTitleOffset, gbaTitleSize)),
		GameCode:   binary.ExtractPrintable(binary.Slice(data, gbaGameCodeOffset, gbaGameCodeSize)),
		MakerCode:  binary.ExtractPrintable(binary.Slice(data, gbaMakerCodeOffset, gbaMakerCodeSize)),
		Version:    data[gbaVersionOffset],
		LogoValid:  bytes.Equal(logo, gbaNintendoLogo),
		FixedValid: data[gbaFixedValueOffset] == gbaFixedValue,
	}
}
