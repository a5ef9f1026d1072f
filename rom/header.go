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
	"fmt"

	"github.com/ZaparooProject/go-romtext/internal/binary"
)

// GB/GBC header offsets
const (
	titleOffset          = 0x0134
	titleSize            = 15
	manufacturerOffset   = 0x013F
	manufacturerSize     = 4
	cgbFlagOffset        = 0x0143
	newLicenseeOffset    = 0x0144
	sgbFlagOffset        = 0x0146
	cartridgeTypeOffset  = 0x0147
	romSizeOffset        = 0x0148
	ramSizeOffset        = 0x0149
	destinationOffset    = 0x014A
	oldLicenseeOffset    = 0x014B
	versionOffset        = 0x014C
	headerChecksumOffset = 0x014D
	globalChecksumOffset = 0x014E
)

// Header holds the fixed-offset GB/GBC cartridge header fields. GBA images
// have one too; its values are whatever bytes sit at those offsets.
type Header struct {
	Title            string
	ManufacturerCode string
	NewLicensee      string
	NewLicenseeWord  uint16
	CGBFlag          byte
	SGBFlag          byte
	CartridgeType    byte
	ROMSizeCode      byte
	RAMSizeCode      byte
	Destination      byte
	OldLicensee      byte
	Version          byte
	HeaderChecksum   byte
	GlobalChecksum   uint16
	computedChecksum byte
}

func parseHeader(data []byte) Header {
	licensee := data[newLicenseeOffset : newLicenseeOffset+2]
	word, _ := binary.Uint16BE(data, newLicenseeOffset)
	global, _ := binary.Uint16BE(data, globalChecksumOffset)

	h := Header{
		Title:            binary.ASCIIString(data[titleOffset : titleOffset+titleSize]),
		NewLicensee:      binary.ExtractPrintable(licensee),
		NewLicenseeWord:  word,
		CGBFlag:          data[cgbFlagOffset],
		SGBFlag:          data[sgbFlagOffset],
		CartridgeType:    data[cartridgeTypeOffset],
		ROMSizeCode:      data[romSizeOffset],
		RAMSizeCode:      data[ramSizeOffset],
		Destination:      data[destinationOffset],
		OldLicensee:      data[oldLicenseeOffset],
		Version:          data[versionOffset],
		HeaderChecksum:   data[headerChecksumOffset],
		GlobalChecksum:   global,
		computedChecksum: ComputeHeaderChecksum(data),
	}
	// Newer carts shorten the title to 11 bytes and store a manufacturer code.
	if h.CGBFlag == cgbFlagCompatible || h.CGBFlag == cgbFlagOnly {
		h.Title = binary.ASCIIString(data[titleOffset:manufacturerOffset])
		h.ManufacturerCode = binary.ExtractPrintable(data[manufacturerOffset : manufacturerOffset+manufacturerSize])
	}
	return h
}

// ComputeHeaderChecksum computes the checksum the boot ROM verifies over
// 0x134-0x14C. data must be at least HeaderSize bytes.
func ComputeHeaderChecksum(data []byte) byte {
	var sum byte
	for i := titleOffset; i <= versionOffset; i++ {
		sum = sum - data[i] - 1
	}
	return sum
}

// HeaderChecksumValid reports whether the stored header checksum matches.
func (h Header) HeaderChecksumValid() bool {
	return h.HeaderChecksum == h.computedChecksum
}

// CartridgeTypeName returns a readable cartridge type.
func (h Header) CartridgeTypeName() string {
	if name, ok := cartridgeTypes[h.CartridgeType]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (0x%02X)", h.CartridgeType)
}

// ROMSize returns the declared ROM size in bytes and banks, or zero values
// for unknown size codes.
func (h Header) ROMSize() (size, banks int) {
	info, ok := romSizes[h.ROMSizeCode]
	if !ok {
		return 0, 0
	}
	return info.size, info.banks
}

// RAMSize returns the declared external RAM size in bytes.
func (h Header) RAMSize() int {
	return ramSizes[h.RAMSizeCode]
}

// Publisher returns the licensee name from the old or new licensee code.
func (h Header) Publisher() string {
	if h.OldLicensee == 0x33 {
		if name, ok := newLicensees[h.NewLicensee]; ok {
			return name
		}
		return ""
	}
	return oldLicensees[h.OldLicensee]
}

// cartridgeTypes maps the cartridge type byte to a readable name.
var cartridgeTypes = map[byte]string{
	0x00: "ROM",
	0x01: "MBC1",
	0x02: "MBC1 + RAM",
	0x03: "MBC1 + RAM + Battery",
	0x05: "MBC2",
	0x06: "MBC2 + Battery",
	0x08: "ROM + RAM",
	0x09: "ROM + RAM + Battery",
	0x0F: "MBC3 + Timer + Battery",
	0x10: "MBC3 + Timer + RAM + Battery",
	0x11: "MBC3",
	0x12: "MBC3 + RAM",
	0x13: "MBC3 + RAM + Battery",
	0x19: "MBC5",
	0x1A: "MBC5 + RAM",
	0x1B: "MBC5 + RAM + Battery",
	0x1C: "MBC5 + Rumble",
	0x1D: "MBC5 + Rumble + RAM",
	0x1E: "MBC5 + Rumble + RAM + Battery",
	0xFC: "Pocket Camera",
	0xFE: "HuC3",
	0xFF: "HuC1 + RAM + Battery",
}

var romSizes = map[byte]struct {
	size  int
	banks int
}{
	0x00: {32768, 2},
	0x01: {65536, 4},
	0x02: {131072, 8},
	0x03: {262144, 16},
	0x04: {524288, 32},
	0x05: {1048576, 64},
	0x06: {2097152, 128},
	0x07: {4194304, 256},
	0x08: {8388608, 512},
}

var ramSizes = map[byte]int{
	0x00: 0,
	0x01: 2048,
	0x02: 8192,
	0x03: 32768,
	0x04: 131072,
	0x05: 65536,
}

var newLicensees = map[string]string{
	"00": "None",
	"01": "Nintendo R&D1",
	"08": "Capcom",
	"13": "Electronic Arts",
	"18": "Hudson Soft",
	"31": "Nintendo",
	"34": "Konami",
	"41": "Ubi Soft",
	"52": "Activision",
	"69": "Electronic Arts",
	"78": "THQ",
	"A4": "Konami (Yu-Gi-Oh!)",
}

var oldLicensees = map[byte]string{
	0x00: "None",
	0x01: "Nintendo",
	0x08: "Capcom",
	0x13: "EA (Electronic Arts)",
	0x18: "Hudsonsoft",
	0x31: "Nintendo",
	0x34: "Konami",
	0x41: "Ubisoft",
	0x52: "Activision",
	0xA4: "Konami",
}
