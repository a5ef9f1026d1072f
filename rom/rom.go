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

// Package rom models Game Boy, Game Boy Color and Game Boy Advance cartridge
// images: header parsing, platform classification and address mapping.
package rom

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ZaparooProject/go-romtext/internal/binary"
)

// Platform identifies the console family a cartridge targets.
type Platform string

// Supported platforms.
const (
	PlatformGB  Platform = "GB"
	PlatformGBC Platform = "GBC"
	PlatformGBA Platform = "GBA"
)

// AllPlatforms lists every supported platform.
var AllPlatforms = []Platform{PlatformGB, PlatformGBC, PlatformGBA}

// GBABase is the CPU address at which GBA cartridge ROM is mapped.
const GBABase uint32 = 0x08000000

// HeaderSize is the minimum image size; the GB header ends at 0x150.
const HeaderSize = 0x0150

// gbaMarker is the ASCII signature some GBA dumps carry at 0xA0.
var gbaMarker = []byte("Nintendo Game Boy")

const (
	gbaMarkerOffset   = 0xA0
	gbaMarkerRegion   = 18
	cgbFlagCompatible = 0x80
	cgbFlagOnly       = 0xC0
	licenseeAlias     = 0x0033
)

// PointerWidth returns the size in bytes of a pointer on this platform.
func (p Platform) PointerWidth() int {
	if p == PlatformGBA {
		return 4
	}
	return 2
}

// Base returns the CPU address that maps to image offset zero.
func (p Platform) Base() uint32 {
	if p == PlatformGBA {
		return GBABase
	}
	return 0
}

// ParsePlatform parses a platform name. It is case-insensitive and accepts
// the common long names.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "GB", "GAMEBOY", "DMG":
		return PlatformGB, nil
	case "GBC", "GAMEBOYCOLOR", "CGB":
		return PlatformGBC, nil
	case "GBA", "GAMEBOYADVANCE", "AGB":
		return PlatformGBA, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
}

// Image is a loaded cartridge image. The header and platform are computed once
// in New and never change afterwards.
type Image struct {
	data     []byte
	header   Header
	gba      *GBAHeader
	platform Platform
}

// New parses data as a cartridge image. The image keeps a reference to data;
// callers must not modify it afterwards.
func New(data []byte) (*Image, error) {
	if len(data) < HeaderSize {
		return nil, SizeError{Size: len(data), MinSize: HeaderSize}
	}

	img := &Image{
		data:   data,
		header: parseHeader(data),
	}
	img.platform = detectPlatform(data, &img.header)
	if img.platform == PlatformGBA {
		gba := parseGBAHeader(data)
		img.gba = &gba
	}
	return img, nil
}

// detectPlatform classifies the image from the GBA marker region, the CGB
// flag and the licensee alias, in that order.
func detectPlatform(data []byte, h *Header) Platform {
	region := binary.Slice(data, gbaMarkerOffset, gbaMarkerRegion)
	if bytes.HasPrefix(region, gbaMarker) || hasGBALogo(data) {
		return PlatformGBA
	}
	if h.CGBFlag == cgbFlagCompatible || h.CGBFlag == cgbFlagOnly {
		return PlatformGBC
	}
	if h.NewLicenseeWord == licenseeAlias {
		return PlatformGBC
	}
	return PlatformGB
}

// Bytes returns the underlying buffer. It must be treated as read-only.
func (img *Image) Bytes() []byte {
	return img.data
}

// Len returns the image size in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Clone returns a private copy of the image bytes.
func (img *Image) Clone() []byte {
	out := make([]byte, len(img.data))
	copy(out, img.data)
	return out
}

// Header returns the parsed GB/GBC header fields.
func (img *Image) Header() Header {
	return img.header
}

// GBAHeader returns the GBA header when the image is a GBA cartridge.
func (img *Image) GBAHeader() (GBAHeader, bool) {
	if img.gba == nil {
		return GBAHeader{}, false
	}
	return *img.gba, true
}

// Platform returns the detected platform.
func (img *Image) Platform() Platform {
	return img.platform
}

// Title returns the internal title for the detected platform.
func (img *Image) Title() string {
	if img.gba != nil {
		return img.gba.Title
	}
	return img.header.Title
}

// GameID derives the identifier plugins are matched against: the uppercased
// title with every run of non-alphanumeric characters collapsed to "_".
// Images without a usable title fall back to GAME_XX of the cartridge type.
func (img *Image) GameID() string {
	title := img.Title()
	if id := sanitizeID(title); id != "" {
		return id
	}
	if img.gba != nil {
		if id := sanitizeID(img.gba.GameCode); id != "" {
			return id
		}
	}
	return fmt.Sprintf("GAME_%02X", img.header.CartridgeType)
}

func sanitizeID(s string) string {
	var sb strings.Builder
	pendingSep := false
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return sb.String()
}
