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


package romtext

import (
	"context"

	"github.com/ZaparooProject/go-romtext/rom"
)

// Info summarizes a cartridge header.
type Info struct {
	Platform rom.Platform `json:"platform"`
	Title    string       `json:"title"`
	GameID   string       `json:"game_id"`
	Size     int          `json:"size"`
	Plugin   string       `json:"plugin,omitempty"`

	// GB and GBC only.
	CartridgeType       string `json:"cartridge_type,omitempty"`
	Controller          string `json:"controller,omitempty"`
	DeclaredROMSize     int    `json:"declared_rom_size,omitempty"`
	ROMBanks            int    `json:"rom_banks,omitempty"`
	RAMSize             int    `json:"ram_size,omitempty"`
	Publisher           string `json:"publisher,omitempty"`
	HeaderChecksumValid bool   `json:"header_checksum_valid,omitempty"`

	// GBA only.
	GameCode  string `json:"game_code,omitempty"`
	MakerCode string `json:"maker_code,omitempty"`
	LogoValid bool   `json:"logo_valid,omitempty"`
}

// Describe reads the header of img and the plugin that would handle it.
func (t *Tool) Describe(ctx context.Context, img *Image) Info {
	info := Info{
		Platform: img.Platform(),
		Title:    img.Title(),
		GameID:   img.GameID(),
		Size:     img.Len(),
	}
	if d := t.Plugin(ctx, img); d != nil {
		info.Plugin = d.Name
	}

	if gba, ok := img.GBAHeader(); ok {
		info.GameCode = gba.GameCode
		info.MakerCode = gba.MakerCode
		info.LogoValid = gba.LogoValid
		return info
	}

	h := img.Header()
	info.CartridgeType = h.CartridgeTypeName()
	info.Controller = rom.NewMapper(img).Controller().Name()
	info.DeclaredROMSize, info.ROMBanks = h.ROMSize()
	info.RAMSize = h.RAMSize()
	info.Publisher = h.Publisher()
	info.HeaderChecksumValid = h.HeaderChecksumValid()
	return info
}
