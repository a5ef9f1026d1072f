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

package plugin

import (
	"regexp"

	"github.com/ZaparooProject/go-romtext/charmap"
	"github.com/ZaparooProject/go-romtext/compression"
	"github.com/ZaparooProject/go-romtext/rom"
)

// Compiled returns the built-in game plugins in priority order.
func Compiled() []*Descriptor {
	return []*Descriptor{pokemonPlugin(), zeldaPlugin()}
}

// Fallback returns the generic descriptor for platform p. Unknown platforms
// get the GB fallback.
func Fallback(p rom.Platform) *Descriptor {
	switch p {
	case rom.PlatformGB, rom.PlatformGBC, rom.PlatformGBA:
	default:
		p = rom.PlatformGB
	}
	return &Descriptor{
		Name:      "generic_" + string(p),
		Source:    "builtin",
		Pattern:   regexp.MustCompile(`^(?:.*)`),
		Platforms: []rom.Platform{p},
		Fallback:  true,
	}
}

func pokemonPlugin() *Descriptor {
	table := pokemonTable()
	return &Descriptor{
		Name:      "pokemon",
		Source:    "builtin",
		Pattern:   regexp.MustCompile(`^(?:POKEMON_.*)`),
		Platforms: []rom.Platform{rom.PlatformGB, rom.PlatformGBC},
		Segments: []SegmentTemplate{
			{
				Name:        "dialogues",
				Start:       0x4000,
				End:         0x8000,
				Codec:       compression.NameNone,
				Charmap:     table,
				Terminators: []byte{0x00},
			},
			{
				Name:        "pokemon_names",
				Start:       0xD000,
				End:         0xD300,
				Codec:       compression.NameNone,
				Charmap:     table,
				Terminators: []byte{0x50},
			},
		},
	}
}

func zeldaPlugin() *Descriptor {
	table := charmap.New(map[byte]string{
		0x00: "A", 0x01: "B", 0x02: "C", 0x03: "D",
		0x20: " ", 0xFF: charmap.EndMarker,
	}).Finalize()
	return &Descriptor{
		Name:    "zelda",
		Source:  "builtin",
		Pattern: regexp.MustCompile(`^(?:ZELDA_.*)`),
		Segments: []SegmentTemplate{{
			Name:    "main_text",
			Start:   0x5000,
			End:     0x7000,
			Codec:   compression.NameLZ10,
			Charmap: table,
		}},
	}
}

func pokemonTable() *charmap.Map {
	entries := map[byte]string{0x7F: " "}
	for i := range 26 {
		entries[0x80+byte(i)] = string(rune('A' + i))
	}
	glyphs := []string{
		// 0x9A
		"à", "é", "è", "ù", "â", "ê",
		// 0xA0
		"î", "ô", "û", "ç", "À", "É", "È", "Ù", "Â", "Ê", "Î", "Ô", "Û", "Ç", "ï", "Ï",
		// 0xB0
		"ë", "Ë", "ü", "Ü", "æ", "Æ", "œ", "Œ", "°", "%", "#", "@", "&", "+", "-", "*",
		// 0xC0
		"/", ",", ".", "!", "?", "(", ")", ":", ";", "'", "\"", "$", "=", "<", ">", "[",
		// 0xD0
		"]", "{", "}", "\\", "|", "^", "_", "`", "~", "♂", "♀", "×", "÷", "·", "·", "…",
		// 0xE0
		"é", "PK", "MN", "-", "'d", "'l", "'r", "'s", "'t", "'v", "→", "⇒", "▼", "♂", "♀", "!",
	}
	for i, g := range glyphs {
		entries[0x9A+byte(i)] = g
	}
	return charmap.New(entries).Finalize()
}
