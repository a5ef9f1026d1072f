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

package charmap

import (
	"sync"

	xcharmap "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/width"
)

var (
	seedOnce      sync.Once
	katakanaTable map[byte]string
	cyrillicTable map[byte]string
)

func loadSeeds() {
	seedOnce.Do(func() {
		katakanaTable = decodeRange(0xA1, 0xDF, func(b byte) string {
			r, err := japanese.ShiftJIS.NewDecoder().Bytes([]byte{b})
			if err != nil {
				return ""
			}
			return width.Widen.String(string(r))
		})
		cyrillicTable = decodeRange(0xC0, 0xFF, func(b byte) string {
			return string(xcharmap.Windows1251.DecodeByte(b))
		})
	})
}

func decodeRange(lo, hi byte, fn func(byte) string) map[byte]string {
	out := make(map[byte]string, int(hi-lo)+1)
	for b := int(lo); b <= int(hi); b++ {
		if g := fn(byte(b)); g != "" && g != "\uFFFD" {
			out[byte(b)] = g
		}
	}
	return out
}

// ASCII returns the identity map of printable ASCII.
func ASCII() *Map {
	m := New(asciiEntries())
	m.Name = "ascii"
	m.Language = LanguageLatin
	return m.Finalize()
}

// Seed returns the fixed starting table for a language: printable ASCII,
// plus half-width katakana at 0xA1-0xDF for Japanese or Windows-1251
// Cyrillic at 0xC0-0xFF for Cyrillic.
func Seed(lang Language) *Map {
	loadSeeds()

	entries := asciiEntries()
	switch lang {
	case LanguageJapanese:
		for b, g := range katakanaTable {
			entries[b] = g
		}
	case LanguageCyrillic:
		for b, g := range cyrillicTable {
			entries[b] = g
		}
	default:
		lang = LanguageLatin
	}

	m := New(entries)
	m.Name = string(lang)
	m.Language = lang
	return m
}

func asciiEntries() map[byte]string {
	entries := make(map[byte]string, 0x7F-0x20)
	for b := 0x20; b <= 0x7E; b++ {
		entries[byte(b)] = string(rune(b))
	}
	return entries
}
