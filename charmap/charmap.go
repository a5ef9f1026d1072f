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

// Package charmap maps cartridge text bytes to glyphs and back.
//
// A Map assigns a glyph string to each of the 256 byte values. Glyphs are
// usually one character but may be longer tokens such as "PK" or "[END]".
// The reverse direction is derived first-wins in ascending byte order, so
// when several bytes share a glyph the lowest byte encodes it.
package charmap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Well-known glyphs.
const (
	LineBreak = "\n"
	EndMarker = "[END]"
	Space     = " "
)

// placeholderFormat renders unmapped bytes.
const placeholderFormat = "[%02X]"

// Language is the script a map was built for.
type Language string

// Languages known to the detector and the locale loader.
const (
	LanguageUnknown  Language = ""
	LanguageLatin    Language = "en"
	LanguageJapanese Language = "ja"
	LanguageCyrillic Language = "ru"
)

// controlBytes decode as line breaks when they have no glyph of their own.
var controlBytes = [...]byte{0x00, 0x0A, 0x0D, 0xFE, 0xFF}

// IsControl reports whether b is one of the conventional terminator bytes.
func IsControl(b byte) bool {
	for _, c := range controlBytes {
		if b == c {
			return true
		}
	}
	return false
}

// Map is a byte to glyph table. The zero value is not usable; use New.
type Map struct {
	Name     string
	Language Language

	forward     [256]string
	reverse     map[string]byte
	folded      map[string]byte
	tokens      []string
	terminators []byte
	spaceByte   byte
	hasSpace    bool
}

// New returns a map holding entries. Empty glyphs are ignored.
func New(entries map[byte]string) *Map {
	m := &Map{}
	for b, g := range entries {
		m.forward[b] = g
	}
	m.reindex()
	return m
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	c := *m
	c.terminators = append([]byte(nil), m.terminators...)
	c.reindex()
	return &c
}

// Set assigns glyph to b. An empty glyph unmaps b.
func (m *Map) Set(b byte, glyph string) {
	m.forward[b] = glyph
	m.reindex()
}

// Glyph returns the glyph of b and whether b is mapped.
func (m *Map) Glyph(b byte) (string, bool) {
	g := m.forward[b]
	return g, g != ""
}

// Lookup returns the byte that encodes glyph exactly.
func (m *Map) Lookup(glyph string) (byte, bool) {
	b, ok := m.reverse[glyph]
	return b, ok
}

// Len returns the number of mapped bytes.
func (m *Map) Len() int {
	n := 0
	for _, g := range m.forward {
		if g != "" {
			n++
		}
	}
	return n
}

// Entries returns a copy of the forward table.
func (m *Map) Entries() map[byte]string {
	out := make(map[byte]string, m.Len())
	for b, g := range m.forward {
		if g != "" {
			out[byte(b)] = g
		}
	}
	return out
}

// SpaceByte returns the byte used for spaces and padding.
func (m *Map) SpaceByte() (byte, bool) {
	return m.spaceByte, m.hasSpace
}

// Terminators returns the bytes detected or declared as message terminators.
func (m *Map) Terminators() []byte {
	return append([]byte(nil), m.terminators...)
}

// SetTerminators declares terminator bytes. Unmapped terminators decode as
// line breaks.
func (m *Map) SetTerminators(terms []byte) {
	m.terminators = append([]byte(nil), terms...)
}

// IsBreak reports whether b ends a message: a declared terminator, a byte
// whose glyph is a line break or the end marker, or an unmapped control byte.
func (m *Map) IsBreak(b byte) bool {
	for _, t := range m.terminators {
		if b == t {
			return true
		}
	}
	switch g := m.forward[b]; g {
	case LineBreak, EndMarker:
		return true
	case "":
		return IsControl(b)
	default:
		return false
	}
}

// Finalize makes sure the map has a space glyph: an existing " " entry, else
// 0x20 when it is free, else the first unmapped byte.
func (m *Map) Finalize() *Map {
	if b, ok := m.reverse[Space]; ok {
		m.spaceByte, m.hasSpace = b, true
		return m
	}
	candidate := -1
	if m.forward[0x20] == "" {
		candidate = 0x20
	} else {
		for b := range m.forward {
			if m.forward[b] == "" {
				candidate = b
				break
			}
		}
	}
	if candidate < 0 {
		m.spaceByte, m.hasSpace = 0x20, true
		return m
	}
	m.Set(byte(candidate), Space)
	return m
}

// reindex rebuilds the reverse, case-folded and token indexes.
func (m *Map) reindex() {
	m.reverse = make(map[string]byte, 256)
	m.folded = make(map[string]byte, 256)
	m.tokens = nil

	folder := cases.Fold()
	for b := 0; b < 256; b++ {
		g := m.forward[b]
		if g == "" {
			continue
		}
		if _, seen := m.reverse[g]; seen {
			continue
		}
		m.reverse[g] = byte(b)
		if utf8.RuneCountInString(g) > 1 {
			m.tokens = append(m.tokens, g)
			continue
		}
		key := folder.String(g)
		if _, seen := m.folded[key]; !seen {
			m.folded[key] = byte(b)
		}
	}
	sort.Slice(m.tokens, func(i, j int) bool {
		if len(m.tokens[i]) != len(m.tokens[j]) {
			return len(m.tokens[i]) > len(m.tokens[j])
		}
		return m.tokens[i] < m.tokens[j]
	})

	m.hasSpace = false
	if b, ok := m.reverse[Space]; ok {
		m.spaceByte, m.hasSpace = b, true
	}
}

// ParseTable converts a table with string keys into map entries. Keys are
// hex with a 0x prefix, bare two-digit hex as in table files, or decimal.
func ParseTable(table map[string]string) (map[byte]string, error) {
	out := make(map[byte]string, len(table))
	for key, glyph := range table {
		b, err := parseKey(key)
		if err != nil {
			return nil, err
		}
		out[b] = glyph
	}
	return out, nil
}

func parseKey(key string) (byte, error) {
	k := strings.TrimSpace(key)
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(k, "0x"), strings.HasPrefix(k, "0X"):
		v, err = strconv.ParseUint(k[2:], 16, 8)
	case len(k) == 2:
		v, err = strconv.ParseUint(k, 16, 8)
	default:
		v, err = strconv.ParseUint(k, 10, 8)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid charmap key %q: %w", key, err)
	}
	return byte(v), nil
}
