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
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// FallbackKind describes how a character without an exact glyph was encoded.
type FallbackKind string

// Encode fallbacks.
const (
	FallbackCaseFold FallbackKind = "case_fold"
	FallbackControl  FallbackKind = "control"
	FallbackSpace    FallbackKind = "space"
)

// Fallback records a character that was not encoded through an exact glyph.
type Fallback struct {
	Offset int // byte offset in the input text
	Text   string
	Kind   FallbackKind
	Byte   byte
}

// Encode converts text to bytes. Matching order at each position: a [XX]
// placeholder naming a byte that has no glyph, a multi-character glyph whose
// characters cannot be written one by one, the exact character, a
// case-insensitive match, and finally the space byte. Characters encoded
// through a fallback are reported.
//
// Text produced by Decode encodes back to bytes that decode to the same
// text.
func (m *Map) Encode(text string) ([]byte, []Fallback) {
	out := make([]byte, 0, len(text))
	var fallbacks []Fallback
	folder := cases.Fold()

	for i := 0; i < len(text); {
		if b, ok := m.placeholder(text[i:]); ok {
			out = append(out, b)
			i += 4
			continue
		}
		if b, n, ok := m.matchToken(text[i:]); ok {
			out = append(out, b)
			i += n
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		ch := text[i : i+size]
		if b, ok := m.reverse[ch]; ok {
			out = append(out, b)
			i += size
			continue
		}

		fb := Fallback{Offset: i, Text: ch}
		switch b, ok := m.folded[folder.String(string(r))]; {
		case ok:
			fb.Kind, fb.Byte = FallbackCaseFold, b
		case ch == LineBreak && m.controlByte() >= 0:
			fb.Kind, fb.Byte = FallbackControl, byte(m.controlByte())
		default:
			fb.Kind, fb.Byte = FallbackSpace, m.padByte()
		}
		out = append(out, fb.Byte)
		fallbacks = append(fallbacks, fb)
		i += size
	}
	return out, fallbacks
}

// EncodedLen returns the number of bytes text encodes to.
func (m *Map) EncodedLen(text string) int {
	b, _ := m.Encode(text)
	return len(b)
}

func (m *Map) matchToken(s string) (byte, int, bool) {
	for _, tok := range m.tokens {
		if strings.HasPrefix(s, tok) && !m.spellable(tok) {
			return m.reverse[tok], len(tok), true
		}
	}
	return 0, 0, false
}

// spellable reports whether every character of tok has its own glyph.
func (m *Map) spellable(tok string) bool {
	for _, r := range tok {
		if _, ok := m.reverse[string(r)]; !ok {
			return false
		}
	}
	return true
}

// placeholder matches a leading "[XX]" that Decode could have produced: the
// byte has no glyph and does not decode as a line break.
func (m *Map) placeholder(s string) (byte, bool) {
	b, ok := parsePlaceholder(s)
	if !ok || m.forward[b] != "" || IsControl(b) || m.isTerminator(b) {
		return 0, false
	}
	return b, true
}

// controlByte returns the byte an unmapped line break encodes to: the first
// declared terminator, else the first unmapped control byte, or -1.
func (m *Map) controlByte() int {
	if len(m.terminators) > 0 {
		return int(m.terminators[0])
	}
	for _, c := range controlBytes {
		if m.forward[c] == "" {
			return int(c)
		}
	}
	return -1
}

func (m *Map) padByte() byte {
	if m.hasSpace {
		return m.spaceByte
	}
	return 0x20
}

// parsePlaceholder matches a leading "[XX]" with two uppercase hex digits.
func parsePlaceholder(s string) (byte, bool) {
	if len(s) < 4 || s[0] != '[' || s[3] != ']' {
		return 0, false
	}
	for _, c := range s[1:3] {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return 0, false
		}
	}
	v, err := strconv.ParseUint(s[1:3], 16, 8)
	if err != nil {
		return 0, false
	}
	return byte(v), true
}
