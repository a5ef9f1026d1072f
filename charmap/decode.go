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
	"fmt"
	"strings"
)

// DefaultSimilarRadius is the search distance of the similar-byte fallback.
const DefaultSimilarRadius = 5

// DecodeOptions tunes the fallbacks applied to unmapped bytes.
type DecodeOptions struct {
	// Similar substitutes the glyph of the nearest mapped byte within Radius.
	// The search checks b-d before b+d for d = 1..Radius. This is a
	// heuristic and is off by default.
	Similar bool
	Radius  int
}

// DecodeStats counts how bytes were decoded.
type DecodeStats struct {
	Total       int
	Mapped      int
	Control     int
	Substituted int
	Unmapped    int
}

// UnmappedRatio returns the share of bytes that fell back to a similar-byte
// substitution or a placeholder.
func (s DecodeStats) UnmappedRatio() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Unmapped+s.Substituted) / float64(s.Total)
}

// Placeholder returns the bracketed hex glyph used for unmapped bytes.
func Placeholder(b byte) string {
	return fmt.Sprintf(placeholderFormat, b)
}

// Decode decodes length bytes of data starting at start with the default
// options. The window is clipped to the buffer.
func (m *Map) Decode(data []byte, start, length int) string {
	s, _ := m.DecodeWith(data, start, length, DecodeOptions{})
	return s
}

// DecodeWith decodes like Decode and reports statistics.
func (m *Map) DecodeWith(data []byte, start, length int, opts DecodeOptions) (string, DecodeStats) {
	var stats DecodeStats
	if start < 0 || start >= len(data) || length <= 0 {
		return "", stats
	}
	end := min(start+length, len(data))

	var sb strings.Builder
	sb.Grow(end - start)
	for _, b := range data[start:end] {
		glyph, kind := m.decodeByte(b, opts)
		sb.WriteString(glyph)
		stats.Total++
		switch kind {
		case decodedMapped:
			stats.Mapped++
		case decodedControl:
			stats.Control++
		case decodedSimilar:
			stats.Substituted++
		default:
			stats.Unmapped++
		}
	}
	return sb.String(), stats
}

type decodeKind int

const (
	decodedMapped decodeKind = iota
	decodedControl
	decodedSimilar
	decodedPlaceholder
)

// DecodeByte returns the glyph for a single byte using opts.
func (m *Map) DecodeByte(b byte, opts DecodeOptions) string {
	g, _ := m.decodeByte(b, opts)
	return g
}

func (m *Map) decodeByte(b byte, opts DecodeOptions) (string, decodeKind) {
	if g := m.forward[b]; g != "" {
		return g, decodedMapped
	}
	if IsControl(b) || m.isTerminator(b) {
		return LineBreak, decodedControl
	}
	if opts.Similar {
		if g, ok := m.similar(b, opts.Radius); ok {
			return g, decodedSimilar
		}
	}
	return Placeholder(b), decodedPlaceholder
}

func (m *Map) isTerminator(b byte) bool {
	for _, t := range m.terminators {
		if t == b {
			return true
		}
	}
	return false
}

func (m *Map) similar(b byte, radius int) (string, bool) {
	if radius <= 0 {
		radius = DefaultSimilarRadius
	}
	for d := 1; d <= radius; d++ {
		if lo := int(b) - d; lo >= 0 && m.forward[lo] != "" {
			return m.forward[lo], true
		}
		if hi := int(b) + d; hi <= 0xFF && m.forward[hi] != "" {
			return m.forward[hi], true
		}
	}
	return "", false
}
