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

// Package scanner finds byte ranges of cartridge images that probably hold
// text: pointer tables aimed at readable data, and runs of readable blocks.
//
// Everything here is heuristic. Thresholds live in Config so callers and
// tests can pin exact behavior.
package scanner

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/go-romtext/charmap"
)

// ErrSegmentBounds is the sentinel behind BoundsError.
var ErrSegmentBounds = errors.New("segment out of bounds")

// BoundsError reports a segment that violates 0 <= start < end <= limit.
type BoundsError struct {
	Name       string
	Start, End int
	Limit      int
}

func (e BoundsError) Error() string {
	return fmt.Sprintf("segment %q [0x%X, 0x%X) out of bounds for %d byte image",
		e.Name, e.Start, e.End, e.Limit)
}

// Unwrap lets errors.Is match ErrSegmentBounds.
func (BoundsError) Unwrap() error {
	return ErrSegmentBounds
}

// Segment is a byte range [Start, End) hypothesized to hold text.
type Segment struct {
	Name  string
	Start int
	End   int

	// Codec names a compression codec; empty selects the dispatcher.
	Codec string
	// Charmap is nil when the pipeline should auto-detect one.
	Charmap *charmap.Map
	// Language selects a seed table when Charmap is nil.
	Language charmap.Language
	// Terminators are extra message terminator bytes.
	Terminators []byte
	// Pad is the injection padding byte when HasPad is set.
	Pad    byte
	HasPad bool

	Readability     float64
	PointerEvidence bool
}

// Len returns the segment length in bytes.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether s and o share at least one byte.
func (s Segment) Overlaps(o Segment) bool {
	return s.Start < o.End && o.Start < s.End
}

// Check returns a BoundsError unless 0 <= Start < End <= limit.
func (s Segment) Check(limit int) error {
	if s.Start < 0 || s.Start >= s.End || s.End > limit {
		return BoundsError{Name: s.Name, Start: s.Start, End: s.End, Limit: limit}
	}
	return nil
}

// ValidateSegments splits segments into those inside an image of limit
// bytes and the errors of those outside.
func ValidateSegments(segments []Segment, limit int) ([]Segment, []error) {
	valid := make([]Segment, 0, len(segments))
	var errs []error
	for _, s := range segments {
		if err := s.Check(limit); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, s)
	}
	return valid, errs
}

// Config holds the scanner thresholds.
type Config struct {
	// MinSegmentLength is the shortest span auto-detection accepts.
	MinSegmentLength int
	// MinReadability is the block readability needed to count as text.
	MinReadability float64
	// BlockSize is the auto-detection window step.
	BlockSize int
	// Hysteresis is the number of consecutive readable blocks needed to
	// open a segment, and the width of the rolling average that keeps it
	// open.
	Hysteresis int
	// MaxSegments caps the number of segments kept.
	MaxSegments int
	// ProbeWindow is the sample size checked at a pointer target.
	ProbeWindow int
	// PointerReadability is the readability a pointer target needs.
	PointerReadability float64
	// GroupMaxDistance merges pointer targets closer than this.
	GroupMaxDistance int
	// SuspectLowBytes drops singleton pointer groups whose raw value ends
	// in one of these bytes.
	SuspectLowBytes []byte
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MinSegmentLength:   200,
		MinReadability:     0.65,
		BlockSize:          32,
		Hysteresis:         2,
		MaxSegments:        20,
		ProbeWindow:        16,
		PointerReadability: 0.60,
		GroupMaxDistance:   50,
		SuspectLowBytes:    []byte{0x00, 0xFF},
	}
}

// WithDefaults returns c with zero fields filled from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.MinSegmentLength <= 0 {
		c.MinSegmentLength = d.MinSegmentLength
	}
	if c.MinReadability <= 0 {
		c.MinReadability = d.MinReadability
	}
	if c.BlockSize <= 0 {
		c.BlockSize = d.BlockSize
	}
	if c.Hysteresis <= 0 {
		c.Hysteresis = d.Hysteresis
	}
	if c.MaxSegments <= 0 {
		c.MaxSegments = d.MaxSegments
	}
	if c.ProbeWindow <= 0 {
		c.ProbeWindow = d.ProbeWindow
	}
	if c.PointerReadability <= 0 {
		c.PointerReadability = d.PointerReadability
	}
	if c.GroupMaxDistance <= 0 {
		c.GroupMaxDistance = d.GroupMaxDistance
	}
	if c.SuspectLowBytes == nil {
		c.SuspectLowBytes = d.SuspectLowBytes
	}
	return c
}
