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

// Package plugin resolves a game identifier to a descriptor of the text
// segments in that game's cartridge.
//
// Descriptors come from three places, tried in order: compiled-in plugins
// for well-known games, user descriptors loaded from JSON, and a generic
// fallback per platform that asks the pipeline to auto-detect everything.
package plugin

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ZaparooProject/go-romtext/charmap"
	"github.com/ZaparooProject/go-romtext/compression"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/ZaparooProject/go-romtext/scanner"
)

// ErrInvalidDescriptor is the sentinel behind ConfigValidationError.
var ErrInvalidDescriptor = errors.New("invalid descriptor")

// ConfigValidationError describes why a descriptor was rejected.
type ConfigValidationError struct {
	Source string
	Field  string
	Reason string
}

func (e *ConfigValidationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("invalid descriptor: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid descriptor %s: %s: %s", e.Source, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidDescriptor.
func (*ConfigValidationError) Unwrap() error {
	return ErrInvalidDescriptor
}

// RawSegment is a segment as written in a descriptor file.
type RawSegment struct {
	Name        string            `json:"name"`
	Start       Address           `json:"start"`
	End         Address           `json:"end"`
	Charmap     map[string]string `json:"charmap,omitempty"`
	Compression string            `json:"compression,omitempty"`
	Terminators []Address         `json:"terminators,omitempty"`
	PadByte     Address           `json:"pad_byte,omitzero"`
	Language    string            `json:"language,omitempty"`
}

// RawDescriptor is a descriptor as written in a JSON file.
type RawDescriptor struct {
	Name          string       `json:"name,omitempty"`
	GameIDPattern string       `json:"game_id_pattern"`
	Platforms     []string     `json:"platforms,omitempty"`
	Segments      []RawSegment `json:"segments"`

	// Source names where the descriptor came from, for error messages.
	Source string `json:"-"`
}

// SegmentTemplate is a validated segment declaration. Addresses are logical:
// GBA addresses at or above the cartridge base are rebased when the template
// is instantiated, everything else is a file offset.
type SegmentTemplate struct {
	Name        string
	Start, End  uint32
	Codec       string
	Charmap     *charmap.Map
	Language    charmap.Language
	Terminators []byte
	Pad         byte
	HasPad      bool
}

// Descriptor is a validated plugin.
type Descriptor struct {
	Name      string
	Source    string
	Pattern   *regexp.Regexp
	Platforms []rom.Platform
	Segments  []SegmentTemplate

	// Fallback descriptors declare no segments; the pipeline auto-detects
	// segments and charmaps instead.
	Fallback bool
}

// Matches reports whether d applies to gameID on platform p.
func (d *Descriptor) Matches(gameID string, p rom.Platform) bool {
	if len(d.Platforms) > 0 {
		found := false
		for _, dp := range d.Platforms {
			if dp == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return d.Pattern.MatchString(gameID)
}

// Instantiate turns the templates into segments for an image of romLen bytes
// on platform p. Each segment gets its own copy of the template charmap.
// Segments outside the image are returned as errors instead.
func (d *Descriptor) Instantiate(p rom.Platform, romLen int) ([]scanner.Segment, []error) {
	segments := make([]scanner.Segment, 0, len(d.Segments))
	for _, t := range d.Segments {
		start, end := rebase(p, t.Start), rebase(p, t.End)
		seg := scanner.Segment{
			Name:        t.Name,
			Start:       int(start),
			End:         int(end),
			Codec:       t.Codec,
			Language:    t.Language,
			Terminators: append([]byte(nil), t.Terminators...),
			Pad:         t.Pad,
			HasPad:      t.HasPad,
		}
		if t.Charmap != nil {
			seg.Charmap = t.Charmap.Clone()
		}
		segments = append(segments, seg)
	}
	return scanner.ValidateSegments(segments, romLen)
}

func rebase(p rom.Platform, addr uint32) uint32 {
	if base := p.Base(); base != 0 && addr >= base {
		return addr - base
	}
	return addr
}

// Validate checks a raw descriptor and compiles it. The game ID pattern is
// anchored at the start of the identifier.
func Validate(raw RawDescriptor) (*Descriptor, error) {
	fail := func(field, format string, args ...any) (*Descriptor, error) {
		return nil, &ConfigValidationError{
			Source: raw.Source,
			Field:  field,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	if raw.GameIDPattern == "" {
		return fail("game_id_pattern", "missing")
	}
	pattern, err := regexp.Compile(`^(?:` + raw.GameIDPattern + `)`)
	if err != nil {
		return fail("game_id_pattern", "%v", err)
	}

	d := &Descriptor{
		Name:    raw.Name,
		Source:  raw.Source,
		Pattern: pattern,
	}
	if d.Name == "" {
		d.Name = raw.GameIDPattern
	}

	for _, name := range raw.Platforms {
		p, err := rom.ParsePlatform(name)
		if err != nil {
			return fail("platforms", "%v", err)
		}
		d.Platforms = append(d.Platforms, p)
	}

	names := make(map[string]struct{}, len(raw.Segments))
	for i, rs := range raw.Segments {
		t, field, err := validateSegment(rs)
		if err != nil {
			return fail(fmt.Sprintf("segments[%d].%s", i, field), "%v", err)
		}
		if _, dup := names[t.Name]; dup {
			return fail(fmt.Sprintf("segments[%d].name", i), "duplicate name %q", t.Name)
		}
		names[t.Name] = struct{}{}
		d.Segments = append(d.Segments, t)
	}
	return d, nil
}

func validateSegment(rs RawSegment) (SegmentTemplate, string, error) {
	t := SegmentTemplate{Name: rs.Name}
	if rs.Name == "" {
		return t, "name", errMissing
	}

	var err error
	if t.Start, err = rs.Start.Uint32(); err != nil {
		return t, "start", err
	}
	if t.End, err = rs.End.Uint32(); err != nil {
		return t, "end", err
	}
	if t.Start >= t.End {
		return t, "end", fmt.Errorf("start 0x%X is not below end 0x%X", t.Start, t.End)
	}

	if rs.Compression != "" {
		if _, err := compression.Get(rs.Compression); err != nil {
			return t, "compression", err
		}
		t.Codec = compression.Canonical(rs.Compression)
	}

	if len(rs.Charmap) > 0 {
		entries, err := charmap.ParseTable(rs.Charmap)
		if err != nil {
			return t, "charmap", err
		}
		t.Charmap = charmap.New(entries).Finalize()
	}

	switch lang := charmap.Language(rs.Language); lang {
	case charmap.LanguageUnknown, charmap.LanguageLatin, charmap.LanguageJapanese, charmap.LanguageCyrillic:
		t.Language = lang
	default:
		return t, "language", fmt.Errorf("unsupported language %q", rs.Language)
	}

	for _, a := range rs.Terminators {
		b, err := byteValue(a)
		if err != nil {
			return t, "terminators", err
		}
		t.Terminators = append(t.Terminators, b)
	}

	if rs.PadByte.IsSet() {
		b, err := byteValue(rs.PadByte)
		if err != nil {
			return t, "pad_byte", err
		}
		t.Pad, t.HasPad = b, true
	}
	return t, "", nil
}

func byteValue(a Address) (byte, error) {
	v, err := a.Uint32()
	if err != nil {
		return 0, err
	}
	if v > 0xFF {
		return 0, fmt.Errorf("0x%X does not fit in a byte", v)
	}
	return byte(v), nil
}
