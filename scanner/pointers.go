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

package scanner

import (
	"context"
	"sort"

	"github.com/ZaparooProject/go-romtext/internal/binary"
)

// cancelCheckInterval is how many pointer candidates are examined between
// context checks.
const cancelCheckInterval = 4096

// Pointer is a word in the image that resolves to a readable offset.
type Pointer struct {
	Offset int    // where the pointer is stored
	Raw    uint32 // the stored little-endian value
	Target int    // the image offset it resolves to
}

// FindPointers steps through data at width-byte stride, reads each
// little-endian word, subtracts base when non-zero, and keeps words whose
// target lies inside data and starts a readable ProbeWindow-byte sample.
func FindPointers(ctx context.Context, data []byte, width int, base uint32, cfg Config) ([]Pointer, error) {
	cfg = cfg.WithDefaults()
	if width != 2 && width != 4 {
		width = 2
	}

	var pointers []Pointer
	for i, off := 0, 0; off+width <= len(data); i, off = i+1, off+width {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		raw, _ := binary.WordLE(data, off, width)
		target := raw
		if base != 0 {
			if raw < base {
				continue
			}
			target = raw - base
		}
		if uint64(target) >= uint64(len(data)) {
			continue
		}

		probe := binary.Slice(data, int(target), cfg.ProbeWindow)
		if len(probe) < cfg.ProbeWindow {
			continue
		}
		if Readability(probe) >= cfg.PointerReadability {
			pointers = append(pointers, Pointer{Offset: off, Raw: raw, Target: int(target)})
		}
	}
	return pointers, nil
}

// GroupClose sorts pointers by target and merges runs whose consecutive
// targets are at most maxDistance apart. Singleton groups whose raw value
// ends in a suspect low byte are dropped as likely misaligned reads.
func GroupClose(pointers []Pointer, maxDistance int, suspect []byte) [][]Pointer {
	if len(pointers) == 0 {
		return nil
	}

	sorted := append([]Pointer(nil), pointers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Target != sorted[j].Target {
			return sorted[i].Target < sorted[j].Target
		}
		return sorted[i].Offset < sorted[j].Offset
	})

	var groups [][]Pointer
	current := []Pointer{sorted[0]}
	for _, p := range sorted[1:] {
		if p.Target-current[len(current)-1].Target <= maxDistance {
			current = append(current, p)
			continue
		}
		groups = appendGroup(groups, current, suspect)
		current = []Pointer{p}
	}
	return appendGroup(groups, current, suspect)
}

func appendGroup(groups [][]Pointer, group []Pointer, suspect []byte) [][]Pointer {
	if len(group) == 1 {
		low := byte(group[0].Raw)
		for _, s := range suspect {
			if low == s {
				return groups
			}
		}
	}
	return append(groups, group)
}

// AttachPointerEvidence marks segments containing at least one grouped
// pointer target.
func AttachPointerEvidence(segments []Segment, groups [][]Pointer) {
	for i := range segments {
		for _, g := range groups {
			if segments[i].PointerEvidence {
				break
			}
			for _, p := range g {
				if p.Target >= segments[i].Start && p.Target < segments[i].End {
					segments[i].PointerEvidence = true
					break
				}
			}
		}
	}
}
