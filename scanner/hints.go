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
	"fmt"

	"github.com/ZaparooProject/go-romtext/rom"
)

// Hint is a platform's typical text window in logical addresses.
type Hint struct {
	Start, End uint32
}

var platformHints = map[rom.Platform][]Hint{
	rom.PlatformGB:  {{Start: 0x4000, End: 0x8000}, {Start: 0x8000, End: 0xC000}},
	rom.PlatformGBC: {{Start: 0x4000, End: 0x8000}, {Start: 0x8000, End: 0xC000}},
	rom.PlatformGBA: {{Start: 0x083D0000, End: 0x08420000}},
}

// PlatformHints returns the typical text windows of a platform.
func PlatformHints(p rom.Platform) []Hint {
	return append([]Hint(nil), platformHints[p]...)
}

// HintSegments converts the platform hints into segments clipped to an
// image of romLen bytes. GBA windows are rebased; GB windows are used as
// image offsets. Windows starting past the end are dropped.
func HintSegments(p rom.Platform, romLen int) []Segment {
	var out []Segment
	for i, h := range platformHints[p] {
		start, end := h.Start-p.Base(), h.End-p.Base()
		if int64(start) >= int64(romLen) {
			continue
		}
		out = append(out, Segment{
			Name:  fmt.Sprintf("hint_segment_%d", i),
			Start: int(start),
			End:   int(min(int64(end), int64(romLen))),
		})
	}
	return out
}
