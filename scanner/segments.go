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
	"fmt"
	"sort"
)

// AutoDetectSegments slides a BlockSize window over data. A segment opens
// after Hysteresis consecutive blocks reach MinReadability and closes once
// the average of the last Hysteresis blocks drops below it. A closed
// segment ends at its last readable block, extended over at most one block
// of trailing terminator bytes, and is kept when at least MinSegmentLength
// long. The result is free of overlaps, capped at MaxSegments and sorted by
// start.
func AutoDetectSegments(ctx context.Context, data []byte, cfg Config) ([]Segment, error) {
	cfg = cfg.WithDefaults()
	bs, h := cfg.BlockSize, cfg.Hysteresis

	var (
		segments    []Segment
		history     = make([]float64, 0, h+1)
		consecutive int
		open        bool
		start       int
		lastGoodEnd int
	)

	closeSegment := func() {
		end := lastGoodEnd
		limit := min(lastGoodEnd+bs, len(data))
		for end < limit && IsTerminator(data[end]) {
			end++
		}
		if end-start >= cfg.MinSegmentLength {
			segments = append(segments, Segment{
				Start:       start,
				End:         end,
				Codec:       "none",
				Readability: Readability(data[start:end]),
			})
		}
		open = false
	}

	for off := 0; off < len(data); off += bs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(off+bs, len(data))
		// Terminator-only blocks score zero and never open a segment.
		score := Readability(data[off:end])
		good := score >= cfg.MinReadability

		history = append(history, score)
		if len(history) > h {
			history = history[1:]
		}

		if !open {
			if good {
				consecutive++
			} else {
				consecutive = 0
			}
			if consecutive >= h {
				open = true
				start = off - (h-1)*bs
				lastGoodEnd = end
			}
			continue
		}

		if good {
			lastGoodEnd = end
		}
		if average(history) < cfg.MinReadability {
			closeSegment()
			consecutive = 0
			if good {
				consecutive = 1
			}
		}
	}
	if open {
		closeSegment()
	}

	segments = ResolveOverlaps(segments, cfg.MaxSegments)
	for i := range segments {
		segments[i].Name = fmt.Sprintf("auto_segment_%d", i)
	}
	return segments, nil
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ResolveOverlaps sorts segments by start and, when two overlap, keeps the
// one with the higher readability. If more than max remain, the most
// readable max are kept. The result is sorted by start.
func ResolveOverlaps(segments []Segment, max int) []Segment {
	if len(segments) == 0 {
		return nil
	}

	sorted := append([]Segment(nil), segments...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	kept := make([]Segment, 0, len(sorted))
	for _, s := range sorted {
		if n := len(kept); n > 0 && kept[n-1].Overlaps(s) {
			if s.Readability > kept[n-1].Readability {
				kept[n-1] = s
			}
			continue
		}
		kept = append(kept, s)
	}

	if max > 0 && len(kept) > max {
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Readability > kept[j].Readability
		})
		kept = kept[:max]
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Start < kept[j].Start
		})
	}
	return kept
}
