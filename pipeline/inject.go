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

package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ZaparooProject/go-romtext/charmap"
	"github.com/ZaparooProject/go-romtext/compression"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/retroenv/retrogolib/log"
)

// Change records one rewritten message window.
type Change struct {
	Index     int
	ROMOffset int
	Before    []byte
	After     []byte
}

// InjectResult holds the rewritten image and what changed in it.
type InjectResult struct {
	ROM     []byte
	Changes []Change
}

// Inject encodes translations into the messages of the named segment and
// returns a modified copy of the image. translations must have one entry
// per message, in message order. A translation equal to the extracted text
// leaves its window untouched. Shorter translations are padded with the
// segment pad byte or the charmap space; terminator bytes are never
// written. If any translation does not fit, nothing is written and the
// error is a *LengthOverflowError. A translation that encodes to a break
// byte fails with an *EmbeddedBreakError.
func (e *Extractor) Inject(ctx context.Context, img *rom.Image, segment string, translations []string) (*InjectResult, error) {
	d := e.resolver.Resolve(ctx, img.GameID(), img.Platform())
	if d == nil {
		return nil, ctx.Err()
	}

	key := romKey(img)
	segments, _, err := e.segments(ctx, d, img, key, false)
	if err != nil {
		return nil, err
	}
	seg, ok := findSegment(segments, segment)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSegmentNotFound, segment)
	}

	ds, err := e.decode(img, key, seg)
	if err != nil {
		return nil, fmt.Errorf("decode segment %q: %w", segment, err)
	}
	if ds.scheme != compression.SchemeNone {
		return nil, fmt.Errorf("%w: %q uses %s", ErrCompressedSegment, segment, ds.scheme)
	}
	if len(translations) != len(ds.messages) {
		return nil, fmt.Errorf("%w: %d translations for %d messages",
			ErrCountMismatch, len(translations), len(ds.messages))
	}

	pad, ok := ds.charmap.SpaceByte()
	if seg.HasPad {
		pad, ok = seg.Pad, true
	}
	if !ok {
		pad = 0x20
	}

	type pending struct {
		index int
		bytes []byte
	}
	var writes []pending
	for i, text := range translations {
		msg := ds.messages[i]
		if text == msg.Text {
			continue
		}
		b, fallbacks := ds.charmap.Encode(text)
		if len(b) > msg.ByteLength {
			return nil, &LengthOverflowError{
				Segment: segment,
				Index:   i,
				Window:  msg.ByteLength,
				Encoded: len(b),
			}
		}
		if j := indexBreak(b, ds.charmap); j >= 0 {
			return nil, &EmbeddedBreakError{
				Segment: segment,
				Index:   i,
				Offset:  j,
				Byte:    b[j],
			}
		}
		if len(fallbacks) > 0 {
			e.logger.Debug("Lossy encode",
				log.String("segment", segment), log.Int("index", i), log.Int("fallbacks", len(fallbacks)))
		}
		writes = append(writes, pending{index: i, bytes: b})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := img.Clone()
	res := &InjectResult{ROM: out}
	for _, w := range writes {
		i, b := w.index, w.bytes
		msg := ds.messages[i]
		window := out[msg.ROMOffset : msg.ROMOffset+msg.ByteLength]

		after := make([]byte, msg.ByteLength)
		copy(after, b)
		for j := len(b); j < len(after); j++ {
			after[j] = pad
		}
		if bytes.Equal(window, after) {
			continue
		}

		res.Changes = append(res.Changes, Change{
			Index:     i,
			ROMOffset: msg.ROMOffset,
			Before:    bytes.Clone(window),
			After:     after,
		})
		copy(window, after)
	}

	e.logger.Info("Injected text",
		log.String("segment", segment), log.Int("changes", len(res.Changes)))
	return res, nil
}

func indexBreak(b []byte, m *charmap.Map) int {
	for i, c := range b {
		if m.IsBreak(c) {
			return i
		}
	}
	return -1
}
