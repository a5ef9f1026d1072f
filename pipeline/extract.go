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
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"slices"

	"github.com/ZaparooProject/go-romtext/charmap"
	"github.com/ZaparooProject/go-romtext/compression"
	"github.com/ZaparooProject/go-romtext/plugin"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/ZaparooProject/go-romtext/scanner"
	"github.com/retroenv/retrogolib/log"
)

// ProblemKind classifies a per-segment problem.
type ProblemKind string

// Problem kinds. Only segments with a decode_degraded problem still appear
// in the result.
const (
	ProblemSegmentBounds  ProblemKind = "segment_bounds"
	ProblemDecode         ProblemKind = "decode"
	ProblemDecodeDegraded ProblemKind = "decode_degraded"
	ProblemCompression    ProblemKind = "compression"
)

// Problem is a recovered per-segment failure or warning.
type Problem struct {
	Segment string
	Kind    ProblemKind
	Err     error
}

// Message is one decoded text unit. Offsets are byte offsets.
type Message struct {
	Index int
	// Offset is relative to the segment's decompressed bytes.
	Offset int
	// ROMOffset is the image offset, or -1 for compressed segments.
	ROMOffset  int
	ByteLength int
	Text       string
	// Terminator is the byte that ended the message, or -1 at the end of
	// the segment.
	Terminator int
}

// SegmentReport holds per-segment diagnostics.
type SegmentReport struct {
	Name            string
	Start, End      int
	Codec           string
	Language        charmap.Language
	PrintableRatio  float64
	UnmappedRatio   float64
	Terminators     []byte
	PointerEvidence bool
	Messages        int
	Degraded        bool
}

// Result is the outcome of an extraction. Segments holds the messages of
// every segment that decoded; Order lists their names in processing order.
type Result struct {
	GameID   string
	Platform rom.Platform
	Plugin   string

	Segments map[string][]Message
	Order    []string
	Reports  []SegmentReport
	Problems []Problem
}

// decodedSegment is a segment after decompression, charmap selection and
// message splitting.
type decodedSegment struct {
	seg      scanner.Segment
	scheme   compression.Scheme
	data     []byte
	charmap  *charmap.Map
	messages []Message
	stats    charmap.DecodeStats
}

// Extract decodes every text segment of img. Per-segment failures are
// recorded as problems and never abort the run. On cancellation the
// segments finished so far are returned with ctx.Err(). If no segment can
// be produced at all the error wraps ErrUnsupportedGame.
func (e *Extractor) Extract(ctx context.Context, img *rom.Image) (*Result, error) {
	res := &Result{
		GameID:   img.GameID(),
		Platform: img.Platform(),
		Segments: make(map[string][]Message),
	}

	d := e.resolver.Resolve(ctx, res.GameID, res.Platform)
	if d == nil {
		return res, ctx.Err()
	}
	res.Plugin = d.Name

	key := romKey(img)
	segments, problems, err := e.segments(ctx, d, img, key, true)
	res.Problems = append(res.Problems, problems...)
	if err != nil {
		return res, err
	}
	if len(segments) == 0 {
		return res, fmt.Errorf("%w: %s: no text segments", ErrUnsupportedGame, res.GameID)
	}

	e.logger.Info("Extracting text",
		log.String("game_id", res.GameID),
		log.String("platform", string(res.Platform)),
		log.String("plugin", d.Name),
		log.Int("segments", len(segments)))

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ds, err := e.decode(img, key, seg)
		if err != nil {
			kind := problemKind(err)
			e.logger.Warn("Skipping segment", log.String("segment", seg.Name), log.Err(err))
			res.Problems = append(res.Problems, Problem{Segment: seg.Name, Kind: kind, Err: err})
			continue
		}

		report := e.report(ds)
		if report.Degraded {
			res.Problems = append(res.Problems, Problem{
				Segment: seg.Name,
				Kind:    ProblemDecodeDegraded,
				Err:     fmt.Errorf("%.0f%% of bytes unmapped", report.UnmappedRatio*100),
			})
		}
		res.Segments[seg.Name] = ds.messages
		res.Order = append(res.Order, seg.Name)
		res.Reports = append(res.Reports, report)
	}
	return res, nil
}

// segments produces the validated segments for img from descriptor d,
// running auto-detection for fallback descriptors. With evidence set it also
// attaches pointer evidence from the image's cached pointer scan.
func (e *Extractor) segments(ctx context.Context, d *plugin.Descriptor, img *rom.Image,
	key [sha256.Size]byte, evidence bool,
) ([]scanner.Segment, []Problem, error) {
	var (
		segments []scanner.Segment
		problems []Problem
	)

	if d.Fallback {
		found, err := scanner.AutoDetectSegments(ctx, img.Bytes(), e.cfg.Scanner)
		if err != nil {
			return nil, nil, err
		}
		if len(found) == 0 {
			found = scanner.HintSegments(img.Platform(), img.Len())
			e.logger.Debug("No readable segments found, using platform hints",
				log.Int("hints", len(found)))
		}
		segments = found
	} else {
		valid, errs := d.Instantiate(img.Platform(), img.Len())
		for _, err := range errs {
			var name string
			var be scanner.BoundsError
			if errors.As(err, &be) {
				name = be.Name
			}
			e.logger.Warn("Skipping segment", log.String("segment", name), log.Err(err))
			problems = append(problems, Problem{Segment: name, Kind: ProblemSegmentBounds, Err: err})
		}
		segments = valid
	}

	if e.cfg.MaxSegments > 0 && len(segments) > e.cfg.MaxSegments {
		segments = segments[:e.cfg.MaxSegments]
	}

	if !evidence {
		return segments, problems, nil
	}
	groups, err := e.pointerGroups(ctx, img, key)
	if err != nil {
		return nil, problems, err
	}
	scanner.AttachPointerEvidence(segments, groups)
	return segments, problems, nil
}

// pointerGroups scans img for pointers once per image and groups them.
func (e *Extractor) pointerGroups(ctx context.Context, img *rom.Image, key [sha256.Size]byte) ([][]scanner.Pointer, error) {
	if groups, ok := e.pointers.Get(key); ok {
		return groups, nil
	}

	mapper := rom.NewMapper(img)
	pointers, err := scanner.FindPointers(ctx, img.Bytes(), mapper.PointerWidth(), mapper.Base(), e.cfg.Scanner)
	if err != nil {
		return nil, err
	}
	cfg := e.cfg.Scanner.WithDefaults()
	groups := scanner.GroupClose(pointers, cfg.GroupMaxDistance, cfg.SuspectLowBytes)
	e.pointers.Add(key, groups)
	e.logger.Debug("Scanned pointers",
		log.Int("pointers", len(pointers)), log.Int("groups", len(groups)))
	return groups, nil
}

// decode decompresses, maps and splits one segment. A panic while decoding
// is turned into an error so one bad segment cannot abort the run.
func (e *Extractor) decode(img *rom.Image, key [sha256.Size]byte, seg scanner.Segment) (ds *decodedSegment, err error) {
	defer func() {
		if r := recover(); r != nil {
			ds, err = nil, fmt.Errorf("%w: %v", ErrDecode, r)
		}
	}()

	if err := seg.Check(img.Len()); err != nil {
		return nil, err
	}
	codec, err := e.codec(seg.Codec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	raw := img.Bytes()[seg.Start:seg.End]
	scheme := compression.Effective(codec, raw, 0)
	data, _ := codec.Decompress(raw, 0)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyOutput, scheme)
	}

	m := e.charmapFor(cacheKey{rom: key, start: seg.Start, end: seg.End, codec: string(scheme)}, seg, data)

	base := -1
	if scheme == compression.SchemeNone {
		base = seg.Start
	}
	messages, stats := splitMessages(data, m, e.decodeOptions(), base)

	return &decodedSegment{
		seg:      seg,
		scheme:   scheme,
		data:     data,
		charmap:  m,
		messages: messages,
		stats:    stats,
	}, nil
}

func (e *Extractor) report(ds *decodedSegment) SegmentReport {
	unmapped := ds.stats.UnmappedRatio()
	return SegmentReport{
		Name:            ds.seg.Name,
		Start:           ds.seg.Start,
		End:             ds.seg.End,
		Codec:           string(ds.scheme),
		Language:        ds.charmap.Language,
		PrintableRatio:  scanner.Readability(ds.data),
		UnmappedRatio:   unmapped,
		Terminators:     ds.charmap.Terminators(),
		PointerEvidence: ds.seg.PointerEvidence,
		Messages:        len(ds.messages),
		Degraded:        unmapped > e.cfg.DegradedRatio,
	}
}

// splitMessages cuts data at break bytes. Each maximal run of non-break
// bytes is one message; empty runs between consecutive breaks are skipped.
// base is the image offset of data, or -1 when data was decompressed.
func splitMessages(data []byte, m *charmap.Map, opts charmap.DecodeOptions, base int) ([]Message, charmap.DecodeStats) {
	var (
		messages []Message
		total    charmap.DecodeStats
	)
	for i := 0; i < len(data); {
		if m.IsBreak(data[i]) {
			i++
			continue
		}

		j := i
		for j < len(data) && !m.IsBreak(data[j]) {
			j++
		}

		text, stats := m.DecodeWith(data, i, j-i, opts)
		total.Total += stats.Total
		total.Mapped += stats.Mapped
		total.Control += stats.Control
		total.Substituted += stats.Substituted
		total.Unmapped += stats.Unmapped

		msg := Message{
			Index:      len(messages),
			Offset:     i,
			ROMOffset:  -1,
			ByteLength: j - i,
			Text:       text,
			Terminator: -1,
		}
		if base >= 0 {
			msg.ROMOffset = base + i
		}
		if j < len(data) {
			msg.Terminator = int(data[j])
		}
		messages = append(messages, msg)
		i = j
	}
	return messages, total
}

func problemKind(err error) ProblemKind {
	switch {
	case errors.Is(err, scanner.ErrSegmentBounds):
		return ProblemSegmentBounds
	case errors.Is(err, ErrEmptyOutput):
		return ProblemCompression
	default:
		return ProblemDecode
	}
}

// findSegment returns the segment named name.
func findSegment(segments []scanner.Segment, name string) (scanner.Segment, bool) {
	i := slices.IndexFunc(segments, func(s scanner.Segment) bool { return s.Name == name })
	if i < 0 {
		return scanner.Segment{}, false
	}
	return segments[i], true
}
