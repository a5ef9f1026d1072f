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


package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ZaparooProject/go-romtext/pipeline"
)

type jsonMessage struct {
	Index      int    `json:"index"`
	Offset     int    `json:"offset"`
	ROMOffset  int    `json:"rom_offset"`
	ByteLength int    `json:"byte_length"`
	Text       string `json:"text"`
}

type jsonSegment struct {
	Name            string        `json:"name"`
	Start           int           `json:"start"`
	End             int           `json:"end"`
	Codec           string        `json:"codec"`
	Language        string        `json:"language,omitempty"`
	PrintableRatio  float64       `json:"printable_ratio"`
	UnmappedRatio   float64       `json:"unmapped_ratio"`
	PointerEvidence bool          `json:"pointer_evidence"`
	Degraded        bool          `json:"degraded,omitempty"`
	Messages        []jsonMessage `json:"messages"`
}

type jsonProblem struct {
	Segment string `json:"segment"`
	Kind    string `json:"kind"`
	Error   string `json:"error"`
}

type jsonResult struct {
	GameID   string        `json:"game_id"`
	Platform string        `json:"platform"`
	Plugin   string        `json:"plugin"`
	Segments []jsonSegment `json:"segments"`
	Problems []jsonProblem `json:"problems,omitempty"`
}

// WriteJSON writes res as indented JSON with segments in extraction order.
func WriteJSON(w io.Writer, res *pipeline.Result) error {
	out := jsonResult{
		GameID:   res.GameID,
		Platform: string(res.Platform),
		Plugin:   res.Plugin,
		Segments: make([]jsonSegment, 0, len(res.Order)),
	}

	reports := make(map[string]pipeline.SegmentReport, len(res.Reports))
	for _, rep := range res.Reports {
		reports[rep.Name] = rep
	}

	for _, name := range res.Order {
		rep := reports[name]
		seg := jsonSegment{
			Name:            name,
			Start:           rep.Start,
			End:             rep.End,
			Codec:           rep.Codec,
			Language:        string(rep.Language),
			PrintableRatio:  rep.PrintableRatio,
			UnmappedRatio:   rep.UnmappedRatio,
			PointerEvidence: rep.PointerEvidence,
			Degraded:        rep.Degraded,
			Messages:        make([]jsonMessage, 0, len(res.Segments[name])),
		}
		for _, msg := range res.Segments[name] {
			seg.Messages = append(seg.Messages, jsonMessage{
				Index:      msg.Index,
				Offset:     msg.Offset,
				ROMOffset:  msg.ROMOffset,
				ByteLength: msg.ByteLength,
				Text:       msg.Text,
			})
		}
		out.Segments = append(out.Segments, seg)
	}

	for _, p := range res.Problems {
		problem := jsonProblem{Segment: p.Segment, Kind: string(p.Kind)}
		if p.Err != nil {
			problem.Error = p.Err.Error()
		}
		out.Problems = append(out.Problems, problem)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
