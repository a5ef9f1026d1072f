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


package export_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ZaparooProject/go-romtext/export"
	"github.com/ZaparooProject/go-romtext/pipeline"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/retroenv/retrogolib/assert"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		GameID:   "POKEMON_RED",
		Platform: rom.PlatformGB,
		Plugin:   "pokemon",
		Order:    []string{"dialogues", "names"},
		Segments: map[string][]pipeline.Message{
			"dialogues": {
				{Index: 0, Offset: 0x0000, ROMOffset: 0x4000, ByteLength: 6, Text: "HELLO"},
				{Index: 1, Offset: 0x0006, ROMOffset: 0x4006, ByteLength: 9, Text: `Say "hi"`},
			},
			"names": {
				{Index: 0, Offset: 0x0010, ROMOffset: 0xD010, ByteLength: 5, Text: "PIKA,CHU"},
			},
		},
		Reports: []pipeline.SegmentReport{
			{Name: "dialogues", Start: 0x4000, End: 0x8000, Codec: "none", Messages: 2},
			{Name: "names", Start: 0xD000, End: 0xD300, Codec: "none", Messages: 1},
		},
		Problems: []pipeline.Problem{
			{Segment: "credits", Kind: pipeline.ProblemSegmentBounds, Err: errors.New("out of range")},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want export.Format
	}{
		{"txt", export.FormatText},
		{"text", export.FormatText},
		{".CSV", export.FormatCSV},
		{"po", export.FormatPO},
		{"json", export.FormatJSON},
	}
	for _, tt := range tests {
		got, err := export.ParseFormat(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := export.ParseFormat("xlsx")
	assert.True(t, errors.Is(err, export.ErrUnknownFormat))
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.NoError(t, export.Write(&buf, export.FormatText, sampleResult()))

	want := "== DIALOGUES ==\nOffset: 0x0000\nHELLO\n\nOffset: 0x0006\nSay \"hi\"\n\n" +
		"== NAMES ==\nOffset: 0x0010\nPIKA,CHU\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.NoError(t, export.WriteCSV(&buf, sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"segment,offset,original,translation",
		"dialogues,0x0000,HELLO,",
		`dialogues,0x0006,"Say ""hi""",`,
		`names,0x0010,"PIKA,CHU",`,
	}, lines)
}

func TestReadTranslations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.NoError(t, export.WriteCSV(&buf, sampleResult()))

	edited := strings.Replace(buf.String(), "dialogues,0x0000,HELLO,", "dialogues,0x0000,HELLO,HOLA", 1)

	texts, err := export.ReadTranslations(strings.NewReader(edited), "dialogues")
	assert.NoError(t, err)
	assert.Equal(t, []string{"HOLA", `Say "hi"`}, texts)

	texts, err = export.ReadTranslations(strings.NewReader(edited), "names")
	assert.NoError(t, err)
	assert.Equal(t, []string{"PIKA,CHU"}, texts)

	texts, err = export.ReadTranslations(strings.NewReader(edited), "missing")
	assert.NoError(t, err)
	assert.Len(t, texts, 0)
}

func TestReadTranslations_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong header", "a,b,c,d\n"},
		{"short row", "segment,offset,original,translation\ndialogues,0x0000\n"},
		{"bad offset", "segment,offset,original,translation\ndialogues,zz,HELLO,\n"},
		{"out of order", "segment,offset,original,translation\ndialogues,0x0010,A,\ndialogues,0x0000,B,\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := export.ReadTranslations(strings.NewReader(tt.input), "dialogues")
			assert.True(t, errors.Is(err, export.ErrMalformedCSV))
		})
	}
}

func TestWritePO(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.NoError(t, export.WritePO(&buf, sampleResult()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# go-romtext PO file\n# game: POKEMON_RED\nmsgid \"\"\nmsgstr \"\"\n"))
	assert.Contains(t, out, "#: dialogues:0x0006\nmsgctxt \"dialogues\"\nmsgid \"0x0006: Say \\\"hi\\\"\"\nmsgstr \"\"\n")
	assert.Contains(t, out, "msgid \"0x0010: PIKA,CHU\"\n")
	assert.Equal(t, 4, strings.Count(out, "msgstr \"\""))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.NoError(t, export.WriteJSON(&buf, sampleResult()))

	var decoded struct {
		GameID   string `json:"game_id"`
		Platform string `json:"platform"`
		Segments []struct {
			Name     string `json:"name"`
			Start    int    `json:"start"`
			Messages []struct {
				ROMOffset int    `json:"rom_offset"`
				Text      string `json:"text"`
			} `json:"messages"`
		} `json:"segments"`
		Problems []struct {
			Kind  string `json:"kind"`
			Error string `json:"error"`
		} `json:"problems"`
	}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "POKEMON_RED", decoded.GameID)
	assert.Equal(t, "GB", decoded.Platform)
	assert.Len(t, decoded.Segments, 2)
	assert.Equal(t, "dialogues", decoded.Segments[0].Name)
	assert.Equal(t, 0x4000, decoded.Segments[0].Start)
	assert.Equal(t, 0x4006, decoded.Segments[0].Messages[1].ROMOffset)
	assert.Len(t, decoded.Problems, 1)
	assert.Equal(t, "segment_bounds", decoded.Problems[0].Kind)
	assert.Equal(t, "out of range", decoded.Problems[0].Error)
}
