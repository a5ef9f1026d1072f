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

package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ZaparooProject/go-romtext/internal/romtest"
	"github.com/ZaparooProject/go-romtext/pipeline"
	"github.com/ZaparooProject/go-romtext/plugin"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

const textBase = 0x1000

// newTextROM returns a GB image titled TESTGAME with 24 copies of
// "HELLO WORLD\x00" at textBase and two pointers to them at 0x2000.
func newTextROM(t *testing.T) *rom.Image {
	t.Helper()
	data := romtest.NewGB(romtest.GBOptions{Title: "TESTGAME"})
	romtest.Put(data, textBase, bytes.Repeat([]byte("HELLO WORLD\x00"), 24))
	romtest.Put(data, 0x2000, []byte{0x00, 0x10, 0x0C, 0x10})
	img, err := rom.New(data)
	assert.NoError(t, err)
	return img
}

func newExtractor(t *testing.T, raws ...plugin.RawDescriptor) *pipeline.Extractor {
	t.Helper()
	logger := log.NewTestLogger(t)
	resolver := plugin.NewResolver(logger, plugin.Compiled())
	assert.Len(t, resolver.Load(raws...), 0)
	e, err := pipeline.NewExtractor(logger, resolver, pipeline.DefaultConfig())
	assert.NoError(t, err)
	return e
}

func mainDescriptor(segments ...plugin.RawSegment) plugin.RawDescriptor {
	if len(segments) == 0 {
		segments = []plugin.RawSegment{{
			Name:        "main",
			Start:       plugin.NewAddress(textBase),
			End:         plugin.NewAddress(textBase + 24*12),
			Compression: "none",
			Language:    "en",
			Terminators: []plugin.Address{plugin.NewAddress(0)},
		}}
	}
	return plugin.RawDescriptor{Name: "testgame", GameIDPattern: "TESTGAME", Segments: segments}
}

func TestExtract_Fallback(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	res, err := newExtractor(t).Extract(context.Background(), img)
	assert.NoError(t, err)
	assert.Equal(t, "TESTGAME", res.GameID)
	assert.Equal(t, "generic_GB", res.Plugin)
	assert.Len(t, res.Order, 1)

	name := res.Order[0]
	msgs := res.Segments[name]
	assert.Len(t, msgs, 24)
	for i, msg := range msgs {
		assert.Equal(t, i, msg.Index)
		assert.Equal(t, "HELLO WORLD", msg.Text)
		assert.Equal(t, textBase+12*i, msg.ROMOffset)
		assert.Equal(t, 11, msg.ByteLength)
		assert.Equal(t, 0x00, msg.Terminator)
	}

	report := res.Reports[0]
	assert.Equal(t, textBase, report.Start)
	assert.Equal(t, "none", report.Codec)
	assert.True(t, report.PointerEvidence)
	assert.False(t, report.Degraded)
	assert.Equal(t, 24, report.Messages)
}

func TestExtract_Descriptor(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	e := newExtractor(t, mainDescriptor())
	res, err := e.Extract(context.Background(), img)
	assert.NoError(t, err)
	assert.Equal(t, "testgame", res.Plugin)
	assert.Equal(t, []string{"main"}, res.Order)
	assert.Len(t, res.Segments["main"], 24)
	assert.Len(t, res.Problems, 0)
}

func TestExtract_BoundsProblem(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	e := newExtractor(t, mainDescriptor(
		plugin.RawSegment{Name: "outside", Start: plugin.NewAddress(0x9000), End: plugin.NewAddress(0xA000)},
		plugin.RawSegment{
			Name:  "main",
			Start: plugin.NewAddress(textBase), End: plugin.NewAddress(textBase + 24),
			Compression: "none",
		},
	))

	res, err := e.Extract(context.Background(), img)
	assert.NoError(t, err)
	assert.Equal(t, []string{"main"}, res.Order)
	assert.Len(t, res.Problems, 1)
	assert.Equal(t, pipeline.ProblemSegmentBounds, res.Problems[0].Kind)
	assert.Equal(t, "outside", res.Problems[0].Segment)
}

func TestExtract_Degraded(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	e := newExtractor(t, mainDescriptor(plugin.RawSegment{
		Name:        "main",
		Start:       plugin.NewAddress(textBase),
		End:         plugin.NewAddress(textBase + 24),
		Compression: "none",
		Charmap:     map[string]string{"0x48": "H"},
	}))

	res, err := e.Extract(context.Background(), img)
	assert.NoError(t, err)
	assert.Len(t, res.Segments["main"], 2)
	assert.True(t, res.Reports[0].Degraded)
	assert.Len(t, res.Problems, 1)
	assert.Equal(t, pipeline.ProblemDecodeDegraded, res.Problems[0].Kind)
}

func TestExtract_Unsupported(t *testing.T) {
	t.Parallel()

	img, err := rom.New(romtest.NewGBA("NOTEXT", "ABCD", 0))
	assert.NoError(t, err)

	_, err = newExtractor(t).Extract(context.Background(), img)
	assert.True(t, errors.Is(err, pipeline.ErrUnsupportedGame))
}

func TestExtract_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newExtractor(t).Extract(ctx, newTextROM(t))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, res.Order, 0)
}

func TestInject_Idempotent(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	e := newExtractor(t, mainDescriptor())
	res, err := e.Extract(context.Background(), img)
	assert.NoError(t, err)

	var originals []string
	for _, msg := range res.Segments["main"] {
		originals = append(originals, msg.Text)
	}

	out, err := e.Inject(context.Background(), img, "main", originals)
	assert.NoError(t, err)
	assert.Len(t, out.Changes, 0)
	assert.True(t, bytes.Equal(img.Bytes(), out.ROM))
}

func TestInject_PadsShortTranslation(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	before := img.Clone()
	e := newExtractor(t, mainDescriptor())

	translations := make([]string, 24)
	for i := range translations {
		translations[i] = "HELLO WORLD"
	}
	translations[0] = "hi"

	out, err := e.Inject(context.Background(), img, "main", translations)
	assert.NoError(t, err)
	assert.Len(t, out.Changes, 1)

	change := out.Changes[0]
	assert.Equal(t, 0, change.Index)
	assert.Equal(t, textBase, change.ROMOffset)
	assert.Equal(t, []byte("HELLO WORLD"), change.Before)
	assert.Equal(t, []byte("hi         "), change.After)
	assert.Equal(t, []byte("hi         \x00HELLO"), out.ROM[textBase:textBase+17])
	assert.True(t, bytes.Equal(before, img.Bytes()))
}

func TestInject_LengthOverflow(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	before := img.Clone()
	e := newExtractor(t, mainDescriptor())

	translations := make([]string, 24)
	for i := range translations {
		translations[i] = "HELLO WORLD"
	}
	translations[0] = "BYE"
	translations[1] = "HELLO WORLD!"

	out, err := e.Inject(context.Background(), img, "main", translations)
	assert.True(t, out == nil)
	assert.True(t, errors.Is(err, pipeline.ErrLengthOverflow))

	var overflow *pipeline.LengthOverflowError
	assert.True(t, errors.As(err, &overflow))
	assert.Equal(t, 1, overflow.Index)
	assert.Equal(t, 11, overflow.Window)
	assert.Equal(t, 12, overflow.Encoded)
	assert.True(t, bytes.Equal(before, img.Bytes()))
}

func TestInject_BracketedHex(t *testing.T) {
	t.Parallel()

	data := romtest.NewGB(romtest.GBOptions{Title: "TESTGAME"})
	romtest.Put(data, 0x3000, []byte("HP [41] LEF\x00"))
	img, err := rom.New(data)
	assert.NoError(t, err)

	e := newExtractor(t, mainDescriptor(plugin.RawSegment{
		Name:        "status",
		Start:       plugin.NewAddress(0x3000),
		End:         plugin.NewAddress(0x300C),
		Compression: "none",
		Language:    "en",
		Terminators: []plugin.Address{plugin.NewAddress(0)},
	}))
	ctx := context.Background()

	_, err = e.Inject(ctx, img, "status", []string{"HQ [41] LEFT"})
	var overflow *pipeline.LengthOverflowError
	assert.True(t, errors.As(err, &overflow))
	assert.Equal(t, 11, overflow.Window)
	assert.Equal(t, 12, overflow.Encoded)

	out, err := e.Inject(ctx, img, "status", []string{"HQ [41] LEF"})
	assert.NoError(t, err)
	assert.Len(t, out.Changes, 1)
	assert.Equal(t, []byte("HQ [41] LEF"), out.Changes[0].After)

	injected, err := rom.New(out.ROM)
	assert.NoError(t, err)
	res, err := e.Extract(ctx, injected)
	assert.NoError(t, err)
	assert.Equal(t, "HQ [41] LEF", res.Segments["status"][0].Text)
}

func TestInject_EmbeddedBreak(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	before := img.Clone()
	e := newExtractor(t, mainDescriptor())

	translations := make([]string, 24)
	for i := range translations {
		translations[i] = "HELLO WORLD"
	}
	translations[3] = "HI\nYO"

	out, err := e.Inject(context.Background(), img, "main", translations)
	assert.True(t, out == nil)
	assert.True(t, errors.Is(err, pipeline.ErrEmbeddedBreak))

	var embedded *pipeline.EmbeddedBreakError
	assert.True(t, errors.As(err, &embedded))
	assert.Equal(t, 3, embedded.Index)
	assert.Equal(t, 2, embedded.Offset)
	assert.Equal(t, byte(0x00), embedded.Byte)
	assert.True(t, bytes.Equal(before, img.Bytes()))
}

func TestInject_Errors(t *testing.T) {
	t.Parallel()

	img := newTextROM(t)
	ctx := context.Background()

	e := newExtractor(t, mainDescriptor())
	_, err := e.Inject(ctx, img, "missing", nil)
	assert.True(t, errors.Is(err, pipeline.ErrSegmentNotFound))

	_, err = e.Inject(ctx, img, "main", []string{"ONE"})
	assert.True(t, errors.Is(err, pipeline.ErrCountMismatch))

	compressed := newExtractor(t, mainDescriptor(plugin.RawSegment{
		Name:        "packed",
		Start:       plugin.NewAddress(textBase),
		End:         plugin.NewAddress(textBase + 24),
		Compression: "rle",
	}))
	_, err = compressed.Inject(ctx, img, "packed", []string{"A", "B"})
	assert.True(t, errors.Is(err, pipeline.ErrCompressedSegment))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	res := &pipeline.Result{
		Order: []string{"a"},
		Segments: map[string][]pipeline.Message{
			"a": {
				{Index: 0, Text: "HELLO WORLD"},
				{Index: 1, Text: "H[80][81][82]"},
				{Index: 2, Text: "AB[80][81]"},
				{Index: 3, Text: "A fine line"},
			},
		},
	}

	report := pipeline.Validate(res)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Valid)
	assert.Equal(t, 0.5, report.SuccessRate)
	assert.Len(t, report.Issues, 2)
	assert.Equal(t, pipeline.IssueInvalidSequence, report.Issues[0].Kind)
	assert.Equal(t, pipeline.IssueLowReadability, report.Issues[1].Kind)
	assert.Equal(t, 2, report.Issues[1].Index)
}
