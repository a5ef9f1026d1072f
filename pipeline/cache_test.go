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
	"testing"

	"github.com/ZaparooProject/go-romtext/internal/romtest"
	"github.com/ZaparooProject/go-romtext/plugin"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestExtractor_PointerScanCached(t *testing.T) {
	t.Parallel()

	data := romtest.NewGB(romtest.GBOptions{Title: "TESTGAME"})
	romtest.Put(data, 0x1000, bytes.Repeat([]byte("HELLO WORLD\x00"), 24))
	romtest.Put(data, 0x2000, []byte{0x00, 0x10, 0x0C, 0x10})
	img, err := rom.New(data)
	assert.NoError(t, err)

	logger := log.NewTestLogger(t)
	e, err := NewExtractor(logger, plugin.NewResolver(logger, plugin.Compiled()), DefaultConfig())
	assert.NoError(t, err)
	ctx := context.Background()

	first, err := e.Extract(ctx, img)
	assert.NoError(t, err)
	assert.Equal(t, 1, e.pointers.Len())
	cached, ok := e.pointers.Peek(romKey(img))
	assert.True(t, ok)

	second, err := e.Extract(ctx, img)
	assert.NoError(t, err)
	assert.Equal(t, 1, e.pointers.Len())
	again, _ := e.pointers.Peek(romKey(img))
	assert.Equal(t, len(cached), len(again))
	assert.Equal(t, first.Order, second.Order)
}

func TestExtractor_InjectSkipsPointerScan(t *testing.T) {
	t.Parallel()

	data := romtest.NewGB(romtest.GBOptions{Title: "TESTGAME"})
	romtest.Put(data, 0x1000, []byte("HELLO WORLD\x00"))
	img, err := rom.New(data)
	assert.NoError(t, err)

	logger := log.NewTestLogger(t)
	resolver := plugin.NewResolver(logger, plugin.Compiled())
	assert.Len(t, resolver.Load(plugin.RawDescriptor{
		Name:          "testgame",
		GameIDPattern: "TESTGAME",
		Segments: []plugin.RawSegment{{
			Name:        "main",
			Start:       plugin.NewAddress(0x1000),
			End:         plugin.NewAddress(0x100C),
			Compression: "none",
			Language:    "en",
			Terminators: []plugin.Address{plugin.NewAddress(0)},
		}},
	}), 0)
	e, err := NewExtractor(logger, resolver, DefaultConfig())
	assert.NoError(t, err)

	out, err := e.Inject(context.Background(), img, "main", []string{"HELLO THERE"})
	assert.NoError(t, err)
	assert.Len(t, out.Changes, 1)
	assert.Equal(t, 0, e.pointers.Len())
}
