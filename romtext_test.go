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


package romtext_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	romtext "github.com/ZaparooProject/go-romtext"
	"github.com/ZaparooProject/go-romtext/internal/romtest"
	"github.com/ZaparooProject/go-romtext/pipeline"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
)

const descriptorJSON = `{
  "name": "testgame",
  "game_id_pattern": "TESTGAME",
  "platforms": ["GB"],
  "segments": [
    {"name": "main", "start": "0x1000", "end": "0x1120", "compression": "none",
     "language": "en", "terminators": ["0x00"]}
  ]
}`

func textROM() []byte {
	data := romtest.NewGB(romtest.GBOptions{Title: "TESTGAME", CartType: 0x01})
	return romtest.Put(data, 0x1000, bytes.Repeat([]byte("HELLO WORLD\x00"), 24))
}

func newTool(t *testing.T, fsys afero.Fs) *romtext.Tool {
	t.Helper()

	assert.NoError(t, afero.WriteFile(fsys, "/plugins/testgame.json", []byte(descriptorJSON), 0o644))
	tool, err := romtext.New(romtext.Options{
		Logger:    log.NewTestLogger(t),
		Fs:        fsys,
		PluginDir: "/plugins",
		LocaleDir: "/locales",
	})
	assert.NoError(t, err)
	return tool
}

func TestOpen_TooSmall(t *testing.T) {
	t.Parallel()

	_, err := romtext.Open(make([]byte, 16))
	assert.True(t, errors.Is(err, rom.ErrInvalidROM))
}

func TestTool_ExtractFromCompressedFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	tool := newTool(t, fsys)
	assert.NoError(t, tool.Save("/roms/test.gb.gz", textROM()))

	img, err := tool.OpenFile("/roms/test.gb.gz")
	assert.NoError(t, err)
	assert.Equal(t, "TESTGAME", img.GameID())

	res, err := tool.Extract(context.Background(), img)
	assert.NoError(t, err)
	assert.Equal(t, "testgame", res.Plugin)
	assert.Equal(t, []string{"main"}, res.Order)
	assert.Len(t, res.Segments["main"], 24)
	assert.Equal(t, "HELLO WORLD", res.Segments["main"][0].Text)

	report := romtext.Validate(res)
	assert.Equal(t, 24, report.Total)
	assert.Equal(t, 24, report.Valid)
}

func TestTool_InjectAndSave(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	tool := newTool(t, fsys)
	img, err := romtext.Open(textROM())
	assert.NoError(t, err)

	translations := make([]string, 24)
	for i := range translations {
		translations[i] = "HELLO WORLD"
	}
	translations[3] = "HOLA MUNDO"

	out, err := tool.Inject(context.Background(), img, "main", translations)
	assert.NoError(t, err)
	assert.Len(t, out.Changes, 1)
	assert.Equal(t, 0x1000+3*12, out.Changes[0].ROMOffset)

	assert.NoError(t, tool.Save("/out/test.gb", out.ROM))
	patched, err := tool.OpenFile("/out/test.gb")
	assert.NoError(t, err)

	res, err := tool.Extract(context.Background(), patched)
	assert.NoError(t, err)
	assert.Equal(t, "HOLA MUNDO ", res.Segments["main"][3].Text)
	assert.Equal(t, "HELLO WORLD", res.Segments["main"][4].Text)

	_, err = tool.Inject(context.Background(), img, "main", translations[:2])
	assert.True(t, errors.Is(err, pipeline.ErrCountMismatch))
}

func TestTool_Describe(t *testing.T) {
	t.Parallel()

	tool := newTool(t, afero.NewMemMapFs())

	img, err := romtext.Open(textROM())
	assert.NoError(t, err)
	info := tool.Describe(context.Background(), img)
	assert.Equal(t, rom.PlatformGB, info.Platform)
	assert.Equal(t, "TESTGAME", info.Title)
	assert.Equal(t, "testgame", info.Plugin)
	assert.Equal(t, "MBC1", info.Controller)
	assert.True(t, info.HeaderChecksumValid)
	assert.Equal(t, 0x8000, info.DeclaredROMSize)

	gba, err := romtext.Open(romtest.NewGBA("ADVENTURE", "AADE", 0))
	assert.NoError(t, err)
	info = tool.Describe(context.Background(), gba)
	assert.Equal(t, rom.PlatformGBA, info.Platform)
	assert.Equal(t, "AADE", info.GameCode)
	assert.True(t, info.LogoValid)
	assert.Equal(t, "generic_GBA", info.Plugin)
	assert.Equal(t, "", info.Controller)
}
