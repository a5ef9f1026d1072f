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

package rom_test

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/ZaparooProject/go-romtext/internal/romtest"
	"github.com/ZaparooProject/go-romtext/rom"
)

func TestNew_TooSmall(t *testing.T) {
	t.Parallel()

	_, err := rom.New(make([]byte, rom.HeaderSize-1))
	if !errors.Is(err, rom.ErrInvalidROM) {
		t.Fatalf("New() error = %v, want ErrInvalidROM", err)
	}
	var sizeErr rom.SizeError
	if !errors.As(err, &sizeErr) || sizeErr.Size != rom.HeaderSize-1 {
		t.Errorf("New() error = %#v, want SizeError with size", err)
	}
}

func TestNew_Platform(t *testing.T) {
	t.Parallel()

	aliased := romtest.NewGB(romtest.GBOptions{Title: "ALIAS"})
	aliased[0x144], aliased[0x145] = 0x00, 0x33

	marker := romtest.NewGB(romtest.GBOptions{Title: "MARKER"})
	copy(marker[0xA0:], "Nintendo Game Boy")

	tests := []struct {
		name string
		data []byte
		want rom.Platform
	}{
		{
			name: "plain GB",
			data: romtest.NewGB(romtest.GBOptions{Title: "TETRIS"}),
			want: rom.PlatformGB,
		},
		{
			name: "CGB compatible",
			data: romtest.NewGB(romtest.GBOptions{Title: "ZELDA", CGBFlag: 0x80}),
			want: rom.PlatformGBC,
		},
		{
			name: "CGB only",
			data: romtest.NewGB(romtest.GBOptions{Title: "ZELDA", CGBFlag: 0xC0}),
			want: rom.PlatformGBC,
		},
		{
			name: "licensee alias",
			data: aliased,
			want: rom.PlatformGBC,
		},
		{
			name: "GBA logo",
			data: romtest.NewGBA("POKEMON RUBY", "AXVE", 0),
			want: rom.PlatformGBA,
		},
		{
			name: "GBA marker string",
			data: marker,
			want: rom.PlatformGBA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			img, err := rom.New(tt.data)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := img.Platform(); got != tt.want {
				t.Errorf("Platform() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	t.Parallel()

	data := romtest.NewGB(romtest.GBOptions{Title: "POKEMON RED", CartType: 0x13, Size: 0x100000})
	data[0x149] = 0x03
	data[0x14D] = rom.ComputeHeaderChecksum(data)
	data[0x14E], data[0x14F] = 0x91, 0xE6

	img, err := rom.New(data)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h := img.Header()

	if h.Title != "POKEMON RED" {
		t.Errorf("Title = %q", h.Title)
	}
	if h.CartridgeTypeName() != "MBC3 + RAM + Battery" {
		t.Errorf("CartridgeTypeName() = %q", h.CartridgeTypeName())
	}
	if size, banks := h.ROMSize(); size != 0x100000 || banks != 64 {
		t.Errorf("ROMSize() = %d, %d", size, banks)
	}
	if h.RAMSize() != 32768 {
		t.Errorf("RAMSize() = %d", h.RAMSize())
	}
	if h.GlobalChecksum != 0x91E6 {
		t.Errorf("GlobalChecksum = 0x%04X", h.GlobalChecksum)
	}
	if !h.HeaderChecksumValid() {
		t.Error("HeaderChecksumValid() = false")
	}
	if h.Publisher() != "Nintendo R&D1" {
		t.Errorf("Publisher() = %q", h.Publisher())
	}

	data[0x14D]++
	img, _ = rom.New(data)
	if img.Header().HeaderChecksumValid() {
		t.Error("HeaderChecksumValid() = true after corrupting checksum")
	}
}

func TestHeader_TitleReplacement(t *testing.T) {
	t.Parallel()

	data := romtest.NewGB(romtest.GBOptions{Title: "AB"})
	data[0x136] = 0xE9
	data[0x137] = 'C'

	img, err := rom.New(data)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := "AB" + string(utf8.RuneError) + "C"
	if got := img.Title(); got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestGameID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{
			name: "spaces become underscores",
			data: romtest.NewGB(romtest.GBOptions{Title: "POKEMON RED"}),
			want: "POKEMON_RED",
		},
		{
			name: "punctuation collapses",
			data: romtest.NewGB(romtest.GBOptions{Title: "zelda - dx"}),
			want: "ZELDA_DX",
		},
		{
			name: "empty title falls back to cart type",
			data: romtest.NewGB(romtest.GBOptions{CartType: 0x1B}),
			want: "GAME_1B",
		},
		{
			name: "GBA title",
			data: romtest.NewGBA("POKEMON RUBY", "AXVE", 0),
			want: "POKEMON_RUBY",
		},
		{
			name: "GBA game code fallback",
			data: romtest.NewGBA("", "AXVE", 0),
			want: "AXVE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			img, err := rom.New(tt.data)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := img.GameID(); got != tt.want {
				t.Errorf("GameID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGBAHeader(t *testing.T) {
	t.Parallel()

	img, err := rom.New(romtest.NewGBA("MARIO", "AMKE", 0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h, ok := img.GBAHeader()
	if !ok {
		t.Fatal("GBAHeader() ok = false")
	}
	if h.Title != "MARIO" || h.GameCode != "AMKE" || h.MakerCode != "01" {
		t.Errorf("GBAHeader() = %+v", h)
	}
	if !h.LogoValid || !h.FixedValid {
		t.Errorf("GBAHeader() validity = %v, %v", h.LogoValid, h.FixedValid)
	}

	gb, _ := rom.New(romtest.NewGB(romtest.GBOptions{Title: "X"}))
	if _, ok := gb.GBAHeader(); ok {
		t.Error("GBAHeader() ok = true for GB image")
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	data := romtest.NewGB(romtest.GBOptions{Title: "CLONE"})
	img, _ := rom.New(data)
	c := img.Clone()
	c[0x200] = 0xAA
	if img.Bytes()[0x200] == 0xAA {
		t.Error("Clone() shares memory with the image")
	}
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]rom.Platform{
		"gb":             rom.PlatformGB,
		" GBC ":          rom.PlatformGBC,
		"GameBoyAdvance": rom.PlatformGBA,
	} {
		got, err := rom.ParsePlatform(input)
		if err != nil || got != want {
			t.Errorf("ParsePlatform(%q) = %s, %v", input, got, err)
		}
	}
	if _, err := rom.ParsePlatform("NES"); !errors.Is(err, rom.ErrUnknownPlatform) {
		t.Errorf("ParsePlatform(NES) error = %v", err)
	}
}
