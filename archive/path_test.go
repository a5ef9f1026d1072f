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


package archive_test

import (
	"testing"

	"github.com/ZaparooProject/go-romtext/archive"
	"github.com/spf13/afero"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeZIP(t, fsys, "/roms/games.zip", map[string][]byte{"rpg/game.gba": []byte("rom")})

	tests := []struct {
		name string
		path string
		want *archive.Path
	}{
		{
			name: "archive with internal path",
			path: "/roms/games.zip/rpg/game.gba",
			want: &archive.Path{ArchivePath: "/roms/games.zip", InternalPath: "rpg/game.gba"},
		},
		{
			name: "archive only",
			path: "/roms/games.zip",
			want: &archive.Path{ArchivePath: "/roms/games.zip"},
		},
		{name: "plain ROM", path: "/roms/game.gba"},
		{name: "missing archive", path: "/roms/missing.zip/game.gba"},
		{name: "missing archive file", path: "/roms/missing.7z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := archive.ParsePath(fsys, tt.path)
			if err != nil {
				t.Fatalf("ParsePath() error = %v", err)
			}
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ParsePath() = %+v, want nil", got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("ParsePath() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsArchivePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"/roms/pack.zip", true},
		{"/roms/pack.ZIP/game.gb", true},
		{"/roms/pack.7z/game.gbc", true},
		{"/roms/pack.rar", true},
		{"/roms/game.gba", false},
		{"/roms/game.gba.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := archive.IsArchivePath(tt.path); got != tt.want {
				t.Errorf("IsArchivePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
