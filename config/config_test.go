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

package config_test

import (
	"errors"
	"testing"

	"github.com/ZaparooProject/go-romtext/charmap"
	"github.com/ZaparooProject/go-romtext/config"
	"github.com/ZaparooProject/go-romtext/plugin"
	"github.com/retroenv/retrogolib/assert"
	"github.com/spf13/afero"
)

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	assert.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
}

func TestLoadDescriptors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "plugins/a.json", `{"game_id_pattern": "A_.*", "segments": []}`)
	writeFile(t, fs, "plugins/b.JSON", `[{"game_id_pattern": "B1"}, {"game_id_pattern": "B2"}]`)
	writeFile(t, fs, "plugins/broken.json", `{"game_id_pattern": `)
	writeFile(t, fs, "plugins/readme.txt", `not a descriptor`)

	raws, errs := config.LoadDescriptors(fs, "plugins")
	assert.Len(t, raws, 3)
	assert.Equal(t, "A_.*", raws[0].GameIDPattern)
	assert.Equal(t, "plugins/a.json", raws[0].Source)
	assert.Equal(t, "plugins/b.JSON[1]", raws[2].Source)

	assert.Len(t, errs, 1)
	var cfgErr *plugin.ConfigValidationError
	assert.True(t, errors.As(errs[0], &cfgErr))
	assert.Equal(t, "plugins/broken.json", cfgErr.Source)
}

func TestLoadDescriptors_MissingDir(t *testing.T) {
	t.Parallel()

	raws, errs := config.LoadDescriptors(afero.NewMemMapFs(), "nowhere")
	assert.Len(t, raws, 0)
	assert.Len(t, errs, 0)
}

func TestLoadCharset(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "locales/ru/charset.json", `{"C0": "А", "0xC1": "Б", "20": " "}`)

	m, err := config.LoadCharset(fs, "locales", charmap.LanguageCyrillic)
	assert.NoError(t, err)
	assert.Equal(t, charmap.LanguageCyrillic, m.Language)
	g, ok := m.Glyph(0xC1)
	assert.True(t, ok)
	assert.Equal(t, "Б", g)
	space, _ := m.SpaceByte()
	assert.Equal(t, byte(0x20), space)

	_, err = config.LoadCharset(fs, "locales", charmap.LanguageJapanese)
	assert.True(t, errors.Is(err, config.ErrCharsetNotFound))
}

func TestLoadCharset_BadKey(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "locales/en/charset.json", `{"XYZ": "A"}`)

	_, err := config.LoadCharset(fs, "locales", charmap.LanguageLatin)
	assert.Error(t, err)
}

func TestLoadCharsets(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "locales/en/charset.json", `{"41": "A"}`)
	writeFile(t, fs, "locales/ja/charset.json", `{"A1": "ア"}`)
	assert.NoError(t, fs.MkdirAll("locales/empty", 0o755))

	maps, errs := config.LoadCharsets(fs, "locales")
	assert.Len(t, errs, 0)
	assert.Len(t, maps, 2)
	g, _ := maps[charmap.LanguageJapanese].Glyph(0xA1)
	assert.Equal(t, "ア", g)
}

func TestCreateLogger(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, config.CreateLogger(true, false))
	assert.NotNil(t, config.CreateLogger(false, true))
}
