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

// Package config loads what the extraction core consumes from outside:
// plugin descriptor files, locale charset tables and the logger.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/ZaparooProject/go-romtext/charmap"
	"github.com/ZaparooProject/go-romtext/plugin"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
)

// File layout.
const (
	DescriptorExt = ".json"
	CharsetFile   = "charset.json"
)

// ErrCharsetNotFound is returned when a locale has no charset table.
var ErrCharsetNotFound = errors.New("charset not found")

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// LoadDescriptors reads every .json file in dir, in name order. A file holds
// one descriptor object or an array of them. Files that cannot be read or
// parsed are reported as errors and skipped. A missing dir yields nothing.
func LoadDescriptors(fs afero.Fs, dir string) ([]plugin.RawDescriptor, []error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("read descriptor dir: %w", err)}
	}

	var (
		raws []plugin.RawDescriptor
		errs []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(path.Ext(entry.Name()), DescriptorExt) {
			continue
		}
		name := path.Join(dir, entry.Name())
		parsed, err := readDescriptors(fs, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		raws = append(raws, parsed...)
	}
	return raws, errs
}

func readDescriptors(fs afero.Fs, name string) ([]plugin.RawDescriptor, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}

	var raws []plugin.RawDescriptor
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &raws)
	} else {
		var raw plugin.RawDescriptor
		err = json.Unmarshal(trimmed, &raw)
		raws = []plugin.RawDescriptor{raw}
	}
	if err != nil {
		return nil, &plugin.ConfigValidationError{Source: name, Field: "json", Reason: err.Error()}
	}

	for i := range raws {
		raws[i].Source = name
		if len(raws) > 1 {
			raws[i].Source = fmt.Sprintf("%s[%d]", name, i)
		}
	}
	return raws, nil
}

// LoadCharset reads dir/<lang>/charset.json. Keys are hex byte values,
// values are glyphs. The returned map is finalized.
func LoadCharset(fs afero.Fs, dir string, lang charmap.Language) (*charmap.Map, error) {
	name := path.Join(dir, string(lang), CharsetFile)
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCharsetNotFound, name)
		}
		return nil, fmt.Errorf("read charset: %w", err)
	}

	var table map[string]string
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse charset %s: %w", name, err)
	}
	entries, err := charmap.ParseTable(table)
	if err != nil {
		return nil, fmt.Errorf("parse charset %s: %w", name, err)
	}

	m := charmap.New(entries)
	m.Name = string(lang)
	m.Language = lang
	return m.Finalize(), nil
}

// LoadCharsets loads the charset of every locale directory under dir.
func LoadCharsets(fs afero.Fs, dir string) (map[charmap.Language]*charmap.Map, []error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("read locale dir: %w", err)}
	}

	out := make(map[charmap.Language]*charmap.Map)
	var errs []error
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		lang := charmap.Language(entry.Name())
		m, err := LoadCharset(fs, dir, lang)
		if err != nil {
			if !errors.Is(err, ErrCharsetNotFound) {
				errs = append(errs, err)
			}
			continue
		}
		out[lang] = m
	}
	return out, errs
}
