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


// Package romtext extracts and injects text in Game Boy, Game Boy Color and
// Game Boy Advance ROM images. It ties the rom, plugin, pipeline, config and
// archive packages together behind a small API.
package romtext

import (
	"context"
	"fmt"

	"github.com/ZaparooProject/go-romtext/archive"
	"github.com/ZaparooProject/go-romtext/config"
	"github.com/ZaparooProject/go-romtext/pipeline"
	"github.com/ZaparooProject/go-romtext/plugin"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
)

// Image is an alias for rom.Image for convenience.
type Image = rom.Image

// Result is an alias for pipeline.Result for convenience.
type Result = pipeline.Result

// Options configures a Tool. The zero value logs errors only, reads the host
// file system and uses the compiled plugins.
type Options struct {
	Logger *log.Logger
	Fs     afero.Fs
	// PluginDir holds user descriptor files. Empty skips loading.
	PluginDir string
	// LocaleDir holds <lang>/charset.json tables. Empty skips loading.
	LocaleDir string
	// Pipeline overrides pipeline.DefaultConfig when set.
	Pipeline *pipeline.Config
}

// Tool extracts and injects text. It is safe for concurrent use as long as
// the images passed to it are not modified.
type Tool struct {
	logger    *log.Logger
	fs        afero.Fs
	resolver  *plugin.Resolver
	extractor *pipeline.Extractor
}

// New builds a Tool. Unreadable descriptor or charset files are logged and
// skipped.
func New(opts Options) (*Tool, error) {
	logger := opts.Logger
	if logger == nil {
		logger = config.CreateLogger(false, true)
	}
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	cfg := pipeline.DefaultConfig()
	if opts.Pipeline != nil {
		cfg = *opts.Pipeline
	}

	resolver := plugin.NewResolver(logger, plugin.Compiled())
	if opts.PluginDir != "" {
		raws, errs := config.LoadDescriptors(fsys, opts.PluginDir)
		for _, err := range errs {
			logger.Warn("Skipping descriptor file", log.Err(err))
		}
		resolver.Load(raws...)
	}

	if opts.LocaleDir != "" {
		charsets, errs := config.LoadCharsets(fsys, opts.LocaleDir)
		for _, err := range errs {
			logger.Warn("Skipping charset table", log.Err(err))
		}
		if cfg.Charsets == nil {
			cfg.Charsets = charsets
		} else {
			for lang, m := range charsets {
				if _, ok := cfg.Charsets[lang]; !ok {
					cfg.Charsets[lang] = m
				}
			}
		}
	}

	extractor, err := pipeline.NewExtractor(logger, resolver, cfg)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	return &Tool{
		logger:    logger,
		fs:        fsys,
		resolver:  resolver,
		extractor: extractor,
	}, nil
}

// Open parses data as a cartridge image.
func Open(data []byte) (*Image, error) {
	img, err := rom.New(data)
	if err != nil {
		return nil, fmt.Errorf("open ROM: %w", err)
	}
	return img, nil
}

// OpenFile loads and parses the image at path. Archives, archive paths and
// stream-compressed dumps are accepted, see archive.Load.
func (t *Tool) OpenFile(path string) (*Image, error) {
	data, name, err := archive.Load(t.fs, path)
	if err != nil {
		return nil, fmt.Errorf("load ROM: %w", err)
	}
	t.logger.Debug("Loaded ROM", log.String("path", path), log.String("name", name), log.Int("size", len(data)))
	return Open(data)
}

// Save writes data to path, compressing it when path has a stream extension.
func (t *Tool) Save(path string, data []byte) error {
	if err := archive.Save(t.fs, path, data); err != nil {
		return fmt.Errorf("save ROM: %w", err)
	}
	return nil
}

// Plugins returns the compiled descriptors followed by the loaded user ones.
func (t *Tool) Plugins() []*plugin.Descriptor {
	return t.resolver.Descriptors()
}

// Plugin returns the descriptor that would process img.
func (t *Tool) Plugin(ctx context.Context, img *Image) *plugin.Descriptor {
	return t.resolver.Resolve(ctx, img.GameID(), img.Platform())
}

// Extract decodes every text segment of img. See pipeline.Extractor.Extract.
func (t *Tool) Extract(ctx context.Context, img *Image) (*Result, error) {
	return t.extractor.Extract(ctx, img) //nolint:wrapcheck // pipeline errors are already descriptive
}

// Inject re-encodes translations into segment and returns the patched
// image. See pipeline.Extractor.Inject.
func (t *Tool) Inject(ctx context.Context, img *Image, segment string, translations []string) (*pipeline.InjectResult, error) {
	return t.extractor.Inject(ctx, img, segment, translations) //nolint:wrapcheck // pipeline errors are already descriptive
}

// Validate checks every extracted message for readability.
func Validate(res *Result) pipeline.ValidationReport {
	return pipeline.Validate(res)
}
