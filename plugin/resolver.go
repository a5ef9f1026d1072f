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

package plugin

import (
	"context"

	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/retroenv/retrogolib/log"
)

// Resolver picks the descriptor for a game. Its descriptor set is fixed
// once loading is done; resolution depends only on the game ID and platform.
type Resolver struct {
	logger   *log.Logger
	compiled []*Descriptor
	user     []*Descriptor
	patterns map[string]struct{}
}

// NewResolver returns a resolver over the given compiled plugins. Pass
// Compiled() for the built-in set.
func NewResolver(logger *log.Logger, compiled []*Descriptor) *Resolver {
	r := &Resolver{
		logger:   logger,
		patterns: make(map[string]struct{}),
	}
	for _, d := range compiled {
		r.patterns[d.Pattern.String()] = struct{}{}
		r.compiled = append(r.compiled, d)
	}
	return r
}

// Load validates raw descriptors and appends the valid ones after any
// previously loaded. Invalid descriptors and descriptors repeating a known
// pattern are skipped; the returned errors describe the invalid ones.
func (r *Resolver) Load(raws ...RawDescriptor) []error {
	var errs []error
	for _, raw := range raws {
		d, err := Validate(raw)
		if err != nil {
			r.logger.Warn("Skipping invalid descriptor", log.String("source", raw.Source), log.Err(err))
			errs = append(errs, err)
			continue
		}

		key := d.Pattern.String()
		if _, dup := r.patterns[key]; dup {
			r.logger.Debug("Skipping duplicate descriptor",
				log.String("source", raw.Source), log.String("pattern", raw.GameIDPattern))
			continue
		}
		r.patterns[key] = struct{}{}
		r.user = append(r.user, d)
		r.logger.Debug("Loaded descriptor",
			log.String("name", d.Name), log.Int("segments", len(d.Segments)))
	}
	return errs
}

// Descriptors returns the compiled and user descriptors in priority order,
// without the fallbacks.
func (r *Resolver) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.compiled)+len(r.user))
	out = append(out, r.compiled...)
	return append(out, r.user...)
}

// Resolve returns the first compiled plugin, then user descriptor, whose
// pattern matches gameID on platform p, or the platform fallback. It
// returns nil only when ctx is done.
func (r *Resolver) Resolve(ctx context.Context, gameID string, p rom.Platform) *Descriptor {
	for _, d := range r.Descriptors() {
		if ctx.Err() != nil {
			return nil
		}
		if d.Matches(gameID, p) {
			r.logger.Debug("Resolved plugin",
				log.String("game_id", gameID), log.String("plugin", d.Name))
			return d
		}
	}
	if ctx.Err() != nil {
		return nil
	}

	d := Fallback(p)
	r.logger.Debug("Using generic plugin",
		log.String("game_id", gameID), log.String("plugin", d.Name))
	return d
}
