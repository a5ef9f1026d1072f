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

// Package compression implements the decompressors used by cartridge text
// banks: GBA BIOS LZ77 (LZ10), an unframed LZSS variant, a simple RLE and a
// signature-sniffing dispatcher.
//
// Decompressors never fail. Malformed input yields best-effort output with
// zero bytes substituted for impossible back-references.
package compression

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MaxOutput caps the output of codecs without a declared length.
const MaxOutput = 64 * 1024

// Codec names.
const (
	NameNone = "none"
	NameLZ10 = "lz10"
	NameLZSS = "lzss"
	NameRLE  = "rle"
	NameAuto = "auto"
)

// ErrUnknownCodec is returned by Get for unregistered codec names.
var ErrUnknownCodec = errors.New("unknown compression codec")

// Codec decompresses a block starting at an offset within data.
type Codec interface {
	// Name returns the registry name of the codec.
	Name() string

	// Decompress decodes the block at data[start:]. It returns the output and
	// the number of input bytes consumed.
	Decompress(data []byte, start int) ([]byte, int)
}

// codecRegistry holds registered codecs.
var (
	codecRegistry   = make(map[string]func() Codec)
	codecAliases    = map[string]string{"": NameAuto, "gba_lz77": NameLZ10, "lz77": NameLZ10}
	codecRegistryMu sync.RWMutex
)

func init() {
	Register(NameNone, func() Codec { return None{} })
	Register(NameLZ10, func() Codec { return LZ10{} })
	Register(NameLZSS, func() Codec { return LZSS{} })
	Register(NameRLE, func() Codec { return RLE{} })
	Register(NameAuto, func() Codec { return NewAuto(DefaultDetectConfig()) })
}

// Register registers a codec factory under name.
func Register(name string, factory func() Codec) {
	codecRegistryMu.Lock()
	defer codecRegistryMu.Unlock()
	codecRegistry[strings.ToLower(name)] = factory
}

// Canonical resolves aliases ("gba_lz77", the empty name) to registry names.
func Canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := codecAliases[name]; ok {
		return alias
	}
	return name
}

// Get returns a codec instance for name. The empty name selects the
// dispatcher.
func Get(name string) (Codec, error) {
	canonical := Canonical(name)

	codecRegistryMu.RLock()
	factory, ok := codecRegistry[canonical]
	codecRegistryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return factory(), nil
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	codecRegistryMu.RLock()
	defer codecRegistryMu.RUnlock()

	names := make([]string, 0, len(codecRegistry))
	for name := range codecRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// None passes data through unchanged.
type None struct{}

// Name implements Codec.
func (None) Name() string { return NameNone }

// Decompress implements Codec.
func (None) Decompress(data []byte, start int) ([]byte, int) {
	return passThrough(data, start)
}

func passThrough(data []byte, start int) ([]byte, int) {
	if start < 0 || start >= len(data) {
		return []byte{}, 0
	}
	out := make([]byte, len(data)-start)
	copy(out, data[start:])
	return out, len(out)
}

// backRef appends length bytes copied from distance bytes back in out, one
// byte at a time so overlapping runs repeat. Copies reaching before the
// start of the output emit zero bytes.
func backRef(out []byte, distance, length, limit int) []byte {
	for i := 0; i < length && len(out) < limit; i++ {
		src := len(out) - distance
		if distance <= 0 || src < 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, out[src])
	}
	return out
}
