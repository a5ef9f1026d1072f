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

// Package pipeline ties the scanner, plugins, codecs and charmaps together
// into text extraction and injection for a cartridge image.
//
// Extraction never modifies the image. Injection works on a copy and only
// hands the copy back when every message of the segment fits.
package pipeline

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/ZaparooProject/go-romtext/charmap"
	"github.com/ZaparooProject/go-romtext/compression"
	"github.com/ZaparooProject/go-romtext/plugin"
	"github.com/ZaparooProject/go-romtext/rom"
	"github.com/ZaparooProject/go-romtext/scanner"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/retroenv/retrogolib/log"
)

// Errors returned by Extract and Inject.
var (
	ErrUnsupportedGame   = errors.New("unsupported game")
	ErrSegmentNotFound   = errors.New("segment not found")
	ErrCountMismatch     = errors.New("translation count does not match message count")
	ErrCompressedSegment = errors.New("cannot inject into a compressed segment")
	ErrLengthOverflow    = errors.New("translation exceeds its message window")
	ErrEmbeddedBreak     = errors.New("translation encodes a message break")
	ErrEmptyOutput       = errors.New("codec produced no output")
	ErrDecode            = errors.New("segment decode failed")
)

// LengthOverflowError reports the first message whose encoded translation
// does not fit its window.
type LengthOverflowError struct {
	Segment string
	Index   int
	Window  int
	Encoded int
}

func (e *LengthOverflowError) Error() string {
	return fmt.Sprintf("segment %q message %d: encoded %d bytes, window is %d bytes",
		e.Segment, e.Index, e.Encoded, e.Window)
}

// Unwrap lets errors.Is match ErrLengthOverflow.
func (*LengthOverflowError) Unwrap() error {
	return ErrLengthOverflow
}

// EmbeddedBreakError reports a translation whose encoding contains a
// terminator or line break byte, which would split its message on the next
// extraction.
type EmbeddedBreakError struct {
	Segment string
	Index   int
	Offset  int // position within the encoded message
	Byte    byte
}

func (e *EmbeddedBreakError) Error() string {
	return fmt.Sprintf("segment %q message %d: break byte 0x%02X at offset %d",
		e.Segment, e.Index, e.Byte, e.Offset)
}

// Unwrap lets errors.Is match ErrEmbeddedBreak.
func (*EmbeddedBreakError) Unwrap() error {
	return ErrEmbeddedBreak
}

// Config holds the pipeline settings.
type Config struct {
	// MaxSegments caps the segments processed per image; zero means no cap.
	MaxSegments int
	// DegradedRatio is the unmapped byte share above which a segment is
	// reported as degraded.
	DegradedRatio float64
	// SimilarFallback enables the similar-byte decode heuristic.
	SimilarFallback bool
	SimilarRadius   int
	// SampleLength is the window used to auto-detect a charmap.
	SampleLength int
	// CacheSize bounds the auto-detected charmap cache.
	CacheSize int

	Scanner     scanner.Config
	Detect      charmap.DetectConfig
	CodecDetect compression.DetectConfig

	// Charsets override the seed tables of segments that declare a
	// language.
	Charsets map[charmap.Language]*charmap.Map
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
		DegradedRatio: 0.25,
		SimilarRadius: charmap.DefaultSimilarRadius,
		SampleLength:  4096,
		CacheSize:     128,
		Scanner:       scanner.DefaultConfig(),
		Detect:        charmap.DefaultDetectConfig(),
		CodecDetect:   compression.DefaultDetectConfig(),
	}
}

// cacheKey identifies an auto-detected charmap: the same image bytes and
// segment always detect the same map.
type cacheKey struct {
	rom        [sha256.Size]byte
	start, end int
	codec      string
}

// Extractor runs extraction and injection for images. It is safe for
// concurrent use once constructed.
type Extractor struct {
	logger   *log.Logger
	resolver *plugin.Resolver
	cfg      Config
	charmaps *lru.Cache[cacheKey, *charmap.Map]
	// pointers holds the grouped pointer scan of each image.
	pointers *lru.Cache[[sha256.Size]byte, [][]scanner.Pointer]
}

// NewExtractor returns an extractor resolving plugins with resolver.
func NewExtractor(logger *log.Logger, resolver *plugin.Resolver, cfg Config) (*Extractor, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultConfig().CacheSize
	}
	cache, err := lru.New[cacheKey, *charmap.Map](size)
	if err != nil {
		return nil, fmt.Errorf("create charmap cache: %w", err)
	}
	pointers, err := lru.New[[sha256.Size]byte, [][]scanner.Pointer](size)
	if err != nil {
		return nil, fmt.Errorf("create pointer cache: %w", err)
	}
	if cfg.SampleLength <= 0 {
		cfg.SampleLength = DefaultConfig().SampleLength
	}
	if cfg.DegradedRatio <= 0 {
		cfg.DegradedRatio = DefaultConfig().DegradedRatio
	}
	if cfg.Detect == (charmap.DetectConfig{}) {
		cfg.Detect = charmap.DefaultDetectConfig()
	}
	if cfg.CodecDetect == (compression.DetectConfig{}) {
		cfg.CodecDetect = compression.DefaultDetectConfig()
	}

	return &Extractor{
		logger:   logger,
		resolver: resolver,
		cfg:      cfg,
		charmaps: cache,
		pointers: pointers,
	}, nil
}

func (e *Extractor) decodeOptions() charmap.DecodeOptions {
	return charmap.DecodeOptions{Similar: e.cfg.SimilarFallback, Radius: e.cfg.SimilarRadius}
}

// codec returns the codec for a segment; the empty name and "auto" get a
// dispatcher using the configured thresholds.
func (e *Extractor) codec(name string) (compression.Codec, error) {
	if compression.Canonical(name) == compression.NameAuto {
		return compression.NewAuto(e.cfg.CodecDetect), nil
	}
	c, err := compression.Get(name)
	if err != nil {
		return nil, fmt.Errorf("segment codec: %w", err)
	}
	return c, nil
}

// charmapFor picks the segment's map: its own, the table of its declared
// language, or one auto-detected from the decompressed bytes. The result is
// owned by the caller.
func (e *Extractor) charmapFor(key cacheKey, seg scanner.Segment, data []byte) *charmap.Map {
	var m *charmap.Map
	switch {
	case seg.Charmap != nil:
		m = seg.Charmap.Clone()
	case seg.Language != charmap.LanguageUnknown:
		if t, ok := e.cfg.Charsets[seg.Language]; ok {
			m = t.Clone()
		} else {
			m = charmap.Seed(seg.Language).Finalize()
		}
	default:
		cached, ok := e.charmaps.Get(key)
		if !ok {
			cached = charmap.AutoDetect(data, 0, e.cfg.SampleLength, e.cfg.Detect)
			e.charmaps.Add(key, cached)
			e.logger.Debug("Detected charmap",
				log.String("segment", seg.Name),
				log.String("language", string(cached.Language)),
				log.Int("terminators", len(cached.Terminators())))
		}
		m = cached.Clone()
	}

	if len(seg.Terminators) > 0 {
		m.SetTerminators(append(m.Terminators(), seg.Terminators...))
	}
	return m
}

func romKey(img *rom.Image) [sha256.Size]byte {
	return sha256.Sum256(img.Bytes())
}
