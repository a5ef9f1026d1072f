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

package charmap

import "sort"

// ByteRange is an inclusive byte range.
type ByteRange struct {
	Lo, Hi byte
}

// Contains reports whether b lies in r.
func (r ByteRange) Contains(b byte) bool {
	return b >= r.Lo && b <= r.Hi
}

// DetectConfig holds the auto-detection thresholds.
type DetectConfig struct {
	// ASCIIDensity is the printable ASCII share above which a sample is
	// treated as Latin text.
	ASCIIDensity float64
	// ScriptMinCount is the number of bytes a script range needs before
	// the script is considered.
	ScriptMinCount int
	JapaneseRange  ByteRange
	CyrillicRange  ByteRange
	// SpaceMinRatio is the share of the sample the space candidate must
	// exceed.
	SpaceMinRatio float64
	// MaxTerminators caps the number of inferred terminator bytes.
	MaxTerminators int
	// TerminatorCandidates is how many of the most frequent unmapped bytes
	// are tested as terminators.
	TerminatorCandidates int
}

// DefaultDetectConfig returns the standard thresholds.
func DefaultDetectConfig() DetectConfig {
	return DetectConfig{
		ASCIIDensity:         0.30,
		ScriptMinCount:       10,
		JapaneseRange:        ByteRange{Lo: 0xA0, Hi: 0xDF},
		CyrillicRange:        ByteRange{Lo: 0xC0, Hi: 0xFF},
		SpaceMinRatio:        0.01,
		MaxTerminators:       3,
		TerminatorCandidates: 5,
	}
}

// DetectLanguage classifies a sample by byte histogram. Dense printable
// ASCII means Latin; otherwise the script range with the larger count wins
// if it reaches ScriptMinCount, with ties going to Japanese.
func DetectLanguage(sample []byte, cfg DetectConfig) Language {
	if len(sample) == 0 {
		return LanguageLatin
	}

	ascii, jp, cy := 0, 0, 0
	for _, b := range sample {
		if b >= 0x20 && b <= 0x7E {
			ascii++
		}
		if cfg.JapaneseRange.Contains(b) {
			jp++
		}
		if cfg.CyrillicRange.Contains(b) {
			cy++
		}
	}
	if float64(ascii)/float64(len(sample)) > cfg.ASCIIDensity {
		return LanguageLatin
	}

	jpOK := jp >= cfg.ScriptMinCount
	cyOK := cy >= cfg.ScriptMinCount
	switch {
	case jpOK && (!cyOK || jp >= cy):
		return LanguageJapanese
	case cyOK:
		return LanguageCyrillic
	default:
		return LanguageLatin
	}
}

// AutoDetect builds a map for the sampleLength bytes at data[start:]. It
// seeds the table for the detected language, infers the space byte of
// non-Latin text, and infers up to MaxTerminators terminator bytes mapped to
// line breaks. The result depends only on the sampled bytes and cfg.
func AutoDetect(data []byte, start, sampleLength int, cfg DetectConfig) *Map {
	var sample []byte
	if start >= 0 && start < len(data) && sampleLength > 0 {
		sample = data[start:min(start+sampleLength, len(data))]
	}

	lang := DetectLanguage(sample, cfg)
	m := Seed(lang)
	m.Name = "auto_" + string(lang)

	var hist [256]int
	for _, b := range sample {
		hist[b]++
	}

	// Latin text keeps the ASCII space; frequent unmapped bytes are left to
	// terminator inference.
	if lang != LanguageLatin {
		inferSpace(m, &hist, len(sample), cfg)
	}

	terms := inferTerminators(m, sample, &hist, cfg)
	for _, t := range terms {
		m.forward[t] = LineBreak
	}
	m.terminators = terms
	m.reindex()
	return m.Finalize()
}

// inferSpace moves the space glyph to the most frequent unmapped byte when
// that byte exceeds SpaceMinRatio of the sample and is more frequent than
// the seed's space byte.
func inferSpace(m *Map, hist *[256]int, n int, cfg DetectConfig) {
	b, ok := mostFrequentUnmapped(m, hist)
	if !ok || float64(hist[b]) <= cfg.SpaceMinRatio*float64(n) {
		return
	}
	if old, ok := m.reverse[Space]; ok {
		if hist[old] >= hist[b] {
			return
		}
		m.forward[old] = ""
	}
	m.forward[b] = Space
	m.reindex()
}

func mostFrequentUnmapped(m *Map, hist *[256]int) (byte, bool) {
	best, bestCount := 0, 0
	for b := 0; b < 256; b++ {
		if m.forward[b] == "" && hist[b] > bestCount {
			best, bestCount = b, hist[b]
		}
	}
	return byte(best), bestCount > 0
}

// inferTerminators picks frequent unmapped bytes that are followed by a
// different byte more often than by themselves. Padding runs repeat the
// same byte and so are rejected.
func inferTerminators(m *Map, sample []byte, hist *[256]int, cfg DetectConfig) []byte {
	candidates := make([]byte, 0, 16)
	for b := 0; b < 256; b++ {
		if m.forward[b] == "" && hist[b] >= 2 {
			candidates = append(candidates, byte(b))
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return hist[candidates[i]] > hist[candidates[j]]
	})
	if len(candidates) > cfg.TerminatorCandidates {
		candidates = candidates[:cfg.TerminatorCandidates]
	}

	var terms []byte
	for _, c := range candidates {
		if len(terms) >= cfg.MaxTerminators {
			break
		}
		differ, same := 0, 0
		for i := 0; i+1 < len(sample); i++ {
			if sample[i] != c {
				continue
			}
			if sample[i+1] == c {
				same++
			} else {
				differ++
			}
		}
		if differ > same {
			terms = append(terms, c)
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })
	return terms
}
