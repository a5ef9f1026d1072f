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

package compression

// Scheme is the result of compression detection.
type Scheme string

// Detected schemes. SchemeNone means the block is stored raw.
const (
	SchemeNone Scheme = NameNone
	SchemeLZ10 Scheme = NameLZ10
	SchemeLZSS Scheme = NameLZSS
	SchemeRLE  Scheme = NameRLE
)

// DetectConfig holds the look-ahead heuristic thresholds.
type DetectConfig struct {
	// Window is the number of bytes inspected after start.
	Window int
	// MinRunMarkers is the number of 0x00 or 0xFF bytes that suggest LZSS.
	MinRunMarkers int
	// MinRLEMarkers is the number of 0x00,_,n>1 triples that suggest RLE.
	MinRLEMarkers int
}

// DefaultDetectConfig returns the standard thresholds.
func DefaultDetectConfig() DetectConfig {
	return DetectConfig{
		Window:        16,
		MinRunMarkers: 3,
		MinRLEMarkers: 2,
	}
}

// Detector guesses the compression scheme of a block.
type Detector struct {
	cfg DetectConfig
}

// NewDetector returns a detector using cfg.
func NewDetector(cfg DetectConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect classifies the block at data[start:]. The signature byte 0x10
// selects LZ10; otherwise the first Window bytes are checked for LZSS flag
// patterns, then for RLE escapes.
func (d *Detector) Detect(data []byte, start int) Scheme {
	if start < 0 || start >= len(data) {
		return SchemeNone
	}
	if data[start] == lz10Signature {
		return SchemeLZ10
	}
	if d.likelyLZSS(data, start) {
		return SchemeLZSS
	}
	if d.likelyRLE(data, start) {
		return SchemeRLE
	}
	return SchemeNone
}

func (d *Detector) likelyLZSS(data []byte, start int) bool {
	if start+4 > len(data) {
		return false
	}
	zeros, ones := 0, 0
	end := min(start+d.cfg.Window, len(data))
	for _, b := range data[start:end] {
		switch b {
		case 0x00:
			zeros++
		case 0xFF:
			ones++
		}
	}
	return zeros >= d.cfg.MinRunMarkers || ones >= d.cfg.MinRunMarkers
}

func (d *Detector) likelyRLE(data []byte, start int) bool {
	if start+3 > len(data) {
		return false
	}
	markers := 0
	end := min(start+d.cfg.Window, len(data)-2)
	for i := start; i < end; i++ {
		if data[i] == 0x00 && data[i+2] > 1 {
			markers++
		}
	}
	return markers >= d.cfg.MinRLEMarkers
}

// Auto is the dispatcher codec: it detects the scheme of each block and
// delegates to the matching codec.
type Auto struct {
	detector *Detector
	codecs   map[Scheme]Codec
}

// NewAuto returns a dispatcher using cfg for detection.
func NewAuto(cfg DetectConfig) *Auto {
	return &Auto{
		detector: NewDetector(cfg),
		codecs: map[Scheme]Codec{
			SchemeNone: None{},
			SchemeLZ10: LZ10{},
			SchemeLZSS: LZSS{},
			SchemeRLE:  RLE{},
		},
	}
}

// Name implements Codec.
func (*Auto) Name() string { return NameAuto }

// Detect exposes the dispatcher's scheme choice for diagnostics.
func (a *Auto) Detect(data []byte, start int) Scheme {
	return a.detector.Detect(data, start)
}

// Decompress implements Codec.
func (a *Auto) Decompress(data []byte, start int) ([]byte, int) {
	return a.codecs[a.Detect(data, start)].Decompress(data, start)
}

// Effective returns the scheme a codec applies to the block at start: the
// detected scheme for the dispatcher, the codec's own name otherwise.
func Effective(c Codec, data []byte, start int) Scheme {
	if a, ok := c.(*Auto); ok {
		return a.Detect(data, start)
	}
	return Scheme(c.Name())
}
