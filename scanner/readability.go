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

package scanner

// textTerminators count as readable alongside printable ASCII.
var textTerminators = [256]bool{0x00: true, 0x0A: true, 0x0D: true, 0xFF: true}

// IsTerminator reports whether b is a conventional text terminator.
func IsTerminator(b byte) bool {
	return textTerminators[b]
}

// Readability returns the share of window bytes that are printable ASCII or
// terminators. A window without a single printable byte scores zero, so
// zero-filled and 0xFF-filled padding never reads as text.
func Readability(window []byte) float64 {
	if len(window) == 0 {
		return 0
	}
	printable, terms := 0, 0
	for _, b := range window {
		switch {
		case b >= 0x20 && b <= 0x7E:
			printable++
		case textTerminators[b]:
			terms++
		}
	}
	if printable == 0 {
		return 0
	}
	return float64(printable+terms) / float64(len(window))
}
