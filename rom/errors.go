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

package rom

import (
	"errors"
	"fmt"
)

// ErrInvalidROM is returned when a buffer cannot hold a cartridge header.
var ErrInvalidROM = errors.New("invalid ROM")

// ErrOutOfRange is returned when a logical address does not map into the image.
var ErrOutOfRange = errors.New("address out of range")

// ErrUnknownPlatform is returned by ParsePlatform for unrecognized names.
var ErrUnknownPlatform = errors.New("unknown platform")

// SizeError describes a buffer that is too small to be a ROM image.
type SizeError struct {
	Size    int
	MinSize int
}

func (e SizeError) Error() string {
	return fmt.Sprintf("invalid ROM: %d bytes, need at least %d", e.Size, e.MinSize)
}

// Unwrap lets errors.Is match ErrInvalidROM.
func (SizeError) Unwrap() error {
	return ErrInvalidROM
}
