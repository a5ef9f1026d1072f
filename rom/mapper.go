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

import "fmt"

const (
	bankSize     = 0x4000
	bankedWindow = 0x8000
)

// Mapper translates logical addresses into image offsets. GB and GBC images
// map through the cartridge bank controller; GBA images subtract GBABase.
// A Mapper holds mutable bank state and is not safe for concurrent use.
type Mapper struct {
	data     []byte
	platform Platform
	ctrl     BankController
}

// NewMapper returns a mapper for img with the bank controller selected from
// the cartridge type byte.
func NewMapper(img *Image) *Mapper {
	m := &Mapper{data: img.data, platform: img.platform}
	if img.platform != PlatformGBA {
		m.ctrl = NewBankController(img.header.CartridgeType)
	}
	return m
}

// Controller returns the bank controller, or nil for GBA images.
func (m *Mapper) Controller() BankController {
	return m.ctrl
}

// PointerWidth returns the platform pointer width in bytes.
func (m *Mapper) PointerWidth() int {
	return m.platform.PointerWidth()
}

// Base returns the platform address base.
func (m *Mapper) Base() uint32 {
	return m.platform.Base()
}

// Translate converts a logical address into an offset into the image.
func (m *Mapper) Translate(addr uint32) (int, error) {
	var off int
	if m.platform == PlatformGBA {
		if addr < GBABase {
			return 0, fmt.Errorf("%w: 0x%08X below ROM base", ErrOutOfRange, addr)
		}
		off = int(addr - GBABase)
	} else {
		switch {
		case addr < bankSize:
			off = int(addr)
		case addr < bankedWindow:
			off = m.bankOffset() + int(addr-bankSize)
		default:
			return 0, fmt.Errorf("%w: 0x%04X outside ROM window", ErrOutOfRange, addr)
		}
	}
	if off >= len(m.data) {
		return 0, fmt.Errorf("%w: 0x%X maps to offset 0x%X past end of %d byte image",
			ErrOutOfRange, addr, off, len(m.data))
	}
	return off, nil
}

// bankOffset returns the image offset of the switchable bank. Bank numbers
// past the end of the image wrap, as on hardware with unconnected lines.
func (m *Mapper) bankOffset() int {
	bank := m.ctrl.ROMBank()
	if banks := len(m.data) / bankSize; banks > 0 {
		bank %= banks
	}
	return bank * bankSize
}

// Read returns the byte at a logical address.
func (m *Mapper) Read(addr uint32) (byte, error) {
	off, err := m.Translate(addr)
	if err != nil {
		return 0, err
	}
	return m.data[off], nil
}

// Write sends a control write to the bank controller. Writes outside the
// controller window and writes on GBA images are ignored.
func (m *Mapper) Write(addr uint32, value byte) {
	if m.ctrl == nil || addr >= bankedWindow {
		return
	}
	m.ctrl.Write(uint16(addr), value)
}

// SelectBank is a convenience that performs the register writes needed to
// map bank at 0x4000-0x7FFF on the current controller.
func (m *Mapper) SelectBank(bank int) {
	switch m.ctrl.(type) {
	case *MBC1:
		m.Write(0x6000, 0)
		m.Write(0x2000, byte(bank&0x1F))
		m.Write(0x4000, byte(bank>>5&0x03))
	case *MBC3:
		m.Write(0x2000, byte(bank&0x7F))
	case *MBC5:
		m.Write(0x2000, byte(bank))
		m.Write(0x3000, byte(bank>>8&0x01))
	}
}
