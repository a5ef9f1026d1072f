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

// BankController models a memory bank controller: a register file fed by
// writes to the ROM address window that selects which bank appears at
// 0x4000-0x7FFF.
type BankController interface {
	// Name returns the controller name, e.g. "MBC1".
	Name() string
	// Write handles a control write to a CPU address in 0x0000-0x7FFF.
	Write(addr uint16, value byte)
	// ROMBank returns the bank currently mapped at 0x4000-0x7FFF.
	ROMBank() int
	// Reset restores the power-on register state.
	Reset()
}

// NewBankController picks a controller for a cartridge type byte. Unknown
// types get the no-op controller.
func NewBankController(cartType byte) BankController {
	switch cartType {
	case 0x01, 0x02, 0x03:
		return NewMBC1()
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return NewMBC3()
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return NewMBC5()
	default:
		return NoMBC{}
	}
}

// NoMBC is the controller of 32KB cartridges without banking.
type NoMBC struct{}

// Name implements BankController.
func (NoMBC) Name() string { return "ROM" }

// Write implements BankController. Writes are ignored.
func (NoMBC) Write(uint16, byte) {}

// ROMBank implements BankController.
func (NoMBC) ROMBank() int { return 1 }

// Reset implements BankController.
func (NoMBC) Reset() {}

// MBC1 implements the MBC1 register set.
type MBC1 struct {
	low        byte // 5-bit bank register
	high       byte // 2-bit upper bank or RAM bank register
	mode       byte
	ramEnabled bool
}

// NewMBC1 returns an MBC1 in its power-on state.
func NewMBC1() *MBC1 {
	m := &MBC1{}
	m.Reset()
	return m
}

// Name implements BankController.
func (*MBC1) Name() string { return "MBC1" }

// Write implements BankController.
func (m *MBC1) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		m.low = value & 0x1F
		if m.low == 0 {
			m.low = 1
		}
	case addr < 0x6000:
		m.high = value & 0x03
	case addr < 0x8000:
		m.mode = value & 0x01
	}
}

// ROMBank implements BankController. In RAM banking mode the upper register
// selects a RAM bank and does not contribute to the ROM bank.
func (m *MBC1) ROMBank() int {
	if m.mode == 0 {
		return int(m.high)<<5 | int(m.low)
	}
	return int(m.low)
}

// RAMBank returns the selected external RAM bank.
func (m *MBC1) RAMBank() int {
	if m.mode == 1 {
		return int(m.high)
	}
	return 0
}

// RAMEnabled reports whether external RAM is enabled.
func (m *MBC1) RAMEnabled() bool { return m.ramEnabled }

// Reset implements BankController.
func (m *MBC1) Reset() {
	*m = MBC1{low: 1}
}

// MBC3 implements the ROM side of the MBC3 register set. The real-time clock
// is not modelled.
type MBC3 struct {
	bank       byte
	ramSelect  byte
	ramEnabled bool
}

// NewMBC3 returns an MBC3 in its power-on state.
func NewMBC3() *MBC3 {
	m := &MBC3{}
	m.Reset()
	return m
}

// Name implements BankController.
func (*MBC3) Name() string { return "MBC3" }

// Write implements BankController.
func (m *MBC3) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		m.bank = value & 0x7F
		if m.bank == 0 {
			m.bank = 1
		}
	case addr < 0x6000:
		m.ramSelect = value
	}
}

// ROMBank implements BankController.
func (m *MBC3) ROMBank() int { return int(m.bank) }

// Reset implements BankController.
func (m *MBC3) Reset() {
	*m = MBC3{bank: 1}
}

// MBC5 implements the MBC5 register set with its 9-bit ROM bank.
type MBC5 struct {
	bank       uint16
	ramBank    byte
	ramEnabled bool
}

// NewMBC5 returns an MBC5 in its power-on state.
func NewMBC5() *MBC5 {
	m := &MBC5{}
	m.Reset()
	return m
}

// Name implements BankController.
func (*MBC5) Name() string { return "MBC5" }

// Write implements BankController. Bank 0 is selectable on MBC5.
func (m *MBC5) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x3000:
		m.bank = m.bank&0x100 | uint16(value)
	case addr < 0x4000:
		m.bank = m.bank&0xFF | uint16(value&0x01)<<8
	case addr < 0x6000:
		m.ramBank = value & 0x0F
	}
}

// ROMBank implements BankController.
func (m *MBC5) ROMBank() int { return int(m.bank) }

// Reset implements BankController.
func (m *MBC5) Reset() {
	*m = MBC5{bank: 1}
}
