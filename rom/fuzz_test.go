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

package rom_test

import (
	"testing"

	"github.com/ZaparooProject/go-romtext/internal/romtest"
	"github.com/ZaparooProject/go-romtext/rom"
)

func FuzzNew(f *testing.F) {
	f.Add(romtest.NewGB(romtest.GBOptions{Title: "SEED"}))
	f.Add(romtest.NewGBA("SEED", "ABCD", 0x200))
	f.Add([]byte{0x00})

	f.Fuzz(func(t *testing.T, data []byte) {
		img, err := rom.New(data)
		if err != nil {
			return
		}
		_ = img.GameID()
		m := rom.NewMapper(img)
		for _, addr := range []uint32{0, 0x4000, 0x7FFF, 0x08000000} {
			_, _ = m.Read(addr)
		}
	})
}
