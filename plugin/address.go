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
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errMissing = errors.New("missing")

// Address is a descriptor address. It unmarshals from a JSON number or from
// a decimal or 0x-prefixed hex string such as "0x4000".
type Address struct {
	raw string
}

// NewAddress returns an Address holding v.
func NewAddress(v uint32) Address {
	return Address{raw: strconv.FormatUint(uint64(v), 10)}
}

// UnmarshalJSON keeps the raw token; parsing happens during validation so
// errors can name the field.
func (a *Address) UnmarshalJSON(b []byte) error {
	a.raw = strings.TrimSpace(string(b))
	return nil
}

// MarshalJSON writes the address as a hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	v, err := a.Uint32()
	if err != nil {
		return []byte("null"), nil //nolint:nilerr // unset addresses encode as null
	}
	return json.Marshal(fmt.Sprintf("0x%X", v))
}

// IsSet reports whether the address was present and not null.
func (a Address) IsSet() bool {
	return a.raw != "" && a.raw != "null"
}

// Uint32 parses the address.
func (a Address) Uint32() (uint32, error) {
	if !a.IsSet() {
		return 0, errMissing
	}

	text := a.raw
	base := 10
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err != nil {
			return 0, fmt.Errorf("invalid address %s: %w", a.raw, err)
		}
		text = strings.TrimSpace(s)
		if hex, ok := cutHexPrefix(text); ok {
			text, base = hex, 16
		}
	}

	v, err := strconv.ParseUint(text, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %s: %w", a.raw, err)
	}
	return uint32(v), nil
}

func cutHexPrefix(s string) (string, bool) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:], true
	}
	return s, false
}
