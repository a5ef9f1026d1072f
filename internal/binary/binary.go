// Package binary provides helpers for reading fields out of in-memory ROM images.
package binary

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// Uint16LE reads a little-endian uint16 at off. ok is false when the read
// would run past the end of data.
func Uint16LE(data []byte, off int) (v uint16, ok bool) {
	if off < 0 || off+2 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(data[off:]), true
}

// Uint16BE reads a big-endian uint16 at off.
func Uint16BE(data []byte, off int) (v uint16, ok bool) {
	if off < 0 || off+2 > len(data) {
		return 0, false
	}
	return binary.BigEndian.Uint16(data[off:]), true
}

// Uint32LE reads a little-endian uint32 at off.
func Uint32LE(data []byte, off int) (v uint32, ok bool) {
	if off < 0 || off+4 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[off:]), true
}

// WordLE reads a little-endian word of width 1, 2 or 4 bytes.
func WordLE(data []byte, off, width int) (uint32, bool) {
	switch width {
	case 1:
		if off < 0 || off >= len(data) {
			return 0, false
		}
		return uint32(data[off]), true
	case 2:
		v, ok := Uint16LE(data, off)
		return uint32(v), ok
	case 4:
		return Uint32LE(data, off)
	default:
		return 0, false
	}
}

// Slice returns data[off:off+n] clipped to the buffer. It never panics.
func Slice(data []byte, off, n int) []byte {
	if off < 0 || off >= len(data) || n <= 0 {
		return nil
	}
	end := off + n
	if end > len(data) || end < off {
		end = len(data)
	}
	return data[off:end]
}

// CleanString converts bytes to a string, cutting at the first null byte and
// trimming whitespace.
func CleanString(b []byte) string {
	end := len(b)
	for i, c := range b {
		if c == 0 {
			end = i
			break
		}
	}
	return strings.TrimSpace(string(b[:end]))
}

// ASCIIString is CleanString for fields that must be 7-bit clean. Bytes
// outside 0x20-0x7E are replaced by utf8.RuneError rather than rejected.
func ASCIIString(b []byte) string {
	end := len(b)
	for i, c := range b {
		if c == 0 {
			end = i
			break
		}
	}
	var sb strings.Builder
	for _, c := range b[:end] {
		if c >= 0x20 && c <= 0x7E {
			sb.WriteByte(c)
		} else {
			sb.WriteRune(utf8.RuneError)
		}
	}
	return strings.TrimSpace(sb.String())
}

// ExtractPrintable extracts only printable ASCII characters (0x20-0x7E) from bytes.
func ExtractPrintable(b []byte) string {
	var result strings.Builder
	for _, c := range b {
		if c >= 0x20 && c <= 0x7E {
			result.WriteByte(c)
		}
	}
	return strings.TrimSpace(result.String())
}

// IsPrintable reports whether c is a printable ASCII byte.
func IsPrintable(c byte) bool {
	return c >= 0x20 && c <= 0x7E
}
