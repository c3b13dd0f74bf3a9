package simd

import (
	"encoding/binary"
)

// This file holds the portable reference implementations of all six
// transcoding operations. They process two 64-bit words per bulk iteration
// (16 bytes, or 8 code units) and finish with a per-unit tail loop.
//
// These functions are used on every platform:
//   - On amd64/arm64: fallback for small inputs (< 32 bytes) or when the
//     wide-stride path is disabled
//   - On other platforms: primary implementation
//
// They are also the oracle the wide-stride tests compare against.
//
// Byte sources are loaded with binary.LittleEndian and code-unit sources are
// composed with positional shifts, so lane order always equals address order
// and the first-offender guarantee holds on any host endianness.

// firstNonASCIIGeneric returns the index of the first byte >= 0x80, or -1 if
// every byte is ASCII.
//
// Algorithm:
//  1. Load two 8-byte words per iteration
//  2. AND their OR with hiBits8; zero means the whole stride is ASCII
//  3. On a dirty stride, resolve the exact lane with firstHighByte,
//     checking the low word first so the lowest address wins
//  4. Finish the sub-stride remainder byte by byte
func firstNonASCIIGeneric(src []byte) int {
	n := len(src)
	i := 0

	for i+strideBytes <= n {
		w0 := binary.LittleEndian.Uint64(src[i:])
		w1 := binary.LittleEndian.Uint64(src[i+wordBytes:])
		if (w0|w1)&hiBits8 != 0 {
			if m := w0 & hiBits8; m != 0 {
				return i + firstHighByte(m)
			}
			return i + wordBytes + firstHighByte(w1&hiBits8)
		}
		i += strideBytes
	}

	for ; i < n; i++ {
		if src[i] >= 0x80 {
			return i
		}
	}
	return -1
}

// copyASCIIGeneric copies src into dst while every byte is ASCII. It returns
// -1 when the whole source was copied, or the index of the first byte >= 0x80;
// in that case dst[:index] equals src[:index] and later positions are
// unspecified.
//
// len(dst) must be at least len(src).
func copyASCIIGeneric(dst, src []byte) int {
	n := len(src)
	i := 0

	for i+strideBytes <= n {
		w0 := binary.LittleEndian.Uint64(src[i:])
		w1 := binary.LittleEndian.Uint64(src[i+wordBytes:])
		if (w0|w1)&hiBits8 != 0 {
			// Dirty stride: the tail loop below copies the clean prefix
			// and reports the exact offender.
			break
		}
		copy(dst[i:i+strideBytes], src[i:i+strideBytes])
		i += strideBytes
	}

	for ; i < n; i++ {
		b := src[i]
		if b >= 0x80 {
			return i
		}
		dst[i] = b
	}
	return -1
}

// widenASCIIGeneric zero-extends src bytes into dst code units while every
// byte is ASCII. Same result contract as copyASCIIGeneric.
//
// len(dst) must be at least len(src).
func widenASCIIGeneric(dst []uint16, src []byte) int {
	n := len(src)
	i := 0

	for i+strideBytes <= n {
		w0 := binary.LittleEndian.Uint64(src[i:])
		w1 := binary.LittleEndian.Uint64(src[i+wordBytes:])
		if (w0|w1)&hiBits8 != 0 {
			break
		}
		d := dst[i : i+strideBytes : len(dst)]
		for k, b := range src[i : i+strideBytes] {
			d[k] = uint16(b)
		}
		i += strideBytes
	}

	for ; i < n; i++ {
		b := src[i]
		if b >= 0x80 {
			return i
		}
		dst[i] = uint16(b)
	}
	return -1
}

// loadUnits composes four consecutive code units into one word, unit j in
// bits [16j, 16j+16).
//
//go:inline
func loadUnits(src []uint16) uint64 {
	return uint64(src[0]) | uint64(src[1])<<16 | uint64(src[2])<<32 | uint64(src[3])<<48
}

// narrowBasicLatinGeneric narrows src code units into dst bytes while every
// unit is Basic Latin (<= 0x7F). It returns -1 when the whole source was
// narrowed, or the index of the first unit > 0x7F; in that case dst[:index]
// is valid and later positions are unspecified.
//
// A dirty stride is rejected whole: the bulk loop writes none of it and the
// tail loop restarts at the stride's first unit.
//
// len(dst) must be at least len(src).
func narrowBasicLatinGeneric(dst []byte, src []uint16) int {
	n := len(src)
	i := 0

	for i+strideUnits <= n {
		w0 := loadUnits(src[i:])
		w1 := loadUnits(src[i+wordUnits:])
		if (w0|w1)&hiBits16 != 0 {
			break
		}
		d := dst[i : i+strideUnits : len(dst)]
		for k, u := range src[i : i+strideUnits] {
			d[k] = byte(u)
		}
		i += strideUnits
	}

	for ; i < n; i++ {
		u := src[i]
		if u > 0x7F {
			return i
		}
		dst[i] = byte(u)
	}
	return -1
}

// widenLatin1Generic zero-extends every src byte into a dst code unit. The
// operation is total: all 256 byte values map to the identically valued code
// unit, so there is no validation and no failure result.
//
// len(dst) must be at least len(src).
func widenLatin1Generic(dst []uint16, src []byte) {
	dst = dst[:len(src)]
	for i, b := range src {
		dst[i] = uint16(b)
	}
}

// narrowLatin1Generic truncates every src code unit into a dst byte, keeping
// the low byte. Units above 0xFF are truncated, not rejected: callers are
// expected to pass Latin-1 range data, and the truncation for anything else
// is documented behavior higher layers may rely on.
//
// len(dst) must be at least len(src).
func narrowLatin1Generic(dst []byte, src []uint16) {
	dst = dst[:len(src)]
	for i, u := range src {
		dst[i] = byte(u)
	}
}
