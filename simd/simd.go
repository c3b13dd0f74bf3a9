// Package simd provides SIMD-style bulk transcoding primitives between
// single-byte text (ASCII, Latin-1) and 16-bit code units (the Basic Latin
// range of UTF-16). The package automatically selects the best implementation
// based on the target platform and available CPU features, and falls back to
// optimized pure Go SWAR (SIMD Within A Register) implementations everywhere
// else.
//
// The primary use case is accelerating encoding converters: most real-world
// text is dominated by ASCII runs, so a converter first drains the input
// through these bulk paths and only drops to a general-purpose decoder at the
// first unit the fast path rejects.
//
// All validating operations share one contract: they return -1 when the whole
// source was transformed, or the zero-based index of the first source unit
// that failed the check. On a failed call every destination position before
// the returned index holds the correct transform of the corresponding source
// unit; positions at and after it are unspecified.
package simd

import "math/bits"

// Lane masks for the high-bit tests.
//
// hiBits8 has the top bit of every byte lane set. A 64-bit word ANDed with it
// is zero exactly when all eight bytes are ASCII (0x00-0x7F).
//
// hiBits16 has every bit above 0x7F set in each 16-bit lane. A word holding
// four code units ANDed with it is zero exactly when all four units are Basic
// Latin (0x0000-0x007F).
const (
	hiBits8  uint64 = 0x8080808080808080
	hiBits16 uint64 = 0xFF80FF80FF80FF80
)

// Stride geometry. The scalar bulk loops process two 64-bit words per
// iteration: 16 bytes, or 8 code units.
const (
	wordBytes   = 8
	strideBytes = 2 * wordBytes
	wordUnits   = 4
	strideUnits = 2 * wordUnits
)

// firstHighByte returns the byte-lane index of the lowest set bit in a masked
// word. The argument must be the non-zero result of w & hiBits8.
//
// Words are composed positionally (byte i occupies bits [8i, 8i+8)), so the
// lowest-address offending byte is always the one holding the lowest set bit,
// regardless of host endianness.
//
//go:inline
func firstHighByte(masked uint64) int {
	return bits.TrailingZeros64(masked) >> 3
}

// firstHighLane returns the 16-bit-lane index of the lowest set bit in a
// masked word. The argument must be the non-zero result of w & hiBits16.
//
//go:inline
func firstHighLane(masked uint64) int {
	return bits.TrailingZeros64(masked) >> 4
}

// spreadLoBytes zero-extends the low four bytes of w into four 16-bit lanes:
//
//	input:  .. .. .. .. b3 b2 b1 b0
//	output: 00 b3 00 b2 00 b1 00 b0
//
// This is a genuine interleave, not a copy: each byte moves to the low half
// of its 16-bit lane and the high half is cleared, which is exactly the
// memory image of four little-endian uint16 code units.
//
// Two shift-or-mask rounds perform the shuffle:
//  1. split the four bytes across the word's two 32-bit halves
//  2. split each pair of bytes across 16-bit lanes
//
//go:inline
func spreadLoBytes(w uint64) uint64 {
	x := w & 0x00000000FFFFFFFF
	x = (x | x<<16) & 0x0000FFFF0000FFFF
	x = (x | x<<8) & 0x00FF00FF00FF00FF
	return x
}

// spreadHiBytes is spreadLoBytes applied to the high four bytes of w.
//
//go:inline
func spreadHiBytes(w uint64) uint64 {
	return spreadLoBytes(w >> 32)
}

// packLanes is the inverse of spreadLoBytes: it collapses four 16-bit lanes
// into the low four bytes of the result, keeping only the low byte of every
// lane. High lane bytes are discarded, not checked; validating callers must
// test the word against hiBits16 first.
//
//	input:  h3 b3 h2 b2 h1 b1 h0 b0
//	output: .. .. .. .. b3 b2 b1 b0
//
//go:inline
func packLanes(w uint64) uint64 {
	x := w & 0x00FF00FF00FF00FF
	x = (x | x>>8) & 0x0000FFFF0000FFFF
	x = (x | x>>16) & 0x00000000FFFFFFFF
	return x
}
