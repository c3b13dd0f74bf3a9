// Package charcode provides bulk transcoding between single-byte text
// (ASCII, Latin-1) and 16-bit code units (the Basic Latin range of a
// UTF-16-style representation).
//
// charcode is the fast path of an encoding converter: most real-world text is
// dominated by ASCII runs, and all six operations here drain such runs at
// word or vector-register width instead of unit by unit. A converter calls
// one of the checked operations, consumes the validated prefix, and hands the
// rest of the input to its general-purpose decoder starting at the reported
// offset.
//
// Basic usage:
//
//	src := []byte("hello, world")
//	dst := make([]uint16, len(src))
//	if f, found := charcode.WidenASCII(dst, src); found {
//	    // dst[:f.Index] is valid; src[f.Index] == byte(f.Unit) >= 0x80.
//	    // Switch to a full decoder for src[f.Index:].
//	}
//
// Performance characteristics:
//   - ASCII-only input: processed 16-32 bytes per iteration
//     (SWAR on every platform, wide strides on amd64/arm64)
//   - Mixed input: bulk speed up to the first non-ASCII unit, then one
//     bounded scalar stride to pin the exact offset
//   - No allocation, no locks, no global state; calls on disjoint buffers
//     are safe concurrently
//
// Every checked operation shares one partial-result contract: on failure the
// destination is a correct transform of the source up to (excluding) the
// reported index, and unspecified from the index on. Failure is ordinary
// control flow, not an error: no operation returns an error value.
//
// Destinations must be at least as long as sources. This is the caller's
// obligation; the operations reslice the destination up front, so a short
// destination panics with a bounds error before any unit is written.
// Source and destination must not overlap.
package charcode

import (
	"github.com/coregx/charcode/simd"
)

// Fault identifies the first source unit that stopped a checked operation.
//
// Unit holds the offending value: the byte (zero-extended) for byte sources,
// or the 16-bit code unit for code-unit sources. Index is its zero-based
// offset in the source; the destination is valid up to (excluding) Index.
type Fault struct {
	Unit  uint16
	Index int
}

// ValidateASCII reports whether src is pure ASCII.
//
// It returns found == false when every byte is < 0x80. Otherwise it returns
// the first (lowest-index) byte >= 0x80 and its offset: first-match, never a
// later offender.
//
// Example:
//
//	f, found := charcode.ValidateASCII([]byte("caf\xc3\xa9"))
//	// found == true, f.Unit == 0xC3, f.Index == 3
func ValidateASCII(src []byte) (Fault, bool) {
	if i := simd.FirstNonASCII(src); i >= 0 {
		return Fault{Unit: uint16(src[i]), Index: i}, true
	}
	return Fault{}, false
}

// CopyASCII copies src into dst while every byte is ASCII.
//
// On full success found == false and dst[:len(src)] equals src. On failure
// the returned Fault reports the first byte >= 0x80; dst[:f.Index] equals
// src[:f.Index] and later destination bytes are unspecified.
//
// len(dst) must be at least len(src); the buffers must not overlap.
func CopyASCII(dst, src []byte) (Fault, bool) {
	dst = dst[:len(src)]
	if i := simd.CopyASCII(dst, src); i >= 0 {
		return Fault{Unit: uint16(src[i]), Index: i}, true
	}
	return Fault{}, false
}

// WidenASCII zero-extends src bytes into dst code units while every byte is
// ASCII.
//
// On full success found == false and dst[i] == uint16(src[i]) for every i.
// On failure dst[:f.Index] holds the zero-extended prefix and later
// destination units are unspecified.
//
// len(dst) must be at least len(src); the buffers must not overlap.
func WidenASCII(dst []uint16, src []byte) (Fault, bool) {
	dst = dst[:len(src)]
	if i := simd.WidenASCII(dst, src); i >= 0 {
		return Fault{Unit: uint16(src[i]), Index: i}, true
	}
	return Fault{}, false
}

// NarrowBasicLatin narrows src code units into dst bytes while every unit is
// Basic Latin (<= 0x7F).
//
// On full success found == false and dst[i] == byte(src[i]) for every i. On
// failure the returned Fault reports the first unit > 0x7F; dst[:f.Index] is
// valid and later destination bytes are unspecified.
//
// len(dst) must be at least len(src); the buffers must not overlap.
//
// Example:
//
//	src := []uint16{0x41, 0x42, 0x100, 0x43}
//	dst := make([]byte, len(src))
//	f, found := charcode.NarrowBasicLatin(dst, src)
//	// found == true, f.Unit == 0x100, f.Index == 2, dst[:2] == "AB"
func NarrowBasicLatin(dst []byte, src []uint16) (Fault, bool) {
	dst = dst[:len(src)]
	if i := simd.NarrowBasicLatin(dst, src); i >= 0 {
		return Fault{Unit: src[i], Index: i}, true
	}
	return Fault{}, false
}

// WidenLatin1 zero-extends every src byte into a dst code unit. Latin-1 bytes
// and code points 0x0000-0x00FF correspond one to one, so the operation is
// total: it cannot fail and transforms the entire source.
//
// len(dst) must be at least len(src); the buffers must not overlap.
func WidenLatin1(dst []uint16, src []byte) {
	dst = dst[:len(src)]
	simd.WidenLatin1(dst, src)
}

// NarrowLatin1 writes the low byte of every src code unit into dst. The
// operation is total and never fails.
//
// Units above 0xFF are truncated to their low byte, not rejected. Callers
// are expected to pass only Latin-1 range values (0x0000-0x00FF); the
// truncation of anything else is documented, relied-upon behavior, not a
// runtime check.
//
// len(dst) must be at least len(src); the buffers must not overlap.
func NarrowLatin1(dst []byte, src []uint16) {
	dst = dst[:len(src)]
	simd.NarrowLatin1(dst, src)
}
