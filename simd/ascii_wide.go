//go:build (amd64 || arm64) && !purego

package simd

import (
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/coregx/charcode/internal/align"
)

// CPU feature detection flags set at package initialization.
// These resolve the stride implementation once at startup; no call ever
// re-detects features.
var (
	// hasWideStride indicates whether 16-byte wide loads are worth using.
	// SSE2 is baseline on amd64 and ASIMD on every arm64 Go supports, so in
	// practice this is a kill switch for exotic environments rather than a
	// live branch.
	hasWideStride = cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD
)

// wideMinLen is the minimum input length for the wide-stride path. Below it
// the setup cost (pointer extraction, alignment dispatch) outweighs the
// benefit and the generic SWAR path wins.
const wideMinLen = 32

// doubleStrideBytes is the unrolled fast-path granularity: two 16-byte
// strides per iteration, halving loop overhead on long ASCII runs.
const doubleStrideBytes = 2 * strideBytes

// FirstNonASCII returns the index of the first byte >= 0x80 in src, or -1 if
// every byte is ASCII.
//
// On amd64/arm64 inputs of 32 bytes or more run the wide-stride scanner:
// an alignment prologue, a 32-byte unrolled bulk loop, a 16-byte loop near
// the tail, and a scalar remainder. Shorter inputs use the portable
// two-word SWAR scanner.
//
// Example:
//
//	idx := simd.FirstNonASCII([]byte("héllo"))
//	// idx == 1 (0xC3, first byte of the UTF-8 sequence)
func FirstNonASCII(src []byte) int {
	if hasWideStride && len(src) >= wideMinLen {
		return firstNonASCIIWide(src)
	}
	return firstNonASCIIGeneric(src)
}

// CopyASCII copies src into dst while every byte is ASCII, returning -1 on
// full success or the index of the first byte >= 0x80. On failure dst[:index]
// equals src[:index]; positions from index on are unspecified.
//
// len(dst) must be at least len(src); src and dst must not overlap.
func CopyASCII(dst, src []byte) int {
	if hasWideStride && len(src) >= wideMinLen {
		return copyASCIIWide(dst, src)
	}
	return copyASCIIGeneric(dst, src)
}

// WidenASCII zero-extends src bytes into dst code units while every byte is
// ASCII, returning -1 on full success or the index of the first byte >= 0x80.
// On failure dst[:index] is the zero-extension of src[:index].
//
// len(dst) must be at least len(src); buffers must not overlap.
func WidenASCII(dst []uint16, src []byte) int {
	if hasWideStride && len(src) >= wideMinLen {
		return widenASCIIWide(dst, src)
	}
	return widenASCIIGeneric(dst, src)
}

// NarrowBasicLatin narrows src code units into dst bytes while every unit is
// <= 0x7F, returning -1 on full success or the index of the first unit above
// 0x7F. On failure dst[:index] is valid.
//
// len(dst) must be at least len(src); buffers must not overlap.
func NarrowBasicLatin(dst []byte, src []uint16) int {
	if hasWideStride && len(src) >= wideMinLen/2 {
		return narrowBasicLatinWide(dst, src)
	}
	return narrowBasicLatinGeneric(dst, src)
}

// WidenLatin1 zero-extends every src byte into a dst code unit. Total; never
// fails.
//
// len(dst) must be at least len(src); buffers must not overlap.
func WidenLatin1(dst []uint16, src []byte) {
	if hasWideStride && len(src) >= wideMinLen {
		widenLatin1Wide(dst, src)
		return
	}
	widenLatin1Generic(dst, src)
}

// NarrowLatin1 truncates every src code unit into a dst byte, keeping the low
// byte. Units above 0xFF truncate silently; passing only Latin-1 range values
// is the caller's documented obligation, not a runtime check.
//
// len(dst) must be at least len(src); buffers must not overlap.
func NarrowLatin1(dst []byte, src []uint16) {
	if hasWideStride && len(src) >= wideMinLen/2 {
		narrowLatin1Wide(dst, src)
		return
	}
	narrowLatin1Generic(dst, src)
}

// loadWord and storeWord are raw 64-bit memory accesses. They are compiled
// only for little-endian targets (see build tag), where a raw load produces
// the same positional lane layout the portable path composes by hand.
//
//go:inline
//go:nocheckptr
func loadWord(p unsafe.Pointer, off uintptr) uint64 {
	return *(*uint64)(unsafe.Add(p, off))
}

//go:inline
//go:nocheckptr
func storeWord(p unsafe.Pointer, off uintptr, w uint64) {
	*(*uint64)(unsafe.Add(p, off)) = w
}

// firstNonASCIIWide scans with an alignment prologue, a 32-byte unrolled
// loop, a 16-byte loop, and a scalar tail. The prologue aligns the source so
// every bulk load in the unrolled loop is an aligned 16-byte pair.
//
//go:nocheckptr
func firstNonASCIIWide(src []byte) int {
	n := len(src)
	sp := unsafe.Pointer(unsafe.SliceData(src))

	i := 0
	pro := min(int(align.Until(uintptr(sp), wordBytes)), n)
	for ; i < pro; i++ {
		if src[i] >= 0x80 {
			return i
		}
	}

	for i+doubleStrideBytes <= n {
		w0 := loadWord(sp, uintptr(i))
		w1 := loadWord(sp, uintptr(i)+wordBytes)
		w2 := loadWord(sp, uintptr(i)+2*wordBytes)
		w3 := loadWord(sp, uintptr(i)+3*wordBytes)
		if (w0|w1|w2|w3)&hiBits8 != 0 {
			// Dirty block: drop to the single-stride loop, which re-tests
			// word by word and reports the exact lane.
			break
		}
		i += doubleStrideBytes
	}

	for i+strideBytes <= n {
		w0 := loadWord(sp, uintptr(i))
		w1 := loadWord(sp, uintptr(i)+wordBytes)
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

// copyASCIIWide is firstNonASCIIWide with a store per load. Destination
// stores are word-sized but not alignment-dispatched: a byte copy has the
// same lane layout on both sides, so source alignment is the only one the
// prologue can usefully fix.
//
//go:nocheckptr
func copyASCIIWide(dst, src []byte) int {
	n := len(src)
	_ = dst[:n] // the bulk loop stores through raw pointers
	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	i := 0
	pro := min(int(align.Until(uintptr(sp), wordBytes)), n)
	for ; i < pro; i++ {
		b := src[i]
		if b >= 0x80 {
			return i
		}
		dst[i] = b
	}

	for i+strideBytes <= n {
		w0 := loadWord(sp, uintptr(i))
		w1 := loadWord(sp, uintptr(i)+wordBytes)
		if (w0|w1)&hiBits8 != 0 {
			break
		}
		storeWord(dp, uintptr(i), w0)
		storeWord(dp, uintptr(i)+wordBytes, w1)
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

// widenASCIIWide dispatches on the alignment of both operands exactly once,
// then runs a stride variant that assumes its alignment unconditionally.
//
// The source is aligned at indices i with i = alignSrc (mod 8); destination
// stores (byte address dp+2i) are aligned at i = alignDst (mod 4). The two
// constraints are jointly satisfiable exactly when alignSrc = alignDst
// (mod 4), which selects the both-aligned variant. Otherwise the prologue can
// align only one operand and the dispatcher picks the cheaper side. Inputs
// too short to amortize any prologue take the unaligned variant.
func widenASCIIWide(dst []uint16, src []byte) int {
	_ = dst[:len(src)] // every variant stores through raw pointers
	if len(src) < 2*wideMinLen {
		return widenASCIIUnaligned(dst, src)
	}
	alignSrc := align.Until(uintptr(unsafe.Pointer(unsafe.SliceData(src))), wordBytes)
	alignDst := align.Until(uintptr(unsafe.Pointer(unsafe.SliceData(dst))), wordBytes) / 2

	switch {
	case alignSrc%4 == alignDst%4:
		return widenASCIIBothAligned(dst, src, int(alignSrc))
	case alignSrc <= alignDst:
		return widenASCIISrcAligned(dst, src, int(alignSrc))
	default:
		return widenASCIIDstAligned(dst, src, int(alignDst))
	}
}

// widenStrideTail finishes a widen after the bulk loop: per-unit test and
// zero-extend from i. Shared by every variant.
func widenStrideTail(dst []uint16, src []byte, i int) int {
	for ; i < len(src); i++ {
		b := src[i]
		if b >= 0x80 {
			return i
		}
		dst[i] = uint16(b)
	}
	return -1
}

// widenASCIIBothAligned assumes source loads and destination stores are both
// word-aligned after a pro-unit prologue. It runs the unrolled double stride
// (32 source bytes, 64 destination bytes per iteration) with block stores,
// then single strides near the tail.
//
//go:nocheckptr
func widenASCIIBothAligned(dst []uint16, src []byte, pro int) int {
	n := len(src)
	i := 0
	pro = min(pro, n)
	for ; i < pro; i++ {
		b := src[i]
		if b >= 0x80 {
			return i
		}
		dst[i] = uint16(b)
	}

	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	for i+doubleStrideBytes <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)))
		b := (*[2]uint64)(unsafe.Add(sp, uintptr(i)+strideBytes))
		if (a[0]|a[1]|b[0]|b[1])&hiBits8 != 0 {
			break
		}
		*(*[4]uint64)(unsafe.Add(dp, uintptr(i)*2)) = [4]uint64{
			spreadLoBytes(a[0]), spreadHiBytes(a[0]),
			spreadLoBytes(a[1]), spreadHiBytes(a[1]),
		}
		*(*[4]uint64)(unsafe.Add(dp, uintptr(i)*2+doubleStrideBytes)) = [4]uint64{
			spreadLoBytes(b[0]), spreadHiBytes(b[0]),
			spreadLoBytes(b[1]), spreadHiBytes(b[1]),
		}
		i += doubleStrideBytes
	}

	for i+strideBytes <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)))
		if (a[0]|a[1])&hiBits8 != 0 {
			break
		}
		*(*[4]uint64)(unsafe.Add(dp, uintptr(i)*2)) = [4]uint64{
			spreadLoBytes(a[0]), spreadHiBytes(a[0]),
			spreadLoBytes(a[1]), spreadHiBytes(a[1]),
		}
		i += strideBytes
	}

	return widenStrideTail(dst, src, i)
}

// widenASCIISrcAligned assumes aligned source loads; destination stores go
// through word-sized unaligned stores.
//
//go:nocheckptr
func widenASCIISrcAligned(dst []uint16, src []byte, pro int) int {
	n := len(src)
	i := 0
	pro = min(pro, n)
	for ; i < pro; i++ {
		b := src[i]
		if b >= 0x80 {
			return i
		}
		dst[i] = uint16(b)
	}

	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	for i+strideBytes <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)))
		if (a[0]|a[1])&hiBits8 != 0 {
			break
		}
		off := uintptr(i) * 2
		storeWord(dp, off, spreadLoBytes(a[0]))
		storeWord(dp, off+wordBytes, spreadHiBytes(a[0]))
		storeWord(dp, off+2*wordBytes, spreadLoBytes(a[1]))
		storeWord(dp, off+3*wordBytes, spreadHiBytes(a[1]))
		i += strideBytes
	}

	return widenStrideTail(dst, src, i)
}

// widenASCIIDstAligned assumes aligned destination stores; source loads are
// word-sized unaligned loads.
//
//go:nocheckptr
func widenASCIIDstAligned(dst []uint16, src []byte, pro int) int {
	n := len(src)
	i := 0
	pro = min(pro, n)
	for ; i < pro; i++ {
		b := src[i]
		if b >= 0x80 {
			return i
		}
		dst[i] = uint16(b)
	}

	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	for i+strideBytes <= n {
		w0 := loadWord(sp, uintptr(i))
		w1 := loadWord(sp, uintptr(i)+wordBytes)
		if (w0|w1)&hiBits8 != 0 {
			break
		}
		*(*[4]uint64)(unsafe.Add(dp, uintptr(i)*2)) = [4]uint64{
			spreadLoBytes(w0), spreadHiBytes(w0),
			spreadLoBytes(w1), spreadHiBytes(w1),
		}
		i += strideBytes
	}

	return widenStrideTail(dst, src, i)
}

// widenASCIIUnaligned runs single strides from index 0 with no prologue.
// Used when the input is too short for an alignment prologue to pay off.
//
//go:nocheckptr
func widenASCIIUnaligned(dst []uint16, src []byte) int {
	n := len(src)
	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	i := 0
	for i+strideBytes <= n {
		w0 := loadWord(sp, uintptr(i))
		w1 := loadWord(sp, uintptr(i)+wordBytes)
		if (w0|w1)&hiBits8 != 0 {
			break
		}
		off := uintptr(i) * 2
		storeWord(dp, off, spreadLoBytes(w0))
		storeWord(dp, off+wordBytes, spreadHiBytes(w0))
		storeWord(dp, off+2*wordBytes, spreadLoBytes(w1))
		storeWord(dp, off+3*wordBytes, spreadHiBytes(w1))
		i += strideBytes
	}

	return widenStrideTail(dst, src, i)
}

// narrowBasicLatinWide mirrors widenASCIIWide's one-shot alignment dispatch
// with the operand roles swapped: source loads sit at byte address sp+2i
// (aligned at i = alignSrc mod 4), destination stores at dp+i (aligned at
// i = alignDst mod 8). Jointly satisfiable exactly when alignDst = alignSrc
// (mod 4).
func narrowBasicLatinWide(dst []byte, src []uint16) int {
	_ = dst[:len(src)] // every variant stores through raw pointers
	if len(src) < wideMinLen {
		return narrowBasicLatinUnaligned(dst, src)
	}
	alignSrc := align.Until(uintptr(unsafe.Pointer(unsafe.SliceData(src))), wordBytes) / 2
	alignDst := align.Until(uintptr(unsafe.Pointer(unsafe.SliceData(dst))), wordBytes)

	switch {
	case alignDst%4 == alignSrc%4:
		return narrowBothAligned(dst, src, int(alignDst))
	case alignSrc <= alignDst:
		return narrowSrcAligned(dst, src, int(alignSrc))
	default:
		return narrowDstAligned(dst, src, int(alignDst))
	}
}

// narrowStrideTail finishes a narrow after the bulk loop: per-unit test and
// truncate from i. A stride rejected by the bulk loop re-enters here at its
// first unit, so a dirty stride never commits partial lanes out of order.
func narrowStrideTail(dst []byte, src []uint16, i int) int {
	for ; i < len(src); i++ {
		u := src[i]
		if u > 0x7F {
			return i
		}
		dst[i] = byte(u)
	}
	return -1
}

// narrowBothAligned assumes aligned source loads and destination stores after
// a pro-unit prologue, and runs the unrolled double stride (16 units in,
// 16 bytes out per iteration).
//
//go:nocheckptr
func narrowBothAligned(dst []byte, src []uint16, pro int) int {
	n := len(src)
	i := 0
	pro = min(pro, n)
	for ; i < pro; i++ {
		u := src[i]
		if u > 0x7F {
			return i
		}
		dst[i] = byte(u)
	}

	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	for i+2*strideUnits <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)*2))
		b := (*[2]uint64)(unsafe.Add(sp, uintptr(i)*2+strideBytes))
		if (a[0]|a[1]|b[0]|b[1])&hiBits16 != 0 {
			break
		}
		*(*[2]uint64)(unsafe.Add(dp, uintptr(i))) = [2]uint64{
			packLanes(a[0]) | packLanes(a[1])<<32,
			packLanes(b[0]) | packLanes(b[1])<<32,
		}
		i += 2 * strideUnits
	}

	for i+strideUnits <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)*2))
		if (a[0]|a[1])&hiBits16 != 0 {
			break
		}
		storeWord(dp, uintptr(i), packLanes(a[0])|packLanes(a[1])<<32)
		i += strideUnits
	}

	return narrowStrideTail(dst, src, i)
}

// narrowSrcAligned assumes aligned source loads; stores are unaligned.
//
//go:nocheckptr
func narrowSrcAligned(dst []byte, src []uint16, pro int) int {
	n := len(src)
	i := 0
	pro = min(pro, n)
	for ; i < pro; i++ {
		u := src[i]
		if u > 0x7F {
			return i
		}
		dst[i] = byte(u)
	}

	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	for i+strideUnits <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)*2))
		if (a[0]|a[1])&hiBits16 != 0 {
			break
		}
		storeWord(dp, uintptr(i), packLanes(a[0])|packLanes(a[1])<<32)
		i += strideUnits
	}

	return narrowStrideTail(dst, src, i)
}

// narrowDstAligned assumes aligned destination stores; loads are unaligned.
//
//go:nocheckptr
func narrowDstAligned(dst []byte, src []uint16, pro int) int {
	n := len(src)
	i := 0
	pro = min(pro, n)
	for ; i < pro; i++ {
		u := src[i]
		if u > 0x7F {
			return i
		}
		dst[i] = byte(u)
	}

	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	for i+strideUnits <= n {
		w0 := loadWord(sp, uintptr(i)*2)
		w1 := loadWord(sp, uintptr(i)*2+wordBytes)
		if (w0|w1)&hiBits16 != 0 {
			break
		}
		storeWord(dp, uintptr(i), packLanes(w0)|packLanes(w1)<<32)
		i += strideUnits
	}

	return narrowStrideTail(dst, src, i)
}

// narrowBasicLatinUnaligned runs single strides from index 0, no prologue.
//
//go:nocheckptr
func narrowBasicLatinUnaligned(dst []byte, src []uint16) int {
	n := len(src)
	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	i := 0
	for i+strideUnits <= n {
		w0 := loadWord(sp, uintptr(i)*2)
		w1 := loadWord(sp, uintptr(i)*2+wordBytes)
		if (w0|w1)&hiBits16 != 0 {
			break
		}
		storeWord(dp, uintptr(i), packLanes(w0)|packLanes(w1)<<32)
		i += strideUnits
	}

	return narrowStrideTail(dst, src, i)
}

// widenLatin1Wide widens unconditionally: no lane can fail, so the bulk loop
// has no test and runs the unrolled double stride for its whole length. The
// prologue aligns the source.
//
//go:nocheckptr
func widenLatin1Wide(dst []uint16, src []byte) {
	n := len(src)
	_ = dst[:n]

	i := 0
	pro := min(int(align.Until(uintptr(unsafe.Pointer(unsafe.SliceData(src))), wordBytes)), n)
	for ; i < pro; i++ {
		dst[i] = uint16(src[i])
	}

	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	for i+doubleStrideBytes <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)))
		b := (*[2]uint64)(unsafe.Add(sp, uintptr(i)+strideBytes))
		off := uintptr(i) * 2
		storeWord(dp, off, spreadLoBytes(a[0]))
		storeWord(dp, off+wordBytes, spreadHiBytes(a[0]))
		storeWord(dp, off+2*wordBytes, spreadLoBytes(a[1]))
		storeWord(dp, off+3*wordBytes, spreadHiBytes(a[1]))
		storeWord(dp, off+4*wordBytes, spreadLoBytes(b[0]))
		storeWord(dp, off+5*wordBytes, spreadHiBytes(b[0]))
		storeWord(dp, off+6*wordBytes, spreadLoBytes(b[1]))
		storeWord(dp, off+7*wordBytes, spreadHiBytes(b[1]))
		i += doubleStrideBytes
	}

	for ; i < n; i++ {
		dst[i] = uint16(src[i])
	}
}

// narrowLatin1Wide narrows unconditionally. packLanes already performs the
// documented truncation (it keeps only the low byte of every lane), so the
// bulk loop is the validating narrow minus the test.
//
//go:nocheckptr
func narrowLatin1Wide(dst []byte, src []uint16) {
	n := len(src)
	_ = dst[:n]

	i := 0
	pro := min(int(align.Until(uintptr(unsafe.Pointer(unsafe.SliceData(src))), wordBytes)/2), n)
	for ; i < pro; i++ {
		dst[i] = byte(src[i])
	}

	sp := unsafe.Pointer(unsafe.SliceData(src))
	dp := unsafe.Pointer(unsafe.SliceData(dst))

	for i+2*strideUnits <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)*2))
		b := (*[2]uint64)(unsafe.Add(sp, uintptr(i)*2+strideBytes))
		storeWord(dp, uintptr(i), packLanes(a[0])|packLanes(a[1])<<32)
		storeWord(dp, uintptr(i)+wordBytes, packLanes(b[0])|packLanes(b[1])<<32)
		i += 2 * strideUnits
	}

	for i+strideUnits <= n {
		a := (*[2]uint64)(unsafe.Add(sp, uintptr(i)*2))
		storeWord(dp, uintptr(i), packLanes(a[0])|packLanes(a[1])<<32)
		i += strideUnits
	}

	for ; i < n; i++ {
		dst[i] = byte(src[i])
	}
}
