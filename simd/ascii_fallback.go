//go:build (!amd64 && !arm64) || purego

package simd

// On platforms without the wide-stride path (or with the purego build tag),
// the exported operations delegate directly to the portable SWAR
// implementations. Contracts match ascii_wide.go exactly.

// FirstNonASCII returns the index of the first byte >= 0x80 in src, or -1 if
// every byte is ASCII.
func FirstNonASCII(src []byte) int {
	return firstNonASCIIGeneric(src)
}

// CopyASCII copies src into dst while every byte is ASCII, returning -1 on
// full success or the index of the first byte >= 0x80. On failure dst[:index]
// equals src[:index].
//
// len(dst) must be at least len(src); src and dst must not overlap.
func CopyASCII(dst, src []byte) int {
	return copyASCIIGeneric(dst, src)
}

// WidenASCII zero-extends src bytes into dst code units while every byte is
// ASCII, returning -1 on full success or the index of the first byte >= 0x80.
//
// len(dst) must be at least len(src); buffers must not overlap.
func WidenASCII(dst []uint16, src []byte) int {
	return widenASCIIGeneric(dst, src)
}

// NarrowBasicLatin narrows src code units into dst bytes while every unit is
// <= 0x7F, returning -1 on full success or the index of the first unit above
// 0x7F.
//
// len(dst) must be at least len(src); buffers must not overlap.
func NarrowBasicLatin(dst []byte, src []uint16) int {
	return narrowBasicLatinGeneric(dst, src)
}

// WidenLatin1 zero-extends every src byte into a dst code unit. Total; never
// fails.
//
// len(dst) must be at least len(src); buffers must not overlap.
func WidenLatin1(dst []uint16, src []byte) {
	widenLatin1Generic(dst, src)
}

// NarrowLatin1 truncates every src code unit into a dst byte, keeping the low
// byte. Units above 0xFF truncate silently.
//
// len(dst) must be at least len(src); buffers must not overlap.
func NarrowLatin1(dst []byte, src []uint16) {
	narrowLatin1Generic(dst, src)
}
