// Package align provides pointer-alignment arithmetic for the wide-stride
// transcoding paths.
//
// The wide paths inspect buffer alignment exactly once per call and then run
// stride loops that assume it, so these helpers sit on the dispatch edge, not
// inside hot loops. They operate on plain uintptr addresses; size must be a
// power of two.
package align

// Until returns how many bytes separate addr from the next size-aligned
// address. The result is in [0, size) and is 0 when addr is already aligned.
//
//go:inline
func Until(addr, size uintptr) uintptr {
	return -addr & (size - 1)
}

// IsAligned reports whether addr is a multiple of size.
//
//go:inline
func IsAligned(addr, size uintptr) bool {
	return addr&(size-1) == 0
}
