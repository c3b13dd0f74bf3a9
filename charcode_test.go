package charcode

import (
	"bytes"
	"testing"
)

func repeatAlpha(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'A' + byte(i%26)
	}
	return b
}

// Lengths straddling every internal stride seam: empty, one unit, around one
// 16-byte stride, and around the 32-byte wide-path threshold.
var seamLengths = []int{0, 1, 15, 16, 17, 31, 32, 33, 64, 65, 127, 128, 129}

func TestValidateASCII_Clean(t *testing.T) {
	for _, n := range seamLengths {
		src := repeatAlpha(n)
		if f, found := ValidateASCII(src); found {
			t.Errorf("len %d: unexpected fault %+v", n, f)
		}
	}
}

func TestValidateASCII_FirstMatch(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want Fault
	}{
		{"single_0x80", []byte{0x80}, Fault{0x80, 0}},
		{"offender_last", append(repeatAlpha(63), 0xFF), Fault{0xFF, 63}},
		{"utf8_sequence", []byte("caf\xC3\xA9"), Fault{0xC3, 3}},
		{"two_offenders", []byte("ab\x81cd\x82"), Fault{0x81, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, found := ValidateASCII(tc.src)
			if !found {
				t.Fatal("fault not reported")
			}
			if f != tc.want {
				t.Errorf("got %+v, want %+v", f, tc.want)
			}
			// The contract, spelled out: src[Index] is the reported unit,
			// it is non-ASCII, and everything before it is ASCII.
			if uint16(tc.src[f.Index]) != f.Unit || f.Unit < 0x80 {
				t.Errorf("fault does not point at a non-ASCII byte")
			}
			for i := 0; i < f.Index; i++ {
				if tc.src[i] >= 0x80 {
					t.Errorf("byte %#02x before fault index %d", tc.src[i], f.Index)
				}
			}
		})
	}
}

// The end-to-end scenario: a 32-byte A..Z repeating buffer with byte 9
// replaced by 0xAA.
func TestValidateAndWiden_Scenario(t *testing.T) {
	src := repeatAlpha(32)
	src[9] = 0xAA

	f, found := ValidateASCII(src)
	if !found || f.Unit != 0xAA || f.Index != 9 {
		t.Fatalf("ValidateASCII = %+v found=%v, want unit 0xAA index 9", f, found)
	}

	dst := make([]uint16, len(src))
	f, found = WidenASCII(dst, src)
	if !found || f.Unit != 0xAA || f.Index != 9 {
		t.Fatalf("WidenASCII = %+v found=%v, want unit 0xAA index 9", f, found)
	}
	for i := 0; i < 9; i++ {
		if dst[i] != uint16(src[i]) {
			t.Errorf("dst[%d] = %#04x, want %#04x", i, dst[i], src[i])
		}
	}
}

func TestCopyASCII(t *testing.T) {
	for _, n := range seamLengths {
		src := repeatAlpha(n)
		dst := make([]byte, n)
		if f, found := CopyASCII(dst, src); found {
			t.Fatalf("len %d: unexpected fault %+v", n, f)
		}
		if !bytes.Equal(dst, src) {
			t.Fatalf("len %d: copy mismatch", n)
		}
	}
}

func TestCopyASCII_Partial(t *testing.T) {
	src := repeatAlpha(50)
	src[33] = 0x9C
	dst := make([]byte, len(src))
	f, found := CopyASCII(dst, src)
	if !found || f.Index != 33 || f.Unit != 0x9C {
		t.Fatalf("got %+v found=%v", f, found)
	}
	if !bytes.Equal(dst[:33], src[:33]) {
		t.Error("validated prefix not copied")
	}
}

// Round trip: every ASCII-only buffer survives WidenASCII then
// NarrowBasicLatin unchanged.
func TestASCIIWidenNarrowRoundTrip(t *testing.T) {
	for _, n := range seamLengths {
		src := repeatAlpha(n)
		wide := make([]uint16, n)
		if _, found := WidenASCII(wide, src); found {
			t.Fatalf("len %d: widen fault", n)
		}
		back := make([]byte, n)
		if _, found := NarrowBasicLatin(back, wide); found {
			t.Fatalf("len %d: narrow fault", n)
		}
		if !bytes.Equal(back, src) {
			t.Fatalf("len %d: round trip mismatch", n)
		}
	}
}

func TestNarrowBasicLatin_SpecCase(t *testing.T) {
	src := []uint16{0x41, 0x42, 0x100, 0x43}
	dst := make([]byte, len(src))
	f, found := NarrowBasicLatin(dst, src)
	if !found || f.Unit != 0x100 || f.Index != 2 {
		t.Fatalf("got %+v found=%v, want unit 0x100 index 2", f, found)
	}
	if dst[0] != 0x41 || dst[1] != 0x42 {
		t.Errorf("validated prefix = % 02x, want 41 42", dst[:2])
	}
}

// Round trip: every byte value 0-255 survives WidenLatin1 then NarrowLatin1.
func TestLatin1RoundTrip(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}
	wide := make([]uint16, len(src))
	WidenLatin1(wide, src)
	for i, b := range src {
		if wide[i] != uint16(b) {
			t.Fatalf("wide[%d] = %#04x, want %#04x", i, wide[i], b)
		}
	}
	back := make([]byte, len(src))
	NarrowLatin1(back, wide)
	if !bytes.Equal(back, src) {
		t.Error("round trip mismatch")
	}
}

// The documented truncation: NarrowLatin1 keeps the low byte of units above
// 0xFF instead of failing.
func TestNarrowLatin1_Truncation(t *testing.T) {
	src := []uint16{0x0141, 0x1041, 0xFFFF, 0x0100}
	want := []byte{0x41, 0x41, 0xFF, 0x00}
	dst := make([]byte, len(src))
	NarrowLatin1(dst, src)
	if !bytes.Equal(dst, want) {
		t.Errorf("got % 02x, want % 02x", dst, want)
	}
}

func TestEmptyBuffers(t *testing.T) {
	if _, found := ValidateASCII(nil); found {
		t.Error("ValidateASCII(nil) reported a fault")
	}
	if _, found := CopyASCII(nil, nil); found {
		t.Error("CopyASCII(nil, nil) reported a fault")
	}
	if _, found := WidenASCII(nil, nil); found {
		t.Error("WidenASCII(nil, nil) reported a fault")
	}
	if _, found := NarrowBasicLatin(nil, nil); found {
		t.Error("NarrowBasicLatin(nil, nil) reported a fault")
	}
	WidenLatin1(nil, nil)
	NarrowLatin1(nil, nil)
}

// A destination longer than the source is fine; only the first len(src)
// positions are written.
func TestOversizedDestination(t *testing.T) {
	src := repeatAlpha(10)
	dst := make([]uint16, 20)
	for i := range dst {
		dst[i] = 0xBEEF
	}
	if _, found := WidenASCII(dst, src); found {
		t.Fatal("unexpected fault")
	}
	for i := 10; i < 20; i++ {
		if dst[i] != 0xBEEF {
			t.Errorf("dst[%d] clobbered", i)
		}
	}
}

// A short destination must panic before writing anything, per the documented
// precondition.
func TestShortDestinationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected bounds panic")
		}
	}()
	src := repeatAlpha(16)
	dst := make([]uint16, 8)
	WidenASCII(dst, src)
}
