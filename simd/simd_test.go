package simd

import "testing"

// TestSpreadLoBytes verifies the widening shuffle produces the little-endian
// memory image of four zero-extended code units.
func TestSpreadLoBytes(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want uint64
	}{
		{"zero", 0, 0},
		{"single_low", 0x00000041, 0x0000000000000041},
		{"ascending", 0x44434241, 0x0044004300420041},
		{"high_bytes_ignored", 0xFFFFFFFF44434241, 0x0044004300420041},
		{"all_ff", 0x00000000FFFFFFFF, 0x00FF00FF00FF00FF},
		{"alternating", 0x00000000A05F80FF, 0x00A0005F008000FF},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := spreadLoBytes(tc.in); got != tc.want {
				t.Errorf("spreadLoBytes(%#016x) = %#016x, want %#016x", tc.in, got, tc.want)
			}
		})
	}
}

func TestSpreadHiBytes(t *testing.T) {
	in := uint64(0x4847464544434241)
	want := uint64(0x0048004700460045)
	if got := spreadHiBytes(in); got != want {
		t.Errorf("spreadHiBytes(%#016x) = %#016x, want %#016x", in, got, want)
	}
}

// TestPackLanes verifies the narrowing shuffle keeps only low lane bytes.
func TestPackLanes(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want uint64
	}{
		{"zero", 0, 0},
		{"ascending", 0x0044004300420041, 0x44434241},
		{"high_lane_bytes_dropped", 0xFF44FF43FF42FF41, 0x44434241},
		{"truncation", 0x0141014101410141, 0x41414141},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := packLanes(tc.in); got != tc.want {
				t.Errorf("packLanes(%#016x) = %#016x, want %#016x", tc.in, got, tc.want)
			}
		})
	}
}

// Spread then pack must reproduce the original four bytes for every byte
// value, including values with the high bit set (the Latin-1 paths rely on
// this).
func TestSpreadPackRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		w := uint64(b) * 0x01010101 // replicate b in the low four bytes
		if got := packLanes(spreadLoBytes(w)); got != w {
			t.Fatalf("byte %#02x: pack(spread(%#x)) = %#x", b, w, got)
		}
	}
}

// TestFirstHighByte plants an offender in every lane and checks the lowest
// lane always wins.
func TestFirstHighByte(t *testing.T) {
	for lane := 0; lane < 8; lane++ {
		w := uint64(0x80) << (8 * lane)
		if got := firstHighByte(w & hiBits8); got != lane {
			t.Errorf("lane %d alone: firstHighByte = %d", lane, got)
		}
		// All lanes from `lane` upward set: still reports `lane`.
		m := (hiBits8 << (8 * lane)) & hiBits8
		if got := firstHighByte(m); got != lane {
			t.Errorf("lanes %d..7 set: firstHighByte = %d, want %d", lane, got, lane)
		}
	}
}

func TestFirstHighLane(t *testing.T) {
	for lane := 0; lane < 4; lane++ {
		for _, unit := range []uint64{0x0080, 0x0100, 0xFFFF} {
			w := unit << (16 * lane)
			if got := firstHighLane(w & hiBits16); got != lane {
				t.Errorf("unit %#04x in lane %d: firstHighLane = %d", unit, lane, got)
			}
		}
	}
}

// hiBits16 must be zero for every Basic Latin unit and non-zero for every
// unit above 0x7F, in any lane.
func TestHiBits16Boundary(t *testing.T) {
	for u := uint64(0); u <= 0xFFFF; u++ {
		got := u&hiBits16 != 0
		want := u > 0x7F
		if got != want {
			t.Fatalf("unit %#04x: mask hit = %v, want %v", u, got, want)
		}
	}
}
