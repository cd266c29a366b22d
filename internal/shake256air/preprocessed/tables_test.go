package preprocessed

import (
	"testing"

	"github.com/vybium/shake256air/internal/shake256air/field"
)

func TestIndexTupleRoundTripXor88(t *testing.T) {
	for _, idx := range []int{0, 1, 255, 256, 257, (1 << Xor88LogSize) - 1} {
		tuple := TupleAtXor88(idx)
		got := IndexOfXor88(tuple[0], tuple[1])
		if got != idx {
			t.Fatalf("xor_8_8: index round trip failed at %d, got %d", idx, got)
		}
	}
}

func TestIndexTupleRoundTripXor888(t *testing.T) {
	for _, idx := range []int{0, 1, 300, 70000, (1 << Xor888LogSize) - 1} {
		tuple := TupleAtXor888(idx)
		got := IndexOfXor888(tuple[0], tuple[1], tuple[2])
		if got != idx {
			t.Fatalf("xor_8_8_8: index round trip failed at %d, got %d", idx, got)
		}
	}
}

func TestIndexTupleRoundTripChi888(t *testing.T) {
	for _, idx := range []int{0, 42, 70001, (1 << Chi888LogSize) - 1} {
		tuple := TupleAtChi888(idx)
		got := IndexOfChi888(tuple[0], tuple[1], tuple[2])
		if got != idx {
			t.Fatalf("chi_8_8_8: index round trip failed at %d, got %d", idx, got)
		}
	}
}

func TestIndexTupleRoundTripRC777(t *testing.T) {
	for _, idx := range []int{0, 5, 1000, (1 << RC777LogSize) - 1} {
		tuple := TupleAtRC777(idx)
		got := IndexOfRC777(tuple[0], tuple[1], tuple[2])
		if got != idx {
			t.Fatalf("rc_7_7_7: index round trip failed at %d, got %d", idx, got)
		}
		for _, v := range tuple {
			if v.Uint32() >= 128 {
				t.Fatalf("rc_7_7_7: tuple coordinate %v out of 7-bit range", v)
			}
		}
	}
}

func TestBuildXor88SpotCheck(t *testing.T) {
	tbl := BuildXor88()
	if tbl.LogSize != Xor88LogSize {
		t.Fatalf("LogSize = %d, want %d", tbl.LogSize, Xor88LogSize)
	}
	idx := IndexOfXor88(field.FromByte(0xAA), field.FromByte(0x55))
	vec, lane := idx/field.LaneWidth, idx%field.LaneWidth
	if got := tbl.Res[vec][lane].Uint32(); got != 0xFF {
		t.Fatalf("0xAA^0x55 table entry = %#x, want 0xFF", got)
	}
}

func TestBuildRC777EnumeratesFullDomain(t *testing.T) {
	tbl := BuildRC777()
	n := 1 << RC777LogSize
	if len(tbl.A)*field.LaneWidth < n {
		t.Fatalf("rc_7_7_7 table too small: %d packed rows for %d entries", len(tbl.A), n)
	}
}
