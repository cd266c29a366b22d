// Package rowops holds the small set of per-row byte arithmetic helpers
// shared, verbatim, between trace generation and algebraic evaluation for
// every component in this module. Using the same function from both call
// sites is what keeps trace-fill and evaluator index discipline in lockstep
// (see keccak_round.go and the trace package of the same name): any
// divergence between how a byte operation is computed while building the
// witness and how it is re-derived while checking it would silently break
// the lookup argument.
package rowops

import "github.com/vybium/shake256air/internal/shake256air/field"

// XorByte returns a^b at byte granularity. The result is only ever asserted
// correct via a provider-table lookup (xor_8_8); this function exists so
// trace generation and the offline evaluator compute the identical value.
func XorByte(a, b field.M31) field.M31 {
	return field.M31(a.Uint32() ^ b.Uint32())
}

// Xor3Byte returns a^b^c at byte granularity (backed by the xor_8_8_8 table).
func Xor3Byte(a, b, c field.M31) field.M31 {
	return field.M31(a.Uint32() ^ b.Uint32() ^ c.Uint32())
}

// ChiByte returns a ^ (^b & c) at byte granularity (backed by chi_8_8_8).
func ChiByte(a, b, c field.M31) field.M31 {
	notB := (^b.Uint32()) & 0xFF
	return field.M31(a.Uint32() ^ (notB & c.Uint32()))
}

// RcTriples groups the lo-limb range-check values produced by RotrFu64 into
// the 3-wide calls the rc_7_7_7 table expects (8 limbs batched 3+3+2, the
// last call padded with a zero per the reference rotation contract).
type RcTriples [3][3]field.M31

// RotrFu64 rotates an 8-byte little-endian word `a` right by n bits (0 <=
// n < 64) and returns:
//   - out: the rotated word, one M31 per byte
//   - hi:  the high (8-r) bits of each post-byte-rotation byte, as a
//     witness the range-check lookups below attest to
//   - lo:  the low r bits of each such byte (hi*2^r + lo == the rotated byte)
//   - rc:  the three rc_7_7_7 lookup tuples proving every lo value is a
//     genuine r-bit quantity (as `2^r-1 - lo`, so a valid split ranges over
//     the same [0, 2^7) table window rc_7_7_7 preprocesses regardless of r)
//
// When n is a multiple of 8 (r == 0) no bit-level split is needed: hi==out,
// lo is all zero, and rc is the zero-filled (meaningless) triples — callers
// must not emit rc_7_7_7 requests in that case.
func RotrFu64(a [8]field.M31, n uint) (out, hi, lo [8]field.M31, rc RcTriples) {
	q := n / 8
	r := n % 8

	var rotated [8]field.M31
	for j := 0; j < 8; j++ {
		rotated[j] = a[(j+int(q))%8]
	}

	if r == 0 {
		return rotated, rotated, [8]field.M31{}, RcTriples{}
	}

	shiftUp := uint32(1) << r
	shiftDown := uint32(1) << (8 - r)
	ur := field.FromByte(byte(shiftUp - 1))

	for i := 0; i < 8; i++ {
		v := rotated[i].Uint32()
		hi[i] = field.FromByte(byte(v >> r))
		lo[i] = field.FromByte(byte(v & (shiftUp - 1)))
	}
	for i := 0; i < 8; i++ {
		out[i] = hi[i].Add(lo[(i+1)%8].Mul(field.FromByte(byte(shiftDown))))
	}

	rc[0] = [3]field.M31{ur.Sub(lo[0]), ur.Sub(lo[1]), ur.Sub(lo[2])}
	rc[1] = [3]field.M31{ur.Sub(lo[3]), ur.Sub(lo[4]), ur.Sub(lo[5])}
	rc[2] = [3]field.M31{ur.Sub(lo[6]), ur.Sub(lo[7]), field.Zero}
	return out, hi, lo, rc
}
