// Package keccakcore implements the byte-level Keccak-f[1600] round function
// and SHAKE-256 absorb/squeeze logic shared between trace generation and
// the algebraic evaluator. Every exported function here is pure and
// side-effect free in its numeric result; the only difference between a
// trace-generation call site and an evaluator call site is what they do
// with the returned RoundWitness (record it into columns, versus recompute
// and compare against committed columns) — the traversal order and the
// arithmetic itself never diverge, which is what keeps the two in lockstep.
package keccakcore

import (
	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/relation"
	"github.com/vybium/shake256air/internal/shake256air/rowops"
)

// TableCall is one byte-level provider-table request emitted while applying
// a round: a named relation (one of the four provider tables) and the
// tuple requested against it. Trace generation turns each into a bump of
// that table's multiplicity counter (no Entry is stored for it; the
// consumer side is derived from those counters); the order calls appear in
// this round's Calls slice is the same
// regardless of whether the round is being generated or re-verified.
type TableCall struct {
	Relation string
	Tuple    []field.M31
}

// State is the 200-byte Keccak-f[1600] state, one M31 per byte, in the
// standard byte layout: the word for lane (x,y) occupies bytes
// [8*(x+5*y), 8*(x+5*y)+8), little-endian.
type State [constants.NBytesInState]field.M31

// NewStateFromMessage builds the initial absorption state for a single
// N_BYTES_IN_MESSAGE-byte message: the message fills the front of the rate,
// the rest of the rate and all of the capacity are zero, then the
// domain-separation suffix and final bit are folded in.
func NewStateFromMessage(msg [constants.NBytesInMessage]byte) State {
	var s State
	for i, b := range msg {
		s[i] = field.FromByte(b)
	}
	s[constants.NBytesInMessage] = rowops.XorByte(s[constants.NBytesInMessage], field.FromByte(constants.DelimitedSuffix))
	s[constants.NBytesInRate-1] = rowops.XorByte(s[constants.NBytesInRate-1], field.FromByte(constants.FinalBit))
	return s
}

// BytesFromState serializes a state back to raw bytes (used by tests to
// check agreement against the reference permutation).
func BytesFromState(s State) [constants.NBytesInState]byte {
	var out [constants.NBytesInState]byte
	for i, v := range s {
		out[i] = byte(v.Uint32())
	}
	return out
}

func laneOf(s State, x, y int) [8]field.M31 {
	var lane [8]field.M31
	base := 8 * (x + 5*y)
	copy(lane[:], s[base:base+8])
	return lane
}

func setLane(s *State, x, y int, lane [8]field.M31) {
	base := 8 * (x + 5*y)
	copy(s[base:base+8], lane[:])
}

// RcRequest is one emitted rc_7_7_7 range-check call (a 3-wide tuple).
type RcRequest [3]field.M31

// RoundWitness records every value produced while applying one
// Keccak-f[1600] round, in the exact order the corresponding lookups must
// be requested, so trace generation and the evaluator can replay it
// identically.
type RoundWitness struct {
	Pre, Post State

	// Theta: per x in [0,5), the two xor_8_8_8 lookups building C[x]; then,
	// per x, the rotate-left-by-1 (rotr by 63) hints for C_rot[x], the
	// rotation of C[(x+1)%5], and the xor_8_8 lookups building D[x].
	ThetaC      [5][8]field.M31
	ThetaCRot   [5][8]field.M31
	ThetaCRotHi [5][8]field.M31
	ThetaCRotRC [5]rowops.RcTriples
	ThetaD      [5][8]field.M31

	// Rho-Pi: per (x,y), the rotr hints placing S[x+5y] into lane
	// (y, (2x+3y)%5) of B, i.e. B[y+5*((2x+3y)%5)].
	RhoHi [5][5][8]field.M31
	RhoRC [5][5]rowops.RcTriples

	// Chi: per (x,y), chi_8_8_8(B[x,y], B[x+1,y], B[x+2,y]).
	// Iota: xor_8_8 on lane (0,0) against the round constant.

	// Calls is every provider-table request this round made, in order.
	Calls []TableCall
}

func (w *RoundWitness) emitXor88(a, b field.M31) {
	w.Calls = append(w.Calls, TableCall{relation.NameXor88, []field.M31{a, b, rowops.XorByte(a, b)}})
}

func (w *RoundWitness) emitXor888(a, b, c field.M31) {
	w.Calls = append(w.Calls, TableCall{relation.NameXor888, []field.M31{a, b, c, rowops.Xor3Byte(a, b, c)}})
}

func (w *RoundWitness) emitChi888(a, b, c field.M31) {
	w.Calls = append(w.Calls, TableCall{relation.NameChi888, []field.M31{a, b, c, rowops.ChiByte(a, b, c)}})
}

func (w *RoundWitness) emitRotrRC(rc rowops.RcTriples, r uint) {
	if r == 0 {
		return
	}
	for _, t := range rc {
		w.Calls = append(w.Calls, TableCall{relation.NameRC777, []field.M31{t[0], t[1], t[2]}})
	}
}

// ApplyRound performs one Keccak-f[1600] round (Theta, Rho-Pi, Chi, Iota)
// on pre, using round constant `round` (0-indexed into constants.IotaRC),
// and returns the post-state together with a full witness of every
// intermediate lookup value produced.
func ApplyRound(pre State, round int) (post State, w RoundWitness) {
	w.Pre = pre

	// Theta.
	var c [5][8]field.M31
	for x := 0; x < 5; x++ {
		l0 := laneOf(pre, x, 0)
		l1 := laneOf(pre, x, 1)
		l2 := laneOf(pre, x, 2)
		l3 := laneOf(pre, x, 3)
		l4 := laneOf(pre, x, 4)
		var inter, full [8]field.M31
		for b := 0; b < 8; b++ {
			inter[b] = rowops.Xor3Byte(l0[b], l1[b], l2[b])
			w.emitXor888(l0[b], l1[b], l2[b])
			full[b] = rowops.Xor3Byte(inter[b], l3[b], l4[b])
			w.emitXor888(inter[b], l3[b], l4[b])
		}
		c[x] = full
		w.ThetaC[x] = full
	}

	var d [5][8]field.M31
	for x := 0; x < 5; x++ {
		rotated, hi, _, rc := rowops.RotrFu64(c[(x+1)%5], 63)
		w.ThetaCRot[x] = rotated
		w.ThetaCRotHi[x] = hi
		w.ThetaCRotRC[x] = rc
		w.emitRotrRC(rc, 63%8)
		for b := 0; b < 8; b++ {
			d[x][b] = rowops.XorByte(c[(x+4)%5][b], rotated[b])
			w.emitXor88(c[(x+4)%5][b], rotated[b])
		}
		w.ThetaD[x] = d[x]
	}

	var afterTheta State
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			lane := laneOf(pre, x, y)
			var out [8]field.M31
			for b := 0; b < 8; b++ {
				out[b] = rowops.XorByte(lane[b], d[x][b])
				w.emitXor88(lane[b], d[x][b])
			}
			setLane(&afterTheta, x, y, out)
		}
	}

	// Rho and Pi.
	var b State
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			lane := laneOf(afterTheta, x, y)
			offset := constants.RhoOffsets[x][y]
			rotr := uint(0)
			if offset != 0 {
				rotr = 64 - offset
			}
			rotated, hi, _, rc := rowops.RotrFu64(lane, rotr)
			w.RhoHi[x][y] = hi
			w.RhoRC[x][y] = rc
			w.emitRotrRC(rc, rotr%8)
			nx, ny := y, (2*x+3*y)%5
			setLane(&b, nx, ny, rotated)
		}
	}

	// Chi.
	var afterChi State
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			b0 := laneOf(b, x, y)
			b1 := laneOf(b, (x+1)%5, y)
			b2 := laneOf(b, (x+2)%5, y)
			var out [8]field.M31
			for i := 0; i < 8; i++ {
				out[i] = rowops.ChiByte(b0[i], b1[i], b2[i])
				w.emitChi888(b0[i], b1[i], b2[i])
			}
			setLane(&afterChi, x, y, out)
		}
	}

	// Iota.
	post = afterChi
	rc := constants.IotaRCBytes(round)
	lane0 := laneOf(post, 0, 0)
	var newLane0 [8]field.M31
	for i := 0; i < 8; i++ {
		newLane0[i] = rowops.XorByte(lane0[i], field.FromByte(rc[i]))
		w.emitXor88(lane0[i], field.FromByte(rc[i]))
	}
	setLane(&post, 0, 0, newLane0)

	w.Post = post
	return post, w
}

// Permute24 applies all 24 rounds of Keccak-f[1600] to the given state and
// returns the intermediate state after every round (length 25: index 0 is
// the input, index i is the state after round i-1), along with the
// per-round witnesses.
func Permute24(initial State) (states [constants.NRounds + 1]State, witnesses [constants.NRounds]RoundWitness) {
	states[0] = initial
	cur := initial
	for round := 0; round < constants.NRounds; round++ {
		next, w := ApplyRound(cur, round)
		witnesses[round] = w
		states[round+1] = next
		cur = next
	}
	return states, witnesses
}
