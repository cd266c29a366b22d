package keccakcore

import "github.com/vybium/shake256air/internal/shake256air/field"

// StateTuple flattens a 200-byte state into a relation tuple.
func StateTuple(s State) []field.M31 {
	out := make([]field.M31, len(s))
	copy(out, s[:])
	return out
}

// RoundTuple builds the 208-wide keccak_round relation tuple: the round
// constant's 8 little-endian bytes followed by the 200-byte state being
// tagged with that round index.
func RoundTuple(rcBytes [8]byte, s State) []field.M31 {
	out := make([]field.M31, 8+len(s))
	for i, b := range rcBytes {
		out[i] = field.FromByte(b)
	}
	copy(out[8:], s[:])
	return out
}

// MessageTuple zero-pads a 72-byte message up to the Shake256 relation's
// 1360-wide arity (the shared relation also carries the 1360-byte output,
// and its width is the max of the two).
func MessageTuple(msg [72]byte) []field.M31 {
	out := make([]field.M31, 1360)
	for i, b := range msg {
		out[i] = field.FromByte(b)
	}
	return out
}

// OutputTuple flattens a 1360-byte SHAKE-256 output into a relation tuple.
func OutputTuple(out [1360]byte) []field.M31 {
	tuple := make([]field.M31, len(out))
	for i, b := range out {
		tuple[i] = field.FromByte(b)
	}
	return tuple
}
