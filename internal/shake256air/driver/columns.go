package driver

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2s"

	"github.com/vybium/shake256air/internal/shake256air/field"
)

// ColumnDigest hashes one SIMD-packed trace column into a commitment leaf,
// streaming the column's little-endian encoding through blake2s so a
// multi-megabyte column never needs a serialized copy in memory.
func ColumnDigest(col []field.PackedM31) [32]byte {
	h, _ := blake2s.New256(nil)
	var buf [field.LaneWidth * 4]byte
	for _, vec := range col {
		for i, v := range vec {
			binary.LittleEndian.PutUint32(buf[4*i:], v.Uint32())
		}
		h.Write(buf[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// MultiplicityDigest hashes a provider table's accumulated multiplicity
// counts — the one prover-written column of an otherwise preprocessed table.
func MultiplicityDigest(counts []uint32) [32]byte {
	h, _ := blake2s.New256(nil)
	var buf [4]byte
	for _, c := range counts {
		binary.LittleEndian.PutUint32(buf[:], c)
		h.Write(buf[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
