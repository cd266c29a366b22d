// Package constants holds the bit-exact sizes governing the SHAKE-256
// arithmetization: the rate/capacity split, the fixed message and output
// lengths this component proves, and the round count of the Keccak-f[1600]
// permutation.
package constants

const (
	NBytesInU64 = 8
	NRounds     = 24

	NBytesInRate     = 136
	NBytesInCapacity = 64
	NBytesInState    = NBytesInRate + NBytesInCapacity // 200

	NBytesInMessage = 72
	NSqueezing      = 10
	NBytesInOutput  = NSqueezing * NBytesInRate // 1360

	DelimitedSuffix = byte(0x1F)
	FinalBit        = byte(0x80)

	// MaxLogSize bounds every component's log_size; Prove rejects a batch
	// whose keccak_round trace would exceed 2^MaxLogSize rows once padded.
	MaxLogSize = 24
)

// IotaRC holds the 24 Keccak-f[1600] round constants, one per round, in
// little-endian byte order (as XORed into lane (0,0) during Iota).
var IotaRC = [NRounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// IotaRCBytes returns round constant `round` as its 8 little-endian bytes.
func IotaRCBytes(round int) [8]byte {
	var out [8]byte
	v := IotaRC[round]
	for i := 0; i < 8; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}

// RoundTagBytes returns the public tag folded into a keccak_round relation
// tuple alongside the state at round index `round`. For round < NRounds
// this is that round's Iota constant; round == NRounds is the boundary tag
// used for the state produced by the last round, which needs no Iota
// constant of its own but must still be tagged consistently by both the
// keccak and keccak_round components.
func RoundTagBytes(round int) [8]byte {
	if round < NRounds {
		return IotaRCBytes(round)
	}
	return [8]byte{}
}

// RhoOffsets[x][y] is the Rho rotation amount applied to lane (x,y).
var RhoOffsets = [5][5]uint{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}
