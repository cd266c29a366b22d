package driver

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"

	"github.com/vybium/shake256air/internal/shake256air/field"
)

// Channel is the Fiat-Shamir transcript used to draw relation coefficients:
// a running hash state with two selectable backends (blake2s and sha3),
// matching config.Config.HashFunction.
type Channel struct {
	state    [32]byte
	hashFunc string
}

// NewChannel builds a channel seeded from an initial mix (typically the
// component claims and public data digest). hashFunc is "blake2s" (default)
// or "sha3".
func NewChannel(hashFunc string, seed []byte) *Channel {
	if hashFunc == "" {
		hashFunc = "blake2s"
	}
	c := &Channel{hashFunc: hashFunc}
	c.state = c.hash(seed)
	return c
}

func (c *Channel) hash(data []byte) [32]byte {
	switch c.hashFunc {
	case "sha3":
		return sha3.Sum256(data)
	default:
		return blake2s.Sum256(data)
	}
}

// Mix folds additional data (a commitment digest, a claimed sum's encoding)
// into the transcript state.
func (c *Channel) Mix(data []byte) {
	buf := append(append([]byte(nil), c.state[:]...), data...)
	c.state = c.hash(buf)
}

// MixU64 mixes a little-endian encoded counter or nonce into the transcript.
func (c *Channel) MixU64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	c.Mix(buf[:])
}

// drawBytes advances the transcript and returns 32 fresh bytes, without
// mixing any new statement data in (a plain "squeeze").
func (c *Channel) drawBytes() [32]byte {
	c.state = c.hash(append([]byte("draw"), c.state[:]...))
	return c.state
}

// DrawM31 draws one base-field element.
func (c *Channel) DrawM31() field.M31 {
	b := c.drawBytes()
	return field.New(binary.LittleEndian.Uint64(b[:8]))
}

// DrawQM31 draws one secure-field element (four base-field draws).
func (c *Channel) DrawQM31() field.QM31 {
	return field.QM31{
		A: field.CM31{A: c.DrawM31(), B: c.DrawM31()},
		B: field.CM31{A: c.DrawM31(), B: c.DrawM31()},
	}
}

// Grind performs proof-of-work grinding: it searches for the smallest
// non-negative nonce such that mixing it into the transcript yields a
// digest with at least `bits` leading zero bits, mixes that nonce in, and
// returns it. With bits == 0 no grinding is done: it returns 0 and mixes
// nothing. This stands in for a real STARK driver's grinding step; the
// driver proper is outside this module.
func (c *Channel) Grind(bits uint) uint64 {
	if bits == 0 {
		return 0
	}
	base := c.state
	for nonce := uint64(0); ; nonce++ {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], nonce)
		candidate := c.hash(append(append([]byte(nil), base[:]...), buf[:]...))
		if leadingZeroBits(candidate[:]) >= bits {
			c.MixU64(nonce)
			return nonce
		}
	}
}

// CheckGrind reports whether nonce, mixed against the channel's current
// state, meets the grinding difficulty bits — without searching for it.
// The verifier's counterpart to Grind: it already has the prover's claimed
// nonce and only needs to confirm it, then mix it in identically so the
// rest of the transcript (any draws after the grind point) lines back up.
func (c *Channel) CheckGrind(nonce uint64, bits uint) bool {
	if bits == 0 {
		return nonce == 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], nonce)
	candidate := c.hash(append(append([]byte(nil), c.state[:]...), buf[:]...))
	if leadingZeroBits(candidate[:]) < bits {
		return false
	}
	c.MixU64(nonce)
	return true
}

func leadingZeroBits(data []byte) uint {
	var n uint
	for _, b := range data {
		if b == 0 {
			n += 8
			continue
		}
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if b&mask != 0 {
				return n
			}
			n++
		}
	}
	return n
}

// State exposes the current transcript digest, for embedding into a Proof.
func (c *Channel) State() [32]byte {
	return c.state
}
