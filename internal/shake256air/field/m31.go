// Package field implements the Mersenne-31 base field and its degree-4
// secure extension, plus SIMD-packed columns of the base field.
//
// The base field is M31 = GF(2^31 - 1). It is chosen to keep the byte-level
// arithmetization of SHAKE-256 cheap (every value arithmetized here is at
// most a byte, far below the modulus), not because M31 is convenient for
// the commitment/FRI layer — it is not, see internal/shake256air/driver.
package field

// P is the Mersenne-31 prime, 2^31 - 1.
const P uint32 = (1 << 31) - 1

// M31 is an element of GF(2^31 - 1), always kept in [0, P) canonical form.
type M31 uint32

// Zero is the additive identity.
var Zero = M31(0)

// One is the multiplicative identity.
var One = M31(1)

// New reduces an arbitrary uint64 into canonical M31 form.
func New(v uint64) M31 {
	return reduce64(v)
}

// FromByte lifts a single byte into M31; every value this package's callers
// arithmetize over is a byte, so this is the common constructor.
func FromByte(b byte) M31 {
	return M31(b)
}

func reduce64(v uint64) M31 {
	// p = 2^31 - 1, so v mod p == (v mod 2^31) + (v div 2^31), repeated
	// until the result fits below 2^31, then one conditional subtraction.
	for v>>31 != 0 {
		v = (v & P64) + (v >> 31)
	}
	if uint32(v) >= P {
		return M31(uint32(v) - P)
	}
	return M31(v)
}

const P64 = uint64(P)

// Add returns x+y mod P.
func (x M31) Add(y M31) M31 {
	s := uint32(x) + uint32(y)
	if s >= P {
		s -= P
	}
	return M31(s)
}

// Sub returns x-y mod P.
func (x M31) Sub(y M31) M31 {
	if uint32(x) >= uint32(y) {
		return M31(uint32(x) - uint32(y))
	}
	return M31(P - uint32(y) + uint32(x))
}

// Neg returns -x mod P.
func (x M31) Neg() M31 {
	if x == 0 {
		return 0
	}
	return M31(P - uint32(x))
}

// Mul returns x*y mod P.
func (x M31) Mul(y M31) M31 {
	return reduce64(uint64(x) * uint64(y))
}

// Square returns x*x mod P.
func (x M31) Square() M31 {
	return x.Mul(x)
}

// Pow returns x^e mod P via square-and-multiply.
func (x M31) Pow(e uint32) M31 {
	result := One
	base := x
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

// Inverse returns x^-1 mod P via Fermat's little theorem. Panics on zero,
// matching this package's other zero-division behavior: callers that can
// encounter zero (e.g. batch inversion, EF denominators) guard explicitly.
func (x M31) Inverse() M31 {
	if x == 0 {
		panic("field: inverse of zero")
	}
	return x.Pow(P - 2)
}

// IsZero reports whether x is the additive identity.
func (x M31) IsZero() bool {
	return x == 0
}

// Uint32 returns the canonical representative of x.
func (x M31) Uint32() uint32 {
	return uint32(x)
}
