package field

// LaneWidth is the SIMD packing factor used for every trace column in this
// module: L=16 base-field elements share one packed value.
const LaneWidth = 16

// PackedM31 holds LaneWidth base-field elements, one per SIMD lane. Trace
// columns are stored as []PackedM31 of length 2^(log_size - log2(LaneWidth)).
type PackedM31 [LaneWidth]M31

// Splat builds a packed value with every lane equal to v.
func Splat(v M31) PackedM31 {
	var p PackedM31
	for i := range p {
		p[i] = v
	}
	return p
}

// PackedZero is the all-zero packed value.
var PackedZero = PackedM31{}

// PackedOne has every lane set to one.
var PackedOne = Splat(One)

func (p PackedM31) Add(q PackedM31) PackedM31 {
	var r PackedM31
	for i := range r {
		r[i] = p[i].Add(q[i])
	}
	return r
}

func (p PackedM31) Sub(q PackedM31) PackedM31 {
	var r PackedM31
	for i := range r {
		r[i] = p[i].Sub(q[i])
	}
	return r
}

func (p PackedM31) Mul(q PackedM31) PackedM31 {
	var r PackedM31
	for i := range r {
		r[i] = p[i].Mul(q[i])
	}
	return r
}

func (p PackedM31) Neg() PackedM31 {
	var r PackedM31
	for i := range r {
		r[i] = p[i].Neg()
	}
	return r
}

// MulScalar multiplies every lane by a single base-field scalar.
func (p PackedM31) MulScalar(s M31) PackedM31 {
	var r PackedM31
	for i := range r {
		r[i] = p[i].Mul(s)
	}
	return r
}

// PackColumn packs n rows of a function f(row) into a SIMD-packed column of
// length ceil(n / LaneWidth), zero-filling any final partial vector. This
// mirrors the reference generator's column-packing helper used both for
// preprocessed provider tables and for padding real trace data up to a
// power of two.
func PackColumn(n int, f func(row int) M31) []PackedM31 {
	nVecs := (n + LaneWidth - 1) / LaneWidth
	out := make([]PackedM31, nVecs)
	for vec := 0; vec < nVecs; vec++ {
		var p PackedM31
		for lane := 0; lane < LaneWidth; lane++ {
			row := vec*LaneWidth + lane
			if row < n {
				p[lane] = f(row)
			}
		}
		out[vec] = p
	}
	return out
}
