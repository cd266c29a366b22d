package field

// CM31 is the degree-2 extension GF(P)[i]/(i^2+1), the first stage of the
// tower used to build the secure extension field EF.
type CM31 struct {
	A, B M31 // A + B*i
}

var CM31Zero = CM31{}
var CM31One = CM31{A: One}

func NewCM31(a, b M31) CM31 {
	return CM31{A: a, B: b}
}

func (x CM31) Add(y CM31) CM31 {
	return CM31{A: x.A.Add(y.A), B: x.B.Add(y.B)}
}

func (x CM31) Sub(y CM31) CM31 {
	return CM31{A: x.A.Sub(y.A), B: x.B.Sub(y.B)}
}

func (x CM31) Neg() CM31 {
	return CM31{A: x.A.Neg(), B: x.B.Neg()}
}

func (x CM31) Mul(y CM31) CM31 {
	// (a+bi)(c+di) = (ac-bd) + (ad+bc)i
	ac := x.A.Mul(y.A)
	bd := x.B.Mul(y.B)
	ad := x.A.Mul(y.B)
	bc := x.B.Mul(y.A)
	return CM31{A: ac.Sub(bd), B: ad.Add(bc)}
}

func (x CM31) MulM31(s M31) CM31 {
	return CM31{A: x.A.Mul(s), B: x.B.Mul(s)}
}

// Norm returns A^2+B^2, the M31-valued norm used for inversion.
func (x CM31) Norm() M31 {
	return x.A.Square().Add(x.B.Square())
}

func (x CM31) IsZero() bool {
	return x.A.IsZero() && x.B.IsZero()
}

func (x CM31) Inverse() CM31 {
	if x.IsZero() {
		panic("field: inverse of zero CM31")
	}
	nInv := x.Norm().Inverse()
	return CM31{A: x.A.Mul(nInv), B: x.B.Neg().Mul(nInv)}
}

// qm31R is the non-residue u^2 = 2+i used to build QM31 over CM31, matching
// the standard circle-STARK secure-field tower (same construction the rest
// of the retrieval pack's STARK code assumes when it refers to "the
// extension field").
var qm31R = CM31{A: 2, B: 1}

// QM31 is the degree-4 secure extension field EF = CM31[u]/(u^2 - (2+i)),
// used for lookup denominators and claimed logup sums.
type QM31 struct {
	A, B CM31 // A + B*u
}

var QM31Zero = QM31{}
var QM31One = QM31{A: CM31One}

func NewQM31(a, b CM31) QM31 {
	return QM31{A: a, B: b}
}

// FromM31 embeds a base-field element into EF.
func FromM31(v M31) QM31 {
	return QM31{A: CM31{A: v}}
}

func (x QM31) Add(y QM31) QM31 {
	return QM31{A: x.A.Add(y.A), B: x.B.Add(y.B)}
}

func (x QM31) Sub(y QM31) QM31 {
	return QM31{A: x.A.Sub(y.A), B: x.B.Sub(y.B)}
}

func (x QM31) Neg() QM31 {
	return QM31{A: x.A.Neg(), B: x.B.Neg()}
}

func (x QM31) Mul(y QM31) QM31 {
	// (a+bu)(c+du) = (ac + bd*R) + (ad+bc)u
	ac := x.A.Mul(y.A)
	bd := x.B.Mul(y.B)
	ad := x.A.Mul(y.B)
	bc := x.B.Mul(y.A)
	return QM31{A: ac.Add(bd.Mul(qm31R)), B: ad.Add(bc)}
}

func (x QM31) MulM31(s M31) QM31 {
	return QM31{A: x.A.MulM31(s), B: x.B.MulM31(s)}
}

func (x QM31) IsZero() bool {
	return x.A.IsZero() && x.B.IsZero()
}

func (x QM31) Equal(y QM31) bool {
	return x.A == y.A && x.B == y.B
}

// norm returns A^2 - B^2*R, a CM31 value, such that x * conjugate(x) == norm.
func (x QM31) norm() CM31 {
	return x.A.Mul(x.A).Sub(x.B.Mul(x.B).Mul(qm31R))
}

func (x QM31) Inverse() QM31 {
	if x.IsZero() {
		panic("field: inverse of zero QM31")
	}
	nInv := x.norm().Inverse()
	return QM31{A: x.A.Mul(nInv), B: x.B.Neg().Mul(nInv)}
}

// BatchInverse inverts every element of xs in place using Montgomery's
// trick: one accumulated product, a single inversion, then back-substitution.
// Elements of xs must all be nonzero.
func BatchInverse(xs []QM31) []QM31 {
	n := len(xs)
	if n == 0 {
		return nil
	}
	prefix := make([]QM31, n)
	acc := QM31One
	for i, x := range xs {
		prefix[i] = acc
		acc = acc.Mul(x)
	}
	accInv := acc.Inverse()
	out := make([]QM31, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = accInv.Mul(prefix[i])
		accInv = accInv.Mul(xs[i])
	}
	return out
}
