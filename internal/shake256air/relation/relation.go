// Package relation implements the logup lookup-argument relations: named,
// fixed-arity tables that consumers and providers both address by a random
// linear combination of their tuple, drawn once per proof from the
// Fiat-Shamir transcript. A relation closes when the signed sum of
// multiplicity/combine(tuple) over every request in the trace is zero in EF.
package relation

import "github.com/vybium/shake256air/internal/shake256air/field"

// Names and arities of the seven lookup relations this module's components
// communicate over. Shake256 and Keccak bound the message/permutation
// boundaries; KeccakRound chains the 24 per-round sub-components together;
// the remaining four are the byte-level provider tables.
const (
	NameShake256    = "shake256"
	NameKeccak      = "keccak"
	NameKeccakRound = "keccak_round"
	NameXor88       = "xor_8_8"
	NameXor888      = "xor_8_8_8"
	NameChi888      = "chi_8_8_8"
	NameRC777       = "rc_7_7_7"
)

const (
	ArityShake256    = 1360
	ArityKeccak      = 200
	ArityKeccakRound = 208
	ArityXor88       = 3
	ArityXor888      = 4
	ArityChi888      = 4
	ArityRC777       = 3
)

// AllNames lists every relation name, in the order interaction.Draw draws
// them (order matters: it determines what the Fiat-Shamir transcript yields).
var AllNames = []string{NameShake256, NameKeccak, NameKeccakRound, NameXor88, NameXor888, NameChi888, NameRC777}

// ArityOf returns the fixed tuple width for a relation name.
func ArityOf(name string) int {
	switch name {
	case NameShake256:
		return ArityShake256
	case NameKeccak:
		return ArityKeccak
	case NameKeccakRound:
		return ArityKeccakRound
	case NameXor88:
		return ArityXor88
	case NameXor888:
		return ArityXor888
	case NameChi888:
		return ArityChi888
	case NameRC777:
		return ArityRC777
	default:
		panic("relation: unknown relation name " + name)
	}
}

// Drawer is the minimal Fiat-Shamir surface a relation needs: one secure
// field element per tuple coordinate, plus one constant offset. The driver's
// channel implementation satisfies this.
type Drawer interface {
	DrawQM31() field.QM31
}

// Relation holds the random coefficients for one named lookup relation of
// fixed arity. Coefficients are drawn once, at proof start, from the shared
// transcript, and are identical for every request against this relation
// across the whole trace.
type Relation struct {
	Name        string
	offset      field.QM31
	coefficient []field.QM31
}

// Draw creates a new relation of the given arity, drawing `arity+1` secure
// field elements (one combining offset, one coefficient per tuple slot).
func Draw(name string, arity int, ch Drawer) Relation {
	r := Relation{Name: name, coefficient: make([]field.QM31, arity)}
	r.offset = ch.DrawQM31()
	for i := range r.coefficient {
		r.coefficient[i] = ch.DrawQM31()
	}
	return r
}

// Arity returns the fixed tuple width this relation was drawn for.
func (r Relation) Arity() int {
	return len(r.coefficient)
}

// Combine folds a tuple of base-field values into the single EF denominator
// a logup fractional term divides by: offset + sum(coefficient[i]*tuple[i]).
func (r Relation) Combine(tuple []field.M31) field.QM31 {
	if len(tuple) != len(r.coefficient) {
		panic("relation: tuple arity mismatch")
	}
	acc := r.offset
	for i, v := range tuple {
		acc = acc.Add(r.coefficient[i].MulM31(v))
	}
	return acc
}

// Entry is one signed lookup request: a provider contributes +multiplicity,
// a consumer contributes -multiplicity (or vice versa, as long as providers
// and consumers of the same relation use opposite signs consistently).
type Entry struct {
	Multiplicity field.M31
	Tuple        []field.M31
}

// Denominator returns the EF denominator of this entry's logup term,
// combine(tuple); the term itself is multiplicity / Denominator(e), with
// the division left to the caller (batch inversion across all entries,
// since a single entry is rarely inverted in isolation).
func (r Relation) Denominator(e Entry) field.QM31 {
	return r.Combine(e.Tuple)
}
