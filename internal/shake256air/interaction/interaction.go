// Package interaction implements the logup interaction-trace generator:
// it takes every component's signed lookup requests (trace.InteractionData)
// plus the four provider tables' multiplicity columns, draws the random
// relation elements from the channel, and reduces everything to one
// InteractionClaim per component — the claimed_sum a STARK driver commits
// to and later checks against the out-of-domain evaluation of the
// interaction columns. The lookup argument's invariant (the signed total
// multiplicity of every tuple is zero) is exactly the statement that every
// component's claimed_sum, plus PublicData's own contribution, adds to
// zero in EF.
package interaction

import (
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/preprocessed"
	"github.com/vybium/shake256air/internal/shake256air/relation"
	"github.com/vybium/shake256air/internal/shake256air/trace"
)

// Elements holds the random coefficients for every named relation, drawn
// once at the start of the interaction phase and shared by every
// component's claimed-sum computation and by the verifier re-deriving the
// same sums from PublicData and the committed interaction columns.
type Elements struct {
	byName map[string]relation.Relation
}

// Draw draws one Relation per name in relation.AllNames, in that fixed
// order, from ch.
func Draw(ch relation.Drawer) Elements {
	e := Elements{byName: make(map[string]relation.Relation, len(relation.AllNames))}
	for _, name := range relation.AllNames {
		e.byName[name] = relation.Draw(name, relation.ArityOf(name), ch)
	}
	return e
}

// Of returns the drawn Relation for a name (panics on an unknown name, the
// same contract relation.ArityOf uses).
func (e Elements) Of(name string) relation.Relation {
	r, ok := e.byName[name]
	if !ok {
		panic("interaction: no relation drawn for " + name)
	}
	return r
}

// Claim is the per-component claimed logup sum this module's driver
// stand-in commits to. Each field is the signed sum
// of every request that component emits, across all the relations it
// touches; the fields are individually nonzero for an honest trace and only
// their total, together with PublicData's contribution, cancels.
type Claim struct {
	Shake256    field.QM31
	Keccak      field.QM31
	KeccakRound field.QM31
	Xor88       field.QM31
	Xor888      field.QM31
	Chi888      field.QM31
	RC777       field.QM31
}

// Total sums every component's claimed sum (used by both Generate, as a
// sanity check against PublicData before a proof is ever emitted, and by
// the verifier's closure check).
func (c Claim) Total() field.QM31 {
	sum := c.Shake256
	sum = sum.Add(c.Keccak)
	sum = sum.Add(c.KeccakRound)
	sum = sum.Add(c.Xor88)
	sum = sum.Add(c.Xor888)
	sum = sum.Add(c.Chi888)
	sum = sum.Add(c.RC777)
	return sum
}

func sumEntries(r relation.Relation, entries []relation.Entry) field.QM31 {
	if len(entries) == 0 {
		return field.QM31Zero
	}
	denoms := make([]field.QM31, len(entries))
	for i, e := range entries {
		denoms[i] = r.Combine(e.Tuple)
	}
	invs := field.BatchInverse(denoms)
	sum := field.QM31Zero
	for i, e := range entries {
		sum = sum.Add(invs[i].MulM31(e.Multiplicity))
	}
	return sum
}

// sumProvider folds a provider table's accumulated multiplicities into its
// claimed sum. Only requested (nonzero-multiplicity) rows contribute a term
// — the vast majority of a provider's enumerated domain is never looked up
// by any consumer in a small batch, so this skips batch-inverting the dead
// rows of a 2^24-row table.
func sumProvider(r relation.Relation, mult *trace.Multiplicities, tupleAt func(idx int) []field.M31) field.QM31 {
	counts := mult.Counts()
	var idxs []int
	for idx, c := range counts {
		if c != 0 {
			idxs = append(idxs, idx)
		}
	}
	if len(idxs) == 0 {
		return field.QM31Zero
	}
	denoms := make([]field.QM31, len(idxs))
	for i, idx := range idxs {
		denoms[i] = r.Combine(tupleAt(idx))
	}
	invs := field.BatchInverse(denoms)
	sum := field.QM31Zero
	for i, idx := range idxs {
		sum = sum.Add(invs[i].MulM31(field.New(uint64(counts[idx]))))
	}
	return sum
}

// Generate reduces a batch's full trace.Result into one InteractionClaim
// per component, against the relation elements drawn in e.
//
// The keccak_round component's provider-table consumption is derived from
// the same multiplicity counters the providers themselves sum over: a
// consumer emitting -1 per request of a tuple contributes exactly
// -count/combine(tuple) in total, so its side is the provider sum negated
// rather than a second pass over millions of stored byte-tuples.
func Generate(e Elements, result *trace.Result) Claim {
	data := result.Data

	shakeRel := e.Of(relation.NameShake256)
	keccakRel := e.Of(relation.NameKeccak)
	roundRel := e.Of(relation.NameKeccakRound)

	xor88 := sumProvider(e.Of(relation.NameXor88), data.Xor88Mult, preprocessed.TupleAtXor88)
	xor888 := sumProvider(e.Of(relation.NameXor888), data.Xor888Mult, preprocessed.TupleAtXor888)
	chi888 := sumProvider(e.Of(relation.NameChi888), data.Chi888Mult, preprocessed.TupleAtChi888)
	rc777 := sumProvider(e.Of(relation.NameRC777), data.RC777Mult, preprocessed.TupleAtRC777)

	consumed := xor88.Add(xor888).Add(chi888).Add(rc777)

	return Claim{
		Shake256: sumEntries(shakeRel, data.Shake256Boundary).
			Add(sumEntries(keccakRel, data.Shake256Keccak)),
		Keccak: sumEntries(keccakRel, data.KeccakBoundary).
			Add(sumEntries(roundRel, data.KeccakRounds)),
		KeccakRound: sumEntries(roundRel, data.RoundHandshake).Sub(consumed),
		Xor88:       xor88,
		Xor888:      xor888,
		Chi888:      chi888,
		RC777:       rc777,
	}
}

// PublicSum folds a set of external (PublicData) entries against the
// shake256 relation drawn in e — the term InvalidLogupSum compares the
// component claims' Total() against, negated.
func PublicSum(e Elements, entries []relation.Entry) field.QM31 {
	return sumEntries(e.Of(relation.NameShake256), entries)
}
