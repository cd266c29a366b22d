package trace

import (
	"golang.org/x/sync/errgroup"

	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/keccakcore"
	"github.com/vybium/shake256air/internal/shake256air/preprocessed"
	"github.com/vybium/shake256air/internal/shake256air/relation"
)

// InteractionData holds every signed lookup request this batch's witness
// produced, grouped by the component that emits it (each component's claimed
// sum is the sum of its own requests). The boundary/chaining relations
// keep flat entry lists sized by actual request count; the four provider
// tables keep atomic multiplicity counters sized by their fixed domain, and
// the keccak_round component's matching consumer side is derived from the
// same counters with the opposite sign rather than stored entry-by-entry.
type InteractionData struct {
	// shake256 component: the public message/output handshake, and the
	// per-invocation hand-offs into keccak.
	Shake256Boundary []relation.Entry // shake256 relation: -1 message, +1 output
	Shake256Keccak   []relation.Entry // keccak relation: +1 pre, -1 post, per invocation

	// keccak component: the permutation boundary it serves back to
	// shake256, and the 24-round chain it hands down to keccak_round.
	KeccakBoundary []relation.Entry // keccak relation: -1 initial, +1 final
	KeccakRounds   []relation.Entry // keccak_round relation: +1 (rc_r, S_r), -1 (rc_{r+1}, S_{r+1})

	// keccak_round component: the opposite side of the per-round chain.
	// Its provider-table consumption lives in the multiplicity counters.
	RoundHandshake []relation.Entry // keccak_round relation: -1 (rc_r, S_r), +1 (rc_{r+1}, S_{r+1})

	Xor88Mult  *Multiplicities
	Xor888Mult *Multiplicities
	Chi888Mult *Multiplicities
	RC777Mult  *Multiplicities
}

// Result is the full output of trace generation for a message batch. The
// witnesses' per-round Calls slices are released once their multiplicities
// have been counted; column building reads only the recorded hint bytes.
type Result struct {
	Claim     Claim
	Data      InteractionData
	Witnesses []keccakcore.Shake256Witness
}

type perMessage struct {
	witness     keccakcore.Shake256Witness
	shake       [2]relation.Entry
	shakeKeccak []relation.Entry
	keccak      []relation.Entry
	rounds      []relation.Entry
	handshake   []relation.Entry
}

// Generate builds the full witness and signed-entry bookkeeping for a batch
// of messages. Messages are processed independently and in parallel; the
// only shared mutable state is the provider tables' atomic multiplicity
// counters.
func Generate(messages [][constants.NBytesInMessage]byte) (*Result, error) {
	n := len(messages)

	xor88 := NewMultiplicities(1 << preprocessed.Xor88LogSize)
	xor888 := NewMultiplicities(1 << preprocessed.Xor888LogSize)
	chi888 := NewMultiplicities(1 << preprocessed.Chi888LogSize)
	rc777 := NewMultiplicities(1 << preprocessed.RC777LogSize)

	results := make([]perMessage, n)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			w := keccakcore.EvaluateShake256(messages[i])
			results[i] = buildPerMessage(w, xor88, xor888, chi888, rc777)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data := InteractionData{
		Xor88Mult:  xor88,
		Xor888Mult: xor888,
		Chi888Mult: chi888,
		RC777Mult:  rc777,
	}
	witnesses := make([]keccakcore.Shake256Witness, n)
	for i, r := range results {
		witnesses[i] = r.witness
		data.Shake256Boundary = append(data.Shake256Boundary, r.shake[:]...)
		data.Shake256Keccak = append(data.Shake256Keccak, r.shakeKeccak...)
		data.KeccakBoundary = append(data.KeccakBoundary, r.keccak...)
		data.KeccakRounds = append(data.KeccakRounds, r.rounds...)
		data.RoundHandshake = append(data.RoundHandshake, r.handshake...)
	}

	xor88LS, xor888LS, chi888LS, rc777LS := providerLogSizes()
	claim := Claim{
		Shake256LogSize:    logSizeFor(n),
		KeccakLogSize:      logSizeFor(n * constants.NSqueezing),
		KeccakRoundLogSize: logSizeFor(n * constants.NSqueezing * constants.NRounds),
		Xor88LogSize:       xor88LS,
		Xor888LogSize:      xor888LS,
		Chi888LogSize:      chi888LS,
		RC777LogSize:       rc777LS,
	}

	return &Result{Claim: claim, Data: data, Witnesses: witnesses}, nil
}

func buildPerMessage(w keccakcore.Shake256Witness, xor88, xor888, chi888, rc777 *Multiplicities) perMessage {
	pm := perMessage{}

	one := field.One
	negOne := field.One.Neg()

	pm.shake = [2]relation.Entry{
		{Multiplicity: negOne, Tuple: keccakcore.MessageTuple(w.Message)},
		{Multiplicity: one, Tuple: keccakcore.OutputTuple(w.Output)},
	}

	for inv := 0; inv < constants.NSqueezing; inv++ {
		states := w.Invocations[inv].States
		initial, final := states[0], states[constants.NRounds]

		pm.shakeKeccak = append(pm.shakeKeccak,
			relation.Entry{Multiplicity: one, Tuple: keccakcore.StateTuple(initial)},
			relation.Entry{Multiplicity: negOne, Tuple: keccakcore.StateTuple(final)},
		)
		pm.keccak = append(pm.keccak,
			relation.Entry{Multiplicity: negOne, Tuple: keccakcore.StateTuple(initial)},
			relation.Entry{Multiplicity: one, Tuple: keccakcore.StateTuple(final)},
		)

		for r := 0; r < constants.NRounds; r++ {
			pre, post := states[r], states[r+1]
			tagR := constants.RoundTagBytes(r)
			tagR1 := constants.RoundTagBytes(r + 1)

			pm.rounds = append(pm.rounds,
				relation.Entry{Multiplicity: one, Tuple: keccakcore.RoundTuple(tagR, pre)},
				relation.Entry{Multiplicity: negOne, Tuple: keccakcore.RoundTuple(tagR1, post)},
			)
			pm.handshake = append(pm.handshake,
				relation.Entry{Multiplicity: negOne, Tuple: keccakcore.RoundTuple(tagR, pre)},
				relation.Entry{Multiplicity: one, Tuple: keccakcore.RoundTuple(tagR1, post)},
			)

			for _, call := range w.Invocations[inv].Witnesses[r].Calls {
				bumpMultiplicity(call, xor88, xor888, chi888, rc777)
			}
			// Calls are only needed for multiplicity counting; the hint
			// bytes the column builders read stay in the witness.
			w.Invocations[inv].Witnesses[r].Calls = nil
		}
	}

	pm.witness = w
	return pm
}

func bumpMultiplicity(call keccakcore.TableCall, xor88, xor888, chi888, rc777 *Multiplicities) {
	switch call.Relation {
	case relation.NameXor88:
		xor88.Add(preprocessed.IndexOfXor88(call.Tuple[0], call.Tuple[1]))
	case relation.NameXor888:
		xor888.Add(preprocessed.IndexOfXor888(call.Tuple[0], call.Tuple[1], call.Tuple[2]))
	case relation.NameChi888:
		chi888.Add(preprocessed.IndexOfChi888(call.Tuple[0], call.Tuple[1], call.Tuple[2]))
	case relation.NameRC777:
		rc777.Add(preprocessed.IndexOfRC777(call.Tuple[0], call.Tuple[1], call.Tuple[2]))
	}
}
