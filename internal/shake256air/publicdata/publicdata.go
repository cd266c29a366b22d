// Package publicdata builds PublicData — the batch of messages and their
// SHAKE-256 outputs that both prover and verifier agree on — using
// golang.org/x/crypto/sha3 as the reference oracle, and
// computes that data's own signed contribution to the shake256 relation's
// logup sum, the term InvalidLogupSum checks against.
package publicdata

import (
	"golang.org/x/crypto/sha3"

	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/keccakcore"
	"github.com/vybium/shake256air/internal/shake256air/relation"
	"github.com/vybium/shake256air/internal/shake256air/shake256airerr"
)

// PublicData is the public pair (M, Y) a proof attests to: every message in
// the batch, paired with the reference SHAKE-256 output the proof claims
// each one hashes to.
type PublicData struct {
	Inputs  [][constants.NBytesInMessage]byte
	Outputs [][constants.NBytesInOutput]byte
}

// Build validates the batch and computes each message's reference
// SHAKE-256 output via the oracle. It does not run the in-circuit
// witness generator (internal/shake256air/trace does that); this is the
// independent check both the test suite's "oracle agreement" property and
// a caller constructing PublicData from scratch rely on.
func Build(messages [][]byte) (*PublicData, error) {
	if len(messages) == 0 {
		return nil, shake256airerr.New(shake256airerr.ErrInvalidInput, "message batch must be non-empty")
	}
	pd := &PublicData{
		Inputs:  make([][constants.NBytesInMessage]byte, len(messages)),
		Outputs: make([][constants.NBytesInOutput]byte, len(messages)),
	}
	for i, m := range messages {
		if len(m) != constants.NBytesInMessage {
			return nil, shake256airerr.New(shake256airerr.ErrInvalidInput,
				"message must be exactly N_BYTES_IN_MESSAGE bytes")
		}
		copy(pd.Inputs[i][:], m)
		h := sha3.NewShake256()
		h.Write(m)
		if _, err := h.Read(pd.Outputs[i][:]); err != nil {
			return nil, shake256airerr.Wrap(shake256airerr.ErrTraceGeneration, "reference SHAKE-256 oracle failed", err)
		}
	}
	return pd, nil
}

// Entries returns this batch's signed contribution to the shake256
// relation: a +enabler request on every message (the consumer hand-off a
// real shake256 component row balances with its own -enabler request) and
// a -enabler request on every output, so that an honest component's
// opposite-signed entries net to zero once summed together.
func (pd *PublicData) Entries() []relation.Entry {
	out := make([]relation.Entry, 0, 2*len(pd.Inputs))
	for i := range pd.Inputs {
		out = append(out,
			relation.Entry{Multiplicity: field.One, Tuple: keccakcore.MessageTuple(pd.Inputs[i])},
			relation.Entry{Multiplicity: field.One.Neg(), Tuple: keccakcore.OutputTuple(pd.Outputs[i])},
		)
	}
	return out
}
