package keccakcore

import "github.com/vybium/shake256air/internal/shake256air/constants"

// Shake256Witness records the full evaluation of one message: the initial
// absorption state, the N_SQUEEZING permutation invocations chained off of
// it (squeeze blocks reuse the capacity and re-permute with no new input,
// since this component's fixed 72-byte message fits in a single rate block),
// and the assembled 1360-byte output.
type Shake256Witness struct {
	Message [constants.NBytesInMessage]byte
	Initial State
	// Invocations[i] is the i-th Keccak-f[1600] permutation: its input
	// state is Invocations[i-1]'s output (or Initial, for i==0).
	Invocations [constants.NSqueezing]struct {
		States    [constants.NRounds + 1]State
		Witnesses [constants.NRounds]RoundWitness
	}
	Output [constants.NBytesInOutput]byte
}

// EvaluateShake256 absorbs a single message and produces the full output
// witness: every permutation invocation along the way, in order, so trace
// generation and the evaluator replay identical state transitions.
func EvaluateShake256(msg [constants.NBytesInMessage]byte) Shake256Witness {
	var w Shake256Witness
	w.Message = msg
	w.Initial = NewStateFromMessage(msg)

	state := w.Initial
	for i := 0; i < constants.NSqueezing; i++ {
		states, witnesses := Permute24(state)
		w.Invocations[i].States = states
		w.Invocations[i].Witnesses = witnesses
		final := states[constants.NRounds]
		finalBytes := BytesFromState(final)
		copy(w.Output[i*constants.NBytesInRate:(i+1)*constants.NBytesInRate], finalBytes[:constants.NBytesInRate])
		state = final
	}
	return w
}
