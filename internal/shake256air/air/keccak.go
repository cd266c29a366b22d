package air

import (
	"fmt"

	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/enabler"
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/keccakcore"
)

// KeccakTrace is one row per Keccak-f[1600] permutation invocation across
// the batch (n_messages * N_SQUEEZING rows, padded): the input state and
// the post-state of every one of the 24 chained rounds.
type KeccakTrace struct {
	LogSize int
	N       int

	Enabler enabler.Enabler

	S0     [constants.NBytesInState][]field.PackedM31
	Rounds [constants.NRounds][constants.NBytesInState][]field.PackedM31
}

func keccakCoords(row, n int) (msgIdx, inv int, real bool) {
	total := n * constants.NSqueezing
	if row < 0 || row >= total {
		return 0, 0, false
	}
	inv = row % constants.NSqueezing
	msgIdx = row / constants.NSqueezing
	return msgIdx, inv, true
}

// BuildKeccakTrace flattens every permutation invocation's state sequence
// into the column layout above.
func BuildKeccakTrace(witnesses []keccakcore.Shake256Witness) KeccakTrace {
	n := len(witnesses) * constants.NSqueezing
	nPadded := 1
	for nPadded < n {
		nPadded *= 2
	}
	if nPadded < field.LaneWidth {
		nPadded = field.LaneWidth
	}

	statesAt := func(row int) (states [constants.NRounds + 1]keccakcore.State, ok bool) {
		msgIdx, inv, real := keccakCoords(row, len(witnesses))
		if !real {
			return states, false
		}
		return witnesses[msgIdx].Invocations[inv].States, true
	}

	t := KeccakTrace{LogSize: logSizeOf(nPadded), N: n, Enabler: enabler.New(n)}

	for b := 0; b < constants.NBytesInState; b++ {
		b := b
		t.S0[b] = field.PackColumn(nPadded, func(row int) field.M31 {
			states, ok := statesAt(row)
			if !ok {
				return field.Zero
			}
			return states[0][b]
		})
		for r := 0; r < constants.NRounds; r++ {
			r := r
			t.Rounds[r][b] = field.PackColumn(nPadded, func(row int) field.M31 {
				states, ok := statesAt(row)
				if !ok {
					return field.Zero
				}
				return states[r+1][b]
			})
		}
	}

	return t
}

// EvaluateRow re-derives all 24 rounds from S0 and checks every committed
// round-boundary state against keccakcore.ApplyRound, in order.
func (t KeccakTrace) EvaluateRow(row int) error {
	e := t.Enabler.At(row)
	if e.IsZero() {
		return nil
	}

	var cur keccakcore.State
	for b := 0; b < constants.NBytesInState; b++ {
		cur[b] = scalarAt(t.S0[b], row)
	}

	for r := 0; r < constants.NRounds; r++ {
		next, _ := keccakcore.ApplyRound(cur, r)
		var committed keccakcore.State
		for b := 0; b < constants.NBytesInState; b++ {
			committed[b] = scalarAt(t.Rounds[r][b], row)
		}
		if next != committed {
			return fmt.Errorf("air: keccak row %d: state after round %d does not match ApplyRound chain", row, r)
		}
		cur = next
	}
	return nil
}
