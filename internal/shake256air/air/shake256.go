package air

import (
	"fmt"

	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/enabler"
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/keccakcore"
)

// Shake256Trace is one row per proved message (n_messages rows, padded):
// the 72 message bytes and the 10 post-permutation states
// chained off the absorbed, padded initial state, from which the 1360-byte
// output is read off directly (the first 136 bytes of each post-state).
type Shake256Trace struct {
	LogSize int
	N       int

	Enabler enabler.Enabler

	Message [constants.NBytesInMessage][]field.PackedM31
	Blocks  [constants.NSqueezing][constants.NBytesInState][]field.PackedM31
}

// BuildShake256Trace packs one row per message.
func BuildShake256Trace(witnesses []keccakcore.Shake256Witness) Shake256Trace {
	n := len(witnesses)
	nPadded := 1
	for nPadded < n {
		nPadded *= 2
	}
	if nPadded < field.LaneWidth {
		nPadded = field.LaneWidth
	}

	t := Shake256Trace{LogSize: logSizeOf(nPadded), N: n, Enabler: enabler.New(n)}

	for b := 0; b < constants.NBytesInMessage; b++ {
		b := b
		t.Message[b] = field.PackColumn(nPadded, func(row int) field.M31 {
			if row >= n {
				return field.Zero
			}
			return field.FromByte(witnesses[row].Message[b])
		})
	}

	for inv := 0; inv < constants.NSqueezing; inv++ {
		for b := 0; b < constants.NBytesInState; b++ {
			inv, b := inv, b
			t.Blocks[inv][b] = field.PackColumn(nPadded, func(row int) field.M31 {
				if row >= n {
					return field.Zero
				}
				return witnesses[row].Invocations[inv].States[constants.NRounds][b]
			})
		}
	}

	return t
}

// EvaluateRow re-derives the padded initial state from the committed
// message bytes, checks the first block's post-permutation state follows
// from it, chains the remaining N_SQUEEZING-1 permutations off each
// other's committed state, and checks the assembled output (the rate
// prefix of every block) matches keccakcore's own oracle for this row.
func (t Shake256Trace) EvaluateRow(row int) error {
	e := t.Enabler.At(row)
	if e.IsZero() {
		return nil
	}

	var msg [constants.NBytesInMessage]byte
	for b := 0; b < constants.NBytesInMessage; b++ {
		msg[b] = byte(scalarAt(t.Message[b], row).Uint32())
	}
	initial := keccakcore.NewStateFromMessage(msg)

	cur := initial
	for inv := 0; inv < constants.NSqueezing; inv++ {
		states, _ := keccakcore.Permute24(cur)
		want := states[constants.NRounds]
		var committed keccakcore.State
		for b := 0; b < constants.NBytesInState; b++ {
			committed[b] = scalarAt(t.Blocks[inv][b], row)
		}
		if want != committed {
			return fmt.Errorf("air: shake256 row %d: squeeze block %d does not match chained permutation", row, inv)
		}
		cur = want
	}
	return nil
}
