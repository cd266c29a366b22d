// Package trace builds the row-level witness for a batch of SHAKE-256
// messages: every Keccak-f[1600] round application, the per-invocation and
// per-message boundary handoffs, and the signed lookup requests the logup
// argument closes over.
package trace

import (
	"math/bits"

	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/preprocessed"
)

// LogLaneWidth is log2(field.LaneWidth): no column can hold fewer rows than
// one packed vector, so it is the floor for every component's log_size.
const LogLaneWidth = 4

// logSizeFor returns ceil(log2(max(n,1))) clamped up to LogLaneWidth, the
// log_size a component with n real rows is padded up to (a single message
// still fills one whole packed vector of field.LaneWidth rows).
func logSizeFor(n int) int {
	if n <= field.LaneWidth {
		return LogLaneWidth
	}
	return bits.Len(uint(n - 1))
}

// Claim reports every component's padded row-count, in log2. The four
// provider tables are fixed-size regardless of batch size; shake256,
// keccak and keccak_round scale with the number of messages proven.
type Claim struct {
	Shake256LogSize    int
	KeccakLogSize      int
	KeccakRoundLogSize int
	Xor88LogSize       int
	Xor888LogSize      int
	Chi888LogSize      int
	RC777LogSize       int
}

// LogSizes returns every component's log_size keyed by relation/component
// name, the shape the interaction layer mixes into the transcript.
func (c Claim) LogSizes() map[string]int {
	return map[string]int{
		"shake256":     c.Shake256LogSize,
		"keccak":       c.KeccakLogSize,
		"keccak_round": c.KeccakRoundLogSize,
		"xor_8_8":      c.Xor88LogSize,
		"xor_8_8_8":    c.Xor888LogSize,
		"chi_8_8_8":    c.Chi888LogSize,
		"rc_7_7_7":     c.RC777LogSize,
	}
}

func providerLogSizes() (xor88, xor888, chi888, rc777 int) {
	return preprocessed.Xor88LogSize, preprocessed.Xor888LogSize,
		preprocessed.Chi888LogSize, preprocessed.RC777LogSize
}
