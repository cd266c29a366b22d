package trace

import (
	"sync/atomic"

	"github.com/vybium/shake256air/internal/shake256air/field"
)

// Multiplicities accumulates, per table row, how many times consumers
// requested that exact tuple, using lock-free atomic adds so every row's
// goroutine can bump a count without contending on a shared lock (row
// order never matters, only the final per-index total does).
type Multiplicities struct {
	counts []atomic.Uint32
}

// NewMultiplicities allocates a zeroed counter for a table of n rows.
func NewMultiplicities(n int) *Multiplicities {
	return &Multiplicities{counts: make([]atomic.Uint32, n)}
}

// Add bumps the counter at idx by one. Safe to call concurrently from many
// goroutines, including repeatedly for the same idx.
func (m *Multiplicities) Add(idx int) {
	m.counts[idx].Add(1)
}

// ToColumn packs the accumulated counts into SIMD-packed trace columns.
func (m *Multiplicities) ToColumn() []field.PackedM31 {
	return field.PackColumn(len(m.counts), func(row int) field.M31 {
		return field.New(uint64(m.counts[row].Load()))
	})
}

// Counts exposes the raw per-index totals (used by tests asserting
// multiplicities line up with expected request counts).
func (m *Multiplicities) Counts() []uint32 {
	out := make([]uint32, len(m.counts))
	for i := range out {
		out[i] = m.counts[i].Load()
	}
	return out
}
