// Package enabler implements the 0/1 padding indicator shared by every
// component's trace: real rows carry enabler=1, padding rows (added to
// round a component's row count up to a power of two) carry enabler=0,
// and every constraint and lookup contribution in this module is scaled by
// the enabler so padding rows are inert.
package enabler

import "github.com/vybium/shake256air/internal/shake256air/field"

// Enabler marks the boundary, in row units, between real data and padding
// within a component of n_real_rows rows padded up to a power of two.
type Enabler struct {
	PaddingOffset int
}

// New builds an Enabler for a component with nReal real rows.
func New(nReal int) Enabler {
	return Enabler{PaddingOffset: nReal}
}

// PackedAt returns the enabler value for SIMD vector index vec (i.e. rows
// [vec*LaneWidth, (vec+1)*LaneWidth)): all-one if every row in the vector is
// real, all-zero if every row is padding, or a partial fill straddling the
// boundary.
func (e Enabler) PackedAt(vec int) field.PackedM31 {
	base := vec * field.LaneWidth
	if base+field.LaneWidth <= e.PaddingOffset {
		return field.PackedOne
	}
	if base >= e.PaddingOffset {
		return field.PackedZero
	}
	var p field.PackedM31
	for lane := 0; lane < field.LaneWidth; lane++ {
		if base+lane < e.PaddingOffset {
			p[lane] = field.One
		}
	}
	return p
}

// At returns the scalar enabler value for a single row (used by the
// concrete per-row algebraic evaluator).
func (e Enabler) At(row int) field.M31 {
	if row < e.PaddingOffset {
		return field.One
	}
	return field.Zero
}
