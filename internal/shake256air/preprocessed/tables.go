// Package preprocessed builds the four provider lookup tables this module
// arithmetizes byte-level operations against: xor_8_8, xor_8_8_8, chi_8_8_8
// and rc_7_7_7. Every table is a deterministic enumeration of its full input
// domain — no witness data is involved, so these columns are identical for
// every proof and can be committed once and reused (the driver is
// responsible for that reuse; this package only builds the columns).
package preprocessed

import (
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/rowops"
)

// Fixed log2 row-counts of the four provider tables; each enumerates its
// full input domain, so these never depend on batch size.
const (
	Xor88LogSize  = 16
	Xor888LogSize = 24
	Chi888LogSize = 24
	RC777LogSize  = 21
)

// Xor88 is the xor_8_8 table: two 8-bit inputs, their XOR, log_size=16.
type Xor88 struct {
	LogSize   int
	A, B, Res []field.PackedM31
}

// BuildXor88 enumerates every (a,b) pair in [0,256)^2.
func BuildXor88() Xor88 {
	const logSize = 16
	n := 1 << logSize
	return Xor88{
		LogSize: logSize,
		A:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte(row & 0xFF)) }),
		B:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte((row >> 8) & 0xFF)) }),
		Res: field.PackColumn(n, func(row int) field.M31 {
			a := byte(row & 0xFF)
			b := byte((row >> 8) & 0xFF)
			return rowops.XorByte(field.FromByte(a), field.FromByte(b))
		}),
	}
}

// Xor888 is the xor_8_8_8 table: three 8-bit inputs, their XOR, log_size=24.
type Xor888 struct {
	LogSize      int
	A, B, C, Res []field.PackedM31
}

// BuildXor888 enumerates every (a,b,c) triple in [0,256)^3.
func BuildXor888() Xor888 {
	const logSize = 24
	n := 1 << logSize
	return Xor888{
		LogSize: logSize,
		A:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte(row & 0xFF)) }),
		B:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte((row >> 8) & 0xFF)) }),
		C:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte((row >> 16) & 0xFF)) }),
		Res: field.PackColumn(n, func(row int) field.M31 {
			a := field.FromByte(byte(row & 0xFF))
			b := field.FromByte(byte((row >> 8) & 0xFF))
			c := field.FromByte(byte((row >> 16) & 0xFF))
			return rowops.Xor3Byte(a, b, c)
		}),
	}
}

// Chi888 is the chi_8_8_8 table: a ^ (^b & c) over three 8-bit inputs,
// log_size=24.
type Chi888 struct {
	LogSize      int
	A, B, C, Res []field.PackedM31
}

// BuildChi888 enumerates every (a,b,c) triple in [0,256)^3.
func BuildChi888() Chi888 {
	const logSize = 24
	n := 1 << logSize
	return Chi888{
		LogSize: logSize,
		A:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte(row & 0xFF)) }),
		B:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte((row >> 8) & 0xFF)) }),
		C:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte((row >> 16) & 0xFF)) }),
		Res: field.PackColumn(n, func(row int) field.M31 {
			a := field.FromByte(byte(row & 0xFF))
			b := field.FromByte(byte((row >> 8) & 0xFF))
			c := field.FromByte(byte((row >> 16) & 0xFF))
			return rowops.ChiByte(a, b, c)
		}),
	}
}

// TupleAtXor88 reconstructs the (a,b,res) tuple for row `idx` of xor_8_8
// without materializing the full table, for sparse provider-sum evaluation.
func TupleAtXor88(idx int) []field.M31 {
	a := field.FromByte(byte(idx & 0xFF))
	b := field.FromByte(byte((idx >> 8) & 0xFF))
	return []field.M31{a, b, rowops.XorByte(a, b)}
}

// TupleAtXor888 reconstructs the (a,b,c,res) tuple for row `idx` of xor_8_8_8.
func TupleAtXor888(idx int) []field.M31 {
	a := field.FromByte(byte(idx & 0xFF))
	b := field.FromByte(byte((idx >> 8) & 0xFF))
	c := field.FromByte(byte((idx >> 16) & 0xFF))
	return []field.M31{a, b, c, rowops.Xor3Byte(a, b, c)}
}

// TupleAtChi888 reconstructs the (a,b,c,res) tuple for row `idx` of chi_8_8_8.
func TupleAtChi888(idx int) []field.M31 {
	a := field.FromByte(byte(idx & 0xFF))
	b := field.FromByte(byte((idx >> 8) & 0xFF))
	c := field.FromByte(byte((idx >> 16) & 0xFF))
	return []field.M31{a, b, c, rowops.ChiByte(a, b, c)}
}

// TupleAtRC777 reconstructs the (a,b,c) tuple for row `idx` of rc_7_7_7.
func TupleAtRC777(idx int) []field.M31 {
	const bits = 7
	const mask = (1 << bits) - 1
	a := field.FromByte(byte(idx & mask))
	b := field.FromByte(byte((idx >> bits) & mask))
	c := field.FromByte(byte((idx >> (2 * bits)) & mask))
	return []field.M31{a, b, c}
}

// IndexOfXor88 computes the table row for a given (a,b) pair — the inverse
// of TupleAtXor88's first two coordinates, used to bump multiplicities.
func IndexOfXor88(a, b field.M31) int {
	return int(a.Uint32()) | int(b.Uint32())<<8
}

// IndexOfXor888 computes the table row for a given (a,b,c) triple.
func IndexOfXor888(a, b, c field.M31) int {
	return int(a.Uint32()) | int(b.Uint32())<<8 | int(c.Uint32())<<16
}

// IndexOfChi888 computes the table row for a given (a,b,c) triple.
func IndexOfChi888(a, b, c field.M31) int {
	return int(a.Uint32()) | int(b.Uint32())<<8 | int(c.Uint32())<<16
}

// IndexOfRC777 computes the table row for a given (a,b,c) 7-bit triple.
func IndexOfRC777(a, b, c field.M31) int {
	const bits = 7
	return int(a.Uint32()) | int(b.Uint32())<<bits | int(c.Uint32())<<(2*bits)
}

// RC777 is the rc_7_7_7 table: pure membership of three 7-bit values, no
// output column. log_size=21.
type RC777 struct {
	LogSize int
	A, B, C []field.PackedM31
}

// BuildRC777 enumerates every (a,b,c) triple in [0,128)^3.
func BuildRC777() RC777 {
	const logSize = 21
	const bits = 7
	const mask = (1 << bits) - 1
	n := 1 << logSize
	return RC777{
		LogSize: logSize,
		A:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte(row & mask)) }),
		B:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte((row >> bits) & mask)) }),
		C:       field.PackColumn(n, func(row int) field.M31 { return field.FromByte(byte((row >> (2 * bits)) & mask)) }),
	}
}
