package air

import (
	"fmt"

	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/preprocessed"
	"github.com/vybium/shake256air/internal/shake256air/rowops"
)

// EvaluateXor88Row checks the preprocessed (a, b, res) row at idx against
// rowops.XorByte, the same function every consumer's trace-fill and
// evaluator call to justify a hinted byte against this table.
func EvaluateXor88Row(idx int) error {
	tuple := preprocessed.TupleAtXor88(idx)
	return checkRow("xor_8_8", idx, tuple[2], rowops.XorByte(tuple[0], tuple[1]))
}

// EvaluateXor888Row checks the preprocessed xor_8_8_8 row at idx.
func EvaluateXor888Row(idx int) error {
	tuple := preprocessed.TupleAtXor888(idx)
	return checkRow("xor_8_8_8", idx, tuple[3], rowops.Xor3Byte(tuple[0], tuple[1], tuple[2]))
}

// EvaluateChi888Row checks the preprocessed chi_8_8_8 row at idx.
func EvaluateChi888Row(idx int) error {
	tuple := preprocessed.TupleAtChi888(idx)
	return checkRow("chi_8_8_8", idx, tuple[3], rowops.ChiByte(tuple[0], tuple[1], tuple[2]))
}

func checkRow(name string, idx int, got, want field.M31) error {
	if got != want {
		return fmt.Errorf("air: %s row %d: preprocessed output %v does not match its inputs (want %v)", name, idx, got, want)
	}
	return nil
}
