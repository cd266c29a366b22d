package air

import (
	"testing"

	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/keccakcore"
)

func witnessesFor(n int, fill byte) []keccakcore.Shake256Witness {
	out := make([]keccakcore.Shake256Witness, n)
	for i := range out {
		var msg [constants.NBytesInMessage]byte
		for b := range msg {
			msg[b] = fill + byte(i)
		}
		out[i] = keccakcore.EvaluateShake256(msg)
	}
	return out
}

func TestKeccakRoundTraceEvaluatesCleanForRealRows(t *testing.T) {
	ws := witnessesFor(2, 0x10)
	tr := BuildKeccakRoundTrace(ws)
	for row := 0; row < tr.N; row++ {
		_, _, round, ok := roundCoords(row, len(ws))
		if !ok {
			t.Fatalf("row %d should be real", row)
		}
		if err := tr.EvaluateRow(row, round); err != nil {
			t.Fatalf("row %d: %v", row, err)
		}
	}
}

func TestKeccakRoundTracePaddingIsInert(t *testing.T) {
	ws := witnessesFor(1, 0x00)
	tr := BuildKeccakRoundTrace(ws)
	paddedRow := tr.N // first padding row, if any exists beyond real rows
	total := 1 << tr.LogSize
	if paddedRow >= total {
		t.Skip("no padding rows for this batch size")
	}
	if err := tr.EvaluateRow(paddedRow, 0); err != nil {
		t.Fatalf("padding row should be inert: %v", err)
	}
}

func TestKeccakTraceEvaluatesCleanForRealRows(t *testing.T) {
	ws := witnessesFor(2, 0x20)
	tr := BuildKeccakTrace(ws)
	for row := 0; row < tr.N; row++ {
		if err := tr.EvaluateRow(row); err != nil {
			t.Fatalf("row %d: %v", row, err)
		}
	}
}

func TestShake256TraceEvaluatesCleanForRealRows(t *testing.T) {
	ws := witnessesFor(3, 0x30)
	tr := BuildShake256Trace(ws)
	for row := 0; row < tr.N; row++ {
		if err := tr.EvaluateRow(row); err != nil {
			t.Fatalf("row %d: %v", row, err)
		}
	}
}

func TestShake256TraceDetectsTamperedBlock(t *testing.T) {
	ws := witnessesFor(1, 0x00)
	tr := BuildShake256Trace(ws)
	// Flip the committed first byte of the first squeeze block of row 0.
	tr.Blocks[0][0][0][0] = tr.Blocks[0][0][0][0].Add(field.One)
	if err := tr.EvaluateRow(0); err == nil {
		t.Fatal("expected EvaluateRow to detect a tampered squeeze block")
	}
}

func TestWholeTraceEvaluate(t *testing.T) {
	ws := witnessesFor(2, 0x50)
	if err := BuildShake256Trace(ws).Evaluate(); err != nil {
		t.Fatalf("shake256 trace: %v", err)
	}
	if err := BuildKeccakTrace(ws).Evaluate(); err != nil {
		t.Fatalf("keccak trace: %v", err)
	}
	if err := BuildKeccakRoundTrace(ws).Evaluate(); err != nil {
		t.Fatalf("keccak_round trace: %v", err)
	}
}

func TestPaddingRowsInertUnderArbitraryCells(t *testing.T) {
	ws := witnessesFor(1, 0x00)
	tr := BuildShake256Trace(ws)
	total := 1 << tr.LogSize
	if tr.N >= total {
		t.Skip("no padding rows for this batch size")
	}
	// Scribble over every padding row's cells; enabler=0 must keep them
	// outside the evaluator's view entirely.
	for row := tr.N; row < total; row++ {
		vec, lane := row/field.LaneWidth, row%field.LaneWidth
		for b := 0; b < constants.NBytesInMessage; b++ {
			tr.Message[b][vec][lane] = field.New(uint64(row*31 + b))
		}
		for inv := 0; inv < constants.NSqueezing; inv++ {
			for b := 0; b < constants.NBytesInState; b++ {
				tr.Blocks[inv][b][vec][lane] = field.New(uint64(row*17 + inv + b))
			}
		}
	}
	if err := tr.Evaluate(); err != nil {
		t.Fatalf("padding rows with arbitrary cells should stay inert: %v", err)
	}
}

func TestProviderTableEvaluateRow(t *testing.T) {
	for _, idx := range []int{0, 1, 12345, 65535} {
		if err := EvaluateXor88Row(idx); err != nil {
			t.Fatalf("xor_8_8 row %d: %v", idx, err)
		}
	}
	for _, idx := range []int{0, 70000, 16777215} {
		if err := EvaluateXor888Row(idx); err != nil {
			t.Fatalf("xor_8_8_8 row %d: %v", idx, err)
		}
		if err := EvaluateChi888Row(idx); err != nil {
			t.Fatalf("chi_8_8_8 row %d: %v", idx, err)
		}
	}
}
