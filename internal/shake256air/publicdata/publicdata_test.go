package publicdata

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/shake256airerr"
)

func TestBuildRejectsEmptyBatch(t *testing.T) {
	_, err := Build(nil)
	if err == nil {
		t.Fatal("expected error for empty batch")
	}
	var serr *shake256airerr.Shake256Error
	if !errorsAs(err, &serr) || serr.Code != shake256airerr.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBuildRejectsWrongLength(t *testing.T) {
	_, err := Build([][]byte{make([]byte, constants.NBytesInMessage-1)})
	if err == nil {
		t.Fatal("expected error for short message")
	}
}

func TestBuildMatchesOracle(t *testing.T) {
	msg := make([]byte, constants.NBytesInMessage)
	for i := range msg {
		msg[i] = byte(i)
	}
	pd, err := Build([][]byte{msg})
	if err != nil {
		t.Fatal(err)
	}
	want := make([]byte, constants.NBytesInOutput)
	h := sha3.NewShake256()
	h.Write(msg)
	h.Read(want)
	if !bytes.Equal(pd.Outputs[0][:], want) {
		t.Fatal("PublicData output does not match the reference oracle")
	}
}

func TestEntriesBalanceInPairs(t *testing.T) {
	msg := make([]byte, constants.NBytesInMessage)
	pd, err := Build([][]byte{msg, msg})
	if err != nil {
		t.Fatal(err)
	}
	entries := pd.Entries()
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
}

func errorsAs(err error, target **shake256airerr.Shake256Error) bool {
	e, ok := err.(*shake256airerr.Shake256Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
