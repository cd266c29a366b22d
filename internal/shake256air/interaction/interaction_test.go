package interaction

import (
	"testing"

	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/driver"
	"github.com/vybium/shake256air/internal/shake256air/publicdata"
	"github.com/vybium/shake256air/internal/shake256air/trace"
)

func messages(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = make([]byte, constants.NBytesInMessage)
		out[i][0] = byte(i)
	}
	return out
}

func TestLookupClosure(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		raw := messages(n)
		pd, err := publicdata.Build(raw)
		if err != nil {
			t.Fatalf("n=%d: publicdata.Build: %v", n, err)
		}
		fixed := make([][constants.NBytesInMessage]byte, n)
		for i, m := range raw {
			copy(fixed[i][:], m)
		}
		result, err := trace.Generate(fixed)
		if err != nil {
			t.Fatalf("n=%d: Generate: %v", n, err)
		}

		ch := driver.NewChannel("blake2s", []byte("test-seed"))
		elements := Draw(ch)
		claim := Generate(elements, result)
		publicSum := PublicSum(elements, pd.Entries())

		total := claim.Total().Add(publicSum)
		if !total.IsZero() {
			t.Fatalf("n=%d: logup sum did not close: %+v", n, total)
		}
	}
}

func TestComponentClaimsIndividuallyNonZero(t *testing.T) {
	raw := messages(1)
	fixed := make([][constants.NBytesInMessage]byte, 1)
	copy(fixed[0][:], raw[0])
	result, err := trace.Generate(fixed)
	if err != nil {
		t.Fatal(err)
	}

	ch := driver.NewChannel("blake2s", []byte("test-seed"))
	claim := Generate(Draw(ch), result)

	// Every component emits requests of its own (consumers and providers
	// alike), so each claimed sum is a nonzero fraction sum on its own; only
	// the total (with PublicData)
	// cancels. All-zero claims would mean the bookkeeping silently dropped
	// a request stream.
	for name, sum := range map[string]bool{
		"shake256":     claim.Shake256.IsZero(),
		"keccak":       claim.Keccak.IsZero(),
		"keccak_round": claim.KeccakRound.IsZero(),
		"xor_8_8":      claim.Xor88.IsZero(),
		"xor_8_8_8":    claim.Xor888.IsZero(),
		"chi_8_8_8":    claim.Chi888.IsZero(),
		"rc_7_7_7":     claim.RC777.IsZero(),
	} {
		if sum {
			t.Fatalf("%s claimed sum is zero; its request stream was dropped", name)
		}
	}
}

func TestLookupClosureLargeBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("1024-message batch is slow; skipped in -short mode")
	}
	raw := messages(1024)
	pd, err := publicdata.Build(raw)
	if err != nil {
		t.Fatal(err)
	}
	fixed := make([][constants.NBytesInMessage]byte, len(raw))
	for i, m := range raw {
		copy(fixed[i][:], m)
	}
	result, err := trace.Generate(fixed)
	if err != nil {
		t.Fatal(err)
	}

	ch := driver.NewChannel("blake2s", []byte("test-seed"))
	elements := Draw(ch)
	claim := Generate(elements, result)
	publicSum := PublicSum(elements, pd.Entries())
	if !claim.Total().Add(publicSum).IsZero() {
		t.Fatal("1024-message batch: logup sum did not close")
	}
}

func TestLookupClosureBreaksOnTamperedOutput(t *testing.T) {
	raw := messages(1)
	pd, err := publicdata.Build(raw)
	if err != nil {
		t.Fatal(err)
	}
	var fixed [1][constants.NBytesInMessage]byte
	copy(fixed[0][:], raw[0])
	result, err := trace.Generate(fixed[:])
	if err != nil {
		t.Fatal(err)
	}

	ch := driver.NewChannel("blake2s", []byte("test-seed"))
	elements := Draw(ch)
	claim := Generate(elements, result)

	pd.Outputs[0][0] ^= 0xFF
	publicSum := PublicSum(elements, pd.Entries())

	total := claim.Total().Add(publicSum)
	if total.IsZero() {
		t.Fatal("tampering with the public output should break logup closure")
	}
}
