// Package shake256air is the public entry point for this module: it wires
// trace generation, the per-component trace columns, the logup
// interaction-trace generator, and the driver's commit/grind stand-in into
// the two calls an external caller needs, Prove and Verify.
package shake256air

import (
	"encoding/binary"

	"github.com/vybium/shake256air/internal/shake256air/air"
	"github.com/vybium/shake256air/internal/shake256air/config"
	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/internal/shake256air/driver"
	"github.com/vybium/shake256air/internal/shake256air/field"
	"github.com/vybium/shake256air/internal/shake256air/interaction"
	"github.com/vybium/shake256air/internal/shake256air/publicdata"
	"github.com/vybium/shake256air/internal/shake256air/relation"
	"github.com/vybium/shake256air/internal/shake256air/shake256airerr"
	"github.com/vybium/shake256air/internal/shake256air/trace"
)

// Proof is the full artifact a prover emits and a verifier checks: the
// per-component log sizes, the claimed interaction sums, the public
// message/output batch, the driver's commitments, and the grinding nonce.
type Proof struct {
	Claim            trace.Claim
	InteractionClaim interaction.Claim
	PublicData       *publicdata.PublicData
	StarkProof       driver.StarkProof
	InteractionPoW   uint64
}

// Prove builds a full proof for a batch of messages: each must be exactly
// constants.NBytesInMessage bytes, and the batch must fit within
// constants.MaxLogSize once padded to a power of two.
func Prove(messages [][]byte, cfg config.Config) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, shake256airerr.Wrap(shake256airerr.ErrInvalidConfig, "invalid config", err)
	}
	if len(messages) == 0 {
		return nil, shake256airerr.New(shake256airerr.ErrInvalidInput, "message batch must be non-empty")
	}
	if bitsNeeded(len(messages)*constants.NSqueezing*constants.NRounds) > constants.MaxLogSize {
		return nil, shake256airerr.New(shake256airerr.ErrInvalidInput, "batch too large for MaxLogSize once padded")
	}

	pd, err := publicdata.Build(messages)
	if err != nil {
		return nil, err
	}

	fixed := make([][constants.NBytesInMessage]byte, len(messages))
	for i, m := range messages {
		copy(fixed[i][:], m)
	}

	result, err := trace.Generate(fixed)
	if err != nil {
		return nil, shake256airerr.Wrap(shake256airerr.ErrTraceGeneration, "trace generation failed", err)
	}

	shakeTrace := air.BuildShake256Trace(result.Witnesses)
	keccakTrace := air.BuildKeccakTrace(result.Witnesses)
	roundTrace := air.BuildKeccakRoundTrace(result.Witnesses)
	for _, check := range []func() error{shakeTrace.Evaluate, keccakTrace.Evaluate, roundTrace.Evaluate} {
		if err := check(); err != nil {
			// The committed columns were just built from the same witness
			// the evaluator replays, so a failure here means the two code
			// paths fell out of lockstep — abort before emitting anything.
			return nil, shake256airerr.Wrap(shake256airerr.ErrTraceGeneration,
				"trace columns failed their own constraint evaluation", err)
		}
	}
	traceLvs := traceLeaves(shakeTrace, keccakTrace, roundTrace, result.Data)
	tRoot := driver.Commit(traceLvs)

	ch := driver.NewChannel(cfg.HashFunction, seedBytes(pd, result.Claim))
	ch.Mix(tRoot[:])
	pow := ch.Grind(cfg.ProofOfWorkBits)
	elements := interaction.Draw(ch)

	claim := interaction.Generate(elements, result)
	publicSum := interaction.PublicSum(elements, pd.Entries())
	if !claim.Total().Add(publicSum).IsZero() {
		// An honest prover's own bookkeeping should always close; if it
		// doesn't, trace generation produced a mismatched request log
		// rather than anything a verifier would ever see.
		return nil, shake256airerr.New(shake256airerr.ErrTraceGeneration,
			"prover-side logup sum did not close before proof emission")
	}

	root := driver.Commit(commitmentLeaves(result.Claim, claim))
	ch.Mix(root[:])
	openings := driver.Open(traceLvs, drawQueryIndices(ch, cfg.FRIQueries, len(traceLvs)))

	return &Proof{
		Claim:            result.Claim,
		InteractionClaim: claim,
		PublicData:       pd,
		StarkProof:       driver.StarkProof{TraceRoot: tRoot, CommitmentRoot: root, Openings: openings, InteractionPoW: pow},
		InteractionPoW:   pow,
	}, nil
}

// Verify checks a Proof against the public data it carries. It replays the
// prover's Fiat-Shamir transcript (seed, trace-commitment mix, grinding
// nonce) to re-derive the same relation elements, recomputes the logup
// closure (the signed total multiplicity of every tuple must be zero) and
// the commitment root, and returns ErrInvalidLogupSum /
// ErrProofOfWork / ErrDriverVerification on the corresponding mismatch.
func Verify(proof *Proof, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return shake256airerr.Wrap(shake256airerr.ErrInvalidConfig, "invalid config", err)
	}
	if proof == nil || proof.PublicData == nil {
		return shake256airerr.New(shake256airerr.ErrInvalidInput, "proof and its public data must be present")
	}

	ch := driver.NewChannel(cfg.HashFunction, seedBytes(proof.PublicData, proof.Claim))
	ch.Mix(proof.StarkProof.TraceRoot[:])
	powOK := ch.CheckGrind(proof.InteractionPoW, cfg.ProofOfWorkBits)
	if !powOK {
		// CheckGrind mixes the nonce only when it passes; mix it here as well
		// so the relation elements are drawn from the same transcript the
		// prover used and the logup closure is checked before the nonce.
		ch.MixU64(proof.InteractionPoW)
	}
	elements := interaction.Draw(ch)

	publicSum := interaction.PublicSum(elements, proof.PublicData.Entries())
	if !proof.InteractionClaim.Total().Add(publicSum).IsZero() {
		return shake256airerr.New(shake256airerr.ErrInvalidLogupSum,
			"sum of component claimed sums plus PublicData's initial logup contribution is nonzero")
	}
	if !powOK {
		return shake256airerr.New(shake256airerr.ErrProofOfWork, "interaction proof-of-work nonce failed difficulty check")
	}

	root := driver.Commit(commitmentLeaves(proof.Claim, proof.InteractionClaim))
	if root != proof.StarkProof.CommitmentRoot {
		return shake256airerr.New(shake256airerr.ErrDriverVerification, "commitment root mismatch")
	}

	ch.Mix(root[:])
	indices := drawQueryIndices(ch, cfg.FRIQueries, traceLeafCount)
	if len(proof.StarkProof.Openings) != len(indices) {
		return shake256airerr.New(shake256airerr.ErrDriverVerification, "query opening count mismatch")
	}
	for i, o := range proof.StarkProof.Openings {
		if o.Index != indices[i] {
			return shake256airerr.New(shake256airerr.ErrDriverVerification,
				"query opening does not match the transcript-drawn index")
		}
	}
	if !driver.VerifyOpenings(proof.StarkProof.TraceRoot, proof.StarkProof.Openings) {
		return shake256airerr.New(shake256airerr.ErrDriverVerification,
			"query opening failed its authentication path check")
	}
	return nil
}

// bitsNeeded returns ceil(log2(max(n,1))).
func bitsNeeded(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	for (1 << bits) < n {
		bits++
	}
	return bits
}

// seedBytes deterministically encodes the data both Prove and Verify must
// agree on before any relation element is drawn: every component's
// log_size (so a batch-size mismatch can't silently reuse stale
// coefficients) followed by PublicData's own bytes.
func seedBytes(pd *publicdata.PublicData, claim trace.Claim) []byte {
	sizes := claim.LogSizes()
	var buf []byte
	for _, name := range relation.AllNames {
		var lenBuf [8]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(sizes[name]))
		buf = append(buf, lenBuf[:]...)
	}
	for _, in := range pd.Inputs {
		buf = append(buf, in[:]...)
	}
	for _, out := range pd.Outputs {
		buf = append(buf, out[:]...)
	}
	return buf
}

// traceLeafCount is the number of committed trace-column leaves: one per
// witness column of shake256, keccak and keccak_round plus one per
// provider multiplicity column, fixed by the component layouts and
// independent of batch size, so the verifier can re-draw query indices
// over the same domain without the witness.
const traceLeafCount = constants.NBytesInMessage +
	constants.NSqueezing*constants.NBytesInState +
	(constants.NRounds+1)*constants.NBytesInState +
	2*8 + 2*constants.NBytesInState +
	5*8*4 + 5*5*8 +
	4

// drawQueryIndices draws n leaf indices over [0, leafCount) from the
// transcript, after both commitment roots have been mixed in.
func drawQueryIndices(ch *driver.Channel, n, leafCount int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = int(ch.DrawM31().Uint32()) % leafCount
	}
	return out
}

// traceLeaves digests every component's trace columns — the witness
// columns of shake256, keccak and keccak_round, plus the four provider
// tables' prover-written multiplicity columns — into one Merkle leaf per
// column, order fixed by the traversal below. The preprocessed provider
// enumerations are circuit constants and need no per-proof commitment.
func traceLeaves(st air.Shake256Trace, kt air.KeccakTrace, rt air.KeccakRoundTrace, data trace.InteractionData) [][]byte {
	var leaves [][]byte

	add := func(col []field.PackedM31) {
		d := driver.ColumnDigest(col)
		leaves = append(leaves, append([]byte(nil), d[:]...))
	}

	for b := 0; b < constants.NBytesInMessage; b++ {
		add(st.Message[b])
	}
	for inv := 0; inv < constants.NSqueezing; inv++ {
		for b := 0; b < constants.NBytesInState; b++ {
			add(st.Blocks[inv][b])
		}
	}

	for b := 0; b < constants.NBytesInState; b++ {
		add(kt.S0[b])
	}
	for r := 0; r < constants.NRounds; r++ {
		for b := 0; b < constants.NBytesInState; b++ {
			add(kt.Rounds[r][b])
		}
	}

	for i := 0; i < 8; i++ {
		add(rt.RCIn[i])
		add(rt.RCOut[i])
	}
	for b := 0; b < constants.NBytesInState; b++ {
		add(rt.StateIn[b])
		add(rt.StateOut[b])
	}
	for x := 0; x < 5; x++ {
		for by := 0; by < 8; by++ {
			add(rt.ThetaC[x][by])
			add(rt.ThetaCRot[x][by])
			add(rt.ThetaCRotHi[x][by])
			add(rt.ThetaD[x][by])
		}
	}
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			for by := 0; by < 8; by++ {
				add(rt.RhoHi[x][y][by])
			}
		}
	}

	for _, mult := range []interface{ Counts() []uint32 }{
		data.Xor88Mult, data.Xor888Mult, data.Chi888Mult, data.RC777Mult,
	} {
		d := driver.MultiplicityDigest(mult.Counts())
		leaves = append(leaves, append([]byte(nil), d[:]...))
	}

	return leaves
}

// commitmentLeaves flattens a claim and interaction claim into the ordered
// leaf list driver.Commit hashes into a Merkle root.
func commitmentLeaves(claim trace.Claim, ic interaction.Claim) [][]byte {
	sizes := claim.LogSizes()
	leaves := make([][]byte, 0, len(relation.AllNames)+len(relation.AllNames))
	for _, name := range relation.AllNames {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(sizes[name]))
		leaves = append(leaves, append([]byte(nil), buf[:]...))
	}
	for _, q := range []field.QM31{ic.Shake256, ic.Keccak, ic.KeccakRound, ic.Xor88, ic.Xor888, ic.Chi888, ic.RC777} {
		leaves = append(leaves, qm31Bytes(q))
	}
	return leaves
}

func qm31Bytes(q field.QM31) []byte {
	var out [16]byte
	binary.LittleEndian.PutUint32(out[0:4], q.A.A.Uint32())
	binary.LittleEndian.PutUint32(out[4:8], q.A.B.Uint32())
	binary.LittleEndian.PutUint32(out[8:12], q.B.A.Uint32())
	binary.LittleEndian.PutUint32(out[12:16], q.B.B.Uint32())
	return out[:]
}
