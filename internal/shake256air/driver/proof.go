package driver

// StarkProof is this module's stand-in for the PCS/FRI/Merkle commitment a
// real STARK driver would produce over the base and interaction traces.
// It carries just enough for Prove/Verify to exercise a
// commit-then-check round trip —
// the Merkle root over every committed trace column (mixed into the
// transcript before any relation element is drawn, so the drawn elements
// bind to the trace), a root over the claim/interaction-claim leaves, and
// the proof-of-work nonce the channel ground before drawing interaction
// elements, and the transcript-drawn query openings of the trace tree —
// without attempting a from-scratch FRI low-degree test.
type StarkProof struct {
	TraceRoot      [32]byte
	CommitmentRoot [32]byte
	Openings       []Opening
	InteractionPoW uint64
}

// Commit hashes every leaf (one per component claim/interaction-claim
// field, in a fixed order) into a Merkle tree and returns its root. Both
// Prove and Verify call this over the same leaf encoding, so a verifier
// that recomputes a different root than the one carried in the proof has
// detected a tampered claim.
func Commit(leaves [][]byte) [32]byte {
	return NewMerkleTree(leaves).Root()
}

// Opening is one queried leaf of a committed tree together with its
// authentication path — the query-phase artifact a real PCS driver would
// produce for each FRI query, minus the evaluation consistency checks
// that belong to the excluded low-degree test.
type Opening struct {
	Index int
	Leaf  []byte
	Path  AuthPath
}

// Open rebuilds the tree over leaves and returns one Opening per query
// index. Indices must already have been drawn from the transcript so
// prover and verifier agree on them.
func Open(leaves [][]byte, indices []int) []Opening {
	t := NewMerkleTree(leaves)
	out := make([]Opening, len(indices))
	for i, idx := range indices {
		out[i] = Opening{
			Index: idx,
			Leaf:  append([]byte(nil), leaves[idx]...),
			Path:  t.Prove(idx),
		}
	}
	return out
}

// VerifyOpenings checks every opening's authentication path against root.
func VerifyOpenings(root [32]byte, openings []Opening) bool {
	for _, o := range openings {
		if !VerifyAuthPath(root, o.Leaf, o.Index, o.Path) {
			return false
		}
	}
	return true
}
