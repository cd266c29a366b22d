package driver

import "golang.org/x/crypto/blake2s"

// MerkleTree commits to an ordered list of leaves: a binary tree of
// blake2s hashes with the odd trailing node duplicated at each level,
// using the same hash family the Fiat-Shamir channel is already wired for.
type MerkleTree struct {
	levels [][][32]byte
}

// NewMerkleTree hashes every leaf and builds the tree bottom-up.
func NewMerkleTree(leaves [][]byte) *MerkleTree {
	if len(leaves) == 0 {
		return &MerkleTree{levels: [][][32]byte{{blake2s.Sum256(nil)}}}
	}
	level := make([][32]byte, len(leaves))
	for i, leaf := range leaves {
		level[i] = blake2s.Sum256(leaf)
	}
	tree := &MerkleTree{levels: [][][32]byte{level}}
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			var combined [64]byte
			copy(combined[:32], level[i][:])
			if i+1 < len(level) {
				copy(combined[32:], level[i+1][:])
			} else {
				copy(combined[32:], level[i][:])
			}
			next = append(next, blake2s.Sum256(combined[:]))
		}
		tree.levels = append(tree.levels, next)
		level = next
	}
	return tree
}

// Root returns the commitment.
func (t *MerkleTree) Root() [32]byte {
	return t.levels[len(t.levels)-1][0]
}

// AuthPath is the sibling hashes from a leaf up to the root, one per level.
type AuthPath [][32]byte

// Prove returns the authentication path for leaf index idx.
func (t *MerkleTree) Prove(idx int) AuthPath {
	var path AuthPath
	for lvl := 0; lvl < len(t.levels)-1; lvl++ {
		level := t.levels[lvl]
		var sibling int
		if idx%2 == 0 {
			sibling = idx + 1
		} else {
			sibling = idx - 1
		}
		if sibling >= len(level) {
			sibling = idx
		}
		path = append(path, level[sibling])
		idx /= 2
	}
	return path
}

// VerifyAuthPath recomputes the root from a leaf, its index, and an
// authentication path, and reports whether it matches root.
func VerifyAuthPath(root [32]byte, leaf []byte, idx int, path AuthPath) bool {
	cur := blake2s.Sum256(leaf)
	for _, sibling := range path {
		var combined [64]byte
		if idx%2 == 0 {
			copy(combined[:32], cur[:])
			copy(combined[32:], sibling[:])
		} else {
			copy(combined[:32], sibling[:])
			copy(combined[32:], cur[:])
		}
		cur = blake2s.Sum256(combined[:])
		idx /= 2
	}
	return cur == root
}
