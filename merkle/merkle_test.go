// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/merkle"
)

// make a distinct leaf digest for an index
func makeLeaf(i int) merkle.Digest {
	var buffer [8]byte
	binary.BigEndian.PutUint64(buffer[:], uint64(i))
	return merkle.NewDigest(buffer[:])
}

func makeLeaves(n int) []merkle.Digest {
	leaves := make([]merkle.Digest, n)
	for i := 0; i < n; i += 1 {
		leaves[i] = makeLeaf(i)
	}
	return leaves
}

// every leaf of every small tree must round-trip through its proof
func TestProofRoundTrip(t *testing.T) {

	for n := 1; n <= 17; n += 1 {
		leaves := makeLeaves(n)
		tree := merkle.FullTree(leaves)
		root := merkle.Root(tree)

		for i := 0; i < n; i += 1 {
			proof, err := merkle.ProofFor(tree, n, uint64(i))
			if nil != err {
				t.Fatalf("n: %d  leaf: %d  proof error: %s", n, i, err)
			}
			if len(proof) != merkle.ProofLength(uint64(n)) {
				t.Fatalf("n: %d  leaf: %d  proof length: actual: %d  expected: %d",
					n, i, len(proof), merkle.ProofLength(uint64(n)))
			}
			if !merkle.Verify(leaves[i], uint64(i), proof, root, uint64(n)) {
				t.Errorf("n: %d  leaf: %d  valid proof rejected", n, i)
			}
		}
	}
}

// flipping any single bit of the first proof element must be detected
func TestProofBitFlip(t *testing.T) {

	const n = 12
	leaves := makeLeaves(n)
	tree := merkle.FullTree(leaves)
	root := merkle.Root(tree)

	proof, err := merkle.ProofFor(tree, n, 5)
	assert.Nil(t, err, "proof extraction failed")

	for byteIndex := 0; byteIndex < merkle.DigestLength; byteIndex += 1 {
		for bit := uint(0); bit < 8; bit += 1 {
			corrupted := make([]merkle.Digest, len(proof))
			copy(corrupted, proof)
			corrupted[0][byteIndex] ^= 1 << bit
			if merkle.Verify(leaves[5], 5, corrupted, root, n) {
				t.Fatalf("corrupted proof accepted: byte: %d  bit: %d", byteIndex, bit)
			}
		}
	}
}

func TestVerifyFailsClosed(t *testing.T) {

	const n = 8
	leaves := makeLeaves(n)
	tree := merkle.FullTree(leaves)
	root := merkle.Root(tree)

	proof, err := merkle.ProofFor(tree, n, 3)
	assert.Nil(t, err, "proof extraction failed")

	// offset out of range
	assert.False(t, merkle.Verify(leaves[3], n, proof, root, n), "offset == leafCount accepted")

	// zero leaf count
	assert.False(t, merkle.Verify(leaves[3], 3, proof, root, 0), "zero leaf count accepted")

	// truncated proof
	assert.False(t, merkle.Verify(leaves[3], 3, proof[:len(proof)-1], root, n), "short proof accepted")

	// padded proof
	padded := append(append([]merkle.Digest{}, proof...), proof[0])
	assert.False(t, merkle.Verify(leaves[3], 3, padded, root, n), "long proof accepted")

	// wrong leaf for the offset
	assert.False(t, merkle.Verify(leaves[4], 3, proof, root, n), "wrong leaf accepted")

	// wrong offset for the leaf
	assert.False(t, merkle.Verify(leaves[3], 4, proof, root, n), "wrong offset accepted")
}

// a single leaf tree is its own root with an empty proof
func TestSingleLeafTree(t *testing.T) {

	leaves := makeLeaves(1)
	tree := merkle.FullTree(leaves)
	root := merkle.Root(tree)

	assert.Equal(t, leaves[0], root, "single leaf root mismatch")

	proof, err := merkle.ProofFor(tree, 1, 0)
	assert.Nil(t, err, "proof extraction failed")
	assert.Equal(t, 0, len(proof), "single leaf proof not empty")

	assert.True(t, merkle.Verify(leaves[0], 0, proof, root, 1), "single leaf proof rejected")
	assert.False(t, merkle.Verify(leaves[0], 1, proof, root, 1), "offset 1 accepted for single leaf")
}

func TestProofForRange(t *testing.T) {
	tree := merkle.FullTree(makeLeaves(4))

	_, err := merkle.ProofFor(tree, 4, 4)
	assert.NotNil(t, err, "out of range proof extraction succeeded")
}
