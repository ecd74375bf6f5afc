// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"github.com/bitmark-inc/custodyd/fault"
)

// compute a full merkle tree from a set of leaf digests
//
// structure of the result is:
//   1. N leaf digests
//   2. level 1..m digests
//   3. merkle root digest
//
// an odd node at any level is hashed with itself
func FullTree(leaves []Digest) []Digest {

	leafCount := len(leaves)
	if 0 == leafCount {
		return nil
	}

	// compute length of leaves + all tree levels including root
	totalLength := 1 // all leaves + space for the final root
	for n := leafCount; n > 1; n = (n + 1) / 2 {
		totalLength += n
	}

	// add initial leaves
	tree := make([]Digest, totalLength)
	copy(tree[:], leaves)

	n := leafCount
	j := 0
	for workLength := leafCount; workLength > 1; workLength = (workLength + 1) / 2 {
		for i := 0; i < workLength; i += 2 {
			k := j + 1
			if i+1 == workLength {
				k = j // compensate for odd number
			}
			tree[n] = NewDigest(append(tree[j][:], tree[k][:]...))
			n += 1
			j = k + 1
		}
	}
	return tree
}

// Root - the root digest of a tree produced by FullTree
func Root(tree []Digest) Digest {
	return tree[len(tree)-1]
}

// ProofFor - extract the sibling path for one leaf from a full tree
//
// the proof contains exactly one sibling digest per tree level,
// ordered from the leaf level upwards
func ProofFor(tree []Digest, leafCount int, index uint64) ([]Digest, error) {

	if leafCount <= 0 || index >= uint64(leafCount) {
		return nil, fault.ErrOffsetOutOfRange
	}

	proof := make([]Digest, 0, ProofLength(uint64(leafCount)))

	levelStart := 0
	idx := index
	for width := leafCount; width > 1; width = (width + 1) / 2 {
		sibling := idx ^ 1
		if sibling >= uint64(width) {
			sibling = idx // odd node pairs with itself
		}
		proof = append(proof, tree[levelStart+int(sibling)])
		levelStart += width
		idx >>= 1
	}
	return proof, nil
}

// ProofLength - number of sibling digests required for a tree of leafCount leaves
//
// this is ceil(log2(leafCount)); a single leaf tree needs no proof
func ProofLength(leafCount uint64) int {
	length := 0
	for n := uint64(1); n < leafCount; n <<= 1 {
		length += 1
	}
	return length
}
