// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

// Verify - check that a claimed leaf sits at localOffset beneath root
//
// recomputes the root bottom-up, taking the left/right order of each
// pairing from the corresponding bit of localOffset, least
// significant bit first
//
// fails closed: a proof of the wrong length, an offset beyond the
// leaf count or a root mismatch all return false
//
// pure function, safe to call concurrently
func Verify(leaf Digest, localOffset uint64, proof []Digest, root Digest, leafCount uint64) bool {

	if 0 == leafCount || localOffset >= leafCount {
		return false
	}

	if len(proof) != ProofLength(leafCount) {
		return false
	}

	hash := leaf
	index := localOffset
	for _, sibling := range proof {
		if 0 == index&1 {
			hash = NewDigest(append(hash[:], sibling[:]...))
		} else {
			hash = NewDigest(append(sibling[:], hash[:]...))
		}
		index >>= 1
	}

	return hash == root
}
