// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fenwick

import (
	"github.com/bitmark-inc/custodyd/fault"
)

// Append - occupy the next free slot with a piece's leaf count
//
// returns the assigned slot number; slots are never reused
func (tree *Tree) Append(leafCount uint64) (uint64, error) {

	if 0 == leafCount {
		return 0, fault.ErrInvalidLeafCount
	}

	if tree.nextSlot >= tree.capacity {
		tree.grow()
	}

	slot := tree.nextSlot
	tree.nextSlot += 1
	tree.values = append(tree.values, leafCount)

	tree.add(slot, leafCount)
	tree.active += 1
	tree.total += leafCount

	return slot, nil
}

// Skip - assign the next slot already tombstoned
//
// used when rebuilding a tree from stored records: a piece deleted
// in a previous run must still consume its slot number
func (tree *Tree) Skip() uint64 {

	if tree.nextSlot >= tree.capacity {
		tree.grow()
	}

	slot := tree.nextSlot
	tree.nextSlot += 1
	tree.values = append(tree.values, 0)

	return slot
}

// Delete - tombstone a slot, reclaiming its leaf range
//
// the slot stays assigned so later slots keep their positions;
// resolving any offset will simply skip the zeroed contribution
func (tree *Tree) Delete(slot uint64) error {

	if slot >= tree.nextSlot || 0 == tree.values[slot] {
		return fault.ErrPieceNotFound
	}

	leafCount := tree.values[slot]
	tree.values[slot] = 0

	tree.subtract(slot, leafCount)
	tree.active -= 1
	tree.total -= leafCount

	return nil
}

// internal: point increment at a zero based slot
func (tree *Tree) add(slot uint64, delta uint64) {
	for i := slot + 1; i <= tree.capacity; i += i & (-i) {
		tree.counts[i] += delta
	}
}

// internal: point decrement at a zero based slot
func (tree *Tree) subtract(slot uint64, delta uint64) {
	for i := slot + 1; i <= tree.capacity; i += i & (-i) {
		tree.counts[i] -= delta
	}
}

// internal: double the capacity, re-accumulating all counters
func (tree *Tree) grow() {

	tree.capacity *= 2
	tree.counts = make([]uint64, tree.capacity+1)

	for slot, leafCount := range tree.values {
		if 0 != leafCount {
			tree.add(uint64(slot), leafCount)
		}
	}
}
