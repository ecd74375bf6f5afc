// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fenwick

// initial number of slots, doubled as needed
const initialCapacity = 16

// Tree - type to hold the slot counters
//
// counts is the classic one based fenwick array over capacity
// slots, capacity always a power of two so that the top-down
// search can walk halving block sizes; values holds the raw leaf
// count per slot for point queries and deletion
type Tree struct {
	counts   []uint64
	values   []uint64
	capacity uint64
	nextSlot uint64
	active   uint64
	total    uint64
}

// New - create an initially empty tree
func New() *Tree {
	return &Tree{
		counts:   make([]uint64, initialCapacity+1),
		values:   make([]uint64, 0, initialCapacity),
		capacity: initialCapacity,
		nextSlot: 0,
		active:   0,
		total:    0,
	}
}

// IsEmpty - true if no slot holds any leaves
func (tree *Tree) IsEmpty() bool {
	return 0 == tree.active
}

// Count - number of active (not tombstoned) slots
func (tree *Tree) Count() uint64 {
	return tree.active
}

// Slots - number of slots ever assigned, including tombstones
func (tree *Tree) Slots() uint64 {
	return tree.nextSlot
}

// TotalLeaves - sum of all active slot leaf counts
func (tree *Tree) TotalLeaves() uint64 {
	return tree.total
}

// LeafCount - leaf count of one slot, zero for tombstoned or unassigned
func (tree *Tree) LeafCount(slot uint64) uint64 {
	if slot >= tree.nextSlot {
		return 0
	}
	return tree.values[slot]
}

// PrefixLeaves - cumulative leaf count of all slots before slot
func (tree *Tree) PrefixLeaves(slot uint64) uint64 {
	if slot > tree.nextSlot {
		slot = tree.nextSlot
	}
	sum := uint64(0)
	for i := slot; i > 0; i -= i & (-i) {
		sum += tree.counts[i]
	}
	return sum
}

// ActiveSlots - ordered list of slots that still hold leaves
func (tree *Tree) ActiveSlots() []uint64 {
	slots := make([]uint64, 0, tree.active)
	for slot := uint64(0); slot < tree.nextSlot; slot += 1 {
		if 0 != tree.values[slot] {
			slots = append(slots, slot)
		}
	}
	return slots
}
