// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fenwick_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fenwick"
)

// the example from the design: pieces of 4, 2 and 6 leaves
func TestResolveRanges(t *testing.T) {

	tree := fenwick.New()

	for _, leafCount := range []uint64{4, 2, 6} {
		_, err := tree.Append(leafCount)
		assert.Nil(t, err, "append failed")
	}

	assert.Equal(t, uint64(12), tree.TotalLeaves(), "total leaves")

	testData := []struct {
		offset uint64
		slot   uint64
		local  uint64
	}{
		{0, 0, 0},
		{3, 0, 3},
		{4, 1, 0},
		{5, 1, 1},
		{6, 2, 0},
		{11, 2, 5},
	}

	for i, item := range testData {
		slot, local, err := tree.Resolve(item.offset)
		if nil != err {
			t.Fatalf("%d: resolve(%d) error: %s", i, item.offset, err)
		}
		if slot != item.slot || local != item.local {
			t.Errorf("%d: resolve(%d): actual: %d,%d  expected: %d,%d",
				i, item.offset, slot, local, item.slot, item.local)
		}
	}

	_, _, err := tree.Resolve(12)
	assert.Equal(t, fault.ErrOffsetOutOfRange, err, "resolve(12)")
}

func TestAppendZero(t *testing.T) {
	tree := fenwick.New()
	_, err := tree.Append(0)
	assert.Equal(t, fault.ErrInvalidLeafCount, err, "append(0)")
}

// a deleted middle slot must vanish from the offset space without
// shifting the identity of later slots
func TestDeleteTombstones(t *testing.T) {

	tree := fenwick.New()

	for _, leafCount := range []uint64{4, 2, 6} {
		_, err := tree.Append(leafCount)
		assert.Nil(t, err, "append failed")
	}

	err := tree.Delete(1)
	assert.Nil(t, err, "delete failed")

	assert.Equal(t, uint64(10), tree.TotalLeaves(), "total leaves after delete")
	assert.Equal(t, uint64(2), tree.Count(), "active slots after delete")
	assert.Equal(t, uint64(3), tree.Slots(), "assigned slots after delete")
	assert.Equal(t, uint64(0), tree.LeafCount(1), "tombstoned leaf count")
	assert.Equal(t, []uint64{0, 2}, tree.ActiveSlots(), "active slot list")

	// offsets 4..9 now belong to the third piece
	for offset := uint64(4); offset < 10; offset += 1 {
		slot, local, err := tree.Resolve(offset)
		assert.Nil(t, err, "resolve failed")
		assert.Equal(t, uint64(2), slot, "slot after tombstone")
		assert.Equal(t, offset-4, local, "local offset after tombstone")
	}

	_, _, err = tree.Resolve(10)
	assert.Equal(t, fault.ErrOffsetOutOfRange, err, "stale offset accepted")

	// double delete and unknown slot
	assert.Equal(t, fault.ErrPieceNotFound, tree.Delete(1), "double delete")
	assert.Equal(t, fault.ErrPieceNotFound, tree.Delete(7), "unknown slot")
}

// interleaved random mutation must preserve all invariants and keep
// every offset resolving to exactly the covering slot
func TestRandomMutation(t *testing.T) {

	tree := fenwick.New()
	r := rand.New(rand.NewSource(0x637573746f6479)) // fixed seed for repeatability

	live := make(map[uint64]uint64) // slot -> leaf count

	for round := 0; round < 500; round += 1 {

		if 0 == len(live) || r.Intn(3) > 0 {
			leafCount := uint64(r.Intn(64) + 1)
			slot, err := tree.Append(leafCount)
			if nil != err {
				t.Fatalf("round: %d  append error: %s", round, err)
			}
			live[slot] = leafCount
		} else {
			for slot := range live {
				if nil != tree.Delete(slot) {
					t.Fatalf("round: %d  delete %d failed", round, slot)
				}
				delete(live, slot)
				break
			}
		}

		if err := tree.CheckConsistency(); nil != err {
			t.Fatalf("round: %d  inconsistent: %s", round, err)
		}

		expectedTotal := uint64(0)
		for _, leafCount := range live {
			expectedTotal += leafCount
		}
		if tree.TotalLeaves() != expectedTotal {
			t.Fatalf("round: %d  total: actual: %d  expected: %d",
				round, tree.TotalLeaves(), expectedTotal)
		}
	}

	// full sweep: every global offset covered exactly once, in slot order
	offset := uint64(0)
	for _, slot := range tree.ActiveSlots() {
		for local := uint64(0); local < tree.LeafCount(slot); local += 1 {
			s, l, err := tree.Resolve(offset)
			if nil != err {
				t.Fatalf("resolve(%d) error: %s", offset, err)
			}
			if s != slot || l != local {
				t.Fatalf("resolve(%d): actual: %d,%d  expected: %d,%d", offset, s, l, slot, local)
			}
			offset += 1
		}
	}
	if offset != tree.TotalLeaves() {
		t.Fatalf("sweep covered %d offsets, total is %d", offset, tree.TotalLeaves())
	}
}

// a skipped slot behaves exactly like a deleted one
func TestSkip(t *testing.T) {

	tree := fenwick.New()

	slot, err := tree.Append(4)
	assert.Nil(t, err, "append failed")
	assert.Equal(t, uint64(0), slot, "first slot")

	assert.Equal(t, uint64(1), tree.Skip(), "skipped slot number")

	slot, err = tree.Append(6)
	assert.Nil(t, err, "append failed")
	assert.Equal(t, uint64(2), slot, "slot after skip")

	assert.Equal(t, uint64(10), tree.TotalLeaves(), "total leaves")
	assert.Equal(t, []uint64{0, 2}, tree.ActiveSlots(), "active slots")
	assert.Nil(t, tree.CheckConsistency(), "inconsistent after skip")

	s, local, err := tree.Resolve(4)
	assert.Nil(t, err, "resolve failed")
	assert.Equal(t, uint64(2), s, "slot for offset 4")
	assert.Equal(t, uint64(0), local, "local offset")
}

// growth past the initial capacity must not disturb prefix sums
func TestGrowth(t *testing.T) {

	tree := fenwick.New()

	const slots = 100
	for i := uint64(0); i < slots; i += 1 {
		slot, err := tree.Append(i + 1)
		assert.Nil(t, err, "append failed")
		assert.Equal(t, i, slot, "slot numbering")
	}

	assert.Equal(t, uint64(slots*(slots+1)/2), tree.TotalLeaves(), "total leaves")
	assert.Nil(t, tree.CheckConsistency(), "inconsistent after growth")

	// prefix of slot k is k(k+1)/2
	for k := uint64(0); k <= slots; k += 1 {
		assert.Equal(t, k*(k+1)/2, tree.PrefixLeaves(k), "prefix sum")
	}
}
