// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fenwick

import (
	"fmt"
)

// CheckConsistency - validate the counter array against the raw slot values
//
// only used by tests and diagnostics
func (tree *Tree) CheckConsistency() error {

	sum := uint64(0)
	count := uint64(0)
	for slot := uint64(0); slot < tree.nextSlot; slot += 1 {
		if prefix := tree.PrefixLeaves(slot); prefix != sum {
			return fmt.Errorf("slot: %d  prefix: %d  expected: %d", slot, prefix, sum)
		}
		sum += tree.values[slot]
		if 0 != tree.values[slot] {
			count += 1
		}
	}

	if sum != tree.total {
		return fmt.Errorf("total: %d  expected: %d", tree.total, sum)
	}
	if count != tree.active {
		return fmt.Errorf("active: %d  expected: %d", tree.active, count)
	}
	return nil
}
