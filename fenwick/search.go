// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fenwick

import (
	"github.com/bitmark-inc/custodyd/fault"
)

// Resolve - find the slot whose leaf range contains a global offset
//
// walks the implicit binary structure of the counter array from the
// largest block downwards: a block is entered whenever the
// cumulative sum so far plus the block's counter still does not
// exceed the target, which also steps over tombstoned slots since
// their counters are zero
//
// returns the owning slot and the offset local to that slot
func (tree *Tree) Resolve(globalOffset uint64) (uint64, uint64, error) {

	if globalOffset >= tree.total {
		return 0, 0, fault.ErrOffsetOutOfRange
	}

	position := uint64(0)
	remaining := globalOffset

	for block := tree.capacity; block > 0; block >>= 1 {
		next := position + block
		if next <= tree.capacity && tree.counts[next] <= remaining {
			remaining -= tree.counts[next]
			position = next
		}
	}

	// position counts the slots wholly before the target
	return position, remaining, nil
}
