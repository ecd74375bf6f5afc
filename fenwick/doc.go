// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fenwick - a binary indexed tree over piece slots
//
// Presents the concatenation of all active pieces' leaves as one
// zero based offset space.  Each slot stores the leaf count of the
// piece occupying it; slots are assigned monotonically and are
// tombstoned on delete, never reused, so offset arithmetic for
// slots after a deletion stays stable.
//
// Prefix sums and point updates are logarithmic in the number of
// slots.  Offset resolution walks the implicit binary structure of
// the tree top-down, so no rebuild is ever needed after a mutation.
//
// Note: an individual tree is not thread safe; it is owned by a
//       single data set and protected by the data set registry lock.
package fenwick
