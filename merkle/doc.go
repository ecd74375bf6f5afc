// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merkle - binary Merkle trees over 32 byte leaves
//
// A piece of committed data is identified by the root of a binary
// Merkle tree built over its 32 byte leaves.  An odd node at any
// level is paired with itself.  The package provides the tree
// builder and proof extraction for the prover side, and a pure
// stateless inclusion verifier for the verification engine.
package merkle
