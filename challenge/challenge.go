// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package challenge - derive challenge offsets from beacon randomness
//
// The sequence is a pure function of the beacon seed, the data set
// id and the challenge number, reduced modulo the current leaf
// total.  Any observer holding the same inputs re-derives the same
// sequence, so a submitted proof set can be checked independently.
//
// The seed must come from an epoch already finalised before the
// submitting operation began; that gating is enforced by the beacon
// and the data set state machine, not here.
package challenge

import (
	"encoding/binary"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
)

// Derive - produce count global leaf offsets, each below totalLeaves
//
// offset[i] = SHA3-256(seed ‖ dataSetId ‖ i) reduced modulo totalLeaves
func Derive(seed merkle.Digest, dataSetId uint64, totalLeaves uint64, count int) ([]uint64, error) {

	if 0 == totalLeaves {
		return nil, fault.ErrInsufficientLeaves
	}
	if count <= 0 {
		return nil, fault.ErrInvalidChallengeCount
	}

	offsets := make([]uint64, count)

	var buffer [merkle.DigestLength + 16]byte
	copy(buffer[:], seed[:])
	binary.BigEndian.PutUint64(buffer[merkle.DigestLength:], dataSetId)

	for i := 0; i < count; i += 1 {
		binary.BigEndian.PutUint64(buffer[merkle.DigestLength+8:], uint64(i))
		digest := merkle.NewDigest(buffer[:])
		offsets[i] = binary.BigEndian.Uint64(digest[:8]) % totalLeaves
	}

	return offsets, nil
}
