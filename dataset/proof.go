// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset

import (
	"github.com/bitmark-inc/custodyd/challenge"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/provider"
)

// Proof - one inclusion proof for one challenged offset
type Proof struct {
	Leaf   merkle.Digest   `json:"leaf"`
	Offset uint64          `json:"offset,string"` // global leaf offset being answered
	Path   []merkle.Digest `json:"path"`          // sibling digests, leaf level first
}

// Challenge - one derived challenge and its resolved position
type Challenge struct {
	Offset      uint64 `json:"offset,string"`
	PieceId     uint64 `json:"pieceId,string"`
	LocalOffset uint64 `json:"localOffset,string"`
}

// SubmitProof - answer the open challenge window
//
// every challenged offset must be answered in order and every
// inclusion proof must verify; the whole submission is accepted or
// rejected as one unit and a rejection changes nothing
func SubmitProof(dataSetId uint64, caller provider.Identity, proofs []Proof) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	set, err := get(dataSetId)
	if nil != err {
		return err
	}
	if caller != set.owner {
		return fault.ErrNotAuthorised
	}

	currentEpoch := globalData.clock.Current()
	set.refresh(currentEpoch)

	if AwaitingProof != set.state {
		if Empty == set.state {
			return fault.ErrDataSetEmpty
		}
		return fault.ErrChallengeWindowClosed
	}
	if currentEpoch >= set.windowDeadline() {
		return fault.ErrChallengeWindowClosed
	}

	challengeEpoch := set.nextChallengeEpoch

	// the seed is fixed and in the past before any prover can react
	seed, err := globalData.randomness.Randomness(challengeEpoch)
	if nil != err {
		return err
	}

	totalLeaves := set.index.TotalLeaves()
	offsets, err := challenge.Derive(seed, dataSetId, totalLeaves, globalData.config.ChallengeCount)
	if nil != err {
		return err
	}

	if len(proofs) != len(offsets) {
		return fault.ErrWrongProofCount
	}

	// verification is read only: nothing below mutates until all
	// proofs have passed
	for i, offset := range offsets {
		proof := proofs[i]
		if proof.Offset != offset {
			return fault.ErrProofInvalid
		}

		pieceId, localOffset, err := set.index.Resolve(offset)
		if nil != err {
			return fault.ErrProofInvalid
		}
		piece := set.pieces[pieceId]

		if len(proof.Path) != merkle.ProofLength(piece.LeafCount()) {
			return fault.ErrInvalidProofShape
		}
		if !merkle.Verify(proof.Leaf, localOffset, proof.Path, piece.RootDigest, piece.LeafCount()) {
			return fault.ErrProofInvalid
		}
	}

	set.state = Proven
	set.nextChallengeEpoch = currentEpoch + set.challengeDelay
	set.save()

	globalData.log.Infof("data set: %d  proof accepted: epoch: %d  challenges: %d",
		dataSetId, challengeEpoch, len(offsets))
	notifyListener(func(l notifyTarget) error {
		return l.OnProofAccepted(dataSetId, challengeEpoch, len(offsets))
	})

	return nil
}

// Challenges - the offsets a prover must answer for the open window
//
// read only; fails if no window is open or its seed is not yet
// available
func Challenges(dataSetId uint64) ([]Challenge, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}

	set, err := get(dataSetId)
	if nil != err {
		return nil, err
	}

	currentEpoch := globalData.clock.Current()
	set.refresh(currentEpoch)

	if AwaitingProof != set.state {
		if Empty == set.state {
			return nil, fault.ErrDataSetEmpty
		}
		return nil, fault.ErrChallengeWindowClosed
	}
	if currentEpoch >= set.windowDeadline() {
		return nil, fault.ErrChallengeWindowClosed
	}

	seed, err := globalData.randomness.Randomness(set.nextChallengeEpoch)
	if nil != err {
		return nil, err
	}

	offsets, err := challenge.Derive(seed, dataSetId, set.index.TotalLeaves(), globalData.config.ChallengeCount)
	if nil != err {
		return nil, err
	}

	challenges := make([]Challenge, len(offsets))
	for i, offset := range offsets {
		pieceId, localOffset, err := set.index.Resolve(offset)
		if nil != err {
			return nil, err
		}
		challenges[i] = Challenge{
			Offset:      offset,
			PieceId:     pieceId,
			LocalOffset: localOffset,
		}
	}

	return challenges, nil
}
