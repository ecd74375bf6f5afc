// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset

import (
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/piecerecord"
	"github.com/bitmark-inc/custodyd/provider"
)

// PieceData - one piece as submitted by a provider
type PieceData struct {
	RootDigest merkle.Digest `json:"rootDigest"`
	Size       uint64        `json:"size,string"`
}

// AddPieces - commit new pieces to a data set
//
// permitted to the owning provider while the set is not inside a
// challenge window; every piece is validated before any is added
// so a bad batch leaves the set untouched
//
// returns the assigned piece ids
func AddPieces(dataSetId uint64, caller provider.Identity, pieces []PieceData) ([]uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}
	if 0 == len(pieces) {
		return nil, fault.ErrInvalidPieceSize
	}

	set, err := get(dataSetId)
	if nil != err {
		return nil, err
	}
	if caller != set.owner {
		return nil, fault.ErrNotAuthorised
	}

	currentEpoch := globalData.clock.Current()
	set.refresh(currentEpoch)

	switch set.state {
	case Empty, Active, Proven, Faulted:
		// mutable states
	default:
		return nil, fault.ErrChallengeWindowClosed
	}

	// validate everything before mutating anything
	for _, piece := range pieces {
		record := piecerecord.Piece{
			RootDigest: piece.RootDigest,
			Size:       piece.Size,
		}
		if err := record.CheckSize(); nil != err {
			return nil, err
		}
		if err := globalData.validator.Validate(piece.RootDigest, piece.Size); nil != err {
			return nil, err
		}
	}

	pieceIds := make([]uint64, 0, len(pieces))
	for _, piece := range pieces {
		record := &piecerecord.Piece{
			Id:         set.nextPieceId,
			RootDigest: piece.RootDigest,
			Size:       piece.Size,
		}

		slot, err := set.index.Append(record.LeafCount())
		if nil != err {
			// unreachable after CheckSize, any leaf count here is non zero
			return nil, err
		}
		if slot != record.Id {
			globalData.log.Criticalf("data set: %d  slot: %d  piece id: %d out of step", dataSetId, slot, record.Id)
			return nil, fault.ErrInvalidStructurePointer
		}

		set.pieces[record.Id] = record
		set.nextPieceId += 1
		set.totalSize += record.Size
		savePieceRecord(dataSetId, record)

		pieceIds = append(pieceIds, record.Id)
	}

	// first pieces open the challenge schedule
	if Empty == set.state {
		set.state = Active
		set.nextChallengeEpoch = currentEpoch + set.challengeDelay
	}
	set.save()

	globalData.log.Infof("data set: %d  added pieces: %v", dataSetId, pieceIds)
	notifyListener(func(l notifyTarget) error {
		return l.OnPiecesAdded(dataSetId, pieceIds)
	})

	return pieceIds, nil
}

// DeletePieces - logically remove pieces, reclaiming their leaf ranges
//
// slots are tombstoned, so remaining pieces keep their ids and any
// later challenge derivation only covers the reduced offset space
func DeletePieces(dataSetId uint64, caller provider.Identity, pieceIds []uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	if 0 == len(pieceIds) {
		return fault.ErrPieceNotFound
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

	switch set.state {
	case Active, Proven, Faulted:
		// mutable states
	default:
		return fault.ErrChallengeWindowClosed
	}

	// validate everything before mutating anything
	seen := make(map[uint64]struct{})
	for _, pieceId := range pieceIds {
		if _, ok := set.pieces[pieceId]; !ok {
			return fault.ErrPieceNotFound
		}
		if _, ok := seen[pieceId]; ok {
			return fault.ErrDuplicatePieceId
		}
		seen[pieceId] = struct{}{}
	}

	for _, pieceId := range pieceIds {
		if err := set.index.Delete(pieceId); nil != err {
			globalData.log.Criticalf("data set: %d  piece: %d  index delete: %s", dataSetId, pieceId, err)
			return err
		}
		set.totalSize -= set.pieces[pieceId].Size
		delete(set.pieces, pieceId)
		removePieceRecord(dataSetId, pieceId)
	}

	// removing the last piece stops the challenge schedule
	if set.index.IsEmpty() {
		set.state = Empty
		set.nextChallengeEpoch = 0
	}
	set.save()

	globalData.log.Infof("data set: %d  deleted pieces: %v", dataSetId, pieceIds)
	notifyListener(func(l notifyTarget) error {
		return l.OnPiecesDeleted(dataSetId, pieceIds)
	})

	return nil
}
