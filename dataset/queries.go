// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset

import (
	"sort"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/piecerecord"
	"github.com/bitmark-inc/custodyd/provider"
)

// Record - read only view of one data set
type Record struct {
	Id                 uint64            `json:"id,string"`
	Owner              provider.Identity `json:"owner"`
	State              State             `json:"state"`
	ChallengeDelay     uint64            `json:"challengeDelay,string"`
	NextChallengeEpoch uint64            `json:"nextChallengeEpoch,string"`
	TotalSize          uint64            `json:"totalSize,string"`
	TotalLeaves        uint64            `json:"totalLeaves,string"`
	PieceCount         uint64            `json:"pieceCount,string"`
}

// Get - snapshot of one data set
func Get(dataSetId uint64) (*Record, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}

	set, err := get(dataSetId)
	if nil != err {
		return nil, err
	}

	return &Record{
		Id:                 set.id,
		Owner:              set.owner,
		State:              set.effectiveState(globalData.clock.Current()),
		ChallengeDelay:     set.challengeDelay,
		NextChallengeEpoch: set.nextChallengeEpoch,
		TotalSize:          set.totalSize,
		TotalLeaves:        set.index.TotalLeaves(),
		PieceCount:         set.index.Count(),
	}, nil
}

// Resolve - map a global leaf offset to its owning piece
func Resolve(dataSetId uint64, globalOffset uint64) (uint64, uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, 0, fault.ErrNotInitialised
	}

	set, err := get(dataSetId)
	if nil != err {
		return 0, 0, err
	}
	return set.index.Resolve(globalOffset)
}

// TotalSize - active byte total of one data set
func TotalSize(dataSetId uint64) (uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.ErrNotInitialised
	}

	set, err := get(dataSetId)
	if nil != err {
		return 0, err
	}
	return set.totalSize, nil
}

// NextChallengeEpoch - epoch of the current or next challenge window
func NextChallengeEpoch(dataSetId uint64) (uint64, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0, fault.ErrNotInitialised
	}

	set, err := get(dataSetId)
	if nil != err {
		return 0, err
	}
	return set.nextChallengeEpoch, nil
}

// Pieces - all active pieces ordered by id
func Pieces(dataSetId uint64) ([]piecerecord.Piece, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil, fault.ErrNotInitialised
	}

	set, err := get(dataSetId)
	if nil != err {
		return nil, err
	}

	pieces := make([]piecerecord.Piece, 0, len(set.pieces))
	for _, piece := range set.pieces {
		pieces = append(pieces, *piece)
	}
	sort.Slice(pieces, func(i int, j int) bool {
		return pieces[i].Id < pieces[j].Id
	})
	return pieces, nil
}

// Lapsed - ids of data sets whose challenge window deadline has passed
//
// the daemon watchdog logs these; the sets stay answerable through
// NextProvingPeriod which records the fault
func Lapsed() []uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil
	}

	currentEpoch := globalData.clock.Current()
	lapsed := []uint64{}
	for id, set := range globalData.sets {
		if AwaitingProof == set.effectiveState(currentEpoch) && currentEpoch >= set.windowDeadline() {
			lapsed = append(lapsed, id)
		}
	}
	sort.Slice(lapsed, func(i int, j int) bool {
		return lapsed[i] < lapsed[j]
	})
	return lapsed
}

// Count - number of registered data sets
func Count() int {
	globalData.RLock()
	defer globalData.RUnlock()
	return len(globalData.sets)
}

// read only variant of refresh for queries under the shared lock
func (set *dataSet) effectiveState(currentEpoch uint64) State {
	switch set.state {
	case Active, Proven, Faulted:
		if currentEpoch >= set.nextChallengeEpoch {
			return AwaitingProof
		}
	}
	return set.state
}
