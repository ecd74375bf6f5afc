// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset

import (
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fenwick"
	"github.com/bitmark-inc/custodyd/piecerecord"
	"github.com/bitmark-inc/custodyd/provider"
)

// Create - register a new data set for a provider
//
// challengeDelay is the minimum epoch gap between a successful
// proof and the next challenge epoch
func Create(owner provider.Identity, challengeDelay uint64) (uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.ErrNotInitialised
	}
	if owner.IsZero() {
		return 0, fault.ErrInvalidIdentity
	}
	if 0 == challengeDelay {
		return 0, fault.ErrInvalidChallengeDelay
	}

	dataSetId := globalData.nextDataSetId
	globalData.nextDataSetId += 1

	set := &dataSet{
		id:             dataSetId,
		owner:          owner,
		state:          Empty,
		challengeDelay: challengeDelay,
		pieces:         make(map[uint64]*piecerecord.Piece),
		index:          fenwick.New(),
	}
	globalData.sets[dataSetId] = set
	set.save()

	globalData.log.Infof("created data set: %d  owner: %s  delay: %d", dataSetId, owner, challengeDelay)
	notifyListener(func(l notifyTarget) error {
		return l.OnDataSetCreated(dataSetId, owner)
	})

	return dataSetId, nil
}

// Transfer - hand a data set to a new owning provider
func Transfer(dataSetId uint64, caller provider.Identity, newOwner provider.Identity) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}
	if newOwner.IsZero() {
		return fault.ErrInvalidIdentity
	}

	set, err := get(dataSetId)
	if nil != err {
		return err
	}
	if caller != set.owner {
		return fault.ErrNotAuthorised
	}

	previousOwner := set.owner
	set.owner = newOwner
	set.save()

	globalData.log.Infof("transferred data set: %d  from: %s  to: %s", dataSetId, previousOwner, newOwner)
	notifyListener(func(l notifyTarget) error {
		return l.OnOwnershipTransferred(dataSetId, previousOwner, newOwner)
	})

	return nil
}

// Delete - remove a data set and all of its piece records
func Delete(dataSetId uint64, caller provider.Identity) error {
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

	for pieceId := range set.pieces {
		removePieceRecord(dataSetId, pieceId)
	}
	removeSetRecord(dataSetId)
	delete(globalData.sets, dataSetId)

	globalData.log.Infof("deleted data set: %d", dataSetId)
	notifyListener(func(l notifyTarget) error {
		return l.OnDataSetDeleted(dataSetId)
	})

	return nil
}
