// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/beacon"
	"github.com/bitmark-inc/custodyd/epoch"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fenwick"
	"github.com/bitmark-inc/custodyd/notify"
	"github.com/bitmark-inc/custodyd/piecerecord"
	"github.com/bitmark-inc/custodyd/provider"
	"github.com/bitmark-inc/custodyd/storage"
)

// one data set aggregate
//
// index slot numbers coincide with piece ids: both are assigned
// monotonically from zero and never reused
type dataSet struct {
	id                 uint64
	owner              provider.Identity
	state              State
	challengeDelay     uint64
	nextChallengeEpoch uint64
	nextPieceId        uint64
	totalSize          uint64
	pieces             map[uint64]*piecerecord.Piece
	index              *fenwick.Tree
}

// Config - engine parameters fixed at initialise
type Config struct {
	ChallengeCount int    // leaves challenged per proving period
	WindowLength   uint64 // epochs a challenge window stays open
	DataSetsPool   storage.Handle
	PiecesPool     storage.Handle
}

// globals
type globalDataType struct {
	sync.RWMutex
	log           *logger.L
	clock         epoch.Clock
	randomness    beacon.Beacon
	listener      notify.Listener
	validator     piecerecord.Validator
	config        Config
	sets          map[uint64]*dataSet
	nextDataSetId uint64

	// set once during initialise
	initialised bool
}

// global storage
var globalData globalDataType

// Initialise - set up the data set registry
//
// pools may be left nil to run memory only (tests)
func Initialise(clock epoch.Clock, randomness beacon.Beacon, listener notify.Listener, validator piecerecord.Validator, config Config) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if config.ChallengeCount <= 0 {
		return fault.ErrInvalidChallengeCount
	}
	if 0 == config.WindowLength {
		return fault.ErrInvalidChallengeDelay
	}

	globalData.log = logger.New("dataset")
	globalData.log.Info("starting…")

	globalData.clock = clock
	globalData.randomness = randomness
	globalData.listener = listener
	globalData.validator = validator
	globalData.config = config
	globalData.sets = make(map[uint64]*dataSet)
	globalData.nextDataSetId = 1

	if err := restore(); nil != err {
		return err
	}

	globalData.initialised = true
	return nil
}

// Finalise - drop the registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.sets = nil
	globalData.initialised = false
	return nil
}

// fetch a data set, registry lock must be held
func get(dataSetId uint64) (*dataSet, error) {
	set, ok := globalData.sets[dataSetId]
	if !ok {
		return nil, fault.ErrDataSetNotFound
	}
	return set, nil
}

// flip a resting state to AwaitingProof once its window arrives
//
// Active, Proven and Faulted all rest until the scheduled epoch;
// registry lock must be held
func (set *dataSet) refresh(currentEpoch uint64) {
	switch set.state {
	case Active, Proven, Faulted:
		if currentEpoch >= set.nextChallengeEpoch {
			set.state = AwaitingProof
		}
	}
}

// deadline of the currently scheduled window
func (set *dataSet) windowDeadline() uint64 {
	return set.nextChallengeEpoch + globalData.config.WindowLength
}

// alias so call sites read as the capability they use
type notifyTarget = notify.Listener

// notification boundary: a listener failure or panic must never
// affect the state transition being reported
func notifyListener(fn func(notifyTarget) error) {
	if nil == globalData.listener {
		return
	}
	defer func() {
		if r := recover(); nil != r {
			globalData.log.Errorf("listener panic: %v", r)
		}
	}()
	if err := fn(globalData.listener); nil != err {
		globalData.log.Errorf("listener error: %s", err)
	}
}
