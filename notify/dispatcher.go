// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notify

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/counter"
	"github.com/bitmark-inc/custodyd/provider"
)

// Dispatcher - fan out events to registered listeners
//
// calls are synchronous within the reporting operation, but each
// listener runs behind a result swallowing boundary so its
// failures cannot propagate back into the engine
type Dispatcher struct {
	log       *logger.L
	listeners []Listener

	proofsAccepted counter.Counter
	faultsRecorded counter.Counter
}

// NewDispatcher - create an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		log: logger.New("notify"),
	}
}

// Register - attach a listener
//
// not safe after the engine is serving operations; register all
// listeners during startup
func (dispatcher *Dispatcher) Register(listener Listener) {
	dispatcher.listeners = append(dispatcher.listeners, listener)
}

// ProofsAccepted - running count of accepted proof submissions
func (dispatcher *Dispatcher) ProofsAccepted() uint64 {
	return dispatcher.proofsAccepted.Uint64()
}

// FaultsRecorded - running count of recorded faults
func (dispatcher *Dispatcher) FaultsRecorded() uint64 {
	return dispatcher.faultsRecorded.Uint64()
}

// the swallowing boundary: log and discard errors and panics
func (dispatcher *Dispatcher) each(name string, fn func(Listener) error) {
	for i, listener := range dispatcher.listeners {
		func() {
			defer func() {
				if r := recover(); nil != r {
					dispatcher.log.Errorf("%s: listener: %d  panic: %v", name, i, r)
				}
			}()
			if err := fn(listener); nil != err {
				dispatcher.log.Errorf("%s: listener: %d  error: %s", name, i, err)
			}
		}()
	}
}

// Listener interface, so a dispatcher can itself be chained

func (dispatcher *Dispatcher) OnDataSetCreated(dataSetId uint64, owner provider.Identity) error {
	dispatcher.log.Infof("data set created: %d  owner: %s", dataSetId, owner)
	dispatcher.each("data set created", func(l Listener) error {
		return l.OnDataSetCreated(dataSetId, owner)
	})
	return nil
}

func (dispatcher *Dispatcher) OnPiecesAdded(dataSetId uint64, pieceIds []uint64) error {
	dispatcher.log.Infof("pieces added: %d  pieces: %v", dataSetId, pieceIds)
	dispatcher.each("pieces added", func(l Listener) error {
		return l.OnPiecesAdded(dataSetId, pieceIds)
	})
	return nil
}

func (dispatcher *Dispatcher) OnPiecesDeleted(dataSetId uint64, pieceIds []uint64) error {
	dispatcher.log.Infof("pieces deleted: %d  pieces: %v", dataSetId, pieceIds)
	dispatcher.each("pieces deleted", func(l Listener) error {
		return l.OnPiecesDeleted(dataSetId, pieceIds)
	})
	return nil
}

func (dispatcher *Dispatcher) OnProofAccepted(dataSetId uint64, epochNumber uint64, challengeCount int) error {
	dispatcher.proofsAccepted.Increment()
	dispatcher.log.Infof("proof accepted: %d  epoch: %d  challenges: %d", dataSetId, epochNumber, challengeCount)
	dispatcher.each("proof accepted", func(l Listener) error {
		return l.OnProofAccepted(dataSetId, epochNumber, challengeCount)
	})
	return nil
}

func (dispatcher *Dispatcher) OnFault(dataSetId uint64, epochNumber uint64) error {
	dispatcher.faultsRecorded.Increment()
	dispatcher.log.Warnf("fault: %d  epoch: %d", dataSetId, epochNumber)
	dispatcher.each("fault", func(l Listener) error {
		return l.OnFault(dataSetId, epochNumber)
	})
	return nil
}

func (dispatcher *Dispatcher) OnOwnershipTransferred(dataSetId uint64, previousOwner provider.Identity, newOwner provider.Identity) error {
	dispatcher.log.Infof("ownership transferred: %d  from: %s  to: %s", dataSetId, previousOwner, newOwner)
	dispatcher.each("ownership transferred", func(l Listener) error {
		return l.OnOwnershipTransferred(dataSetId, previousOwner, newOwner)
	})
	return nil
}

func (dispatcher *Dispatcher) OnDataSetDeleted(dataSetId uint64) error {
	dispatcher.log.Infof("data set deleted: %d", dataSetId)
	dispatcher.each("data set deleted", func(l Listener) error {
		return l.OnDataSetDeleted(dataSetId)
	})
	return nil
}
