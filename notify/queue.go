// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notify

import (
	"github.com/bitmark-inc/custodyd/provider"
)

// default queue size
const queueSize = 1000

// EventType - kind of a queued event
type EventType int

// all event types
const (
	EventDataSetCreated EventType = iota
	EventPiecesAdded
	EventPiecesDeleted
	EventProofAccepted
	EventFault
	EventOwnershipTransferred
	EventDataSetDeleted
)

// String - event type name for logging
func (e EventType) String() string {
	switch e {
	case EventDataSetCreated:
		return "DataSetCreated"
	case EventPiecesAdded:
		return "PiecesAdded"
	case EventPiecesDeleted:
		return "PiecesDeleted"
	case EventProofAccepted:
		return "ProofAccepted"
	case EventFault:
		return "Fault"
	case EventOwnershipTransferred:
		return "OwnershipTransferred"
	case EventDataSetDeleted:
		return "DataSetDeleted"
	default:
		return "*Unknown*"
	}
}

// Event - one queued data set event
type Event struct {
	Type           EventType
	DataSetId      uint64
	Epoch          uint64
	PieceIds       []uint64
	ChallengeCount int
	Owner          provider.Identity
	PreviousOwner  provider.Identity
}

// Queue - a channel backed listener for in-process observers
//
// sends never block: events beyond the buffer are dropped, as the
// queue is an observation aid not a system of record
type Queue struct {
	events chan Event
}

// NewQueue - create a queue with the default buffer
func NewQueue() *Queue {
	return &Queue{
		events: make(chan Event, queueSize),
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Event {
	return queue.events
}

// non-blocking send
func (queue *Queue) send(event Event) error {
	select {
	case queue.events <- event:
	default: // drop when full
	}
	return nil
}

func (queue *Queue) OnDataSetCreated(dataSetId uint64, owner provider.Identity) error {
	return queue.send(Event{Type: EventDataSetCreated, DataSetId: dataSetId, Owner: owner})
}

func (queue *Queue) OnPiecesAdded(dataSetId uint64, pieceIds []uint64) error {
	return queue.send(Event{Type: EventPiecesAdded, DataSetId: dataSetId, PieceIds: pieceIds})
}

func (queue *Queue) OnPiecesDeleted(dataSetId uint64, pieceIds []uint64) error {
	return queue.send(Event{Type: EventPiecesDeleted, DataSetId: dataSetId, PieceIds: pieceIds})
}

func (queue *Queue) OnProofAccepted(dataSetId uint64, epochNumber uint64, challengeCount int) error {
	return queue.send(Event{Type: EventProofAccepted, DataSetId: dataSetId, Epoch: epochNumber, ChallengeCount: challengeCount})
}

func (queue *Queue) OnFault(dataSetId uint64, epochNumber uint64) error {
	return queue.send(Event{Type: EventFault, DataSetId: dataSetId, Epoch: epochNumber})
}

func (queue *Queue) OnOwnershipTransferred(dataSetId uint64, previousOwner provider.Identity, newOwner provider.Identity) error {
	return queue.send(Event{Type: EventOwnershipTransferred, DataSetId: dataSetId, PreviousOwner: previousOwner, Owner: newOwner})
}

func (queue *Queue) OnDataSetDeleted(dataSetId uint64) error {
	return queue.send(Event{Type: EventDataSetDeleted, DataSetId: dataSetId})
}
