// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notify - event notification for the verification engine
//
// Listeners observe data set lifecycle events.  Notification is
// best effort: a listener error or panic is logged and swallowed,
// it never rolls back the state transition being reported.
package notify

import (
	"github.com/bitmark-inc/custodyd/provider"
)

// Listener - callback contract for data set events
//
// implementations must treat every call as read only with respect
// to the engine; returned errors are recorded but have no effect
type Listener interface {
	OnDataSetCreated(dataSetId uint64, owner provider.Identity) error
	OnPiecesAdded(dataSetId uint64, pieceIds []uint64) error
	OnPiecesDeleted(dataSetId uint64, pieceIds []uint64) error
	OnProofAccepted(dataSetId uint64, epochNumber uint64, challengeCount int) error
	OnFault(dataSetId uint64, epochNumber uint64) error
	OnOwnershipTransferred(dataSetId uint64, previousOwner provider.Identity, newOwner provider.Identity) error
	OnDataSetDeleted(dataSetId uint64) error
}
