// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset

import (
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/provider"
)

// NextProvingPeriod - close a lapsed window and schedule the next
//
// callable by the owner once the current window's deadline has
// passed; a window that got no valid proof is acknowledged as a
// fault, which is the liveness path: a provider that lost data
// accepts the fault and keeps its schedule moving instead of being
// stuck
func NextProvingPeriod(dataSetId uint64, caller provider.Identity) error {
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

	switch set.state {

	case Empty:
		return fault.ErrDataSetEmpty

	case AwaitingProof:
		// window still open: nothing to advance yet
		if currentEpoch < set.windowDeadline() {
			return fault.ErrProvingPeriodNotEnded
		}

		// lapsed with no proof: record the fault and reopen
		faultedEpoch := set.nextChallengeEpoch
		set.state = Faulted
		set.nextChallengeEpoch = currentEpoch + set.challengeDelay
		set.save()

		globalData.log.Warnf("data set: %d  fault: epoch: %d  next: %d",
			dataSetId, faultedEpoch, set.nextChallengeEpoch)
		notifyListener(func(l notifyTarget) error {
			return l.OnFault(dataSetId, faultedEpoch)
		})
		return nil

	default:
		// Active, Proven, Faulted: the next window is already
		// scheduled and opens by itself
		return fault.ErrProvingPeriodNotEnded
	}
}
