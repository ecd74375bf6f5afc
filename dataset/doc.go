// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dataset - data set aggregates and the proving period state machine
//
// A data set is one provider's collection of committed pieces under
// a single challenge schedule.  Its lifecycle:
//
//   Empty, Active, AwaitingProof, then Proven or Faulted, repeating
//
// A window opens at the scheduled challenge epoch; the randomness
// seed for that epoch fixes the challenged offsets.  A full set of
// valid inclusion proofs moves the set to Proven and schedules the
// next window challengeDelay epochs ahead.  A lapsed window is
// acknowledged through NextProvingPeriod which records a fault and
// reopens the schedule, so a provider that lost data can always
// make forward progress.
//
// Each operation validates completely before mutating anything and
// runs under the registry lock, so state is never left half
// updated.  Data sets share no mutable state with each other.
package dataset
