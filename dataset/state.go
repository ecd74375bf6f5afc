// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset

// State - condition of one data set
type State int

// all possible states
const (
	Empty State = iota
	Active
	AwaitingProof
	Proven
	Faulted
)

// String - state represented as a string
func (state State) String() string {
	switch state {
	case Empty:
		return "Empty"
	case Active:
		return "Active"
	case AwaitingProof:
		return "AwaitingProof"
	case Proven:
		return "Proven"
	case Faulted:
		return "Faulted"
	default:
		return "*Unknown*"
	}
}

// MarshalText - state as text for JSON replies
func (state State) MarshalText() ([]byte, error) {
	return []byte(state.String()), nil
}
