// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package epoch - the proving period clock
//
// Epochs are numbered from a genesis instant at a fixed duration.
// All proving period arithmetic is in epochs; only this package
// touches wall clock time.
package epoch

import (
	"sync"
	"time"

	"github.com/bitmark-inc/custodyd/fault"
)

// Clock - source of the current epoch number
type Clock interface {
	Current() uint64
}

// wall clock backed implementation
type wallClock struct {
	genesis  time.Time
	duration time.Duration
}

// NewClock - epochs of a fixed duration counted from genesis
func NewClock(genesis time.Time, duration time.Duration) (Clock, error) {
	if duration <= 0 {
		return nil, fault.ErrInvalidEpoch
	}
	return &wallClock{
		genesis:  genesis,
		duration: duration,
	}, nil
}

// Current - the epoch containing the present instant, zero before genesis
func (clock *wallClock) Current() uint64 {
	elapsed := time.Since(clock.genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / clock.duration)
}

// Manual - an explicitly stepped clock for tests and simulation
type Manual struct {
	sync.RWMutex
	epoch uint64
}

// Current - the manually set epoch
func (clock *Manual) Current() uint64 {
	clock.RLock()
	defer clock.RUnlock()
	return clock.epoch
}

// Set - jump to a specific epoch
func (clock *Manual) Set(epoch uint64) {
	clock.Lock()
	clock.epoch = epoch
	clock.Unlock()
}

// Advance - step forward some number of epochs
func (clock *Manual) Advance(epochs uint64) {
	clock.Lock()
	clock.epoch += epochs
	clock.Unlock()
}
