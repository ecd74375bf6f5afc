// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package beacon - per epoch randomness seeds
//
// The verification engine consumes one 32 byte seed per finalised
// epoch.  Seeds originate outside this process (a chain follower or
// randomness beacon feeds them in); the pool only retains them for
// a bounded window and enforces the grinding bound: no seed is ever
// readable for the current or a future epoch, so no caller can act
// on randomness that was not already fixed when it began.
package beacon

import (
	"encoding/binary"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/custodyd/epoch"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/storage"
)

// Beacon - read access to epoch randomness
type Beacon interface {
	Randomness(epochNumber uint64) (merkle.Digest, error)
}

// Pool - bounded retention store of published seeds
type Pool struct {
	clock epoch.Clock
	seeds *gocache.Cache
	store storage.Handle
}

// NewPool - create a seed pool
//
// seeds expire after the retention period; a proving period that
// waits longer than that for its proof simply blocks until the
// provider catches up on a later window
//
// store may be nil to run memory only; with a store, previously
// published seeds for finalised epochs are reloaded on creation
func NewPool(clock epoch.Clock, retention time.Duration, store storage.Handle) *Pool {
	pool := &Pool{
		clock: clock,
		seeds: gocache.New(retention, retention/2),
		store: store,
	}

	if nil != store {
		current := clock.Current()
		for _, element := range store.Fetch() {
			if 8 != len(element.Key) {
				continue
			}
			epochNumber := binary.BigEndian.Uint64(element.Key)
			seed, err := merkle.DigestFromBytes(element.Value)
			if nil != err || epochNumber >= current {
				store.Delete(element.Key)
				continue
			}
			pool.seeds.Set(epochKey(epochNumber), seed, gocache.DefaultExpiration)
		}
	}

	return pool
}

// Publish - record the seed for a finalised epoch
//
// rejects the current and future epochs: a seed only exists once
// its epoch has closed
func (pool *Pool) Publish(epochNumber uint64, seed merkle.Digest) error {
	if epochNumber >= pool.clock.Current() {
		return fault.ErrInvalidEpoch
	}
	pool.seeds.Set(epochKey(epochNumber), seed, gocache.DefaultExpiration)

	if nil != pool.store {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, epochNumber)
		pool.store.Put(key, seed[:])
	}
	return nil
}

// Randomness - the seed for a strictly past epoch
//
// fails with ErrRandomnessUnavailable for epochs not yet finalised
// or whose seed has not been published (or has already expired)
func (pool *Pool) Randomness(epochNumber uint64) (merkle.Digest, error) {
	if epochNumber >= pool.clock.Current() {
		return merkle.Digest{}, fault.ErrRandomnessUnavailable
	}
	item, found := pool.seeds.Get(epochKey(epochNumber))
	if !found {
		return merkle.Digest{}, fault.ErrRandomnessUnavailable
	}
	return item.(merkle.Digest), nil
}

// DeleteExpired - drop seeds past their retention window
//
// called from the background sweep; the persistent store follows
// the cache, a stored seed no longer cached is discarded
func (pool *Pool) DeleteExpired() {
	pool.seeds.DeleteExpired()

	if nil == pool.store {
		return
	}
	for _, element := range pool.store.Fetch() {
		if 8 != len(element.Key) {
			pool.store.Delete(element.Key)
			continue
		}
		epochNumber := binary.BigEndian.Uint64(element.Key)
		if _, found := pool.seeds.Get(epochKey(epochNumber)); !found {
			pool.store.Delete(element.Key)
		}
	}
}

func epochKey(epochNumber uint64) string {
	return strconv.FormatUint(epochNumber, 10)
}
