// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/mode"
)

// Beacon - epoch randomness service
type Beacon struct {
	log     *logger.L
	limiter *rate.Limiter
}

// Beacon.Publish
// --------------

// BeaconPublishArguments - seed for a finalised epoch
type BeaconPublishArguments struct {
	Epoch uint64        `json:"epoch,string"`
	Seed  merkle.Digest `json:"seed"`
}

// BeaconPublishReply - result of a publish request
type BeaconPublishReply struct {
	Published bool `json:"published"`
}

// Publish - record the randomness seed of a finalised epoch
func (service *Beacon) Publish(arguments *BeaconPublishArguments, reply *BeaconPublishReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}
	if mode.IsNot(mode.Normal) {
		return fault.ErrNotNormalMode
	}

	err := globalData.pool.Publish(arguments.Epoch, arguments.Seed)
	if nil != err {
		return err
	}

	service.log.Infof("Beacon.Publish: epoch: %d", arguments.Epoch)
	reply.Published = true
	return nil
}

// Beacon.Get
// ----------

// BeaconGetArguments - request for the seed of a past epoch
type BeaconGetArguments struct {
	Epoch uint64 `json:"epoch,string"`
}

// BeaconGetReply - the published seed
type BeaconGetReply struct {
	Seed merkle.Digest `json:"seed"`
}

// Get - the seed of a strictly past epoch
func (service *Beacon) Get(arguments *BeaconGetArguments, reply *BeaconGetReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}

	seed, err := globalData.pool.Randomness(arguments.Epoch)
	if nil != err {
		return err
	}

	reply.Seed = seed
	return nil
}
