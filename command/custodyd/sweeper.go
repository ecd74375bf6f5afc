// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/beacon"
)

// interval between seed retention sweeps
const sweepInterval = 5 * time.Minute

// drops expired randomness seeds from the pool and its store
type seedSweeper struct {
	log  *logger.L
	pool *beacon.Pool
}

func (sweeper *seedSweeper) Run(args interface{}, shutdown <-chan struct{}) {
	sweeper.log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(sweepInterval):
			sweeper.log.Debug("sweeping expired seeds")
			sweeper.pool.DeleteExpired()
		}
	}
	sweeper.log.Info("finished")
}
