// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/dataset"
)

// logs data sets whose challenge window lapsed without a proof
//
// purely an operator signal; recovery itself is the owner's
// NextPeriod call
type periodWatchdog struct {
	log      *logger.L
	interval time.Duration
}

func (watchdog *periodWatchdog) Run(args interface{}, shutdown <-chan struct{}) {
	watchdog.log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(watchdog.interval):
			for _, dataSetId := range dataset.Lapsed() {
				watchdog.log.Warnf("data set: %d challenge window lapsed", dataSetId)
			}
		}
	}
	watchdog.log.Info("finished")
}
