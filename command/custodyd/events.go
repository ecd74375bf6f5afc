// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/notify"
)

// drains the event queue into the log for operators
type eventLogger struct {
	log   *logger.L
	queue *notify.Queue
}

func (events *eventLogger) Run(args interface{}, shutdown <-chan struct{}) {
	events.log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case event := <-events.queue.Chan():
			switch event.Type {
			case notify.EventProofAccepted:
				events.log.Infof("%s: data set: %d  epoch: %d  challenges: %d", event.Type, event.DataSetId, event.Epoch, event.ChallengeCount)
			case notify.EventFault:
				events.log.Warnf("%s: data set: %d  epoch: %d", event.Type, event.DataSetId, event.Epoch)
			case notify.EventPiecesAdded, notify.EventPiecesDeleted:
				events.log.Infof("%s: data set: %d  pieces: %v", event.Type, event.DataSetId, event.PieceIds)
			default:
				events.log.Infof("%s: data set: %d", event.Type, event.DataSetId)
			}
		}
	}
	events.log.Info("finished")
}
