// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/mode"
)

// Node - daemon information service
type Node struct {
	log     *logger.L
	limiter *rate.Limiter
	start   time.Time
}

// NodeInfoArguments - empty arguments
type NodeInfoArguments struct{}

// NodeInfoReply - information about this daemon
type NodeInfoReply struct {
	Mode     string `json:"mode"`
	Epoch    uint64 `json:"epoch,string"`
	DataSets int    `json:"dataSets"`
	RPCs     uint64 `json:"rpcs"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
}

// Info - return some information about this daemon
func (node *Node) Info(arguments *NodeInfoArguments, reply *NodeInfoReply) error {
	if err := rateLimit(node.limiter); nil != err {
		return err
	}

	reply.Mode = mode.String()
	reply.Epoch = globalData.clock.Current()
	reply.DataSets = dataset.Count()
	reply.RPCs = connectionCount.Uint64()
	reply.Version = globalData.version
	reply.Uptime = time.Since(node.start).String()

	return nil
}
