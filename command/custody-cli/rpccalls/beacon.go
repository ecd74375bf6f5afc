// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/rpc"
)

// PublishSeed - record the randomness seed of a finalised epoch
func (c *Client) PublishSeed(epochNumber uint64, seed merkle.Digest) (*rpc.BeaconPublishReply, error) {

	arguments := rpc.BeaconPublishArguments{
		Epoch: epochNumber,
		Seed:  seed,
	}

	c.printJson("Beacon.Publish request", arguments)

	var reply rpc.BeaconPublishReply
	if err := c.client.Call("Beacon.Publish", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Beacon.Publish reply", reply)
	return &reply, nil
}

// GetSeed - the published seed of a past epoch
func (c *Client) GetSeed(epochNumber uint64) (*rpc.BeaconGetReply, error) {

	arguments := rpc.BeaconGetArguments{
		Epoch: epochNumber,
	}

	c.printJson("Beacon.Get request", arguments)

	var reply rpc.BeaconGetReply
	if err := c.client.Call("Beacon.Get", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Beacon.Get reply", reply)
	return &reply, nil
}

// GetInfo - daemon status
func (c *Client) GetInfo() (*rpc.NodeInfoReply, error) {

	arguments := rpc.NodeInfoArguments{}

	var reply rpc.NodeInfoReply
	if err := c.client.Call("Node.Info", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Node.Info reply", reply)
	return &reply, nil
}
