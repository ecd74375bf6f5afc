// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/provider"
	"github.com/bitmark-inc/custodyd/rpc"
)

// CreateDataSet - register a new data set
func (c *Client) CreateDataSet(keypair *Keypair, challengeDelay uint64) (*rpc.DataSetCreateReply, error) {

	arguments := rpc.DataSetCreateArguments{
		Owner:          keypair.Identity,
		ChallengeDelay: challengeDelay,
	}
	arguments.Signature = keypair.Sign(arguments.Pack())

	c.printJson("DataSet.Create request", arguments)

	var reply rpc.DataSetCreateReply
	if err := c.client.Call("DataSet.Create", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("DataSet.Create reply", reply)
	return &reply, nil
}

// TransferDataSet - hand a data set to a new owning provider
func (c *Client) TransferDataSet(keypair *Keypair, dataSetId uint64, newOwner provider.Identity) (*rpc.DataSetTransferReply, error) {

	arguments := rpc.DataSetTransferArguments{
		DataSetId: dataSetId,
		Owner:     keypair.Identity,
		NewOwner:  newOwner,
	}
	arguments.Signature = keypair.Sign(arguments.Pack())

	c.printJson("DataSet.Transfer request", arguments)

	var reply rpc.DataSetTransferReply
	if err := c.client.Call("DataSet.Transfer", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("DataSet.Transfer reply", reply)
	return &reply, nil
}

// DeleteDataSet - remove a data set
func (c *Client) DeleteDataSet(keypair *Keypair, dataSetId uint64) (*rpc.DataSetDeleteReply, error) {

	arguments := rpc.DataSetDeleteArguments{
		DataSetId: dataSetId,
		Owner:     keypair.Identity,
	}
	arguments.Signature = keypair.Sign(arguments.Pack())

	c.printJson("DataSet.Delete request", arguments)

	var reply rpc.DataSetDeleteReply
	if err := c.client.Call("DataSet.Delete", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("DataSet.Delete reply", reply)
	return &reply, nil
}

// GetDataSet - read one data set record
func (c *Client) GetDataSet(dataSetId uint64) (*dataset.Record, error) {

	arguments := rpc.DataSetGetArguments{
		DataSetId: dataSetId,
	}

	c.printJson("DataSet.Get request", arguments)

	var reply dataset.Record
	if err := c.client.Call("DataSet.Get", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("DataSet.Get reply", reply)
	return &reply, nil
}
