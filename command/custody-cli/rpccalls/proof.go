// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/rpc"
)

// Challenges - read the open challenge window of a data set
func (c *Client) Challenges(dataSetId uint64) (*rpc.ProofChallengesReply, error) {

	arguments := rpc.ProofChallengesArguments{
		DataSetId: dataSetId,
	}

	c.printJson("Proof.Challenges request", arguments)

	var reply rpc.ProofChallengesReply
	if err := c.client.Call("Proof.Challenges", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Proof.Challenges reply", reply)
	return &reply, nil
}

// SubmitProof - answer the open challenge window
func (c *Client) SubmitProof(keypair *Keypair, dataSetId uint64, proofs []dataset.Proof) (*rpc.ProofSubmitReply, error) {

	arguments := rpc.ProofSubmitArguments{
		DataSetId: dataSetId,
		Owner:     keypair.Identity,
		Proofs:    proofs,
	}
	arguments.Signature = keypair.Sign(arguments.Pack())

	c.printJson("Proof.Submit request", arguments)

	var reply rpc.ProofSubmitReply
	if err := c.client.Call("Proof.Submit", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Proof.Submit reply", reply)
	return &reply, nil
}

// NextPeriod - close a lapsed challenge window
func (c *Client) NextPeriod(keypair *Keypair, dataSetId uint64) (*rpc.ProofNextPeriodReply, error) {

	arguments := rpc.ProofNextPeriodArguments{
		DataSetId: dataSetId,
		Owner:     keypair.Identity,
	}
	arguments.Signature = keypair.Sign(arguments.Pack())

	c.printJson("Proof.NextPeriod request", arguments)

	var reply rpc.ProofNextPeriodReply
	if err := c.client.Call("Proof.NextPeriod", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Proof.NextPeriod reply", reply)
	return &reply, nil
}
