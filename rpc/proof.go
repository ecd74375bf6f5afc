// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/mode"
	"github.com/bitmark-inc/custodyd/provider"
	"github.com/bitmark-inc/custodyd/util"
)

// Proof - challenge and proof service
type Proof struct {
	log     *logger.L
	limiter *rate.Limiter
}

// Proof.Challenges
// ----------------

// ProofChallengesArguments - request for the open challenge window
type ProofChallengesArguments struct {
	DataSetId uint64 `json:"dataSetId,string"`
}

// ProofChallengesReply - challenges of the open window
type ProofChallengesReply struct {
	Challenges []dataset.Challenge `json:"challenges"`
}

// Challenges - read the challenges a prover must answer
func (service *Proof) Challenges(arguments *ProofChallengesArguments, reply *ProofChallengesReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}

	challenges, err := dataset.Challenges(arguments.DataSetId)
	if nil != err {
		return err
	}

	reply.Challenges = challenges
	return nil
}

// Proof.Submit
// ------------

// ProofSubmitArguments - answer to the open challenge window
type ProofSubmitArguments struct {
	DataSetId uint64             `json:"dataSetId,string"`
	Owner     provider.Identity  `json:"owner"`
	Proofs    []dataset.Proof    `json:"proofs"`
	Signature provider.Signature `json:"signature"`
}

// Pack - the signing payload for a proof submission
func (arguments *ProofSubmitArguments) Pack() []byte {
	packed := []byte{'P'}
	packed = append(packed, util.ToVarint64(arguments.DataSetId)...)
	packed = append(packed, arguments.Owner[:]...)
	for _, proof := range arguments.Proofs {
		packed = append(packed, proof.Leaf[:]...)
		packed = append(packed, util.ToVarint64(proof.Offset)...)
		packed = append(packed, util.ToVarint64(uint64(len(proof.Path)))...)
		for _, digest := range proof.Path {
			packed = append(packed, digest[:]...)
		}
	}
	return packed
}

// ProofSubmitReply - result of a proof submission
type ProofSubmitReply struct {
	Accepted bool `json:"accepted"`
}

// Submit - answer the open challenge window
func (service *Proof) Submit(arguments *ProofSubmitArguments, reply *ProofSubmitReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}
	if mode.IsNot(mode.Normal) {
		return fault.ErrNotNormalMode
	}

	if err := arguments.Owner.Verify(arguments.Pack(), arguments.Signature); nil != err {
		return err
	}

	err := dataset.SubmitProof(arguments.DataSetId, arguments.Owner, arguments.Proofs)
	if nil != err {
		return err
	}

	service.log.Infof("Proof.Submit: %d  accepted: %d proofs", arguments.DataSetId, len(arguments.Proofs))
	reply.Accepted = true
	return nil
}

// Proof.NextPeriod
// ----------------

// ProofNextPeriodArguments - request to close a lapsed window
type ProofNextPeriodArguments struct {
	DataSetId uint64             `json:"dataSetId,string"`
	Owner     provider.Identity  `json:"owner"`
	Signature provider.Signature `json:"signature"`
}

// Pack - the signing payload for a next period request
func (arguments *ProofNextPeriodArguments) Pack() []byte {
	packed := []byte{'N'}
	packed = append(packed, util.ToVarint64(arguments.DataSetId)...)
	packed = append(packed, arguments.Owner[:]...)
	return packed
}

// ProofNextPeriodReply - result of a next period request
type ProofNextPeriodReply struct {
	Advanced bool `json:"advanced"`
}

// NextPeriod - close a lapsed window, recording the fault
func (service *Proof) NextPeriod(arguments *ProofNextPeriodArguments, reply *ProofNextPeriodReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}
	if mode.IsNot(mode.Normal) {
		return fault.ErrNotNormalMode
	}

	if err := arguments.Owner.Verify(arguments.Pack(), arguments.Signature); nil != err {
		return err
	}

	err := dataset.NextProvingPeriod(arguments.DataSetId, arguments.Owner)
	if nil != err {
		return err
	}

	service.log.Infof("Proof.NextPeriod: %d", arguments.DataSetId)
	reply.Advanced = true
	return nil
}
