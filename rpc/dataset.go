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

// DataSet - data set registration and ownership service
type DataSet struct {
	log     *logger.L
	limiter *rate.Limiter
}

// DataSet.Create
// --------------

// DataSetCreateArguments - request to register a new data set
type DataSetCreateArguments struct {
	Owner          provider.Identity  `json:"owner"`
	ChallengeDelay uint64             `json:"challengeDelay,string"`
	Signature      provider.Signature `json:"signature"`
}

// Pack - the signing payload for a create request
func (arguments *DataSetCreateArguments) Pack() []byte {
	packed := []byte{'C'}
	packed = append(packed, arguments.Owner[:]...)
	packed = append(packed, util.ToVarint64(arguments.ChallengeDelay)...)
	return packed
}

// DataSetCreateReply - result of a create request
type DataSetCreateReply struct {
	DataSetId uint64 `json:"dataSetId,string"`
}

// Create - register a new data set
func (service *DataSet) Create(arguments *DataSetCreateArguments, reply *DataSetCreateReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}
	if mode.IsNot(mode.Normal) {
		return fault.ErrNotNormalMode
	}

	if err := arguments.Owner.Verify(arguments.Pack(), arguments.Signature); nil != err {
		return err
	}

	dataSetId, err := dataset.Create(arguments.Owner, arguments.ChallengeDelay)
	if nil != err {
		return err
	}

	service.log.Infof("DataSet.Create: %d", dataSetId)
	reply.DataSetId = dataSetId
	return nil
}

// DataSet.Transfer
// ----------------

// DataSetTransferArguments - request to hand a data set to a new owner
type DataSetTransferArguments struct {
	DataSetId uint64             `json:"dataSetId,string"`
	Owner     provider.Identity  `json:"owner"`
	NewOwner  provider.Identity  `json:"newOwner"`
	Signature provider.Signature `json:"signature"`
}

// Pack - the signing payload for a transfer request
func (arguments *DataSetTransferArguments) Pack() []byte {
	packed := []byte{'T'}
	packed = append(packed, util.ToVarint64(arguments.DataSetId)...)
	packed = append(packed, arguments.Owner[:]...)
	packed = append(packed, arguments.NewOwner[:]...)
	return packed
}

// DataSetTransferReply - result of a transfer request
type DataSetTransferReply struct {
	Transferred bool `json:"transferred"`
}

// Transfer - hand a data set to a new owning provider
func (service *DataSet) Transfer(arguments *DataSetTransferArguments, reply *DataSetTransferReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}
	if mode.IsNot(mode.Normal) {
		return fault.ErrNotNormalMode
	}

	if err := arguments.Owner.Verify(arguments.Pack(), arguments.Signature); nil != err {
		return err
	}

	err := dataset.Transfer(arguments.DataSetId, arguments.Owner, arguments.NewOwner)
	if nil != err {
		return err
	}

	service.log.Infof("DataSet.Transfer: %d  to: %s", arguments.DataSetId, arguments.NewOwner)
	reply.Transferred = true
	return nil
}

// DataSet.Delete
// --------------

// DataSetDeleteArguments - request to remove a data set
type DataSetDeleteArguments struct {
	DataSetId uint64             `json:"dataSetId,string"`
	Owner     provider.Identity  `json:"owner"`
	Signature provider.Signature `json:"signature"`
}

// Pack - the signing payload for a delete request
func (arguments *DataSetDeleteArguments) Pack() []byte {
	packed := []byte{'X'}
	packed = append(packed, util.ToVarint64(arguments.DataSetId)...)
	packed = append(packed, arguments.Owner[:]...)
	return packed
}

// DataSetDeleteReply - result of a delete request
type DataSetDeleteReply struct {
	Deleted bool `json:"deleted"`
}

// Delete - remove a data set and its piece records
func (service *DataSet) Delete(arguments *DataSetDeleteArguments, reply *DataSetDeleteReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}
	if mode.IsNot(mode.Normal) {
		return fault.ErrNotNormalMode
	}

	if err := arguments.Owner.Verify(arguments.Pack(), arguments.Signature); nil != err {
		return err
	}

	err := dataset.Delete(arguments.DataSetId, arguments.Owner)
	if nil != err {
		return err
	}

	service.log.Infof("DataSet.Delete: %d", arguments.DataSetId)
	reply.Deleted = true
	return nil
}

// DataSet.Get
// -----------

// DataSetGetArguments - request for one data set record
type DataSetGetArguments struct {
	DataSetId uint64 `json:"dataSetId,string"`
}

// Get - read one data set record
func (service *DataSet) Get(arguments *DataSetGetArguments, reply *dataset.Record) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}

	record, err := dataset.Get(arguments.DataSetId)
	if nil != err {
		return err
	}

	*reply = *record
	return nil
}
