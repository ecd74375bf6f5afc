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
	"github.com/bitmark-inc/custodyd/piecerecord"
	"github.com/bitmark-inc/custodyd/provider"
	"github.com/bitmark-inc/custodyd/util"
)

// Pieces - piece management service
type Pieces struct {
	log     *logger.L
	limiter *rate.Limiter
}

// limit the size of one batch
const maximumPieces = 100

// Pieces.Add
// ----------

// PiecesAddArguments - request to commit pieces to a data set
type PiecesAddArguments struct {
	DataSetId uint64              `json:"dataSetId,string"`
	Owner     provider.Identity   `json:"owner"`
	Pieces    []dataset.PieceData `json:"pieces"`
	Signature provider.Signature  `json:"signature"`
}

// Pack - the signing payload for an add request
func (arguments *PiecesAddArguments) Pack() []byte {
	packed := []byte{'A'}
	packed = append(packed, util.ToVarint64(arguments.DataSetId)...)
	packed = append(packed, arguments.Owner[:]...)
	for _, piece := range arguments.Pieces {
		packed = append(packed, piece.RootDigest[:]...)
		packed = append(packed, util.ToVarint64(piece.Size)...)
	}
	return packed
}

// PiecesAddReply - result of an add request
type PiecesAddReply struct {
	PieceIds []uint64 `json:"pieceIds"`
}

// Add - commit new pieces to a data set
func (service *Pieces) Add(arguments *PiecesAddArguments, reply *PiecesAddReply) error {
	if err := rateLimitN(service.limiter, len(arguments.Pieces), maximumPieces); nil != err {
		return err
	}
	if mode.IsNot(mode.Normal) {
		return fault.ErrNotNormalMode
	}

	if err := arguments.Owner.Verify(arguments.Pack(), arguments.Signature); nil != err {
		return err
	}

	pieceIds, err := dataset.AddPieces(arguments.DataSetId, arguments.Owner, arguments.Pieces)
	if nil != err {
		return err
	}

	service.log.Infof("Pieces.Add: %d  pieces: %d", arguments.DataSetId, len(pieceIds))
	reply.PieceIds = pieceIds
	return nil
}

// Pieces.Delete
// -------------

// PiecesDeleteArguments - request to remove pieces from a data set
type PiecesDeleteArguments struct {
	DataSetId uint64             `json:"dataSetId,string"`
	Owner     provider.Identity  `json:"owner"`
	PieceIds  []uint64           `json:"pieceIds"`
	Signature provider.Signature `json:"signature"`
}

// Pack - the signing payload for a delete request
func (arguments *PiecesDeleteArguments) Pack() []byte {
	packed := []byte{'D'}
	packed = append(packed, util.ToVarint64(arguments.DataSetId)...)
	packed = append(packed, arguments.Owner[:]...)
	for _, pieceId := range arguments.PieceIds {
		packed = append(packed, util.ToVarint64(pieceId)...)
	}
	return packed
}

// PiecesDeleteReply - result of a delete request
type PiecesDeleteReply struct {
	Deleted bool `json:"deleted"`
}

// Delete - logically remove pieces from a data set
func (service *Pieces) Delete(arguments *PiecesDeleteArguments, reply *PiecesDeleteReply) error {
	if err := rateLimitN(service.limiter, len(arguments.PieceIds), maximumPieces); nil != err {
		return err
	}
	if mode.IsNot(mode.Normal) {
		return fault.ErrNotNormalMode
	}

	if err := arguments.Owner.Verify(arguments.Pack(), arguments.Signature); nil != err {
		return err
	}

	err := dataset.DeletePieces(arguments.DataSetId, arguments.Owner, arguments.PieceIds)
	if nil != err {
		return err
	}

	service.log.Infof("Pieces.Delete: %d  pieces: %d", arguments.DataSetId, len(arguments.PieceIds))
	reply.Deleted = true
	return nil
}

// Pieces.List
// -----------

// PiecesListArguments - request for the pieces of a data set
type PiecesListArguments struct {
	DataSetId uint64 `json:"dataSetId,string"`
}

// PiecesListReply - active pieces of a data set, ordered by id
type PiecesListReply struct {
	Pieces []piecerecord.Piece `json:"pieces"`
}

// List - read the active pieces of a data set
func (service *Pieces) List(arguments *PiecesListArguments, reply *PiecesListReply) error {
	if err := rateLimit(service.limiter); nil != err {
		return err
	}

	pieces, err := dataset.Pieces(arguments.DataSetId)
	if nil != err {
		return err
	}

	reply.Pieces = pieces
	return nil
}
