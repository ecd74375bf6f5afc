// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/rpc"
)

// AddPieces - commit new pieces to a data set
func (c *Client) AddPieces(keypair *Keypair, dataSetId uint64, pieces []dataset.PieceData) (*rpc.PiecesAddReply, error) {

	arguments := rpc.PiecesAddArguments{
		DataSetId: dataSetId,
		Owner:     keypair.Identity,
		Pieces:    pieces,
	}
	arguments.Signature = keypair.Sign(arguments.Pack())

	c.printJson("Pieces.Add request", arguments)

	var reply rpc.PiecesAddReply
	if err := c.client.Call("Pieces.Add", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Pieces.Add reply", reply)
	return &reply, nil
}

// DeletePieces - logically remove pieces from a data set
func (c *Client) DeletePieces(keypair *Keypair, dataSetId uint64, pieceIds []uint64) (*rpc.PiecesDeleteReply, error) {

	arguments := rpc.PiecesDeleteArguments{
		DataSetId: dataSetId,
		Owner:     keypair.Identity,
		PieceIds:  pieceIds,
	}
	arguments.Signature = keypair.Sign(arguments.Pack())

	c.printJson("Pieces.Delete request", arguments)

	var reply rpc.PiecesDeleteReply
	if err := c.client.Call("Pieces.Delete", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Pieces.Delete reply", reply)
	return &reply, nil
}

// ListPieces - read the active pieces of a data set
func (c *Client) ListPieces(dataSetId uint64) (*rpc.PiecesListReply, error) {

	arguments := rpc.PiecesListArguments{
		DataSetId: dataSetId,
	}

	c.printJson("Pieces.List request", arguments)

	var reply rpc.PiecesListReply
	if err := c.client.Call("Pieces.List", &arguments, &reply); nil != err {
		return nil, err
	}

	c.printJson("Pieces.List reply", reply)
	return &reply, nil
}
