// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runRemove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	dataSetId, err := checkDataSetId(c.Uint64("dataset"))
	if nil != err {
		return err
	}

	pieceIds, err := checkPieceIds(c.Args())
	if nil != err {
		return err
	}

	keypair, err := getKeypair(m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.DeletePieces(keypair, dataSetId, pieceIds)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
