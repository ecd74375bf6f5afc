// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runAdd(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	dataSetId, err := checkDataSetId(c.Uint64("dataset"))
	if nil != err {
		return err
	}

	pieces, err := checkPieceSpecs(c.Args())
	if nil != err {
		return err
	}

	keypair, err := getKeypair(m)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "data set: %d\n", dataSetId)
		fmt.Fprintf(m.e, "pieces: %d\n", len(pieces))
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.AddPieces(keypair, dataSetId, pieces)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
