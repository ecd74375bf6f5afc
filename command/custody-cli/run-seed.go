// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runSeed(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	epochNumber, err := checkEpoch(c.Uint64("epoch"))
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetSeed(epochNumber)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
