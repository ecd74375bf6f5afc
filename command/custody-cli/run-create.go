// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	challengeDelay := c.Uint64("delay")

	keypair, err := getKeypair(m)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", keypair.Identity)
		fmt.Fprintf(m.e, "challenge delay: %d\n", challengeDelay)
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.CreateDataSet(keypair, challengeDelay)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}
