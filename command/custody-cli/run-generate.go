// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	// refuse to clobber an existing key
	if _, err := os.Stat(m.keyFile); nil == err {
		return fmt.Errorf("not overwriting existing key file: %q", m.keyFile)
	}

	password, err := getPassword(m, true)
	if nil != err {
		return err
	}

	keypair, err := makeKeypairFile(m.keyFile, password)
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"keyFile":  m.keyFile,
		"identity": keypair.Identity,
	})
}
