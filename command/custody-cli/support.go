// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/custodyd/command/custody-cli/rpccalls"
)

// open the RPC connection from the global connect flag
func getClient(m *metadata) (*rpccalls.Client, error) {
	return rpccalls.NewClient(m.connect, m.verbose, m.e)
}

// load the signing key from the global keyfile flag
func getKeypair(m *metadata) (*rpccalls.Keypair, error) {
	password, err := getPassword(m, false)
	if nil != err {
		return nil, err
	}
	return readKeypairFile(m.keyFile, password)
}
