// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
)

func TestKeypairFileRoundTrip(t *testing.T) {

	directory, err := ioutil.TempDir("", "keypair")
	if nil != err {
		t.Fatalf("tempdir fail: %s", err)
	}
	defer os.RemoveAll(directory)

	fileName := filepath.Join(directory, "custody.key")

	made, err := makeKeypairFile(fileName, "correct horse")
	if nil != err {
		t.Fatalf("make fail: %s", err)
	}

	// the stored form must not contain the raw seed
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		t.Fatalf("read fail: %s", err)
	}
	seedHex := hex.EncodeToString(made.PrivateKey.Seed())
	if strings.Contains(string(data), seedHex) {
		t.Fatal("seed stored in clear")
	}

	read, err := readKeypairFile(fileName, "correct horse")
	if nil != err {
		t.Fatalf("read keypair fail: %s", err)
	}
	if made.Identity != read.Identity {
		t.Errorf("identity mismatch: actual: %s  expected: %s", read.Identity, made.Identity)
	}

	_, err = readKeypairFile(fileName, "incorrect horse")
	if encrypt.ErrWrongPassword != err {
		t.Errorf("wrong password: actual: %v  expected: %v", err, encrypt.ErrWrongPassword)
	}
}
