// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/custodyd/fault"
)

var (
	ErrPasswordMismatch = fault.InvalidError("passwords do not match")
)

// read a passphrase from the controlling terminal with echo off
//
// verify forces a second entry, used when setting a new passphrase
func promptPassword(prompt string, verify bool) (string, error) {

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, os.ModePerm)
	if nil != err {
		return "", err
	}
	defer tty.Close()

	fd := int(tty.Fd())
	state, err := terminal.MakeRaw(fd)
	if nil != err {
		return "", err
	}
	defer terminal.Restore(fd, state)

	console := terminal.NewTerminal(tty, "custody-cli: ")

	password, err := console.ReadPassword(prompt)
	if nil != err {
		return "", err
	}

	if verify {
		again, err := console.ReadPassword("verify password: ")
		if nil != err {
			return "", err
		}
		if password != again {
			return "", ErrPasswordMismatch
		}
	}

	return password, nil
}

// passphrase from the global flag, falling back to a prompt
func getPassword(m *metadata, verify bool) (string, error) {
	if "" != m.password {
		return m.password, nil
	}
	return promptPassword("key file password: ", verify)
}
