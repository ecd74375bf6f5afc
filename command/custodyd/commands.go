// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/custodyd/util"
)

const (
	rpcCertificateFilename = "custodyd.crt"
	rpcPrivateKeyFilename  = "custodyd.key"
)

// setup command handler
//
// commands that run to create key and certificate files; these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := makeSelfSignedCertificate("rpc", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "version", "v":
		fmt.Println(version)

	case "help", "h", "?":
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)
		fmt.Println("supported commands:")
		fmt.Println()
		fmt.Println("  help                               (h)       - display this message")
		fmt.Println("  version                            (v)       - display the program version")
		fmt.Println()
		fmt.Println("  gen-rpc-cert [DIR]                 (rpc)     - create private key and certificate")
		fmt.Println("  gen-rpc-cert DIR HOSTS|IPs...                - create private key and certificate")
		fmt.Println()
		fmt.Println("  fingerprint                        (f)       - display the certificate fingerprint")
		fmt.Println("  show-config                                  - display the parsed configuration")
		fmt.Println()

	default:
		// may be a command that needs the configuration
		return false
	}

	// indicate processed
	return true
}

// config command handler
//
// commands that run after the configuration file has been read
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "fingerprint", "f":
		keyPair, err := tls.LoadX509KeyPair(options.ClientRPC.Certificate, options.ClientRPC.PrivateKey)
		if nil != err {
			fmt.Printf("certificate: %q  error: %s\n", options.ClientRPC.Certificate, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("SHA3-256 fingerprint: %x\n", sha3.Sum256(keyPair.Certificate[0]))

	case "show-config":
		buffer, err := json.MarshalIndent(options, "", "  ")
		if nil != err {
			fmt.Printf("configuration marshal error: %s\n", err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("%s\n", buffer)

	default:
		fmt.Printf("error: no such command: %s\n", command)
		exitwithstatus.Exit(1)
	}

	return true
}

// get a file name relative to an optional directory argument
func getFilenameWithDirectory(arguments []string, name string) string {
	directory, err := os.Getwd()
	if nil != err {
		fmt.Printf("cannot determine working directory: %s\n", err)
		exitwithstatus.Exit(1)
	}
	if len(arguments) >= 1 && "" != arguments[0] {
		directory = filepath.Clean(arguments[0])
	}
	return util.EnsureAbsolute(directory, name)
}
