// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpccalls - JSON RPC client for the custody daemon
package rpccalls

import (
	"crypto/tls"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/provider"
)

// Keypair - signing identity of a storage provider
type Keypair struct {
	Identity   provider.Identity
	PrivateKey ed25519.PrivateKey
}

// Sign - sign a packed request
func (keypair *Keypair) Sign(packed []byte) provider.Signature {
	return provider.Signature(ed25519.Sign(keypair.PrivateKey, packed))
}

// Client - to hold RPC connection streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a custodyd
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if nil != err {
		return nil, err
	}

	r := &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - shutdown the custodyd connection
func (c *Client) Close() {
	c.client.Close()
	c.conn.Close()
}
