// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/beacon"
	"github.com/bitmark-inc/custodyd/counter"
	"github.com/bitmark-inc/custodyd/epoch"
	"github.com/bitmark-inc/custodyd/fault"
)

const (
	logName = "client_rpc"
)

// Configuration - configuration file data for RPC setup
type Configuration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// globals
type rpcData struct {
	sync.RWMutex

	log *logger.L

	listeners []net.Listener
	server    *rpc.Server
	pool      *beacon.Pool
	clock     epoch.Clock
	version   string

	maximumConnections uint64

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// count of active connections
var connectionCount counter.Counter

// Initialise - start the RPC listeners
func Initialise(configuration *Configuration, version string, pool *beacon.Pool, clock epoch.Clock) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return fault.ErrMissingParameters
	}
	if configuration.MaximumConnections < 1 {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return fault.ErrMissingParameters
	}

	tlsConfiguration, fingerprint, err := getCertificate(log, logName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", logName, fingerprint)

	globalData.pool = pool
	globalData.clock = clock
	globalData.version = version
	globalData.maximumConnections = configuration.MaximumConnections
	globalData.server = createServer(log)

	for _, listen := range configuration.Listen {
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}

		log.Infof("starting RPC server: %s", listen)
		listener, err := tls.Listen("tcp", listen, tlsConfiguration)
		if nil != err {
			log.Errorf("rpc server listen error: %s", err)
			return err
		}
		globalData.listeners = append(globalData.listeners, listener)

		go serveConnections(listener, globalData.server, configuration.MaximumConnections, log)
	}

	globalData.initialised = true
	return nil
}

// Finalise - stop listening
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	for _, listener := range globalData.listeners {
		_ = listener.Close()
	}
	globalData.listeners = nil

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// ConnectionCount - number of active RPC connections
func ConnectionCount() uint64 {
	return connectionCount.Uint64()
}

func serveConnections(listen net.Listener, server *rpc.Server, maximumConnections uint64, log *logger.L) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			log.Errorf("rpc server terminated: accept error: %s", err)
			break
		}
		if connectionCount.Increment() <= maximumConnections {
			go func() {
				server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				connectionCount.Decrement()
			}()
		} else {
			connectionCount.Decrement()
			_ = conn.Close()
		}
	}
	_ = listen.Close()
	log.Error("RPC accept terminated")
}
