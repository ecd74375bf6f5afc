// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/rpc"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
)

// rate limits per service
const (
	rateLimitDataSet = 200
	rateBurstDataSet = 100

	rateLimitPieces = 200
	rateBurstPieces = 100

	rateLimitProof = 200
	rateBurstProof = 100

	rateLimitBeacon = 200
	rateBurstBeacon = 100

	rateLimitNode = 200
	rateBurstNode = 100
)

// createServer - create and register all of the services
func createServer(log *logger.L) *rpc.Server {

	start := time.Now()

	dataSet := &DataSet{
		log:     log,
		limiter: rate.NewLimiter(rateLimitDataSet, rateBurstDataSet),
	}
	pieces := &Pieces{
		log:     log,
		limiter: rate.NewLimiter(rateLimitPieces, rateBurstPieces),
	}
	proof := &Proof{
		log:     log,
		limiter: rate.NewLimiter(rateLimitProof, rateBurstProof),
	}
	bcn := &Beacon{
		log:     log,
		limiter: rate.NewLimiter(rateLimitBeacon, rateBurstBeacon),
	}
	node := &Node{
		log:     log,
		limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:   start,
	}

	server := rpc.NewServer()

	server.Register(dataSet)
	server.Register(pieces)
	server.Register(proof)
	server.Register(bcn)
	server.Register(node)

	return server
}
