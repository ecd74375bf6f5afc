// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the JSON RPC
// calls exposed by the daemon
//
// mutating calls carry the owning provider's identity and an
// Ed25519 signature over the packed request; the signature is
// checked before the call reaches the data set registry
package rpc
