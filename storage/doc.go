// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - persistent pools on a single LevelDB database
//
// Each pool is a key space behind a one byte prefix:
//
//   DataSets  D   dataSetId         - packed data set record
//   Pieces    P   dataSetId pieceId - packed piece record
//   Beacon    R   epoch             - published randomness seed
//
// All accesses panic on database level failure; a verifier with a
// broken database must not continue.
package storage
