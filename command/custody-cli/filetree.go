// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"

	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/piecerecord"
)

// read a file and build the piece tree over it
//
// the file is split into 32 byte leaves, the last leaf zero padded,
// and each leaf digested; committed piece size is the padded size
func buildFileTree(fileName string) ([]merkle.Digest, []merkle.Digest, uint64, error) {

	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, nil, 0, err
	}
	if 0 == len(data) {
		return nil, nil, 0, fmt.Errorf("empty file: %q", fileName)
	}

	leafCount := (uint64(len(data)) + piecerecord.LeafSize - 1) / piecerecord.LeafSize
	leaves := make([]merkle.Digest, leafCount)
	chunk := make([]byte, piecerecord.LeafSize)
	for i := uint64(0); i < leafCount; i += 1 {
		for j := range chunk {
			chunk[j] = 0
		}
		copy(chunk, data[i*piecerecord.LeafSize:])
		leaves[i] = merkle.NewDigest(chunk)
	}

	return leaves, merkle.FullTree(leaves), leafCount * piecerecord.LeafSize, nil
}
