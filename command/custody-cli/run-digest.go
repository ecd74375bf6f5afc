// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/piecerecord"
)

func runDigest(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if 0 == len(c.Args()) {
		return ErrRequiredFileName
	}

	type pieceDigest struct {
		File       string        `json:"file"`
		RootDigest merkle.Digest `json:"rootDigest"`
		Size       uint64        `json:"size,string"`
		LeafCount  uint64        `json:"leafCount,string"`
	}

	digests := make([]pieceDigest, len(c.Args()))
	for i, fileName := range c.Args() {
		_, tree, size, err := buildFileTree(fileName)
		if nil != err {
			return err
		}
		digests[i] = pieceDigest{
			File:       fileName,
			RootDigest: merkle.Root(tree),
			Size:       size,
			LeafCount:  size / piecerecord.LeafSize,
		}
	}

	return printJson(m.w, digests)
}
