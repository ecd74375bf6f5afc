// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/merkle"

	"github.com/bitmark-inc/custodyd/command/custody-cli/rpccalls"
)

func runProve(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	dataSetId, err := checkDataSetId(c.Uint64("dataset"))
	if nil != err {
		return err
	}

	keypair, err := getKeypair(m)
	if nil != err {
		return err
	}

	client, err := getClient(m)
	if nil != err {
		return err
	}
	defer client.Close()

	var proofs []dataset.Proof
	if 0 == len(c.Args()) {

		// pre-built proofs from a JSON file
		fileName, err := checkFileName(c.String("file"))
		if nil != err {
			return err
		}
		data, err := ioutil.ReadFile(fileName)
		if nil != err {
			return err
		}
		err = json.Unmarshal(data, &proofs)
		if nil != err {
			return err
		}

	} else {

		// generate the proofs from local piece files
		pieceFiles, err := checkPieceFiles(c.Args())
		if nil != err {
			return err
		}
		proofs, err = generateProofs(client, dataSetId, pieceFiles)
		if nil != err {
			return err
		}
	}

	if m.verbose {
		fmt.Fprintf(m.e, "data set: %d\n", dataSetId)
		fmt.Fprintf(m.e, "proofs: %d\n", len(proofs))
	}

	response, err := client.SubmitProof(keypair, dataSetId, proofs)
	if nil != err {
		return err
	}

	return printJson(m.w, response)
}

// answer the open window from local copies of the challenged pieces
func generateProofs(client *rpccalls.Client, dataSetId uint64, pieceFiles map[uint64]string) ([]dataset.Proof, error) {

	response, err := client.Challenges(dataSetId)
	if nil != err {
		return nil, err
	}

	type pieceTree struct {
		leaves []merkle.Digest
		tree   []merkle.Digest
	}
	trees := map[uint64]*pieceTree{}

	proofs := make([]dataset.Proof, len(response.Challenges))
	for i, ch := range response.Challenges {

		cached, ok := trees[ch.PieceId]
		if !ok {
			fileName, ok := pieceFiles[ch.PieceId]
			if !ok {
				return nil, fmt.Errorf("no file for challenged piece: %d", ch.PieceId)
			}
			leaves, tree, _, err := buildFileTree(fileName)
			if nil != err {
				return nil, err
			}
			cached = &pieceTree{
				leaves: leaves,
				tree:   tree,
			}
			trees[ch.PieceId] = cached
		}

		if ch.LocalOffset >= uint64(len(cached.leaves)) {
			return nil, fmt.Errorf("piece: %d has no leaf: %d", ch.PieceId, ch.LocalOffset)
		}

		path, err := merkle.ProofFor(cached.tree, len(cached.leaves), ch.LocalOffset)
		if nil != err {
			return nil, err
		}

		proofs[i] = dataset.Proof{
			Leaf:   cached.leaves[ch.LocalOffset],
			Offset: ch.Offset,
			Path:   path,
		}
	}
	return proofs, nil
}
