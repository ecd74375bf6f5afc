// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/provider"
)

var (
	ErrRequiredDataSetId = fault.InvalidError("data set id is required")
	ErrRequiredEpoch     = fault.InvalidError("epoch is required")
	ErrRequiredFileName  = fault.InvalidError("file name is required")
	ErrRequiredNewOwner  = fault.InvalidError("new owner is required")
	ErrRequiredPieceId   = fault.InvalidError("at least one piece id is required")
	ErrRequiredPieceSpec = fault.InvalidError("at least one piece is required")
	ErrRequiredSeed      = fault.InvalidError("seed is required")
	ErrInvalidPieceSpec  = fault.InvalidError("piece argument is invalid")
)

// data set id is required and non-zero
func checkDataSetId(id uint64) (uint64, error) {
	if 0 == id {
		return 0, ErrRequiredDataSetId
	}
	return id, nil
}

// epoch is required and non-zero
func checkEpoch(epochNumber uint64) (uint64, error) {
	if 0 == epochNumber {
		return 0, ErrRequiredEpoch
	}
	return epochNumber, nil
}

// check for non-blank file name
func checkFileName(fileName string) (string, error) {
	if "" == fileName {
		return "", ErrRequiredFileName
	}
	return fileName, nil
}

// base58 identity of the receiving owner
func checkNewOwner(s string) (provider.Identity, error) {
	if "" == s {
		return provider.Identity{}, ErrRequiredNewOwner
	}
	return provider.IdentityFromBase58(s)
}

// a 32 byte hex digest
func checkSeed(s string) (merkle.Digest, error) {
	if "" == s {
		return merkle.Digest{}, ErrRequiredSeed
	}
	b, err := hex.DecodeString(s)
	if nil != err {
		return merkle.Digest{}, err
	}
	return merkle.DigestFromBytes(b)
}

// each argument is ROOT-HEX:SIZE
func checkPieceSpecs(arguments []string) ([]dataset.PieceData, error) {
	if 0 == len(arguments) {
		return nil, ErrRequiredPieceSpec
	}

	pieces := make([]dataset.PieceData, len(arguments))
	for i, argument := range arguments {
		colon := strings.LastIndex(argument, ":")
		if colon <= 0 || colon == len(argument)-1 {
			return nil, ErrInvalidPieceSpec
		}
		b, err := hex.DecodeString(argument[:colon])
		if nil != err {
			return nil, err
		}
		root, err := merkle.DigestFromBytes(b)
		if nil != err {
			return nil, err
		}
		size, err := strconv.ParseUint(argument[colon+1:], 10, 64)
		if nil != err {
			return nil, err
		}
		pieces[i] = dataset.PieceData{
			RootDigest: root,
			Size:       size,
		}
	}
	return pieces, nil
}

// each argument is PIECE-ID:FILE
func checkPieceFiles(arguments []string) (map[uint64]string, error) {
	if 0 == len(arguments) {
		return nil, ErrRequiredPieceSpec
	}

	pieceFiles := make(map[uint64]string, len(arguments))
	for _, argument := range arguments {
		colon := strings.Index(argument, ":")
		if colon <= 0 || colon == len(argument)-1 {
			return nil, ErrInvalidPieceSpec
		}
		id, err := strconv.ParseUint(argument[:colon], 10, 64)
		if nil != err {
			return nil, err
		}
		pieceFiles[id] = argument[colon+1:]
	}
	return pieceFiles, nil
}

// each argument is a decimal piece id
func checkPieceIds(arguments []string) ([]uint64, error) {
	if 0 == len(arguments) {
		return nil, ErrRequiredPieceId
	}

	pieceIds := make([]uint64, len(arguments))
	for i, argument := range arguments {
		id, err := strconv.ParseUint(argument, 10, 64)
		if nil != err {
			return nil, err
		}
		pieceIds[i] = id
	}
	return pieceIds, nil
}
