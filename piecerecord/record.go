// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package piecerecord - committed data pieces
//
// A piece is one committed chunk of a provider's data: a Merkle
// root over its 32 byte leaves plus its byte size.  The byte size
// fixes the number of leaves the piece contributes to a data set's
// logical offset space.
//
// Content identifier format checking is a pluggable collaborator;
// the engine only requires size consistency with the declared root.
package piecerecord

import (
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
)

// LeafSize - number of bytes in one Merkle leaf
const LeafSize = 32

// Piece - one committed piece of data
type Piece struct {
	Id         uint64        `json:"id,string"`
	RootDigest merkle.Digest `json:"rootDigest"`
	Size       uint64        `json:"size,string"`
}

// LeafCount - number of leaves this piece contributes
func (piece *Piece) LeafCount() uint64 {
	return piece.Size / LeafSize
}

// CheckSize - validate the declared byte size
//
// must be a non zero multiple of the leaf size
func (piece *Piece) CheckSize() error {
	if 0 == piece.Size || 0 != piece.Size%LeafSize {
		return fault.ErrInvalidPieceSize
	}
	return nil
}

// Validator - external content identifier collaborator
//
// confirms that a declared identifier and byte size are consistent
// before the piece is admitted to the index
type Validator interface {
	Validate(rootDigest merkle.Digest, size uint64) error
}

// digestValidator - minimal built-in validator
//
// only rejects the zero digest; identifier format checking proper
// lives in the external collaborator this stands in for
type digestValidator struct{}

func (digestValidator) Validate(rootDigest merkle.Digest, size uint64) error {
	if rootDigest == (merkle.Digest{}) {
		return fault.ErrInvalidPieceIdentifier
	}
	return nil
}

// NewDigestValidator - validator accepting any non zero root digest
func NewDigestValidator() Validator {
	return digestValidator{}
}
