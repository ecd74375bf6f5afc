// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package piecerecord

import (
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/util"
)

// Packed - byte form of a piece record for the storage pools
type Packed []byte

// Pack - serialise a piece record
//
// structure: varint id ‖ 32 byte root digest ‖ varint size
func (piece *Piece) Pack() Packed {
	packed := util.ToVarint64(piece.Id)
	packed = append(packed, piece.RootDigest[:]...)
	packed = append(packed, util.ToVarint64(piece.Size)...)
	return packed
}

// Unpack - recover a piece record from its packed form
func (packed Packed) Unpack() (*Piece, error) {

	id, count := util.FromVarint64(packed)
	if 0 == count {
		return nil, fault.ErrInvalidStructurePointer
	}
	rest := packed[count:]

	if len(rest) < merkle.DigestLength {
		return nil, fault.ErrInvalidStructurePointer
	}
	rootDigest, err := merkle.DigestFromBytes(rest[:merkle.DigestLength])
	if nil != err {
		return nil, err
	}
	rest = rest[merkle.DigestLength:]

	size, count := util.FromVarint64(rest)
	if 0 == count || count != len(rest) {
		return nil, fault.ErrInvalidStructurePointer
	}

	piece := &Piece{
		Id:         id,
		RootDigest: rootDigest,
		Size:       size,
	}
	if err := piece.CheckSize(); nil != err {
		return nil, err
	}
	return piece, nil
}
