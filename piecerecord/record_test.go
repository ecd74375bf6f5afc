// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package piecerecord_test

import (
	"testing"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/piecerecord"
)

func TestCheckSize(t *testing.T) {

	testData := []struct {
		size uint64
		err  error
	}{
		{0, fault.ErrInvalidPieceSize},
		{31, fault.ErrInvalidPieceSize},
		{32, nil},
		{33, fault.ErrInvalidPieceSize},
		{320, nil},
		{1048576, nil},
	}

	for i, item := range testData {
		piece := piecerecord.Piece{
			Id:         1,
			RootDigest: merkle.NewDigest([]byte("root")),
			Size:       item.size,
		}
		if err := piece.CheckSize(); err != item.err {
			t.Errorf("%d: size: %d  actual: %v  expected: %v", i, item.size, err, item.err)
		}
	}
}

func TestLeafCount(t *testing.T) {
	piece := piecerecord.Piece{Size: 32 * 17}
	if 17 != piece.LeafCount() {
		t.Errorf("leaf count: actual: %d  expected: 17", piece.LeafCount())
	}
}

func TestPackUnpack(t *testing.T) {

	piece := piecerecord.Piece{
		Id:         12345,
		RootDigest: merkle.NewDigest([]byte("piece root")),
		Size:       32 * 1000,
	}

	packed := piece.Pack()

	recovered, err := packed.Unpack()
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if *recovered != piece {
		t.Errorf("round trip: actual: %+v  expected: %+v", recovered, piece)
	}

	// truncation at every byte must be rejected
	for i := 0; i < len(packed); i += 1 {
		if _, err := packed[:i].Unpack(); nil == err {
			t.Errorf("truncated to %d bytes unexpectedly accepted", i)
		}
	}

	// trailing garbage must be rejected
	if _, err := append(packed, 0x00).Unpack(); nil == err {
		t.Errorf("trailing byte unexpectedly accepted")
	}
}

func TestDigestValidator(t *testing.T) {

	validator := piecerecord.NewDigestValidator()

	if err := validator.Validate(merkle.NewDigest([]byte("x")), 64); nil != err {
		t.Errorf("valid digest rejected: %s", err)
	}

	if err := validator.Validate(merkle.Digest{}, 64); fault.ErrInvalidPieceIdentifier != err {
		t.Errorf("zero digest: actual: %v  expected: %v", err, fault.ErrInvalidPieceIdentifier)
	}
}
