// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/binary"
	"sort"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fenwick"
	"github.com/bitmark-inc/custodyd/piecerecord"
	"github.com/bitmark-inc/custodyd/provider"
	"github.com/bitmark-inc/custodyd/util"
)

// pool keys
//
// data sets:  8 byte big endian data set id
// pieces:     8 byte big endian data set id ‖ 8 byte big endian piece id
//
// fixed width keys keep leveldb iteration in id order

func dataSetKey(dataSetId uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, dataSetId)
	return key
}

func pieceKey(dataSetId uint64, pieceId uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[:8], dataSetId)
	binary.BigEndian.PutUint64(key[8:], pieceId)
	return key
}

// packed data set record
//
// structure: owner (32 bytes) ‖ varint challenge delay ‖
//            varint next challenge epoch ‖ varint next piece id ‖
//            varint state
func (set *dataSet) pack() []byte {
	packed := make([]byte, 0, 48)
	packed = append(packed, set.owner[:]...)
	packed = append(packed, util.ToVarint64(set.challengeDelay)...)
	packed = append(packed, util.ToVarint64(set.nextChallengeEpoch)...)
	packed = append(packed, util.ToVarint64(set.nextPieceId)...)
	packed = append(packed, util.ToVarint64(uint64(set.state))...)
	return packed
}

// recover a data set record, pieces and index restored separately
func unpackSet(dataSetId uint64, packed []byte) (*dataSet, error) {

	if len(packed) < provider.IdentitySize {
		return nil, fault.ErrInvalidStructurePointer
	}
	owner, err := provider.IdentityFromBytes(packed[:provider.IdentitySize])
	if nil != err {
		return nil, err
	}
	rest := packed[provider.IdentitySize:]

	fields := make([]uint64, 4)
	for i := range fields {
		value, count := util.FromVarint64(rest)
		if 0 == count {
			return nil, fault.ErrInvalidStructurePointer
		}
		fields[i] = value
		rest = rest[count:]
	}
	if 0 != len(rest) {
		return nil, fault.ErrInvalidStructurePointer
	}

	state := State(fields[3])
	if state > Faulted {
		return nil, fault.ErrInvalidStructurePointer
	}

	return &dataSet{
		id:                 dataSetId,
		owner:              owner,
		state:              state,
		challengeDelay:     fields[0],
		nextChallengeEpoch: fields[1],
		nextPieceId:        fields[2],
		pieces:             make(map[uint64]*piecerecord.Piece),
		index:              fenwick.New(),
	}, nil
}

// persistence helpers, registry lock must be held
//
// all are no-ops when running memory only

func (set *dataSet) save() {
	if nil == globalData.config.DataSetsPool {
		return
	}
	globalData.config.DataSetsPool.Put(dataSetKey(set.id), set.pack())
}

func savePieceRecord(dataSetId uint64, piece *piecerecord.Piece) {
	if nil == globalData.config.PiecesPool {
		return
	}
	globalData.config.PiecesPool.Put(pieceKey(dataSetId, piece.Id), piece.Pack())
}

func removePieceRecord(dataSetId uint64, pieceId uint64) {
	if nil == globalData.config.PiecesPool {
		return
	}
	globalData.config.PiecesPool.Delete(pieceKey(dataSetId, pieceId))
}

func removeSetRecord(dataSetId uint64) {
	if nil == globalData.config.DataSetsPool {
		return
	}
	globalData.config.DataSetsPool.Delete(dataSetKey(dataSetId))
}

// restore - reload all data sets from the pools
//
// the index of each set is rebuilt by replaying its pieces in id
// order, tombstoning the slots of deleted pieces so surviving
// pieces land back on their original slots
func restore() error {
	if nil == globalData.config.DataSetsPool {
		return nil
	}

	for _, element := range globalData.config.DataSetsPool.Fetch() {
		if 8 != len(element.Key) {
			globalData.log.Errorf("skip data set record with %d byte key", len(element.Key))
			continue
		}
		dataSetId := binary.BigEndian.Uint64(element.Key)

		set, err := unpackSet(dataSetId, element.Value)
		if nil != err {
			return err
		}

		globalData.sets[dataSetId] = set
		if dataSetId >= globalData.nextDataSetId {
			globalData.nextDataSetId = dataSetId + 1
		}
	}

	if nil == globalData.config.PiecesPool {
		return nil
	}

	for _, element := range globalData.config.PiecesPool.Fetch() {
		if 16 != len(element.Key) {
			globalData.log.Errorf("skip piece record with %d byte key", len(element.Key))
			continue
		}
		dataSetId := binary.BigEndian.Uint64(element.Key[:8])

		set, ok := globalData.sets[dataSetId]
		if !ok {
			globalData.log.Errorf("orphan piece record for data set: %d", dataSetId)
			continue
		}

		piece, err := piecerecord.Packed(element.Value).Unpack()
		if nil != err {
			return err
		}
		set.pieces[piece.Id] = piece
	}

	for _, set := range globalData.sets {
		if err := set.rebuildIndex(); nil != err {
			return err
		}
	}

	return nil
}

// replay surviving pieces into a fresh index
func (set *dataSet) rebuildIndex() error {

	pieceIds := make([]uint64, 0, len(set.pieces))
	for pieceId := range set.pieces {
		pieceIds = append(pieceIds, pieceId)
	}
	sort.Slice(pieceIds, func(i int, j int) bool {
		return pieceIds[i] < pieceIds[j]
	})

	set.totalSize = 0
	nextSlot := uint64(0)
	for _, pieceId := range pieceIds {
		for nextSlot < pieceId {
			set.index.Skip()
			nextSlot += 1
		}
		piece := set.pieces[pieceId]
		slot, err := set.index.Append(piece.LeafCount())
		if nil != err {
			return err
		}
		if slot != pieceId {
			globalData.log.Criticalf("data set: %d  slot: %d  piece id: %d out of step", set.id, slot, pieceId)
			return fault.ErrInvalidStructurePointer
		}
		nextSlot += 1
		set.totalSize += piece.Size
	}
	for nextSlot < set.nextPieceId {
		set.index.Skip()
		nextSlot += 1
	}
	return nil
}
