// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
)

// Handle - write/scan access to one pool
//
// satisfied by PoolHandle; kept as an interface so state owning
// packages can run memory only under test
type Handle interface {
	Put(key []byte, value []byte)
	Delete(key []byte)
	Get(key []byte) []byte
	Has(key []byte) bool
	Fetch() []Element
}

// PoolHandle - one prefixed key space on the database
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary key/value pair from a scan
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("pool.Put nil database")
		return
	}
	err := poolData.db.Put(p.prefixKey(key), value, nil)
	logger.PanicIfError("pool.Put", err)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("pool.Delete nil database")
		return
	}
	err := poolData.db.Delete(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Delete", err)
}

// Get - read a value for a given key
//
// returns nil if the key is absent
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil
	}
	value, err := poolData.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return false
	}
	value, err := poolData.db.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}

// Fetch - return all elements in the pool, keys stripped of the prefix
//
// the pools are small (one record per data set or piece) so a full
// scan at startup is acceptable
func (p *PoolHandle) Fetch() []Element {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil
	}

	keyRange := ldb_util.Range{
		Start: []byte{p.prefix}, // included in the range
		Limit: p.limit,          // excluded from the range
	}

	iter := poolData.db.NewIterator(&keyRange, nil)
	defer iter.Release()

	elements := []Element{}
	for iter.Next() {

		// contents of the returned slices are only valid until the
		// next call to Next, so copy them out
		key := append([]byte{}, iter.Key()...)
		value := append([]byte{}, iter.Value()...)

		elements = append(elements, Element{
			Key:   key[1:], // strip the prefix
			Value: value,
		})
	}
	logger.PanicIfError("pool.Fetch", iter.Error())

	return elements
}
