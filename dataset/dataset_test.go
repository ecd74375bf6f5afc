// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dataset_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/custodyd/challenge"
	"github.com/bitmark-inc/custodyd/dataset"
	"github.com/bitmark-inc/custodyd/epoch"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/merkle"
	"github.com/bitmark-inc/custodyd/piecerecord"
	"github.com/bitmark-inc/custodyd/provider"
	"github.com/bitmark-inc/custodyd/storage"
)

const testingDirName = "testing"

const (
	challengeCount = 3
	windowLength   = 4
	challengeDelay = 5
	startEpoch     = 100
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0o700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

// fixed randomness source for deterministic challenges
type seedSource map[uint64]merkle.Digest

func (s seedSource) Randomness(epochNumber uint64) (merkle.Digest, error) {
	seed, ok := s[epochNumber]
	if !ok {
		return merkle.Digest{}, fault.ErrRandomnessUnavailable
	}
	return seed, nil
}

// listener recording every notification, with a controllable error
// to show that listener failures never affect the engine
type recordingListener struct {
	created     []uint64
	added       [][]uint64
	deleted     [][]uint64
	proven      []uint64
	faulted     []uint64
	transferred []uint64
	removed     []uint64
	err         error
}

func (r *recordingListener) OnDataSetCreated(dataSetId uint64, owner provider.Identity) error {
	r.created = append(r.created, dataSetId)
	return r.err
}
func (r *recordingListener) OnPiecesAdded(dataSetId uint64, pieceIds []uint64) error {
	r.added = append(r.added, pieceIds)
	return r.err
}
func (r *recordingListener) OnPiecesDeleted(dataSetId uint64, pieceIds []uint64) error {
	r.deleted = append(r.deleted, pieceIds)
	return r.err
}
func (r *recordingListener) OnProofAccepted(dataSetId uint64, epochNumber uint64, challengeCount int) error {
	r.proven = append(r.proven, epochNumber)
	return r.err
}
func (r *recordingListener) OnFault(dataSetId uint64, epochNumber uint64) error {
	r.faulted = append(r.faulted, epochNumber)
	return r.err
}
func (r *recordingListener) OnOwnershipTransferred(dataSetId uint64, previousOwner provider.Identity, newOwner provider.Identity) error {
	r.transferred = append(r.transferred, dataSetId)
	return r.err
}
func (r *recordingListener) OnDataSetDeleted(dataSetId uint64) error {
	r.removed = append(r.removed, dataSetId)
	return r.err
}

// one piece with a real tree so inclusion proofs can be produced
type testPiece struct {
	leaves []merkle.Digest
	tree   []merkle.Digest
	root   merkle.Digest
}

func makePiece(t *testing.T, leafCount int, tag byte) (dataset.PieceData, *testPiece) {
	leaves := make([]merkle.Digest, leafCount)
	for i := range leaves {
		leaves[i] = merkle.NewDigest([]byte{tag, byte(i)})
	}
	tree := merkle.FullTree(leaves)
	piece := &testPiece{
		leaves: leaves,
		tree:   tree,
		root:   merkle.Root(tree),
	}
	data := dataset.PieceData{
		RootDigest: piece.root,
		Size:       uint64(leafCount) * piecerecord.LeafSize,
	}
	return data, piece
}

// answer every open challenge of a data set from real trees
func makeProofs(t *testing.T, dataSetId uint64, pieces map[uint64]*testPiece) []dataset.Proof {
	challenges, err := dataset.Challenges(dataSetId)
	if nil != err {
		t.Fatalf("challenges error: %s", err)
	}

	proofs := make([]dataset.Proof, len(challenges))
	for i, c := range challenges {
		piece, ok := pieces[c.PieceId]
		if !ok {
			t.Fatalf("challenge resolved to unknown piece: %d", c.PieceId)
		}
		path, err := merkle.ProofFor(piece.tree, len(piece.leaves), c.LocalOffset)
		if nil != err {
			t.Fatalf("proof error: %s", err)
		}
		proofs[i] = dataset.Proof{
			Leaf:   piece.leaves[c.LocalOffset],
			Offset: c.Offset,
			Path:   path,
		}
	}
	return proofs
}

type fixture struct {
	clock    *epoch.Manual
	seeds    seedSource
	listener *recordingListener
	owner    provider.Identity
	other    provider.Identity
}

func setup(t *testing.T) *fixture {
	f := &fixture{
		clock:    &epoch.Manual{},
		seeds:    make(seedSource),
		listener: &recordingListener{},
	}
	f.clock.Set(startEpoch)
	f.owner[0] = 1
	f.other[0] = 2

	err := dataset.Initialise(f.clock, f.seeds, f.listener, piecerecord.NewDigestValidator(), dataset.Config{
		ChallengeCount: challengeCount,
		WindowLength:   windowLength,
	})
	if nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	return f
}

func teardown(t *testing.T) {
	_ = dataset.Finalise()
}

// create a set, add pieces, walk to its first open window
func (f *fixture) openWindow(t *testing.T, leafCounts ...int) (uint64, map[uint64]*testPiece) {
	dataSetId, err := dataset.Create(f.owner, challengeDelay)
	if nil != err {
		t.Fatalf("create error: %s", err)
	}

	data := make([]dataset.PieceData, len(leafCounts))
	pieces := make(map[uint64]*testPiece)
	for i, n := range leafCounts {
		d, piece := makePiece(t, n, byte(i+1))
		data[i] = d
		pieces[uint64(i)] = piece
	}

	pieceIds, err := dataset.AddPieces(dataSetId, f.owner, data)
	if nil != err {
		t.Fatalf("add pieces error: %s", err)
	}
	assert.Equal(t, len(leafCounts), len(pieceIds), "wrong piece id count")

	record, err := dataset.Get(dataSetId)
	if nil != err {
		t.Fatalf("get error: %s", err)
	}
	f.clock.Set(record.NextChallengeEpoch)
	f.seeds[record.NextChallengeEpoch] = merkle.NewDigest([]byte{0xbe, byte(dataSetId)})

	return dataSetId, pieces
}

func TestCreate(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, err := dataset.Create(f.owner, challengeDelay)
	assert.Nil(t, err, "create error")
	assert.Equal(t, uint64(1), dataSetId, "wrong first data set id")

	record, err := dataset.Get(dataSetId)
	assert.Nil(t, err, "get error")
	assert.Equal(t, dataset.Empty, record.State, "wrong initial state")
	assert.Equal(t, f.owner, record.Owner, "wrong owner")
	assert.Equal(t, uint64(0), record.NextChallengeEpoch, "empty set must not be scheduled")
	assert.Equal(t, []uint64{1}, f.listener.created, "missing creation notification")

	_, err = dataset.Get(42)
	assert.Equal(t, fault.ErrDataSetNotFound, err, "wrong error for unknown set")

	_, err = dataset.Create(provider.Identity{}, challengeDelay)
	assert.Equal(t, fault.ErrInvalidIdentity, err, "zero identity accepted")

	_, err = dataset.Create(f.owner, 0)
	assert.Equal(t, fault.ErrInvalidChallengeDelay, err, "zero delay accepted")
}

func TestAddPiecesSchedulesFirstWindow(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, err := dataset.Create(f.owner, challengeDelay)
	assert.Nil(t, err, "create error")

	d1, _ := makePiece(t, 4, 1)
	d2, _ := makePiece(t, 2, 2)
	pieceIds, err := dataset.AddPieces(dataSetId, f.owner, []dataset.PieceData{d1, d2})
	assert.Nil(t, err, "add error")
	assert.Equal(t, []uint64{0, 1}, pieceIds, "wrong piece ids")

	record, err := dataset.Get(dataSetId)
	assert.Nil(t, err, "get error")
	assert.Equal(t, dataset.Active, record.State, "wrong state after first pieces")
	assert.Equal(t, uint64(startEpoch+challengeDelay), record.NextChallengeEpoch, "wrong first challenge epoch")
	assert.Equal(t, uint64(6), record.TotalLeaves, "wrong leaf total")
	assert.Equal(t, uint64(6*piecerecord.LeafSize), record.TotalSize, "wrong byte total")

	// bad batches must change nothing
	bad := dataset.PieceData{RootDigest: merkle.NewDigest([]byte{9}), Size: 33}
	_, err = dataset.AddPieces(dataSetId, f.owner, []dataset.PieceData{d1, bad})
	assert.Equal(t, fault.ErrInvalidPieceSize, err, "bad size accepted")

	zero := dataset.PieceData{Size: piecerecord.LeafSize}
	_, err = dataset.AddPieces(dataSetId, f.owner, []dataset.PieceData{zero})
	assert.Equal(t, fault.ErrInvalidPieceIdentifier, err, "zero digest accepted")

	after, _ := dataset.Get(dataSetId)
	assert.Equal(t, record.TotalLeaves, after.TotalLeaves, "failed batch changed the index")
	assert.Equal(t, uint64(2), after.PieceCount, "failed batch changed the pieces")
}

func TestSubmitProof(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, pieces := f.openWindow(t, 4, 2, 6)

	record, _ := dataset.Get(dataSetId)
	assert.Equal(t, dataset.AwaitingProof, record.State, "window did not open")

	challenges, err := dataset.Challenges(dataSetId)
	assert.Nil(t, err, "challenges error")
	assert.Equal(t, challengeCount, len(challenges), "wrong challenge count")

	proofs := makeProofs(t, dataSetId, pieces)
	err = dataset.SubmitProof(dataSetId, f.owner, proofs)
	assert.Nil(t, err, "valid proof rejected")

	record, _ = dataset.Get(dataSetId)
	assert.Equal(t, dataset.Proven, record.State, "wrong state after proof")
	assert.Equal(t, f.clock.Current()+challengeDelay, record.NextChallengeEpoch, "wrong next challenge epoch")
	assert.Equal(t, 1, len(f.listener.proven), "missing proof notification")

	// window is consumed
	err = dataset.SubmitProof(dataSetId, f.owner, proofs)
	assert.Equal(t, fault.ErrChallengeWindowClosed, err, "second submit accepted")
}

func TestSubmitProofIsAtomic(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, pieces := f.openWindow(t, 4, 2, 6)

	proofs := makeProofs(t, dataSetId, pieces)

	// corrupt a single leaf: the whole submission must be rejected
	// and the window must stay open
	corrupted := make([]dataset.Proof, len(proofs))
	copy(corrupted, proofs)
	last := len(corrupted) - 1
	corrupted[last].Leaf = merkle.NewDigest([]byte("tampered"))

	err := dataset.SubmitProof(dataSetId, f.owner, corrupted)
	assert.Equal(t, fault.ErrProofInvalid, err, "corrupted proof accepted")

	record, _ := dataset.Get(dataSetId)
	assert.Equal(t, dataset.AwaitingProof, record.State, "rejection changed state")
	assert.Equal(t, 0, len(f.listener.proven), "rejection notified")

	// wrong count
	err = dataset.SubmitProof(dataSetId, f.owner, proofs[:1])
	assert.Equal(t, fault.ErrWrongProofCount, err, "short submission accepted")

	// offsets answered out of order
	if len(proofs) > 1 && proofs[0].Offset != proofs[1].Offset {
		swapped := make([]dataset.Proof, len(proofs))
		copy(swapped, proofs)
		swapped[0], swapped[1] = swapped[1], swapped[0]
		err = dataset.SubmitProof(dataSetId, f.owner, swapped)
		assert.Equal(t, fault.ErrProofInvalid, err, "reordered submission accepted")
	}

	// a sibling path of the wrong length is a malformed proof, not
	// merely a failed one
	truncated := make([]dataset.Proof, len(proofs))
	copy(truncated, proofs)
	truncated[last].Path = truncated[last].Path[:len(truncated[last].Path)-1]
	err = dataset.SubmitProof(dataSetId, f.owner, truncated)
	assert.Equal(t, fault.ErrInvalidProofShape, err, "truncated path accepted")

	record, _ = dataset.Get(dataSetId)
	assert.Equal(t, dataset.AwaitingProof, record.State, "malformed submission changed state")

	// the intact submission still goes through afterwards
	err = dataset.SubmitProof(dataSetId, f.owner, proofs)
	assert.Nil(t, err, "valid proof rejected after failed attempt")
}

func TestChallengesMatchDerivation(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, _ := f.openWindow(t, 4, 2, 6)

	record, _ := dataset.Get(dataSetId)
	seed, err := f.seeds.Randomness(record.NextChallengeEpoch)
	assert.Nil(t, err, "seed missing")

	expected, err := challenge.Derive(seed, dataSetId, record.TotalLeaves, challengeCount)
	assert.Nil(t, err, "derive error")

	challenges, err := dataset.Challenges(dataSetId)
	assert.Nil(t, err, "challenges error")
	for i, c := range challenges {
		assert.Equal(t, expected[i], c.Offset, "challenge offset mismatch")
		pieceId, localOffset, err := dataset.Resolve(dataSetId, c.Offset)
		assert.Nil(t, err, "resolve error")
		assert.Equal(t, c.PieceId, pieceId, "piece mismatch")
		assert.Equal(t, c.LocalOffset, localOffset, "local offset mismatch")
	}
}

func TestMissedWindowFault(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, pieces := f.openWindow(t, 4, 2)
	faultedEpoch := f.clock.Current()

	// deadline still ahead: the period cannot be advanced
	err := dataset.NextProvingPeriod(dataSetId, f.owner)
	assert.Equal(t, fault.ErrProvingPeriodNotEnded, err, "open window advanced")

	f.clock.Advance(windowLength)

	// the lapsed window no longer takes proofs
	err = dataset.SubmitProof(dataSetId, f.owner, makeLateProofs(t, pieces))
	assert.Equal(t, fault.ErrChallengeWindowClosed, err, "late proof accepted")

	err = dataset.NextProvingPeriod(dataSetId, f.owner)
	assert.Nil(t, err, "fault acknowledgement failed")
	assert.Equal(t, []uint64{faultedEpoch}, f.listener.faulted, "missing fault notification")

	record, _ := dataset.Get(dataSetId)
	assert.Equal(t, dataset.Faulted, record.State, "wrong state after fault")
	assert.Equal(t, f.clock.Current()+challengeDelay, record.NextChallengeEpoch, "schedule stalled after fault")

	// liveness: a faulted set is still mutable, the provider can
	// drop lost pieces and prove the remainder next window
	err = dataset.DeletePieces(dataSetId, f.owner, []uint64{0})
	assert.Nil(t, err, "delete in faulted state failed")

	f.clock.Set(record.NextChallengeEpoch)
	f.seeds[record.NextChallengeEpoch] = merkle.NewDigest([]byte{0xca, 0xfe})

	proofs := makeProofs(t, dataSetId, pieces)
	err = dataset.SubmitProof(dataSetId, f.owner, proofs)
	assert.Nil(t, err, "recovery proof rejected")

	record, _ = dataset.Get(dataSetId)
	assert.Equal(t, dataset.Proven, record.State, "recovery did not prove")
}

func TestLapsed(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, _ := f.openWindow(t, 4, 2)

	// window open, deadline ahead
	assert.Equal(t, []uint64{}, dataset.Lapsed(), "open window reported lapsed")

	f.clock.Advance(windowLength)
	assert.Equal(t, []uint64{dataSetId}, dataset.Lapsed(), "lapsed window not reported")

	// acknowledging the fault clears the report
	err := dataset.NextProvingPeriod(dataSetId, f.owner)
	assert.Nil(t, err, "fault acknowledgement failed")
	assert.Equal(t, []uint64{}, dataset.Lapsed(), "acknowledged set still reported")
}

// placeholder proofs for a window whose seed was never requested;
// shape does not matter as the deadline check comes first
func makeLateProofs(t *testing.T, pieces map[uint64]*testPiece) []dataset.Proof {
	proofs := make([]dataset.Proof, challengeCount)
	for i := range proofs {
		proofs[i].Leaf = pieces[0].leaves[0]
	}
	return proofs
}

func TestUnauthorised(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, pieces := f.openWindow(t, 4)

	d, _ := makePiece(t, 2, 9)
	_, err := dataset.AddPieces(dataSetId, f.other, []dataset.PieceData{d})
	assert.Equal(t, fault.ErrNotAuthorised, err, "foreign add accepted")

	err = dataset.DeletePieces(dataSetId, f.other, []uint64{0})
	assert.Equal(t, fault.ErrNotAuthorised, err, "foreign delete accepted")

	err = dataset.SubmitProof(dataSetId, f.other, makeProofs(t, dataSetId, pieces))
	assert.Equal(t, fault.ErrNotAuthorised, err, "foreign proof accepted")

	err = dataset.NextProvingPeriod(dataSetId, f.other)
	assert.Equal(t, fault.ErrNotAuthorised, err, "foreign advance accepted")

	err = dataset.Transfer(dataSetId, f.other, f.other)
	assert.Equal(t, fault.ErrNotAuthorised, err, "foreign transfer accepted")

	err = dataset.Delete(dataSetId, f.other)
	assert.Equal(t, fault.ErrNotAuthorised, err, "foreign removal accepted")
}

func TestTransfer(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, err := dataset.Create(f.owner, challengeDelay)
	assert.Nil(t, err, "create error")

	err = dataset.Transfer(dataSetId, f.owner, f.other)
	assert.Nil(t, err, "transfer error")
	assert.Equal(t, []uint64{dataSetId}, f.listener.transferred, "missing transfer notification")

	record, _ := dataset.Get(dataSetId)
	assert.Equal(t, f.other, record.Owner, "owner unchanged")

	// previous owner lost all rights
	d, _ := makePiece(t, 2, 1)
	_, err = dataset.AddPieces(dataSetId, f.owner, []dataset.PieceData{d})
	assert.Equal(t, fault.ErrNotAuthorised, err, "previous owner still authorised")

	_, err = dataset.AddPieces(dataSetId, f.other, []dataset.PieceData{d})
	assert.Nil(t, err, "new owner rejected")
}

func TestDeletePiecesReclaimsOffsets(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, _ := f.openWindow(t, 4, 2, 6)

	// close the window first: pieces are immutable while it is open
	d, _ := makePiece(t, 2, 9)
	_, err := dataset.AddPieces(dataSetId, f.owner, []dataset.PieceData{d})
	assert.Equal(t, fault.ErrChallengeWindowClosed, err, "add inside window accepted")

	err = dataset.DeletePieces(dataSetId, f.owner, []uint64{1})
	assert.Equal(t, fault.ErrChallengeWindowClosed, err, "delete inside window accepted")

	f.clock.Advance(windowLength)
	err = dataset.NextProvingPeriod(dataSetId, f.owner)
	assert.Nil(t, err, "advance error")

	err = dataset.DeletePieces(dataSetId, f.owner, []uint64{1})
	assert.Nil(t, err, "delete error")

	record, _ := dataset.Get(dataSetId)
	assert.Equal(t, uint64(10), record.TotalLeaves, "leaves not reclaimed")
	assert.Equal(t, uint64(2), record.PieceCount, "wrong piece count")

	// offsets after the tombstone resolve into the next live piece
	pieceId, localOffset, err := dataset.Resolve(dataSetId, 4)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, uint64(2), pieceId, "tombstone not skipped")
	assert.Equal(t, uint64(0), localOffset, "wrong local offset")

	_, _, err = dataset.Resolve(dataSetId, 10)
	assert.Equal(t, fault.ErrOffsetOutOfRange, err, "out of range resolved")

	err = dataset.DeletePieces(dataSetId, f.owner, []uint64{1})
	assert.Equal(t, fault.ErrPieceNotFound, err, "double delete accepted")

	err = dataset.DeletePieces(dataSetId, f.owner, []uint64{0, 0})
	assert.Equal(t, fault.ErrDuplicatePieceId, err, "duplicate delete accepted")

	// draining the set stops its schedule
	err = dataset.DeletePieces(dataSetId, f.owner, []uint64{0, 2})
	assert.Nil(t, err, "drain error")

	record, _ = dataset.Get(dataSetId)
	assert.Equal(t, dataset.Empty, record.State, "drained set not empty")
	assert.Equal(t, uint64(0), record.NextChallengeEpoch, "drained set still scheduled")
}

func TestListenerFailureIsIsolated(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	f.listener.err = fault.ErrRateLimiting

	dataSetId, err := dataset.Create(f.owner, challengeDelay)
	assert.Nil(t, err, "listener error propagated into create")

	d, _ := makePiece(t, 2, 1)
	_, err = dataset.AddPieces(dataSetId, f.owner, []dataset.PieceData{d})
	assert.Nil(t, err, "listener error propagated into add")

	record, _ := dataset.Get(dataSetId)
	assert.Equal(t, dataset.Active, record.State, "listener error corrupted state")
}

func TestDelete(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, _ := f.openWindow(t, 4)

	err := dataset.Delete(dataSetId, f.owner)
	assert.Nil(t, err, "delete error")
	assert.Equal(t, []uint64{dataSetId}, f.listener.removed, "missing removal notification")

	_, err = dataset.Get(dataSetId)
	assert.Equal(t, fault.ErrDataSetNotFound, err, "deleted set still present")

	// ids are never reused
	next, err := dataset.Create(f.owner, challengeDelay)
	assert.Nil(t, err, "create error")
	assert.Equal(t, dataSetId+1, next, "data set id reused")
}

func TestRestore(t *testing.T) {
	databaseFileName := testingDirName + "/restore.leveldb"
	_ = os.RemoveAll(databaseFileName)
	err := storage.Initialise(databaseFileName)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	defer func() {
		storage.Finalise()
		_ = os.RemoveAll(databaseFileName)
	}()

	f := &fixture{
		clock:    &epoch.Manual{},
		seeds:    make(seedSource),
		listener: &recordingListener{},
	}
	f.clock.Set(startEpoch)
	f.owner[0] = 1
	f.other[0] = 2

	config := dataset.Config{
		ChallengeCount: challengeCount,
		WindowLength:   windowLength,
		DataSetsPool:   storage.Pool.DataSets,
		PiecesPool:     storage.Pool.Pieces,
	}

	err = dataset.Initialise(f.clock, f.seeds, f.listener, piecerecord.NewDigestValidator(), config)
	assert.Nil(t, err, "initialise error")

	dataSetId, pieces := f.openWindow(t, 4, 2, 6)

	proofs := makeProofs(t, dataSetId, pieces)
	err = dataset.SubmitProof(dataSetId, f.owner, proofs)
	assert.Nil(t, err, "proof error")

	// tombstone a piece, so restore must rebuild around the gap
	err = dataset.DeletePieces(dataSetId, f.owner, []uint64{1})
	assert.Nil(t, err, "delete error")

	before, _ := dataset.Get(dataSetId)
	beforePieces, _ := dataset.Pieces(dataSetId)

	err = dataset.Finalise()
	assert.Nil(t, err, "finalise error")

	// restart against the same pools
	err = dataset.Initialise(f.clock, f.seeds, f.listener, piecerecord.NewDigestValidator(), config)
	assert.Nil(t, err, "re-initialise error")
	defer dataset.Finalise()

	after, err := dataset.Get(dataSetId)
	assert.Nil(t, err, "get after restore error")
	assert.Equal(t, before, after, "restored record differs")

	afterPieces, err := dataset.Pieces(dataSetId)
	assert.Nil(t, err, "pieces after restore error")
	assert.Equal(t, beforePieces, afterPieces, "restored pieces differ")

	// tombstones survive: offsets resolve exactly as before
	pieceId, localOffset, err := dataset.Resolve(dataSetId, 4)
	assert.Nil(t, err, "resolve after restore error")
	assert.Equal(t, uint64(2), pieceId, "restored index lost tombstone")
	assert.Equal(t, uint64(0), localOffset, "restored index local offset")

	// id allocation continues past restored sets
	next, err := dataset.Create(f.owner, challengeDelay)
	assert.Nil(t, err, "create after restore error")
	assert.Equal(t, dataSetId+1, next, "data set id reused after restore")

	// a restored set can still be proven
	record, _ := dataset.Get(dataSetId)
	f.clock.Set(record.NextChallengeEpoch)
	f.seeds[record.NextChallengeEpoch] = merkle.NewDigest([]byte{0x0d})

	proofs = makeProofs(t, dataSetId, pieces)
	err = dataset.SubmitProof(dataSetId, f.owner, proofs)
	assert.Nil(t, err, "proof after restore rejected")
}

func TestSeedUnavailable(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, err := dataset.Create(f.owner, challengeDelay)
	assert.Nil(t, err, "create error")

	d, _ := makePiece(t, 4, 1)
	_, err = dataset.AddPieces(dataSetId, f.owner, []dataset.PieceData{d})
	assert.Nil(t, err, "add error")

	record, _ := dataset.Get(dataSetId)
	f.clock.Set(record.NextChallengeEpoch)

	// window open but no published seed yet
	_, err = dataset.Challenges(dataSetId)
	assert.Equal(t, fault.ErrRandomnessUnavailable, err, "challenges without seed")

	err = dataset.SubmitProof(dataSetId, f.owner, make([]dataset.Proof, challengeCount))
	assert.Equal(t, fault.ErrRandomnessUnavailable, err, "proof without seed accepted")

	record, _ = dataset.Get(dataSetId)
	assert.Equal(t, dataset.AwaitingProof, record.State, "failed seed lookup changed state")
}

func TestEmptySet(t *testing.T) {
	f := setup(t)
	defer teardown(t)

	dataSetId, err := dataset.Create(f.owner, challengeDelay)
	assert.Nil(t, err, "create error")

	_, err = dataset.Challenges(dataSetId)
	assert.Equal(t, fault.ErrDataSetEmpty, err, "challenges on empty set")

	err = dataset.SubmitProof(dataSetId, f.owner, nil)
	assert.Equal(t, fault.ErrDataSetEmpty, err, "proof on empty set accepted")

	err = dataset.NextProvingPeriod(dataSetId, f.owner)
	assert.Equal(t, fault.ErrDataSetEmpty, err, "advance on empty set accepted")

	err = dataset.DeletePieces(dataSetId, f.owner, []uint64{0})
	assert.Equal(t, fault.ErrChallengeWindowClosed, err, "delete on empty set accepted")
}
