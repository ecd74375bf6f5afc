// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type UnavailableError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised      = ProcessError("already initialised")
	ErrCertificateFileExists   = ExistsError("certificate file exists")
	ErrChallengeWindowClosed   = ProcessError("challenge window is closed")
	ErrDataSetEmpty            = InvalidError("data set has no active pieces")
	ErrDataSetNotFound         = NotFoundError("data set not found")
	ErrDuplicatePieceId        = ExistsError("duplicate piece id")
	ErrInsufficientLeaves      = InvalidError("insufficient leaves for challenge")
	ErrInvalidChallengeCount   = InvalidError("challenge count is invalid")
	ErrInvalidCount            = InvalidError("count is invalid")
	ErrInvalidChallengeDelay   = InvalidError("challenge delay is invalid")
	ErrInvalidEpoch            = InvalidError("epoch is invalid")
	ErrInvalidIdentity         = InvalidError("identity is invalid")
	ErrInvalidLeafCount        = InvalidError("leaf count is invalid")
	ErrInvalidPieceIdentifier  = InvalidError("piece identifier is invalid")
	ErrInvalidPieceSize        = InvalidError("piece size is invalid")
	ErrInvalidProofShape       = InvalidError("proof shape is invalid")
	ErrInvalidSignature        = InvalidError("invalid signature")
	ErrInvalidStructurePointer = ProcessError("invalid structure pointer")
	ErrKeyFileExists           = ExistsError("key file exists")
	ErrNotAuthorised           = AccessError("not authorised")
	ErrNotInitialised          = ProcessError("not initialised")
	ErrMissingParameters       = InvalidError("missing parameters")
	ErrNotNormalMode           = ProcessError("not normal mode")
	ErrOffsetOutOfRange        = InvalidError("offset out of range")
	ErrPieceNotFound           = NotFoundError("piece not found")
	ErrProofInvalid            = ProcessError("proof is invalid")
	ErrProvingPeriodNotEnded   = ProcessError("proving period has not ended")
	ErrRandomnessUnavailable   = UnavailableError("randomness unavailable")
	ErrRateLimiting            = ProcessError("rate limiting")
	ErrWrongProofCount         = InvalidError("wrong number of proofs")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string      { return string(e) }
func (e ExistsError) Error() string      { return string(e) }
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ProcessError) Error() string     { return string(e) }
func (e UnavailableError) Error() string { return string(e) }

// determine the class of an error
func IsErrAccess(e error) bool      { _, ok := e.(AccessError); return ok }
func IsErrExists(e error) bool      { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool     { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool    { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool     { _, ok := e.(ProcessError); return ok }
func IsErrUnavailable(e error) bool { _, ok := e.(UnavailableError); return ok }
