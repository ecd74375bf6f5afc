// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package provider - storage provider identities
//
// A provider is identified by an Ed25519 public key, shown in
// base58.  The identity owning a data set authorises every mutation
// of it; the RPC surface checks request signatures against the same
// key.
package provider

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/fault"
)

// IdentitySize - number of bytes in an identity
const IdentitySize = ed25519.PublicKeySize

// Identity - the public key of a storage provider
type Identity [IdentitySize]byte

// IdentityFromBytes - convert a byte slice to an identity
func IdentityFromBytes(buffer []byte) (Identity, error) {
	var identity Identity
	if IdentitySize != len(buffer) {
		return identity, fault.ErrInvalidIdentity
	}
	copy(identity[:], buffer)
	return identity, nil
}

// IdentityFromBase58 - decode the text form of an identity
func IdentityFromBase58(s string) (Identity, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Identity{}, fault.ErrInvalidIdentity
	}
	return IdentityFromBytes(buffer)
}

// String - base58 encoding of the identity for use by the fmt package (for %s)
func (identity Identity) String() string {
	return base58.Encode(identity[:])
}

// MarshalText - convert identity to base58 text
func (identity Identity) MarshalText() ([]byte, error) {
	return []byte(identity.String()), nil
}

// UnmarshalText - convert base58 text into an identity
func (identity *Identity) UnmarshalText(s []byte) error {
	decoded, err := IdentityFromBase58(string(s))
	if nil != err {
		return err
	}
	*identity = decoded
	return nil
}

// Verify - check an Ed25519 signature made by this identity
func (identity Identity) Verify(message []byte, signature []byte) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(identity[:], message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// IsZero - true for the unset identity
func (identity Identity) IsZero() bool {
	return identity == Identity{}
}
