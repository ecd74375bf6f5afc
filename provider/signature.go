// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package provider

import (
	"encoding/hex"

	"github.com/bitmark-inc/custodyd/fault"
)

// Signature - an Ed25519 signature over a packed request
type Signature []byte

// String - the hex encoding of the signature for use by the fmt package (for %s)
func (signature Signature) String() string {
	return hex.EncodeToString(signature)
}

// MarshalText - convert signature to hex text
func (signature Signature) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(signature))
	buffer := make([]byte, size)
	hex.Encode(buffer, signature)
	return buffer, nil
}

// UnmarshalText - convert hex text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	buffer := make([]byte, size)
	byteCount, err := hex.Decode(buffer, s)
	if nil != err {
		return fault.ErrInvalidSignature
	}
	*signature = buffer[:byteCount]
	return nil
}
