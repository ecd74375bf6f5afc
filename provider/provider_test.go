// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package provider_test

import (
	"crypto/rand"
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/provider"
)

func TestIdentityRoundTrip(t *testing.T) {

	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		t.Fatalf("key generation error: %s", err)
	}

	identity, err := provider.IdentityFromBytes(publicKey)
	if nil != err {
		t.Fatalf("from bytes error: %s", err)
	}

	recovered, err := provider.IdentityFromBase58(identity.String())
	if nil != err {
		t.Fatalf("from base58 error: %s", err)
	}
	if recovered != identity {
		t.Errorf("round trip: actual: %s  expected: %s", recovered, identity)
	}

	_, err = provider.IdentityFromBytes(publicKey[:16])
	if fault.ErrInvalidIdentity != err {
		t.Errorf("short key: actual: %v  expected: %v", err, fault.ErrInvalidIdentity)
	}
}

func TestIdentityVerify(t *testing.T) {

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		t.Fatalf("key generation error: %s", err)
	}

	identity, err := provider.IdentityFromBytes(publicKey)
	if nil != err {
		t.Fatalf("from bytes error: %s", err)
	}

	message := []byte("submit proof for data set 9")
	signature := ed25519.Sign(privateKey, message)

	if err := identity.Verify(message, signature); nil != err {
		t.Errorf("valid signature rejected: %s", err)
	}

	bad := append([]byte{}, signature...)
	bad[0] ^= 0x01
	if err := identity.Verify(message, bad); fault.ErrInvalidSignature != err {
		t.Errorf("corrupted signature: actual: %v  expected: %v", err, fault.ErrInvalidSignature)
	}

	if err := identity.Verify(message, signature[:32]); fault.ErrInvalidSignature != err {
		t.Errorf("short signature: actual: %v  expected: %v", err, fault.ErrInvalidSignature)
	}
}

func TestIdentityZero(t *testing.T) {
	var identity provider.Identity
	if !identity.IsZero() {
		t.Errorf("unset identity not zero")
	}
}
