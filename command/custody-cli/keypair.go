// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/provider"

	"github.com/bitmark-inc/custodyd/command/custody-cli/encrypt"
	"github.com/bitmark-inc/custodyd/command/custody-cli/rpccalls"
)

// on-disk form of a key: the seed is only stored encrypted
type keyFile struct {
	Identity      provider.Identity `json:"identity"`
	Salt          *encrypt.Salt     `json:"salt"`
	EncryptedSeed string            `json:"encryptedSeed"`
}

// makeKeypairFile - generate an Ed25519 seed and store it encrypted
func makeKeypairFile(fileName string, password string) (*rpccalls.Keypair, error) {

	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); nil != err {
		return nil, err
	}

	keypair, err := keypairFromSeed(seed)
	if nil != err {
		return nil, err
	}

	salt, ciphertext, err := encrypt.EncryptSeed(seed, password)
	if nil != err {
		return nil, err
	}

	data, err := json.MarshalIndent(keyFile{
		Identity:      keypair.Identity,
		Salt:          salt,
		EncryptedSeed: hex.EncodeToString(ciphertext),
	}, "", "  ")
	if nil != err {
		return nil, err
	}

	if err := ioutil.WriteFile(fileName, append(data, '\n'), 0o600); nil != err {
		return nil, err
	}

	return keypair, nil
}

// readKeypairFile - load and decrypt a stored key
//
// a wrong passphrase yields a different seed, caught by comparing
// the regenerated identity against the stored one
func readKeypairFile(fileName string, password string) (*rpccalls.Keypair, error) {

	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	stored := keyFile{}
	if err := json.Unmarshal(data, &stored); nil != err {
		return nil, err
	}
	if nil == stored.Salt {
		return nil, fault.ErrMissingParameters
	}

	ciphertext, err := hex.DecodeString(stored.EncryptedSeed)
	if nil != err {
		return nil, err
	}

	seed, err := encrypt.DecryptSeed(ciphertext, stored.Salt, password)
	if nil != err {
		return nil, err
	}

	keypair, err := keypairFromSeed(seed)
	if nil != err {
		return nil, err
	}
	if keypair.Identity != stored.Identity {
		return nil, encrypt.ErrWrongPassword
	}

	return keypair, nil
}

func keypairFromSeed(seed []byte) (*rpccalls.Keypair, error) {

	privateKey := ed25519.NewKeyFromSeed(seed)
	publicKey, ok := privateKey.Public().(ed25519.PublicKey)
	if !ok {
		return nil, fault.ErrInvalidIdentity
	}

	identity, err := provider.IdentityFromBytes(publicKey)
	if nil != err {
		return nil, err
	}

	return &rpccalls.Keypair{
		Identity:   identity,
		PrivateKey: privateKey,
	}, nil
}
