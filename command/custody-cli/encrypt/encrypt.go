// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Passphrase protection for the stored signing seed.
//
// The passphrase is stretched with argon2 and the Ed25519 seed is
// encrypted with AES-CBC under the derived key; only the salt, the
// IV and the ciphertext ever touch disk. A wrong passphrase simply
// decrypts to a different seed, so the caller must compare the
// regenerated identity against the stored one.
package encrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/fault"
)

const (
	seedSize = ed25519.SeedSize
)

var (
	ErrKeyLength     = fault.InvalidError("key length is invalid")
	ErrWrongPassword = fault.InvalidError("wrong password")
)

// stretch a passphrase into an AES key
func deriveKey(password string, salt *Salt) ([]byte, error) {
	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     32,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}
	return argon2.Hash(ctx, []byte(password), salt.Bytes())
}

// EncryptSeed - encrypt an Ed25519 seed under a passphrase
//
// returns the fresh salt and the IV prepended to the ciphertext
func EncryptSeed(seed []byte, password string) (*Salt, []byte, error) {

	if seedSize != len(seed) {
		return nil, nil, ErrKeyLength
	}

	salt, err := MakeSalt()
	if nil != err {
		return nil, nil, err
	}

	key, err := deriveKey(password, salt)
	if nil != err {
		return nil, nil, err
	}

	block, err := aes.NewCipher(key)
	if nil != err {
		return nil, nil, err
	}

	ciphertext := make([]byte, aes.BlockSize+seedSize)
	iv := ciphertext[:aes.BlockSize]
	if _, err = io.ReadFull(rand.Reader, iv); nil != err {
		return nil, nil, err
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext[aes.BlockSize:], seed)

	return salt, ciphertext, nil
}

// DecryptSeed - recover a seed stored by EncryptSeed
func DecryptSeed(ciphertext []byte, salt *Salt, password string) ([]byte, error) {

	if aes.BlockSize+seedSize != len(ciphertext) {
		return nil, ErrKeyLength
	}

	key, err := deriveKey(password, salt)
	if nil != err {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if nil != err {
		return nil, err
	}

	seed := make([]byte, seedSize)
	cipher.NewCBCDecrypter(block, ciphertext[:aes.BlockSize]).CryptBlocks(seed, ciphertext[aes.BlockSize:])

	return seed, nil
}
