// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"io/ioutil"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
)

// getCertificate - load a TLS key pair from files and return the
// certificate fingerprint
func getCertificate(log *logger.L, name string, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	var fingerprint [32]byte

	certificatePEM, err := ioutil.ReadFile(certificateFileName)
	if nil != err {
		log.Errorf("%s failed to read certificate: %q  error: %s", name, certificateFileName, err)
		return nil, fingerprint, err
	}
	keyPEM, err := ioutil.ReadFile(keyFileName)
	if nil != err {
		log.Errorf("%s failed to read key: %q  error: %s", name, keyFileName, err)
		return nil, fingerprint, err
	}

	keyPair, err := tls.X509KeyPair(certificatePEM, keyPEM)
	if nil != err {
		log.Errorf("%s failed to load keypair: %s", name, err)
		return nil, fingerprint, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	// FreeBSD: openssl x509 -outform DER -in custodyd.crt | sha3sum -a 256
	fingerprint = sha3.Sum256(keyPair.Certificate[0])

	return tlsConfiguration, fingerprint, nil
}
