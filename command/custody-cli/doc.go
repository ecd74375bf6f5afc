// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command-line access to a running custodyd.
//
// All mutating commands sign their request with the Ed25519 key held
// in the key file so the daemon can check that the caller controls
// the owning identity.  The key file stores the seed encrypted under
// a passphrase; see the encrypt subpackage.
package main
