// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/custodyd/fault"
)

// test that error classes are distinguishable by predicate
func TestErrorClasses(t *testing.T) {

	testData := []struct {
		err       error
		access    bool
		exists    bool
		invalid   bool
		notFound  bool
		process   bool
		unavailab bool
	}{
		{fault.ErrNotAuthorised, true, false, false, false, false, false},
		{fault.ErrDuplicatePieceId, false, true, false, false, false, false},
		{fault.ErrOffsetOutOfRange, false, false, true, false, false, false},
		{fault.ErrPieceNotFound, false, false, false, true, false, false},
		{fault.ErrDataSetNotFound, false, false, false, true, false, false},
		{fault.ErrProofInvalid, false, false, false, false, true, false},
		{fault.ErrRandomnessUnavailable, false, false, false, false, false, true},
	}

	for i, item := range testData {
		if fault.IsErrAccess(item.err) != item.access {
			t.Errorf("%d: IsErrAccess(%q) expected: %v", i, item.err, item.access)
		}
		if fault.IsErrExists(item.err) != item.exists {
			t.Errorf("%d: IsErrExists(%q) expected: %v", i, item.err, item.exists)
		}
		if fault.IsErrInvalid(item.err) != item.invalid {
			t.Errorf("%d: IsErrInvalid(%q) expected: %v", i, item.err, item.invalid)
		}
		if fault.IsErrNotFound(item.err) != item.notFound {
			t.Errorf("%d: IsErrNotFound(%q) expected: %v", i, item.err, item.notFound)
		}
		if fault.IsErrProcess(item.err) != item.process {
			t.Errorf("%d: IsErrProcess(%q) expected: %v", i, item.err, item.process)
		}
		if fault.IsErrUnavailable(item.err) != item.unavailab {
			t.Errorf("%d: IsErrUnavailable(%q) expected: %v", i, item.err, item.unavailab)
		}
	}
}

// errors must compare equal to themselves as single instances
func TestErrorInstance(t *testing.T) {
	var e error = fault.ErrProofInvalid
	if e != fault.ErrProofInvalid {
		t.Errorf("error instance does not compare equal to itself")
	}
	if e == error(fault.ErrNotAuthorised) {
		t.Errorf("distinct error instances compare equal")
	}
}
