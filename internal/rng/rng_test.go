// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rng

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_rng01(tst *testing.T) {

	chk.PrintTitle("Test rng01: LCG sample sequence is reproducible")

	s := NewState(12345)
	u1 := s.Sample()
	u2 := s.Sample()
	u3 := s.Sample()

	// values produced by the LCG formula in §4.6 itself, not a rounded
	// illustrative approximation.
	chk.Scalar(tst, "u1", 1e-15, u1, 0.44324748358898985)
	chk.Scalar(tst, "u2", 1e-15, u2, 0.2990642536155635)
	chk.Scalar(tst, "u3", 1e-15, u3, 0.014096010813514224)

	if u1 < 0 || u1 >= 1 || u2 < 0 || u2 >= 1 || u3 < 0 || u3 >= 1 {
		tst.Errorf("samples must lie in [0,1)")
	}
}

func Test_rng02(tst *testing.T) {

	chk.PrintTitle("Test rng02: same seed reproduces the same stream")

	a := NewState(999)
	b := NewState(999)
	for i := 0; i < 5; i++ {
		ua, ub := a.Sample(), b.Sample()
		chk.Scalar(tst, "ua==ub", 0, ua, ub)
	}
}

func Test_rng03(tst *testing.T) {

	chk.PrintTitle("Test rng03: spawned child seeds are deterministic and distinct")

	parent := uint64(42)
	c1 := Spawn(parent)
	c2 := Spawn(parent)
	if c1 != c2 {
		tst.Errorf("spawning twice from the same parent must be deterministic: %d != %d", c1, c2)
	}

	other := Spawn(43)
	if other == c1 {
		tst.Errorf("different parents should spawn different children (collision is possible but astronomically unlikely here)")
	}

	if c1>>63 != 0 {
		tst.Errorf("spawned seed must have its top bit cleared, got %064b", c1)
	}
}

func Test_rng04(tst *testing.T) {

	chk.PrintTitle("Test rng04: GlobalID clears the sign bit only")

	seed := uint64(1) << 63
	gid := GlobalID(seed)
	if gid>>63 != 0 {
		tst.Errorf("GlobalID must clear bit 63")
	}
}
