// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nucdata

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_energy01(tst *testing.T) {

	chk.PrintTitle("Test energy01: boundaries are log-spaced and clamp at the ends")

	g := NewEnergyGroups(10, 1e-11, 20, false)
	b := g.Boundaries()
	chk.Scalar(tst, "b[0]", 1e-15, b[0], 1e-11)
	chk.Scalar(tst, "b[10]", 1e-15, b[10], 20)

	chk.Scalar(tst, "group below range", 0, float64(g.Group(-1)), 0)
	chk.Scalar(tst, "group above range", 0, float64(g.Group(1e6)), float64(g.N()-1))
}

func Test_energy02(tst *testing.T) {

	chk.PrintTitle("Test energy02: Group maps each group's midpoint back to that group")

	g := NewEnergyGroups(4, 1, 16, false)
	b := g.Boundaries()
	for i := 0; i < g.N(); i++ {
		mid := g.Mid(i)
		if mid <= b[i] || mid >= b[i+1] {
			tst.Errorf("group %d midpoint %g not strictly inside (%g,%g)", i, mid, b[i], b[i+1])
		}
		got := g.Group(mid)
		if got != i {
			tst.Errorf("Group(mid(%d))=%d, want %d", i, got, i)
		}
	}
}

func Test_energy03(tst *testing.T) {

	chk.PrintTitle("Test energy03: FirstGroupAbove1MeV panics when the range never reaches 1 MeV")

	defer func() {
		if err := recover(); err == nil {
			tst.Error("expected FirstGroupAbove1MeV to panic for a range that never reaches 1 MeV")
		}
	}()
	g := NewEnergyGroups(4, 1e-3, 1e-2, false)
	g.FirstGroupAbove1MeV()
}
