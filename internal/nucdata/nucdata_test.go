// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nucdata

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/rng"
)

func flatPoly(a float64) Polynomial {
	// constant polynomial p(lgE)=a, so buildReaction's 10^p(.) pre-scale
	// sampling is the same value at every group, making the post-
	// renormalization cross section exactly reactionCrossSection everywhere.
	return Polynomial{A: a}
}

func Test_nucdata01(tst *testing.T) {

	chk.PrintTitle("Test nucdata01: AddIsotope splits reactions cyclically and renormalizes to total")

	groups := NewEnergyGroups(3, 1e-2, 10, false)
	nd := NewNuclearData(groups)

	idx := nd.AddIsotope(6, IsotopePoly{
		Scatter: flatPoly(0), Fission: flatPoly(0), Absorption: flatPoly(0),
		NuBar: 2.5, TotalCrossSection: 3.0,
		FissionWeight: 1.0, ScatterWeight: 1.0, AbsorptionWeight: 1.0,
	})
	if idx != 0 {
		tst.Errorf("first isotope must have index 0, got %d", idx)
	}
	if nd.NumReactions(0) != 6 {
		tst.Errorf("expected 6 reactions, got %d", nd.NumReactions(0))
	}

	// 6 reactions, evenly divisible by 3: 2 scatter, 2 fission, 2 absorption,
	// each weighted equally, so macroscopic total == TotalCrossSection at
	// atomFraction=1, density=1 (up to the 1e-20 floor's absence here).
	total := nd.MacroscopicCrossSection(-1, 0, 1, 1.0, 1.0)
	chk.Scalar(tst, "total cross section at group 1", 1e-9, total, 3.0)
}

func Test_nucdata02(tst *testing.T) {

	chk.PrintTitle("Test nucdata02: macroscopic cross section floors at 1e-20 for zero density")

	groups := NewEnergyGroups(2, 1e-2, 10, false)
	nd := NewNuclearData(groups)
	nd.AddIsotope(3, IsotopePoly{
		Scatter: flatPoly(0), Fission: flatPoly(0), Absorption: flatPoly(0),
		NuBar: 2.5, TotalCrossSection: 1.0,
		FissionWeight: 1.0, ScatterWeight: 1.0, AbsorptionWeight: 1.0,
	})
	chk.Scalar(tst, "zero atom fraction", 1e-25, nd.MacroscopicCrossSection(-1, 0, 0, 0.0, 1.0), 1e-20)
	chk.Scalar(tst, "zero density", 1e-25, nd.MacroscopicCrossSection(-1, 0, 0, 1.0, 0.0), 1e-20)
}

func Test_nucdata03(tst *testing.T) {

	chk.PrintTitle("Test nucdata03: absorption always yields nOut=0")

	r := Reaction{Kind: Absorption}
	s := rng.NewState(7)
	out := r.SampleCollision(1.0, 1.0, &s, 4)
	if out.NOut != 0 {
		tst.Errorf("absorption must produce nOut=0, got %d", out.NOut)
	}
}

func Test_nucdata04(tst *testing.T) {

	chk.PrintTitle("Test nucdata04: scatter always yields exactly one descendant")

	r := Reaction{Kind: Scatter}
	s := rng.NewState(7)
	out := r.SampleCollision(2.0, 12.0, &s, 4)
	if out.NOut != 1 {
		tst.Errorf("scatter must produce nOut=1, got %d", out.NOut)
	}
	if len(out.EnergyOut) != 1 || len(out.AngleOut) != 1 {
		tst.Errorf("scatter outcome arrays must have length 1")
	}
	if out.AngleOut[0] < -1 || out.AngleOut[0] > 1 {
		tst.Errorf("scatter angle cosine out of [-1,1]: %g", out.AngleOut[0])
	}
}

func Test_nucdata05(tst *testing.T) {

	chk.PrintTitle("Test nucdata05: fission panics when sampled multiplicity exceeds max_production_size")

	defer func() {
		if err := recover(); err == nil {
			tst.Error("expected fission overflow to panic")
		}
	}()
	r := Reaction{Kind: Fission, NuBar: 10.0}
	s := rng.NewState(1)
	r.SampleCollision(1.0, 1.0, &s, 2)
}

func Test_nucdata06(tst *testing.T) {

	chk.PrintTitle("Test nucdata06: SelectReaction walks isotopes/reactions and subtracts cross sections")

	groups := NewEnergyGroups(1, 1e-2, 10, false)
	nd := NewNuclearData(groups)
	nd.AddIsotope(3, IsotopePoly{
		Scatter: flatPoly(0), Fission: flatPoly(0), Absorption: flatPoly(0),
		NuBar: 2.5, TotalCrossSection: 1.0,
		FissionWeight: 1.0, ScatterWeight: 1.0, AbsorptionWeight: 1.0,
	})
	sigmaTotal := nd.MacroscopicCrossSection(-1, 0, 0, 1.0, 1.0)

	mat := &mesh.Material{NumberDensity: 1.0, IsotopeGIDs: []int{0}, AtomFraction: []float64{1.0}}
	s := rng.NewState(55)
	sel := SelectReaction(nd, mat, 0, sigmaTotal, &s)
	if sel.IsotopeIdx != 0 {
		tst.Errorf("expected isotope 0, got %d", sel.IsotopeIdx)
	}
	if sel.ReactIdx < 0 || sel.ReactIdx >= nd.NumReactions(0) {
		tst.Errorf("reaction index %d out of range", sel.ReactIdx)
	}
}
