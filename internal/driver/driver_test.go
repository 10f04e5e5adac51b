// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/quicksilver/internal/demo"
	"github.com/cpmech/quicksilver/internal/exchange"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/nucdata"
)

func Test_driver01(tst *testing.T) {

	chk.PrintTitle("Test driver01: a pure-absorber grid drains every sourced particle to absorb+escape by cycle end")

	groups := nucdata.NewEnergyGroups(4, 1e-2, 14, false)
	nd := nucdata.NewNuclearData(groups)
	nd.AddIsotope(3, nucdata.IsotopePoly{
		NuBar: 2.5, TotalCrossSection: 5.0,
		FissionWeight: 0, ScatterWeight: 0, AbsorptionWeight: 1.0,
	})

	mat := &mesh.Material{NumberDensity: 1.0, Mass: 12.0, IsotopeGIDs: []int{0}, AtomFraction: []float64{1.0}}
	grid := demo.NewGrid(2, mat)

	src := demo.NewUniformSource(1, 1.0, 123)
	dr := New(grid, nd, 4, 2, 1.0e6, exchange.NullExchanger{}, src)

	snap := dr.RunCycle(0)

	if snap.Source != int64(grid.NumOwnedCells()) {
		tst.Errorf("expected %d sourced particles, got %d", grid.NumOwnedCells(), snap.Source)
	}
	if snap.Start != snap.Source {
		tst.Errorf("start count should equal sourced count on an empty initial store")
	}
	if dr.Store.Len() != 0 {
		tst.Errorf("a pure absorber with huge dt should leave no particle alive at cycle end, got %d remaining", dr.Store.Len())
	}
	if snap.Absorb+snap.Escape == 0 {
		tst.Errorf("expected some combination of absorptions/escapes to account for every sourced particle")
	}
}

func Test_driver02(tst *testing.T) {

	chk.PrintTitle("Test driver02: a vacuum grid (zero cross section) escapes every sourced particle")

	groups := nucdata.NewEnergyGroups(2, 1e-2, 14, false)
	nd := nucdata.NewNuclearData(groups)
	nd.AddIsotope(3, nucdata.IsotopePoly{
		NuBar: 2.5, TotalCrossSection: 0.0,
		FissionWeight: 1.0, ScatterWeight: 1.0, AbsorptionWeight: 1.0,
	})

	mat := &mesh.Material{NumberDensity: 1.0, Mass: 1.0, IsotopeGIDs: []int{0}, AtomFraction: []float64{1.0}}
	grid := demo.NewGrid(1, mat)

	src := demo.NewUniformSource(3, 1.0, 7)
	dr := New(grid, nd, 4, 1, 1e6, exchange.NullExchanger{}, src)

	snap := dr.RunCycle(0)

	if snap.Escape != snap.Source {
		tst.Errorf("a vacuum material should escape every sourced particle: source=%d escape=%d", snap.Source, snap.Escape)
	}
	if snap.Absorb != 0 || snap.Collision != 0 {
		tst.Errorf("a vacuum material should never collide: collision=%d absorb=%d", snap.Collision, snap.Absorb)
	}
}
