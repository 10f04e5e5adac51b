// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xscache

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/nucdata"
)

type fakeProvider struct {
	cells map[int]*mesh.Cell
	mats  map[int]*mesh.Material
}

func (f *fakeProvider) Cell(id int) *mesh.Cell           { return f.cells[id] }
func (f *fakeProvider) Material(cellID int) *mesh.Material { return f.mats[cellID] }
func (f *fakeProvider) NumOwnedCells() int                { return len(f.cells) }
func (f *fakeProvider) OwnedCellIDs() []int {
	ids := make([]int, 0, len(f.cells))
	for id := range f.cells {
		ids = append(ids, id)
	}
	return ids
}

func Test_xscache01(tst *testing.T) {

	chk.PrintTitle("Test xscache01: Refresh fills every owned cell/group with the isotope total")

	groups := nucdata.NewEnergyGroups(2, 1e-2, 10, false)
	nd := nucdata.NewNuclearData(groups)
	nd.AddIsotope(3, nucdata.IsotopePoly{
		NuBar: 2.5, TotalCrossSection: 2.0,
		FissionWeight: 1.0, ScatterWeight: 1.0, AbsorptionWeight: 1.0,
	})

	mp := &fakeProvider{
		cells: map[int]*mesh.Cell{0: {ID: 0}, 1: {ID: 1}},
		mats: map[int]*mesh.Material{
			0: {NumberDensity: 1.0, IsotopeGIDs: []int{0}, AtomFraction: []float64{1.0}},
			1: {NumberDensity: 1.0, IsotopeGIDs: []int{0}, AtomFraction: []float64{1.0}},
		},
	}

	cache := NewCache(mp.OwnedCellIDs(), groups.N())
	Refresh(cache, mp, nd)

	for _, cellID := range mp.OwnedCellIDs() {
		for g := 0; g < groups.N(); g++ {
			chk.Scalar(tst, "total", 1e-9, cache.Total(cellID, g), 2.0)
		}
	}
}
