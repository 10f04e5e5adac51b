// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracker

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/nucdata"
	"github.com/cpmech/quicksilver/internal/particle"
	"github.com/cpmech/quicksilver/internal/tally"
	"github.com/cpmech/quicksilver/internal/vector"
	"github.com/cpmech/quicksilver/internal/xscache"
)

// unitCube mirrors internal/geom's test fixture: a [0,1]^3 cell, escape on
// every face, no neighbors.
func unitCube() *mesh.Cell {
	c := &mesh.Cell{
		ID: 0,
		Nodes: [8]vector.Vec3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1},
			{X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
		},
		Center: vector.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
	}
	c.Faces[0] = mesh.Face{Normal: vector.Vec3{Z: -1}, Center: vector.Vec3{X: 0.5, Y: 0.5, Z: 0}, Boundary: mesh.BoundaryEscape}
	c.Faces[1] = mesh.Face{Normal: vector.Vec3{Z: 1}, Center: vector.Vec3{X: 0.5, Y: 0.5, Z: 1}, Boundary: mesh.BoundaryEscape}
	c.Faces[2] = mesh.Face{Normal: vector.Vec3{Y: -1}, Center: vector.Vec3{X: 0.5, Y: 0, Z: 0.5}, Boundary: mesh.BoundaryEscape}
	c.Faces[3] = mesh.Face{Normal: vector.Vec3{X: 1}, Center: vector.Vec3{X: 1, Y: 0.5, Z: 0.5}, Boundary: mesh.BoundaryEscape}
	c.Faces[4] = mesh.Face{Normal: vector.Vec3{Y: 1}, Center: vector.Vec3{X: 0.5, Y: 1, Z: 0.5}, Boundary: mesh.BoundaryEscape}
	c.Faces[5] = mesh.Face{Normal: vector.Vec3{X: -1}, Center: vector.Vec3{X: 0, Y: 0.5, Z: 0.5}, Boundary: mesh.BoundaryEscape}
	return c
}

type oneCellProvider struct {
	cell *mesh.Cell
	mat  *mesh.Material
}

func (o *oneCellProvider) Cell(id int) *mesh.Cell             { return o.cell }
func (o *oneCellProvider) Material(cellID int) *mesh.Material { return o.mat }
func (o *oneCellProvider) NumOwnedCells() int                 { return 1 }
func (o *oneCellProvider) OwnedCellIDs() []int                { return []int{0} }

func Test_tracker01(tst *testing.T) {

	chk.PrintTitle("Test tracker01: a particle with zero cross section and time_to_census==0 reaches census without moving")

	cell := unitCube()
	cache := xscache.NewCache([]int{0}, 1)

	p := &particle.Particle{
		ID: 1, CellID: 0,
		Position: vector.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, Direction: vector.Vec3{X: 1, Y: 0, Z: 0},
		Velocity: vector.Vec3{X: 1e9, Y: 0, Z: 0}, Energy: 1.0,
		TimeToCensus: 0, Weight: 1.0, Status: particle.Alive, Seed: 1,
	}

	seg := NextEvent(p, cell, cache, nil)
	if seg.Outcome != outcomeCensus {
		tst.Errorf("expected census outcome, got %v", seg.Outcome)
	}
	if p.TimeToCensus < 0 {
		tst.Errorf("time_to_census must be clamped to >=0 at census, got %g", p.TimeToCensus)
	}
}

func Test_tracker02(tst *testing.T) {

	chk.PrintTitle("Test tracker02: a particle aimed at an escape face crosses it and TrackOne reports escape")

	cell := unitCube()
	groups := nucdata.NewEnergyGroups(1, 1e-2, 10, false)
	nd := nucdata.NewNuclearData(groups)
	nd.AddIsotope(3, nucdata.IsotopePoly{
		NuBar: 2.5, TotalCrossSection: 0.0,
		FissionWeight: 1.0, ScatterWeight: 1.0, AbsorptionWeight: 1.0,
	})
	mat := &mesh.Material{NumberDensity: 1.0, IsotopeGIDs: []int{0}, AtomFraction: []float64{1.0}}
	mp := &oneCellProvider{cell: cell, mat: mat}

	cache := xscache.NewCache([]int{0}, 1)
	xscache.Refresh(cache, mp, nd)

	p := &particle.Particle{
		ID: 2, CellID: 0,
		Position: vector.Vec3{X: 0.9, Y: 0.5, Z: 0.5}, Direction: vector.Vec3{X: 1, Y: 0, Z: 0},
		Velocity: vector.Vec3{X: 1.0, Y: 0, Z: 0}, Energy: 1.0,
		TimeToCensus: 1000.0, Weight: 1.0, Status: particle.Alive, Seed: 1,
	}

	counters := &tally.Counters{}
	flux := tally.NewFlux([]int{0}, 1)
	outcome := TrackOne(p, mp, nd, cache, flux, counters, 4)

	if outcome.Status != particle.EventEscape {
		tst.Errorf("expected escape, got %v", outcome.Status)
	}
	if p.Status != particle.Exited {
		tst.Errorf("escaped particle must be marked Exited")
	}
	if counters.Escape != 1 {
		tst.Errorf("expected escape counter == 1, got %d", counters.Escape)
	}
}

func Test_tracker03(tst *testing.T) {

	chk.PrintTitle("Test tracker03: ReflectParticle mirrors the direction cosine about the facet normal")

	cell := unitCube()
	p := &particle.Particle{
		Direction: vector.Vec3{X: 1, Y: 0, Z: 0},
		Velocity:  vector.Vec3{X: 2, Y: 0, Z: 0},
		LastFace:  3, // +x face, normal (1,0,0)
	}
	ReflectParticle(p, cell)

	if p.Direction.X >= 0 {
		tst.Errorf("reflecting off the +x face should flip the x-component, got %g", p.Direction.X)
	}
	chk.Scalar(tst, "speed preserved", 1e-9, p.Velocity.Length(), 2.0)
}
