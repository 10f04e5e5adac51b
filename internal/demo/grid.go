// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo builds a minimal in-memory mesh.Provider: a single-rank
// Cartesian grid of unit cubes, one material per cell, vacuum (escape) at
// the domain boundary and cellChange internally. Mesh construction and
// material-to-cell assignment are named out of core scope (§1 Non-goals);
// this exists only to give the CLI entry point and the test suite
// something concrete to run the tracker/driver against, the same role
// gofem's `examples/` .msh fixtures play for its own solver tests.
package demo

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/vector"
)

// Grid is a NxNxN Cartesian mesh.Provider with unit-cube cells.
type Grid struct {
	n        int
	cells    map[int]*mesh.Cell
	material *mesh.Material
	bins     gm.Bins // cell-center spatial index, for CellAt
}

func idx(n, i, j, k int) int { return (i*n+j)*n + k }

// NewGrid builds an n x n x n grid of unit cubes sharing one material.
func NewGrid(n int, mat *mesh.Material) *Grid {
	g := &Grid{n: n, cells: make(map[int]*mesh.Cell, n*n*n), material: mat}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				g.cells[idx(n, i, j, k)] = g.buildCell(i, j, k)
			}
		}
	}
	g.buildBins()
	return g
}

// buildBins indexes every cell center into a gm.Bins lookup structure, the
// same spatial-bucketing the teacher uses for its node/integration-point
// search (out/out.go's NodBins/IpsBins). CellAt uses it to resolve a raw
// position back to an owning cell id without a linear scan.
func (g *Grid) buildBins() {
	n := float64(g.n)
	err := g.bins.Init([]float64{0, 0, 0}, []float64{n, n, n}, []int{g.n, g.n, g.n})
	if err != nil {
		chk.Panic("demo: cannot initialise cell-center bins: %v", err)
	}
	for id, c := range g.cells {
		err := g.bins.Append([]float64{c.Center.X, c.Center.Y, c.Center.Z}, id)
		if err != nil {
			chk.Panic("demo: cannot append cell %d to bins: %v", id, err)
		}
	}
}

// CellAt returns the id of the cell whose bin contains pos, or -1 if pos
// falls outside every indexed bin (e.g. outside the domain).
func (g *Grid) CellAt(pos vector.Vec3) int {
	return g.bins.Find([]float64{pos.X, pos.Y, pos.Z})
}

func (g *Grid) buildCell(i, j, k int) *mesh.Cell {
	n := g.n
	x0, y0, z0 := float64(i), float64(j), float64(k)
	c := &mesh.Cell{
		ID:         idx(n, i, j, k),
		MaterialID: 0,
		Center:     vector.Vec3{X: x0 + 0.5, Y: y0 + 0.5, Z: z0 + 0.5},
		Nodes: [8]vector.Vec3{
			{X: x0, Y: y0, Z: z0}, {X: x0 + 1, Y: y0, Z: z0},
			{X: x0 + 1, Y: y0 + 1, Z: z0}, {X: x0, Y: y0 + 1, Z: z0},
			{X: x0, Y: y0, Z: z0 + 1}, {X: x0 + 1, Y: y0, Z: z0 + 1},
			{X: x0 + 1, Y: y0 + 1, Z: z0 + 1}, {X: x0, Y: y0 + 1, Z: z0 + 1},
		},
	}

	c.Faces[0] = g.face(i, j, k, vector.Vec3{X: 0, Y: 0, Z: -1}, i, j, k-1)
	c.Faces[1] = g.face(i, j, k, vector.Vec3{X: 0, Y: 0, Z: 1}, i, j, k+1)
	c.Faces[2] = g.face(i, j, k, vector.Vec3{X: 0, Y: -1, Z: 0}, i, j-1, k)
	c.Faces[3] = g.face(i, j, k, vector.Vec3{X: 1, Y: 0, Z: 0}, i+1, j, k)
	c.Faces[4] = g.face(i, j, k, vector.Vec3{X: 0, Y: 1, Z: 0}, i, j+1, k)
	c.Faces[5] = g.face(i, j, k, vector.Vec3{X: -1, Y: 0, Z: 0}, i-1, j, k)
	return c
}

func (g *Grid) face(i, j, k int, normal vector.Vec3, ni, nj, nk int) mesh.Face {
	n := g.n
	center := vector.Vec3{X: float64(i) + 0.5 + 0.5*normal.X, Y: float64(j) + 0.5 + 0.5*normal.Y, Z: float64(k) + 0.5 + 0.5*normal.Z}
	if ni < 0 || nj < 0 || nk < 0 || ni >= n || nj >= n || nk >= n {
		return mesh.Face{Normal: normal, Center: center, FrontCell: idx(n, i, j, k), BackCell: -1, OwnerRank: -1, Boundary: mesh.BoundaryEscape, IsDomainEdge: true}
	}
	return mesh.Face{Normal: normal, Center: center, FrontCell: idx(n, i, j, k), BackCell: idx(n, ni, nj, nk), OwnerRank: -1, Boundary: mesh.BoundaryCellChange}
}

func (g *Grid) Cell(id int) *mesh.Cell           { return g.cells[id] }
func (g *Grid) Material(cellID int) *mesh.Material { return g.material }
func (g *Grid) NumOwnedCells() int                { return len(g.cells) }

func (g *Grid) OwnedCellIDs() []int {
	ids := make([]int, 0, len(g.cells))
	for id := range g.cells {
		ids = append(ids, id)
	}
	return ids
}
