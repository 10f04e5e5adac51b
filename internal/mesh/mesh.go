// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh defines the read-only mesh, material and boundary-condition
// views the transport core consumes from its external mesh provider (§6).
// Mirrors the shape of inp.Mesh/inp.Cell/inp.FaceCond from gofem, trimmed to
// the hexahedral-cell, quadrilateral-face geometry this core requires.
package mesh

import "github.com/cpmech/quicksilver/internal/vector"

// BoundaryKind enumerates what happens to a particle that reaches a face
// with no cell on the other side in this subdomain.
type BoundaryKind int

const (
	BoundaryReflect BoundaryKind = iota
	BoundaryEscape
	BoundaryCellChange // cellChange if neighbor is local, subDChange if on another rank
)

// Face is one of the 6 quadrilateral faces of a Cell.
type Face struct {
	Normal       vector.Vec3 // outward unit normal
	Center       vector.Vec3 // face center
	FrontCell    int         // id of the cell this face belongs to (the -normal side)
	BackCell     int         // id of the neighbor cell across the face (the +normal side), -1 if none
	OwnerRank    int         // rank owning the neighbor across this face, -1 if local
	Boundary     BoundaryKind
	IsDomainEdge bool // true when this face has no neighbor cell at all
}

// Cell is one hexahedral mesh cell: 6 faces, 8 nodes.
type Cell struct {
	ID         int
	MaterialID int
	Center     vector.Vec3
	Faces      [6]Face
	Nodes      [8]vector.Vec3 // node coordinates, ordered per face below
}

// faceNodeOrder lists, for each of the 6 faces, the 4 node indices (into
// Cell.Nodes) that wind the quadrilateral face, matching the node ordering
// convention gofem's shp package uses for "hex8" cells.
var faceNodeOrder = [6][4]int{
	{0, 1, 2, 3}, // face 0: -z
	{4, 5, 6, 7}, // face 1: +z
	{0, 1, 5, 4}, // face 2: -y
	{1, 2, 6, 5}, // face 3: +x
	{2, 3, 7, 6}, // face 4: +y
	{3, 0, 4, 7}, // face 5: -x
}

// FaceNodes returns the 4 node coordinates bounding face index fid (0..5),
// wound face_center, node_i, node_{i+1 mod 4} ready for facet triangulation.
func (o *Cell) FaceNodes(fid int) [4]vector.Vec3 {
	var pts [4]vector.Vec3
	for i, vidx := range faceNodeOrder[fid] {
		pts[i] = o.Nodes[vidx]
	}
	return pts
}

// Material binds a cell's material data (§6 "Material binding").
type Material struct {
	NumberDensity float64
	Mass          float64
	SourceRate    float64
	IsotopeGIDs   []int
	AtomFraction  []float64
}

// Provider is the read-only mesh the tracker/driver consult. It is supplied
// by the external mesh/material assignment layer (out of core scope).
type Provider interface {
	Cell(id int) *Cell
	Material(cellID int) *Material
	NumOwnedCells() int
	OwnedCellIDs() []int
}
