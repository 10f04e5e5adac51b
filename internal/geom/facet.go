// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the facet plane coefficients and the
// ray-triangular-facet distance search (§4.3). Each of a cell's 6
// quadrilateral faces is split into 4 triangular sub-facets anchored at the
// face center, for 24 sub-facets per cell, matching MC_Facet_Geometry.hh and
// TrackingMCModule::getNearestFacet in the reference implementation.
package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/vector"
)

// Huge and Small are the sentinels used throughout the segment solver:
// Huge marks "no intersection" / "infinitely far", Small is the forced-
// collision sentinel for NumMeanFreePath (§4.2 step 1, §9 open question).
const (
	Huge  = 1.0e80
	Small = 1.0e-80
	Tiny  = 1.0e-13
)

// Plane holds the normalized coefficients of Ax+By+Cz+D=0 for one face.
type Plane struct {
	A, B, C, D float64
}

// PlaneFrom derives the outward plane equation of a face from its normal and
// center, matching MC_General_Plane's normalization (A²+B²+C²=1).
func PlaneFrom(normal, center vector.Vec3) Plane {
	mag := normal.Length()
	if mag == 0 {
		return Plane{A: 1, B: 0, C: 0, D: 0}
	}
	inv := 1.0 / mag
	a, b, c := normal.X*inv, normal.Y*inv, normal.Z*inv
	d := -(a*center.X + b*center.Y + c*center.Z)
	return Plane{A: a, B: b, C: c, D: d}
}

// boundingBoxTolerance and the 1e-9 relative factor of crossTol in
// distanceToTriangle mirror the literal constants in
// TrackingMCModule::distanceToSegmentFacet.
const boundingBoxTolerance = 1e-9

// distanceToTriangle computes the signed distance along (pos, dir) to the
// triangle (p0,p1,p2) lying in the plane pl, or Huge if the ray misses the
// triangle or the facet plane is entered from behind (§4.3).
func distanceToTriangle(pl Plane, dotN float64, planeTolerance float64, pos, dir vector.Vec3, p0, p1, p2 vector.Vec3) float64 {
	numerator := -(pl.A*pos.X + pl.B*pos.Y + pl.C*pos.Z + pl.D)

	if numerator < 0.0 && numerator*numerator > planeTolerance {
		return Huge
	}

	distance := numerator / dotN
	ip := pos.Add(dir.Scale(distance))

	// pick the 2-D projection plane orthogonal to the dominant normal axis
	var u0, v0, u1, v1, u2, v2, iu, iv float64
	switch {
	case pl.C < -0.5 || pl.C > 0.5:
		u0, v0 = p0.X, p0.Y
		u1, v1 = p1.X, p1.Y
		u2, v2 = p2.X, p2.Y
		iu, iv = ip.X, ip.Y
	case pl.B < -0.5 || pl.B > 0.5:
		u0, v0 = p0.Z, p0.X
		u1, v1 = p1.Z, p1.X
		u2, v2 = p2.Z, p2.X
		iu, iv = ip.Z, ip.X
	default:
		u0, v0 = p0.Y, p0.Z
		u1, v1 = p1.Y, p1.Z
		u2, v2 = p2.Y, p2.Z
		iu, iv = ip.Y, ip.Z
	}

	if belowOrAbove(u0, u1, u2, iu) || belowOrAbove(v0, v1, v2, iv) {
		return Huge
	}

	cross := func(ax, ay, bx, by, cx, cy float64) float64 {
		return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
	}
	cross1 := cross(u0, v0, u1, v1, iu, iv)
	cross2 := cross(u1, v1, u2, v2, iu, iv)
	cross0 := cross(u2, v2, u0, v0, iu, iv)

	crossTol := 1e-9 * math.Abs(cross0+cross1+cross2)
	if (cross0 > -crossTol && cross1 > -crossTol && cross2 > -crossTol) ||
		(cross0 < crossTol && cross1 < crossTol && cross2 < crossTol) {
		return distance
	}
	return Huge
}

func belowOrAbove(a0, a1, a2, pv float64) bool {
	below := a0 > pv+boundingBoxTolerance && a1 > pv+boundingBoxTolerance && a2 > pv+boundingBoxTolerance
	above := a0 < pv-boundingBoxTolerance && a1 < pv-boundingBoxTolerance && a2 < pv-boundingBoxTolerance
	return below || above
}

// Nearest describes the nearest exiting facet found by NearestFacet.
type Nearest struct {
	Distance float64
	Facet    int // 0..23, face = Facet/4, subfacet = Facet%4
}

// NearestFacet scans all 24 sub-facets of cell and returns the nearest
// exiting one along (pos,dir), retrying with the move-factor nudge recovery
// described in §4.3 when the search comes up empty, and failing hard via
// chk.Panic when retries are exhausted.
func NearestFacet(cell *mesh.Cell, pos, dir vector.Vec3, numSegments int64) (result Nearest, nudgedPos vector.Vec3) {
	nudgedPos = pos
	moveFactor := 0.5 * Small
	const maxIterations = 10
	const maxAllowedSegments = 10_000_000

	for iter := 0; ; iter++ {
		planeTolerance := 1e-16 * (nudgedPos.X*nudgedPos.X + nudgedPos.Y*nudgedPos.Y + nudgedPos.Z*nudgedPos.Z)

		var distances [24]float64
		for fid := 0; fid < 6; fid++ {
			face := cell.Faces[fid]
			dotN := face.Normal.Dot(dir)
			base := fid * 4
			if dotN <= 0.0 {
				for i := 0; i < 4; i++ {
					distances[base+i] = Huge
				}
				continue
			}
			pl := PlaneFrom(face.Normal, face.Center)
			nodes := cell.FaceNodes(fid)
			for i := 0; i < 4; i++ {
				p0 := face.Center
				p1 := nodes[i]
				p2 := nodes[(i+1)%4]
				distances[base+i] = distanceToTriangle(pl, dotN, planeTolerance, nudgedPos, dir, p0, p1, p2)
			}
		}

		nearest := nearestOf(distances)

		tooManySegments := numSegments > maxAllowedSegments && nearest.Distance <= 0.0
		if (nearest.Distance == Huge && moveFactor > 0) || tooManySegments {
			if iter == maxIterations {
				chk.Panic("geom: facet search exhausted %d retries for cell %d", maxIterations, cell.ID)
			}
			nudgedPos = nudgedPos.Add(cell.Center.Sub(nudgedPos).Scale(moveFactor))
			moveFactor *= 2.0
			if moveFactor > 1.0e-2 {
				moveFactor = 1.0e-2
			}
			continue
		}

		if nearest.Distance < 0 {
			nearest.Distance = 0
		}
		if nearest.Distance >= Huge {
			chk.Panic("geom: nearest facet distance is not finite for cell %d", cell.ID)
		}
		return nearest, nudgedPos
	}
}

// nearestOf picks the smallest strictly-positive distance; if none exists it
// falls back to the least-negative (closest to zero) distance, the
// near-boundary rescue described in §4.3.
func nearestOf(distances [24]float64) Nearest {
	best := Nearest{Distance: Huge, Facet: -1}
	bestNeg := Nearest{Distance: -Huge, Facet: -1}
	for i, d := range distances {
		if d > 0.0 {
			if d <= best.Distance {
				best.Distance = d
				best.Facet = i
			}
		} else {
			if d > bestNeg.Distance {
				bestNeg.Distance = d
				bestNeg.Facet = i
			}
		}
	}
	if best.Distance == Huge && bestNeg.Distance != -Huge {
		best.Distance = bestNeg.Distance
		best.Facet = bestNeg.Facet
	}
	return best
}
