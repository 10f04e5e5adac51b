// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tracker

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/nucdata"
	"github.com/cpmech/quicksilver/internal/particle"
	"github.com/cpmech/quicksilver/internal/rng"
)

// CollisionResult reports what a collision produced, for the driver's
// fan-out staging (§4.8).
type CollisionResult struct {
	NOut             int
	SourceEnergyOut  float64
	SourceAngleOut   float64
	ChildEnergyOut   []float64 // len == NOut-1, children 1..NOut-1
	ChildAngleOut    []float64
	ChildSeeds       []uint64
	ChildGlobalIDs   []uint64
}

// CollisionEvent implements §4.4 "reaction selection" + "collision
// sampling" for the particle currently undergoing a collision (§4.1
// "collision" row). It mutates p.NumCollision and returns the sampled
// outcome; the caller (tracking loop) decides the resulting status from
// NOut per §4.1's dispatch table.
func CollisionEvent(p *particle.Particle, cell *mesh.Cell, mat *mesh.Material, nd *nucdata.NuclearData, maxProductionSize int) CollisionResult {
	seedState := rng.State{Seed: p.Seed}
	sel := nucdata.SelectReaction(nd, mat, p.EnergyGroup, p.SigmaTotal, &seedState)
	p.Seed = seedState.Seed

	reaction := &nd.Isotopes[sel.IsotopeIdx].Species.Reactions[sel.ReactIdx]
	outcome := reaction.SampleCollision(p.Energy, mat.Mass, &seedState, maxProductionSize)
	p.Seed = seedState.Seed

	p.NumCollision++

	result := CollisionResult{NOut: outcome.NOut}
	if outcome.NOut == 0 {
		return result
	}

	result.SourceEnergyOut = outcome.EnergyOut[0]
	result.SourceAngleOut = outcome.AngleOut[0]

	// chain the spawns so every descendant gets its own seed (and so its own
	// global id) without consuming p's stream
	seed := p.Seed
	for i := 1; i < outcome.NOut; i++ {
		seed = rng.Spawn(seed)
		result.ChildSeeds = append(result.ChildSeeds, seed)
		result.ChildGlobalIDs = append(result.ChildGlobalIDs, rng.GlobalID(seed))
		result.ChildEnergyOut = append(result.ChildEnergyOut, outcome.EnergyOut[i])
		result.ChildAngleOut = append(result.ChildAngleOut, outcome.AngleOut[i])
	}
	return result
}

// FacetCrossingEvent resolves the faceEventUndefined outcome into one of
// {cellChange, reflection, escape, subDChange} per the face's boundary
// condition (§4.1, §6 "boundary condition provider"), mutating p.CellID
// when the particle moves into a neighbor.
func FacetCrossingEvent(p *particle.Particle, cell *mesh.Cell) particle.Event {
	face := cell.Faces[p.LastFace]

	switch face.Boundary {
	case mesh.BoundaryReflect:
		return particle.EventReflection
	case mesh.BoundaryEscape:
		return particle.EventEscape
	case mesh.BoundaryCellChange:
		dst := face.FrontCell
		if dst == cell.ID {
			dst = face.BackCell
		}
		p.CellID = dst
		if face.OwnerRank >= 0 {
			return particle.EventSubDChange
		}
		return particle.EventCellChange
	default:
		chk.Panic("tracker: unknown boundary kind %v on cell %d face %d", face.Boundary, cell.ID, p.LastFace)
		return particle.EventNone
	}
}

// ReflectParticle implements §4.1 "reflection": mirrors the direction
// cosine about the facet normal (an involution when dot>0, §8 property 4)
// and recomputes the velocity from the unchanged speed.
func ReflectParticle(p *particle.Particle, cell *mesh.Cell) {
	normal := cell.Faces[p.LastFace].Normal
	dot := 2.0 * p.Direction.Dot(normal)
	if dot > 0 {
		p.Direction = p.Direction.Sub(normal.Scale(dot))
	}
	speed := p.Velocity.Length()
	p.Velocity = p.Direction.Scale(speed)
}
