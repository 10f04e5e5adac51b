// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package particle defines the central per-particle state (§3, §4.1, C5):
// attributes, lifecycle status, and the in-memory store particles reside in
// while owned by a subdomain.
package particle

import (
	"github.com/cpmech/quicksilver/internal/rng"
	"github.com/cpmech/quicksilver/internal/vector"
)

// Status is the particle lifecycle state (§3, §4.1).
type Status int

const (
	Alive Status = iota
	Cloned
	Exited
	Census
)

// Event tags the outcome that ended a particle's last segment (§3, §4.1).
type Event int

const (
	EventNone Event = iota
	EventCollision
	EventFaceUndefined
	EventCensus
	EventCellChange
	EventEscape
	EventReflection
	EventSubDChange
)

// Particle is the central tracked entity (§3).
type Particle struct {
	// identity
	ID     uint64
	CellID int

	// kinematics
	Position  vector.Vec3
	Velocity  vector.Vec3
	Direction vector.Vec3 // unit direction cosines (α,β,γ)
	Energy    float64     // kinetic energy (MeV)

	// bookkeeping
	TimeToCensus float64 // seconds remaining in cycle
	Age          float64
	Weight       float64
	NumSegments  int64
	NumCollision int64

	// transport
	SigmaTotal      float64 // cached total macroscopic cross section
	MeanFreePath    float64
	NumMeanFreePath float64
	EnergyGroup     int

	// event bookkeeping
	LastEvent Event
	LastFace  int // 0..5
	LastFacet int // 0..3, subfacet within LastFace

	// rng
	Seed uint64

	Status Status
}

// Speed returns the magnitude of the velocity vector.
func (o *Particle) Speed() float64 {
	return o.Velocity.Length()
}

// IsAlive reports whether the particle is still being tracked.
func (o *Particle) IsAlive() bool {
	return o.Status == Alive
}

// Sample draws one uniform (0,1) value from the particle's own RNG stream,
// persisting the advanced seed back onto the particle.
func (o *Particle) Sample() float64 {
	s := rng.State{Seed: o.Seed}
	v := s.Sample()
	o.Seed = s.Seed
	return v
}

// SpawnChildSeed deterministically derives a child seed from the
// particle's current seed without consuming its own stream (§4.6, §4.8).
func (o *Particle) SpawnChildSeed() uint64 {
	return rng.Spawn(o.Seed)
}
