// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exchange implements the particle exchanger boundary named in §6:
// the driver stages outbound particles during a sub-iteration and, once the
// parallel phase quiesces, hands them to an Exchanger to cross subdomain
// (rank) boundaries. A NullExchanger serves single-rank runs; MPIExchanger
// is the real SPMD implementation, grounded on the one gosl/mpi primitive
// the teacher actually exercises: `mpi.AllReduceSum` (fem/s_implicit.go,
// fem/s_linimp.go use it to combine per-rank boundary contributions into a
// shared global vector). The pack never shows gosl/mpi point-to-point
// send/recv calls, so rather than guess at an unconfirmed API this
// exchanger reuses the one confirmed collective: every rank writes its
// outgoing particles into the slot of a dense, all-zero-elsewhere buffer
// sized (ranks x ranks x capacity x width) and AllReduceSum merges every
// rank's buffer elementwise, the same "sum-of-mostly-zeros" trick the
// teacher uses to combine sparse nodal contributions.
package exchange

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/quicksilver/internal/particle"
	"github.com/cpmech/quicksilver/internal/vector"
)

// Exchanger moves particles that crossed into another rank's subdomain
// (subDChange, §4.1) across the network and returns whatever particles
// arrived from neighbors this sub-iteration.
type Exchanger interface {
	// BeginExchange posts the outgoing particles, keyed by destination rank.
	BeginExchange(outgoing map[int][]*particle.Particle)
	// Exchange blocks until the post completes and returns incoming particles.
	Exchange() []*particle.Particle
}

// NullExchanger is the single-rank exchanger: it panics if anything is ever
// staged for another rank, since a one-rank run can have no subDChange.
type NullExchanger struct{}

func (NullExchanger) BeginExchange(outgoing map[int][]*particle.Particle) {
	if len(outgoing) > 0 {
		chk.Panic("exchange: NullExchanger received outbound particles on a single-rank run")
	}
}

func (NullExchanger) Exchange() []*particle.Particle { return nil }

// wireWidth is the flat float64 payload width one particle marshals to.
const wireWidth = 25

func encode(p *particle.Particle) [wireWidth]float64 {
	return [wireWidth]float64{
		float64(p.ID), float64(p.CellID),
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Velocity.X, p.Velocity.Y, p.Velocity.Z,
		p.Direction.X, p.Direction.Y, p.Direction.Z,
		p.Energy, p.TimeToCensus, p.Age, p.Weight,
		float64(p.NumSegments), float64(p.NumCollision),
		p.SigmaTotal, p.MeanFreePath, p.NumMeanFreePath,
		float64(p.EnergyGroup), float64(p.LastEvent),
		float64(p.LastFace), float64(p.LastFacet),
		float64(p.Seed),
	}
}

func decode(w []float64) *particle.Particle {
	return &particle.Particle{
		ID: uint64(w[0]), CellID: int(w[1]),
		Position:  vector.Vec3{X: w[2], Y: w[3], Z: w[4]},
		Velocity:  vector.Vec3{X: w[5], Y: w[6], Z: w[7]},
		Direction: vector.Vec3{X: w[8], Y: w[9], Z: w[10]},
		Energy:    w[11], TimeToCensus: w[12], Age: w[13], Weight: w[14],
		NumSegments: int64(w[15]), NumCollision: int64(w[16]),
		SigmaTotal: w[17], MeanFreePath: w[18], NumMeanFreePath: w[19],
		EnergyGroup: int(w[20]), LastEvent: particle.Event(w[21]),
		LastFace: int(w[22]), LastFacet: int(w[23]),
		Seed:   uint64(w[24]),
		Status: particle.Alive,
	}
}

// MPIExchanger is the multi-rank exchanger described above.
type MPIExchanger struct {
	// Capacity bounds how many particles one rank may send to another
	// rank in a single sub-iteration; exceeding it is a configuration
	// error (raise it rather than silently drop particles).
	Capacity int

	pending map[int][]*particle.Particle
}

// NewMPIExchanger returns an Exchanger backed by gosl/mpi's AllReduceSum,
// bounding any single rank-pair transfer to capacity particles per round.
func NewMPIExchanger(capacity int) *MPIExchanger {
	return &MPIExchanger{Capacity: capacity}
}

func (o *MPIExchanger) BeginExchange(outgoing map[int][]*particle.Particle) {
	o.pending = outgoing
}

// Exchange implements the dense AllReduceSum all-to-all described on the
// package doc. Buffer layout: buf[(src*size+dst)*capacity*wireWidth + slot*wireWidth + field].
func (o *MPIExchanger) Exchange() []*particle.Particle {
	if !mpi.IsOn() {
		var all []*particle.Particle
		for _, ps := range o.pending {
			all = append(all, ps...)
		}
		return all
	}

	rank := mpi.Rank()
	size := mpi.Size()
	slotWidth := o.Capacity * wireWidth
	local := make([]float64, size*size*slotWidth)

	for dst, ps := range o.pending {
		if dst == rank {
			chk.Panic("exchange: particle staged for its own rank %d", rank)
		}
		if len(ps) > o.Capacity {
			chk.Panic("exchange: rank %d -> %d has %d particles, exceeds capacity %d", rank, dst, len(ps), o.Capacity)
		}
		base := (rank*size + dst) * slotWidth
		for i, p := range ps {
			w := encode(p)
			copy(local[base+i*wireWidth:], w[:])
		}
	}

	global := make([]float64, len(local))
	mpi.AllReduceSum(local, global)

	var incoming []*particle.Particle
	for src := 0; src < size; src++ {
		if src == rank {
			continue
		}
		base := (src*size + rank) * slotWidth
		for slot := 0; slot < o.Capacity; slot++ {
			row := global[base+slot*wireWidth : base+(slot+1)*wireWidth]
			allZero := true
			for _, v := range row {
				if v != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				continue
			}
			incoming = append(incoming, decode(row))
		}
	}
	return incoming
}
