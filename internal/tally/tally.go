// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tally implements the per-cycle atomic event counters and the
// per-cell, per-group scalar-flux accumulator (§4.7, C9). All increments
// happen from worker goroutines and must be atomic; the driver snapshots
// and zeroes them between cycles.
package tally

import (
	"sync/atomic"

	"github.com/cpmech/gosl/num"
)

// Counters holds the per-cycle atomic event counts named in §4.7.
type Counters struct {
	Start      int64
	Source     int64
	RouletteRR int64
	Split      int64
	Absorb     int64
	Census     int64
	Escape     int64
	Collision  int64
	Fission    int64
	Produce    int64
	Scatter    int64
	NumSegment int64
	End        int64
}

// Snapshot is a durable (non-atomic) copy of Counters taken at cycle end.
type Snapshot = Counters

// field returns a pointer to the named atomic counter for increment use.
func (o *Counters) field(name string) *int64 {
	switch name {
	case "start":
		return &o.Start
	case "source":
		return &o.Source
	case "rr":
		return &o.RouletteRR
	case "split":
		return &o.Split
	case "absorb":
		return &o.Absorb
	case "census":
		return &o.Census
	case "escape":
		return &o.Escape
	case "collision":
		return &o.Collision
	case "fission":
		return &o.Fission
	case "produce":
		return &o.Produce
	case "scatter":
		return &o.Scatter
	case "num_segments":
		return &o.NumSegment
	case "end":
		return &o.End
	default:
		panic("tally: unknown counter " + name)
	}
}

// Add atomically increments the named counter by delta.
func (o *Counters) Add(name string, delta int64) {
	atomic.AddInt64(o.field(name), delta)
}

// Snapshot copies the current (atomic) values into a plain Snapshot.
func (o *Counters) Snapshot() Snapshot {
	return Snapshot{
		Start:      atomic.LoadInt64(&o.Start),
		Source:     atomic.LoadInt64(&o.Source),
		RouletteRR: atomic.LoadInt64(&o.RouletteRR),
		Split:      atomic.LoadInt64(&o.Split),
		Absorb:     atomic.LoadInt64(&o.Absorb),
		Census:     atomic.LoadInt64(&o.Census),
		Escape:     atomic.LoadInt64(&o.Escape),
		Collision:  atomic.LoadInt64(&o.Collision),
		Fission:    atomic.LoadInt64(&o.Fission),
		Produce:    atomic.LoadInt64(&o.Produce),
		Scatter:    atomic.LoadInt64(&o.Scatter),
		NumSegment: atomic.LoadInt64(&o.NumSegment),
		End:        atomic.LoadInt64(&o.End),
	}
}

// Reset zeroes all counters, called once the driver has snapshotted them.
func (o *Counters) Reset() {
	*o = Counters{}
}

// Flux accumulates scalar flux per (cell,group): ∫weight·ds.
type Flux struct {
	nGroups int
	bins    map[int][]uint64 // cellID -> [group] float64 bits, CAS-updated
}

// NewFlux allocates a flux accumulator for the given owned cells.
func NewFlux(cellIDs []int, nGroups int) *Flux {
	f := &Flux{nGroups: nGroups, bins: make(map[int][]uint64, len(cellIDs))}
	for _, id := range cellIDs {
		f.bins[id] = make([]uint64, nGroups)
	}
	return f
}

// Add atomically adds contribution to flux[cellID][group] (§4.2 step 8).
func (o *Flux) Add(cellID, group int, contribution float64) {
	addFloat64(&o.bins[cellID][group], contribution)
}

// Value returns the current accumulated flux for (cell,group).
func (o *Flux) Value(cellID, group int) float64 {
	return float64frombits(atomic.LoadUint64(&o.bins[cellID][group]))
}

// Reset zeroes every bin.
func (o *Flux) Reset() {
	for _, row := range o.bins {
		for i := range row {
			row[i] = 0
		}
	}
}

// IntegratedFlux trapezoidally integrates one cell's accumulated flux over
// the supplied group-representative energies, the same num.Trapz the
// teacher uses to integrate a nodal result series along a spatial axis
// (out/results.go's Integrate). Here the "axis" is energy rather than
// space: groupEnergies must be sorted ascending and len(groupEnergies)
// must equal the group count this Flux was built with.
func (o *Flux) IntegratedFlux(cellID int, groupEnergies []float64) float64 {
	row, ok := o.bins[cellID]
	if !ok || len(row) != len(groupEnergies) {
		return 0
	}
	y := make([]float64, len(row))
	for g := range row {
		y[g] = o.Value(cellID, g)
	}
	return num.Trapz(groupEnergies, y)
}
