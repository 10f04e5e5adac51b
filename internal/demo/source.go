// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import (
	"math"

	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/nucdata"
	"github.com/cpmech/quicksilver/internal/particle"
	"github.com/cpmech/quicksilver/internal/rng"
	"github.com/cpmech/quicksilver/internal/vector"
)

// UniformSource emits a fixed count of isotropic, mono-energetic particles
// per owned cell per cycle, at the cell center, with lineage-spawned seeds.
// The original QSModule/SamplingMCModule rate-weighted, Poisson-thinned
// sampler is out of scope (§1 Non-goals); this is the "minimal reference
// implementation good enough to drive the test suite" SPEC_FULL §3 calls
// for, not a physical source model.
type UniformSource struct {
	PerCell    int
	Energy     float64
	rootSeed   uint64
	nextSerial uint64
}

// NewUniformSource seeds the source's own lineage root independently of any
// particle stream.
func NewUniformSource(perCell int, energy float64, rootSeed uint64) *UniformSource {
	return &UniformSource{PerCell: perCell, Energy: energy, rootSeed: rootSeed}
}

func (o *UniformSource) Source(cycle int, mp mesh.Provider, dt float64) []*particle.Particle {
	var out []*particle.Particle
	for _, cellID := range mp.OwnedCellIDs() {
		cell := mp.Cell(cellID)
		for i := 0; i < o.PerCell; i++ {
			o.nextSerial++
			seed := rng.Spawn(o.rootSeed + o.nextSerial)
			gid := rng.GlobalID(seed)

			s := rng.State{Seed: seed}
			cosTheta := 2.0*s.Sample() - 1.0
			phi := 2.0 * math.Pi * s.Sample()
			sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
			dir := vector.Vec3{X: sinTheta * math.Cos(phi), Y: sinTheta * math.Sin(phi), Z: cosTheta}

			p := &particle.Particle{
				ID:           gid,
				CellID:       cellID,
				Position:     cell.Center,
				Direction:    dir,
				Energy:       o.Energy,
				TimeToCensus: dt,
				Weight:       1.0,
				Seed:         s.Seed,
				Status:       particle.Alive,
			}
			p.Velocity = p.Direction.Scale(nucdata.Speed(o.Energy))
			out = append(out, p)
		}
	}
	return out
}
