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
	"github.com/cpmech/quicksilver/internal/tally"
	"github.com/cpmech/quicksilver/internal/xscache"
)

// Outcome is what TrackOne hands back to the per-cycle driver once the
// particle's inner loop has terminated (§4.1).
type Outcome struct {
	Status    particle.Event // event that ended the loop (EventCollision/EventEscape/EventSubDChange/EventCensus); p.Status holds the resulting lifecycle state
	Collision CollisionResult
	Split     bool // true when NOut>1: p.Status==Cloned, descendants staged by the caller
}

// TrackOne runs one particle's inner tracking loop (§4.1) to a terminal
// outcome: a collision that absorbs/scatters/splits it, an escape, a
// cellChange that keeps looping locally, a reflection that keeps looping
// locally, a subDChange that hands off to the exchanger, or census.
func TrackOne(p *particle.Particle, mp mesh.Provider, nd *nucdata.NuclearData, cache *xscache.Cache, flux *tally.Flux, counters *tally.Counters, maxProductionSize int) Outcome {
	if p.Status != particle.Alive {
		chk.Panic("tracker: TrackOne called on non-alive particle %d (status=%v)", p.ID, p.Status)
	}

	for {
		cell := mp.Cell(p.CellID)
		seg := NextEvent(p, cell, cache, flux)
		p.NumSegments++
		counters.Add("num_segments", 1)

		switch seg.Outcome {
		case outcomeCollision:
			counters.Add("collision", 1)
			mat := mp.Material(p.CellID)
			res := CollisionEvent(p, cell, mat, nd, maxProductionSize)

			switch res.NOut {
			case 0:
				counters.Add("absorb", 1)
				p.Status = particle.Exited
				p.LastEvent = particle.EventCollision
				return Outcome{Status: particle.EventCollision, Collision: res}

			case 1:
				counters.Add("scatter", 1)
				seedState := rng.State{Seed: p.Seed}
				newDir, upd := nucdata.UpdateTrajectory(p.Direction, res.SourceEnergyOut, res.SourceAngleOut, &seedState)
				p.Seed = seedState.Seed
				p.Direction = newDir
				p.Energy = res.SourceEnergyOut
				p.Velocity = p.Direction.Scale(upd.Speed)
				p.NumMeanFreePath = upd.NumMeanFreePath
				p.EnergyGroup = nd.Groups.Group(p.Energy)
				// loop continues

			default:
				counters.Add("fission", 1)
				counters.Add("produce", int64(res.NOut))
				p.Status = particle.Cloned
				p.LastEvent = particle.EventCollision
				return Outcome{Status: particle.EventCollision, Collision: res, Split: true}
			}

		case outcomeFace:
			ev := FacetCrossingEvent(p, cell)
			p.LastEvent = ev
			switch ev {
			case particle.EventCellChange:
				// loop continues in the new cell
			case particle.EventEscape:
				counters.Add("escape", 1)
				p.Status = particle.Exited
				return Outcome{Status: particle.EventEscape}
			case particle.EventReflection:
				ReflectParticle(p, cell)
				// loop continues
			case particle.EventSubDChange:
				return Outcome{Status: particle.EventSubDChange}
			}

		case outcomeCensus:
			counters.Add("census", 1)
			p.Status = particle.Census
			p.LastEvent = particle.EventCensus
			return Outcome{Status: particle.EventCensus}
		}
	}
}
