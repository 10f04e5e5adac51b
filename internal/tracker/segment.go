// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tracker implements the segment-outcome solver (C6, §4.2) and the
// per-event handlers (C7, §4.1) that together move one particle through one
// segment of its path.
package tracker

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/quicksilver/internal/geom"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/particle"
	"github.com/cpmech/quicksilver/internal/tally"
	"github.com/cpmech/quicksilver/internal/xscache"
)

// outcomeKind mirrors ParticleEvent's 3-way segment outcome; it is distinct
// from particle.Event because faceEventUndefined is resolved to a concrete
// particle.Event only after facetCrossingEvent runs.
type outcomeKind int

const (
	outcomeCollision outcomeKind = iota
	outcomeFace
	outcomeCensus
)

// Segment bundles the result of NextEvent: which outcome ended the segment,
// the facet hit if any, and whether the move was a forced collision.
type Segment struct {
	Outcome        outcomeKind
	Facet          geom.Nearest
	ForcedCollision bool
}

// NextEvent implements §4.2: it picks the event ending the particle's next
// segment and advances the particle in place, tallying scalar flux as it
// goes. The caller dispatches on the returned outcome (§4.1).
func NextEvent(p *particle.Particle, cell *mesh.Cell, cache *xscache.Cache, flux *tally.Flux) Segment {
	speed := p.Speed()

	// 1. forced-collision check
	forced := false
	if p.NumMeanFreePath < 0.0 {
		forced = true
		if p.NumMeanFreePath > -900.0 {
			io.Pf("tracker: particle %d has num_mean_free_path=%g (>-900), forcing collision\n", p.ID, p.NumMeanFreePath)
		}
		p.NumMeanFreePath = geom.Small
	}

	// 2. fetch sigma_total
	sigmaTotal := cache.Total(p.CellID, p.EnergyGroup)
	p.SigmaTotal = sigmaTotal
	if sigmaTotal == 0.0 {
		p.MeanFreePath = geom.Huge
	} else {
		p.MeanFreePath = 1.0 / sigmaTotal
	}

	// 3. sample mfp-to-collision if needed
	if p.NumMeanFreePath == 0.0 && !forced {
		u := p.Sample()
		p.NumMeanFreePath = -math.Log(u)
	}

	var seg Segment
	var segLen float64

	if forced {
		segLen = geom.Tiny
		seg = Segment{Outcome: outcomeCollision, ForcedCollision: true}
		p.NumMeanFreePath = 0.0
	} else {
		nearest, nudgedPos := geom.NearestFacet(cell, p.Position, p.Direction, p.NumSegments)
		p.Position = nudgedPos

		dColl := p.NumMeanFreePath * p.MeanFreePath
		dFace := nearest.Distance
		dCensus := speed * p.TimeToCensus

		// strict less-than scan so the earliest-declared candidate wins ties,
		// matching findMin's array-order tie-break in the reference.
		outcome := outcomeCollision
		segLen = dColl
		if dFace < segLen {
			outcome = outcomeFace
			segLen = dFace
		}
		if dCensus < segLen {
			outcome = outcomeCensus
			segLen = dCensus
		}

		seg = Segment{Outcome: outcome, Facet: nearest}

		if outcome == outcomeCollision {
			p.NumMeanFreePath = 0.0
		} else {
			p.NumMeanFreePath -= segLen / p.MeanFreePath
		}

		if outcome == outcomeFace {
			p.LastFace = nearest.Facet / 4
			p.LastFacet = nearest.Facet % 4
		} else if outcome == outcomeCensus {
			p.TimeToCensus = math.Min(p.TimeToCensus, 0.0)
		}

		if segLen == 0.0 {
			return seg
		}
	}

	// 7. advance position, time, age
	p.Position = p.Position.Add(p.Direction.Scale(segLen))
	segTime := segLen / speed
	p.TimeToCensus -= segTime
	p.Age += segTime

	// census clamps to >=0 after the decrement (§4.1 census row): the
	// min(.,0) applied above (§4.2 step 6) followed by the decrement leaves
	// the time below zero, and this brings a census particle back to 0.
	if seg.Outcome == outcomeCensus && p.TimeToCensus < 0.0 {
		p.TimeToCensus = 0.0
	}

	// 8. tally scalar flux
	if flux != nil {
		flux.Add(p.CellID, p.EnergyGroup, segLen*p.Weight)
	}

	return seg
}

// assertInvariants is a cheap, test-friendly re-statement of §8 property 1.
// Neither the tracking loop nor the driver calls it.
func assertInvariants(p *particle.Particle, dtCycle float64) {
	if p.Status != particle.Alive {
		return
	}
	if p.TimeToCensus < -1e-9 || p.TimeToCensus > dtCycle+1e-9 {
		chk.Panic("tracker: time_to_census out of range: %g not in [0,%g]", p.TimeToCensus, dtCycle)
	}
	norm := p.Direction.Length()
	if math.Abs(norm-1.0) > 1e-9 {
		chk.Panic("tracker: direction cosines not unit norm: %g", norm)
	}
}
