// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nucdata

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/quicksilver/internal/rng"
)

// Kind is the closed set of reaction types (§9 "polymorphic reactions":
// implemented as a tagged variant, not a subclass hierarchy).
type Kind int

const (
	Scatter Kind = iota
	Absorption
	Fission
)

func (k Kind) String() string {
	switch k {
	case Scatter:
		return "scatter"
	case Absorption:
		return "absorption"
	case Fission:
		return "fission"
	default:
		return "undefined"
	}
}

// Reaction holds one isotope reaction: its kind, mean fission multiplicity,
// and per-energy-group cross-section table.
type Reaction struct {
	Kind        Kind
	Label       string // diagnostic-only reaction name, carried from the original's reaction naming (§3 supplement)
	NuBar       float64
	CrossSection []float64 // σ[group], built by buildReaction
}

// buildReaction samples the polynomial at each group midpoint and
// renormalizes against the group containing 1 MeV (§4.4 "building a
// reaction").
func buildReaction(kind Kind, label string, nuBar float64, groups *EnergyGroups, poly Polynomial, reactionCrossSection float64) Reaction {
	n := groups.N()
	sigma := make([]float64, n)
	for i := 0; i < n; i++ {
		eMid := groups.Mid(i)
		sigma[i] = math.Pow(10, poly.F(math.Log10(eMid), nil))
	}

	refGroup := groups.FirstGroupAbove1MeV()
	normalization := sigma[refGroup]
	if normalization <= 0 {
		chk.Panic("nucdata: normalization cross section must be > 0 (got %g)", normalization)
	}
	scale := reactionCrossSection / normalization
	for i := range sigma {
		sigma[i] *= scale
	}
	return Reaction{Kind: kind, Label: label, NuBar: nuBar, CrossSection: sigma}
}

// CollisionOutcome describes the products of SampleCollision: nOut child
// particles each with an outgoing energy and scattering-angle cosine.
type CollisionOutcome struct {
	NOut      int
	EnergyOut []float64
	AngleOut  []float64
}

// SampleCollision implements §4.4 "collision sampling" for the reaction
// selected by SelectReaction.
func (o *Reaction) SampleCollision(incidentEnergy, materialMass float64, seed *rng.State, maxProductionSize int) CollisionOutcome {
	switch o.Kind {
	case Scatter:
		u1 := seed.Sample()
		e := incidentEnergy * (1.0 - u1/materialMass)
		u2 := seed.Sample()*2.0 - 1.0
		return CollisionOutcome{NOut: 1, EnergyOut: []float64{e}, AngleOut: []float64{u2}}

	case Absorption:
		return CollisionOutcome{NOut: 0}

	case Fission:
		u := seed.Sample()
		nOut := int(o.NuBar + u)
		if nOut > maxProductionSize {
			chk.Panic("nucdata: fission would produce %d > max_production_size=%d", nOut, maxProductionSize)
		}
		energies := make([]float64, nOut)
		angles := make([]float64, nOut)
		for i := 0; i < nOut; i++ {
			ue := seed.Sample()/2.0 + 0.5 // U(0.5,1)
			energies[i] = 20 * ue * ue
			ua := seed.Sample()*2.0 - 1.0 // U(-1,1)
			angles[i] = ua
		}
		return CollisionOutcome{NOut: nOut, EnergyOut: energies, AngleOut: angles}

	default:
		chk.Panic("nucdata: unknown reaction kind %v", o.Kind)
		return CollisionOutcome{}
	}
}
