// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nucdata

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/rng"
)

// Species holds one isotope's reaction set; the core treats each isotope as
// owning exactly one species (§3 "Material / Isotope / Reaction tree").
type Species struct {
	Reactions []Reaction
}

// Isotope is a single nuclear species entry in NuclearData.
type Isotope struct {
	Species Species
}

// IsotopePoly bundles the per-reaction-kind polynomial coefficients and
// nuBar an isotope is built from (mirrors the CLI config surface of §6).
type IsotopePoly struct {
	Fission, Scatter, Absorption Polynomial
	NuBar                       float64
	TotalCrossSection           float64
	FissionWeight               float64
	ScatterWeight               float64
	AbsorptionWeight            float64
}

// NuclearData owns the ordered energy-bin boundaries and the isotope table.
// Built once at startup, read-only thereafter (§3 lifecycle summary).
type NuclearData struct {
	Groups   *EnergyGroups
	Isotopes []Isotope
}

// NewNuclearData allocates an empty NuclearData over the given energy mesh.
func NewNuclearData(groups *EnergyGroups) *NuclearData {
	return &NuclearData{Groups: groups}
}

// AddIsotope builds and appends an isotope with nReactions reactions split
// roughly evenly across {Scatter, Fission, Absorption} (§4.4 "adding an
// isotope"). Returns the new isotope's index.
func (o *NuclearData) AddIsotope(nReactions int, p IsotopePoly) int {
	totalWeight := p.FissionWeight + p.ScatterWeight + p.AbsorptionWeight

	nFission := nReactions / 3
	nScatter := nReactions / 3
	nAbsorption := nReactions / 3
	switch nReactions % 3 {
	case 1:
		nScatter++
	case 2:
		nScatter++
		nFission++
	}

	fissionXS := p.TotalCrossSection * p.FissionWeight / (float64(nFission) * totalWeight)
	scatterXS := p.TotalCrossSection * p.ScatterWeight / (float64(nScatter) * totalWeight)
	absorptionXS := p.TotalCrossSection * p.AbsorptionWeight / (float64(nAbsorption) * totalWeight)

	reactions := make([]Reaction, 0, nReactions)
	for i := 0; i < nReactions; i++ {
		switch i % 3 {
		case 0:
			reactions = append(reactions, buildReaction(Scatter, "scatter", p.NuBar, o.Groups, p.Scatter, scatterXS))
		case 1:
			reactions = append(reactions, buildReaction(Fission, "fission", p.NuBar, o.Groups, p.Fission, fissionXS))
		case 2:
			reactions = append(reactions, buildReaction(Absorption, "absorption", p.NuBar, o.Groups, p.Absorption, absorptionXS))
		}
	}
	o.Isotopes = append(o.Isotopes, Isotope{Species: Species{Reactions: reactions}})
	return len(o.Isotopes) - 1
}

// NumReactions returns the reaction count of isotope isoIdx.
func (o *NuclearData) NumReactions(isoIdx int) int {
	return len(o.Isotopes[isoIdx].Species.Reactions)
}

// TotalCrossSection sums isotope isoIdx's reaction cross sections at group.
func (o *NuclearData) TotalCrossSection(isoIdx, group int) float64 {
	total := 0.0
	for _, r := range o.Isotopes[isoIdx].Species.Reactions {
		total += r.CrossSection[group]
	}
	return total
}

// MacroscopicCrossSection implements §4.4 "macroscopic cross section":
// reaction=-1 selects the isotope's total; atomFraction==0 or
// cellNumberDensity==0 returns the 1e-20 floor instead of a hard zero so
// ratios involving it stay finite.
func (o *NuclearData) MacroscopicCrossSection(reaction, isoIdx, group int, atomFraction, cellNumberDensity float64) float64 {
	if atomFraction == 0 || cellNumberDensity == 0 {
		return 1e-20
	}
	var micro float64
	if reaction < 0 {
		micro = o.TotalCrossSection(isoIdx, group)
	} else {
		micro = o.Isotopes[isoIdx].Species.Reactions[reaction].CrossSection[group]
	}
	return atomFraction * cellNumberDensity * micro
}

// Selected identifies the isotope/reaction a collision resolves to.
type Selected struct {
	IsotopeIdx int
	ReactIdx   int
}

// SelectReaction implements §4.4 "reaction selection": draws u in (0,1),
// walks the cell material's isotopes then reactions in order subtracting
// each macroscopic cross section from target until it goes negative.
func SelectReaction(nd *NuclearData, mat *mesh.Material, group int, sigmaTotalParticle float64, seed *rng.State) Selected {
	u := seed.Sample()
	target := u * sigmaTotalParticle

	for i, gid := range mat.IsotopeGIDs {
		n := nd.NumReactions(gid)
		for r := 0; r < n; r++ {
			target -= nd.MacroscopicCrossSection(r, gid, group, mat.AtomFraction[i], mat.NumberDensity)
			if target < 0 {
				return Selected{IsotopeIdx: gid, ReactIdx: r}
			}
		}
	}
	chk.Panic("nucdata: reaction selection fell through without choosing an isotope/reaction (target=%g remaining)", target)
	return Selected{IsotopeIdx: -1, ReactIdx: -1}
}
