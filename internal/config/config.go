// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config decodes the JSON input deck (§1.3, §6 "CLI / config
// surface") the same way gofem's inp.ReadSim/inp.ReadMsh decode a .sim/.msh
// file: read the whole file with gosl/io, json.Unmarshal it, then apply
// defaults and derived fields in a PostProcess pass.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// PolyDeck is the 5 coefficients of the log-log cross-section polynomial
// `p(lgE) = a+b*x+c*x^2+d*x^3+e*x^4` (§4.4) fit to one reaction kind's
// curve for one isotope.
type PolyDeck struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
	E float64 `json:"e"`
}

// IsotopeDeck is one isotope's reaction count, cross-section normalization
// weights, and the 3 per-kind polynomials nucdata.AddIsotope cyclically
// assigns reactions from (§4.4 "adding an isotope").
type IsotopeDeck struct {
	NumReactions      int      `json:"num_reactions"`
	TotalCrossSection float64  `json:"total_cross_section"`
	NuBar             float64  `json:"nu_bar"`
	FissionWeight     float64  `json:"fission_weight"`
	ScatterWeight     float64  `json:"scatter_weight"`
	AbsorptionWeight  float64  `json:"absorption_weight"`
	Fission           PolyDeck `json:"fission_poly"`
	Scatter           PolyDeck `json:"scatter_poly"`
	Absorption        PolyDeck `json:"absorption_poly"`
}

// MaterialDeck is one material's number density and isotope composition
// (§6 "Material binding").
type MaterialDeck struct {
	Name          string    `json:"name"`
	NumberDensity float64   `json:"number_density"`
	Mass          float64   `json:"mass"`
	SourceRate    float64   `json:"source_rate"`
	IsotopeGIDs   []int     `json:"isotope_gids"`
	AtomFraction  []float64 `json:"atom_fraction"`
}

// GeometryBlock assigns a material, by index into Materials, to a named
// region of the mesh (§6). The mesh/geometry partitioning itself stays out
// of core scope (§1 Non-goals); this only carries the material tag a mesh
// provider needs to resolve cell -> material.
type GeometryBlock struct {
	Name       string `json:"name"`
	MaterialID int    `json:"material_id"`
}

// FaceBoundary names the boundary condition ("reflect", "escape",
// "cellChange") applied to one tagged mesh face group (§6).
type FaceBoundary struct {
	FaceGroup string `json:"face_group"`
	Condition string `json:"condition"`
}

// Deck is the full input-deck schema (§1.3).
type Deck struct {
	Desc string `json:"desc"`

	NGroups         int     `json:"n_groups"`
	ELow            float64 `json:"e_low"`
	EHigh           float64 `json:"e_high"`
	CorrectedGroups bool    `json:"corrected_groups"`

	Materials []MaterialDeck  `json:"materials"`
	Isotopes  []IsotopeDeck   `json:"isotopes"`
	Geometry  []GeometryBlock `json:"geometry"`
	Faces     []FaceBoundary  `json:"faces"`

	MaxProductionSize int     `json:"max_production_size"`
	CycleDt           float64 `json:"cycle_dt"`
	NumCycles         int     `json:"num_cycles"`
	ExchangeCapacity  int     `json:"exchange_capacity"`

	// derived
	FnameKey string `json:"-"`
}

// SetDefault mirrors inp.Data.SetDefault: fill in the values a deck may
// reasonably omit.
func (o *Deck) SetDefault() {
	if o.MaxProductionSize == 0 {
		o.MaxProductionSize = 4
	}
	if o.ExchangeCapacity == 0 {
		o.ExchangeCapacity = 1024
	}
	if o.NumCycles == 0 {
		o.NumCycles = 1
	}
}

// PostProcess derives FnameKey and validates cross-field invariants that
// json.Unmarshal cannot enforce on its own (§4.3/§4.4/§4.5 preconditions).
func (o *Deck) PostProcess(deckPath string) {
	o.FnameKey = utl.FnKey(deckPath)
	if o.NGroups < 1 {
		chk.Panic("config: n_groups must be >= 1, got %d", o.NGroups)
	}
	if o.ELow >= o.EHigh {
		chk.Panic("config: e_low (%g) must be < e_high (%g)", o.ELow, o.EHigh)
	}
	if len(o.Materials) == 0 {
		chk.Panic("config: at least one material is required")
	}
	for i, mat := range o.Materials {
		if len(mat.IsotopeGIDs) != len(mat.AtomFraction) {
			chk.Panic("config: material %d (%s): isotope_gids and atom_fraction length mismatch", i, mat.Name)
		}
	}
}

// ReadDeck reads and decodes a JSON input deck, mirroring inp.ReadSim's
// read-unmarshal-postprocess sequence.
func ReadDeck(deckPath string) (o *Deck, err error) {
	o = new(Deck)
	o.SetDefault()

	b, err := io.ReadFile(deckPath)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, err
	}

	o.PostProcess(deckPath)
	return o, nil
}
