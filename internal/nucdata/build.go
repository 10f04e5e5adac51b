// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nucdata

// BuildFromDeck assembles a NuclearData set from decoded input-deck values,
// the wiring point between internal/config's JSON schema and AddIsotope's
// in-memory construction (§1.3, §4.4). isotopes are appended in deck order,
// so deck index == returned isotope GID, and nReactions[i] gives the
// reaction count AddIsotope should split isotopes[i] into.
func BuildFromDeck(nGroups int, eLow, eHigh float64, correctedGroups bool, isotopes []IsotopePoly, nReactions []int) *NuclearData {
	nd := NewNuclearData(NewEnergyGroups(nGroups, eLow, eHigh, correctedGroups))
	for i, iso := range isotopes {
		nd.AddIsotope(nReactions[i], iso)
	}
	return nd
}
