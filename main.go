// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"runtime"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/quicksilver/internal/config"
	"github.com/cpmech/quicksilver/internal/demo"
	"github.com/cpmech/quicksilver/internal/driver"
	"github.com/cpmech/quicksilver/internal/exchange"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/nucdata"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// read input parameters
	deckPath, _ := io.ArgToFilename(0, "", ".json", true)
	verbose := io.ArgToBool(1, true)
	gridSize := io.ArgToInt(2, 4)

	if mpi.Rank() == 0 && verbose {
		io.PfWhite("\nQuicksilver-Go -- Monte Carlo neutron transport core\n\n")
		io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")

		io.Pf("\n%v\n", io.ArgsTable(
			"input deck path", "deckPath", deckPath,
			"show messages", "verbose", verbose,
			"demo grid size (per axis)", "gridSize", gridSize,
		))
	}

	deck, err := config.ReadDeck(deckPath)
	if err != nil {
		chk.Panic("failed to read input deck %q: %v", deckPath, err)
	}

	if err := Run(deck, gridSize, verbose); err != nil {
		chk.Panic("run failed:\n%v", err)
	}
}

// Run builds the nuclear-data set, demo mesh, and driver from a decoded
// deck and executes deck.NumCycles cycles, reporting per-cycle tallies from
// rank 0. Mesh construction and material-to-cell assignment are external
// collaborators (§1 Non-goals); Run wires in the minimal demo.Grid so the
// CLI entry point is actually runnable end to end.
func Run(deck *config.Deck, gridSize int, verbose bool) error {
	isotopes := make([]nucdata.IsotopePoly, len(deck.Isotopes))
	nReactions := make([]int, len(deck.Isotopes))
	for i, iso := range deck.Isotopes {
		isotopes[i] = nucdata.IsotopePoly{
			Fission:           nucdata.Polynomial(iso.Fission),
			Scatter:           nucdata.Polynomial(iso.Scatter),
			Absorption:        nucdata.Polynomial(iso.Absorption),
			NuBar:             iso.NuBar,
			TotalCrossSection: iso.TotalCrossSection,
			FissionWeight:     iso.FissionWeight,
			ScatterWeight:     iso.ScatterWeight,
			AbsorptionWeight:  iso.AbsorptionWeight,
		}
		nReactions[i] = iso.NumReactions
	}
	nd := nucdata.BuildFromDeck(deck.NGroups, deck.ELow, deck.EHigh, deck.CorrectedGroups, isotopes, nReactions)

	matDeck := deck.Materials[0]
	mat := &mesh.Material{
		NumberDensity: matDeck.NumberDensity,
		Mass:          matDeck.Mass,
		SourceRate:    matDeck.SourceRate,
		IsotopeGIDs:   matDeck.IsotopeGIDs,
		AtomFraction:  matDeck.AtomFraction,
	}
	grid := demo.NewGrid(gridSize, mat)

	src := demo.NewUniformSource(1, deck.EHigh/2.0, 1)
	ex := exchange.NullExchanger{}
	numWorkers := runtime.NumCPU()

	dr := driver.New(grid, nd, deck.MaxProductionSize, numWorkers, deck.CycleDt, ex, src)

	for cycle := 0; cycle < deck.NumCycles; cycle++ {
		snap := dr.RunCycle(cycle)
		driver.Report(cycle, snap, verbose)
	}
	return nil
}
