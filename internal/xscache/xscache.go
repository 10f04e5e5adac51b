// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xscache implements the per-cell, per-energy-group total
// macroscopic cross-section cache that is recomputed at the start of every
// cycle and read-only during tracking (§4.5, C4).
package xscache

import (
	"sync"

	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/nucdata"
)

// Cache is dimensioned |owned cells| x nGroups.
type Cache struct {
	nGroups int
	total   map[int][]float64 // cellID -> [group]total
}

// NewCache allocates a cache for the given owned cells and group count.
func NewCache(cellIDs []int, nGroups int) *Cache {
	c := &Cache{nGroups: nGroups, total: make(map[int][]float64, len(cellIDs))}
	for _, id := range cellIDs {
		c.total[id] = make([]float64, nGroups)
	}
	return c
}

// Total returns the cached total macroscopic cross section for (cell,group).
func (o *Cache) Total(cellID, group int) float64 {
	return o.total[cellID][group]
}

// Refresh recomputes total[cell][g] for every owned cell and every group in
// parallel over cells, matching TrackingMCModule::computeCrossSection's
// arcaneParallelForeach-over-cells structure.
func Refresh(cache *Cache, mp mesh.Provider, nd *nucdata.NuclearData) {
	cellIDs := mp.OwnedCellIDs()
	var wg sync.WaitGroup
	wg.Add(len(cellIDs))
	for _, id := range cellIDs {
		id := id
		go func() {
			defer wg.Done()
			mat := mp.Material(id)
			row := cache.total[id]
			for g := 0; g < cache.nGroups; g++ {
				sum := 0.0
				for i, gid := range mat.IsotopeGIDs {
					sum += nd.MacroscopicCrossSection(-1, gid, g, mat.AtomFraction[i], mat.NumberDensity)
				}
				row[g] = sum
			}
		}()
	}
	wg.Wait()
}
