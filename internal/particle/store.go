// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

// Store holds the particle population resident in one subdomain. A
// particle's attributes are touched only by the worker that currently owns
// it for a segment (§5 "shared-resource policy"); the store itself supports
// only bulk, single-threaded mutation between sub-iterations, never
// concurrent growth while a parallel view is live (§9 "staging vs inline
// creation").
type Store struct {
	particles []*Particle
	byID      map[uint64]int
}

// NewStore returns an empty particle store.
func NewStore() *Store {
	return &Store{byID: make(map[uint64]int)}
}

// Add appends p to the store.
func (o *Store) Add(p *Particle) {
	o.byID[p.ID] = len(o.particles)
	o.particles = append(o.particles, p)
}

// AddAll appends ps in bulk, the "one bulk addition" of §4.8(b).
func (o *Store) AddAll(ps []*Particle) {
	for _, p := range ps {
		o.Add(p)
	}
}

// All returns the live particle slice. Callers must not grow it directly.
func (o *Store) All() []*Particle {
	return o.particles
}

// Len returns the number of particles currently resident.
func (o *Store) Len() int {
	return len(o.particles)
}

// Get looks up a particle by id.
func (o *Store) Get(id uint64) (*Particle, bool) {
	idx, ok := o.byID[id]
	if !ok {
		return nil, false
	}
	return o.particles[idx], true
}

// RemoveStatus compacts out every particle whose Status is in the given
// set, matching §4.8(a) "removes exited particles". Order among survivors
// is preserved but is not otherwise meaningful (§5 "particle-to-particle
// ordering is not guaranteed").
func (o *Store) RemoveStatus(statuses ...Status) {
	remove := make(map[Status]bool, len(statuses))
	for _, s := range statuses {
		remove[s] = true
	}
	kept := o.particles[:0]
	for _, p := range o.particles {
		if remove[p.Status] {
			continue
		}
		kept = append(kept, p)
	}
	o.particles = kept
	o.reindex()
}

func (o *Store) reindex() {
	o.byID = make(map[uint64]int, len(o.particles))
	for i, p := range o.particles {
		o.byID[p.ID] = i
	}
}
