// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rng implements the 64-bit linear-congruential generator used to
// drive every stochastic decision in the transport core, and the
// deterministic seed-spawning rule that keeps particle lineages reproducible
// regardless of how work is scheduled across goroutines or subdomains.
package rng

import "github.com/cpmech/gosl/chk"

// lcg constants: 2862933555777941757*seed + 3037000493, matching the
// reference rngSample implementation bit for bit.
const (
	multiplier uint64  = 2862933555777941757
	increment  uint64  = 3037000493
	invScale   float64 = 5.4210108624275222e-20 // 1/(2**64 - 1)
)

// State carries one particle's (or one non-physics stream's) LCG seed.
type State struct {
	Seed uint64
}

// NewState returns a State seeded with seed.
func NewState(seed uint64) State {
	return State{Seed: seed}
}

// Sample advances the generator and returns a pseudo-random double in (0,1).
func (o *State) Sample() float64 {
	o.Seed = multiplier*o.Seed + increment
	o.Seed &^= 1 << 63 // clear bit 63
	v := invScale * float64(o.Seed)
	if v < 0 {
		chk.Panic("rng: sample produced a negative value; state corrupted")
	}
	return v
}

// Spawn deterministically derives a child seed from a parent seed. The
// result depends only on the parent value, never on call order, so a
// particle lineage reproduces identically under any parallel interleaving.
func Spawn(parentSeed uint64) uint64 {
	s := State{Seed: parentSeed}
	// Burn one LCG step with a distinguishing odd increment folded in so
	// spawned children do not retrace the parent's own stream.
	s.Seed = multiplier*(s.Seed^0x9E3779B97F4A7C15) + increment
	s.Seed &^= 1 << 63
	return s.Seed
}

// GlobalID returns the "future global id" used to tag a not-yet-created
// descendant particle: the spawned seed with its top bit cleared.
func GlobalID(spawnedSeed uint64) uint64 {
	return spawnedSeed &^ (1 << 63)
}
