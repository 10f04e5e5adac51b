// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver implements the per-cycle parallel tracking loop, the
// fission fan-out staging area, and the neighbor-exchange coordination
// (C8, §4.8, §5).
package driver

import "sync"

// FissionStage holds one staged fission descendant: the six parallel arrays
// named in §4.8 (rns, global_id, cell_id_dst, particle_src, energy_out,
// angle_out) folded into one struct per descendant.
type FissionStage struct {
	ChildSeed    uint64
	ChildGID     uint64
	CellIDDst    int
	ParticleSrc  uint64
	EnergyOut    float64
	AngleOut     float64
}

// TrajectoryPending is the source particle's own post-collision trajectory,
// applied after the fan-out completes (§4.8 "separately").
type TrajectoryPending struct {
	ParticleID uint64
	EnergyOut  float64
	AngleOut   float64
}

// Outbound is one particle queued for cross-rank exchange.
type Outbound struct {
	ParticleID uint64
	ToRank     int
}

// Staging is the driver-owned set of four logically-independent append-only
// buffers (exit ids, outbound id/rank pairs, fission descendants, pending
// source trajectories) workers push into during the parallel phase and the driver drains
// single-threaded between sub-iterations (§5 "shared-resource policy",
// §9 "staging vs inline creation"). Each buffer is guarded by its own mutex
// so unrelated staging events (an exit vs. a fission) never contend.
type Staging struct {
	exitMu   sync.Mutex
	exitIDs  []uint64

	outMu       sync.Mutex
	outbound    []Outbound

	fissionMu sync.Mutex
	fission   []FissionStage

	pendingMu sync.Mutex
	pending   []TrajectoryPending
}

// NewStaging returns an empty Staging set.
func NewStaging() *Staging {
	return &Staging{}
}

// PushExit records a particle that exited (absorbed or escaped) this cycle.
func (o *Staging) PushExit(id uint64) {
	o.exitMu.Lock()
	o.exitIDs = append(o.exitIDs, id)
	o.exitMu.Unlock()
}

// PushOutbound records a particle handed to the exchanger.
func (o *Staging) PushOutbound(id uint64, toRank int) {
	o.outMu.Lock()
	o.outbound = append(o.outbound, Outbound{ParticleID: id, ToRank: toRank})
	o.outMu.Unlock()
}

// PushFission records the staged fission descendants of one collision plus
// the source's own
// pending trajectory update (§4.8).
func (o *Staging) PushFission(children []FissionStage, src TrajectoryPending) {
	o.fissionMu.Lock()
	o.fission = append(o.fission, children...)
	o.fissionMu.Unlock()

	o.pendingMu.Lock()
	o.pending = append(o.pending, src)
	o.pendingMu.Unlock()
}

// Drain returns and clears every staged buffer; called single-threaded by
// the driver between sub-iterations.
func (o *Staging) Drain() (exits []uint64, outbound []Outbound, fission []FissionStage, pending []TrajectoryPending) {
	o.exitMu.Lock()
	exits, o.exitIDs = o.exitIDs, nil
	o.exitMu.Unlock()

	o.outMu.Lock()
	outbound, o.outbound = o.outbound, nil
	o.outMu.Unlock()

	o.fissionMu.Lock()
	fission, o.fission = o.fission, nil
	o.fissionMu.Unlock()

	o.pendingMu.Lock()
	pending, o.pending = o.pending, nil
	o.pendingMu.Unlock()

	return
}
