// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package driver

import (
	"math/rand"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/cpmech/quicksilver/internal/exchange"
	"github.com/cpmech/quicksilver/internal/mesh"
	"github.com/cpmech/quicksilver/internal/nucdata"
	"github.com/cpmech/quicksilver/internal/particle"
	"github.com/cpmech/quicksilver/internal/rng"
	"github.com/cpmech/quicksilver/internal/tally"
	"github.com/cpmech/quicksilver/internal/tracker"
	"github.com/cpmech/quicksilver/internal/xscache"
)

// Sourcer supplies newly-born source particles at the start of each cycle.
// Physical source-particle generation (rate-weighted, Poisson-thinned
// arrival sampling) is out of scope (§1 Non-goals, SPEC_FULL §3); this
// interface is the boundary spec.md §6 names, with callers free to plug in
// whatever sampler they like, including none (NoSource).
type Sourcer interface {
	Source(cycle int, mp mesh.Provider, dt float64) []*particle.Particle
}

// NoSource never introduces new particles; it exercises a pure decay/escape
// run with whatever particle population the caller seeds the store with.
type NoSource struct{}

func (NoSource) Source(cycle int, mp mesh.Provider, dt float64) []*particle.Particle { return nil }

// Driver runs the per-cycle parallel tracking loop (C8, §4.8, §5): refresh
// the cross-section cache, source new particles, then repeatedly dispatch
// every Alive particle to a worker pool until every particle in the
// subdomain has reached census, escaped, been absorbed, or is mid-exchange,
// draining the fission/exit/outbound staging buffers between each
// sub-iteration so no worker ever observes store mutation mid-parallel-for
// (§9 "staging vs inline creation").
type Driver struct {
	Mesh              mesh.Provider
	NuclearData       *nucdata.NuclearData
	MaxProductionSize int
	NumWorkers        int
	DtCycle           float64

	Store     *particle.Store
	Cache     *xscache.Cache
	Flux      *tally.Flux
	Counters  *tally.Counters
	Exchanger exchange.Exchanger
	Source    Sourcer

	// order is the shuffled particle-iteration-order buffer (SPEC_FULL §3,
	// grounded on TrackingMCModule.cc's shuffled index array): reshuffled
	// every sub-iteration with a non-physics RNG, never the particle LCG,
	// so property 3 ("particle-to-particle ordering is not guaranteed") is
	// exercised rather than merely asserted.
	order  []int
	orderR *rand.Rand
}

// New builds a Driver over an already-populated mesh/material/nuclear-data
// set. Cache, Flux and Counters are allocated from the mesh's owned cells.
func New(mp mesh.Provider, nd *nucdata.NuclearData, maxProductionSize, numWorkers int, dtCycle float64, ex exchange.Exchanger, src Sourcer) *Driver {
	if numWorkers < 1 {
		numWorkers = 1
	}
	cellIDs := mp.OwnedCellIDs()
	return &Driver{
		Mesh:              mp,
		NuclearData:       nd,
		MaxProductionSize: maxProductionSize,
		NumWorkers:        numWorkers,
		DtCycle:           dtCycle,
		Store:             particle.NewStore(),
		Cache:             xscache.NewCache(cellIDs, nd.Groups.N()),
		Flux:              tally.NewFlux(cellIDs, nd.Groups.N()),
		Counters:          &tally.Counters{},
		Exchanger:         ex,
		Source:            src,
		orderR:            rand.New(rand.NewSource(1)),
	}
}

// RunCycle advances the simulation by one cycle (§4.8 "cycle"): cache
// refresh, sourcing, census-time reset, then sub-iterations until the
// subdomain and its neighbors (via the global termination predicate) have
// nothing left in flight.
func (o *Driver) RunCycle(cycle int) tally.Snapshot {
	xscache.Refresh(o.Cache, o.Mesh, o.NuclearData)

	born := o.Source.Source(cycle, o.Mesh, o.DtCycle)
	for _, p := range born {
		p.EnergyGroup = o.NuclearData.Groups.Group(p.Energy)
	}
	o.Counters.Add("source", int64(len(born)))
	o.Store.AddAll(born)

	for _, p := range o.Store.All() {
		switch p.Status {
		case particle.Alive:
			p.TimeToCensus = o.DtCycle
		case particle.Census:
			// surviving census particles persist across cycles (§3
			// lifecycle summary); top up their time budget and
			// reactivate them for the new cycle's tracking loop,
			// matching TrackingMCModule.cc's time_census += deltat.
			p.Status = particle.Alive
			if p.TimeToCensus <= 0 {
				p.TimeToCensus += o.DtCycle
			}
		}
	}
	o.Counters.Add("start", int64(o.Store.Len()))

	for o.runSubIteration() {
	}

	o.Counters.Add("end", int64(o.Store.Len()))
	o.Store.RemoveStatus(particle.Exited)
	snap := o.Counters.Snapshot()
	o.Counters.Reset()
	o.Flux.Reset()
	return snap
}

// runSubIteration dispatches every currently-Alive particle to the worker
// pool once, resolves the staging buffers it produced, and reports whether
// another sub-iteration is needed locally or on any rank (§5 "global
// termination all-reduce").
func (o *Driver) runSubIteration() bool {
	staging := NewStaging()
	o.reshuffleOrder()

	work := make([]*particle.Particle, 0, len(o.order))
	for _, idx := range o.order {
		p := o.Store.All()[idx]
		if p.Status == particle.Alive {
			work = append(work, p)
		}
	}
	if len(work) == 0 {
		return o.globalHasWork(false)
	}

	o.trackBatch(work, staging)

	exits, outbound, fission, pending := staging.Drain()
	for _, id := range exits {
		_ = id // exit bookkeeping already applied to p.Status by the tracker; id retained for diagnostics
	}

	o.applyPending(pending)
	children := o.resolveFission(fission)
	o.Store.AddAll(children)

	o.exchangeOutbound(outbound)

	return o.globalHasWork(len(children) > 0)
}

// trackBatch runs tracker.TrackOne over work, chunked across NumWorkers
// goroutines with disjoint particle slices so no mutex is needed on the
// particle itself (§5 "shared-resource policy"), the same per-goroutine
// disjoint-slice pattern xscache.Refresh uses per-cell.
func (o *Driver) trackBatch(work []*particle.Particle, staging *Staging) {
	n := len(work)
	workers := o.NumWorkers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		go func(slice []*particle.Particle) {
			defer wg.Done()
			for _, p := range slice {
				outcome := tracker.TrackOne(p, o.Mesh, o.NuclearData, o.Cache, o.Flux, o.Counters, o.MaxProductionSize)
				o.stage(p, outcome, staging)
			}
		}(work[lo:hi])
	}
	wg.Wait()
}

// stage routes one particle's TrackOne outcome into the staging buffers
// (§4.8): fission splits stage their descendants, subDChange hands the
// particle to the outbound bucket, everything else already mutated p in
// place.
func (o *Driver) stage(p *particle.Particle, outcome tracker.Outcome, staging *Staging) {
	switch {
	case outcome.Split:
		children := make([]FissionStage, 0, outcome.Collision.NOut-1)
		for i := range outcome.Collision.ChildSeeds {
			dst := p.CellID
			children = append(children, FissionStage{
				ChildSeed:   outcome.Collision.ChildSeeds[i],
				ChildGID:    outcome.Collision.ChildGlobalIDs[i],
				CellIDDst:   dst,
				ParticleSrc: p.ID,
				EnergyOut:   outcome.Collision.ChildEnergyOut[i],
				AngleOut:    outcome.Collision.ChildAngleOut[i],
			})
		}
		staging.PushFission(children, TrajectoryPending{
			ParticleID: p.ID,
			EnergyOut:  outcome.Collision.SourceEnergyOut,
			AngleOut:   outcome.Collision.SourceAngleOut,
		})

	case outcome.Status == particle.EventSubDChange:
		rank := o.Mesh.Cell(p.CellID).Faces[p.LastFace].OwnerRank
		staging.PushOutbound(p.ID, rank)

	case p.Status == particle.Exited:
		staging.PushExit(p.ID)
	}
}

// applyPending resolves the source particle's own post-fission trajectory
// (§4.8 "separately"), the same UpdateTrajectory call TrackOne's scatter
// branch makes, now run single-threaded since the parallel phase has
// quiesced.
func (o *Driver) applyPending(pending []TrajectoryPending) {
	for _, pend := range pending {
		p, ok := o.Store.Get(pend.ParticleID)
		if !ok {
			continue
		}
		seedState := rng.State{Seed: p.Seed}
		newDir, upd := nucdata.UpdateTrajectory(p.Direction, pend.EnergyOut, pend.AngleOut, &seedState)
		p.Seed = seedState.Seed
		p.Direction = newDir
		p.Energy = pend.EnergyOut
		p.Velocity = p.Direction.Scale(upd.Speed)
		p.NumMeanFreePath = upd.NumMeanFreePath
		p.EnergyGroup = o.NuclearData.Groups.Group(p.Energy)
		p.Status = particle.Alive
	}
}

// resolveFission turns staged fission descendants into live *particle.
// Particle values in one bulk pass (§4.8(b) "one bulk addition"),
// inheriting the parent's TimeToCensus/position/cell and using the
// lineage-derived child seed/global ID already computed during tracking.
func (o *Driver) resolveFission(staged []FissionStage) []*particle.Particle {
	children := make([]*particle.Particle, 0, len(staged))
	for _, s := range staged {
		parent, ok := o.Store.Get(s.ParticleSrc)
		if !ok {
			chk.Panic("driver: fission parent %d not found while resolving staged descendants", s.ParticleSrc)
		}
		seedState := rng.State{Seed: s.ChildSeed}
		dir, upd := nucdata.UpdateTrajectory(parent.Direction, s.EnergyOut, s.AngleOut, &seedState)
		child := &particle.Particle{
			ID:              s.ChildGID,
			CellID:          s.CellIDDst,
			Position:        parent.Position,
			Direction:       dir,
			Energy:          s.EnergyOut,
			TimeToCensus:    parent.TimeToCensus,
			Weight:          parent.Weight,
			NumMeanFreePath: upd.NumMeanFreePath,
			EnergyGroup:     o.NuclearData.Groups.Group(s.EnergyOut),
			Seed:            seedState.Seed,
			Status:          particle.Alive,
		}
		child.Velocity = child.Direction.Scale(upd.Speed)
		children = append(children, child)
	}
	return children
}

// exchangeOutbound hands staged cross-rank particles to the Exchanger,
// removes them from this subdomain's store, and appends whatever arrived
// from neighbors (§6 particle exchanger).
func (o *Driver) exchangeOutbound(outbound []Outbound) {
	byRank := make(map[int][]*particle.Particle, len(outbound))
	for _, ob := range outbound {
		p, ok := o.Store.Get(ob.ParticleID)
		if !ok {
			continue
		}
		byRank[ob.ToRank] = append(byRank[ob.ToRank], p)
		p.Status = particle.Exited // remove from local store; ownership now at the exchanger
	}
	o.Exchanger.BeginExchange(byRank)
	incoming := o.Exchanger.Exchange()
	o.Store.RemoveStatus(particle.Exited)
	for _, p := range incoming {
		p.Status = particle.Alive
	}
	o.Store.AddAll(incoming)
}

// reshuffleOrder rebuilds the shuffled iteration-order buffer over the
// store's current length (SPEC_FULL §3).
func (o *Driver) reshuffleOrder() {
	n := o.Store.Len()
	o.order = make([]int, n)
	for i := range o.order {
		o.order[i] = i
	}
	o.orderR.Shuffle(n, func(i, j int) { o.order[i], o.order[j] = o.order[j], o.order[i] })
}

// globalHasWork combines this rank's local work flag with every other
// rank's via the one confirmed gosl/mpi collective the teacher exercises,
// AllReduceSum (fem/s_implicit.go): a sum > 0 means somebody, somewhere,
// still has an Alive particle to track.
func (o *Driver) globalHasWork(localHasWork bool) bool {
	local := 0.0
	for _, p := range o.Store.All() {
		if p.Status == particle.Alive {
			local = 1.0
			break
		}
	}
	if localHasWork {
		local = 1.0
	}
	if !mpi.IsOn() {
		return local > 0
	}
	in := []float64{local}
	out := []float64{0}
	mpi.AllReduceSum(in, out)
	return out[0] > 0
}

// Report prints the per-cycle counters from rank 0 only, matching the
// teacher's `if mpi.Rank() == 0 && verbose` gate (fem/solver.go).
func Report(cycle int, snap tally.Snapshot, verbose bool) {
	if verbose && mpi.Rank() == 0 {
		io.Pf("cycle %d: start=%d source=%d collision=%d scatter=%d absorb=%d fission=%d escape=%d census=%d segments=%d\n",
			cycle, snap.Start, snap.Source, snap.Collision, snap.Scatter, snap.Absorb, snap.Fission, snap.Escape, snap.Census, snap.NumSegment)
	}
}
