// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tally

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_tally01(tst *testing.T) {

	chk.PrintTitle("Test tally01: Add/Snapshot/Reset round-trip")

	var c Counters
	c.Add("collision", 5)
	c.Add("collision", 3)
	c.Add("absorb", 1)

	snap := c.Snapshot()
	chk.Scalar(tst, "collision", 0, float64(snap.Collision), 8)
	chk.Scalar(tst, "absorb", 0, float64(snap.Absorb), 1)

	c.Reset()
	snap2 := c.Snapshot()
	chk.Scalar(tst, "collision after reset", 0, float64(snap2.Collision), 0)
}

func Test_tally02(tst *testing.T) {

	chk.PrintTitle("Test tally02: concurrent Add from many goroutines loses no increments")

	var c Counters
	var wg sync.WaitGroup
	const n = 200
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			c.Add("num_segments", 1)
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	chk.Scalar(tst, "num_segments", 0, float64(snap.NumSegment), n)
}

func Test_tally03(tst *testing.T) {

	chk.PrintTitle("Test tally03: Flux accumulates concurrently via CAS")

	f := NewFlux([]int{0}, 1)
	var wg sync.WaitGroup
	const n = 500
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			f.Add(0, 0, 0.5)
		}()
	}
	wg.Wait()

	chk.Scalar(tst, "flux", 1e-6, f.Value(0, 0), float64(n)*0.5)

	f.Reset()
	chk.Scalar(tst, "flux after reset", 1e-15, f.Value(0, 0), 0)
}

func Test_tally04(tst *testing.T) {

	chk.PrintTitle("Test tally04: IntegratedFlux trapezoidally integrates flux over group energies")

	f := NewFlux([]int{0}, 3)
	f.Add(0, 0, 1.0)
	f.Add(0, 1, 1.0)
	f.Add(0, 2, 1.0)

	energies := []float64{0, 1, 2}
	got := f.IntegratedFlux(0, energies)
	chk.Scalar(tst, "trapz of a flat flux over [0,2]", 1e-12, got, 2.0)

	if got := f.IntegratedFlux(999, energies); got != 0 {
		tst.Errorf("expected 0 for an unknown cell id, got %g", got)
	}
}
