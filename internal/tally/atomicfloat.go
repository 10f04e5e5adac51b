// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tally

import (
	"math"
	"sync/atomic"
)

// addFloat64 atomically adds delta to the float64 stored at *bits, CAS-
// retrying on contention. Go's standard library has no atomic float add;
// niceyeti-tabular/atomic_float and atomic_helpers show the same
// bits-reinterpret-and-CAS idiom for exactly this gap, so this is the
// pack's own answer rather than a stdlib fallback of convenience.
func addFloat64(bits *uint64, delta float64) {
	for {
		old := atomic.LoadUint64(bits)
		newVal := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(bits, old, math.Float64bits(newVal)) {
			return
		}
	}
}

func float64frombits(bits uint64) float64 {
	return math.Float64frombits(bits)
}
