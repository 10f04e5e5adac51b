// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nucdata

import "github.com/cpmech/gosl/fun"

// Polynomial is p(x) = a + b*x + c*x^2 + d*x^3 + e*x^4, the closed-form
// curve NuclearDataArc builds each reaction's cross section from (§4.4
// "building a reaction"). Exposed as a fun.Func, the same interface gofem
// uses for its time/space-dependent boundary and source functions
// (inp/facecond.go, fem/essenbcs.go), so a reaction's energy dependence and
// a boundary condition's time dependence are interchangeable callables.
type Polynomial struct {
	A, B, C, D, E float64
}

// F implements fun.Func: t plays the role of log10(energy), x is unused.
func (o Polynomial) F(t float64, x []float64) float64 {
	return o.A + t*(o.B+t*(o.C+t*(o.D+t*o.E)))
}

var _ fun.Func = Polynomial{}
