// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nucdata

import (
	"math"

	"github.com/cpmech/quicksilver/internal/rng"
	"github.com/cpmech/quicksilver/internal/vector"
)

// Physical constants used by the trajectory update (§4.4), matching the
// reference implementation's PhysicalConstants.
const (
	NeutronRestMassEnergy = 939.565379  // MeV
	SpeedOfLight          = 2.99792458e10 // cm/s
)

// Speed returns the relativistic speed corresponding to kinetic energy E
// (MeV), per §4.4: v = c * sqrt(1 - (mc^2/(E+mc^2))^2).
func Speed(kineticEnergy float64) float64 {
	ratio := NeutronRestMassEnergy / (kineticEnergy + NeutronRestMassEnergy)
	return SpeedOfLight * math.Sqrt(1.0-ratio*ratio)
}

// TrajectoryUpdate is the result of rotating a direction and resampling the
// residual mean-free-path count after a scatter or fission-child event.
type TrajectoryUpdate struct {
	Direction        vector.Vec3
	Speed            float64
	NumMeanFreePath  float64
}

// Rotate3D decomposes dir into polar (cosTheta0,sinTheta0) and azimuth
// (cosPhi0,sinPhi0) components and recomposes it with the new scattering
// angle (sinTheta,cosTheta) and a freshly sampled azimuth (sinPhi,cosPhi),
// the "standard scatter-angle rotation" of §4.4.
func Rotate3D(dir vector.Vec3, sinTheta, cosTheta, sinPhi, cosPhi float64) vector.Vec3 {
	cosTheta0 := dir.Z
	sinTheta0 := math.Sqrt(1.0 - cosTheta0*cosTheta0)

	var cosPhi0, sinPhi0 float64
	if sinTheta0 < 1e-6 {
		cosPhi0, sinPhi0 = 1.0, 0.0
	} else {
		cosPhi0 = dir.X / sinTheta0
		sinPhi0 = dir.Y / sinTheta0
	}

	newX := cosTheta0*cosPhi0*(sinTheta*cosPhi) - sinPhi0*(sinTheta*sinPhi) + sinTheta0*cosPhi0*cosTheta
	newY := cosTheta0*sinPhi0*(sinTheta*cosPhi) + cosPhi0*(sinTheta*sinPhi) + sinTheta0*sinPhi0*cosTheta
	newZ := -sinTheta0*(sinTheta*cosPhi) + cosTheta0*cosTheta

	return vector.Vec3{X: newX, Y: newY, Z: newZ}
}

// UpdateTrajectory implements §4.4 "trajectory update": given new energy and
// scattering-angle cosine, draws a fresh azimuth, rotates the direction,
// recomputes speed, and draws a fresh residual mean-free-path count.
func UpdateTrajectory(dir vector.Vec3, energy, cosTheta float64, seed *rng.State) (newDir vector.Vec3, update TrajectoryUpdate) {
	phi := 2 * math.Pi * seed.Sample()
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	newDir = Rotate3D(dir, sinTheta, cosTheta, sinPhi, cosPhi)
	speed := Speed(energy)
	nmfp := -math.Log(seed.Sample())

	return newDir, TrajectoryUpdate{Direction: newDir, Speed: speed, NumMeanFreePath: nmfp}
}
