// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vector implements the small 3-component vector type shared by the
// transport core's geometry, kinematics and tally code.
package vector

import "math"

// Vec3 holds a 3-D Cartesian vector or point (x,y,z); units are centimeters
// for positions and dimensionless for direction cosines.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns o+p.
func (o Vec3) Add(p Vec3) Vec3 {
	return Vec3{o.X + p.X, o.Y + p.Y, o.Z + p.Z}
}

// Sub returns o-p.
func (o Vec3) Sub(p Vec3) Vec3 {
	return Vec3{o.X - p.X, o.Y - p.Y, o.Z - p.Z}
}

// Scale returns o*s.
func (o Vec3) Scale(s float64) Vec3 {
	return Vec3{o.X * s, o.Y * s, o.Z * s}
}

// Dot returns the dot product o.p.
func (o Vec3) Dot(p Vec3) float64 {
	return o.X*p.X + o.Y*p.Y + o.Z*p.Z
}

// Cross returns the cross product o×p.
func (o Vec3) Cross(p Vec3) Vec3 {
	return Vec3{
		o.Y*p.Z - o.Z*p.Y,
		o.Z*p.X - o.X*p.Z,
		o.X*p.Y - o.Y*p.X,
	}
}

// Length returns the Euclidean norm of o.
func (o Vec3) Length() float64 {
	return math.Sqrt(o.Dot(o))
}

// Distance returns the Euclidean distance between o and p.
func (o Vec3) Distance(p Vec3) float64 {
	return o.Sub(p).Length()
}

// AxisValue returns the component of o along the given axis (0=x, 1=y, 2=z).
func (o Vec3) AxisValue(axis int) float64 {
	switch axis {
	case 0:
		return o.X
	case 1:
		return o.Y
	default:
		return o.Z
	}
}
