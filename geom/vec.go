// seehuhn.de/go/raster - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package geom

import "math"

// Vec is a 2-dimensional vector representing an offset in space. See Point
// for a location in space.
type Vec struct {
	X, Y float32
}

// FromDirectionAndMagnitude constructs a vector with the given direction and
// magnitude.
func FromDirectionAndMagnitude(direction Angle, magnitude float32) Vec {
	s, c := sinCos(direction)
	return Vec{X: magnitude * c, Y: magnitude * s}
}

// UnitVecWithDirection constructs a unit-length vector with the given
// direction.
func UnitVecWithDirection(direction Angle) Vec {
	s, c := sinCos(direction)
	return Vec{X: c, Y: s}
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y} }

// Neg returns -v.
func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y} }

// Mul returns v scaled by s.
func (v Vec) Mul(s float32) Vec { return Vec{v.X * s, v.Y * s} }

// Div returns v divided by the nonzero scalar s.
func (v Vec) Div(s float32) Vec { return Vec{v.X / s, v.Y / s} }

// MagnitudeSquared returns the squared length of v. The two products are
// added directly rather than through a fused multiply-add, so the result is
// identical across instruction sets that differ in FMA support.
func (v Vec) MagnitudeSquared() float32 {
	x2 := v.X * v.X
	y2 := v.Y * v.Y
	return x2 + y2
}

// Magnitude returns the length of v.
func (v Vec) Magnitude() float32 { return float32(math.Hypot(float64(v.X), float64(v.Y))) }

// Direction returns the angle between the positive x-axis and v. If either
// component is NaN, the result is a NaN angle.
func (v Vec) Direction() Angle { return Atan2(v.Y, v.X) }

// Orthogonal returns v rotated by +90 degrees.
func (v Vec) Orthogonal() Vec { return Vec{-v.Y, v.X} }

// AsUnit returns a vector with the same direction as v but with magnitude 1.
//
// NaN components produce a NaN unit vector. Infinite components produce a
// unit vector in the atan2 direction of those infinities. The zero vector
// produces the unit x-axis, with the sign of each zero preserved in the
// result (matching atan2's behavior for the zero vector). Finite nonzero
// vectors are pre-scaled by 1/2 (normal case) or 2^20 (subnormal case) before
// dividing by magnitude, to avoid overflow and underflow respectively.
func (v Vec) AsUnit() Vec {
	if math.IsNaN(float64(v.X)) || math.IsNaN(float64(v.Y)) {
		nan := float32(math.NaN())
		return Vec{nan, nan}
	}

	xInf := math.IsInf(float64(v.X), 0)
	yInf := math.IsInf(float64(v.Y), 0)
	if xInf && yInf {
		const halfSqrt2 = float32(0.5 * math.Sqrt2)
		return Vec{X: copysignF32(halfSqrt2, v.X), Y: copysignF32(halfSqrt2, v.Y)}
	}
	if xInf {
		return Vec{X: copysignF32(1, v.X), Y: copysignF32(0, v.Y)}
	}
	if yInf {
		return Vec{X: copysignF32(0, v.X), Y: copysignF32(1, v.Y)}
	}

	if v.X == 0 && v.Y == 0 {
		return Vec{X: copysignF32(1, v.X), Y: copysignF32(0, v.Y)}
	}

	var factor float32
	if isNormalF32(v.X) || isNormalF32(v.Y) {
		factor = 0.5
	} else {
		factor = 1 << 20
	}
	scaled := v.Mul(factor)
	return scaled.Div(scaled.Magnitude())
}

func copysignF32(mag, sign float32) float32 {
	return float32(math.Copysign(float64(mag), float64(sign)))
}

func isNormalF32(f float32) bool {
	if f == 0 {
		return false
	}
	af := math.Abs(float64(f))
	return af >= 0x1p-126 // smallest normal float32
}

// Dot returns the dot product of v and w.
func (v Vec) Dot(w Vec) float32 { return v.X*w.X + v.Y*w.Y }

// Determinant returns the determinant (z-component of the 3D cross product)
// of a and b.
func Determinant(a, b Vec) float32 { return a.X*b.Y - a.Y*b.X }

// AbsoluteAngleBetween returns the absolute angle between a and b, in
// [0, π]. NaN components in either vector produce a NaN angle.
func AbsoluteAngleBetween(a, b Vec) Angle {
	return Acos(clampF32(a.AsUnit().Dot(b.AsUnit()), -1, 1))
}

// SignedAngleBetween returns the signed angle from a to b, in (-π, π]. NaN
// components in either vector produce a NaN angle. The result is exactly
// HalfTurn (never -HalfTurn) when the absolute angle between the vectors is
// a half turn, regardless of the sign of the determinant.
func SignedAngleBetween(a, b Vec) Angle {
	aUnit := a.AsUnit()
	bUnit := b.AsUnit()
	angle := Acos(clampF32(aUnit.Dot(bUnit), -1, 1))
	if angle == HalfTurn || Determinant(aUnit, bUnit) >= 0 {
		return angle
	}
	return -angle
}
