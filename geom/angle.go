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

// Package geom provides the small-value geometric primitives shared by the
// brush tip shape model and the stroke extruder: angles, 2-vectors, points,
// segments, rectangles, quads, triangles, circles, and bounding envelopes.
package geom

import "math"

// FullTurn is one full rotation, in radians.
const FullTurn = 2 * math.Pi

// HalfTurn is half a rotation, in radians.
const HalfTurn = math.Pi

// Angle is a signed angle in radians. A positive value represents rotation
// from the positive x-axis toward the positive y-axis.
type Angle float32

// Radians constructs an Angle from a value in radians.
func Radians(r float32) Angle { return Angle(r) }

// Degrees constructs an Angle from a value in degrees.
func Degrees(d float32) Angle { return Angle(d * math.Pi / 180) }

// Radians returns the angle's value in radians.
func (a Angle) Radians() float32 { return float32(a) }

// Degrees returns the angle's value in degrees.
func (a Angle) Degrees() float32 { return float32(a) * 180 / math.Pi }

// Normalized returns the angle equivalent to a in the interval [0, 2π).
func (a Angle) Normalized() Angle {
	r := math.Mod(float64(a), FullTurn)
	if r < 0 {
		r += FullTurn
	}
	return Angle(r)
}

// NormalizedAboutZero returns the angle equivalent to a in the interval
// (-π, π].
func (a Angle) NormalizedAboutZero() Angle {
	n := a.Normalized()
	if n > HalfTurn {
		n -= FullTurn
	}
	return n
}

// Add returns a + b.
func (a Angle) Add(b Angle) Angle { return a + b }

// Sub returns a - b.
func (a Angle) Sub(b Angle) Angle { return a - b }

// Mul returns a scaled by s.
func (a Angle) Mul(s float32) Angle { return Angle(float32(a) * s) }

// Div returns a divided by scalar s.
func (a Angle) Div(s float32) Angle { return Angle(float32(a) / s) }

// Ratio returns a / b as a unitless ratio.
func (a Angle) Ratio(b Angle) float32 { return float32(a) / float32(b) }

// Abs returns the absolute value of a.
func (a Angle) Abs() Angle {
	if a < 0 {
		return -a
	}
	return a
}

// IsNaN reports whether a is NaN.
func (a Angle) IsNaN() bool { return math.IsNaN(float64(a)) }

func sinCos(a Angle) (sin, cos float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// Sin returns the sine of a.
func Sin(a Angle) float32 { s, _ := sinCos(a); return s }

// Cos returns the cosine of a.
func Cos(a Angle) float32 { _, c := sinCos(a); return c }

// Asin returns the arcsine of v as an Angle.
func Asin(v float32) Angle { return Angle(math.Asin(float64(v))) }

// Acos returns the arccosine of v as an Angle.
func Acos(v float32) Angle { return Angle(math.Acos(float64(v))) }

// Atan2 returns the angle between the positive x-axis and the vector (x, y).
func Atan2(y, x float32) Angle { return Angle(math.Atan2(float64(y), float64(x))) }

// clampF32 clamps v to [lo, hi].
func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
