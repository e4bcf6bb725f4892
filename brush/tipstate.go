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

// Package brush models the brush tip's footprint and the operations that
// connect a sequence of footprints into stroke outline geometry: the
// convex-hull tip shape, tangent-quality predicates, the bisection
// constrainer, and the turn/startcap/endcap/whole-shape outline point
// generators.
package brush

import "github.com/google/ink-sub009/geom"

// TipState is a single modeled sample of the brush tip's geometry and
// color-shift parameters along a stroke.
type TipState struct {
	Position Point

	Width          float32
	Height         float32
	CornerRounding float32    // in [0, 1]: 0 = sharp corners, 1 = fully rounded
	Rotation       geom.Angle // in (-pi, pi]
	Slant          geom.Angle // in [-pi/2, pi/2]
	Pinch          float32    // in [0, 1]

	TextureAnimationProgressOffset float32 // in [0, 1)
	HueOffset                      float32 // in [0, 1)
	SaturationMultiplier           float32 // in [0, 2]
	LuminosityShift                float32 // in [-1, 1]
	OpacityMultiplier              float32 // in [0, 2]
}

// Point is an alias for geom.Point, kept local so brush package call sites
// read as domain types rather than bare geometry primitives.
type Point = geom.Point

// LerpShapeAttributes returns a TipState whose Position, Width, Height,
// CornerRounding, Rotation, Slant, and Pinch are linearly interpolated
// between a and b; the color attributes are copied from b. Rotation is
// interpolated along the shortest path around the circle. Values of t
// outside [0, 1] extrapolate, which may produce invalid field values (e.g.
// a negative Width) even when a and b are both valid.
func LerpShapeAttributes(a, b TipState, t float32) TipState {
	out := b
	out.Position = a.Position.Lerp(b.Position, t)
	out.Width = lerp32(a.Width, b.Width, t)
	out.Height = lerp32(a.Height, b.Height, t)
	out.CornerRounding = lerp32(a.CornerRounding, b.CornerRounding, t)
	out.Slant = geom.Radians(lerp32(float32(a.Slant), float32(b.Slant), t))
	out.Pinch = lerp32(a.Pinch, b.Pinch, t)

	delta := geom.SignedAngleBetween(geom.UnitVecWithDirection(a.Rotation), geom.UnitVecWithDirection(b.Rotation))
	out.Rotation = a.Rotation.Add(delta.Mul(t)).NormalizedAboutZero()
	return out
}

func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}
