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

package brush

import (
	"math"

	"github.com/google/ink-sub009/geom"
	"seehuhn.de/go/geom/matrix"
)

// TipShape is the immutable, analytic convex-hull footprint of a TipState:
// 1 to 4 perimeter circles stored counter-clockwise around a center.
type TipShape struct {
	center  geom.Point
	circles []geom.Circle
}

// Center returns the shape's center, equal to the position of the TipState
// it was constructed from.
func (s TipShape) Center() geom.Point { return s.center }

// PerimeterCircles returns the 1 to 4 circles making up the shape's
// perimeter, in counter-clockwise order.
func (s TipShape) PerimeterCircles() []geom.Circle { return s.circles }

// NextCcw returns the index of the next perimeter circle counter-clockwise
// from index i.
func (s TipShape) NextCcw(i int) int { return (i + 1) % len(s.circles) }

// NextCw returns the index of the next perimeter circle clockwise from
// index i.
func (s TipShape) NextCw(i int) int { return (i - 1 + len(s.circles)) % len(s.circles) }

// cornerLayout composes the affine transform (slant shear, then rotation;
// pinch is already applied to the corner positions) used to place each
// rounded-rectangle corner circle's center.
func cornerLayout(slant, rotation geom.Angle) matrix.Matrix {
	shearFactor := float64(geom.Sin(slant) / geom.Cos(slant))
	if math.IsInf(shearFactor, 0) || math.IsNaN(shearFactor) {
		shearFactor = 0
	}
	sinR, cosR := math.Sincos(float64(rotation))
	return matrix.Matrix{
		cosR, sinR,
		cosR*shearFactor - sinR, sinR*shearFactor + cosR,
		0, 0,
	}
}

func applyLinear(m matrix.Matrix, v geom.Vec) geom.Vec {
	return geom.Vec{
		X: float32(m[0]*float64(v.X) + m[2]*float64(v.Y)),
		Y: float32(m[1]*float64(v.X) + m[3]*float64(v.Y)),
	}
}

// NewTipShape builds the tip shape for state, using eps as the minimum
// non-zero radius and minimum circle separation. Panics if
// width or height is negative, or corner_rounding/pinch lies outside
// [0, 1].
func NewTipShape(state TipState, eps float32) TipShape {
	if !(state.Width >= 0) || !(state.Height >= 0) {
		panic("brush: TipState width and height must be non-negative")
	}
	if state.CornerRounding < 0 || state.CornerRounding > 1 {
		panic("brush: TipState corner_rounding must be in [0, 1]")
	}
	if state.Pinch < 0 || state.Pinch > 1 {
		panic("brush: TipState pinch must be in [0, 1]")
	}

	// A NaN or infinite position cannot produce a meaningful hull; collapse
	// to a single zero-radius circle there and let downstream consumers see
	// the non-finite coordinates.
	px, py := float64(state.Position.X), float64(state.Position.Y)
	if math.IsNaN(px) || math.IsInf(px, 0) || math.IsNaN(py) || math.IsInf(py, 0) {
		return TipShape{center: state.Position, circles: []geom.Circle{geom.NewCircle(state.Position, 0)}}
	}

	hw := state.Width / 2
	hh := state.Height / 2
	r := 0.5 * minF32(state.Width, state.Height) * state.CornerRounding

	backHalfWidth := hw * (1 - state.Pinch)

	// Local corner-circle centers, inset by r from the true rectangle
	// corner along both axes, in CCW order starting at front-right.
	type corner struct {
		local  geom.Vec
		radius float32
	}
	frontRight := corner{geom.Vec{X: hw - r, Y: hh - r}, r}
	frontLeft := corner{geom.Vec{X: -(hw - r), Y: hh - r}, r}

	var backCorners []corner
	if backHalfWidth < eps {
		// The two back corners have collapsed into one, at the back-center.
		backCorners = []corner{{geom.Vec{X: 0, Y: -(hh - r)}, r}}
	} else {
		backCorners = []corner{
			{geom.Vec{X: -(backHalfWidth - r), Y: -(hh - r)}, r},
			{geom.Vec{X: backHalfWidth - r, Y: -(hh - r)}, r},
		}
	}

	corners := make([]corner, 0, 4)
	corners = append(corners, frontRight, frontLeft)
	corners = append(corners, backCorners...)

	transform := cornerLayout(state.Slant, state.Rotation)
	circles := make([]geom.Circle, 0, len(corners))
	for _, c := range corners {
		center := state.Position.Add(applyLinear(transform, c.local))
		radius := c.radius
		if radius < eps {
			radius = 0
		}
		circles = append(circles, geom.NewCircle(center, radius))
	}

	return TipShape{center: state.Position, circles: mergeCloseCircles(circles, eps)}
}

// mergeCloseCircles collapses adjacent circles (in cyclic order) whose
// centers are within eps of each other into a single circle at their
// midpoint, keeping the larger radius.
func mergeCloseCircles(circles []geom.Circle, eps float32) []geom.Circle {
	if len(circles) <= 1 {
		return circles
	}
	merged := true
	for merged {
		merged = false
		n := len(circles)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			if i == j {
				continue
			}
			a, b := circles[i], circles[j]
			if geom.Distance(a.Center(), b.Center()) >= eps {
				continue
			}
			mid := geom.Point{
				X: (a.Center().X + b.Center().X) / 2,
				Y: (a.Center().Y + b.Center().Y) / 2,
			}
			radius := a.Radius()
			if b.Radius() > radius {
				radius = b.Radius()
			}
			combined := geom.NewCircle(mid, radius)
			next := make([]geom.Circle, 0, n-1)
			for k := 0; k < n; k++ {
				switch {
				case k == i:
					next = append(next, combined)
				case k == j:
					// dropped
				default:
					next = append(next, circles[k])
				}
			}
			circles = next
			merged = true
			break
		}
	}
	return circles
}

// Contains reports whether every perimeter circle of other is contained in
// some single perimeter circle of s. This is a sufficient, not exact, test
// for hull-in-hull containment, but it is the test the tangent-quality
// predicates in this package actually need.
func (s TipShape) Contains(other TipShape) bool {
	for _, oc := range other.circles {
		if !s.containsCircle(oc) {
			return false
		}
	}
	return true
}

func (s TipShape) containsCircle(c geom.Circle) bool {
	for _, sc := range s.circles {
		if sc.Contains(c) {
			return true
		}
	}
	return false
}

// Bounds returns the minimum axis-aligned bounding rectangle of the shape.
func (s TipShape) Bounds() geom.Rect {
	first := s.circles[0]
	r := geom.RectFromPoints(
		first.Center().Add(geom.Vec{X: -first.Radius(), Y: -first.Radius()}),
		first.Center().Add(geom.Vec{X: first.Radius(), Y: first.Radius()}),
	)
	for _, c := range s.circles[1:] {
		r = r.Union(c.Center().Add(geom.Vec{X: -c.Radius(), Y: -c.Radius()}))
		r = r.Union(c.Center().Add(geom.Vec{X: c.Radius(), Y: c.Radius()}))
	}
	return r
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
