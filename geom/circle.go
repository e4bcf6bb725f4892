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

// Circle is a circle with a non-negative, possibly infinite, radius.
// Permits the degenerate case of a zero radius.
type Circle struct {
	center Point
	radius float32
}

// NewCircle constructs a circle with the given center and radius. Panics if
// radius is negative or NaN.
func NewCircle(center Point, radius float32) Circle {
	if !(radius >= 0) { // also catches NaN
		panic("geom: circle radius must be non-negative and not NaN")
	}
	return Circle{center: center, radius: radius}
}

// Center returns the circle's center.
func (c Circle) Center() Point { return c.center }

// Radius returns the circle's radius. Always non-negative and not NaN, but
// may be infinite.
func (c Circle) Radius() float32 { return c.radius }

// PointOn returns the point on the circle at the given angle.
func (c Circle) PointOn(angle Angle) Point {
	return c.center.Add(FromDirectionAndMagnitude(angle, c.radius))
}

// Contains reports whether c entirely contains other, including the case
// where the boundaries touch.
func (c Circle) Contains(other Circle) bool {
	return Distance(other.center, c.center)+other.radius <= c.radius
}

// TangentAngles is a pair of external tangent angles, labeled by viewing the
// xy-plane from the positive z-axis in the direction of travel from one
// circle's center to the other's.
type TangentAngles struct {
	Left, Right Angle
}

// ExternalTangents returns the pair of angles, measured at c, at which the
// external tangents between c and other meet. The second return value is
// false if the tangents are undefined: the circles share a center, or the
// absolute difference in radii is at least the distance between centers
// (one circle contains the other, they coincide, or they touch at exactly
// one point).
func (c Circle) ExternalTangents(other Circle) (TangentAngles, bool) {
	offset := other.center.Sub(c.center)
	distance := offset.Magnitude()
	deltaRadius := c.radius - other.radius

	if c.center == other.center || absF32(deltaRadius) >= distance {
		return TangentAngles{}, false
	}

	offsetAngle := Acos(deltaRadius / distance)
	refAngle := offset.Direction()
	return TangentAngles{
		Left:  refAngle.Add(offsetAngle).NormalizedAboutZero(),
		Right: refAngle.Sub(offsetAngle).NormalizedAboutZero(),
	}, true
}

// GuaranteedRightTangentAngle returns the angle, at c, of the external
// tangent on the "right" side relative to travel from c toward other. The
// caller must already know that neither circle contains the other;
// violating this precondition is a contract violation.
func (c Circle) GuaranteedRightTangentAngle(other Circle) Angle {
	if c.Contains(other) || other.Contains(c) {
		panic("geom: GuaranteedRightTangentAngle requires neither circle to contain the other")
	}
	offset := other.center.Sub(c.center)
	return offset.Direction().Sub(Acos((c.radius - other.radius) / offset.Magnitude())).NormalizedAboutZero()
}

// ArcAngleForChordHeight returns the central angle, in [0, 2π), whose chord
// sagitta equals chordHeight. A non-positive chordHeight returns zero. A
// chord height greater than the radius yields an arc angle greater than π.
func (c Circle) ArcAngleForChordHeight(chordHeight float32) Angle {
	if c.radius == 0 {
		return 0
	}
	return Acos(clampF32(1-chordHeight/c.radius, -1, 1)).Mul(2)
}

// maxArcPoints bounds the number of points AppendArcToPolyline will ever
// generate for a single arc.
const maxArcPoints = 1 << 15

// AppendArcToPolyline appends points approximating the arc of c starting at
// startAngle and spanning arcAngle (signed; negative travels clockwise) to
// polyline, such that no chord's sagitta exceeds maxChordHeight. It always
// emits at least the start and end point, even when arcAngle is zero or
// NaN. Panics if maxChordHeight is not positive (a contract violation).
func (c Circle) AppendArcToPolyline(startAngle, arcAngle Angle, maxChordHeight float32, polyline []Point) []Point {
	if !(maxChordHeight > 0) {
		panic("geom: AppendArcToPolyline requires a positive max chord height")
	}

	if c.radius == 0 {
		return append(polyline, c.center, c.center)
	}

	maxStepAngle := c.ArcAngleForChordHeight(maxChordHeight)
	unclampedSteps := math.Ceil(float64(arcAngle.Abs().Ratio(maxStepAngle)))

	var steps int
	if math.IsNaN(unclampedSteps) {
		steps = 1
	} else {
		steps = int(clampF32(float32(unclampedSteps), 1, maxArcPoints))
	}
	stepAngle := arcAngle.Div(float32(steps))

	polyline = append(polyline, c.PointOn(startAngle))
	for i := 1; i < steps; i++ {
		polyline = append(polyline, c.PointOn(startAngle.Add(stepAngle.Mul(float32(i)))))
	}
	polyline = append(polyline, c.PointOn(startAngle.Add(arcAngle)))
	return polyline
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
