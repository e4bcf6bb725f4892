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

// Rect is an axis-aligned rectangle, stored by its corners.
type Rect struct {
	Min, Max Point
}

// RectFromPoints returns the smallest Rect containing both points.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		Min: Point{X: min32(a.X, b.X), Y: min32(a.Y, b.Y)},
		Max: Point{X: max32(a.X, b.X), Y: max32(a.Y, b.Y)},
	}
}

// Union returns the smallest Rect containing both r and p.
func (r Rect) Union(p Point) Rect {
	return Rect{
		Min: Point{X: min32(r.Min.X, p.X), Y: min32(r.Min.Y, p.Y)},
		Max: Point{X: max32(r.Max.X, p.X), Y: max32(r.Max.Y, p.Y)},
	}
}

// UnionRect returns the smallest Rect containing both r and s.
func (r Rect) UnionRect(s Rect) Rect {
	return r.Union(s.Min).Union(s.Max)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Triangle is three points, in no particular stored order.
type Triangle struct {
	A, B, C Point
}

// SignedArea returns the signed area of the triangle; positive when A, B, C
// are wound counter-clockwise.
func (t Triangle) SignedArea() float32 {
	return Determinant(t.B.Sub(t.A), t.C.Sub(t.A)) / 2
}

// IsDegenerate reports whether the triangle's vertices are collinear
// (including the case where two or more vertices coincide).
func (t Triangle) IsDegenerate() bool {
	return t.SignedArea() == 0
}

// Quad is a parallelogram defined by its center, dimensions, rotation, and
// shear.
type Quad struct {
	Center        Point
	Width, Height float32
	Rotation      Angle
	ShearFactor   float32
}

// Corners returns the four corners of the quad in counter-clockwise order,
// starting from the corner at (-Width/2, -Height/2) in the quad's local
// (unrotated, unsheared) frame.
func (q Quad) Corners() [4]Point {
	hw, hh := q.Width/2, q.Height/2
	local := [4]Vec{
		{-hw + q.ShearFactor*(-hh), -hh},
		{hw + q.ShearFactor*(-hh), -hh},
		{hw + q.ShearFactor*hh, hh},
		{-hw + q.ShearFactor*hh, hh},
	}
	s, c := sinCos(q.Rotation)
	var out [4]Point
	for i, v := range local {
		rx := v.X*c - v.Y*s
		ry := v.X*s + v.Y*c
		out[i] = q.Center.Add(Vec{rx, ry})
	}
	return out
}
