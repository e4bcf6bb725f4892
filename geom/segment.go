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

// Segment is a directed line segment between two points.
type Segment struct {
	Start, End Point
}

// Vector returns the vector from Start to End.
func (s Segment) Vector() Vec { return s.End.Sub(s.Start) }

// Length returns the length of the segment.
func (s Segment) Length() float32 { return s.Vector().Magnitude() }

// Lerp returns the point at ratio t along the segment, measured from Start.
// Values of t outside [0, 1] extrapolate along the infinite line through the
// segment.
func (s Segment) Lerp(t float32) Point { return s.Start.Lerp(s.End, t) }

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() Point { return s.Lerp(0.5) }

// Project returns the ratio along the infinite line coincident with s at
// which it is closest to p. The second return value is false if Start and
// End are equal or close enough that the squared length underflows to zero,
// in which case the projection is undefined.
func (s Segment) Project(p Point) (float32, bool) {
	v := s.Vector()
	denom := v.MagnitudeSquared()
	if denom <= 0 {
		return 0, false
	}
	return p.Sub(s.Start).Dot(v) / denom, true
}
