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

// DistanceToSegment returns the shortest distance from p to the segment s
// (not the infinite line through it).
//
// General point/rect/quad distance and intersection predicates beyond this
// are assumed to be supplied by the surrounding engine
// and are not reimplemented here; this one is needed
// directly by the outline simplification pass.
func DistanceToSegment(p Point, s Segment) float32 {
	t, ok := s.Project(p)
	if !ok {
		return Distance(p, s.Start)
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Distance(p, s.Lerp(t))
}
