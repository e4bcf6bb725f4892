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

import "testing"

func TestSegmentLerpAndMidpoint(t *testing.T) {
	s := Segment{Start: Point{0, 0}, End: Point{10, 0}}
	if mid := s.Midpoint(); mid != (Point{5, 0}) {
		t.Errorf("Midpoint() = %v, want (5, 0)", mid)
	}
	if p := s.Lerp(2); p != (Point{20, 0}) {
		t.Errorf("Lerp(2) = %v, want (20, 0) (extrapolation)", p)
	}
}

func TestSegmentProjectUndefined(t *testing.T) {
	s := Segment{Start: Point{1, 1}, End: Point{1, 1}}
	if _, ok := s.Project(Point{0, 0}); ok {
		t.Errorf("Project on zero-length segment should be undefined")
	}
}

func TestSegmentNotEqualReversed(t *testing.T) {
	a := Segment{Start: Point{0, 0}, End: Point{1, 0}}
	b := Segment{Start: Point{1, 0}, End: Point{0, 0}}
	if a == b {
		t.Errorf("segment should not equal its reverse")
	}
}

func TestDistanceToSegmentSymmetricEndpoints(t *testing.T) {
	s := Segment{Start: Point{0, 0}, End: Point{10, 0}}
	if d := DistanceToSegment(Point{5, 3}, s); absF32(d-3) > 1e-5 {
		t.Errorf("DistanceToSegment = %v, want 3", d)
	}
	if d := DistanceToSegment(Point{-5, 0}, s); absF32(d-5) > 1e-5 {
		t.Errorf("DistanceToSegment past start = %v, want 5", d)
	}
}
