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

import (
	"math"
	"testing"
)

func TestArcToPolylineStaysOnCircle(t *testing.T) {
	c := NewCircle(Point{1, 2}, 5)
	for _, arc := range []Angle{0.1, 1, HalfTurn, FullTurn, -2} {
		pts := c.AppendArcToPolyline(0, arc, 0.05, nil)
		if len(pts) < 2 {
			t.Fatalf("arc %v: got %d points, want at least 2", arc, len(pts))
		}
		for _, p := range pts {
			if d := absF32(Distance(p, c.Center()) - c.Radius()); d > 1e-3 {
				t.Errorf("arc %v: point %v is %v from circle, want ~0", arc, p, d)
			}
		}
	}
}

func TestArcToPolylineChordHeightBound(t *testing.T) {
	c := NewCircle(Point{0, 0}, 10)
	const maxChordHeight = 0.2
	pts := c.AppendArcToPolyline(0, HalfTurn, maxChordHeight, nil)
	for i := 0; i+1 < len(pts); i++ {
		seg := Segment{Start: pts[i], End: pts[i+1]}
		sagitta := chordSagitta(c, seg)
		if sagitta > maxChordHeight+1e-4 {
			t.Errorf("segment %d has sagitta %v, want <= %v", i, sagitta, maxChordHeight)
		}
	}
}

// chordSagitta computes the sagitta of the arc of c subtended by seg,
// assuming both endpoints of seg lie on c.
func chordSagitta(c Circle, seg Segment) float32 {
	mid := seg.Midpoint()
	return c.Radius() - Distance(mid, c.Center())
}

func TestArcToPolylineNaNArcAngle(t *testing.T) {
	c := NewCircle(Point{0, 0}, 1)
	nan := Angle(float32(math.NaN()))
	pts := c.AppendArcToPolyline(0, nan, 0.1, nil)
	if len(pts) != 2 {
		t.Errorf("NaN arc angle produced %d points, want exactly 2", len(pts))
	}
}

func TestArcToPolylineZeroRadius(t *testing.T) {
	c := NewCircle(Point{3, 4}, 0)
	pts := c.AppendArcToPolyline(0, 1, 0.1, nil)
	if len(pts) != 2 || pts[0] != pts[1] || pts[0] != (Point{3, 4}) {
		t.Errorf("zero radius arc = %v, want center repeated twice", pts)
	}
}

func TestExternalTangentsUndefinedCases(t *testing.T) {
	a := NewCircle(Point{0, 0}, 1)
	if _, ok := a.ExternalTangents(a); ok {
		t.Errorf("coincident circles should have undefined tangents")
	}
	big := NewCircle(Point{0, 0}, 5)
	if _, ok := a.ExternalTangents(big); ok {
		t.Errorf("circle containing the other should have undefined tangents")
	}
}

func TestExternalTangentsSeparated(t *testing.T) {
	a := NewCircle(Point{0, 0}, 1)
	b := NewCircle(Point{10, 0}, 1)
	ta, ok := a.ExternalTangents(b)
	if !ok {
		t.Fatalf("expected defined tangents")
	}
	if absF32(float32(ta.Left)-HalfTurn/2) > 1e-4 {
		t.Errorf("left tangent = %v, want pi/2", ta.Left)
	}
	if absF32(float32(ta.Right)+HalfTurn/2) > 1e-4 {
		t.Errorf("right tangent = %v, want -pi/2", ta.Right)
	}
}

func TestContains(t *testing.T) {
	outer := NewCircle(Point{0, 0}, 10)
	inner := NewCircle(Point{1, 0}, 2)
	if !outer.Contains(inner) {
		t.Errorf("outer should contain inner")
	}
	if outer.Contains(NewCircle(Point{9, 0}, 3)) {
		t.Errorf("outer should not contain a circle poking outside")
	}
	if !outer.Contains(outer) {
		t.Errorf("a circle should contain itself")
	}
}
