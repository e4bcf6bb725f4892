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

func TestRectFromPointsNormalizesCorners(t *testing.T) {
	r := RectFromPoints(Point{3, -1}, Point{-2, 4})
	want := Rect{Min: Point{-2, -1}, Max: Point{3, 4}}
	if r != want {
		t.Errorf("RectFromPoints = %+v, want %+v", r, want)
	}
}

func TestRectUnion(t *testing.T) {
	r := RectFromPoints(Point{0, 0}, Point{1, 1})
	r = r.Union(Point{5, -3})
	want := Rect{Min: Point{0, -3}, Max: Point{5, 1}}
	if r != want {
		t.Errorf("Union = %+v, want %+v", r, want)
	}
}

func TestTriangleSignedArea(t *testing.T) {
	ccw := Triangle{A: Point{0, 0}, B: Point{2, 0}, C: Point{0, 2}}
	if got := ccw.SignedArea(); got != 2 {
		t.Errorf("SignedArea(ccw) = %v, want 2", got)
	}
	cw := Triangle{A: ccw.A, B: ccw.C, C: ccw.B}
	if got := cw.SignedArea(); got != -2 {
		t.Errorf("SignedArea(cw) = %v, want -2", got)
	}
	degenerate := Triangle{A: Point{0, 0}, B: Point{1, 1}, C: Point{2, 2}}
	if !degenerate.IsDegenerate() {
		t.Errorf("collinear triangle should be degenerate")
	}
}

func TestQuadCornersAreCCW(t *testing.T) {
	q := Quad{Center: Point{1, 1}, Width: 2, Height: 1, Rotation: 0.3, ShearFactor: 0.2}
	c := q.Corners()
	area := float32(0)
	for i := range c {
		j := (i + 1) % len(c)
		area += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	if area <= 0 {
		t.Errorf("quad corners wound clockwise (area %v), want counter-clockwise", area)
	}
}

func TestEnvelopeAddPointAndUnion(t *testing.T) {
	e := EmptyEnvelope()
	if !e.IsEmpty() {
		t.Fatalf("EmptyEnvelope is not empty")
	}
	if got := e.Union(EmptyEnvelope()); !got.IsEmpty() {
		t.Errorf("union of empty envelopes is not empty")
	}

	e = e.AddPoint(Point{1, 2}).AddPoint(Point{-1, 5})
	r, ok := e.Rect()
	if !ok {
		t.Fatalf("non-empty envelope reported no rect")
	}
	if r.LLx != -1 || r.LLy != 2 || r.URx != 1 || r.URy != 5 {
		t.Errorf("envelope rect = %+v, want [-1,2]x[1,5]", r)
	}

	other := EmptyEnvelope().AddPoint(Point{10, 10})
	merged := e.Union(other)
	r, _ = merged.Rect()
	if r.URx != 10 || r.URy != 10 {
		t.Errorf("union rect = %+v, want to extend to (10,10)", r)
	}
}
