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
	"testing"

	"github.com/google/ink-sub009/geom"
)

func TestFullyRoundedSquareCollapsesToSingleCircle(t *testing.T) {
	state := TipState{
		Position:       geom.Point{X: 3, Y: -2},
		Width:          1,
		Height:         1,
		CornerRounding: 1,
	}
	shape := NewTipShape(state, 0.01)

	circles := shape.PerimeterCircles()
	if len(circles) != 1 {
		t.Fatalf("got %d perimeter circles, want 1", len(circles))
	}
	c := circles[0]
	if geom.Distance(c.Center(), state.Position) > 1e-6 {
		t.Errorf("circle center = %v, want %v", c.Center(), state.Position)
	}
	if absF32(c.Radius()-0.5) > 1e-6 {
		t.Errorf("circle radius = %v, want 0.5", c.Radius())
	}
}

func TestSharpRectangleHasFourZeroRadiusCorners(t *testing.T) {
	state := TipState{Position: geom.Point{}, Width: 2, Height: 1}
	shape := NewTipShape(state, 0.001)

	circles := shape.PerimeterCircles()
	if len(circles) != 4 {
		t.Fatalf("got %d perimeter circles, want 4", len(circles))
	}
	for i, c := range circles {
		if c.Radius() != 0 {
			t.Errorf("circle %d has radius %v, want 0", i, c.Radius())
		}
	}
}

func TestFullPinchCollapsesBackCorners(t *testing.T) {
	state := TipState{Position: geom.Point{}, Width: 2, Height: 1, Pinch: 1}
	shape := NewTipShape(state, 0.001)

	if n := len(shape.PerimeterCircles()); n != 3 {
		t.Errorf("got %d perimeter circles, want 3 (a triangle)", n)
	}
}

func TestContains(t *testing.T) {
	const eps = 0.001
	big := NewTipShape(TipState{Width: 4, Height: 4, CornerRounding: 1}, eps)
	small := NewTipShape(TipState{Width: 1, Height: 1, CornerRounding: 1}, eps)

	if !big.Contains(small) {
		t.Errorf("big shape should contain the concentric smaller one")
	}
	if small.Contains(big) {
		t.Errorf("small shape should not contain the bigger one")
	}
	if !big.Contains(big) {
		t.Errorf("a shape should contain itself")
	}

	moved := NewTipShape(TipState{Position: geom.Point{X: 10}, Width: 1, Height: 1, CornerRounding: 1}, eps)
	if big.Contains(moved) {
		t.Errorf("big shape should not contain a shape far away")
	}
}

func TestNonFinitePositionCollapsesToPoint(t *testing.T) {
	nan := float32(math.NaN())
	state := TipState{Position: geom.Point{X: nan, Y: nan}, Width: 1, Height: 1, CornerRounding: 1}
	shape := NewTipShape(state, 0.01)

	circles := shape.PerimeterCircles()
	if len(circles) != 1 {
		t.Fatalf("got %d perimeter circles, want 1", len(circles))
	}
	if circles[0].Radius() != 0 {
		t.Errorf("radius = %v, want 0", circles[0].Radius())
	}
	if !math.IsNaN(float64(circles[0].Center().X)) {
		t.Errorf("center X = %v, want NaN", circles[0].Center().X)
	}
}

func TestRotationPlacesFrontCorners(t *testing.T) {
	// A wide sharp rectangle rotated a quarter turn should have its corner
	// circles spread along the y axis instead of the x axis.
	state := TipState{Width: 4, Height: 1, Rotation: geom.Radians(math.Pi / 2)}
	shape := NewTipShape(state, 0.001)

	for i, c := range shape.PerimeterCircles() {
		if absF32(c.Center().X) > 0.51 {
			t.Errorf("circle %d center = %v, want |X| <= 0.5 after rotation", i, c.Center())
		}
		if absF32(c.Center().Y) < 1.4 {
			t.Errorf("circle %d center = %v, want |Y| ~2 after rotation", i, c.Center())
		}
	}
}
