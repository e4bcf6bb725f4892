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

package extrude

import (
	"testing"

	"github.com/google/ink-sub009/brush"
	"github.com/google/ink-sub009/geom"
	"github.com/google/ink-sub009/mesh"
)

func straightStates(n int) []brush.TipState {
	out := make([]brush.TipState, n)
	for i := range out {
		out[i] = brush.TipState{
			Position: geom.Point{X: float32(i), Y: 0},
			Width:    1,
			Height:   1,
		}
	}
	return out
}

func brushTip(p geom.Point) brush.TipState {
	return brush.TipState{Position: p, Width: 1, Height: 1}
}

func newExtruder(eps float32) (*Extruder, *mesh.View) {
	var view mesh.View
	var e Extruder
	e.StartStroke(eps, SurfaceUVUnitDistance, &view)
	return &e, &view
}

func allTrianglesCCWOrDegenerate(t *testing.T, view *mesh.View) {
	t.Helper()
	for i := uint32(0); i < view.TriangleCount(); i++ {
		tri := view.TriangleGeometry(i)
		if tri.IsDegenerate() {
			continue
		}
		if tri.SignedArea() < 0 {
			t.Errorf("triangle %d is clockwise: %+v", i, tri)
		}
	}
}

func TestStraightStrokeProducesCCWMesh(t *testing.T) {
	e, view := newExtruder(0.01)
	states := straightStates(6)
	update := e.ExtendStroke(states, nil)

	if view.VertexCount() == 0 {
		t.Fatalf("no vertices extruded for a straight stroke")
	}
	if view.TriangleCount() == 0 {
		t.Fatalf("no triangles extruded for a straight stroke")
	}
	allTrianglesCCWOrDegenerate(t, view)

	bounds := e.GetBounds()
	if bounds.IsEmpty() {
		t.Fatalf("GetBounds() returned an empty envelope for a non-empty stroke")
	}
	rect, ok := bounds.Rect()
	if !ok {
		t.Fatalf("GetBounds().Rect() reported an invalid rect for a non-empty bounds")
	}
	if rect.URx <= rect.LLx || rect.URy <= rect.LLy {
		t.Errorf("GetBounds() rect is degenerate: %+v", rect)
	}

	if update.Region.IsEmpty() {
		t.Errorf("StrokeShapeUpdate.Region is empty after the first ExtendStroke call")
	}
	if update.FirstVertexOffset == nil || *update.FirstVertexOffset != 0 {
		t.Errorf("FirstVertexOffset = %v, want pointer to 0", update.FirstVertexOffset)
	}
}

func TestSingleSampleProducesDot(t *testing.T) {
	e, view := newExtruder(0.01)
	dot := brush.TipState{Width: 1, Height: 1, CornerRounding: 1}
	e.ExtendStroke([]brush.TipState{dot}, nil)

	if view.VertexCount() < 3 {
		t.Fatalf("a single round sample produced %d vertices, want a sampled disc", view.VertexCount())
	}
	if view.TriangleCount() == 0 {
		t.Fatalf("a single round sample produced no triangles")
	}
	allTrianglesCCWOrDegenerate(t, view)
	if len(e.GetOutlines()) != 1 {
		t.Errorf("a single sample produced %d outlines, want 1", len(e.GetOutlines()))
	}
	// Every dot vertex lies on the tip circle of radius 0.5.
	for i := uint32(0); i < view.VertexCount(); i++ {
		d := geom.Distance(view.Positions[i], geom.Point{X: 0, Y: 0})
		if d < 0.49 || d > 0.51 {
			t.Errorf("dot vertex %d at distance %v from center, want ~0.5", i, d)
		}
	}
}

func TestDegenerateStateClosesPartition(t *testing.T) {
	e, _ := newExtruder(0.01)
	states := straightStates(4)
	degenerate := brush.TipState{Position: geom.Point{X: 10, Y: 0}, Width: 0, Height: 0}
	e.ExtendStroke(append(states, degenerate), nil)

	outlines := e.GetOutlines()
	if len(outlines) == 0 {
		t.Fatalf("expected at least one outline after a degenerate break")
	}
	first := outlines[0]
	if len(first.LeftIndices) == 0 && len(first.RightIndices) == 0 {
		t.Errorf("first outline partition has no committed indices")
	}
}

func TestVolatileReplayMatchesSingleCall(t *testing.T) {
	all := straightStates(3)

	eOne, viewOne := newExtruder(0.01)
	eOne.ExtendStroke(all, nil)

	eTwo, viewTwo := newExtruder(0.01)
	eTwo.ExtendStroke(all[:2], all[2:])
	eTwo.ExtendStroke(all[2:], nil)

	if viewOne.VertexCount() != viewTwo.VertexCount() {
		t.Errorf("vertex count diverged between single-call (%d) and split-call (%d) replay",
			viewOne.VertexCount(), viewTwo.VertexCount())
	}
	if viewOne.TriangleCount() != viewTwo.TriangleCount() {
		t.Errorf("triangle count diverged between single-call (%d) and split-call (%d) replay",
			viewOne.TriangleCount(), viewTwo.TriangleCount())
	}
	for i := uint32(0); i < viewOne.VertexCount() && i < viewTwo.VertexCount(); i++ {
		if viewOne.Positions[i] != viewTwo.Positions[i] {
			t.Errorf("vertex %d diverged: %+v vs %+v", i, viewOne.Positions[i], viewTwo.Positions[i])
		}
	}
}

func TestSavePointRevertRestoresMeshState(t *testing.T) {
	e, view := newExtruder(0.01)
	e.ExtendStroke(straightStates(3), nil)

	e.SetSavePoint()
	vertsBefore := view.VertexCount()
	trisBefore := view.TriangleCount()
	outlinesBefore := len(e.GetOutlines())

	e.extrude(brush.TipState{Position: geom.Point{X: 50, Y: 50}, Width: 1, Height: 1}, true, true)

	e.RevertToSavePoint()
	if view.VertexCount() != vertsBefore {
		t.Errorf("VertexCount() after revert = %d, want %d", view.VertexCount(), vertsBefore)
	}
	if view.TriangleCount() != trisBefore {
		t.Errorf("TriangleCount() after revert = %d, want %d", view.TriangleCount(), trisBefore)
	}
	if len(e.GetOutlines()) != outlinesBefore {
		t.Errorf("len(GetOutlines()) after revert = %d, want %d", len(e.GetOutlines()), outlinesBefore)
	}
}

func TestSharpUTurnResolvesSelfIntersection(t *testing.T) {
	e, view := newExtruder(0.01)
	states := []brush.TipState{
		{Position: geom.Point{X: 0, Y: 0}, Width: 2, Height: 2},
		{Position: geom.Point{X: 5, Y: 0}, Width: 2, Height: 2},
		{Position: geom.Point{X: 5.2, Y: 0.05}, Width: 2, Height: 2},
		{Position: geom.Point{X: 0, Y: 0.1}, Width: 2, Height: 2},
	}
	e.ExtendStroke(states, nil)
	if view.TriangleCount() == 0 {
		t.Fatalf("no triangles produced for a sharp U-turn stroke")
	}
}
