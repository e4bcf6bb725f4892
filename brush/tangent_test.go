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

func TestRigidTranslationHasGoodTangents(t *testing.T) {
	const eps = 0.01
	base := TipState{Width: 1.5, Height: 0.8, CornerRounding: 0.4, Rotation: geom.Radians(0.3)}
	baseShape := NewTipShape(base, eps)

	for _, dir := range []float64{0, 0.7, math.Pi / 2, 2.5, math.Pi, -1.3} {
		moved := base
		moved.Position = base.Position.Add(geom.Vec{
			X: float32(math.Cos(dir)),
			Y: float32(math.Sin(dir)),
		})
		movedShape := NewTipShape(moved, eps)
		quality, _ := EvaluateTangentQuality(baseShape, movedShape)
		if quality != GoodTangents {
			t.Errorf("direction %v: quality = %v, want GoodTangents", dir, quality)
		}
	}
}

func TestContainmentClassification(t *testing.T) {
	const eps = 0.001
	big := NewTipShape(TipState{Width: 4, Height: 4, CornerRounding: 1}, eps)
	small := NewTipShape(TipState{Width: 1, Height: 1, CornerRounding: 1}, eps)

	if quality, _ := EvaluateTangentQuality(big, small); quality != NoTangentsFirstContainsSecond {
		t.Errorf("quality(big, small) = %v, want NoTangentsFirstContainsSecond", quality)
	}
	if quality, _ := EvaluateTangentQuality(small, big); quality != NoTangentsSecondContainsFirst {
		t.Errorf("quality(small, big) = %v, want NoTangentsSecondContainsFirst", quality)
	}
}

func TestTwoSingleCircleShapesAreAlwaysGood(t *testing.T) {
	const eps = 0.001
	a := NewTipShape(TipState{Width: 1, Height: 1, CornerRounding: 1}, eps)
	b := NewTipShape(TipState{Position: geom.Point{X: 0.9}, Width: 1.2, Height: 1.2, CornerRounding: 1}, eps)

	quality, indices := EvaluateTangentQuality(a, b)
	if quality != GoodTangents {
		t.Fatalf("quality = %v, want GoodTangents", quality)
	}
	if indices.Left != [2]int{0, 0} || indices.Right != [2]int{0, 0} {
		t.Errorf("indices = %+v, want all zero for single-circle shapes", indices)
	}
}

func TestTangentIndicesKeepAllCirclesInsideTangentLines(t *testing.T) {
	const eps = 0.001
	a := NewTipShape(TipState{Width: 2, Height: 1, CornerRounding: 0.5}, eps)
	b := NewTipShape(TipState{Position: geom.Point{X: 3, Y: 0.4}, Width: 2, Height: 1, CornerRounding: 0.5}, eps)

	indices := ComputeTangentCircleIndices(a, b)
	ac := a.PerimeterCircles()
	bc := b.PerimeterCircles()

	for _, side := range []struct {
		name string
		pair [2]int
		left bool
	}{
		{"left", indices.Left, true},
		{"right", indices.Right, false},
	} {
		ca := ac[side.pair[0]]
		cb := bc[side.pair[1]]
		angles, ok := ca.ExternalTangents(cb)
		if !ok {
			t.Fatalf("%s: tangent between chosen circles is undefined", side.name)
		}
		theta := angles.Right
		if side.left {
			theta = angles.Left
		}
		point := ca.PointOn(theta)
		dir := geom.UnitVecWithDirection(tangentLineDirection(theta))
		if !allOnLeft(ac, side.pair[0], point, dir) || !allOnLeft(bc, side.pair[1], point, dir) {
			t.Errorf("%s: some circle lies outside the chosen tangent line", side.name)
		}
	}
}

func TestBoundingCircleEnclosesAll(t *testing.T) {
	circles := []geom.Circle{
		geom.NewCircle(geom.Point{X: 0, Y: 0}, 1),
		geom.NewCircle(geom.Point{X: 4, Y: 0}, 0.5),
		geom.NewCircle(geom.Point{X: 2, Y: 3}, 2),
	}
	bound := boundingCircle(circles)
	for i, c := range circles {
		reach := geom.Distance(bound.Center(), c.Center()) + c.Radius()
		if reach > bound.Radius()+1e-4 {
			t.Errorf("circle %d reaches %v past bounding radius %v", i, reach, bound.Radius())
		}
	}
}
