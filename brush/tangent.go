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

	"github.com/google/ink-sub009/geom"
)

const quarterTurn = geom.Angle(math.Pi / 2)

// tangentSlack allows circles to sit exactly on, or fractionally across, a
// candidate tangent line before the line is rejected as invalid.
const tangentSlack = 1e-4

// TangentCircleIndices names, for the joined hull of two non-containing tip
// shapes, the perimeter circle on each shape touched by the left and right
// external tangent of that hull. Index pairs are [index in a, index in b].
type TangentCircleIndices struct {
	Left  [2]int
	Right [2]int
}

// boundingCircle returns a circle enclosing every circle of circles. It is
// an incremental approximation, not a true minimum enclosing circle, which
// is adequate for the at-most-4-circle shapes this package works with.
func boundingCircle(circles []geom.Circle) geom.Circle {
	enclosing := circles[0]
	for _, c := range circles[1:] {
		enclosing = mergeEnclosing(enclosing, c)
	}
	// A second pass corrects for order-dependence in the first.
	for _, c := range circles {
		enclosing = mergeEnclosing(enclosing, c)
	}
	return enclosing
}

func mergeEnclosing(a, b geom.Circle) geom.Circle {
	if a.Contains(b) {
		return a
	}
	if b.Contains(a) {
		return b
	}
	d := geom.Distance(a.Center(), b.Center())
	if d == 0 {
		r := a.Radius()
		if b.Radius() > r {
			r = b.Radius()
		}
		return geom.NewCircle(a.Center(), r)
	}
	newRadius := (a.Radius() + b.Radius() + d) / 2
	t := (newRadius - a.Radius()) / d
	toward := b.Center().Sub(a.Center())
	center := a.Center().Add(toward.Mul(t))
	return geom.NewCircle(center, newRadius)
}

// tangentLineDirection returns the direction, at tangentPointAngle, along
// the external tangent line such that travelling in that direction keeps
// the joined hull on the left. tangentPointAngle is one of the two angles
// returned by Circle.ExternalTangents.
func tangentLineDirection(tangentPointAngle geom.Angle) geom.Angle {
	return tangentPointAngle.Add(quarterTurn)
}

// allOnLeft reports whether every circle in circles (aside from those at
// skip) lies on the left of, or touching, the directed line through point
// with direction dir.
func allOnLeft(circles []geom.Circle, skip int, point geom.Point, dir geom.Vec) bool {
	for k, c := range circles {
		if k == skip {
			continue
		}
		toCenter := c.Center().Sub(point)
		signedDist := geom.Determinant(dir, toCenter)
		if signedDist < c.Radius()-tangentSlack {
			return false
		}
	}
	return true
}

// ComputeTangentCircleIndices computes the tangent circle indices for the
// joined hull of a and b. The caller must already know that neither shape
// contains the other.
func ComputeTangentCircleIndices(a, b TipShape) TangentCircleIndices {
	ac := a.PerimeterCircles()
	bc := b.PerimeterCircles()

	var result TangentCircleIndices
	result.Right = findTangentPair(ac, bc, false)
	result.Left = findTangentPair(ac, bc, true)
	return result
}

// findTangentPair searches for the (i, j) pair of circles whose external
// tangent has every other circle of both shapes on its left. left selects
// which of the two tangent-point angles returned by ExternalTangents to use.
func findTangentPair(ac, bc []geom.Circle, left bool) [2]int {
	bestI, bestJ := -1, -1
	for i, a := range ac {
		for j, b := range bc {
			angles, ok := a.ExternalTangents(b)
			if !ok {
				continue
			}
			theta := angles.Right
			if left {
				theta = angles.Left
			}
			point := a.PointOn(theta)
			dir := geom.UnitVecWithDirection(tangentLineDirection(theta))
			if !allOnLeft(ac, i, point, dir) || !allOnLeft(bc, j, point, dir) {
				continue
			}
			if bestI < 0 {
				bestI, bestJ = i, j
				continue
			}
			// Tie-break on coincident circles: earlier index for the left
			// tangent, later index for the right tangent.
			if left {
				if i < bestI || (i == bestI && j < bestJ) {
					bestI, bestJ = i, j
				}
			} else {
				if i > bestI || (i == bestI && j > bestJ) {
					bestI, bestJ = i, j
				}
			}
		}
	}
	if bestI < 0 {
		// No pair was found to satisfy every circle exactly; fall back to
		// the bounding-circle tangent direction refined to the nearest
		// individual circle, which is always geometrically close.
		return fallbackTangentPair(ac, bc, left)
	}
	return [2]int{bestI, bestJ}
}

// fallbackTangentPair handles the rare case (acute corner_rounding=0
// rectangles meeting at a shallow angle) where floating point slack leaves
// no candidate pair passing allOnLeft exactly; it picks the circle closest
// to the bounding circles' tangent direction on each shape.
func fallbackTangentPair(ac, bc []geom.Circle, left bool) [2]int {
	boundA := boundingCircle(ac)
	boundB := boundingCircle(bc)
	angles, ok := boundA.ExternalTangents(boundB)
	if !ok {
		return [2]int{0, 0}
	}
	theta := angles.Right
	if left {
		theta = angles.Left
	}
	refPoint := boundA.PointOn(theta)
	bestI, bestDist := 0, float32(math.MaxFloat32)
	for i, c := range ac {
		d := geom.Distance(c.Center(), refPoint)
		if d < bestDist {
			bestI, bestDist = i, d
		}
	}
	bestJ, bestDist := 0, float32(math.MaxFloat32)
	for j, c := range bc {
		d := geom.Distance(c.Center(), refPoint)
		if d < bestDist {
			bestJ, bestDist = j, d
		}
	}
	return [2]int{bestI, bestJ}
}

// TangentQuality classifies how well two tip shapes connect via their
// external tangents.
type TangentQuality int

const (
	GoodTangents TangentQuality = iota
	NoTangentsFirstContainsSecond
	NoTangentsSecondContainsFirst
	BadTangentsJoinedShapeDoesNotCoverInputShapes
)

// EvaluateTangentQuality classifies the tangent quality between a and b,
// and returns the tangent circle indices when they were computed (the zero
// value when containment made that unnecessary).
func EvaluateTangentQuality(a, b TipShape) (TangentQuality, TangentCircleIndices) {
	if a.Contains(b) {
		return NoTangentsFirstContainsSecond, TangentCircleIndices{}
	}
	if b.Contains(a) {
		return NoTangentsSecondContainsFirst, TangentCircleIndices{}
	}

	ac := a.PerimeterCircles()
	bc := b.PerimeterCircles()
	if len(ac) == 1 && len(bc) == 1 {
		return GoodTangents, TangentCircleIndices{Left: [2]int{0, 0}, Right: [2]int{0, 0}}
	}

	indices := ComputeTangentCircleIndices(a, b)

	usedCompleteA := a.NextCcw(indices.Right[0]) == indices.Left[0]
	usedCompleteB := b.NextCcw(indices.Left[1]) == indices.Right[1]
	if usedCompleteA && usedCompleteB {
		return GoodTangents, indices
	}

	if joinedShapeCoversUnusedCircles(a, b, indices) {
		return GoodTangents, indices
	}
	return BadTangentsJoinedShapeDoesNotCoverInputShapes, indices
}

// joinedShapeCoversUnusedCircles builds the RoundedPolygon of the circles
// actually used by the tangent chain, inflates it by a tolerance
// proportional to the shapes' coordinate magnitude, and checks that every
// circle of a and b not on the chain is contained within it.
func joinedShapeCoversUnusedCircles(a, b TipShape, indices TangentCircleIndices) bool {
	ac := a.PerimeterCircles()
	bc := b.PerimeterCircles()

	usedA := cyclicRangeCcw(len(ac), indices.Left[0], indices.Right[0])
	usedB := cyclicRangeCcw(len(bc), indices.Right[1], indices.Left[1])

	joined := make([]geom.Circle, 0, len(usedA)+len(usedB))
	for _, i := range usedA {
		joined = append(joined, ac[i])
	}
	for _, j := range usedB {
		joined = append(joined, bc[j])
	}
	if len(joined) < 2 {
		return true
	}

	tol := coverageTolerance(a, b)
	inflated := make([]geom.Circle, len(joined))
	for i, c := range joined {
		inflated[i] = geom.NewCircle(c.Center(), c.Radius()+tol)
	}
	polygon := NewRoundedPolygon(inflated)

	usedASet := toSet(usedA)
	usedBSet := toSet(usedB)
	for i, c := range ac {
		if usedASet[i] {
			continue
		}
		if !polygon.ContainsCircle(c) {
			return false
		}
	}
	for j, c := range bc {
		if usedBSet[j] {
			continue
		}
		if !polygon.ContainsCircle(c) {
			return false
		}
	}
	return true
}

// coverageTolerance returns the inflation radius used when checking that a
// RoundedPolygon joining two shapes covers their unused circles: about
// 1e-6 of the largest coordinate magnitude appearing in either shape's
// bounds, so the check is not defeated by ordinary floating point noise.
func coverageTolerance(a, b TipShape) float32 {
	boundsA := a.Bounds()
	boundsB := b.Bounds()
	maxAbs := float32(0)
	for _, v := range []float32{
		boundsA.Min.X, boundsA.Min.Y, boundsA.Max.X, boundsA.Max.Y,
		boundsB.Min.X, boundsB.Min.Y, boundsB.Max.X, boundsB.Max.Y,
	} {
		if av := absF32(v); av > maxAbs {
			maxAbs = av
		}
	}
	return maxAbs * 1e-6
}

// cyclicRangeCcw returns the indices visited walking counter-clockwise from
// from, inclusive, to to, inclusive, modulo n.
func cyclicRangeCcw(n, from, to int) []int {
	out := []int{from}
	i := from
	for i != to {
		i = (i + 1) % n
		out = append(out, i)
	}
	return out
}

func toSet(indices []int) map[int]bool {
	m := make(map[int]bool, len(indices))
	for _, i := range indices {
		m[i] = true
	}
	return m
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
