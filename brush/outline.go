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

import "github.com/google/ink-sub009/geom"

// SidePoints holds the left and right outline contributions produced by an
// outline generator.
type SidePoints struct {
	Left, Right []geom.Point
}

// collinearAngleTol is the tolerance under which a side's entry and exit
// tangent angles around the middle shape are snapped together: about forty
// float32 steps at ±π radians. Without the snap, a straight
// run of tip states would turn a zero-length arc on the clockwise side into
// a spurious full loop.
const collinearAngleTol = geom.Angle(1e-5)

// snapCollinear returns exit when entry is within collinearAngleTol of it
// (including across the 2π wrap), and entry unchanged otherwise.
func snapCollinear(entry, exit geom.Angle) geom.Angle {
	if entry.Sub(exit).NormalizedAboutZero().Abs() < collinearAngleTol {
		return exit
	}
	return entry
}

// tangentTheta returns the tangent-point angle (valid, by construction of
// Circle.ExternalTangents, at both a's and b's own center) for the left or
// right external tangent from a to b. Returns 0 if the tangent is
// undefined (a degenerate, already-merged circle pair).
func tangentTheta(a, b geom.Circle, left bool) geom.Angle {
	angles, ok := a.ExternalTangents(b)
	if !ok {
		return 0
	}
	if left {
		return angles.Left
	}
	return angles.Right
}

// arcChain walks shape's perimeter circles from fromIdx to toIdx
// (inclusive) in direction ccw, sampling an arc on every circle visited:
// fromTheta is the starting angle on the first circle, toTheta the ending
// angle on the last, and intermediate corner-to-corner tangent angles are
// derived from each pair of neighboring circles actually in the walk.
func arcChain(shape TipShape, fromIdx int, fromTheta geom.Angle, toIdx int, toTheta geom.Angle, ccw bool, maxChordHeight float32) []geom.Point {
	circles := shape.PerimeterCircles()
	var pts []geom.Point

	i := fromIdx
	startAngle := fromTheta
	for {
		c := circles[i]
		var endAngle geom.Angle
		var next int
		if i == toIdx {
			endAngle = toTheta
		} else {
			// Walking the hull CCW, the connecting line to the next circle is
			// the right external tangent of that local travel; walking CW it
			// is the left one.
			if ccw {
				next = shape.NextCcw(i)
			} else {
				next = shape.NextCw(i)
			}
			endAngle = tangentTheta(c, circles[next], !ccw)
		}

		sweep := endAngle.Sub(startAngle).Normalized()
		if !ccw && sweep != 0 {
			sweep = sweep.Sub(geom.FullTurn)
		}
		pts = c.AppendArcToPolyline(startAngle, sweep, maxChordHeight, pts)

		if i == toIdx {
			break
		}
		i = next
		startAngle = endAngle
	}
	return pts
}

// TurnPoints computes the outline contribution of middle when travelling
// from start through middle to end: the left side arcs
// counter-clockwise around middle's perimeter between the two tangent
// indices, the right side clockwise.
func TurnPoints(start, middle, end TipShape, maxChordHeight float32) SidePoints {
	entry := ComputeTangentCircleIndices(start, middle)
	exit := ComputeTangentCircleIndices(middle, end)

	startCircles := start.PerimeterCircles()
	middleCircles := middle.PerimeterCircles()
	endCircles := end.PerimeterCircles()

	leftEntry := tangentTheta(startCircles[entry.Left[0]], middleCircles[entry.Left[1]], true)
	leftExit := tangentTheta(middleCircles[exit.Left[0]], endCircles[exit.Left[1]], true)
	rightEntry := tangentTheta(startCircles[entry.Right[0]], middleCircles[entry.Right[1]], false)
	rightExit := tangentTheta(middleCircles[exit.Right[0]], endCircles[exit.Right[1]], false)

	leftEntry = snapCollinear(leftEntry, leftExit)
	rightEntry = snapCollinear(rightEntry, rightExit)

	// When a side's entry and exit tangents coincide on the same circle (a
	// straight run of tip states), the arc degenerates to the single point
	// where the two tangent lines meet.
	var out SidePoints
	if entry.Left[1] == exit.Left[0] && leftEntry == leftExit {
		out.Left = []geom.Point{middleCircles[exit.Left[0]].PointOn(leftExit)}
	} else {
		out.Left = arcChain(middle, entry.Left[1], leftEntry, exit.Left[0], leftExit, true, maxChordHeight)
	}
	if entry.Right[1] == exit.Right[0] && rightEntry == rightExit {
		out.Right = []geom.Point{middleCircles[exit.Right[0]].PointOn(rightExit)}
	} else {
		out.Right = arcChain(middle, entry.Right[1], rightEntry, exit.Right[0], rightExit, false, maxChordHeight)
	}
	return out
}

// StartcapPoints emits the outline contribution for the start of a stroke
// spanning first and second: the tangent exit point on second, plus an arc
// around first's free side (the side not facing second) back to the
// opposite tangent.
func StartcapPoints(first, second TipShape, maxChordHeight float32) SidePoints {
	indices := ComputeTangentCircleIndices(first, second)
	firstCircles := first.PerimeterCircles()
	secondCircles := second.PerimeterCircles()

	leftTheta := tangentTheta(firstCircles[indices.Left[0]], secondCircles[indices.Left[1]], true)
	rightTheta := tangentTheta(firstCircles[indices.Right[0]], secondCircles[indices.Right[1]], false)

	var out SidePoints
	out.Left = append(
		[]geom.Point{secondCircles[indices.Left[1]].PointOn(leftTheta)},
		arcChain(first, indices.Left[0], leftTheta, indices.Right[0], rightTheta, false, maxChordHeight)...,
	)
	out.Right = append(
		[]geom.Point{secondCircles[indices.Right[1]].PointOn(rightTheta)},
		arcChain(first, indices.Right[0], rightTheta, indices.Left[0], leftTheta, true, maxChordHeight)...,
	)
	return out
}

// EndcapPoints emits the outline contribution for the end of a stroke
// spanning secondToLast and last: symmetric to StartcapPoints, arcing
// around last's free side.
func EndcapPoints(secondToLast, last TipShape, maxChordHeight float32) SidePoints {
	indices := ComputeTangentCircleIndices(secondToLast, last)
	beforeCircles := secondToLast.PerimeterCircles()
	lastCircles := last.PerimeterCircles()

	leftTheta := tangentTheta(beforeCircles[indices.Left[0]], lastCircles[indices.Left[1]], true)
	rightTheta := tangentTheta(beforeCircles[indices.Right[0]], lastCircles[indices.Right[1]], false)

	var out SidePoints
	out.Left = append(
		[]geom.Point{beforeCircles[indices.Left[0]].PointOn(leftTheta)},
		arcChain(last, indices.Left[1], leftTheta, indices.Right[1], rightTheta, false, maxChordHeight)...,
	)
	out.Right = append(
		[]geom.Point{beforeCircles[indices.Right[0]].PointOn(rightTheta)},
		arcChain(last, indices.Right[1], rightTheta, indices.Left[1], leftTheta, true, maxChordHeight)...,
	)
	return out
}

// WholeShapePoints samples every perimeter circle of shape all the way
// around, splitting into left and right at forwardDirection. Used when a
// stroke consists of a single sample (a dot).
func WholeShapePoints(shape TipShape, forwardDirection geom.Vec, maxChordHeight float32) SidePoints {
	circles := shape.PerimeterCircles()
	splitDir := forwardDirection.AsUnit()
	n := len(circles)

	var out SidePoints
	split := func(pts []geom.Point) {
		for _, p := range pts {
			toPoint := p.Sub(shape.Center())
			if geom.Determinant(splitDir, toPoint) >= 0 {
				out.Left = append(out.Left, p)
			} else {
				out.Right = append(out.Right, p)
			}
		}
	}

	if n == 1 {
		start := splitDir.Direction()
		split(circles[0].AppendArcToPolyline(start, geom.FullTurn, maxChordHeight, nil))
		return out
	}

	for i := 0; i < n; i++ {
		c := circles[i]
		prev := circles[shape.NextCw(i)]
		next := circles[shape.NextCcw(i)]

		// The arc on each circle spans from the hull tangent arriving from
		// the CW neighbor to the hull tangent departing toward the CCW
		// neighbor.
		startAngle := tangentTheta(prev, c, false)
		endAngle := tangentTheta(c, next, false)
		sweep := endAngle.Sub(startAngle).Normalized()
		split(c.AppendArcToPolyline(startAngle, sweep, maxChordHeight, nil))
	}
	return out
}
