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

// RoundedPolygonArc is one circular-arc component of a RoundedPolygon's
// boundary: the portion of Circle travelled from StartUnitVector to
// EndUnitVector in order of increasing angle (counter-clockwise).
type RoundedPolygonArc struct {
	Circle          geom.Circle
	StartUnitVector geom.Vec
	EndUnitVector   geom.Vec
}

// RoundedPolygon is a polygon-like shape with rounded corners, built by
// connecting two or more circles in order along their right-side exterior
// tangents. Its boundary alternates between (possibly degenerate) circular
// arcs and (non-degenerate) line segments.
//
// A RoundedPolygon may self-intersect in general; this package only builds
// one from circles belonging to two tip shapes joined by their tangents,
// which never self-intersects.
type RoundedPolygon struct {
	arcs []RoundedPolygonArc
}

// NewRoundedPolygon builds a RoundedPolygon from circles, connecting each
// consecutive pair (and the last to the first) by their right-side exterior
// tangent. Panics if fewer than 2 circles are given, or if any circle
// contains its cyclic neighbor.
func NewRoundedPolygon(circles []geom.Circle) RoundedPolygon {
	if len(circles) < 2 {
		panic("brush: RoundedPolygon needs at least 2 circles")
	}
	if circles[0].Contains(circles[len(circles)-1]) || circles[len(circles)-1].Contains(circles[0]) {
		panic("brush: RoundedPolygon circles must not contain their cyclic neighbor")
	}

	lastToFirst := circles[len(circles)-1].GuaranteedRightTangentAngle(circles[0])

	arcs := make([]RoundedPolygonArc, 0, len(circles))
	incoming := lastToFirst
	for i := 0; i < len(circles)-1; i++ {
		if circles[i].Contains(circles[i+1]) || circles[i+1].Contains(circles[i]) {
			panic("brush: RoundedPolygon circles must not contain their cyclic neighbor")
		}
		outgoing := circles[i].GuaranteedRightTangentAngle(circles[i+1])
		arcs = append(arcs, RoundedPolygonArc{
			Circle:          circles[i],
			StartUnitVector: geom.UnitVecWithDirection(incoming),
			EndUnitVector:   geom.UnitVecWithDirection(outgoing),
		})
		incoming = outgoing
	}
	arcs = append(arcs, RoundedPolygonArc{
		Circle:          circles[len(circles)-1],
		StartUnitVector: geom.UnitVecWithDirection(incoming),
		EndUnitVector:   geom.UnitVecWithDirection(lastToFirst),
	})

	return RoundedPolygon{arcs: arcs}
}

// Arcs returns the arc components of the boundary, indexed the same as the
// circles passed to NewRoundedPolygon.
func (p RoundedPolygon) Arcs() []RoundedPolygonArc { return p.arcs }

// GetSegment returns the line segment connecting arc index to arc
// (index+1)%len(Arcs()). Panics if index is out of range.
func (p RoundedPolygon) GetSegment(index int) geom.Segment {
	if index < 0 || index >= len(p.arcs) {
		panic("brush: RoundedPolygon segment index out of range")
	}
	first := p.arcs[index]
	second := p.arcs[(index+1)%len(p.arcs)]
	return geom.Segment{
		Start: first.Circle.Center().Add(first.EndUnitVector.Mul(first.Circle.Radius())),
		End:   second.Circle.Center().Add(second.StartUnitVector.Mul(second.Circle.Radius())),
	}
}

// ContainsCircle reports whether circle is contained within p, including
// circles that merely touch the boundary.
func (p RoundedPolygon) ContainsCircle(circle geom.Circle) bool {
	for i := range p.arcs {
		if d, ok := signedDistanceToArc(p.arcs[i], circle.Center()); ok && d > -circle.Radius() {
			return false
		}
		seg := p.GetSegment(i)
		if d, ok := signedDistanceToSegment(seg, circle.Center()); ok && d > -circle.Radius() {
			return false
		}
	}
	return true
}

const arcDegenerateTolerance = 5e-6

// signedDistanceToArc returns the signed distance from point to arc's
// circular boundary, if point falls within the angular sector the arc
// sweeps; ok is false when the arc contributes nothing (including the
// degenerate case where start and end vectors coincide).
func signedDistanceToArc(arc RoundedPolygonArc, point geom.Point) (float32, bool) {
	toPoint := point.Sub(arc.Circle.Center())
	det := geom.Determinant(arc.StartUnitVector, arc.EndUnitVector)
	if float32(math.Abs(float64(det))) < arcDegenerateTolerance {
		return 0, false
	}
	startSide := geom.Determinant(arc.StartUnitVector, toPoint)
	endSide := geom.Determinant(arc.EndUnitVector, toPoint)
	if det < 0 {
		// Major arc: point is covered unless it is right of start and left of end.
		if startSide < 0 && endSide > 0 {
			return 0, false
		}
	} else {
		// Minor arc: point is covered only if left of start and right of end.
		if startSide < 0 || endSide > 0 {
			return 0, false
		}
	}
	return toPoint.Magnitude() - arc.Circle.Radius(), true
}

// signedDistanceToSegment returns the signed distance from point to
// segment, if point's projection onto segment lies within [0, 1].
func signedDistanceToSegment(segment geom.Segment, point geom.Point) (float32, bool) {
	t, ok := segment.Project(point)
	if !ok || t < 0 || t > 1 {
		return 0, false
	}
	return -geom.Determinant(segment.Vector(), point.Sub(segment.Start)) / segment.Length(), true
}
