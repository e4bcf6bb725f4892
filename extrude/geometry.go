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
	"github.com/google/ink-sub009/geom"
	"github.com/google/ink-sub009/mesh"
)

// Tuning constants for the self-intersection repair state machine.
// The exact retriangulation budget schedule is left to the implementation;
// these grow the budget by a small constant each step the outline travels
// comfortably within it, and give up once a single step would exceed it.
const (
	initialOutlineRepositionBudget = 4.0
	budgetGrowthIncrement          = 1.0
	maxOutlineRepositionBudget     = 64.0

	// minIntersectionTravel is how far the outline must travel past the
	// start of a self-intersection before retriangulation may begin; loops
	// shorter than this usually close on their own within a segment or two.
	minIntersectionTravel = 0.5
)

// processNewVertices runs the geometry engine over whatever points are
// currently buffered in Pending on either side: simplification, commit,
// zig-zag triangulation, and self-intersection detection/repair.
func (e *Extruder) processNewVertices(threshold float32) {
	e.simplifyAndCommit(e.sides[mesh.Left], threshold)
	e.simplifyAndCommit(e.sides[mesh.Right], threshold)
	e.triangulate()
}

func sideLabel(which mesh.Which) mesh.SideLabel {
	if which == mesh.Left {
		return mesh.SideExteriorLeft
	}
	return mesh.SideExteriorRight
}

func (e *Extruder) simplifyAndCommit(s *mesh.Side, threshold float32) {
	if len(s.Pending) == 0 {
		s.ClearRecentlySimplified()
		return
	}

	pts := make([]geom.Point, len(s.Pending))
	for i, pv := range s.Pending {
		pts[i] = pv.Position
	}

	var kept []geom.Point
	if lastIdx, ok := s.LastIndex(); ok {
		kept = rdpSimplify(e.mesh.Positions[lastIdx], pts, threshold)
	} else {
		// No committed vertex yet on this side: the first buffered point
		// becomes the anchor and is always kept.
		kept = append([]geom.Point{pts[0]}, rdpSimplify(pts[0], pts[1:], threshold)...)
	}

	keptSet := make(map[geom.Point]bool, len(kept))
	for _, p := range kept {
		keptSet[p] = true
	}

	final := make([]geom.Point, 0, len(kept))
	var dropped []geom.Point
	for i, p := range kept {
		if i < len(kept)-1 && s.WasRecentlySimplified(p, e.eps) {
			dropped = append(dropped, p)
			continue
		}
		final = append(final, p)
	}
	for _, p := range pts {
		if !keptSet[p] {
			dropped = append(dropped, p)
		}
	}
	if len(final) == 0 {
		final = []geom.Point{pts[len(pts)-1]}
	}

	s.ClearRecentlySimplified()
	for _, p := range dropped {
		s.MarkSimplifiedAway(p)
	}

	forward := s.Pending[len(s.Pending)-1].Forward
	for _, p := range final {
		idx := e.mesh.AppendVertex(p, sideLabel(s.Which), forward)
		s.CommitIndex(idx)
		e.checkSelfIntersection(s)
	}
	s.Pending = s.Pending[:0]
}

// rdpSimplify applies Ramer-Douglas-Peucker simplification to pts, treating
// prev as a fixed anchor that is never itself replaced. The newest point
// (the last element of pts) is always kept, since it is the proposal the
// engine has not yet had a chance to re-evaluate against a further point.
func rdpSimplify(prev geom.Point, pts []geom.Point, threshold float32) []geom.Point {
	if len(pts) <= 1 {
		return append([]geom.Point(nil), pts...)
	}
	last := pts[len(pts)-1]
	maxDist := float32(-1)
	idx := -1
	seg := geom.Segment{Start: prev, End: last}
	for i := 0; i < len(pts)-1; i++ {
		d := geom.DistanceToSegment(pts[i], seg)
		if d > maxDist {
			maxDist = d
			idx = i
		}
	}
	if maxDist <= threshold {
		return []geom.Point{last}
	}
	left := rdpSimplify(prev, pts[:idx+1], threshold)
	right := rdpSimplify(pts[idx], pts[idx+1:], threshold)
	return append(left, right...)
}

// triangulate zig-zags between the two sides' committed-but-not-yet-
// triangulated indices, emitting one CCW triangle per newly admitted
// vertex beyond the first pair. While a side is in an active, started
// self-intersection repair, its own new vertices fan around the
// intersection's pivot instead of striping against the opposite side, so
// the loop being closed off doesn't drag the far side's geometry with it.
func (e *Extruder) triangulate() {
	left, right := e.sides[mesh.Left], e.sides[mesh.Right]
	for {
		leftRemaining := len(left.Indices) - left.Triangulated
		rightRemaining := len(right.Indices) - right.Triangulated
		if leftRemaining == 0 && rightRemaining == 0 {
			return
		}

		if left.Triangulated == 0 || right.Triangulated == 0 {
			if len(left.Indices) == 0 || len(right.Indices) == 0 {
				return
			}
			left.Triangulated = 1
			right.Triangulated = 1
			continue
		}

		var advanceLeft bool
		switch {
		case leftRemaining == 0:
			advanceLeft = false
		case rightRemaining == 0:
			advanceLeft = true
		default:
			advanceLeft = left.Triangulated <= right.Triangulated
		}

		if advanceLeft {
			e.emitStripTriangle(left, right, left.Triangulated)
			left.Triangulated++
		} else {
			e.emitStripTriangle(left, right, -1)
			right.Triangulated++
		}
	}
}

// emitStripTriangle appends one triangle of the left/right zig-zag strip.
// If newLeftOffset is non-negative it is an offset into left.Indices for a
// newly admitted left vertex; otherwise the newly admitted vertex is on the
// right, at offset right.Triangulated.
func (e *Extruder) emitStripTriangle(left, right *mesh.Side, newLeftOffset int) {
	leftPrev := left.Indices[left.Triangulated-1]
	rightPrev := right.Indices[right.Triangulated-1]

	if side := left; newLeftOffset >= 0 {
		newIdx := side.Indices[newLeftOffset]
		if side.Intersection != nil && side.Intersection.RetriangulationStarted {
			tri := e.emitTriangle(side.Intersection.Pivot, leftPrev, newIdx)
			e.markIntersectionTriangle(side, tri)
			return
		}
		e.emitTriangle(leftPrev, rightPrev, newIdx)
		return
	}

	newIdx := right.Indices[right.Triangulated]
	if right.Intersection != nil && right.Intersection.RetriangulationStarted {
		tri := e.emitTriangle(right.Intersection.Pivot, rightPrev, newIdx)
		e.markIntersectionTriangle(right, tri)
		return
	}
	e.emitTriangle(leftPrev, rightPrev, newIdx)
}

// emitTriangle appends the triangle a, b, c, flipping its winding first if
// the three positions are wound clockwise: the mesh never stores a CW
// triangle at rest. The referenced vertices are marked mutated, since a new
// incident triangle changes their derivatives and margins.
func (e *Extruder) emitTriangle(a, b, c uint32) uint32 {
	tri := geom.Triangle{A: e.mesh.Positions[a], B: e.mesh.Positions[b], C: e.mesh.Positions[c]}
	if tri.SignedArea() < 0 {
		b, c = c, b
	}
	lowest := a
	if b < lowest {
		lowest = b
	}
	if c < lowest {
		lowest = c
	}
	e.mesh.MarkVertexMutated(lowest)
	return e.mesh.AppendTriangle(a, b, c)
}

func (e *Extruder) markIntersectionTriangle(side *mesh.Side, tri uint32) {
	si := side.Intersection
	if tri < si.OldestRetriangulationTriangle {
		si.OldestRetriangulationTriangle = tri
	}
}

func (e *Extruder) otherSide(s *mesh.Side) *mesh.Side {
	if s.Which == mesh.Left {
		return e.sides[mesh.Right]
	}
	return e.sides[mesh.Left]
}

// checkSelfIntersection tests the segment just committed on s (from its
// second-to-last to its last index) against the earlier outline segments of
// both sides within the current partition, skipping the segment immediately
// adjacent to the new one. A crossing opens or advances a SelfIntersection
// repair on s.
func (e *Extruder) checkSelfIntersection(s *mesh.Side) {
	n := len(s.Indices)
	if n < 2 {
		return
	}
	newIdx := s.Indices[n-1]
	prevIdx := s.Indices[n-2]
	newPt := e.mesh.Positions[newIdx]
	prevPt := e.mesh.Positions[prevIdx]

	if s.Intersection == nil {
		if !e.openIntersectionOnCrossing(s, s, prevPt, newPt, newIdx) {
			e.openIntersectionOnCrossing(s, e.otherSide(s), prevPt, newPt, newIdx)
		}
		return
	}

	e.advanceIntersection(s, newIdx, prevPt, newPt)
}

// openIntersectionOnCrossing scans outline's current partition for a segment
// properly crossed by the new segment prevPt-newPt and, on a hit, opens a
// SelfIntersection on s pivoted at the crossed segment's start vertex.
// outline is either s itself or the opposite side; for s itself, the segment
// immediately preceding the new one is skipped.
func (e *Extruder) openIntersectionOnCrossing(s, outline *mesh.Side, prevPt, newPt geom.Point, newIdx uint32) bool {
	last := len(outline.Indices) - 1
	if outline == s {
		last -= 2
	}
	for i := outline.PartitionStart.IndexOffset; i < last; i++ {
		a := e.mesh.Positions[outline.Indices[i]]
		b := e.mesh.Positions[outline.Indices[i+1]]
		if !segmentsProperlyIntersect(prevPt, newPt, a, b) {
			continue
		}
		s.Intersection = &mesh.SelfIntersection{
			StartingOffset:          i,
			Pivot:                   outline.Indices[i],
			OutlineRepositionBudget: initialOutlineRepositionBudget,
			LastProposedVertex:      newIdx,
		}
		return true
	}
	return false
}

// advanceIntersection runs one step of an already-open self-intersection
// repair: it starts fan retriangulation once the loop has travelled far
// enough to do so without flipping winding, gives up (duplicating the
// opposite side's last vertex so both sides restart a partition together)
// if the reposition budget is exceeded, and otherwise ends the repair
// cleanly once the outline has escaped back outside the old loop.
func (e *Extruder) advanceIntersection(s *mesh.Side, newIdx uint32, prevPt, newPt geom.Point) {
	si := s.Intersection
	pivot := e.mesh.Positions[si.Pivot]
	step := geom.Distance(prevPt, newPt)

	if !si.RetriangulationStarted {
		// Only one side at a time may own triangle mutation; if the other
		// side is mid-repair, keep admitting vertices and retry once it
		// finishes or gives up.
		other := e.otherSide(s)
		otherRepairing := other.Intersection != nil && other.Intersection.RetriangulationStarted
		tri := geom.Triangle{A: pivot, B: prevPt, C: newPt}
		if !otherRepairing && geom.Distance(pivot, newPt) > minIntersectionTravel && tri.SignedArea() >= 0 {
			si.RetriangulationStarted = true
			si.OldestRetriangulationTriangle = e.mesh.TriangleCount()
		}
	}

	if si.RetriangulationStarted {
		if step > si.OutlineRepositionBudget {
			e.giveUpIntersection(s)
			return
		}
		if step < si.OutlineRepositionBudget/2 && si.OutlineRepositionBudget < maxOutlineRepositionBudget {
			si.OutlineRepositionBudget += budgetGrowthIncrement
		}

		if e.intersectionEndsCleanly(si, pivot, newPt) {
			s.Discontinuities = append(s.Discontinuities, len(s.Indices)-1)
			s.Intersection = nil
			return
		}
	}

	si.LastProposedVertex = newIdx
}

// intersectionEndsCleanly reports whether newPt has travelled back outside
// the pivot-to-last-proposed wedge, meaning the self-loop has closed and
// ordinary strip triangulation can resume.
func (e *Extruder) intersectionEndsCleanly(si *mesh.SelfIntersection, pivot, newPt geom.Point) bool {
	lastProposed := e.mesh.Positions[si.LastProposedVertex]
	tri := geom.Triangle{A: pivot, B: lastProposed, C: newPt}
	return tri.SignedArea() > 0 && geom.Distance(pivot, newPt) >= geom.Distance(pivot, lastProposed)
}

// giveUpIntersection abandons a self-intersection repair that has
// travelled further than its reposition budget allows: it marks a
// discontinuity on s, duplicates the opposite side's last vertex so both
// sides restart a partition at the same point, and opens a fresh partition
// on both sides from here.
func (e *Extruder) giveUpIntersection(s *mesh.Side) {
	s.Discontinuities = append(s.Discontinuities, len(s.Indices)-1)

	other := e.otherSide(s)
	if lastOther, ok := other.LastIndex(); ok {
		p := e.mesh.Positions[lastOther]
		dup := e.mesh.AppendVertex(p, sideLabel(other.Which), mesh.ForwardInterior)
		other.CommitIndex(dup)
		other.Triangulated = len(other.Indices) - 1
	}

	tri := e.mesh.TriangleCount()
	s.PartitionStart = mesh.PartitionStart{IndexOffset: len(s.Indices) - 1, FirstTriangle: tri, OutlineConnectsSides: true}
	other.PartitionStart = mesh.PartitionStart{IndexOffset: len(other.Indices) - 1, FirstTriangle: tri, OutlineConnectsSides: true}
	s.Intersection = nil
}

// segmentsProperlyIntersect reports whether open segments p1-p2 and q1-q2
// cross transversally (touching endpoints and collinear overlap are not
// treated as intersections).
func segmentsProperlyIntersect(p1, p2, q1, q2 geom.Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)
	return ((d1 > 0) != (d2 > 0)) && (d1 != 0 && d2 != 0) &&
		((d3 > 0) != (d4 > 0)) && (d3 != 0 && d4 != 0)
}

func orientation(a, b, c geom.Point) float32 {
	return geom.Determinant(b.Sub(a), c.Sub(a))
}
