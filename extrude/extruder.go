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
	"github.com/google/ink-sub009/brush"
	"github.com/google/ink-sub009/geom"
	"github.com/google/ink-sub009/mesh"
)

// lerpRejectThreshold is the minimum fraction of the way from the last
// accepted tip to a rejected proposal that a constrained intermediate must
// reach before it is worth extruding; below it, a non-final proposal is
// dropped entirely rather than extruding a near-zero step.
const lerpRejectThreshold = 0.1

// Extruder is the public facade over the stroke extrusion core. A zero
// Extruder is not ready to use; call StartStroke first.
type Extruder struct {
	eps            float32
	surfaceUV      SurfaceUVMode
	mesh           *mesh.View
	maxChordHeight float32

	sides [2]*mesh.Side

	extrusions []BrushTipExtrusion
	outlines   []mesh.Outline

	cachedPartialBounds geom.Envelope
	currentBounds       geom.Envelope

	savePoint extruderSnapshot

	// savedPrefixLen is how many leading entries of extrusions are still
	// exactly the ones present at the last SetSavePoint call. It shrinks when
	// clearSinceLastBreak cuts into the saved prefix during a volatile pass
	// and never grows back until the next SetSavePoint.
	savedPrefixLen int

	// deletedSaveExtrusions holds saved-prefix extrusions that a volatile
	// pass dropped, oldest first, so RevertToSavePoint can replay them.
	// clearedState records the engine state immediately after the earliest
	// such drop, the point the replay starts from.
	deletedSaveExtrusions []BrushTipExtrusion
	clearedState          extruderSnapshot
}

// extruderSnapshot is the state SetSavePoint records and RevertToSavePoint
// restores.
type extruderSnapshot struct {
	extrusionCount int

	vertexCount, triangleCount uint32

	leftIndexCount, rightIndexCount                 int
	leftTriangulated, rightTriangulated             int
	leftDiscontinuities, rightDiscontinuities       int
	leftPartitionStart, rightPartitionStart         mesh.PartitionStart
	leftRecentlySimplified, rightRecentlySimplified []geom.Point

	outlineCount int

	cachedPartialBounds, currentBounds geom.Envelope
}

func (e *Extruder) snapshot() extruderSnapshot {
	left, right := e.sides[mesh.Left], e.sides[mesh.Right]
	return extruderSnapshot{
		extrusionCount:          len(e.extrusions),
		vertexCount:             e.mesh.VertexCount(),
		triangleCount:           e.mesh.TriangleCount(),
		leftIndexCount:          len(left.Indices),
		rightIndexCount:         len(right.Indices),
		leftTriangulated:        left.Triangulated,
		rightTriangulated:       right.Triangulated,
		leftDiscontinuities:     len(left.Discontinuities),
		rightDiscontinuities:    len(right.Discontinuities),
		leftPartitionStart:      left.PartitionStart,
		rightPartitionStart:     right.PartitionStart,
		leftRecentlySimplified:  append([]geom.Point(nil), left.RecentlySimplified...),
		rightRecentlySimplified: append([]geom.Point(nil), right.RecentlySimplified...),
		outlineCount:            len(e.outlines),
		cachedPartialBounds:     e.cachedPartialBounds,
		currentBounds:           e.currentBounds,
	}
}

// truncateTo rolls the mesh, both sides, and the outline list back to a
// previously recorded snapshot. It only ever shrinks; the caller must
// guarantee the engine has not been rolled back past sp already.
func (e *Extruder) truncateTo(sp extruderSnapshot) {
	e.mesh.TruncateTriangles(sp.triangleCount)
	e.mesh.TruncateVertices(sp.vertexCount)

	left, right := e.sides[mesh.Left], e.sides[mesh.Right]
	left.TruncateIndices(sp.leftIndexCount)
	right.TruncateIndices(sp.rightIndexCount)
	left.Triangulated = sp.leftTriangulated
	right.Triangulated = sp.rightTriangulated
	if len(left.Discontinuities) > sp.leftDiscontinuities {
		left.Discontinuities = left.Discontinuities[:sp.leftDiscontinuities]
	}
	if len(right.Discontinuities) > sp.rightDiscontinuities {
		right.Discontinuities = right.Discontinuities[:sp.rightDiscontinuities]
	}
	left.Intersection = nil
	right.Intersection = nil
	left.PartitionStart = sp.leftPartitionStart
	right.PartitionStart = sp.rightPartitionStart
	left.RecentlySimplified = append(left.RecentlySimplified[:0], sp.leftRecentlySimplified...)
	right.RecentlySimplified = append(right.RecentlySimplified[:0], sp.rightRecentlySimplified...)

	if len(e.outlines) > sp.outlineCount {
		e.outlines = e.outlines[:sp.outlineCount]
	}
	e.cachedPartialBounds = sp.cachedPartialBounds
	e.currentBounds = sp.currentBounds
}

// StartStroke resets the extruder to begin a new stroke, writing into view.
// eps is the tangent-shape and stationary-position tolerance used
// throughout; it also doubles as the arc-flattening tolerance
// for outline sampling, since both describe the finest geometric detail the
// core is asked to resolve. surfaceUV is stored for the caller's own texture
// coordinate derivation and is not otherwise interpreted here.
func (e *Extruder) StartStroke(eps float32, surfaceUV SurfaceUVMode, view *mesh.View) {
	e.eps = eps
	e.maxChordHeight = eps
	e.surfaceUV = surfaceUV
	e.mesh = view
	e.mesh.Reset()

	e.sides[mesh.Left] = mesh.NewSide(mesh.Left)
	e.sides[mesh.Right] = mesh.NewSide(mesh.Right)

	e.extrusions = e.extrusions[:0]
	e.outlines = e.outlines[:0]
	e.cachedPartialBounds = geom.EmptyEnvelope()
	e.currentBounds = geom.EmptyEnvelope()
	e.deletedSaveExtrusions = e.deletedSaveExtrusions[:0]
	e.savePoint = extruderSnapshot{}
	e.savedPrefixLen = 0
	e.clearedState = extruderSnapshot{}
}

// ExtendStroke extrudes fixed (permanent) and then volatile (may be
// replaced by the next call's fixed+volatile sequence) tip states and
// returns the region of the mesh that changed.
func (e *Extruder) ExtendStroke(fixed, volatile []brush.TipState) StrokeShapeUpdate {
	e.mesh.ResetMutationTracking()
	startVertexCount := e.mesh.VertexCount()
	startTriangleCount := e.mesh.TriangleCount()

	// Undo the previous call's volatile tail before anything else. A
	// renderer that consumed the previous mesh still holds that tail, so the
	// start counts above are taken before the revert: shrinkage is a
	// mutation it must hear about too.
	e.RevertToSavePoint()
	revertedVertexCount := e.mesh.VertexCount()
	revertedTriangleCount := e.mesh.TriangleCount()
	revertedExtrusionCount := len(e.extrusions)

	for i, s := range fixed {
		e.extrude(s, false, len(volatile) == 0 && i == len(fixed)-1)
	}
	e.updateCachedPartialBounds()
	e.SetSavePoint()

	for i, s := range volatile {
		e.extrude(s, true, i == len(volatile)-1)
	}

	if e.mesh.VertexCount() != revertedVertexCount ||
		e.mesh.TriangleCount() != revertedTriangleCount ||
		len(e.extrusions) != revertedExtrusionCount {
		e.extrudeBreakPoint(false)
	}
	e.computeDerivatives()
	e.updateCurrentBounds()

	return e.buildUpdate(startVertexCount, startTriangleCount)
}

func (e *Extruder) buildUpdate(startVertexCount, startTriangleCount uint32) StrokeShapeUpdate {
	update := StrokeShapeUpdate{Region: e.visuallyUpdatedRegion()}
	if fv := e.mesh.FirstMutatedVertex(); fv < startVertexCount || e.mesh.VertexCount() > startVertexCount {
		v := fv
		update.FirstVertexOffset = &v
	}
	if ft := e.mesh.FirstMutatedTriangle(); ft < startTriangleCount || e.mesh.TriangleCount() > startTriangleCount {
		idx := 3 * ft
		update.FirstIndexOffset = &idx
	}
	return update
}

// FirstMutatedIndexOffsetInCurrentPartition returns the lowest offset, into
// the given side's current-partition outline, whose vertex index is at or
// beyond the mesh's first mutated vertex: the point from which a renderer
// maintaining its own copy of the outline needs to repaint. It returns nil
// when no committed outline vertex of that side's current partition was
// touched.
func (e *Extruder) FirstMutatedIndexOffsetInCurrentPartition(which mesh.Which) *uint32 {
	fv := e.mesh.FirstMutatedVertex()
	side := e.sides[which]
	for offset, idx := range side.CurrentPartitionIndices() {
		if idx >= fv {
			v := uint32(offset)
			return &v
		}
	}
	return nil
}

func (e *Extruder) visuallyUpdatedRegion() geom.Envelope {
	env := geom.EmptyEnvelope()
	for i := e.mesh.FirstMutatedVertex(); i < e.mesh.VertexCount(); i++ {
		env = env.AddPoint(e.mesh.Positions[i])
	}
	firstTri := e.mesh.FirstMutatedTriangle()
	for _, side := range e.sides {
		if si := side.Intersection; si != nil && si.RetriangulationStarted && si.OldestRetriangulationTriangle < firstTri {
			firstTri = si.OldestRetriangulationTriangle
		}
	}
	for i := firstTri; i < e.mesh.TriangleCount(); i++ {
		tri := e.mesh.TriangleGeometry(i)
		env = env.AddPoint(tri.A).AddPoint(tri.B).AddPoint(tri.C)
	}
	return env
}

// GetBounds returns the smallest envelope covering every committed outline
// vertex of the current stroke.
func (e *Extruder) GetBounds() geom.Envelope { return e.currentBounds }

// GetOutlines returns one Outline per partition extruded so far, including
// the still-open final partition.
func (e *Extruder) GetOutlines() []mesh.Outline { return e.outlines }

func (e *Extruder) updateCachedPartialBounds() {
	e.cachedPartialBounds = e.boundsFromCommittedVertices(true)
}

func (e *Extruder) updateCurrentBounds() {
	e.currentBounds = e.cachedPartialBounds.Union(e.boundsFromCommittedVertices(false))
}

// boundsFromCommittedVertices unions the positions of every committed
// outline vertex, optionally excluding each side's last index (which may
// still be revised by a later simplification pass in this same call).
func (e *Extruder) boundsFromCommittedVertices(excludeLast bool) geom.Envelope {
	env := geom.EmptyEnvelope()
	for _, side := range e.sides {
		n := len(side.Indices)
		if excludeLast && n > 0 {
			n--
		}
		for _, idx := range side.Indices[:n] {
			env = env.AddPoint(e.mesh.Positions[idx])
		}
	}
	return env
}

// SetSavePoint records the current state so a later RevertToSavePoint call
// can undo every extrusion since.
func (e *Extruder) SetSavePoint() {
	e.savePoint = e.snapshot()
	e.savedPrefixLen = len(e.extrusions)
	e.deletedSaveExtrusions = e.deletedSaveExtrusions[:0]
	e.clearedState = extruderSnapshot{}
}

// RevertToSavePoint undoes every extrusion since the last SetSavePoint
// call. If a volatile pass cleared part of the saved prefix itself (a
// later, larger shape absorbed its whole partition), the dropped
// extrusions are replayed verbatim to rebuild the saved geometry.
func (e *Extruder) RevertToSavePoint() {
	if len(e.deletedSaveExtrusions) > 0 {
		e.truncateTo(e.clearedState)
		e.extrusions = e.extrusions[:e.savedPrefixLen]

		replay := append([]BrushTipExtrusion(nil), e.deletedSaveExtrusions...)
		e.deletedSaveExtrusions = e.deletedSaveExtrusions[:0]
		for _, ex := range replay {
			e.replayExtrusion(ex)
		}
	} else {
		if e.savePoint.extrusionCount < len(e.extrusions) {
			e.extrusions = e.extrusions[:e.savePoint.extrusionCount]
		}
		e.truncateTo(e.savePoint)
	}
	e.savedPrefixLen = len(e.extrusions)
}

// replayExtrusion re-extrudes ex without re-running the constrainer: ex was
// already accepted once, before a volatile clear dropped it, so its state
// and shape are pushed back as-is and only the outline points are
// regenerated.
func (e *Extruder) replayExtrusion(ex BrushTipExtrusion) {
	if ex.IsBreak {
		e.extrudeBreakPoint(true)
		return
	}
	e.pushExtrusion(ex.State, ex.Shape)
	e.emitTailOutline(ex.State)
}

// extrude appends state to the current partition, or closes it.
func (e *Extruder) extrude(state brush.TipState, isVolatile, isLast bool) {
	if state.Width < e.eps && state.Height < e.eps {
		e.extrudeBreakPoint(true)
		return
	}
	if !e.tryAppendNonBreak(state, isVolatile, isLast) {
		return
	}
	e.emitTailOutline(state)
}

// emitTailOutline computes the outline-point contribution unlocked by the
// newest extrusion at the tail (a turn once three shapes are in play, a
// startcap for the first pair after a break) and feeds it through the
// geometry engine.
func (e *Extruder) emitTailOutline(state brush.TipState) {
	tail := e.nonBreakTail(3)
	switch len(tail) {
	case 3:
		pts := brush.TurnPoints(tail[0].Shape, tail[1].Shape, tail[2].Shape, e.maxChordHeight)
		e.appendSidePoints(pts, mesh.ForwardInterior)
	case 2:
		pts := brush.StartcapPoints(tail[0].Shape, tail[1].Shape, e.maxChordHeight)
		e.appendSidePoints(pts, mesh.ForwardBack)
	}
	e.processNewVertices(e.simplificationThreshold(state))
}

// tryAppendNonBreak implements the Constrain-guarded append:
// it returns false when state is rejected outright (LastContainsProposed,
// CannotFindIntermediate, or a too-small constrained step that isn't the
// stroke's last sample).
func (e *Extruder) tryAppendNonBreak(state brush.TipState, isVolatile, isLast bool) bool {
	n := len(e.extrusions)
	if n == 0 || e.extrusions[n-1].IsBreak {
		e.pushExtrusion(state, brush.NewTipShape(state, e.eps))
		return true
	}

	last := e.extrusions[n-1]
	result := brush.Constrain(last.State, state, last.Shape, e.eps)
	switch result.Kind {
	case brush.ProposedIsValid:
		e.pushExtrusion(state, brush.NewTipShape(state, e.eps))
		return true
	case brush.ConstrainedFound:
		if result.T < lerpRejectThreshold && !isLast {
			return false
		}
		e.pushExtrusion(result.State, result.Shape)
		return true
	case brush.ProposedContainsLast:
		return e.absorbContainedTail(state, isVolatile)
	default: // LastContainsProposed, CannotFindIntermediate
		return false
	}
}

// absorbContainedTail handles ProposedContainsLast: it walks backward from
// the tail, through the current partition, dropping every extrusion whose
// shape is contained in the new candidate's. If the walk reaches the start
// of the partition, the whole partition is cleared and the candidate starts
// it afresh; otherwise the surviving prefix is sealed off with a
// break-point and the candidate starts the next partition.
func (e *Extruder) absorbContainedTail(state brush.TipState, isVolatile bool) bool {
	candidate := brush.NewTipShape(state, e.eps)
	start := e.partitionStartIndex()
	i := len(e.extrusions)
	for i > start && candidate.Contains(e.extrusions[i-1].Shape) {
		i--
	}

	if i == start {
		e.clearSinceLastBreak(start, isVolatile)
	} else {
		e.extrusions = e.extrusions[:i]
		e.extrudeBreakPoint(true)
	}
	e.pushExtrusion(state, candidate)
	return true
}

func (e *Extruder) pushExtrusion(state brush.TipState, shape brush.TipShape) {
	e.extrusions = append(e.extrusions, BrushTipExtrusion{State: state, Shape: shape})
}

// partitionStartIndex returns the index, into extrusions, of the first
// extrusion in the current (still-open) partition.
func (e *Extruder) partitionStartIndex() int {
	for i := len(e.extrusions) - 1; i >= 0; i-- {
		if e.extrusions[i].IsBreak {
			return i + 1
		}
	}
	return 0
}

// nonBreakTail returns up to max trailing non-break extrusions, oldest
// first, stopping early if a break-point is reached.
func (e *Extruder) nonBreakTail(max int) []BrushTipExtrusion {
	n := len(e.extrusions)
	start := n
	for start > 0 && n-start < max && !e.extrusions[start-1].IsBreak {
		start--
	}
	return e.extrusions[start:n]
}

func (e *Extruder) appendSidePoints(pts brush.SidePoints, forward mesh.ForwardLabel) {
	for _, p := range pts.Left {
		e.sides[mesh.Left].AppendPending(p, forward)
	}
	for _, p := range pts.Right {
		e.sides[mesh.Right].AppendPending(p, forward)
	}
}

// extrudeBreakPoint closes out whatever geometry has accumulated in the
// current partition: it emits an endcap (or, for a single-sample partition,
// a whole-shape dot), runs it through the geometry engine, then either
// discards the result (if fewer than 3 vertices resulted, too few to be a
// visible partition) or snapshots it as an Outline. pushExtrusionBreak
// additionally records a break-point in the extrusions list, coalesced with
// any break-point already at the tail.
func (e *Extruder) extrudeBreakPoint(pushExtrusionBreak bool) {
	tail := e.nonBreakTail(2)
	switch len(tail) {
	case 2:
		pts := brush.EndcapPoints(tail[0].Shape, tail[1].Shape, e.maxChordHeight)
		e.appendSidePoints(pts, mesh.ForwardFront)
	case 1:
		dir := geom.UnitVecWithDirection(tail[0].State.Rotation)
		pts := brush.WholeShapePoints(tail[0].Shape, dir, e.maxChordHeight)
		e.appendSidePoints(pts, mesh.ForwardFront)
	}
	if len(tail) > 0 {
		e.processNewVertices(e.simplificationThreshold(tail[len(tail)-1].State))
	}

	if n := e.newVertexCountSincePartitionStart(); n > 0 {
		if n < 3 {
			e.discardSincePartitionStart()
		} else {
			e.snapshotOutline(pushExtrusionBreak)
		}
	}

	if pushExtrusionBreak {
		if n := len(e.extrusions); n == 0 || !e.extrusions[n-1].IsBreak {
			e.extrusions = append(e.extrusions, breakExtrusion())
		}
	}
}

func (e *Extruder) newVertexCountSincePartitionStart() int {
	left, right := e.sides[mesh.Left], e.sides[mesh.Right]
	return (len(left.Indices) - left.PartitionStart.IndexOffset) + (len(right.Indices) - right.PartitionStart.IndexOffset)
}

// snapshotOutline records the current partition's left/right index ranges
// as the most recent Outline, allocating a new slot if none exists yet.
// When sealPartition is true (a genuine break occurred), both sides' next
// partition starts here, and a new, still-empty Outline slot is opened for
// it.
func (e *Extruder) snapshotOutline(sealPartition bool) {
	left, right := e.sides[mesh.Left], e.sides[mesh.Right]
	if len(e.outlines) == 0 {
		e.outlines = append(e.outlines, mesh.Outline{})
	}
	e.outlines[len(e.outlines)-1] = mesh.Outline{
		LeftIndices:  append([]uint32(nil), left.CurrentPartitionIndices()...),
		RightIndices: append([]uint32(nil), right.CurrentPartitionIndices()...),
	}

	if sealPartition {
		left.PartitionStart = mesh.PartitionStart{IndexOffset: len(left.Indices), FirstTriangle: e.mesh.TriangleCount()}
		right.PartitionStart = mesh.PartitionStart{IndexOffset: len(right.Indices), FirstTriangle: e.mesh.TriangleCount()}
		e.outlines = append(e.outlines, mesh.Outline{})
	}
}

// discardSincePartitionStart drops whatever geometry has accumulated in the
// current partition without recording an Outline for it: too few vertices
// resulted to be worth a visible partition (typically just the very first
// sample, before a second one has arrived to generate a cap).
func (e *Extruder) discardSincePartitionStart() {
	left, right := e.sides[mesh.Left], e.sides[mesh.Right]

	vertexFloor := e.mesh.VertexCount()
	if len(left.Indices) > left.PartitionStart.IndexOffset {
		vertexFloor = minU32(vertexFloor, left.Indices[left.PartitionStart.IndexOffset])
	}
	if len(right.Indices) > right.PartitionStart.IndexOffset {
		vertexFloor = minU32(vertexFloor, right.Indices[right.PartitionStart.IndexOffset])
	}

	e.mesh.TruncateTriangles(left.PartitionStart.FirstTriangle)
	e.mesh.TruncateVertices(vertexFloor)
	left.TruncateIndices(left.PartitionStart.IndexOffset)
	right.TruncateIndices(right.PartitionStart.IndexOffset)
	left.Triangulated = left.PartitionStart.IndexOffset
	right.Triangulated = right.PartitionStart.IndexOffset
}

// clearSinceLastBreak drops every extrusion from firstToDrop onward and
// rolls the mesh and both sides back to the current partition's start. If
// isVolatilePass is true and the drop reaches back into the range covered
// by the last SetSavePoint call, the dropped extrusions are retained so a
// subsequent RevertToSavePoint can replay them (scenario: a volatile tail
// is cleared and replaced by a different one before the next save point).
func (e *Extruder) clearSinceLastBreak(firstToDrop int, isVolatilePass bool) {
	if firstToDrop >= len(e.extrusions) {
		return
	}
	cutsSavedPrefix := isVolatilePass && firstToDrop < e.savedPrefixLen
	if cutsSavedPrefix {
		dropped := append([]BrushTipExtrusion(nil), e.extrusions[firstToDrop:e.savedPrefixLen]...)
		e.deletedSaveExtrusions = append(dropped, e.deletedSaveExtrusions...)
		e.savedPrefixLen = firstToDrop
	}
	e.extrusions = e.extrusions[:firstToDrop]

	left, right := e.sides[mesh.Left], e.sides[mesh.Right]
	e.mesh.TruncateTriangles(left.PartitionStart.FirstTriangle)

	vertexFloor := e.mesh.VertexCount()
	if left.PartitionStart.IndexOffset < len(left.Indices) {
		vertexFloor = minU32(vertexFloor, left.Indices[left.PartitionStart.IndexOffset])
	}
	if right.PartitionStart.IndexOffset < len(right.Indices) {
		vertexFloor = minU32(vertexFloor, right.Indices[right.PartitionStart.IndexOffset])
	}
	e.mesh.TruncateVertices(vertexFloor)

	left.TruncateIndices(left.PartitionStart.IndexOffset)
	right.TruncateIndices(right.PartitionStart.IndexOffset)
	left.Triangulated = left.PartitionStart.IndexOffset
	right.Triangulated = right.PartitionStart.IndexOffset
	left.Intersection = nil
	right.Intersection = nil

	if len(e.outlines) > 0 {
		e.outlines[len(e.outlines)-1] = mesh.Outline{}
	}

	if cutsSavedPrefix {
		e.clearedState = e.snapshot()
	}
}

// simplificationThreshold scales the outline simplification tolerance to
// the sampled tip's own size, so that a thin brush is simplified less
// aggressively, in absolute terms, than a thick one.
func (e *Extruder) simplificationThreshold(state brush.TipState) float32 {
	const factor = 0.001
	size := state.Width
	if state.Height > size {
		size = state.Height
	}
	t := factor * size
	if t < e.eps {
		return e.eps
	}
	return t
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
