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

// Package mesh holds the append-only vertex/triangle buffer the stroke
// extruder grows incrementally, plus the per-side outline bookkeeping
// (pending vertices, self-intersection state, partition boundaries) that
// sits on top of it. Everything here is index-only: the mesh is the sole
// owner of vertex and triangle storage; sides and outlines refer into it
// by index and are reused across strokes.
package mesh

import "github.com/google/ink-sub009/geom"

// SideLabel classifies a vertex's position relative to the stroke's
// left/right outline.
type SideLabel int

const (
	// SideInterior marks a vertex that is not on either outline.
	SideInterior SideLabel = iota
	// SideExteriorLeft marks a vertex on the left outline.
	SideExteriorLeft
	// SideExteriorRight marks a vertex on the right outline.
	SideExteriorRight
)

// ForwardLabel classifies a vertex's position relative to the stroke's
// travel direction.
type ForwardLabel int

const (
	// ForwardInterior marks a vertex that is not a forward-facing cap vertex.
	ForwardInterior ForwardLabel = iota
	// ForwardFront marks a vertex on the leading cap.
	ForwardFront
	// ForwardBack marks a vertex on the trailing cap.
	ForwardBack
)

// View is the mutable vertex/triangle buffer the extruder grows. Vertices
// and triangles are only ever appended or truncated back to a previous
// count; there is no in-place vertex deletion. Per-vertex side/forward
// derivatives and side-margin labels are filled in by the derivative
// calculator after the mesh-mutating part of a pass completes.
type View struct {
	Positions          []geom.Point
	SideLabels         []SideLabel
	ForwardLabels      []ForwardLabel
	SideDerivatives    []geom.Vec
	ForwardDerivatives []geom.Vec
	SideMargins        []float32

	// Triangles stores vertex indices in flat triples: triangle i occupies
	// Triangles[3*i], Triangles[3*i+1], Triangles[3*i+2].
	Triangles []uint32

	firstMutatedVertex   uint32
	firstMutatedTriangle uint32
}

// Reset clears all buffers but keeps their capacity, for reuse at the start
// of a new stroke.
func (v *View) Reset() {
	v.Positions = v.Positions[:0]
	v.SideLabels = v.SideLabels[:0]
	v.ForwardLabels = v.ForwardLabels[:0]
	v.SideDerivatives = v.SideDerivatives[:0]
	v.ForwardDerivatives = v.ForwardDerivatives[:0]
	v.SideMargins = v.SideMargins[:0]
	v.Triangles = v.Triangles[:0]
	v.firstMutatedVertex = 0
	v.firstMutatedTriangle = 0
}

// VertexCount returns the number of vertices currently in the mesh.
func (v *View) VertexCount() uint32 { return uint32(len(v.Positions)) }

// TriangleCount returns the number of triangles currently in the mesh.
func (v *View) TriangleCount() uint32 { return uint32(len(v.Triangles) / 3) }

// AppendVertex appends a new vertex at position p with the given labels and
// returns its index. Side derivative, forward derivative, and side margin
// start at zero; the derivative calculator fills them in once the pass's
// triangles are known.
func (v *View) AppendVertex(p geom.Point, side SideLabel, forward ForwardLabel) uint32 {
	idx := v.VertexCount()
	v.Positions = append(v.Positions, p)
	v.SideLabels = append(v.SideLabels, side)
	v.ForwardLabels = append(v.ForwardLabels, forward)
	v.SideDerivatives = append(v.SideDerivatives, geom.Vec{})
	v.ForwardDerivatives = append(v.ForwardDerivatives, geom.Vec{})
	v.SideMargins = append(v.SideMargins, 0)
	return idx
}

// AppendTriangle appends a triangle referencing vertices a, b, c, in that
// order, and returns its index. The caller is responsible for winding; at
// rest (between ExtendStroke calls) every triangle must be
// counter-clockwise or degenerate (Invariant 3).
func (v *View) AppendTriangle(a, b, c uint32) uint32 {
	idx := v.TriangleCount()
	v.Triangles = append(v.Triangles, a, b, c)
	return idx
}

// Triangle returns the three vertex indices of triangle i.
func (v *View) Triangle(i uint32) (a, b, c uint32) {
	return v.Triangles[3*i], v.Triangles[3*i+1], v.Triangles[3*i+2]
}

// TriangleGeometry returns the three vertex positions of triangle i.
func (v *View) TriangleGeometry(i uint32) geom.Triangle {
	a, b, c := v.Triangle(i)
	return geom.Triangle{A: v.Positions[a], B: v.Positions[b], C: v.Positions[c]}
}

// TruncateVertices discards all vertices from index n onward, along with
// their labels and derivatives.
func (v *View) TruncateVertices(n uint32) {
	if n >= v.VertexCount() {
		return
	}
	v.Positions = v.Positions[:n]
	v.SideLabels = v.SideLabels[:n]
	v.ForwardLabels = v.ForwardLabels[:n]
	v.SideDerivatives = v.SideDerivatives[:n]
	v.ForwardDerivatives = v.ForwardDerivatives[:n]
	v.SideMargins = v.SideMargins[:n]
	if v.firstMutatedVertex > n {
		v.firstMutatedVertex = n
	}
}

// TruncateTriangles discards all triangles from index n onward.
func (v *View) TruncateTriangles(n uint32) {
	if n >= v.TriangleCount() {
		return
	}
	v.Triangles = v.Triangles[:3*n]
	if v.firstMutatedTriangle > n {
		v.firstMutatedTriangle = n
	}
}

// ResetMutationTracking marks the mesh's current vertex and triangle counts
// as the high-water mark below which nothing further will be reported as
// mutated, until the next mutation.
func (v *View) ResetMutationTracking() {
	v.firstMutatedVertex = v.VertexCount()
	v.firstMutatedTriangle = v.TriangleCount()
}

// FirstMutatedVertex returns the lowest vertex index touched since the last
// ResetMutationTracking call.
func (v *View) FirstMutatedVertex() uint32 { return v.firstMutatedVertex }

// FirstMutatedTriangle returns the lowest triangle index touched since the
// last ResetMutationTracking call.
func (v *View) FirstMutatedTriangle() uint32 { return v.firstMutatedTriangle }

// MarkVertexMutated records that vertex i's attributes changed in place
// (rather than having been freshly appended).
func (v *View) MarkVertexMutated(i uint32) {
	if i < v.firstMutatedVertex {
		v.firstMutatedVertex = i
	}
}

// MarkTriangleMutated records that triangle i changed in place (rather than
// having been freshly appended).
func (v *View) MarkTriangleMutated(i uint32) {
	if i < v.firstMutatedTriangle {
		v.firstMutatedTriangle = i
	}
}

// SetDerivatives sets the side derivative, forward derivative, and side
// margin of vertex i, as computed by the derivative calculator.
func (v *View) SetDerivatives(i uint32, side, forward geom.Vec, margin float32) {
	v.SideDerivatives[i] = side
	v.ForwardDerivatives[i] = forward
	v.SideMargins[i] = margin
}
