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

package mesh

import "github.com/google/ink-sub009/geom"

// Which names the two sides of a stroke outline.
type Which int

const (
	Left Which = iota
	Right
)

// PendingVertex is a buffered outline point that has not yet been
// committed (simplified and triangulated) into the mesh.
type PendingVertex struct {
	Position geom.Point
	Forward  ForwardLabel
}

// PartitionStart records where the current partition's outline began on
// this side, so that extrudeBreakPoint (or a self-intersection give-up)
// can snapshot the partition as an Outline.
type PartitionStart struct {
	// IndexOffset is the offset into Side.Indices at which this partition
	// begins.
	IndexOffset int
	// FirstTriangle is the index of the first mesh triangle belonging to
	// this partition.
	FirstTriangle uint32
	// OutlineConnectsSides records whether the first triangle of the
	// partition connects both sides (true) or is degenerate/absent because
	// the partition just started (false).
	OutlineConnectsSides bool
	// IsForwardExterior records whether the partition's first vertex is
	// forward-exterior (a cap vertex) rather than an ordinary side vertex.
	IsForwardExterior bool
}

// SelfIntersection records an in-progress self-loop repair on one side of
// the outline.
type SelfIntersection struct {
	// StartingOffset is the offset, into the Indices of the outline the new
	// segment crossed (this side's own, or the opposite side's), at which
	// the crossed segment starts.
	StartingOffset int
	// Pivot is the mesh vertex index the retriangulation fans around: the
	// start vertex of the crossed segment.
	Pivot uint32
	// RetriangulationStarted is false while the engine is only admitting
	// vertices geometrically, without yet mutating triangles.
	RetriangulationStarted bool
	// OutlineRepositionBudget is the remaining allowance, in outline
	// length, by which the pre-intersection anchor may still be shifted
	// before the engine must give up.
	OutlineRepositionBudget float32
	// OldestRetriangulationTriangle is the index of the oldest mesh
	// triangle that has been touched by this repair.
	OldestRetriangulationTriangle uint32
	// LastProposedVertex is the most recently admitted vertex index.
	LastProposedVertex uint32
}

// Side is the mutable per-side state the geometry engine maintains: the
// committed outline index list, the buffer of not-yet-committed vertices,
// and whatever self-intersection repair is currently in progress.
type Side struct {
	Which Which

	// Indices is the ordered list of mesh vertex indices forming this
	// side's outline, spanning every partition emitted so far.
	Indices []uint32

	// Pending holds outline points appended by the current extrusion step
	// that have not yet passed through simplification and triangulation.
	Pending []PendingVertex

	// FirstTriangleVertex is 0 for the left side and 1 for the right side:
	// the parity used when zig-zagging between the two sides' queues
	// during triangulation.
	FirstTriangleVertex uint32

	// Triangulated is the number of this side's Indices already consumed by
	// the zig-zag triangulator.
	Triangulated int

	// Discontinuities lists offsets into Indices at which a visible gap
	// was introduced, either by a self-intersection give-up or by a clean
	// intersection end.
	Discontinuities []int

	// Intersection is non-nil while this side is inside a detected
	// self-loop.
	Intersection *SelfIntersection

	PartitionStart PartitionStart

	// RecentlySimplified holds positions simplified away in the previous
	// processNewVertices pass, which may not be reinstated as long as a
	// newly proposed point lies within epsilon of one of them.
	RecentlySimplified []geom.Point
}

// NewSide returns a zero-valued Side for the given which-ness, with
// FirstTriangleVertex preset to its zig-zag parity.
func NewSide(which Which) *Side {
	ftv := uint32(0)
	if which == Right {
		ftv = 1
	}
	return &Side{Which: which, FirstTriangleVertex: ftv}
}

// Reset clears all of the side's state for reuse at the start of a new
// stroke, preserving slice capacity.
func (s *Side) Reset() {
	s.Indices = s.Indices[:0]
	s.Pending = s.Pending[:0]
	s.Triangulated = 0
	s.Discontinuities = s.Discontinuities[:0]
	s.Intersection = nil
	s.PartitionStart = PartitionStart{}
	s.RecentlySimplified = s.RecentlySimplified[:0]
}

// LastIndex returns the most recently committed vertex index on this side
// and whether the side has any committed vertices at all.
func (s *Side) LastIndex() (uint32, bool) {
	if len(s.Indices) == 0 {
		return 0, false
	}
	return s.Indices[len(s.Indices)-1], true
}

// AppendPending buffers p as a not-yet-committed outline point with the
// given forward label.
func (s *Side) AppendPending(p geom.Point, forward ForwardLabel) {
	s.Pending = append(s.Pending, PendingVertex{Position: p, Forward: forward})
}

// CommitIndex appends idx as a newly committed outline vertex.
func (s *Side) CommitIndex(idx uint32) {
	s.Indices = append(s.Indices, idx)
}

// TruncateIndices discards committed indices from offset n onward. It never
// grows the list; n beyond the current length is a no-op.
func (s *Side) TruncateIndices(n int) {
	if n < len(s.Indices) {
		s.Indices = s.Indices[:n]
	}
	if s.Triangulated > len(s.Indices) {
		s.Triangulated = len(s.Indices)
	}
}

// CurrentPartitionIndices returns the slice of Indices belonging to the
// current (not yet snapshotted) partition.
func (s *Side) CurrentPartitionIndices() []uint32 {
	return s.Indices[s.PartitionStart.IndexOffset:]
}

// MarkSimplifiedAway records p as simplified away this pass, blocking it
// from being reinstated by a later pass.
func (s *Side) MarkSimplifiedAway(p geom.Point) {
	s.RecentlySimplified = append(s.RecentlySimplified, p)
}

// WasRecentlySimplified reports whether p lies within eps of a position
// simplified away in the previous pass.
func (s *Side) WasRecentlySimplified(p geom.Point, eps float32) bool {
	for _, q := range s.RecentlySimplified {
		if geom.Distance(p, q) < eps {
			return true
		}
	}
	return false
}

// ClearRecentlySimplified drops the simplified-away blacklist, called at
// the start of each processNewVertices pass before it is repopulated.
func (s *Side) ClearRecentlySimplified() {
	s.RecentlySimplified = s.RecentlySimplified[:0]
}
