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

import (
	"testing"

	"github.com/google/ink-sub009/geom"
)

func TestNewSideFirstTriangleVertexParity(t *testing.T) {
	left := NewSide(Left)
	right := NewSide(Right)
	if left.FirstTriangleVertex != 0 {
		t.Errorf("left.FirstTriangleVertex = %d, want 0", left.FirstTriangleVertex)
	}
	if right.FirstTriangleVertex != 1 {
		t.Errorf("right.FirstTriangleVertex = %d, want 1", right.FirstTriangleVertex)
	}
}

func TestSideCommitAndLastIndex(t *testing.T) {
	s := NewSide(Left)
	if _, ok := s.LastIndex(); ok {
		t.Fatalf("LastIndex() on empty side returned ok=true")
	}
	s.CommitIndex(5)
	s.CommitIndex(7)
	idx, ok := s.LastIndex()
	if !ok || idx != 7 {
		t.Errorf("LastIndex() = (%d, %v), want (7, true)", idx, ok)
	}
}

func TestSideTruncateIndicesClampsTriangulated(t *testing.T) {
	s := NewSide(Left)
	for i := uint32(0); i < 5; i++ {
		s.CommitIndex(i)
	}
	s.Triangulated = 4
	s.TruncateIndices(2)
	if s.Triangulated != 2 {
		t.Errorf("Triangulated after TruncateIndices(2) = %d, want 2", s.Triangulated)
	}
}

func TestSideRecentlySimplifiedBlocksReinstatement(t *testing.T) {
	s := NewSide(Left)
	p := geom.Point{X: 1, Y: 2}
	if s.WasRecentlySimplified(p, 1e-4) {
		t.Fatalf("WasRecentlySimplified() true before any point was marked")
	}
	s.MarkSimplifiedAway(p)
	if !s.WasRecentlySimplified(p, 1e-4) {
		t.Errorf("WasRecentlySimplified() false for a point just marked away")
	}
	if !s.WasRecentlySimplified(geom.Point{X: 1.00001, Y: 2}, 1e-3) {
		t.Errorf("WasRecentlySimplified() false for a point within eps of one marked away")
	}
	s.ClearRecentlySimplified()
	if s.WasRecentlySimplified(p, 1e-4) {
		t.Errorf("WasRecentlySimplified() true after ClearRecentlySimplified()")
	}
}

func TestSideCurrentPartitionIndices(t *testing.T) {
	s := NewSide(Left)
	for i := uint32(0); i < 4; i++ {
		s.CommitIndex(i)
	}
	s.PartitionStart.IndexOffset = 2
	got := s.CurrentPartitionIndices()
	want := []uint32{2, 3}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("CurrentPartitionIndices() = %v, want %v", got, want)
	}
}
