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

// Package extrude drives an incremental stroke extrusion core: it takes a
// sequence of brush.TipState samples and grows a mesh.View's vertex and
// triangle buffers to match, resolving self-intersections as the outline
// progresses and reporting the region of the mesh that changed on each
// call.
package extrude

import (
	"github.com/google/ink-sub009/brush"
	"github.com/google/ink-sub009/geom"
)

// BrushTipExtrusion is either a break-point marker, ending the current
// outline partition, or a sampled tip state paired with its derived shape.
// Consecutive break-points are never both stored; extrudeBreakPoint
// coalesces them into one.
type BrushTipExtrusion struct {
	IsBreak bool
	State   brush.TipState
	Shape   brush.TipShape
}

func breakExtrusion() BrushTipExtrusion { return BrushTipExtrusion{IsBreak: true} }

// SurfaceUVMode selects how a renderer should derive texture coordinates
// along the stroke's forward axis. The extruder stores this opaquely; nothing
// in this package interprets it.
type SurfaceUVMode int

const (
	// SurfaceUVUnitAverage assigns one texture repeat per average brush
	// diameter travelled.
	SurfaceUVUnitAverage SurfaceUVMode = iota
	// SurfaceUVUnitDistance assigns one texture repeat per unit of
	// stroke-space distance travelled, irrespective of brush size.
	SurfaceUVUnitDistance
)

// StrokeShapeUpdate reports what an ExtendStroke call changed:
// Region is the smallest envelope covering every mesh vertex or triangle
// touched since the previous call; FirstIndexOffset and FirstVertexOffset,
// when non-nil, give the lowest offset into the triangle index buffer (three
// times the first changed triangle) and the lowest mesh vertex index that
// changed, for renderers that maintain their own derived buffers
// incrementally.
type StrokeShapeUpdate struct {
	Region            geom.Envelope
	FirstIndexOffset  *uint32
	FirstVertexOffset *uint32
}
