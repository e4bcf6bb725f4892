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

// computeDerivatives fills in the side derivative, forward derivative, and
// side-margin upper bound for every vertex touched since the mesh's
// last ResetMutationTracking call. Interior vertices (not on either
// outline) and vertices belonging only to degenerate triangles get a zero
// side derivative and a zero side margin.
func (e *Extruder) computeDerivatives() {
	m := e.mesh
	incident := e.buildIncidentTriangles()

	for v := m.FirstMutatedVertex(); v < m.VertexCount(); v++ {
		tris := incident[v]
		if len(tris) == 0 || m.SideLabels[v] == mesh.SideInterior {
			m.SetDerivatives(v, geom.Vec{}, geom.Vec{}, 0)
			continue
		}

		var sumMag, fwdSumMag float32
		var sumUnit, fwdSumUnit geom.Vec
		var n, fwdN int

		outward := outwardHint(m.SideLabels[v])

		for _, t := range tris {
			a, b, c := m.Triangle(t)
			opp0, opp1, ok := oppositeEdge(a, b, c, v)
			if !ok {
				continue
			}
			p := m.Positions[v]
			edge := geom.Segment{Start: m.Positions[opp0], End: m.Positions[opp1]}
			tProj, ok := edge.Project(p)
			var foot geom.Point
			if ok {
				foot = edge.Lerp(clamp01(tProj))
			} else {
				foot = edge.Start
			}
			vec := p.Sub(foot)
			if vec.Dot(outward) < 0 {
				vec = vec.Neg()
			}
			mag := vec.Magnitude()
			if mag == 0 {
				continue
			}
			sumMag += mag
			sumUnit = sumUnit.Add(vec.AsUnit())
			n++

			fwd := forwardAlong(m.Positions[opp0], m.Positions[opp1], m.ForwardLabels[v])
			if fwd.MagnitudeSquared() > 0 {
				fwdSumMag += fwd.Magnitude()
				fwdSumUnit = fwdSumUnit.Add(fwd.AsUnit())
				fwdN++
			}
		}

		var sideDeriv, fwdDeriv geom.Vec
		if n > 0 {
			avgMag := sumMag / float32(n)
			avgDir := sumUnit.Div(float32(n)).AsUnit()
			sideDeriv = avgDir.Mul(avgMag)
		}
		if fwdN > 0 {
			avgMag := fwdSumMag / float32(fwdN)
			avgDir := fwdSumUnit.Div(float32(fwdN)).AsUnit()
			fwdDeriv = avgDir.Mul(avgMag)
		}

		margin := e.sideMargin(v, tris, sideDeriv)
		m.SetDerivatives(v, sideDeriv, fwdDeriv, margin)
	}
}

// buildIncidentTriangles returns, for every vertex index, the list of
// triangle indices referencing it.
func (e *Extruder) buildIncidentTriangles() [][]uint32 {
	m := e.mesh
	out := make([][]uint32, m.VertexCount())
	for t := uint32(0); t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		out[a] = append(out[a], t)
		out[b] = append(out[b], t)
		out[c] = append(out[c], t)
	}
	return out
}

// oppositeEdge returns the two triangle vertices other than v, in the
// triangle's own winding order, and false if v is not one of a, b, c.
func oppositeEdge(a, b, c, v uint32) (uint32, uint32, bool) {
	switch v {
	case a:
		return b, c, true
	case b:
		return c, a, true
	case c:
		return a, b, true
	default:
		return 0, 0, false
	}
}

// outwardHint returns a nominal outward direction for a side label, used
// only to pick a consistent sign for the per-triangle projected vectors
// before they are averaged.
func outwardHint(label mesh.SideLabel) geom.Vec {
	if label == mesh.SideExteriorLeft {
		return geom.Vec{X: 0, Y: 1}
	}
	return geom.Vec{X: 0, Y: -1}
}

// forwardAlong returns the opposite edge's own direction vector, oriented
// to agree with the vertex's forward label (front points further along the
// stroke, back points backward), or the zero vector for an interior vertex.
func forwardAlong(p0, p1 geom.Point, forward mesh.ForwardLabel) geom.Vec {
	if forward == mesh.ForwardInterior {
		return geom.Vec{}
	}
	d := p1.Sub(p0)
	if forward == mesh.ForwardBack {
		return d.Neg()
	}
	return d
}

// sideMargin bounds how far v could be displaced along sideDeriv before a
// triangle sharing v would fold over the opposite edge of one of its
// incident triangles: the smallest, across incident triangles, of the
// distance from v to that edge along sideDeriv's direction.
func (e *Extruder) sideMargin(v uint32, tris []uint32, sideDeriv geom.Vec) float32 {
	if sideDeriv.MagnitudeSquared() == 0 {
		return 0
	}
	dir := sideDeriv.AsUnit()
	m := e.mesh
	p := m.Positions[v]

	best := float32(-1)
	for _, t := range tris {
		a, b, c := m.Triangle(t)
		opp0, opp1, ok := oppositeEdge(a, b, c, v)
		if !ok {
			continue
		}
		tri := m.TriangleGeometry(t)
		if tri.IsDegenerate() {
			return 0
		}
		d, ok := rayToSegmentDistance(p, dir, m.Positions[opp0], m.Positions[opp1])
		if !ok {
			continue
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// rayToSegmentDistance finds where the ray from origin in direction dir
// crosses the line through a-b, clamps that crossing point to within
// [0.1, 0.9] of the segment, and returns the distance from origin to the
// clamped point.
func rayToSegmentDistance(origin geom.Point, dir geom.Vec, a, b geom.Point) (float32, bool) {
	edge := b.Sub(a)
	denom := geom.Determinant(dir, edge)
	if denom == 0 {
		return 0, false
	}
	diff := a.Sub(origin)
	t := geom.Determinant(diff, edge) / denom
	if t <= 0 {
		return 0, false
	}
	u := geom.Determinant(diff, dir) / denom
	if u < 0.1 {
		u = 0.1
	} else if u > 0.9 {
		u = 0.9
	}
	crossing := a.Add(edge.Mul(u))
	return crossing.Sub(origin).Magnitude(), true
}

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
