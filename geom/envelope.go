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

package geom

import georect "seehuhn.de/go/geom/rect"

// Envelope is an optional axis-aligned bounding rectangle, used for
// reporting the visually-updated region of a stroke update. It is backed by
// seehuhn.de/go/geom/rect.Rect, since envelopes are produced for
// consumption outside the single-precision hot path (cameras, dirty-rect
// repaint).
type Envelope struct {
	rect  georect.Rect
	empty bool
}

// EmptyEnvelope returns an envelope containing no points.
func EmptyEnvelope() Envelope { return Envelope{empty: true} }

// IsEmpty reports whether the envelope contains no points.
func (e Envelope) IsEmpty() bool { return e.empty }

// AddPoint returns the envelope extended to cover p.
func (e Envelope) AddPoint(p Point) Envelope {
	x, y := float64(p.X), float64(p.Y)
	if e.empty {
		return Envelope{rect: georect.Rect{LLx: x, LLy: y, URx: x, URy: y}}
	}
	r := e.rect
	if x < r.LLx {
		r.LLx = x
	}
	if x > r.URx {
		r.URx = x
	}
	if y < r.LLy {
		r.LLy = y
	}
	if y > r.URy {
		r.URy = y
	}
	return Envelope{rect: r}
}

// Union returns the smallest envelope covering both e and f.
func (e Envelope) Union(f Envelope) Envelope {
	if e.empty {
		return f
	}
	if f.empty {
		return e
	}
	return Envelope{rect: georect.Rect{
		LLx: minF64(e.rect.LLx, f.rect.LLx),
		LLy: minF64(e.rect.LLy, f.rect.LLy),
		URx: maxF64(e.rect.URx, f.rect.URx),
		URy: maxF64(e.rect.URy, f.rect.URy),
	}}
}

// Rect returns the underlying bounding rectangle and whether it is valid
// (false when the envelope is empty).
func (e Envelope) Rect() (georect.Rect, bool) {
	if e.empty {
		return georect.Rect{}, false
	}
	return e.rect, true
}

func minF64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
