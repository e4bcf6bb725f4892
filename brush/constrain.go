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

// maxConstrainerSteps bounds the bisection search in Constrain.
const maxConstrainerSteps = 7

// ConstrainedResultKind classifies the outcome of Constrain.
type ConstrainedResultKind int

const (
	ProposedIsValid ConstrainedResultKind = iota
	ConstrainedFound
	ProposedContainsLast
	LastContainsProposed
	CannotFindIntermediate
)

// ConstrainedResult is the outcome of Constrain: Kind classifies the
// result, State/Shape hold the accepted intermediate tip (populated for
// ProposedIsValid and ConstrainedFound), and T is the interpolation
// parameter between last and proposed at which that tip was found (1 for
// ProposedIsValid, the bisection's final lower bound for ConstrainedFound).
type ConstrainedResult struct {
	Kind  ConstrainedResultKind
	State TipState
	Shape TipShape
	T     float32
}

// Constrain finds a TipState between last and proposed (inclusive) whose
// TipShape has good external tangents with lastShape, using bisection on
// the interpolation parameter t in [0, 1]. eps is the tangent-shape
// tolerance and is also used to scale the stationary-position tolerance.
func Constrain(last, proposed TipState, lastShape TipShape, eps float32) ConstrainedResult {
	const stationaryFactor = 0.1
	stationaryTol := stationaryFactor * eps

	proposedShape := NewTipShape(proposed, eps)
	if tangentQualityForStates(last, proposed, lastShape, proposedShape, stationaryTol) == GoodTangents {
		return ConstrainedResult{Kind: ProposedIsValid, State: proposed, Shape: proposedShape, T: 1}
	}
	quality, _ := EvaluateTangentQuality(lastShape, proposedShape)
	switch quality {
	case NoTangentsFirstContainsSecond:
		return ConstrainedResult{Kind: LastContainsProposed}
	case NoTangentsSecondContainsFirst:
		return ConstrainedResult{Kind: ProposedContainsLast}
	}

	if geom.Distance(last.Position, proposed.Position) < stationaryTol {
		return ConstrainedResult{Kind: CannotFindIntermediate}
	}

	lerpShape := func(t float32) (TipState, TipShape) {
		s := LerpShapeAttributes(last, proposed, t)
		return s, NewTipShape(s, eps)
	}

	lower, upper := float32(0), float32(1)
	bestState, bestShape := lerpShape(lower)
	if tangentQualityForStates(last, bestState, lastShape, bestShape, stationaryTol) != GoodTangents {
		return ConstrainedResult{Kind: CannotFindIntermediate}
	}

	for i := 0; i < maxConstrainerSteps; i++ {
		mid := (lower + upper) / 2
		midState, midShape := lerpShape(mid)
		if tangentQualityForStates(last, midState, lastShape, midShape, stationaryTol) == GoodTangents {
			lower = mid
			bestState, bestShape = midState, midShape
		} else {
			upper = mid
		}
	}

	return ConstrainedResult{Kind: ConstrainedFound, State: bestState, Shape: bestShape, T: lower}
}

// tangentQualityForStates evaluates tangent quality between lastShape and
// candidateShape, short-circuiting to GoodTangents when last and candidate
// have identical shape parameters and their centers differ by more than
// travelThreshold: a rigid translation of a convex shape always has good
// external tangents.
func tangentQualityForStates(last, candidate TipState, lastShape, candidateShape TipShape, travelThreshold float32) TangentQuality {
	if sameShapeParameters(last, candidate) &&
		geom.Distance(last.Position, candidate.Position) > travelThreshold {
		return GoodTangents
	}
	quality, _ := EvaluateTangentQuality(lastShape, candidateShape)
	return quality
}

func sameShapeParameters(a, b TipState) bool {
	return a.Width == b.Width &&
		a.Height == b.Height &&
		a.CornerRounding == b.CornerRounding &&
		a.Rotation == b.Rotation &&
		a.Slant == b.Slant &&
		a.Pinch == b.Pinch
}
