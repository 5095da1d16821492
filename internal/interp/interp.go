// Package interp evaluates datum profiles: clamped piecewise-linear
// interpolation of a knot list against a base field column.
package interp

import (
	"sort"

	"github.com/vk/drapego/internal/layup"
)

// Interpolate maps every value of base through the piecewise-linear
// profile defined by knots and returns a new slice of the same length.
//
// Knots are defensively sorted ascending by X before use; the sort is
// stable and duplicate X values collapse to the first-defined knot, so a
// config that repeats an X cannot silently reorder the profile. Queries
// below the first knot or above the last clamp to the boundary Y value;
// there is no extrapolation. Inputs are never mutated.
func Interpolate(base []float64, knots []layup.Knot) ([]float64, error) {
	if len(knots) == 0 {
		return nil, &layup.ValidationError{Msg: "datum has no knot values"}
	}

	sorted := make([]layup.Knot, len(knots))
	copy(sorted, knots)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	// Duplicate X policy: first occurrence wins.
	dedup := sorted[:1]
	for _, k := range sorted[1:] {
		if k.X != dedup[len(dedup)-1].X {
			dedup = append(dedup, k)
		}
	}

	out := make([]float64, len(base))
	for i, x := range base {
		out[i] = lookup(dedup, x)
	}
	return out, nil
}

// lookup evaluates the profile at a single x. knots are sorted ascending
// with strictly increasing X.
func lookup(knots []layup.Knot, x float64) float64 {
	first, last := knots[0], knots[len(knots)-1]
	if x <= first.X {
		return first.Y
	}
	if x >= last.X {
		return last.Y
	}
	j := sort.Search(len(knots), func(i int) bool { return knots[i].X >= x })
	lo, hi := knots[j-1], knots[j]
	t := (x - lo.X) / (hi.X - lo.X)
	return lo.Y + t*(hi.Y-lo.Y)
}
