package finder

import (
	"math"
	"slices"
)

// SortByDistance orders records nearest first when an origin is known.
// Records without a finite distance go last, keeping their relative order.
// Without an origin the input order is returned untouched.
func SortByDistance(points []AnnotatedPoint, origin Origin) []AnnotatedPoint {
	out := slices.Clone(points)
	if !origin.Known() {
		return out
	}

	slices.SortStableFunc(out, func(a, b AnnotatedPoint) int {
		da, db := sortKey(a), sortKey(b)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return out
}

func sortKey(p AnnotatedPoint) float64 {
	if d := p.FiniteDistance(); d != nil {
		return *d
	}
	return math.Inf(1)
}
