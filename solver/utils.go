package solver

import (
	"golang.org/x/exp/constraints"
)

//////
// Helper functions.
//////

// clamp restricts v to the closed interval [lo, hi].
func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
