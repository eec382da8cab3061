package solver

import (
	"math"
)

//////
// Warp/unwarp transforms.
//
// The optimizer models every variable on a linear domain. These transforms
// move values between that internal domain and the variable's native domain
// around every ask/tell.
//////

// Unwarp maps an internal linear-domain value (as returned by the
// optimizer's Ask) to the variable's native domain.
//
// Log-uniform values are exponentiated; discrete values are floored and
// clamped into {Low, ..., High}; uniform and categorical values pass
// through unchanged (a categorical internal value is already an integer
// index).
func (d VariableDomain) Unwarp(x float64) float64 {
	switch d.Kind {
	case KindLogUniform:
		return math.Exp(x)
	case KindDiscrete:
		return clamp(math.Floor(x), d.Low, d.High)
	default:
		return x
	}
}

// Warp maps a native-domain value to the internal linear domain. It is the
// inverse of Unwarp up to the information discarded by flooring.
func (d VariableDomain) Warp(v float64) float64 {
	if d.Kind == KindLogUniform {
		return math.Log(v)
	}

	return v
}
