package tpe

import (
	"golang.org/x/exp/rand"
)

//////
// Density estimation abstraction.
//
// The optimizer is generic over how it models the distribution of observed
// parameter values: a Parzen window (Gaussian mixture) for numerical
// parameters, or a smoothed histogram for categorical ones. The set of
// strategies is closed; both are selected at construction time by handing
// the optimizer the matching builder value.
//////

// DensityEstimator estimates the probability density of the parameter values
// it was fitted on, and draws new values from the fitted distribution.
//
// An estimator is ephemeral: it is rebuilt from scratch on every Ask from a
// snapshot of the current trials and discarded after the call.
//
// Implementation notes:
//   - Sample and LogPDF must be self-consistent within one strategy
//   - ParzenEstimator.LogPDF returns a true log-density while
//     HistogramEstimator.LogPDF returns a raw bin probability; the optimizer
//     deliberately scores both on the same scale
type DensityEstimator interface {
	// Sample draws one value from the fitted distribution using the given
	// random number generator.
	Sample(rng *rand.Rand) float64

	// LogPDF estimates the log probability density at x.
	LogPDF(x float64) float64
}

// BuildDensityEstimator builds density estimators from observed samples.
//
// Builders must accept an empty sample slice and still produce a valid, if
// diffuse, estimator. The optimizer filters out NaN ("absent") params before
// calling, so builders only ever see finite values inside the range.
type BuildDensityEstimator interface {
	// BuildDensityEstimator fits an estimator to the given samples over the
	// given range.
	BuildDensityEstimator(xs []float64, r Range) (DensityEstimator, error)
}
