package tpe

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Const, vars, types.
//////

// HistogramEstimatorBuilder builds HistogramEstimator instances.
//
// This is the strategy to use for categorical parameters. Told values must
// already be 0-based bin indices, not raw categorical values; an index at or
// beyond the cardinality panics rather than silently reading out of bounds.
type HistogramEstimatorBuilder struct{}

// HistogramEstimator is a smoothed discrete distribution over integer bins.
//
// Every bin starts with one pseudo-count (additive/Laplace smoothing), so no
// category ever has zero probability, even with no observations at all. The
// probabilities always sum to 1.
type HistogramEstimator struct {
	probabilities []float64
}

//////
// Methods.
//////

// BuildDensityEstimator fits a smoothed histogram to the given samples.
//
// How it works:
//  1. cardinality = ceil(range width) integer bins
//  2. effective count n = len(samples) + cardinality, one pseudo-count per bin
//  3. every bin starts at 1/n; each sample adds 1/n to the bin at floor(sample)
func (b HistogramEstimatorBuilder) BuildDensityEstimator(xs []float64, r Range) (DensityEstimator, error) {
	cardinality := int(math.Ceil(r.Width()))
	n := len(xs) + cardinality

	weight := 1 / float64(n)
	probabilities := make([]float64, cardinality)
	for i := range probabilities {
		probabilities[i] = weight
	}

	for _, x := range xs {
		probabilities[int(math.Floor(x))] += weight
	}

	return &HistogramEstimator{probabilities: probabilities}, nil
}

// LogPDF returns the probability of the bin at floor(x).
//
// Note that the result is the raw bin probability, not its logarithm. The
// optimizer scores it on the same scale as the Parzen strategy's true
// log-density; see the DensityEstimator docs for the implications.
func (e *HistogramEstimator) LogPDF(x float64) float64 {
	return e.probabilities[int(math.Floor(x))]
}

// Sample draws a bin index proportionally to its probability and returns it
// as a float64.
func (e *HistogramEstimator) Sample(rng *rand.Rand) float64 {
	return distuv.NewCategorical(e.probabilities, rng).Rand()
}

//////
// Factory.
//////

// NewHistogramEstimatorBuilder creates a builder of smoothed-histogram
// density estimators, the strategy for categorical parameters.
func NewHistogramEstimatorBuilder() HistogramEstimatorBuilder {
	return HistogramEstimatorBuilder{}
}
