package tpe

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Const, vars, types.
//////

// ParzenEstimatorBuilder builds ParzenEstimator instances.
//
// This is the strategy to use for numerical (continuous or discrete)
// parameters.
type ParzenEstimatorBuilder struct{}

// ParzenEstimator is a Parzen-window based density estimator: a 1-D Gaussian
// mixture with one component per observed sample plus one synthetic prior
// component at the range midpoint.
//
// Fields:
// - components: one normal distribution per mixture component, sorted by mean
// - paramRange: the range the estimator was fitted over
// - pAccept: average probability mass the components place inside the range
//
// The mixture is equally weighted. pAccept renormalizes the density for the
// truncation induced by rejection sampling against the range.
type ParzenEstimator struct {
	components []distuv.Normal
	paramRange Range
	pAccept    float64
}

//////
// Methods.
//////

// BuildDensityEstimator fits a Gaussian mixture to the given samples.
//
// How it works:
//  1. Appends a synthetic prior sample at the range midpoint, so there is at
//     least one component even with zero observations
//  2. Sorts all values ascending; each becomes the mean of one component
//  3. Assigns each component's stddev from the larger of its neighbor gaps,
//     forcing the first and last component to their single inward gap
//  4. Clamps every stddev into [width/min(100, 1+n), width]
//  5. Computes pAccept, the average in-range probability mass per component
func (b ParzenEstimatorBuilder) BuildDensityEstimator(xs []float64, r Range) (DensityEstimator, error) {
	means := make([]float64, 0, len(xs)+1)
	means = append(means, xs...)
	means = append(means, (r.Start()+r.End())*0.5)
	sort.Float64s(means)

	stddevs := setupStddevs(means, r)

	components := make([]distuv.Normal, len(means))
	for i := range means {
		components[i] = distuv.Normal{Mu: means[i], Sigma: stddevs[i]}
	}

	var pAccept float64
	for _, c := range components {
		pAccept += c.CDF(r.End()) - c.CDF(r.Start())
	}
	pAccept /= float64(len(components))

	return &ParzenEstimator{
		components: components,
		paramRange: r,
		pAccept:    pAccept,
	}, nil
}

// LogPDF estimates the log probability density of the mixture at x.
//
// Each component contributes its own log-pdf plus the log of its (uniform)
// weight corrected by pAccept; the contributions are combined with a
// numerically stable log-sum-exp so that many components or a far-tail x
// cannot overflow or underflow.
func (e *ParzenEstimator) LogPDF(x float64) float64 {
	logWeight := math.Log(1 / float64(len(e.components)) / e.pAccept)

	terms := make([]float64, len(e.components))
	for i, c := range e.components {
		terms[i] = c.LogProb(x) + logWeight
	}

	return floats.LogSumExp(terms)
}

// Sample draws one value from the truncated mixture by rejection sampling:
// pick a component uniformly at random, draw from it, and accept the draw if
// it lies within the range, otherwise retry with a freshly chosen component.
//
// The loop has no iteration cap. Every component mean lies inside the range
// and every stddev is at most the range width, so a single attempt accepts
// with probability no less than Phi(1)-Phi(0) (about 0.34); the number of
// retries is geometric with a constant positive acceptance bound.
func (e *ParzenEstimator) Sample(rng *rand.Rand) float64 {
	for {
		c := e.components[rng.Intn(len(e.components))]
		c.Src = rng

		if draw := c.Rand(); e.paramRange.Contains(draw) {
			return draw
		}
	}
}

//////
// Factory.
//////

// NewParzenEstimatorBuilder creates a builder of Parzen-window density
// estimators, the strategy for numerical parameters.
func NewParzenEstimatorBuilder() ParzenEstimatorBuilder {
	return ParzenEstimatorBuilder{}
}

//////
// Helper functions.
//////

// setupStddevs assigns one standard deviation per sorted component mean.
//
// Interior components take the larger of the gaps to their left and right
// neighbors, with the range bounds acting as virtual neighbors at the two
// ends. The first and last components are then forced to their single inward
// gap. Finally every stddev is clamped into [width/min(100, 1+n), width] so
// no component degenerates to zero width or swamps the whole range.
func setupStddevs(means []float64, r Range) []float64 {
	n := len(means)
	stddevs := make([]float64, n)

	for i, curr := range means {
		prev := r.Start()
		if i > 0 {
			prev = means[i-1]
		}

		succ := r.End()
		if i+1 < n {
			succ = means[i+1]
		}

		stddevs[i] = math.Max(curr-prev, succ-curr)
	}

	if n >= 2 {
		stddevs[0] = means[1] - means[0]
		stddevs[n-1] = means[n-1] - means[n-2]
	}

	maxStddev := r.Width()
	minStddev := r.Width() / math.Min(100, 1+float64(n))
	for i := range stddevs {
		stddevs[i] = math.Min(math.Max(stddevs[i], minStddev), maxStddev)
	}

	return stddevs
}
