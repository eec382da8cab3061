package tpe

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

//////
// Const, vars, types.
//////

var (
	// ErrGammaOutOfRange is returned when OptimizerConfig.Gamma is outside
	// the closed interval [0, 1].
	ErrGammaOutOfRange = errors.New("tpe: gamma must be in the range from 0.0 to 1.0")

	// ErrZeroCandidates is returned when OptimizerConfig.Candidates is not a
	// positive integer.
	ErrZeroCandidates = errors.New("tpe: candidates must be a positive integer")

	// ErrNaNValue is returned by Tell when the objective value is NaN.
	ErrNaNValue = errors.New("tpe: NaN value is not allowed")
)

// ParamOutOfRangeError is returned by Tell when a non-NaN parameter value is
// not contained in the optimizer's range. It carries the offending inputs so
// the caller can report precisely what was wrong.
type ParamOutOfRangeError struct {
	// Param is the rejected parameter value.
	Param float64

	// Range is the range the parameter was expected to lie in.
	Range Range
}

// Error implements the error interface.
func (e *ParamOutOfRangeError) Error() string {
	return fmt.Sprintf("tpe: the parameter value %v is out of the range %v", e.Param, e.Range)
}

// trial is one (parameter value, objective value) observation.
//
// param may be NaN, the sentinel meaning the parameter was not exercised in
// this evaluation (conditional search spaces). value is always finite;
// Tell enforces that at insertion.
type trial struct {
	param float64
	value float64
}

// hasParam reports whether the trial actually exercised the parameter.
func (t trial) hasParam() bool {
	return !math.IsNaN(t.param)
}

// OptimizerConfig holds the tunables of a TpeOptimizer.
//
// Fields explanation:
// - Gamma: fraction boundary between the superior and inferior trial groups
// - Candidates: number of samples drawn from the superior estimator per Ask
//
// Usage example:
//
//	config := tpe.DefaultOptimizerConfig()
//	config.Gamma = 0.25
//	optim, err := tpe.NewTpeOptimizerWithConfig(config, builder, paramRange)
type OptimizerConfig struct {
	// Gamma sets the percentile at which the observations are split into
	// good and bad groups. Must be in [0, 1].
	Gamma float64

	// Candidates sets how many candidates are sampled to decide the next
	// parameter value. Must be at least 1.
	Candidates int
}

// TpeOptimizer searches for the parameter value which minimizes the
// evaluation result, using the Tree-structured Parzen Estimator method.
//
// Each iteration the caller obtains the next value to evaluate with Ask,
// evaluates the objective externally, and reports the result with Tell.
// Callers optimizing for maximization must negate their objective before
// calling Tell.
//
// Note that one TpeOptimizer instance handles exactly one hyperparameter.
// To optimize multiple hyperparameters simultaneously, create an optimizer
// for each of them and drive them in lockstep.
//
// Important notes:
// - Not internally synchronized; do not call concurrently without locking
// - Distinct instances share no state and are isolated from each other
type TpeOptimizer struct {
	// paramRange bounds the values this optimizer proposes and accepts.
	paramRange Range

	// estimatorBuilder is the injected density-estimation strategy.
	estimatorBuilder BuildDensityEstimator

	// trials is the append-only observation history, insertion-ordered
	// until the next Ask re-sorts it by objective value.
	trials []trial

	// isSorted is the dirty flag for the cached sort order. Tell clears
	// it; Ask re-sorts at most once per batch of writes.
	isSorted bool

	gamma      float64
	candidates int
}

//////
// Exported functionalities.
//////

// DefaultOptimizerConfig returns the default optimizer configuration:
// gamma 0.1 and 24 candidates per Ask.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		Gamma:      0.1,
		Candidates: 24,
	}
}

//////
// Methods.
//////

// Ask returns the next value of the optimization target parameter to be
// evaluated. The returned value always lies within the optimizer's range
// (for the histogram strategy it is an integer-valued bin index).
//
// How it works:
//  1. Sorts the trials ascending by objective value (lazily, only when new
//     trials arrived since the last Ask)
//  2. Splits them at ceil(gamma * count): the head is the superior group,
//     the rest the inferior group
//  3. Fits one density estimator per group from the groups' param fields,
//     excluding NaN ("absent") params
//  4. Draws Candidates samples from the superior estimator and returns the
//     one maximizing the log-likelihood ratio of superior over inferior
//
// Randomness comes exclusively from the caller-supplied generator, so a
// fixed seed and an identical Tell history reproduce identical results.
//
// Note that, before the first Ask, it might be worth feeding the optimizer
// a few randomly sampled observations via Tell to reduce the bias of fitting
// on too few samples.
func (o *TpeOptimizer) Ask(rng *rand.Rand) (float64, error) {
	if !o.isSorted {
		sort.SliceStable(o.trials, func(i, j int) bool {
			return o.trials[i].value < o.trials[j].value
		})
		o.isSorted = true
	}

	splitPoint := o.decideSplitPoint()
	superiors, inferiors := o.trials[:splitPoint], o.trials[splitPoint:]

	superiorEstimator, err := o.estimatorBuilder.BuildDensityEstimator(
		exercisedParams(superiors), o.paramRange)
	if err != nil {
		return 0, err
	}

	inferiorEstimator, err := o.estimatorBuilder.BuildDensityEstimator(
		exercisedParams(inferiors), o.paramRange)
	if err != nil {
		return 0, err
	}

	var param float64
	bestEI := math.Inf(-1)

	for i := 0; i < o.candidates; i++ {
		candidate := superiorEstimator.Sample(rng)

		// Expected-improvement-like criterion: favor points likely under
		// the good group and unlikely under the bad group. Ties keep the
		// later candidate.
		ei := superiorEstimator.LogPDF(candidate) - inferiorEstimator.LogPDF(candidate)
		if ei >= bestEI {
			bestEI = ei
			param = candidate
		}
	}

	return param, nil
}

// Tell reports the evaluation result of a parameter value to the optimizer.
//
// The param should be NaN if the parameter was not used in the evaluation
// (this can happen when the search space is conditional); such trials are
// excluded from density fitting but still count toward the good/bad split.
//
// Returns:
// - ErrNaNValue if value is NaN
// - *ParamOutOfRangeError if param is neither NaN nor contained in the range
//
// Duplicate values and repeated params are all legal; every successful call
// appends exactly one trial.
func (o *TpeOptimizer) Tell(param, value float64) error {
	if math.IsNaN(value) {
		return ErrNaNValue
	}

	if !math.IsNaN(param) && !o.paramRange.Contains(param) {
		return &ParamOutOfRangeError{Param: param, Range: o.paramRange}
	}

	o.trials = append(o.trials, trial{param: param, value: value})
	o.isSorted = false

	return nil
}

// decideSplitPoint returns the size of the superior group,
// ceil(gamma * trial count).
func (o *TpeOptimizer) decideSplitPoint() int {
	return int(math.Ceil(float64(len(o.trials)) * o.gamma))
}

//////
// Factory.
//////

// NewTpeOptimizer makes a TpeOptimizer with the default settings. It cannot
// fail; use NewTpeOptimizerWithConfig to customize gamma or the candidate
// count.
func NewTpeOptimizer(estimatorBuilder BuildDensityEstimator, paramRange Range) *TpeOptimizer {
	optim, err := NewTpeOptimizerWithConfig(DefaultOptimizerConfig(), estimatorBuilder, paramRange)
	if err != nil {
		// The defaults always validate.
		panic(err)
	}

	return optim
}

// NewTpeOptimizerWithConfig makes a TpeOptimizer with the given settings.
//
// Returns:
// - ErrGammaOutOfRange if config.Gamma is outside [0, 1]
// - ErrZeroCandidates if config.Candidates is less than 1
func NewTpeOptimizerWithConfig(
	config OptimizerConfig,
	estimatorBuilder BuildDensityEstimator,
	paramRange Range,
) (*TpeOptimizer, error) {
	if !(config.Gamma >= 0 && config.Gamma <= 1) {
		return nil, ErrGammaOutOfRange
	}

	if config.Candidates < 1 {
		return nil, ErrZeroCandidates
	}

	return &TpeOptimizer{
		paramRange:       paramRange,
		estimatorBuilder: estimatorBuilder,
		gamma:            config.Gamma,
		candidates:       config.Candidates,
	}, nil
}

//////
// Helper functions.
//////

// exercisedParams collects the param fields of the given trials, skipping
// the NaN sentinel of absent parameters.
func exercisedParams(trials []trial) []float64 {
	params := make([]float64, 0, len(trials))
	for _, t := range trials {
		if t.hasParam() {
			params = append(params, t.param)
		}
	}

	return params
}
