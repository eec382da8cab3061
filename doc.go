// Package tpe provides sequential hyperparameter optimization using the
// Tree-structured Parzen Estimator (TPE) method. Given a stream of
// (parameter value, objective value) observations, it proposes the next
// parameter value most likely to improve the objective, trading off
// exploitation of good regions against exploration of the search space.
//
// # Features
//
// The package includes the following key features:
//
//   - Ask/Tell Protocol: The optimizer proposes values and learns from the
//     results without ever calling your objective itself
//   - Two Density-Estimation Strategies: A Parzen window (Gaussian mixture)
//     for numerical parameters and a smoothed histogram for categorical ones
//   - Adaptive Bandwidth: Per-component standard deviations derived from
//     neighbor gaps, clamped to keep the mixture well conditioned
//   - Numerically Stable Scoring: Mixture densities are combined with
//     log-sum-exp, so many components or far-tail points cannot underflow
//   - Deterministic: All randomness comes from a caller-supplied generator;
//     a fixed seed reproduces bit-identical proposals
//   - Structured Errors: Every validation failure carries the offending
//     inputs
//
// # Usage
//
// An example optimizing a simple quadratic function which has one numerical
// and one categorical parameter:
//
//	choices := []int{1, 10, 100}
//
//	r0, _ := tpe.NewRange(-5.0, 5.0)
//	optim0 := tpe.NewTpeOptimizer(tpe.NewParzenEstimatorBuilder(), r0)
//
//	r1, _ := tpe.CategoricalRange(len(choices))
//	optim1 := tpe.NewTpeOptimizer(tpe.NewHistogramEstimatorBuilder(), r1)
//
//	objective := func(x float64, y int) float64 {
//	    return x*x + float64(y)
//	}
//
//	bestValue := math.Inf(1)
//	rng := rand.New(rand.NewSource(42))
//	for i := 0; i < 100; i++ {
//	    x, _ := optim0.Ask(rng)
//	    y, _ := optim1.Ask(rng)
//
//	    v := objective(x, choices[int(y)])
//	    _ = optim0.Tell(x, v)
//	    _ = optim1.Tell(y, v)
//	    bestValue = math.Min(bestValue, v)
//	}
//
// The optimizer minimizes; negate your objective to maximize instead.
//
// # One Optimizer Per Parameter
//
// A TpeOptimizer instance models exactly one scalar parameter. Joint search
// over several hyperparameters is achieved by composing independent
// instances, one per parameter, driven in lockstep (see the solver package
// for a complete multi-parameter harness).
//
// If a parameter is conditional and was not exercised in an evaluation, tell
// the optimizer NaN for it: the trial is excluded from density fitting but
// still counts toward the good/bad split.
//
// # Thread Safety
//
// Ask and Tell are pure blocking computations with no I/O. An optimizer
// instance is not internally synchronized and must not be called
// concurrently without external locking; distinct instances are fully
// isolated from each other.
//
// # References
//
// Please refer to the following papers about the details of TPE:
//
//   - Algorithms for Hyper-Parameter Optimization
//     https://papers.nips.cc/paper/4443-algorithms-for-hyper-parameter-optimization.pdf
//   - Making a Science of Model Search: Hyperparameter Optimization in
//     Hundreds of Dimensions for Vision Architectures
//     http://proceedings.mlr.press/v28/bergstra13.pdf
package tpe
