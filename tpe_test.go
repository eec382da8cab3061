package tpe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newParzenOptimizer(t *testing.T) *TpeOptimizer {
	t.Helper()

	r, err := NewRange(-5.0, 5.0)
	require.NoError(t, err)

	return NewTpeOptimizer(NewParzenEstimatorBuilder(), r)
}

func TestDefaultOptimizerConfig(t *testing.T) {
	config := DefaultOptimizerConfig()

	assert.Equal(t, 0.1, config.Gamma)
	assert.Equal(t, 24, config.Candidates)
}

func TestNewTpeOptimizerWithConfigValidation(t *testing.T) {
	r, err := NewRange(-5.0, 5.0)
	require.NoError(t, err)

	builder := NewParzenEstimatorBuilder()

	// Gamma outside [0, 1] is rejected on both sides.
	_, err = NewTpeOptimizerWithConfig(OptimizerConfig{Gamma: -0.1, Candidates: 24}, builder, r)
	assert.ErrorIs(t, err, ErrGammaOutOfRange)

	_, err = NewTpeOptimizerWithConfig(OptimizerConfig{Gamma: 1.1, Candidates: 24}, builder, r)
	assert.ErrorIs(t, err, ErrGammaOutOfRange)

	// Both closed bounds are accepted.
	_, err = NewTpeOptimizerWithConfig(OptimizerConfig{Gamma: 0.0, Candidates: 24}, builder, r)
	assert.NoError(t, err)

	_, err = NewTpeOptimizerWithConfig(OptimizerConfig{Gamma: 1.0, Candidates: 24}, builder, r)
	assert.NoError(t, err)

	// The candidate count must be positive.
	_, err = NewTpeOptimizerWithConfig(OptimizerConfig{Gamma: 0.1, Candidates: 0}, builder, r)
	assert.ErrorIs(t, err, ErrZeroCandidates)

	_, err = NewTpeOptimizerWithConfig(OptimizerConfig{Gamma: 0.1, Candidates: 1}, builder, r)
	assert.NoError(t, err)
}

func TestTellRejectsNaNValue(t *testing.T) {
	optim := newParzenOptimizer(t)

	assert.ErrorIs(t, optim.Tell(0.0, math.NaN()), ErrNaNValue)

	// The value check comes first, even with the NaN param sentinel.
	assert.ErrorIs(t, optim.Tell(math.NaN(), math.NaN()), ErrNaNValue)

	assert.Empty(t, optim.trials)
}

func TestTellRejectsOutOfRangeParam(t *testing.T) {
	optim := newParzenOptimizer(t)

	err := optim.Tell(5.0, 1.0) // upper bound is excluded
	require.Error(t, err)

	var oor *ParamOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 5.0, oor.Param)
	assert.Equal(t, optim.paramRange, oor.Range)

	assert.Error(t, optim.Tell(-5.001, 1.0))
	assert.Empty(t, optim.trials)

	// The lower bound is included.
	assert.NoError(t, optim.Tell(-5.0, 1.0))
	assert.Len(t, optim.trials, 1)
}

func TestTellAcceptsNaNParamSentinel(t *testing.T) {
	optim := newParzenOptimizer(t)

	// An absent parameter is legal regardless of how often it repeats, and
	// each successful Tell appends exactly one trial.
	require.NoError(t, optim.Tell(math.NaN(), 1.0))
	require.NoError(t, optim.Tell(math.NaN(), 2.0))
	require.NoError(t, optim.Tell(0.5, 3.0))
	assert.Len(t, optim.trials, 3)

	// Absent params are excluded from fitting but still counted by the
	// split.
	assert.Len(t, exercisedParams(optim.trials), 1)
}

func TestDecideSplitPoint(t *testing.T) {
	optim := newParzenOptimizer(t)

	// ceil(0.1 * n) as the trial count grows.
	expected := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2} // n = 1..12

	assert.Equal(t, 0, optim.decideSplitPoint())

	for i, want := range expected {
		require.NoError(t, optim.Tell(0.0, float64(i)))
		assert.Equal(t, want, optim.decideSplitPoint(), "n=%d", i+1)
	}
}

func TestSplitReconstructsAllTrials(t *testing.T) {
	optim := newParzenOptimizer(t)
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 25; i++ {
		require.NoError(t, optim.Tell(rng.Float64()*10-5, rng.Float64()))
	}

	_, err := optim.Ask(rng)
	require.NoError(t, err)

	// After Ask the trials are sorted by value; the split is a clean
	// partition of the full history.
	splitPoint := optim.decideSplitPoint()
	assert.Equal(t, 3, splitPoint) // ceil(0.1 * 25)
	assert.Len(t, optim.trials, 25)

	for i := 1; i < len(optim.trials); i++ {
		assert.LessOrEqual(t, optim.trials[i-1].value, optim.trials[i].value)
	}
}

func TestAskStaysInRangeAcrossHistorySizes(t *testing.T) {
	optim := newParzenOptimizer(t)
	rng := rand.New(rand.NewSource(11))

	r := optim.paramRange

	// Including zero trials: the estimators fall back to the prior.
	for i := 0; i < 50; i++ {
		x, err := optim.Ask(rng)
		require.NoError(t, err)
		require.True(t, r.Contains(x), "iteration %d: %v escaped %v", i, x, r)

		require.NoError(t, optim.Tell(x, x*x))
	}
}

func TestAskWithOnlyAbsentParams(t *testing.T) {
	optim := newParzenOptimizer(t)
	rng := rand.New(rand.NewSource(5))

	// Every trial used the NaN sentinel; the estimators are built from
	// empty sample sets but Ask still proposes a value in range.
	for i := 0; i < 5; i++ {
		require.NoError(t, optim.Tell(math.NaN(), float64(i)))
	}

	x, err := optim.Ask(rng)
	require.NoError(t, err)
	assert.True(t, optim.paramRange.Contains(x))
}

func TestAskHistogramReturnsBinIndices(t *testing.T) {
	r, err := CategoricalRange(3)
	require.NoError(t, err)

	optim := NewTpeOptimizer(NewHistogramEstimatorBuilder(), r)
	rng := rand.New(rand.NewSource(13))

	for i := 0; i < 30; i++ {
		y, err := optim.Ask(rng)
		require.NoError(t, err)

		require.Equal(t, math.Floor(y), y, "iteration %d: %v is not a bin index", i, y)
		require.GreaterOrEqual(t, y, 0.0)
		require.Less(t, y, 3.0)

		require.NoError(t, optim.Tell(y, float64(i%7)))
	}
}

func TestAskIsDeterministicForAFixedSeed(t *testing.T) {
	run := func(seed uint64) []float64 {
		optim := newParzenOptimizer(t)
		rng := rand.New(rand.NewSource(seed))

		asked := make([]float64, 0, 40)
		for i := 0; i < 40; i++ {
			x, err := optim.Ask(rng)
			require.NoError(t, err)

			asked = append(asked, x)
			require.NoError(t, optim.Tell(x, x*x))
		}

		return asked
	}

	// Identical seeds reproduce bit-identical proposals.
	assert.Equal(t, run(42), run(42))

	// A different seed diverges (almost surely).
	assert.NotEqual(t, run(42), run(43))
}

func TestOptimizerConvergesOnQuadratic(t *testing.T) {
	optim := newParzenOptimizer(t)
	rng := rand.New(rand.NewSource(0))

	bestValue := math.Inf(1)

	for i := 0; i < 100; i++ {
		x, err := optim.Ask(rng)
		require.NoError(t, err)
		require.True(t, optim.paramRange.Contains(x))

		v := x * x
		require.NoError(t, optim.Tell(x, v))
		bestValue = math.Min(bestValue, v)
	}

	// 100 evaluations of x^2 over [-5, 5) land well below 1.0 even for an
	// unlucky seed; the criterion concentrates candidates near the minimum.
	assert.Less(t, bestValue, 1.0)
}

func TestLazySortInvalidation(t *testing.T) {
	optim := newParzenOptimizer(t)
	rng := rand.New(rand.NewSource(9))

	require.NoError(t, optim.Tell(1.0, 3.0))
	require.NoError(t, optim.Tell(-1.0, 1.0))
	assert.False(t, optim.isSorted)

	_, err := optim.Ask(rng)
	require.NoError(t, err)
	assert.True(t, optim.isSorted)
	assert.Equal(t, 1.0, optim.trials[0].value)

	// Back-to-back asks reuse the cached order; a write invalidates it.
	_, err = optim.Ask(rng)
	require.NoError(t, err)
	assert.True(t, optim.isSorted)

	require.NoError(t, optim.Tell(0.0, 2.0))
	assert.False(t, optim.isSorted)

	_, err = optim.Ask(rng)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, []float64{
		optim.trials[0].value, optim.trials[1].value, optim.trials[2].value,
	})
}
