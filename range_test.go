package tpe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRange(t *testing.T) {
	r, err := NewRange(-5.0, 5.0)
	require.NoError(t, err)

	assert.Equal(t, -5.0, r.Start())
	assert.Equal(t, 5.0, r.End())
	assert.Equal(t, 10.0, r.Width())
	assert.Equal(t, "-5..5", r.String())
}

func TestNewRangeRejectsEmptyAndInverted(t *testing.T) {
	_, err := NewRange(5.0, 5.0)
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = NewRange(5.0, 2.0)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestNewRangeRejectsNonFiniteSpans(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	// NaN bounds make the span NaN.
	_, err := NewRange(nan, 5.0)
	assert.ErrorIs(t, err, ErrNonFiniteRange)

	_, err = NewRange(0.0, nan)
	assert.ErrorIs(t, err, ErrNonFiniteRange)

	// Infinite bounds make the span infinite.
	_, err = NewRange(0.0, inf)
	assert.ErrorIs(t, err, ErrNonFiniteRange)

	_, err = NewRange(-inf, 0.0)
	assert.ErrorIs(t, err, ErrNonFiniteRange)

	// Both bounds finite but the span overflows.
	_, err = NewRange(-math.MaxFloat64, math.MaxFloat64)
	assert.ErrorIs(t, err, ErrNonFiniteRange)
}

func TestRangeContainsIsHalfOpen(t *testing.T) {
	r, err := NewRange(-5.0, 5.0)
	require.NoError(t, err)

	assert.True(t, r.Contains(-5.0)) // lower bound included
	assert.True(t, r.Contains(0.0))
	assert.True(t, r.Contains(4.999))
	assert.False(t, r.Contains(5.0)) // upper bound excluded
	assert.False(t, r.Contains(-5.001))
	assert.False(t, r.Contains(math.NaN()))
}

func TestCategoricalRange(t *testing.T) {
	r, err := CategoricalRange(3)
	require.NoError(t, err)

	assert.Equal(t, 0.0, r.Start())
	assert.Equal(t, 3.0, r.End())
	assert.True(t, r.Contains(2.0))
	assert.False(t, r.Contains(3.0))

	// Zero choices is an empty range.
	_, err = CategoricalRange(0)
	assert.ErrorIs(t, err, ErrEmptyRange)
}
