package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableDomainValidate(t *testing.T) {
	valid := []VariableDomain{
		{Name: "x", Kind: KindUniform, Low: -5, High: 5},
		{Name: "lr", Kind: KindLogUniform, Low: 1e-4, High: 1e-1},
		{Name: "layers", Kind: KindDiscrete, Low: 1, High: 8},
		{Name: "act", Kind: KindCategorical, Choices: 3},
	}
	for _, d := range valid {
		assert.NoError(t, d.Validate(), d.Name)
	}

	invalid := []VariableDomain{
		{Name: "inverted", Kind: KindUniform, Low: 5, High: -5},
		{Name: "empty", Kind: KindDiscrete, Low: 3, High: 3},
		{Name: "nonpositive", Kind: KindLogUniform, Low: 0, High: 1},
		{Name: "nochoices", Kind: KindCategorical, Choices: 0},
	}
	for _, d := range invalid {
		assert.ErrorIs(t, d.Validate(), ErrInvalidDomain, d.Name)
	}

	assert.ErrorIs(t, VariableDomain{Name: "weird", Kind: "gaussian"}.Validate(), ErrUnknownKind)
}

func TestVariableDomainInternalRange(t *testing.T) {
	r, err := VariableDomain{Kind: KindUniform, Low: -5, High: 5}.internalRange()
	require.NoError(t, err)
	assert.Equal(t, -5.0, r.Start())
	assert.Equal(t, 5.0, r.End())

	// Discrete domains widen to [low, high+1) so that flooring any internal
	// value yields an in-bounds integer.
	r, err = VariableDomain{Kind: KindDiscrete, Low: 1, High: 8}.internalRange()
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Start())
	assert.Equal(t, 9.0, r.End())

	// Categorical domains are indexed from zero.
	r, err = VariableDomain{Kind: KindCategorical, Choices: 4}.internalRange()
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Start())
	assert.Equal(t, 4.0, r.End())
}
