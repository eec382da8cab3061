package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/thalesfsp/tpe"
)

//////
// Const, vars, types.
//////

// DomainKind identifies the native distribution of a search-space variable.
type DomainKind string

const (
	// KindUniform is a continuous variable sampled uniformly in [Low, High).
	KindUniform DomainKind = "uniform"

	// KindLogUniform is a continuous variable whose logarithm is uniform in
	// [log(Low), log(High)). Low must be positive.
	KindLogUniform DomainKind = "log_uniform"

	// KindDiscrete is an integer variable uniform over {Low, ..., High}.
	KindDiscrete DomainKind = "discrete"

	// KindCategorical is an unordered variable with Choices alternatives,
	// exchanged with the driver as a 0-based index.
	KindCategorical DomainKind = "categorical"
)

var (
	// ErrUnknownKind is returned when a variable domain names a kind this
	// solver does not implement.
	ErrUnknownKind = errors.New("solver: unknown domain kind")

	// ErrInvalidDomain is returned when a variable domain's bounds or
	// choices are inconsistent with its kind.
	ErrInvalidDomain = errors.New("solver: invalid domain")
)

// VariableDomain describes one variable of the search space as declared by
// the driver.
//
// Low/High bound the numeric kinds (High exclusive for uniform and
// log-uniform, inclusive for discrete, ignored for categorical); Choices is
// the number of categories and only meaningful for the categorical kind.
type VariableDomain struct {
	Name    string     `json:"name" yaml:"name"`
	Kind    DomainKind `json:"kind" yaml:"kind"`
	Low     float64    `json:"low,omitempty" yaml:"low,omitempty"`
	High    float64    `json:"high,omitempty" yaml:"high,omitempty"`
	Choices int        `json:"choices,omitempty" yaml:"choices,omitempty"`
}

//////
// Methods.
//////

// Validate checks the domain's internal consistency.
func (d VariableDomain) Validate() error {
	switch d.Kind {
	case KindUniform, KindDiscrete:
		if !(d.Low < d.High) {
			return fmt.Errorf("%w: %s: low %v must be less than high %v",
				ErrInvalidDomain, d.Name, d.Low, d.High)
		}
	case KindLogUniform:
		if !(d.Low > 0 && d.Low < d.High) {
			return fmt.Errorf("%w: %s: log-uniform bounds must satisfy 0 < low < high, got [%v, %v)",
				ErrInvalidDomain, d.Name, d.Low, d.High)
		}
	case KindCategorical:
		if d.Choices < 1 {
			return fmt.Errorf("%w: %s: categorical domain needs at least one choice",
				ErrInvalidDomain, d.Name)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}

	return nil
}

// internalRange maps the native domain onto the optimizer's linear domain.
//
// Uniform variables pass through unchanged; log-uniform variables are
// modeled in log space; discrete variables occupy [Low, High+1) so that
// flooring an internal value yields an in-bounds integer; categorical
// variables occupy [0, Choices).
func (d VariableDomain) internalRange() (tpe.Range, error) {
	switch d.Kind {
	case KindUniform:
		return tpe.NewRange(d.Low, d.High)
	case KindLogUniform:
		return tpe.NewRange(math.Log(d.Low), math.Log(d.High))
	case KindDiscrete:
		return tpe.NewRange(d.Low, d.High+1)
	case KindCategorical:
		return tpe.CategoricalRange(d.Choices)
	default:
		return tpe.Range{}, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
}

// estimatorBuilder selects the density-estimation strategy matching the
// domain kind: a smoothed histogram for categorical variables, a Parzen
// window for every numeric kind.
func (d VariableDomain) estimatorBuilder() tpe.BuildDensityEstimator {
	if d.Kind == KindCategorical {
		return tpe.NewHistogramEstimatorBuilder()
	}

	return tpe.NewParzenEstimatorBuilder()
}
