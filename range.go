package tpe

import (
	"errors"
	"fmt"
	"math"
)

//////
// Const, vars, types.
//////

var (
	// ErrNonFiniteRange is returned by NewRange when the span between start
	// and end is NaN or infinite.
	ErrNonFiniteRange = errors.New("tpe: not a finite range")

	// ErrEmptyRange is returned by NewRange when start is not strictly less
	// than end. NaN bounds fall into this case as well, since NaN compares
	// as neither less than nor greater than anything.
	ErrEmptyRange = errors.New("tpe: an empty range")
)

// Range is a validated half-open interval [Start, End) describing the search
// space of a single parameter.
//
// A Range is immutable once constructed: the optimizer holds it for its whole
// lifetime and shares it (read-only) with the estimator builders on every Ask.
//
// Usage example:
//
//	r, err := tpe.NewRange(-5.0, 5.0)
//	if err != nil {
//	    return err
//	}
//	r.Contains(5.0) // false, the upper bound is excluded
type Range struct {
	// start is the lower (inclusive) bound.
	start float64

	// end is the upper (exclusive) bound.
	end float64
}

//////
// Methods.
//////

// Start returns the lower (inclusive) bound of the range.
func (r Range) Start() float64 {
	return r.start
}

// End returns the upper (exclusive) bound of the range.
func (r Range) End() float64 {
	return r.end
}

// Width returns the span of the range (End - Start).
//
// The constructor guarantees the result is finite and positive.
func (r Range) Width() float64 {
	return r.end - r.start
}

// Contains reports whether v lies within the half-open interval,
// that is Start <= v < End.
func (r Range) Contains(v float64) bool {
	return r.start <= v && v < r.end
}

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("%v..%v", r.start, r.end)
}

//////
// Factory.
//////

// NewRange creates a validated Range covering [start, end).
//
// Returns:
// - ErrNonFiniteRange if end - start is NaN or infinite
// - ErrEmptyRange if start < end does not hold (empty or inverted interval)
func NewRange(start, end float64) (Range, error) {
	if span := end - start; math.IsNaN(span) || math.IsInf(span, 0) {
		return Range{}, ErrNonFiniteRange
	}

	if !(start < end) {
		return Range{}, ErrEmptyRange
	}

	return Range{start: start, end: end}, nil
}

// CategoricalRange creates a Range for a categorical parameter with the
// given number of choices.
//
// This is equivalent to NewRange(0, float64(cardinality)): each choice is
// represented by its 0-based index.
func CategoricalRange(cardinality int) (Range, error) {
	return NewRange(0, float64(cardinality))
}
