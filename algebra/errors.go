package algebra

import "errors"

var (
	// ErrDivisionByZero is returned when an expression divides by an
	// identically zero polynomial.
	ErrDivisionByZero = errors.New("algebra: division by zero")

	// ErrNotPolynomial is returned when a polynomial was required but the
	// expression has a non-constant denominator.
	ErrNotPolynomial = errors.New("algebra: expression is not a polynomial")

	// ErrUndefined is returned when an operation receives Undefined.
	ErrUndefined = errors.New("algebra: undefined expression")
)
