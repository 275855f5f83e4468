package pipeline

import "errors"

// Row failures. They are recorded on the row's Outcome and never abort a
// batch.
var (
	// ErrSolveFailure indicates no root, or a solver error or panic.
	ErrSolveFailure = errors.New("pipeline: no solution")
	// ErrZeroNumerator indicates the solved expression is identically zero.
	ErrZeroNumerator = errors.New("pipeline: solver failed (zero numerator)")
	// ErrAllTermsDropped indicates an empty numerator after term dropping.
	ErrAllTermsDropped = errors.New("pipeline: all numerator terms dropped")
	// ErrDegenerateDenominator indicates an identically zero denominator.
	ErrDegenerateDenominator = errors.New("pipeline: degenerate denominator")
)
