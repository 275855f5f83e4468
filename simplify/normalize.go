// Package simplify holds the post-solve stages of a model: rational
// normalization, denominator rescaling, small-term elision and
// significant-digit rounding. Every stage takes and returns *algebra.Ratio
// values and never mutates its input.
package simplify

import "github.com/njchilds90/explicitize/algebra"

// Normalize combines e over a common denominator, cancels common factors and
// returns the numerator and denominator.
func Normalize(e algebra.Expr) (num, den algebra.Expr, err error) {
	r, err := NormalizeRatio(e)
	if err != nil {
		return nil, nil, err
	}
	if r.IsUndefined() {
		return nil, nil, algebra.ErrUndefined
	}
	return r.Num().Expr(), r.Den().Expr(), nil
}

// NormalizeRatio is Normalize returning the cancelled ratio itself.
func NormalizeRatio(e algebra.Expr) (*algebra.Ratio, error) {
	r, err := algebra.Together(e)
	if err != nil {
		return nil, err
	}
	return r.Cancel(), nil
}

// ExpandRatio expands numerator and denominator independently and returns
// their quotient. Nothing is cancelled.
func ExpandRatio(e algebra.Expr) (*algebra.Ratio, error) {
	return algebra.Together(e)
}
