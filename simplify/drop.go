package simplify

import (
	"math"

	"github.com/njchilds90/explicitize/algebra"
)

// DropSmallTerms removes numerator and denominator terms whose coefficient
// magnitude is not above tol. A side that had terms but would lose all of
// them keeps its single largest term instead. An empty denominator gives
// algebra.Undefined. Applying it twice changes nothing.
func DropSmallTerms(r *algebra.Ratio, tol float64) *algebra.Ratio {
	if r.IsUndefined() {
		return algebra.Undefined
	}
	num := dropSide(r.Num(), tol)
	den := dropSide(r.Den(), tol)
	return algebra.NewRatio(num, den)
}

func dropSide(p *algebra.Poly, tol float64) *algebra.Poly {
	kept := p.Filter(func(t algebra.Term) bool {
		return !t.Coeff.IsZero() && math.Abs(t.Coeff.Float64()) > tol
	})
	if !kept.IsZero() || p.IsZero() {
		return kept
	}
	terms := p.Terms()
	best := terms[0]
	for _, t := range terms[1:] {
		if math.Abs(t.Coeff.Float64()) > math.Abs(best.Coeff.Float64()) {
			best = t
		}
	}
	return algebra.PolyTerm(best.Coeff, best.Powers...)
}
