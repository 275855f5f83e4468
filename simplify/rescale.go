package simplify

import (
	"fmt"
	"math"

	"github.com/njchilds90/explicitize/algebra"
)

// minScale is the smallest coefficient magnitude accepted as a divisor.
const minScale = 1e-12

// Scaling reports what Rescale did.
type Scaling struct {
	Applied bool
	// Monomial is the denominator monomial whose coefficient became 1.
	Monomial algebra.Expr
	// Coeff is the divisor applied to both sides.
	Coeff *algebra.Num
	// Target is false when the leading monomial was used instead of the
	// requested target.
	Target bool
	Reason string
}

func (s Scaling) String() string {
	if !s.Applied {
		return "not rescaled: " + s.Reason
	}
	return fmt.Sprintf("rescaled by %s on %s", s.Coeff, s.Monomial)
}

// Rescale divides numerator and denominator by one denominator coefficient so
// that the chosen monomial has coefficient exactly 1. The denominator is
// viewed as a polynomial in gens, or in its own atoms sorted by name when
// gens is empty. target is used when it has a numeric coefficient of
// magnitude above 1e-12; otherwise the monomial of highest total degree is
// used, ties going to the lexicographically smallest exponent tuple. When
// neither works, or the denominator is constant, r is returned unchanged.
func Rescale(r *algebra.Ratio, target algebra.Expr, gens []algebra.Expr) (*algebra.Ratio, Scaling) {
	if r.IsUndefined() {
		return r, Scaling{Reason: "expression is undefined"}
	}
	den := r.Den()
	if den.IsConstant() {
		return r, Scaling{Reason: "denominator is constant"}
	}
	if len(gens) == 0 {
		gens = den.Atoms()
	}
	gp := algebra.AsPoly(den, gens)

	var reason string
	if target != nil {
		if monom, ok := monomOver(target, gens); !ok {
			reason = fmt.Sprintf("target %s is not a monomial in the generators", target)
		} else if c, ok := usable(gp.Coeff(monom)); !ok {
			reason = fmt.Sprintf("target %s missing or zero in denominator", target)
		} else {
			return r.DivideBoth(c), Scaling{Applied: true, Monomial: monomExpr(gens, monom), Coeff: c, Target: true}
		}
	}

	lead, ok := gp.LeadingMonom()
	if !ok {
		return r, Scaling{Reason: "no monomials in denominator"}
	}
	c, ok := usable(gp.Coeff(lead))
	if !ok {
		if reason != "" {
			reason += "; "
		}
		return r, Scaling{Reason: reason + "leading coefficient is not a usable number"}
	}
	return r.DivideBoth(c), Scaling{Applied: true, Monomial: monomExpr(gens, lead), Coeff: c, Reason: reason}
}

func usable(p *algebra.Poly) (*algebra.Num, bool) {
	if p == nil {
		return nil, false
	}
	c, ok := p.Constant()
	if !ok || c.IsZero() || math.Abs(c.Float64()) <= minScale {
		return nil, false
	}
	return c, true
}

// monomOver returns the exponent tuple of a single-term target over gens.
func monomOver(target algebra.Expr, gens []algebra.Expr) ([]int, bool) {
	p, err := algebra.PolyOf(target)
	if err != nil || p.Len() != 1 {
		return nil, false
	}
	term := p.Terms()[0]
	monom := make([]int, len(gens))
	used := 0
	for i, g := range gens {
		monom[i] = term.Exp(g.String())
		if monom[i] > 0 {
			used++
		}
	}
	if used != len(term.Powers) {
		return nil, false
	}
	return monom, true
}

func monomExpr(gens []algebra.Expr, monom []int) algebra.Expr {
	powers := []algebra.Power{}
	for i, e := range monom {
		if e > 0 {
			powers = append(powers, algebra.Power{Base: gens[i], Exp: e})
		}
	}
	return algebra.PolyTerm(algebra.N(1), powers...).Expr()
}
