package algebra

import (
	"fmt"
	"math"
)

// ============================================================
// Equation Solving
// ============================================================

// SolveResult lists the roots found for one unknown. When Roots is empty,
// Reason says why.
type SolveResult struct {
	Roots  []*Ratio
	Reason string
}

// SolveFor solves eq for sym over the reals. The residual LHS-RHS is put
// over a common denominator and its numerator, a polynomial in sym, is
// solved: degree 1 exactly, degree 2 by the quadratic formula with the
// -sqrt root first. Degree 0 (identities and contradictions) and degree 3
// or more have no roots.
func SolveFor(eq *Equation, sym *Sym) (SolveResult, error) {
	res, err := Together(AddOf(eq.LHS, MulOf(N(-1), eq.RHS)))
	if err != nil {
		return SolveResult{}, err
	}
	if res.IsUndefined() {
		return SolveResult{}, ErrUndefined
	}
	coeffs := res.Num().CollectIn(atomKey(sym))
	deg := 0
	for d := range coeffs {
		if d > deg {
			deg = d
		}
	}
	coeff := func(d int) *Poly {
		if p, ok := coeffs[d]; ok {
			return p
		}
		return PolyZero()
	}

	switch deg {
	case 0:
		if res.Num().IsZero() {
			return SolveResult{Reason: "identity (0 = 0): every value solves it"}, nil
		}
		return SolveResult{Reason: fmt.Sprintf("%s does not appear in the equation", sym.name)}, nil
	case 1:
		root := NewRatio(coeff(0).Neg(), coeff(1)).Cancel()
		return SolveResult{Roots: []*Ratio{root}}, nil
	case 2:
		return solveQuadratic(coeff(2), coeff(1), coeff(0)), nil
	}
	return SolveResult{Reason: fmt.Sprintf("degree %d in %s is not supported", deg, sym.name)}, nil
}

// solveQuadratic solves a*x^2 + b*x + c = 0 with polynomial coefficients.
func solveQuadratic(a, b, c *Poly) SolveResult {
	disc := b.Mul(b).Sub(PolyConst(N(4)).Mul(a).Mul(c))
	twoA := a.Scale(N(2))
	if disc.IsZero() {
		return SolveResult{Roots: []*Ratio{NewRatio(b.Neg(), twoA).Cancel()}}
	}

	var root *Poly
	if dn, ok := disc.Constant(); ok {
		if dn.IsNegative() {
			return SolveResult{Reason: fmt.Sprintf("complex roots: discriminant %s < 0", dn)}
		}
		if s, exact := numSqrt(dn); exact {
			root = PolyConst(s)
		} else {
			root = PolyConst(NFloat(math.Sqrt(dn.Float64())))
		}
	} else {
		root = PolyAtom(SqrtOf(disc.Expr()))
	}

	minus := NewRatio(b.Neg().Sub(root), twoA).Cancel()
	plus := NewRatio(b.Neg().Add(root), twoA).Cancel()
	return SolveResult{Roots: []*Ratio{minus, plus}}
}
