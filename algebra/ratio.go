package algebra

import "fmt"

// ============================================================
// Ratio: rational function num/den
// ============================================================

// Ratio is a numerator/denominator pair of expanded polynomials. A Ratio
// whose denominator is identically zero is Undefined; there is no other
// way to build one.
type Ratio struct {
	num, den  *Poly
	undefined bool
}

// Undefined is the complex-infinity result of a division by an identically
// zero denominator.
var Undefined = &Ratio{undefined: true}

// NewRatio pairs num and den without cancelling anything.
func NewRatio(num, den *Poly) *Ratio {
	if den.IsZero() {
		return Undefined
	}
	return &Ratio{num: num, den: den}
}

// RatioOf returns the polynomial p over 1.
func RatioOf(p *Poly) *Ratio { return &Ratio{num: p, den: PolyConst(N(1))} }

func (r *Ratio) IsUndefined() bool { return r.undefined }
func (r *Ratio) Num() *Poly {
	if r.undefined {
		return PolyZero()
	}
	return r.num
}
func (r *Ratio) Den() *Poly {
	if r.undefined {
		return PolyZero()
	}
	return r.den
}

// IsZero reports whether the numerator is identically zero.
func (r *Ratio) IsZero() bool { return !r.undefined && r.num.IsZero() }

func (r *Ratio) Equal(o *Ratio) bool {
	if r.undefined || o.undefined {
		return r.undefined == o.undefined
	}
	return r.num.Equal(o.num) && r.den.Equal(o.den)
}

func (r *Ratio) Add(o *Ratio) *Ratio {
	if r.undefined || o.undefined {
		return Undefined
	}
	if r.den.Equal(o.den) {
		return NewRatio(r.num.Add(o.num), r.den)
	}
	return NewRatio(r.num.Mul(o.den).Add(o.num.Mul(r.den)), r.den.Mul(o.den))
}

func (r *Ratio) Neg() *Ratio {
	if r.undefined {
		return Undefined
	}
	return NewRatio(r.num.Neg(), r.den)
}

func (r *Ratio) Sub(o *Ratio) *Ratio { return r.Add(o.Neg()) }

func (r *Ratio) Mul(o *Ratio) *Ratio {
	if r.undefined || o.undefined {
		return Undefined
	}
	return NewRatio(r.num.Mul(o.num), r.den.Mul(o.den))
}

// Inv swaps numerator and denominator; the inverse of zero is Undefined.
func (r *Ratio) Inv() *Ratio {
	if r.undefined {
		return Undefined
	}
	return NewRatio(r.den, r.num)
}

// Scale multiplies the numerator by c.
func (r *Ratio) Scale(c *Num) *Ratio {
	if r.undefined {
		return Undefined
	}
	return NewRatio(r.num.Scale(c), r.den)
}

// DivideBoth divides numerator and denominator by the nonzero constant c.
func (r *Ratio) DivideBoth(c *Num) *Ratio {
	if r.undefined || c.IsZero() {
		return Undefined
	}
	inv := numRecip(c)
	return NewRatio(r.num.Scale(inv), r.den.Scale(inv))
}

func (r *Ratio) powInt(k int) (*Ratio, error) {
	if r.undefined {
		return Undefined, nil
	}
	if k >= 0 {
		return NewRatio(r.num.PowInt(k), r.den.PowInt(k)), nil
	}
	if r.num.IsZero() {
		return nil, ErrDivisionByZero
	}
	return NewRatio(r.den.PowInt(-k), r.num.PowInt(-k)), nil
}

// Cancel removes the common monomial content, folds a constant denominator
// into the numerator and divides out the denominator when one side divides
// the other exactly. The denominator's leading coefficient ends up positive.
func (r *Ratio) Cancel() *Ratio {
	if r.undefined {
		return Undefined
	}
	if r.num.IsZero() {
		return RatioOf(PolyZero())
	}
	num, den := r.num, r.den
	nc, dc := num.MonomialContent(), den.MonomialContent()
	if common := commonMonomial(nc, dc); len(common.Powers) > 0 {
		num, den = num.divMonomial(common), den.divMonomial(common)
	}
	if q, ok := num.DivExact(den); ok {
		return RatioOf(q)
	}
	if !den.IsConstant() {
		if q, ok := den.DivExact(num); ok {
			num, den = PolyConst(N(1)), q
		}
	}
	if c, ok := den.Constant(); ok {
		return RatioOf(num.Scale(numRecip(c)))
	}
	if lead, _ := den.Leading(); lead.Coeff.IsNegative() {
		num, den = num.Neg(), den.Neg()
	}
	return &Ratio{num: num, den: den}
}

func commonMonomial(a, b Term) Term {
	ps := []Power{}
	for _, p := range a.Powers {
		e := b.Exp(atomKey(p.Base))
		if e > p.Exp {
			e = p.Exp
		}
		if e > 0 {
			ps = append(ps, Power{Base: p.Base, Exp: e})
		}
	}
	return Term{Coeff: N(1), Powers: ps}
}

// Expr rebuilds num * den^-1 as an expression tree.
func (r *Ratio) Expr() Expr {
	if r.undefined {
		return &Pow{base: N(0), exp: N(-1)}
	}
	if c, ok := r.den.Constant(); ok && c.IsOne() {
		return r.num.Expr()
	}
	return &Mul{factors: []Expr{r.num.Expr(), &Pow{base: r.den.Expr(), exp: N(-1)}}}
}

func (r *Ratio) String() string {
	if r.undefined {
		return "zoo"
	}
	return r.format(false)
}

func (r *Ratio) LaTeX() string {
	if r.undefined {
		return "\\tilde{\\infty}"
	}
	return r.format(true)
}

func (r *Ratio) format(latex bool) string {
	if c, ok := r.den.Constant(); ok && c.IsOne() {
		if latex {
			return r.num.LaTeX()
		}
		return r.num.String()
	}
	if latex {
		return fmt.Sprintf("\\frac{%s}{%s}", r.num.LaTeX(), r.den.LaTeX())
	}
	n, d := r.num.String(), r.den.String()
	if r.num.Len() > 1 {
		n = "(" + n + ")"
	}
	if r.den.Len() > 1 || (len(r.den.terms[0].Powers) > 0 && !r.den.terms[0].Coeff.IsOne()) {
		d = "(" + d + ")"
	}
	return n + "/" + d
}

// Eval evaluates the ratio at the given symbol values.
func (r *Ratio) Eval(values map[string]float64) (float64, bool) {
	if r.undefined {
		return 0, false
	}
	n, ok1 := r.num.Eval(values)
	d, ok2 := r.den.Eval(values)
	if !ok1 || !ok2 || d == 0 {
		return 0, false
	}
	return n / d, true
}

// ============================================================
// Together: any expression to a single ratio
// ============================================================

// Together rewrites e over a common denominator with both sides expanded.
// Powers with non-integer exponents become opaque atoms.
func Together(e Expr) (*Ratio, error) {
	switch v := e.(type) {
	case *Num:
		return RatioOf(PolyConst(v)), nil
	case *Sym:
		return RatioOf(PolyAtom(v)), nil
	case *Add:
		acc := RatioOf(PolyZero())
		for _, t := range v.terms {
			r, err := Together(t)
			if err != nil {
				return nil, err
			}
			acc = acc.Add(r)
		}
		return acc, nil
	case *Mul:
		acc := RatioOf(PolyConst(N(1)))
		for _, f := range v.factors {
			r, err := Together(f)
			if err != nil {
				return nil, err
			}
			acc = acc.Mul(r)
		}
		return acc, nil
	case *Pow:
		en, ok := v.exp.(*Num)
		if !ok || !en.IsInteger() || !en.val.Num().IsInt64() {
			return RatioOf(PolyAtom(v)), nil
		}
		base, err := Together(v.base)
		if err != nil {
			return nil, err
		}
		if base.IsUndefined() {
			return Undefined, nil
		}
		return base.powInt(int(en.val.Num().Int64()))
	}
	return nil, fmt.Errorf("algebra: unsupported expression %T", e)
}

// PolyOf converts e to a polynomial; the common denominator must be
// constant.
func PolyOf(e Expr) (*Poly, error) {
	r, err := Together(e)
	if err != nil {
		return nil, err
	}
	if r.IsUndefined() {
		return nil, ErrUndefined
	}
	c, ok := r.den.Constant()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotPolynomial, e)
	}
	return r.num.Scale(numRecip(c)), nil
}
