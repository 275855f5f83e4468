package algebra

import (
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Poly: sparse multivariate polynomial over atoms
// ============================================================

// An atom is a generator of a Poly: a *Sym or an opaque expression the
// polynomial layer cannot look into (a square root, a fractional power).
// Atoms are identified by their String form.

// Power is one atom raised to a positive integer exponent.
type Power struct {
	Base Expr
	Exp  int
}

// Term is a numeric coefficient times a product of atom powers. Powers are
// sorted by atom name and never repeat an atom.
type Term struct {
	Coeff  *Num
	Powers []Power
}

// Poly is immutable. Terms are kept in graded lexicographic order: higher
// total degree first, ties broken by comparing exponents over atom names in
// ascending name order with the larger exponent first. The constant term,
// when present, is last. No term has a zero coefficient.
type Poly struct{ terms []Term }

func atomKey(e Expr) string { return e.String() }

func PolyConst(n *Num) *Poly { return newPoly([]Term{{Coeff: n}}) }

// PolyAtom returns the polynomial consisting of the single atom e.
func PolyAtom(e Expr) *Poly {
	return newPoly([]Term{{Coeff: N(1), Powers: []Power{{Base: e, Exp: 1}}}})
}

func PolyZero() *Poly { return &Poly{} }

// PolyTerm builds a polynomial from one term; powers may be unsorted or
// repeat an atom.
func PolyTerm(coeff *Num, powers ...Power) *Poly {
	return newPoly([]Term{{Coeff: coeff, Powers: powers}})
}

func newPoly(terms []Term) *Poly {
	index := map[string]int{}
	merged := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.Coeff == nil || t.Coeff.IsZero() {
			continue
		}
		t = Term{Coeff: t.Coeff, Powers: normPowers(t.Powers)}
		k := t.key()
		if i, ok := index[k]; ok {
			merged[i].Coeff = numAdd(merged[i].Coeff, t.Coeff)
			continue
		}
		index[k] = len(merged)
		merged = append(merged, t)
	}
	out := merged[:0]
	for _, t := range merged {
		if !t.Coeff.IsZero() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return termLess(out[i], out[j]) })
	return &Poly{terms: out}
}

func normPowers(ps []Power) []Power {
	if len(ps) == 0 {
		return nil
	}
	exps := map[string]int{}
	bases := map[string]Expr{}
	for _, p := range ps {
		k := atomKey(p.Base)
		exps[k] += p.Exp
		bases[k] = p.Base
	}
	keys := make([]string, 0, len(exps))
	for k, e := range exps {
		if e != 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]Power, len(keys))
	for i, k := range keys {
		out[i] = Power{Base: bases[k], Exp: exps[k]}
	}
	return out
}

func (t Term) key() string {
	parts := make([]string, len(t.Powers))
	for i, p := range t.Powers {
		parts[i] = atomKey(p.Base) + "^" + strconv.Itoa(p.Exp)
	}
	return strings.Join(parts, "*")
}

// Degree is the total degree of the term.
func (t Term) Degree() int {
	d := 0
	for _, p := range t.Powers {
		d += p.Exp
	}
	return d
}

// Exp returns the exponent of the atom named key.
func (t Term) Exp(key string) int {
	for _, p := range t.Powers {
		if atomKey(p.Base) == key {
			return p.Exp
		}
	}
	return 0
}

func termLess(a, b Term) bool {
	da, db := a.Degree(), b.Degree()
	if da != db {
		return da > db
	}
	i, j := 0, 0
	for i < len(a.Powers) || j < len(b.Powers) {
		var ka, kb string
		if i < len(a.Powers) {
			ka = atomKey(a.Powers[i].Base)
		}
		if j < len(b.Powers) {
			kb = atomKey(b.Powers[j].Base)
		}
		switch {
		case j >= len(b.Powers) || (i < len(a.Powers) && ka < kb):
			return true
		case i >= len(a.Powers) || kb < ka:
			return false
		}
		if a.Powers[i].Exp != b.Powers[j].Exp {
			return a.Powers[i].Exp > b.Powers[j].Exp
		}
		i++
		j++
	}
	return false
}

func (t Term) mul(o Term) Term {
	ps := make([]Power, 0, len(t.Powers)+len(o.Powers))
	ps = append(ps, t.Powers...)
	ps = append(ps, o.Powers...)
	return Term{Coeff: numMul(t.Coeff, o.Coeff), Powers: normPowers(ps)}
}

// divTerm returns t/o when o's monomial divides t's.
func divTerm(t, o Term) (Term, bool) {
	ps := append(make([]Power, 0, len(t.Powers)+len(o.Powers)), t.Powers...)
	for _, p := range o.Powers {
		e := t.Exp(atomKey(p.Base))
		if e < p.Exp {
			return Term{}, false
		}
		ps = append(ps, Power{Base: p.Base, Exp: -p.Exp})
	}
	return Term{Coeff: numDiv(t.Coeff, o.Coeff), Powers: normPowers(ps)}, true
}

// Expr rebuilds the term as an expression tree, coefficient first.
func (t Term) Expr() Expr {
	factors := []Expr{}
	if !t.Coeff.IsOne() || len(t.Powers) == 0 {
		factors = append(factors, t.Coeff)
	}
	for _, p := range t.Powers {
		if p.Exp == 1 {
			factors = append(factors, p.Base)
		} else {
			factors = append(factors, &Pow{base: p.Base, exp: N(int64(p.Exp))})
		}
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return &Mul{factors: factors}
}

func (t Term) format(latex bool) string {
	parts := make([]string, 0, len(t.Powers))
	for _, p := range t.Powers {
		parts = append(parts, formatPower(p, latex))
	}
	c := numAbs(t.Coeff)
	cs := c.String()
	sep := "*"
	if latex {
		cs, sep = c.LaTeX(), " "
	}
	switch {
	case len(parts) == 0:
		return cs
	case c.IsOne():
		return strings.Join(parts, sep)
	}
	return cs + sep + strings.Join(parts, sep)
}

func formatPower(p Power, latex bool) string {
	_, plain := p.Base.(*Sym)
	if latex {
		s := p.Base.LaTeX()
		if p.Exp == 1 {
			return s
		}
		if !plain {
			s = "\\left(" + s + "\\right)"
		}
		return s + "^{" + strconv.Itoa(p.Exp) + "}"
	}
	s := p.Base.String()
	if p.Exp == 1 {
		return s
	}
	if !plain && !strings.HasPrefix(s, "sqrt(") {
		s = "(" + s + ")"
	}
	return s + "^" + strconv.Itoa(p.Exp)
}

// ============================================================
// Poly accessors
// ============================================================

func (p *Poly) IsZero() bool { return len(p.terms) == 0 }
func (p *Poly) Len() int     { return len(p.terms) }

// Terms returns a copy of the terms in canonical order.
func (p *Poly) Terms() []Term {
	out := make([]Term, len(p.terms))
	copy(out, p.terms)
	return out
}

func (p *Poly) IsConstant() bool {
	return len(p.terms) == 0 || (len(p.terms) == 1 && len(p.terms[0].Powers) == 0)
}

// Constant returns the value of a constant polynomial.
func (p *Poly) Constant() (*Num, bool) {
	if len(p.terms) == 0 {
		return N(0), true
	}
	if p.IsConstant() {
		return p.terms[0].Coeff, true
	}
	return nil, false
}

// Leading returns the first term in canonical order.
func (p *Poly) Leading() (Term, bool) {
	if len(p.terms) == 0 {
		return Term{}, false
	}
	return p.terms[0], true
}

// Degree returns the total degree; the zero polynomial has degree -1.
func (p *Poly) Degree() int {
	if len(p.terms) == 0 {
		return -1
	}
	return p.terms[0].Degree()
}

// DegreeIn returns the highest exponent of the atom named key.
func (p *Poly) DegreeIn(key string) int {
	d := 0
	for _, t := range p.terms {
		if e := t.Exp(key); e > d {
			d = e
		}
	}
	return d
}

// Atoms returns every atom of p sorted by name.
func (p *Poly) Atoms() []Expr {
	seen := map[string]Expr{}
	for _, t := range p.terms {
		for _, pw := range t.Powers {
			seen[atomKey(pw.Base)] = pw.Base
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Expr, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

func (p *Poly) Equal(q *Poly) bool {
	if len(p.terms) != len(q.terms) {
		return false
	}
	for i := range p.terms {
		if p.terms[i].key() != q.terms[i].key() || numCmp(p.terms[i].Coeff, q.terms[i].Coeff) != 0 {
			return false
		}
	}
	return true
}

// ============================================================
// Poly arithmetic
// ============================================================

func (p *Poly) Add(q *Poly) *Poly {
	ts := make([]Term, 0, len(p.terms)+len(q.terms))
	ts = append(ts, p.terms...)
	ts = append(ts, q.terms...)
	return newPoly(ts)
}

func (p *Poly) Neg() *Poly       { return p.Scale(N(-1)) }
func (p *Poly) Sub(q *Poly) *Poly { return p.Add(q.Neg()) }

func (p *Poly) Scale(c *Num) *Poly {
	ts := make([]Term, len(p.terms))
	for i, t := range p.terms {
		ts[i] = Term{Coeff: numMul(t.Coeff, c), Powers: t.Powers}
	}
	return newPoly(ts)
}

func (p *Poly) Mul(q *Poly) *Poly {
	ts := make([]Term, 0, len(p.terms)*len(q.terms))
	for _, a := range p.terms {
		for _, b := range q.terms {
			ts = append(ts, a.mul(b))
		}
	}
	return newPoly(ts)
}

// PowInt raises p to a non-negative integer power.
func (p *Poly) PowInt(k int) *Poly {
	result := PolyConst(N(1))
	for i := 0; i < k; i++ {
		result = result.Mul(p)
	}
	return result
}

func (p *Poly) mulTerm(t Term) *Poly {
	ts := make([]Term, len(p.terms))
	for i, a := range p.terms {
		ts[i] = a.mul(t)
	}
	return newPoly(ts)
}

// DivExact returns p/q when q divides p exactly.
func (p *Poly) DivExact(q *Poly) (*Poly, bool) {
	lead, ok := q.Leading()
	if !ok {
		return nil, false
	}
	r := p
	quo := []Term{}
	for !r.IsZero() {
		t, ok := divTerm(r.terms[0], lead)
		if !ok {
			return nil, false
		}
		quo = append(quo, t)
		r = r.Sub(q.mulTerm(t))
	}
	return newPoly(quo), true
}

// MonomialContent returns the largest monomial dividing every term, with
// coefficient 1.
func (p *Poly) MonomialContent() Term {
	if len(p.terms) == 0 {
		return Term{Coeff: N(1)}
	}
	common := append([]Power(nil), p.terms[0].Powers...)
	for _, t := range p.terms[1:] {
		kept := common[:0]
		for _, c := range common {
			e := t.Exp(atomKey(c.Base))
			if e == 0 {
				continue
			}
			if e < c.Exp {
				c.Exp = e
			}
			kept = append(kept, c)
		}
		common = kept
	}
	return Term{Coeff: N(1), Powers: normPowers(common)}
}

func (p *Poly) divMonomial(m Term) *Poly {
	ts := make([]Term, len(p.terms))
	for i, t := range p.terms {
		ts[i], _ = divTerm(t, m)
	}
	return newPoly(ts)
}

// CollectIn groups p by the exponent of the atom named key; each value is
// the coefficient polynomial of key^exp.
func (p *Poly) CollectIn(key string) map[int]*Poly {
	groups := map[int][]Term{}
	for _, t := range p.terms {
		e := t.Exp(key)
		rest := make([]Power, 0, len(t.Powers))
		for _, pw := range t.Powers {
			if atomKey(pw.Base) != key {
				rest = append(rest, pw)
			}
		}
		groups[e] = append(groups[e], Term{Coeff: t.Coeff, Powers: rest})
	}
	out := make(map[int]*Poly, len(groups))
	for e, ts := range groups {
		out[e] = newPoly(ts)
	}
	return out
}

// Map rebuilds p with every coefficient passed through coeff and every atom
// through atom. Either function may be nil. Terms that collide afterwards
// are merged.
func (p *Poly) Map(coeff func(*Num) *Num, atom func(Expr) Expr) *Poly {
	ts := make([]Term, len(p.terms))
	for i, t := range p.terms {
		c := t.Coeff
		if coeff != nil {
			c = coeff(c)
		}
		ps := make([]Power, len(t.Powers))
		for j, pw := range t.Powers {
			ps[j] = pw
			if atom != nil {
				ps[j].Base = atom(pw.Base)
			}
		}
		ts[i] = Term{Coeff: c, Powers: ps}
	}
	return newPoly(ts)
}

// Filter keeps the terms for which keep returns true.
func (p *Poly) Filter(keep func(Term) bool) *Poly {
	ts := []Term{}
	for _, t := range p.terms {
		if keep(t) {
			ts = append(ts, t)
		}
	}
	return newPoly(ts)
}

// ============================================================
// Poly conversion and printing
// ============================================================

func (p *Poly) Expr() Expr {
	switch len(p.terms) {
	case 0:
		return N(0)
	case 1:
		return p.terms[0].Expr()
	}
	terms := make([]Expr, len(p.terms))
	for i, t := range p.terms {
		terms[i] = t.Expr()
	}
	return &Add{terms: terms}
}

func (p *Poly) String() string { return p.format(false) }
func (p *Poly) LaTeX() string  { return p.format(true) }

func (p *Poly) format(latex bool) string {
	if len(p.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.terms {
		s := t.format(latex)
		neg := t.Coeff.IsNegative()
		switch {
		case i == 0 && neg:
			sb.WriteString("-" + s)
		case i == 0:
			sb.WriteString(s)
		case neg:
			sb.WriteString(" - " + s)
		default:
			sb.WriteString(" + " + s)
		}
	}
	return sb.String()
}

// Eval substitutes values for symbol atoms and evaluates numerically.
func (p *Poly) Eval(values map[string]float64) (float64, bool) {
	v, ok := SubAll(p.Expr(), values)
	if !ok {
		return 0, false
	}
	return v.Float64(), true
}
