package algebra

import (
	"fmt"
	"sort"
)

// Engine is the set of algebra capabilities the conversion pipeline needs.
// Kernel is the implementation backed by this package.
type Engine interface {
	SolveFor(eq *Equation, sym *Sym) (SolveResult, error)
	Together(e Expr) (*Ratio, error)
	Expand(e Expr) Expr
	FreeSymbols(e Expr) []string
	AsPoly(p *Poly, gens []Expr) *GensPoly
}

// Kernel implements Engine.
type Kernel struct{}

var _ Engine = Kernel{}

func (Kernel) SolveFor(eq *Equation, sym *Sym) (SolveResult, error) { return SolveFor(eq, sym) }
func (Kernel) Together(e Expr) (*Ratio, error)                      { return Together(e) }
func (Kernel) Expand(e Expr) Expr                                   { return Expand(e) }
func (Kernel) FreeSymbols(e Expr) []string                          { return SortedSymbols(e) }
func (Kernel) AsPoly(p *Poly, gens []Expr) *GensPoly                { return AsPoly(p, gens) }

// ============================================================
// GensPoly: a polynomial viewed over chosen generators
// ============================================================

// GensPoly views a Poly as a polynomial in Gens whose coefficients are
// polynomials in the remaining atoms. Monoms are exponent tuples aligned
// with Gens, in the order of the source polynomial's terms.
type GensPoly struct {
	Gens   []Expr
	Monoms [][]int
	Coeffs []*Poly
}

// AsPoly regroups p over gens.
func AsPoly(p *Poly, gens []Expr) *GensPoly {
	keys := make([]string, len(gens))
	isGen := map[string]bool{}
	for i, g := range gens {
		keys[i] = atomKey(g)
		isGen[keys[i]] = true
	}
	gp := &GensPoly{Gens: gens}
	index := map[string]int{}
	pending := [][]Term{}
	for _, t := range p.terms {
		monom := make([]int, len(gens))
		for i, k := range keys {
			monom[i] = t.Exp(k)
		}
		rest := make([]Power, 0, len(t.Powers))
		for _, pw := range t.Powers {
			if !isGen[atomKey(pw.Base)] {
				rest = append(rest, pw)
			}
		}
		mk := monomKey(monom)
		i, ok := index[mk]
		if !ok {
			i = len(gp.Monoms)
			index[mk] = i
			gp.Monoms = append(gp.Monoms, monom)
			pending = append(pending, nil)
		}
		pending[i] = append(pending[i], Term{Coeff: t.Coeff, Powers: rest})
	}
	gp.Coeffs = make([]*Poly, len(pending))
	for i, ts := range pending {
		gp.Coeffs[i] = newPoly(ts)
	}
	return gp
}

func monomKey(m []int) string { return fmt.Sprint(m) }

// Coeff returns the coefficient of monom, or nil when it does not occur.
func (g *GensPoly) Coeff(monom []int) *Poly {
	for i, m := range g.Monoms {
		if equalMonom(m, monom) {
			return g.Coeffs[i]
		}
	}
	return nil
}

// LeadingMonom returns the monomial of maximum total degree; ties go to
// the lexicographically smallest exponent tuple.
func (g *GensPoly) LeadingMonom() ([]int, bool) {
	if len(g.Monoms) == 0 {
		return nil, false
	}
	ms := make([][]int, len(g.Monoms))
	copy(ms, g.Monoms)
	sort.SliceStable(ms, func(i, j int) bool {
		di, dj := sum(ms[i]), sum(ms[j])
		if di != dj {
			return di > dj
		}
		return lexLess(ms[i], ms[j])
	})
	return ms[0], true
}

func equalMonom(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func lexLess(a, b []int) bool {
	for i := range a {
		if i >= len(b) {
			return false
		}
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func sum(m []int) int {
	s := 0
	for _, e := range m {
		s += e
	}
	return s
}
