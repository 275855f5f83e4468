// Package implicit assembles the symbolic equations of an implicit model:
// one equation per row of a coefficient-matrix pair (L, R) over an ordered
// feature dictionary,
//
//	sum_j L[i,j]*monomial(j) - sum_j R[i,j]*monomial(j) = 0.
//
// Matrices are gonum mat.Matrix values. L defaults to the identity, so each
// equation starts from its own feature on the left-hand side.
package implicit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/njchilds90/explicitize/algebra"
	"github.com/njchilds90/explicitize/feature"
)

// System is the result of Assemble.
type System struct {
	// Features is the ordered dictionary the matrices are aligned to.
	Features []string
	// Monomials[j] is the consolidated product of Features[j].
	Monomials []algebra.Expr
	// Equations[i] is row i written as lhs - rhs = 0.
	Equations  []*algebra.Equation
	Vocabulary *feature.Vocabulary
}

// Symbols is the token to symbol table the equations are built over.
func (s *System) Symbols() feature.SymbolTable { return s.Vocabulary.Symbols() }

// Len returns the number of equations.
func (s *System) Len() int { return len(s.Equations) }

// Identity returns the n×n identity matrix. n must be positive.
func Identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

// Assemble builds one equation per row. left may be nil for the identity.
// Dimension, duplicate and finiteness checks all run before any equation is
// built.
func Assemble(features []string, left, right mat.Matrix) (*System, error) {
	n := len(features)
	if n == 0 {
		return nil, ErrNoFeatures
	}
	if right == nil {
		return nil, fmt.Errorf("%w: right coefficient matrix is missing", ErrDimensionMismatch)
	}
	if left == nil {
		left = Identity(n)
	}
	if err := checkSquare("left", left, n); err != nil {
		return nil, err
	}
	if err := checkSquare("right", right, n); err != nil {
		return nil, err
	}
	seen := make(map[string]int, n)
	for i, f := range features {
		if j, dup := seen[f]; dup {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateFeature, f, j, i)
		}
		seen[f] = i
	}
	if err := checkFinite("left", left); err != nil {
		return nil, err
	}
	if err := checkFinite("right", right); err != nil {
		return nil, err
	}

	vocab := feature.BuildVocabulary(features)
	monos := make([]algebra.Expr, n)
	for j, f := range features {
		toks, _ := vocab.TokensOf(f)
		m, err := feature.Consolidate(toks, vocab.Symbols())
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", f, err)
		}
		monos[j] = m
	}

	eqs := make([]*algebra.Equation, n)
	for i := 0; i < n; i++ {
		lhs := rowSum(left, i, monos)
		rhs := rowSum(right, i, monos)
		eqs[i] = algebra.Eq(algebra.AddOf(lhs, algebra.MulOf(algebra.N(-1), rhs)), algebra.N(0))
	}
	return &System{Features: append([]string(nil), features...), Monomials: monos, Equations: eqs, Vocabulary: vocab}, nil
}

func rowSum(m mat.Matrix, i int, monos []algebra.Expr) algebra.Expr {
	terms := []algebra.Expr{}
	for j, mono := range monos {
		c := m.At(i, j)
		if c == 0 {
			continue
		}
		terms = append(terms, algebra.MulOf(algebra.NFloat(c), mono))
	}
	return algebra.AddOf(terms...)
}

func checkSquare(name string, m mat.Matrix, n int) error {
	r, c := m.Dims()
	if r != n || c != n {
		return fmt.Errorf("%w: %s matrix is %dx%d, want %dx%d", ErrDimensionMismatch, name, r, c, n, n)
	}
	return nil
}

func checkFinite(name string, m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s[%d,%d] = %v", ErrNonFiniteCoefficient, name, i, j, v)
			}
		}
	}
	return nil
}
