package algebra_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/explicitize/algebra"
)

// ============================================================
// SolveFor tests
// ============================================================

func TestSolveFor_Linear(t *testing.T) {
	xd, x0, x1 := algebra.S("x0_dot"), algebra.S("x0"), algebra.S("x1")
	eq := algebra.Eq(algebra.AddOf(xd, algebra.MulOf(algebra.N(-2), x0), x1), algebra.N(0))
	res, err := algebra.SolveFor(eq, xd)
	require.NoError(t, err)
	require.Len(t, res.Roots, 1)
	assert.Equal(t, "2*x0 - x1", res.Roots[0].String())
}

func TestSolveFor_LinearWithSymbolicCoefficient(t *testing.T) {
	xd, x0, x1 := algebra.S("x0_dot"), algebra.S("x0"), algebra.S("x1")
	eq := algebra.Eq(algebra.MulOf(x0, xd), x1)
	res, err := algebra.SolveFor(eq, xd)
	require.NoError(t, err)
	require.Len(t, res.Roots, 1)
	assert.Equal(t, "x1/x0", res.Roots[0].String())
}

func TestSolveFor_QuadraticExact(t *testing.T) {
	x := algebra.S("x")
	eq := algebra.Eq(algebra.PowOf(x, algebra.N(2)), algebra.N(4))
	res, err := algebra.SolveFor(eq, x)
	require.NoError(t, err)
	require.Len(t, res.Roots, 2)
	assert.Equal(t, "-2", res.Roots[0].String())
	assert.Equal(t, "2", res.Roots[1].String())
}

func TestSolveFor_QuadraticIrrational(t *testing.T) {
	x := algebra.S("x")
	eq := algebra.Eq(algebra.PowOf(x, algebra.N(2)), algebra.N(2))
	res, err := algebra.SolveFor(eq, x)
	require.NoError(t, err)
	require.Len(t, res.Roots, 2)
	v, ok := res.Roots[0].Eval(nil)
	require.True(t, ok)
	assert.InDelta(t, -1.4142135623730951, v, 1e-12)
}

func TestSolveFor_QuadraticSymbolic(t *testing.T) {
	x, y := algebra.S("x"), algebra.S("y")
	eq := algebra.Eq(algebra.MulOf(y, algebra.PowOf(x, algebra.N(2))), algebra.N(1))
	res, err := algebra.SolveFor(eq, x)
	require.NoError(t, err)
	require.Len(t, res.Roots, 2)
	assert.Contains(t, res.Roots[0].String(), "sqrt(")
	for i, want := range []float64{-1, 1} {
		v, ok := res.Roots[i].Eval(map[string]float64{"y": 1})
		require.True(t, ok)
		assert.InDelta(t, want, v, 1e-12)
	}
}

func TestSolveFor_QuadraticDoubleRoot(t *testing.T) {
	x := algebra.S("x")
	// x^2 - 2x + 1 = 0
	lhs := algebra.AddOf(algebra.PowOf(x, algebra.N(2)), algebra.MulOf(algebra.N(-2), x), algebra.N(1))
	res, err := algebra.SolveFor(algebra.Eq(lhs, algebra.N(0)), x)
	require.NoError(t, err)
	require.Len(t, res.Roots, 1)
	assert.Equal(t, "1", res.Roots[0].String())
}

func TestSolveFor_ComplexRoots(t *testing.T) {
	x := algebra.S("x")
	eq := algebra.Eq(algebra.AddOf(algebra.PowOf(x, algebra.N(2)), algebra.N(1)), algebra.N(0))
	res, err := algebra.SolveFor(eq, x)
	require.NoError(t, err)
	assert.Empty(t, res.Roots)
	assert.Contains(t, res.Reason, "complex")
}

func TestSolveFor_Identity(t *testing.T) {
	res, err := algebra.SolveFor(algebra.Eq(algebra.N(0), algebra.N(0)), algebra.S("x"))
	require.NoError(t, err)
	assert.Empty(t, res.Roots)
	assert.Contains(t, res.Reason, "identity")
}

func TestSolveFor_SymbolAbsent(t *testing.T) {
	res, err := algebra.SolveFor(algebra.Eq(algebra.S("y"), algebra.N(1)), algebra.S("x"))
	require.NoError(t, err)
	assert.Empty(t, res.Roots)
}

func TestSolveFor_CubicUnsupported(t *testing.T) {
	x := algebra.S("x")
	res, err := algebra.SolveFor(algebra.Eq(algebra.PowOf(x, algebra.N(3)), algebra.N(8)), x)
	require.NoError(t, err)
	assert.Empty(t, res.Roots)
	assert.Contains(t, res.Reason, "degree 3")
}

func TestSolveFor_DivisionByZero(t *testing.T) {
	x := algebra.S("x")
	eq := algebra.Eq(algebra.MulOf(x, algebra.PowOf(algebra.N(0), algebra.N(-1))), algebra.N(1))
	_, err := algebra.SolveFor(eq, x)
	assert.ErrorIs(t, err, algebra.ErrDivisionByZero)
}

// ============================================================
// Engine / AsPoly tests
// ============================================================

func TestKernel_AsPoly(t *testing.T) {
	// 2*x0*x1 + 3*x0 + z over gens (x0, x1)
	p := konst(2).Mul(atom("x0")).Mul(atom("x1")).Add(konst(3).Mul(atom("x0"))).Add(atom("z"))
	var eng algebra.Engine = algebra.Kernel{}
	gp := eng.AsPoly(p, []algebra.Expr{algebra.S("x0"), algebra.S("x1")})

	c := gp.Coeff([]int{1, 1})
	require.NotNil(t, c)
	n, ok := c.Constant()
	require.True(t, ok)
	assert.Equal(t, "2", n.String())

	z := gp.Coeff([]int{0, 0})
	require.NotNil(t, z)
	assert.False(t, z.IsConstant())
	assert.Nil(t, gp.Coeff([]int{0, 1}))

	lead, ok := gp.LeadingMonom()
	require.True(t, ok)
	assert.Equal(t, []int{1, 1}, lead)
}

func TestGensPoly_LeadingMonomTieBreak(t *testing.T) {
	p := atom("x0").Add(atom("x1"))
	gp := algebra.AsPoly(p, []algebra.Expr{algebra.S("x0"), algebra.S("x1")})
	lead, ok := gp.LeadingMonom()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, lead)
}

func TestKernel_FreeSymbols(t *testing.T) {
	e := algebra.MulOf(algebra.S("b"), algebra.S("a"))
	assert.Equal(t, []string{"a", "b"}, algebra.Kernel{}.FreeSymbols(e))
}
