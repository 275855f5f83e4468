package simplify

import (
	"strconv"

	"github.com/njchilds90/explicitize/algebra"
)

// RoundSignificant rounds every number of r to digits significant digits,
// including numbers inside opaque atoms such as square roots. digits <= 0
// leaves r unchanged.
func RoundSignificant(r *algebra.Ratio, digits int) *algebra.Ratio {
	if digits <= 0 || r.IsUndefined() {
		return r
	}
	round := func(n *algebra.Num) *algebra.Num { return RoundNum(n, digits) }
	atom := func(e algebra.Expr) algebra.Expr { return algebra.MapNumbers(e, round) }
	return algebra.NewRatio(r.Num().Map(round, atom), r.Den().Map(round, atom))
}

// RoundNum rounds n to digits significant digits.
func RoundNum(n *algebra.Num, digits int) *algebra.Num {
	if digits <= 0 || n.IsZero() {
		return n
	}
	s := strconv.FormatFloat(n.Float64(), 'g', digits, 64)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return n
	}
	return algebra.NFloat(f)
}
