package feature

import (
	"fmt"

	"github.com/njchilds90/explicitize/algebra"
)

// Consolidate turns a token tuple into a monomial: each distinct token
// becomes symbol^count, in order of first occurrence, inside an unevaluated
// product. An empty tuple is the constant 1.
func Consolidate(tokens []Token, table SymbolTable) (algebra.Expr, error) {
	counts := map[Token]int{}
	order := []Token{}
	for _, t := range tokens {
		if _, ok := counts[t]; !ok {
			order = append(order, t)
		}
		counts[t]++
	}
	factors := make([]algebra.Expr, 0, len(order))
	for _, t := range order {
		sym, ok := table.Lookup(t)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownToken, t)
		}
		factors = append(factors, algebra.PowOf(sym, algebra.N(int64(counts[t]))))
	}
	return algebra.Product(factors...), nil
}

// Monomial parses s with Tokenize and consolidates it against table. It is
// how a rescale target like "x0x1" is read.
func Monomial(s string, table SymbolTable) (algebra.Expr, error) {
	return Consolidate(Tokenize(s), table)
}

// Reformat returns the human readable product form of every feature, e.g.
// "x0x0x1" becomes "x0^2*x1".
func Reformat(features []string) []string {
	v := BuildVocabulary(features)
	out := make([]string, len(features))
	for i, f := range features {
		toks, _ := v.TokensOf(f)
		// every token of f is in v's own table
		e, _ := Consolidate(toks, v.Symbols())
		out[i] = e.String()
	}
	return out
}
