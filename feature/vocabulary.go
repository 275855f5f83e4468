package feature

import (
	"sort"

	"github.com/njchilds90/explicitize/algebra"
)

// Vocabulary is the set of distinct tokens of a feature batch together with
// the token tuple of every feature.
type Vocabulary struct {
	tokens   []Token
	features map[string][]Token
	table    SymbolTable
}

// BuildVocabulary tokenizes every feature. The resulting token list is
// sorted, so it does not depend on the order of features.
func BuildVocabulary(features []string) *Vocabulary {
	v := &Vocabulary{features: make(map[string][]Token, len(features))}
	seen := map[Token]struct{}{}
	for _, f := range features {
		toks := Tokenize(f)
		v.features[f] = toks
		for _, t := range toks {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				v.tokens = append(v.tokens, t)
			}
		}
	}
	sort.Slice(v.tokens, func(i, j int) bool { return v.tokens[i] < v.tokens[j] })
	v.table = newSymbolTable(v.tokens)
	return v
}

// Tokens returns the sorted distinct tokens.
func (v *Vocabulary) Tokens() []Token {
	out := make([]Token, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// TokensOf returns the token tuple of feature and whether it was part of
// the batch.
func (v *Vocabulary) TokensOf(feature string) ([]Token, bool) {
	toks, ok := v.features[feature]
	if !ok {
		return nil, false
	}
	out := make([]Token, len(toks))
	copy(out, toks)
	return out, true
}

func (v *Vocabulary) Contains(t Token) bool {
	_, ok := v.table.Lookup(t)
	return ok
}

// Symbols returns the token to symbol table of the batch.
func (v *Vocabulary) Symbols() SymbolTable { return v.table }

// SymbolTable binds each token to one symbol. It is built once and never
// modified.
type SymbolTable struct {
	syms  map[Token]*algebra.Sym
	names []Token
}

func newSymbolTable(tokens []Token) SymbolTable {
	st := SymbolTable{syms: make(map[Token]*algebra.Sym, len(tokens))}
	for _, t := range tokens {
		st.syms[t] = algebra.S(string(t))
	}
	st.names = append([]Token(nil), tokens...)
	return st
}

func (st SymbolTable) Lookup(t Token) (*algebra.Sym, bool) {
	s, ok := st.syms[t]
	return s, ok
}

// Names returns the tokens of the table in sorted order.
func (st SymbolTable) Names() []Token { return append([]Token(nil), st.names...) }

func (st SymbolTable) Len() int { return len(st.names) }
