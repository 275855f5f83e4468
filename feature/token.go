// Package feature turns raw dictionary-term strings such as "x0x1x2_dot"
// into tokens, a deterministic vocabulary of symbols and symbolic monomials.
package feature

import (
	"regexp"
	"strings"
)

// Token is one variable ("x0") or derivative variable ("x2_dot", "x1_t")
// found in a feature string.
type Token string

var (
	derivativePattern = regexp.MustCompile(`([A-Za-z][0-9]*)(_dot|_t)`)
	plainPattern      = regexp.MustCompile(`[A-Za-z][0-9]*`)
)

// Tokenize splits a feature string into tokens in source order. Derivative
// tokens are matched first; the text around them is scanned for plain
// tokens. Characters that match neither pattern are ignored, so "1" yields
// no tokens.
func Tokenize(feature string) []Token {
	matches := derivativePattern.FindAllStringIndex(feature, -1)
	if len(matches) == 0 {
		return plainTokens(feature)
	}
	tokens := []Token{}
	last := 0
	for _, m := range matches {
		tokens = append(tokens, plainTokens(feature[last:m[0]])...)
		tokens = append(tokens, Token(feature[m[0]:m[1]]))
		last = m[1]
	}
	return append(tokens, plainTokens(feature[last:])...)
}

func plainTokens(s string) []Token {
	found := plainPattern.FindAllString(s, -1)
	tokens := make([]Token, len(found))
	for i, f := range found {
		tokens[i] = Token(f)
	}
	return tokens
}

// IsDerivative reports whether t carries a derivative suffix.
func (t Token) IsDerivative() bool {
	return strings.HasSuffix(string(t), "_dot") || strings.HasSuffix(string(t), "_t")
}

func (t Token) String() string { return string(t) }
