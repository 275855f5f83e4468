package feature

import "errors"

var (
	// ErrUnknownToken indicates a token that has no symbol in the table.
	ErrUnknownToken = errors.New("feature: token not in symbol table")
)
