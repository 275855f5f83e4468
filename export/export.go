// Package export writes finished models to files. A Sink receives one Record
// per successful model, in model order, and is closed once when the batch
// ends.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("export: sink is closed")

// Record is one exported model.
type Record struct {
	Model int `json:"model"`
	// Symbol is the derivative the model was solved for.
	Symbol string `json:"symbol"`
	// Equation is "symbol = final" in plain text.
	Equation string `json:"equation"`
	// LaTeX is "symbol = final" in LaTeX.
	LaTeX                  string `json:"latex"`
	NumeratorTerms         int    `json:"numerator_terms"`
	DenominatorTerms       int    `json:"denominator_terms"`
	AnyNegativeDenominator bool   `json:"any_negative_denominator"`
}

// Sink consumes records.
type Sink interface {
	Write(rec Record) error
	Close() error
}

// fileSink holds the writer a sink writes to and, when the sink opened a
// file itself, that file.
type fileSink struct {
	w      io.Writer
	file   *os.File
	closed bool
}

func create(path string) (fileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return fileSink{}, fmt.Errorf("export: create %s: %w", path, err)
	}
	return fileSink{w: f, file: f}, nil
}

func (s *fileSink) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
