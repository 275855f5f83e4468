package export

import (
	"fmt"
	"io"
)

// LaTeXSink writes each record as a display-math block:
//
//	% Model 3
//	\[
//	\dot{x}_{0} = 2 x_{0} - x_{1}
//	\]
type LaTeXSink struct {
	fileSink
}

// NewLaTeXSink writes to w. Close does not close w.
func NewLaTeXSink(w io.Writer) *LaTeXSink { return &LaTeXSink{fileSink{w: w}} }

// CreateLaTeX creates (or truncates) path and writes to it.
func CreateLaTeX(path string) (*LaTeXSink, error) {
	fs, err := create(path)
	if err != nil {
		return nil, err
	}
	return &LaTeXSink{fs}, nil
}

func (s *LaTeXSink) Write(rec Record) error {
	if s.closed {
		return ErrClosed
	}
	_, err := fmt.Fprintf(s.w, "%% Model %d\n\\[\n%s\n\\]\n\n", rec.Model, rec.LaTeX)
	return err
}

func (s *LaTeXSink) Close() error { return s.close() }
