package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"Model", "Equation", "Numerator Terms", "Denominator Terms", "Any Negative in Denominator"}

// CSVSink writes one row per record under CSVHeader. The header is written
// on Close even when no record arrived.
type CSVSink struct {
	fileSink
	cw     *csv.Writer
	header bool
}

// NewCSVSink writes to w. Close flushes but does not close w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{fileSink: fileSink{w: w}, cw: csv.NewWriter(w)}
}

// CreateCSV creates (or truncates) path and writes to it.
func CreateCSV(path string) (*CSVSink, error) {
	fs, err := create(path)
	if err != nil {
		return nil, err
	}
	return &CSVSink{fileSink: fs, cw: csv.NewWriter(fs.w)}, nil
}

func (s *CSVSink) writeHeader() error {
	if s.header {
		return nil
	}
	s.header = true
	return s.cw.Write(CSVHeader)
}

func (s *CSVSink) Write(rec Record) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.writeHeader(); err != nil {
		return err
	}
	return s.cw.Write([]string{
		strconv.Itoa(rec.Model),
		rec.Equation,
		strconv.Itoa(rec.NumeratorTerms),
		strconv.Itoa(rec.DenominatorTerms),
		strconv.FormatBool(rec.AnyNegativeDenominator),
	})
}

func (s *CSVSink) Close() error {
	if s.closed {
		return nil
	}
	err := s.writeHeader()
	s.cw.Flush()
	if err == nil {
		err = s.cw.Error()
	}
	if cerr := s.close(); err == nil {
		err = cerr
	}
	return err
}
