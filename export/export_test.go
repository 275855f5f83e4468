package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/explicitize/export"
)

var rec = export.Record{
	Model:            3,
	Symbol:           "x0_dot",
	Equation:         "x0_dot = 2*x0 - x1",
	LaTeX:            "\\dot{x}_{0} = 2 x_{0} - x_{1}",
	NumeratorTerms:   2,
	DenominatorTerms: 1,
}

func TestLaTeXSink(t *testing.T) {
	var buf bytes.Buffer
	s := export.NewLaTeXSink(&buf)
	require.NoError(t, s.Write(rec))
	require.NoError(t, s.Close())
	assert.Equal(t, "% Model 3\n\\[\n\\dot{x}_{0} = 2 x_{0} - x_{1}\n\\]\n\n", buf.String())
	assert.ErrorIs(t, s.Write(rec), export.ErrClosed)
}

func TestCSVSink(t *testing.T) {
	var buf bytes.Buffer
	s := export.NewCSVSink(&buf)
	require.NoError(t, s.Write(rec))
	require.NoError(t, s.Close())
	want := "Model,Equation,Numerator Terms,Denominator Terms,Any Negative in Denominator\n" +
		"3,x0_dot = 2*x0 - x1,2,1,false\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVSink_HeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	s := export.NewCSVSink(&buf)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, "Model,Equation,Numerator Terms,Denominator Terms,Any Negative in Denominator\n", buf.String())
}

func TestCreateFiles(t *testing.T) {
	dir := t.TempDir()
	texPath := filepath.Join(dir, "models.tex")
	csvPath := filepath.Join(dir, "models.csv")

	tex, err := export.CreateLaTeX(texPath)
	require.NoError(t, err)
	csv, err := export.CreateCSV(csvPath)
	require.NoError(t, err)

	for _, s := range []export.Sink{tex, csv} {
		require.NoError(t, s.Write(rec))
		require.NoError(t, s.Close())
	}

	texData, err := os.ReadFile(texPath)
	require.NoError(t, err)
	assert.Contains(t, string(texData), "% Model 3")

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "3,x0_dot = 2*x0 - x1,2,1,false")
}

func TestCreate_BadPath(t *testing.T) {
	_, err := export.CreateLaTeX(filepath.Join(t.TempDir(), "missing", "x.tex"))
	assert.Error(t, err)
}
