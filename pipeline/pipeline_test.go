package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/njchilds90/explicitize/algebra"
	"github.com/njchilds90/explicitize/export"
	"github.com/njchilds90/explicitize/implicit"
	"github.com/njchilds90/explicitize/pipeline"
)

func assemble(t *testing.T, features []string, left, right []float64) *implicit.System {
	t.Helper()
	n := len(features)
	var l mat.Matrix
	if left != nil {
		l = mat.NewDense(n, n, left)
	}
	sys, err := implicit.Assemble(features, l, mat.NewDense(n, n, right))
	require.NoError(t, err)
	return sys
}

func xdot(t *testing.T, sys *implicit.System, token string) *algebra.Sym {
	t.Helper()
	for _, tok := range sys.Symbols().Names() {
		if string(tok) == token {
			s, _ := sys.Symbols().Lookup(tok)
			return s
		}
	}
	t.Fatalf("token %s not in vocabulary", token)
	return nil
}

type mockSink struct{ mock.Mock }

func (m *mockSink) Write(rec export.Record) error { return m.Called(rec).Error(0) }
func (m *mockSink) Close() error                  { return m.Called().Error(0) }

// ============================================================
// End to end
// ============================================================

func TestRun_ExplicitRow(t *testing.T) {
	sys := assemble(t, []string{"1", "x0", "x1", "x0_dot"}, nil, []float64{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 2, -1, 0,
	})
	var out, tex, csv bytes.Buffer
	p := pipeline.New(
		pipeline.WithOutput(&out),
		pipeline.WithSinks(export.NewLaTeXSink(&tex), export.NewCSVSink(&csv)),
	)
	res, err := p.Run(context.Background(), sys.Equations, xdot(t, sys, "x0_dot"))
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, pipeline.Summary{Total: 4, Succeeded: 1, Failed: 3}, res.Summary)
	require.Contains(t, res.Final, 3)
	assert.Equal(t, "2*x0 - x1", res.Final[3].String())
	assert.Equal(t, "2*x0 - x1", res.Raw[3].String())
	assert.Len(t, res.Final, 1)
	assert.Len(t, res.Raw, 1)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, 3, rec.Model)
	assert.Equal(t, "x0_dot = 2*x0 - x1", rec.Equation)
	assert.Equal(t, 2, rec.NumeratorTerms)
	assert.Equal(t, 1, rec.DenominatorTerms)
	assert.False(t, rec.AnyNegativeDenominator)

	for i := 0; i < 3; i++ {
		assert.True(t, res.Outcomes[i].Failed())
		assert.ErrorIs(t, res.Outcomes[i].Err, pipeline.ErrSolveFailure)
	}
	assert.Equal(t, pipeline.StageFinal, res.Outcomes[3].Stage)

	console := out.String()
	assert.Contains(t, console, "Model 0: No solution.\n")
	assert.Contains(t, console, "Model 3:\n          2*x0 - x1\nx0_dot = ---------\n          1\n[Terms: numerator=2, denominator=1]\n")
	assert.Contains(t, console, " Total models processed: 4\n")
	assert.Contains(t, console, " Models obtained      : 1\n")
	assert.Contains(t, console, " Models failed        : 3\n")
	assert.NotContains(t, console, "\x1b[", "colour is off by default")

	assert.Equal(t, "% Model 3\n\\[\n\\dot{x}_{0} = 2 x_{0} - x_{1}\n\\]\n\n", tex.String())
	assert.Contains(t, csv.String(), "3,x0_dot = 2*x0 - x1,2,1,false\n")
}

func TestRun_ZeroRowFailsAlone(t *testing.T) {
	sys := assemble(t, []string{"x0", "x0_dot"},
		[]float64{0, 1, 0, 0},
		[]float64{3, 0, 0, 0},
	)
	res, err := pipeline.New(pipeline.WithOutput(nil)).Run(context.Background(), sys.Equations, xdot(t, sys, "x0_dot"))
	require.NoError(t, err)
	assert.Equal(t, pipeline.Summary{Total: 2, Succeeded: 1, Failed: 1}, res.Summary)
	assert.Equal(t, "3*x0", res.Final[0].String())
	assert.ErrorIs(t, res.Outcomes[1].Err, pipeline.ErrSolveFailure)
	assert.Equal(t, pipeline.StagePending, res.Outcomes[1].Reached)
	assert.NotContains(t, res.Raw, 1)
}

func TestRun_RescalesDenominator(t *testing.T) {
	// 2*x0*x0_dot - 1 = 0
	sys := assemble(t, []string{"1", "x0", "x0_dot", "x0x0_dot"},
		[]float64{
			1, 0, 0, 0,
			0, 1, 0, 0,
			0, 0, 1, 0,
			0, 0, 0, 2,
		},
		[]float64{
			0, 0, 0, 0,
			0, 0, 0, 0,
			0, 0, 0, 0,
			1, 0, 0, 0,
		})
	res, err := pipeline.New(pipeline.WithOutput(nil)).Run(context.Background(), sys.Equations, xdot(t, sys, "x0_dot"))
	require.NoError(t, err)
	require.Contains(t, res.Final, 3)
	assert.Equal(t, "1/(2*x0)", res.Raw[3].String())
	assert.Equal(t, "0.5/x0", res.Final[3].String())
	assert.True(t, res.Outcomes[3].Scaling.Applied)
	assert.Equal(t, "x0", res.Outcomes[3].Scaling.Monomial.String())
}

func TestRun_DropsSmallTerms(t *testing.T) {
	sys := assemble(t, []string{"x0", "x1", "x0_dot"}, nil, []float64{
		0, 0, 0,
		0, 0, 0,
		1.23456, 1e-9, 0,
	})
	res, err := pipeline.New(pipeline.WithOutput(nil), pipeline.WithSigDigits(3)).
		Run(context.Background(), sys.Equations, xdot(t, sys, "x0_dot"))
	require.NoError(t, err)
	require.Contains(t, res.Final, 2)
	assert.Equal(t, 2, res.Raw[2].Num().Len())
	assert.Equal(t, "1.23456*x0", res.Cleaned[2].String())
	assert.Equal(t, "1.23*x0", res.Final[2].String())
}

// ============================================================
// Sinks
// ============================================================

func TestRun_SinkErrorsAreJoined(t *testing.T) {
	sys := assemble(t, []string{"x0", "x0_dot"}, []float64{0, 1, 0, 1}, []float64{1, 0, 2, 0})

	bad := &mockSink{}
	bad.On("Write", mock.Anything).Return(errors.New("disk full"))
	bad.On("Close").Return(errors.New("close failed"))

	res, err := pipeline.New(pipeline.WithOutput(nil), pipeline.WithSinks(bad)).
		Run(context.Background(), sys.Equations, xdot(t, sys, "x0_dot"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "close failed")
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Summary.Succeeded)
	bad.AssertNumberOfCalls(t, "Write", 2)
	bad.AssertNumberOfCalls(t, "Close", 1)
}

func TestRun_CancelledStillClosesSinks(t *testing.T) {
	sys := assemble(t, []string{"x0", "x0_dot"}, nil, []float64{0, 0, 1, 0})
	sink := &mockSink{}
	sink.On("Close").Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := pipeline.New(pipeline.WithOutput(nil), pipeline.WithSinks(sink)).
		Run(ctx, sys.Equations, xdot(t, sys, "x0_dot"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	sink.AssertExpectations(t)
}

// ============================================================
// Robustness
// ============================================================

type panicEngine struct{ algebra.Kernel }

func (panicEngine) SolveFor(eq *algebra.Equation, sym *algebra.Sym) (algebra.SolveResult, error) {
	if strings.Contains(eq.LHS.String(), "x1") {
		panic("boom")
	}
	return algebra.SolveFor(eq, sym)
}

func TestRun_PanicBecomesSolveFailure(t *testing.T) {
	sys := assemble(t, []string{"x0", "x1", "x0_dot"}, nil, []float64{
		0, 0, 0,
		0, 0, 0,
		4, 0, 0,
	})
	res, err := pipeline.New(pipeline.WithOutput(nil), pipeline.WithEngine(panicEngine{})).
		Run(context.Background(), sys.Equations, xdot(t, sys, "x0_dot"))
	require.NoError(t, err)
	assert.ErrorIs(t, res.Outcomes[1].Err, pipeline.ErrSolveFailure)
	assert.Contains(t, res.Outcomes[1].Err.Error(), "boom")
	assert.Equal(t, "4*x0", res.Final[2].String())
	assert.Equal(t, 1, res.Summary.Succeeded)
}

func TestRun_WorkersKeepOrder(t *testing.T) {
	features := []string{"x0_dot"}
	n := 12
	for i := 0; i < n-1; i++ {
		features = append(features, fmt.Sprintf("y%d", i))
	}
	right := make([]float64, n*n)
	for j := 1; j < n; j++ {
		right[j] = float64(j) // row 0: x0_dot = sum j*y(j-1)
	}
	for i := 1; i < n; i++ {
		right[i*n+i] = 1 // y = y: identity, no solution for x0_dot
	}
	sys := assemble(t, features, nil, right)
	sym := xdot(t, sys, "x0_dot")

	var serial, parallel bytes.Buffer
	want, err := pipeline.New(pipeline.WithOutput(&serial)).Run(context.Background(), sys.Equations, sym)
	require.NoError(t, err)

	seen := 0
	got, err := pipeline.New(
		pipeline.WithOutput(&parallel),
		pipeline.WithWorkers(4),
		pipeline.WithObserver(func(pipeline.Outcome) { seen++ }),
	).Run(context.Background(), sys.Equations, sym)
	require.NoError(t, err)

	assert.Equal(t, n, seen)
	assert.Equal(t, want.Summary, got.Summary)
	assert.Equal(t, want.Records, got.Records)
	assert.Equal(t, serial.String(), parallel.String())
}

func TestRun_Color(t *testing.T) {
	sys := assemble(t, []string{"x0", "x0_dot"}, nil, []float64{0, 0, 1, 0})
	var out bytes.Buffer
	_, err := pipeline.New(pipeline.WithOutput(&out), pipeline.WithColor(true)).
		Run(context.Background(), sys.Equations, xdot(t, sys, "x0_dot"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\x1b[")
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "rescaled", pipeline.StageRescaled.String())
	assert.Equal(t, "failed", pipeline.StageFailed.String())
	assert.Equal(t, "unknown", pipeline.Stage(42).String())
}
