// Package pipeline solves implicit model equations for a derivative symbol
// and carries every row through rescaling, small-term elision and rounding
// to a final explicit model:
//
//	Pending → Solved → Rescaled → Cleaned → Final
//
// Any row may instead end Failed. Failures are counted and reported but never
// stop the batch. Rows may be computed concurrently; results, console output
// and export records are always produced in row order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/njchilds90/explicitize/algebra"
	"github.com/njchilds90/explicitize/config"
	"github.com/njchilds90/explicitize/export"
	"github.com/njchilds90/explicitize/simplify"
)

// Pipeline converts batches of equations. It holds only read-only settings
// and may be reused.
type Pipeline struct {
	logger    *zap.Logger
	out       io.Writer
	color     bool
	target    algebra.Expr
	gens      []algebra.Expr
	tol       float64
	sigDigits int
	workers   int
	sinks     []export.Sink
	observer  Observer
	engine    algebra.Engine
}

// New returns a pipeline with the default tolerance, significant digits and
// a single worker, printing to stdout.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:    zap.NewNop(),
		out:       os.Stdout,
		tol:       config.DefaultTolerance,
		sigDigits: config.DefaultSigDigits,
		workers:   config.DefaultWorkers,
		engine:    algebra.Kernel{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result holds every stage of every row, keyed by row index. A failed row
// appears only in the maps of the stages it completed.
type Result struct {
	RunID    string
	Raw      map[int]*algebra.Ratio
	Rescaled map[int]*algebra.Ratio
	Cleaned  map[int]*algebra.Ratio
	Final    map[int]*algebra.Ratio
	Outcomes []Outcome
	Records  []export.Record
	Summary  Summary
}

type row struct {
	outcome                          Outcome
	raw, rescaled, cleaned, finalled *algebra.Ratio
}

// Run solves each equation for sym. The returned error is non-nil only when
// ctx is cancelled or a sink fails to write or close; row failures are
// reported through Result.Outcomes. Sinks are closed before Run returns.
func (p *Pipeline) Run(ctx context.Context, eqs []*algebra.Equation, sym *algebra.Sym) (res *Result, err error) {
	defer func() {
		if cerr := p.closeSinks(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID), zap.String("symbol", sym.Name()))
	log.Info("starting conversion", zap.Int("models", len(eqs)), zap.Int("workers", p.workers))

	rows := make([]row, len(eqs))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, eq := range eqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = p.convert(log, i, eq, sym)
			if p.observer != nil {
				mu.Lock()
				p.observer(rows[i].outcome)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res = &Result{
		RunID:    runID,
		Raw:      map[int]*algebra.Ratio{},
		Rescaled: map[int]*algebra.Ratio{},
		Cleaned:  map[int]*algebra.Ratio{},
		Final:    map[int]*algebra.Ratio{},
		Outcomes: make([]Outcome, len(eqs)),
		Summary:  Summary{Total: len(eqs)},
	}
	rep := newReporter(p.out, p.color)
	var sinkErrs []error
	for i, r := range rows {
		res.Outcomes[i] = r.outcome
		store(res.Raw, i, r.raw)
		store(res.Rescaled, i, r.rescaled)
		store(res.Cleaned, i, r.cleaned)
		if r.outcome.Failed() {
			res.Summary.Failed++
			log.Warn("model failed", zap.Int("model", i), zap.Stringer("stage", r.outcome.Reached), zap.Error(r.outcome.Err))
			rep.failure(i, r.outcome.Err)
			continue
		}
		res.Final[i] = r.finalled
		res.Summary.Succeeded++
		rep.model(i, sym.Name(), r.finalled)

		rec := record(i, sym, r.cleaned, r.finalled)
		res.Records = append(res.Records, rec)
		for _, s := range p.sinks {
			if werr := s.Write(rec); werr != nil {
				sinkErrs = append(sinkErrs, fmt.Errorf("model %d: %w", i, werr))
			}
		}
	}
	rep.summary(res.Summary)
	log.Info("conversion finished",
		zap.Int("total", res.Summary.Total),
		zap.Int("succeeded", res.Summary.Succeeded),
		zap.Int("failed", res.Summary.Failed))
	return res, errors.Join(sinkErrs...)
}

func store(m map[int]*algebra.Ratio, i int, r *algebra.Ratio) {
	if r != nil {
		m[i] = r
	}
}

func (p *Pipeline) closeSinks() error {
	var errs []error
	for _, s := range p.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// convert runs one row through every stage. A panic inside the algebra is
// recorded as a solve failure of that row.
func (p *Pipeline) convert(log *zap.Logger, i int, eq *algebra.Equation, sym *algebra.Sym) (r row) {
	r.outcome = Outcome{Index: i, Stage: StagePending, Reached: StagePending}
	fail := func(sentinel error, format string, args ...any) row {
		r.outcome.Stage = StageFailed
		r.outcome.Err = fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
		return r
	}
	defer func() {
		if v := recover(); v != nil {
			r = fail(ErrSolveFailure, "panic: %v", v)
		}
	}()

	sol, err := p.engine.SolveFor(eq, sym)
	if err != nil {
		return fail(ErrSolveFailure, "%v", err)
	}
	r.outcome.Roots = len(sol.Roots)
	if len(sol.Roots) == 0 {
		return fail(ErrSolveFailure, "%s", sol.Reason)
	}
	if len(sol.Roots) > 1 {
		log.Debug("several roots, keeping the first", zap.Int("model", i), zap.Int("roots", len(sol.Roots)))
	}

	raw := sol.Roots[0]
	if raw.IsUndefined() {
		return fail(ErrDegenerateDenominator, "solution is undefined")
	}
	r.raw = raw
	r.outcome.Reached = StageSolved
	if raw.IsZero() {
		return fail(ErrZeroNumerator, "%s = 0", sym.Name())
	}

	rescaled, sc := simplify.Rescale(raw, p.target, p.gens)
	r.rescaled = rescaled
	r.outcome.Scaling = sc
	r.outcome.Reached = StageRescaled
	log.Debug("rescaled", zap.Int("model", i), zap.Stringer("scaling", sc))

	cleaned := simplify.DropSmallTerms(rescaled, p.tol)
	if cleaned.IsUndefined() {
		return fail(ErrDegenerateDenominator, "denominator vanished after dropping terms below %g", p.tol)
	}
	if cleaned.IsZero() {
		return fail(ErrAllTermsDropped, "tolerance %g", p.tol)
	}
	r.cleaned = cleaned
	r.outcome.Reached = StageCleaned

	r.finalled = simplify.RoundSignificant(cleaned, p.sigDigits)
	r.outcome.Stage = StageFinal
	r.outcome.Reached = StageFinal
	return r
}

func record(i int, sym *algebra.Sym, cleaned, final *algebra.Ratio) export.Record {
	negative := false
	for _, t := range cleaned.Den().Terms() {
		if t.Coeff.IsNegative() {
			negative = true
			break
		}
	}
	return export.Record{
		Model:                  i,
		Symbol:                 sym.Name(),
		Equation:               sym.Name() + " = " + final.String(),
		LaTeX:                  sym.LaTeX() + " = " + final.LaTeX(),
		NumeratorTerms:         cleaned.Num().Len(),
		DenominatorTerms:       cleaned.Den().Len(),
		AnyNegativeDenominator: negative,
	}
}
