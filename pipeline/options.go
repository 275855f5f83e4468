package pipeline

import (
	"io"

	"go.uber.org/zap"

	"github.com/njchilds90/explicitize/algebra"
	"github.com/njchilds90/explicitize/export"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger; nil means no logging.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l == nil {
			l = zap.NewNop()
		}
		p.logger = l
	}
}

// WithOutput sets where console blocks and the summary are printed.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		if w == nil {
			w = io.Discard
		}
		p.out = w
	}
}

// WithColor turns console colours on or off.
func WithColor(on bool) Option { return func(p *Pipeline) { p.color = on } }

// WithTarget sets the preferred denominator monomial for rescaling.
func WithTarget(target algebra.Expr) Option { return func(p *Pipeline) { p.target = target } }

// WithGens sets the generators the denominator is viewed over.
func WithGens(gens ...algebra.Expr) Option { return func(p *Pipeline) { p.gens = gens } }

// WithTolerance sets the term-dropping threshold. Non-positive values are
// ignored.
func WithTolerance(tol float64) Option {
	return func(p *Pipeline) {
		if tol > 0 {
			p.tol = tol
		}
	}
}

// WithSigDigits sets the significant digits of final models; 0 disables
// rounding and negative values are ignored.
func WithSigDigits(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.sigDigits = n
		}
	}
}

// WithWorkers bounds how many rows are solved concurrently.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithSinks adds export sinks. The pipeline closes them when Run returns.
func WithSinks(sinks ...export.Sink) Option {
	return func(p *Pipeline) { p.sinks = append(p.sinks, sinks...) }
}

// WithObserver registers a callback invoked once per finished row, in
// completion order. Calls are serialized.
func WithObserver(fn Observer) Option { return func(p *Pipeline) { p.observer = fn } }

// WithEngine replaces the algebra engine.
func WithEngine(e algebra.Engine) Option {
	return func(p *Pipeline) {
		if e != nil {
			p.engine = e
		}
	}
}
