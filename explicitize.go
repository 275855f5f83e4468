// Package explicitize converts implicit models, as fitted by sparse
// identification of rational dynamics, into explicit rational right-hand
// sides:
//
//	sum_j L[i,j]*f_j(x) = sum_j R[i,j]*f_j(x)   ->   x_dot = N(x)/D(x)
//
// Convert is the single entry point. It checks the whole model before any
// row is solved, then hands the assembled equations to a pipeline.Pipeline.
//
//	m, _ := config.LoadModel("model.yaml")
//	res, err := explicitize.Convert(ctx, m, config.Default())
//	fmt.Println(res.Final[3]) // 2*x0 - x1
package explicitize

import (
	"context"
	"errors"
	"fmt"

	"github.com/njchilds90/explicitize/algebra"
	"github.com/njchilds90/explicitize/config"
	"github.com/njchilds90/explicitize/export"
	"github.com/njchilds90/explicitize/feature"
	"github.com/njchilds90/explicitize/implicit"
	"github.com/njchilds90/explicitize/pipeline"
)

// ErrUnknownSymbol is returned when xdot or a generator is not a token of
// the model's vocabulary.
var ErrUnknownSymbol = errors.New("explicitize: symbol not in vocabulary")

// Convert solves every row of m for m.XDot. cfg supplies the tunables and
// export paths; opts are applied after them, so callers may still override
// the logger, output, observer or engine.
//
// Validation failures, unknown symbols and sink creation errors are returned
// before any row runs. Row failures are reported in the result.
func Convert(ctx context.Context, m config.Model, cfg config.Config, opts ...pipeline.Option) (*pipeline.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sys, err := Prepare(m)
	if err != nil {
		return nil, err
	}
	table := sys.Symbols()
	sym, ok := table.Lookup(feature.Token(m.XDot))
	if !ok {
		return nil, fmt.Errorf("%w: xdot %q", ErrUnknownSymbol, m.XDot)
	}

	base := []pipeline.Option{
		pipeline.WithTolerance(cfg.Tolerance),
		pipeline.WithSigDigits(cfg.SigDigits),
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithColor(cfg.Color),
	}
	if cfg.Target != "" {
		target, err := feature.Monomial(cfg.Target, table)
		if err != nil {
			return nil, fmt.Errorf("%w: target %q: %v", ErrUnknownSymbol, cfg.Target, err)
		}
		base = append(base, pipeline.WithTarget(target))
	}
	if len(cfg.Gens) > 0 {
		gens := make([]algebra.Expr, len(cfg.Gens))
		for i, g := range cfg.Gens {
			s, ok := table.Lookup(feature.Token(g))
			if !ok {
				return nil, fmt.Errorf("%w: generator %q", ErrUnknownSymbol, g)
			}
			gens[i] = s
		}
		base = append(base, pipeline.WithGens(gens...))
	}

	sinks, err := openSinks(cfg)
	if err != nil {
		return nil, err
	}
	base = append(base, pipeline.WithSinks(sinks...))

	return pipeline.New(append(base, opts...)...).Run(ctx, sys.Equations, sym)
}

// Prepare converts the coefficient tables of m and assembles its equations.
func Prepare(m config.Model) (*implicit.System, error) {
	left, right, err := m.Matrices()
	if err != nil {
		return nil, err
	}
	return implicit.Assemble(m.FeatureNames, left, right)
}

func openSinks(cfg config.Config) ([]export.Sink, error) {
	var sinks []export.Sink
	if cfg.LaTeXPath != "" {
		s, err := export.CreateLaTeX(cfg.LaTeXPath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if cfg.CSVPath != "" {
		s, err := export.CreateCSV(cfg.CSVPath)
		if err != nil {
			for _, open := range sinks {
				_ = open.Close()
			}
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}
