// Package advisor ties the solver, the strategy resolver and the hand
// evaluator into one advice session.
package advisor

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokeradvisor/internal/fileutil"
	"github.com/lox/pokeradvisor/internal/strategy"
	"github.com/lox/pokeradvisor/internal/summary"
)

// Solver produces a strategy document for a flop and returns its path.
type Solver interface {
	Run(ctx context.Context, board []string, hero string) (string, error)
}

// Options configures an Advisor.
type Options struct {
	// OutputPath is where the solver writes its document.
	OutputPath string
	// ReuseOutput loads an existing document instead of solving again.
	ReuseOutput bool

	Logger *log.Logger
	Clock  quartz.Clock
}

// Advisor runs one advice session per call.
type Advisor struct {
	solver Solver
	sink   summary.Sink
	opts   Options
	logger *log.Logger
}

// New creates an Advisor. sink may be nil to disable run summaries.
func New(solver Solver, sink summary.Sink, opts Options) *Advisor {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Advisor{
		solver: solver,
		sink:   sink,
		opts:   opts,
		logger: logger.WithPrefix("advisor"),
	}
}

// Run solves the flop (unless reusing a previous document), resolves every
// requested street and records a summary entry. Summary failures are logged
// and do not fail the run.
func (a *Advisor) Run(ctx context.Context, in Input) (*Report, error) {
	for _, w := range in.Warnings {
		a.logger.Warn(w)
	}

	path := a.opts.OutputPath
	if a.opts.ReuseOutput && fileutil.Exists(path) {
		a.logger.Info("Reusing existing solver output", "path", path)
	} else {
		a.logger.Info("Running solver, this may take some time", "flop", in.Flop, "hero", in.Hero)
		out, err := a.solver.Run(ctx, in.Flop, in.Hero)
		if err != nil {
			return nil, fmt.Errorf("solver: %w", err)
		}
		path = out
	}

	tree, err := strategy.Load(path)
	if err != nil {
		return nil, err
	}

	report := BuildReport(tree, in)
	for _, sr := range report.Streets {
		switch {
		case sr.Skipped != "":
			a.logger.Warn(sr.Skipped)
		case !sr.Found:
			a.logger.Warn("Street not present in solved tree", "street", sr.Street, "board", sr.Board)
		}
	}

	if a.sink != nil {
		if err := a.sink.Append(ctx, report.Entry(a.opts.Clock)); err != nil {
			a.logger.Warn("Failed to write summary", "error", err)
		}
	}
	return report, nil
}
