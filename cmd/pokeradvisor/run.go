package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokeradvisor/cmd/pokeradvisor/shared"
	"github.com/lox/pokeradvisor/internal/advisor"
	"github.com/lox/pokeradvisor/internal/config"
	"github.com/lox/pokeradvisor/internal/prompt"
	"github.com/lox/pokeradvisor/internal/render"
	"github.com/lox/pokeradvisor/internal/solver"
	"github.com/lox/pokeradvisor/internal/summary"
)

// RunCmd solves a flop and prints the strategy for each requested street.
type RunCmd struct {
	Hero  string `arg:"" optional:"" help:"Hero hand, e.g. AhKd"`
	Board string `arg:"" optional:"" help:"Flop, optionally followed by turn and river, e.g. QsJh2h"`
	Turn  string `arg:"" optional:"" help:"Turn card"`
	River string `arg:"" optional:"" help:"River card"`

	Reuse bool `help:"Reuse an existing solver output instead of solving again"`
}

func (c *RunCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	out := render.New(g.stdout(), g.NoColor)
	out.Banner("Poker Advisor")

	hero, board, turn, river := c.Hero, c.Board, c.Turn, c.River
	switch {
	case hero == "":
		answers, err := prompt.Run(ctx, os.Stdin, g.stdout())
		if errors.Is(err, prompt.ErrAborted) {
			out.Info("Aborted.")
			return nil
		}
		if err != nil {
			return err
		}
		hero, board, turn, river = answers.Hero, answers.Board, answers.Turn, answers.River
	case board == "":
		return errors.New("a board is required when a hero hand is given")
	}

	in, err := advisor.ParseInput(hero, board, turn, river)
	if err != nil {
		return err
	}

	sink, closeSinks := openSinks(ctx, cfg, logger)
	defer closeSinks()

	clock := quartz.NewReal()
	adv := advisor.New(solver.NewRunner(cfg, logger, clock), sink, advisor.Options{
		OutputPath:  cfg.Paths.Output,
		ReuseOutput: c.Reuse || cfg.Solver.ReuseOutput,
		Logger:      logger,
		Clock:       clock,
	})

	out.Info(fmt.Sprintf("Solving %s for %s (timeout %s)", strings.Join(in.Flop, ","), in.Hero, cfg.Solver.TimeoutDuration()))
	report, err := adv.Run(ctx, in)
	if err != nil {
		return err
	}

	out.Report(report)
	return nil
}

// openSinks returns the summary file sink plus the Postgres sink when a
// database is configured. A database that cannot be reached is logged and
// skipped.
func openSinks(ctx context.Context, cfg *config.Config, logger *log.Logger) (summary.Sink, func()) {
	sinks := summary.Multi{&summary.FileSink{Path: cfg.Paths.Summary}}
	if cfg.Database.URL == "" {
		return sinks, func() {}
	}

	pg, err := summary.OpenPostgres(ctx, cfg.Database.URL)
	if err != nil {
		logger.Warn("Run history database unavailable", "error", err)
		return sinks, func() {}
	}
	if cfg.Database.AutoMigrate {
		if err := pg.Migrate(ctx); err != nil {
			logger.Warn("Failed to migrate run history database", "error", err)
		}
	}
	return append(sinks, pg), pg.Close
}
