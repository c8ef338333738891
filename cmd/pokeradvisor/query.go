package main

import (
	"encoding/json"

	"github.com/lox/pokeradvisor/internal/advisor"
	"github.com/lox/pokeradvisor/internal/render"
	"github.com/lox/pokeradvisor/internal/strategy"
)

// QueryCmd reads strategies from a solver output already on disk.
type QueryCmd struct {
	Hero  string `arg:"" help:"Hero hand, e.g. AhKd"`
	Board string `arg:"" help:"Flop the output was solved for, optionally followed by turn and river"`
	Turn  string `arg:"" optional:"" help:"Turn card"`
	River string `arg:"" optional:"" help:"River card"`

	Output string `short:"o" help:"Solver output to read (defaults to the configured output path)"`
	JSON   bool   `help:"Print the report as JSON"`
}

func (c *QueryCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	in, err := advisor.ParseInput(c.Hero, c.Board, c.Turn, c.River)
	if err != nil {
		return err
	}
	for _, w := range in.Warnings {
		logger.Warn(w)
	}

	path := c.Output
	if path == "" {
		path = cfg.Paths.Output
	}
	tree, err := strategy.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("Loaded solver output", "path", path)

	report := advisor.BuildReport(tree, in)
	if c.JSON {
		enc := json.NewEncoder(g.stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	render.New(g.stdout(), g.NoColor).Report(report)
	return nil
}
