package main

import (
	"fmt"

	"github.com/lox/pokeradvisor/internal/advisor"
	"github.com/lox/pokeradvisor/internal/fileutil"
	"github.com/lox/pokeradvisor/internal/solver"
)

// JobCmd renders the solver job script without running the solver.
type JobCmd struct {
	Hero  string `arg:"" help:"Hero hand, e.g. AhKd"`
	Board string `arg:"" help:"Flop, e.g. QsJh2h"`

	Write bool `short:"w" help:"Write the job to the configured job path instead of stdout"`
}

func (c *JobCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	in, err := advisor.ParseInput(c.Hero, c.Board, "", "")
	if err != nil {
		return err
	}

	spec := solver.SpecFromConfig(cfg)
	spec.Board = in.Flop
	spec.Hero = in.Hero
	spec.Output = cfg.Paths.Output
	job := solver.BuildJob(spec)

	if !c.Write {
		_, err := fmt.Fprint(g.stdout(), job)
		return err
	}
	if err := fileutil.WriteAtomic(cfg.Paths.Job, []byte(job), 0o644); err != nil {
		return fmt.Errorf("write job: %w", err)
	}
	logger.Info("Wrote job file", "path", cfg.Paths.Job)
	return nil
}
