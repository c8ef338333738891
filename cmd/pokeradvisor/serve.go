package main

import (
	"github.com/lox/pokeradvisor/cmd/pokeradvisor/shared"
	"github.com/lox/pokeradvisor/internal/server"
	"github.com/lox/pokeradvisor/internal/strategy"
	"github.com/lox/pokeradvisor/internal/summary"
)

// ServeCmd answers strategy queries over HTTP from one solver output.
type ServeCmd struct {
	Addr   string `help:"Listen address (defaults to the configured http address and port)"`
	Output string `short:"o" help:"Solver output to serve (defaults to the configured output path)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	path := c.Output
	if path == "" {
		path = cfg.Paths.Output
	}
	tree, err := strategy.Load(path)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.HTTP.Addr()
	}

	opts := []server.Option{server.WithReadTimeout(cfg.HTTP.ReadTimeoutDuration())}
	if cfg.Database.URL != "" {
		pg, err := summary.OpenPostgres(ctx, cfg.Database.URL)
		if err != nil {
			logger.Warn("Run history database unavailable, /v1/runs disabled", "error", err)
		} else {
			defer pg.Close()
			opts = append(opts, server.WithHistory(pg))
		}
	}

	logger.Info("Serving solver output", "path", path, "addr", addr)
	return server.NewServer(addr, tree, logger, opts...).Start(ctx)
}
