package main

import (
	"errors"

	"github.com/lox/pokeradvisor/cmd/pokeradvisor/shared"
	"github.com/lox/pokeradvisor/internal/summary"
)

// MigrateCmd applies the run history schema.
type MigrateCmd struct{}

func (c *MigrateCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errors.New("no database configured: set database.url or ADVISOR_DATABASE_URL")
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	pg, err := summary.OpenPostgres(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		return err
	}
	logger.Info("Run history schema applied")
	return nil
}
