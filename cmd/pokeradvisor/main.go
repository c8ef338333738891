package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/pokeradvisor/cmd/pokeradvisor/shared"
	"github.com/lox/pokeradvisor/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config  string `short:"c" default:"advisor.hcl" help:"HCL configuration file"`
	EnvFile string `name:"env-file" default:".env" help:"Dotenv file with ADVISOR_* overrides"`
	NoColor bool   `name:"no-color" help:"Disable colored output"`
	Debug   bool   `help:"Enable debug logging"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Run      RunCmd           `cmd:"" default:"withargs" help:"Solve a flop and show the strategy (prompts when no hand is given)"`
	Evaluate EvaluateCmd      `cmd:"" help:"Describe the strength of a hand on a board"`
	Query    QueryCmd         `cmd:"" help:"Show strategies from an existing solver output"`
	Job      JobCmd           `cmd:"" help:"Print the solver job script for a hand and board"`
	Serve    ServeCmd         `cmd:"" help:"Serve strategy queries over HTTP"`
	Migrate  MigrateCmd       `cmd:"" help:"Create the run history table in Postgres"`
}

func main() {
	var cli CLI
	cli.Stdout = os.Stdout
	cli.Stderr = os.Stderr

	ctx := kong.Parse(&cli,
		kong.Name("pokeradvisor"),
		kong.Description("Solver-backed postflop strategy advisor"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads the config file, applies the environment overlay and builds the
// logger.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	env, err := config.Environ(g.EnvFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, nil, err
	}
	if err := cfg.Resolve(); err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := shared.SetupLogger(g.stderr(), cfg.Log.Level, cfg.Log.Format, g.Debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func (g *Globals) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Globals) stderr() io.Writer {
	if g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}
