// Package config loads the advisor's HCL configuration and the ADVISOR_*
// environment overlay.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete advisor configuration.
type Config struct {
	Solver   SolverConfig
	Game     GameConfig
	Paths    PathsConfig
	Log      LogConfig
	Database DatabaseConfig
	HTTP     HTTPConfig

	// BaseDir is the directory relative paths are resolved against: the
	// directory holding the config file.
	BaseDir string
}

// SolverConfig controls how the external solver is invoked.
type SolverConfig struct {
	Binary        string  `hcl:"binary,optional"`
	Mode          string  `hcl:"mode,optional"`
	Timeout       string  `hcl:"timeout,optional"`
	Threads       int     `hcl:"threads,optional"`
	Accuracy      float64 `hcl:"accuracy,optional"`
	MaxIterations int     `hcl:"max_iterations,optional"`
	PrintInterval int     `hcl:"print_interval,optional"`
	// ReuseOutput skips the solve when an output document already exists.
	ReuseOutput bool `hcl:"reuse_output,optional"`
}

// TimeoutDuration parses Timeout. Validate guarantees it parses.
func (s SolverConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.Timeout)
	return d
}

// GameConfig describes the single-raised-pot scenario handed to the solver.
type GameConfig struct {
	Pot            int     `hcl:"pot,optional"`
	EffectiveStack int     `hcl:"effective_stack,optional"`
	FlopBet        int     `hcl:"flop_bet,optional"`
	TurnBet        int     `hcl:"turn_bet,optional"`
	AllinThreshold float64 `hcl:"allin_threshold,optional"`
	// Empty ranges fall back to the built-in BTN open / BB call presets.
	RangeIP  string `hcl:"range_ip,optional"`
	RangeOOP string `hcl:"range_oop,optional"`
}

// PathsConfig names the files the advisor reads and writes.
type PathsConfig struct {
	Resources string `hcl:"resources,optional"`
	Job       string `hcl:"job,optional"`
	Output    string `hcl:"output,optional"`
	Summary   string `hcl:"summary,optional"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// DatabaseConfig enables the Postgres summary sink when URL is set.
type DatabaseConfig struct {
	URL         string `hcl:"url,optional"`
	AutoMigrate bool   `hcl:"auto_migrate,optional"`
}

// HTTPConfig configures the query API.
type HTTPConfig struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	ReadTimeout string `hcl:"read_timeout,optional"`
}

// Addr returns host:port for net/http.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Address, h.Port)
}

// ReadTimeoutDuration parses ReadTimeout. Validate guarantees it parses.
func (h HTTPConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(h.ReadTimeout)
	return d
}

// fileConfig mirrors Config with optional blocks for decoding.
type fileConfig struct {
	Solver   *SolverConfig   `hcl:"solver,block"`
	Game     *GameConfig     `hcl:"game,block"`
	Paths    *PathsConfig    `hcl:"paths,block"`
	Log      *LogConfig      `hcl:"log,block"`
	Database *DatabaseConfig `hcl:"database,block"`
	HTTP     *HTTPConfig     `hcl:"http,block"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Binary:        "TexasSolver-v0.2.0-MacOs/console_solver",
			Mode:          "holdem",
			Timeout:       "10m",
			Threads:       8,
			Accuracy:      5.0,
			MaxIterations: 10,
			PrintInterval: 10,
		},
		Game: GameConfig{
			Pot:            50,
			EffectiveStack: 200,
			FlopBet:        50,
			TurnBet:        50,
			AllinThreshold: 0.8,
		},
		Paths: PathsConfig{
			Resources: "resources",
			Job:       "resources/text/job_config_debug.txt",
			Output:    "strategy_debug.json",
			Summary:   "resources/outputs/tui_summary.txt",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		HTTP: HTTPConfig{
			Address:     "localhost",
			Port:        8088,
			ReadTimeout: "15s",
		},
		BaseDir: ".",
	}
}

// Load reads an HCL config file. A missing file yields the defaults; values
// left out of the file are filled from the defaults. Relative paths are not
// resolved until Resolve is called.
func Load(filename string) (*Config, error) {
	cfg := Default()
	cfg.BaseDir = filepath.Dir(filename)

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.merge(&fc)
	return cfg, nil
}

// merge copies every non-zero decoded value over the defaults.
func (c *Config) merge(fc *fileConfig) {
	if s := fc.Solver; s != nil {
		setString(&c.Solver.Binary, s.Binary)
		setString(&c.Solver.Mode, s.Mode)
		setString(&c.Solver.Timeout, s.Timeout)
		setInt(&c.Solver.Threads, s.Threads)
		setFloat(&c.Solver.Accuracy, s.Accuracy)
		setInt(&c.Solver.MaxIterations, s.MaxIterations)
		setInt(&c.Solver.PrintInterval, s.PrintInterval)
		c.Solver.ReuseOutput = s.ReuseOutput
	}
	if g := fc.Game; g != nil {
		setInt(&c.Game.Pot, g.Pot)
		setInt(&c.Game.EffectiveStack, g.EffectiveStack)
		setInt(&c.Game.FlopBet, g.FlopBet)
		setInt(&c.Game.TurnBet, g.TurnBet)
		setFloat(&c.Game.AllinThreshold, g.AllinThreshold)
		setString(&c.Game.RangeIP, g.RangeIP)
		setString(&c.Game.RangeOOP, g.RangeOOP)
	}
	if p := fc.Paths; p != nil {
		setString(&c.Paths.Resources, p.Resources)
		setString(&c.Paths.Job, p.Job)
		setString(&c.Paths.Output, p.Output)
		setString(&c.Paths.Summary, p.Summary)
	}
	if l := fc.Log; l != nil {
		setString(&c.Log.Level, l.Level)
		setString(&c.Log.Format, l.Format)
	}
	if d := fc.Database; d != nil {
		setString(&c.Database.URL, d.URL)
		c.Database.AutoMigrate = d.AutoMigrate
	}
	if h := fc.HTTP; h != nil {
		setString(&c.HTTP.Address, h.Address)
		setInt(&c.HTTP.Port, h.Port)
		setString(&c.HTTP.ReadTimeout, h.ReadTimeout)
	}
}

// Resolve makes every relative path absolute against BaseDir. Solver
// binaries given as a bare name are left for PATH lookup.
func (c *Config) Resolve() error {
	base, err := filepath.Abs(c.BaseDir)
	if err != nil {
		return fmt.Errorf("resolve base dir: %w", err)
	}
	c.BaseDir = base

	join := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	join(&c.Paths.Resources)
	join(&c.Paths.Job)
	join(&c.Paths.Output)
	join(&c.Paths.Summary)
	if strings.ContainsAny(c.Solver.Binary, `/\`) {
		join(&c.Solver.Binary)
	}
	return nil
}

// Validate checks the configuration for values the solver or server would
// reject.
func (c *Config) Validate() error {
	if c.Solver.Binary == "" {
		return fmt.Errorf("solver binary must be set")
	}
	if c.Solver.Mode == "" {
		return fmt.Errorf("solver mode must be set")
	}
	if d, err := time.ParseDuration(c.Solver.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid solver timeout: %q", c.Solver.Timeout)
	}
	if c.Solver.Threads < 1 {
		return fmt.Errorf("solver threads must be positive: %d", c.Solver.Threads)
	}
	if c.Solver.Accuracy <= 0 {
		return fmt.Errorf("solver accuracy must be positive: %g", c.Solver.Accuracy)
	}
	if c.Solver.MaxIterations < 1 {
		return fmt.Errorf("solver max iterations must be positive: %d", c.Solver.MaxIterations)
	}
	if c.Solver.PrintInterval < 1 {
		return fmt.Errorf("solver print interval must be positive: %d", c.Solver.PrintInterval)
	}

	if c.Game.Pot <= 0 {
		return fmt.Errorf("pot must be positive: %d", c.Game.Pot)
	}
	if c.Game.EffectiveStack <= 0 {
		return fmt.Errorf("effective stack must be positive: %d", c.Game.EffectiveStack)
	}
	if c.Game.FlopBet < 0 || c.Game.TurnBet < 0 {
		return fmt.Errorf("bet sizes must not be negative")
	}
	if c.Game.AllinThreshold <= 0 || c.Game.AllinThreshold > 1 {
		return fmt.Errorf("allin threshold must be in (0, 1]: %g", c.Game.AllinThreshold)
	}

	if c.Paths.Job == "" || c.Paths.Output == "" || c.Paths.Resources == "" {
		return fmt.Errorf("resources, job and output paths must be set")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.HTTP.Port)
	}
	if d, err := time.ParseDuration(c.HTTP.ReadTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid http read timeout: %q", c.HTTP.ReadTimeout)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
