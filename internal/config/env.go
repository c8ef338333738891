package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "ADVISOR_"

// Environ returns the process environment merged over the variables in a
// .env file. Process variables win, matching godotenv.Load. A missing file
// is not an error.
func Environ(dotenv string) (map[string]string, error) {
	env := map[string]string{}
	if dotenv != "" {
		fileEnv, err := godotenv.Read(dotenv)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", dotenv, err)
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env, nil
}

// ApplyEnv overlays ADVISOR_* variables on the configuration. DATABASE_URL
// is honoured when ADVISOR_DATABASE_URL is unset.
func (c *Config) ApplyEnv(env map[string]string) error {
	get := func(name string) (string, bool) {
		v, ok := env[EnvPrefix+name]
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	strs := map[string]*string{
		"SOLVER_BINARY":     &c.Solver.Binary,
		"SOLVER_MODE":       &c.Solver.Mode,
		"SOLVER_TIMEOUT":    &c.Solver.Timeout,
		"RESOURCES_DIR":     &c.Paths.Resources,
		"JOB_FILE":          &c.Paths.Job,
		"OUTPUT_FILE":       &c.Paths.Output,
		"SUMMARY_FILE":      &c.Paths.Summary,
		"LOG_LEVEL":         &c.Log.Level,
		"LOG_FORMAT":        &c.Log.Format,
		"DATABASE_URL":      &c.Database.URL,
		"HTTP_ADDRESS":      &c.HTTP.Address,
		"HTTP_READ_TIMEOUT": &c.HTTP.ReadTimeout,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"SOLVER_THREADS": &c.Solver.Threads,
		"HTTP_PORT":      &c.HTTP.Port,
	}
	for name, dst := range ints {
		v, ok := get(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"REUSE_OUTPUT": &c.Solver.ReuseOutput,
		"AUTO_MIGRATE": &c.Database.AutoMigrate,
	}
	for name, dst := range bools {
		v, ok := get(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
	}

	if c.Database.URL == "" {
		if v := strings.TrimSpace(env["DATABASE_URL"]); v != "" {
			c.Database.URL = v
		}
	}
	return nil
}
