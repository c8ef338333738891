package solver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokeradvisor/internal/config"
	"github.com/lox/pokeradvisor/internal/fileutil"
)

var (
	// ErrMissingOutput means the solver exited cleanly without writing its
	// output document.
	ErrMissingOutput = errors.New("solver output not found")

	// ErrTimeout means the solver was killed after running too long.
	ErrTimeout = errors.New("solver timed out")
)

// Runner invokes the console solver for one board at a time.
type Runner struct {
	Binary    string
	Mode      string
	Resources string
	JobPath   string
	Output    string
	Timeout   time.Duration
	Spec      JobSpec

	logger *log.Logger
	clock  quartz.Clock
}

// NewRunner builds a runner from resolved configuration.
func NewRunner(cfg *config.Config, logger *log.Logger, clock quartz.Clock) *Runner {
	return &Runner{
		Binary:    cfg.Solver.Binary,
		Mode:      cfg.Solver.Mode,
		Resources: cfg.Paths.Resources,
		JobPath:   cfg.Paths.Job,
		Output:    cfg.Paths.Output,
		Timeout:   cfg.Solver.TimeoutDuration(),
		Spec:      SpecFromConfig(cfg),
		logger:    logger.WithPrefix("solver"),
		clock:     clock,
	}
}

// Run solves the given board for the hero and returns the output path. Any
// previous output is removed first, so a returned path always holds a fresh
// document.
func (r *Runner) Run(ctx context.Context, board []string, hero string) (string, error) {
	if err := fileutil.RemoveIfExists(r.Output); err != nil {
		return "", fmt.Errorf("remove stale output: %w", err)
	}

	spec := r.Spec
	spec.Board = board
	spec.Hero = hero
	spec.Output = r.Output
	if err := fileutil.WriteAtomic(r.JobPath, []byte(BuildJob(spec)), 0o644); err != nil {
		return "", fmt.Errorf("write job: %w", err)
	}
	r.logger.Debug("Wrote job file", "path", r.JobPath, "board", board, "hero", hero)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var timedOut atomic.Bool
	if r.Timeout > 0 {
		timer := r.clock.AfterFunc(r.Timeout, func() {
			timedOut.Store(true)
			cancel()
		})
		defer timer.Stop()
	}

	args := []string{"--input_file", r.JobPath, "-r", r.Resources, "-m", r.Mode}
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.WaitDelay = time.Second

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	start := r.clock.Now()
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start solver: %w", err)
	}
	r.logger.Info("Solver started", "binary", r.Binary, "board", board)

	var g errgroup.Group
	g.Go(func() error { return r.pump("stdout", stdout) })
	g.Go(func() error { return r.pump("stderr", stderr) })
	pumpErr := g.Wait()
	waitErr := cmd.Wait()

	elapsed := r.clock.Since(start)
	switch {
	case timedOut.Load():
		return "", fmt.Errorf("%w after %s", ErrTimeout, r.Timeout)
	case waitErr != nil && ctx.Err() != nil:
		return "", fmt.Errorf("solver interrupted: %w", context.Cause(ctx))
	case waitErr != nil:
		return "", fmt.Errorf("solver exited with error: %w", waitErr)
	case pumpErr != nil:
		r.logger.Warn("Error reading solver output", "error", pumpErr)
	}

	if !fileutil.Exists(r.Output) {
		return "", fmt.Errorf("%w at %s", ErrMissingOutput, r.Output)
	}
	r.logger.Info("Solver finished", "duration", elapsed.Round(time.Millisecond), "output", r.Output)
	return r.Output, nil
}

// pump forwards each line of solver output to the logger. Progress on
// stdout is debug noise; stderr is surfaced at info.
func (r *Runner) pump(stream string, pipe io.Reader) error {
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if stream == "stderr" {
			r.logger.Info(line, "stream", stream)
		} else {
			r.logger.Debug(line, "stream", stream)
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("read %s: %w", stream, err)
	}
	return nil
}
