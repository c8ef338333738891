// Package solver writes console-solver job scripts and runs the solver
// binary to produce a strategy document.
package solver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokeradvisor/internal/config"
	"github.com/lox/pokeradvisor/poker"
)

// JobSpec is everything rendered into one job script.
type JobSpec struct {
	Board  []string
	Hero   string
	Output string

	Pot            int
	EffectiveStack int
	FlopBet        int
	TurnBet        int
	AllinThreshold float64
	RangeIP        string
	RangeOOP       string

	Threads       int
	Accuracy      float64
	MaxIterations int
	PrintInterval int
}

// DefaultJobSpec returns the stock scenario: 50 pot, 200 behind, half-pot
// bets on flop and turn.
func DefaultJobSpec() JobSpec {
	cfg := config.Default()
	return SpecFromConfig(cfg)
}

// SpecFromConfig copies the game and solver settings into a JobSpec. Board,
// Hero and Output are left empty.
func SpecFromConfig(cfg *config.Config) JobSpec {
	return JobSpec{
		Pot:            cfg.Game.Pot,
		EffectiveStack: cfg.Game.EffectiveStack,
		FlopBet:        cfg.Game.FlopBet,
		TurnBet:        cfg.Game.TurnBet,
		AllinThreshold: cfg.Game.AllinThreshold,
		RangeIP:        cfg.Game.RangeIP,
		RangeOOP:       cfg.Game.RangeOOP,
		Threads:        cfg.Solver.Threads,
		Accuracy:       cfg.Solver.Accuracy,
		MaxIterations:  cfg.Solver.MaxIterations,
		PrintInterval:  cfg.Solver.PrintInterval,
	}
}

// DumpRounds is how many streets the solver writes out: 1 for a flop, 2 when
// the turn is known, 3 otherwise.
func DumpRounds(boardCards int) int {
	switch boardCards {
	case 3:
		return 1
	case 4:
		return 2
	default:
		return 3
	}
}

// BuildJob renders the job script. The hero's combo class is activated in
// both ranges so the solved tree always carries a strategy for it.
func BuildJob(spec JobSpec) string {
	class := poker.ComboClassOf(spec.Hero)

	rangeIP := spec.RangeIP
	if rangeIP == "" {
		rangeIP = DefaultRangeIP
	}
	rangeOOP := spec.RangeOOP
	if rangeOOP == "" {
		rangeOOP = DefaultRangeOOP
	}

	board := make([]string, 0, len(spec.Board))
	for _, c := range spec.Board {
		if c != "" {
			board = append(board, c)
		}
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("set_pot %d", spec.Pot)
	line("set_effective_stack %d", spec.EffectiveStack)
	line("set_board %s", strings.Join(board, ","))
	line("set_range_ip %s", ActivateHand(rangeIP, class))
	line("set_range_oop %s", ActivateHand(rangeOOP, class))
	line("set_bet_sizes ip,flop,bet,%d", spec.FlopBet)
	line("set_bet_sizes ip,turn,bet,%d", spec.TurnBet)
	line("set_allin_threshold %s", formatFloat(spec.AllinThreshold))
	line("set_thread_num %d", spec.Threads)
	line("set_accuracy %s", formatFloat(spec.Accuracy))
	line("set_max_iteration %d", spec.MaxIterations)
	line("set_print_interval %d", spec.PrintInterval)
	line("set_use_isomorphism 1")
	line("build_tree")
	line("start_solve")
	line("set_dump_rounds %d", DumpRounds(len(board)))
	line("dump_result %s", spec.Output)
	return b.String()
}

// formatFloat prints whole numbers with one decimal ("5.0") and everything
// else at shortest precision ("0.8").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
