package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokeradvisor/internal/render"
	"github.com/lox/pokeradvisor/internal/strength"
	"github.com/lox/pokeradvisor/poker"
)

// EvaluateCmd prints hand strength without running the solver.
type EvaluateCmd struct {
	Hero  string `arg:"" help:"Hero hand, e.g. AhKd"`
	Board string `arg:"" optional:"" help:"Board cards, e.g. QsJh2h"`
}

func (c *EvaluateCmd) Run(g *Globals) error {
	out := render.New(g.stdout(), g.NoColor)

	hero := poker.NormalizeHand(c.Hero)
	board := poker.NormalizeBoard(c.Board)
	joined := strings.Join(board, ",")

	w := g.stdout()
	fmt.Fprintf(w, "Hand:      %s\n", out.Hand(hero))
	if len(board) > 0 {
		fmt.Fprintf(w, "Board:     %s\n", out.Board(board))
	}
	fmt.Fprintf(w, "Strength:  %s\n", strength.Evaluate(hero, joined))
	if exact, ok := strength.ExactFromStrings(hero, joined); ok {
		fmt.Fprintf(w, "Best five: %s\n", exact)
	}
	fmt.Fprintf(w, "Preflop:   %s (%s)\n", poker.ComboClassOf(hero), poker.CategorizeHand(hero))
	return nil
}
