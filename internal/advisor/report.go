package advisor

import (
	"fmt"
	"strings"

	"github.com/coder/quartz"

	"github.com/lox/pokeradvisor/internal/strategy"
	"github.com/lox/pokeradvisor/internal/strength"
	"github.com/lox/pokeradvisor/internal/summary"
	"github.com/lox/pokeradvisor/poker"
)

// Street names a betting round.
type Street string

const (
	Flop  Street = "FLOP"
	Turn  Street = "TURN"
	River Street = "RIVER"
)

// StreetReport is everything shown for one street.
type StreetReport struct {
	Street Street   `json:"street"`
	Board  []string `json:"board"`

	// Found is false when the tree has no path to this street.
	Found      bool                      `json:"found"`
	Strategies strategy.StreetStrategies `json:"strategies"`

	Strength string `json:"strength"`
	Exact    string `json:"exact,omitempty"`

	// Skipped explains why the street was not evaluated.
	Skipped string `json:"skipped,omitempty"`
}

// Title is the section heading, e.g. "TURN (Qs,Jh,2h, 9c)".
func (s StreetReport) Title() string {
	if len(s.Board) <= 3 {
		return fmt.Sprintf("%s (%s)", s.Street, strings.Join(s.Board, ","))
	}
	parts := []string{strings.Join(s.Board[:3], ",")}
	parts = append(parts, s.Board[3:]...)
	return fmt.Sprintf("%s (%s)", s.Street, strings.Join(parts, ", "))
}

// Report is the advice for one input across all requested streets.
type Report struct {
	Input    Input                  `json:"input"`
	Class    string                 `json:"class"`
	Category poker.HoleCardCategory `json:"category"`
	Streets  []StreetReport         `json:"streets"`
}

// BuildReport walks the tree for the flop and for any turn and river in the
// input. A river without a turn is reported as skipped.
func BuildReport(tree *strategy.Tree, in Input) *Report {
	r := &Report{
		Input:    in,
		Class:    poker.ComboClassOf(in.Hero),
		Category: poker.CategorizeHand(in.Hero),
	}

	flop := newStreet(Flop, in.Hero, in.Flop)
	flop.Found = true
	flop.Strategies = tree.Flop(in.Hero)
	r.Streets = append(r.Streets, flop)

	if in.Turn != "" {
		turn := newStreet(Turn, in.Hero, append(clone(in.Flop), in.Turn))
		turn.Strategies, turn.Found = tree.Turn(in.Hero, in.Turn)
		r.Streets = append(r.Streets, turn)
	}

	if in.River != "" {
		if in.Turn == "" {
			r.Streets = append(r.Streets, StreetReport{
				Street:  River,
				Board:   append(clone(in.Flop), in.River),
				Skipped: fmt.Sprintf("river %q given without a turn card; provide a turn to see river strategy", in.River),
			})
		} else {
			river := newStreet(River, in.Hero, append(clone(in.Flop), in.Turn, in.River))
			river.Strategies, river.Found = tree.River(in.Hero, in.Turn, in.River)
			r.Streets = append(r.Streets, river)
		}
	}
	return r
}

func newStreet(street Street, hero string, board []string) StreetReport {
	joined := strings.Join(board, ",")
	exact, _ := strength.ExactFromStrings(hero, joined)
	return StreetReport{
		Street:   street,
		Board:    board,
		Strength: strength.Evaluate(hero, joined),
		Exact:    exact,
	}
}

// Find returns the report for a street, if present.
func (r *Report) Find(s Street) (StreetReport, bool) {
	for _, sr := range r.Streets {
		if sr.Street == s {
			return sr, true
		}
	}
	return StreetReport{}, false
}

// Entry converts the report into a summary entry carrying each street's
// representative strategy.
func (r *Report) Entry(clock quartz.Clock) summary.Entry {
	e := summary.NewEntry(clock, r.Input.Hero, r.Input.Flop, r.Input.Turn, r.Input.River)
	for _, sr := range r.Streets {
		if sr.Skipped != "" {
			continue
		}
		rep := sr.Strategies.Representative()
		switch sr.Street {
		case Flop:
			e.FlopStrategy = rep
		case Turn:
			e.TurnStrategy = rep
		case River:
			e.RiverStrategy = rep
		}
	}
	return e
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
