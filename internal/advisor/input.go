package advisor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/pokeradvisor/poker"
)

// ErrInvalidBoard is returned when the board does not hold 3, 4 or 5 cards.
var ErrInvalidBoard = errors.New("board needs 3, 4 or 5 cards")

// Input is one normalized advice request.
type Input struct {
	Hero  string   `json:"hero"`
	Flop  []string `json:"flop"`
	Turn  string   `json:"turn,omitempty"`
	River string   `json:"river,omitempty"`

	// Warnings are non-fatal problems found while normalizing.
	Warnings []string `json:"warnings,omitempty"`
}

// ParseInput normalizes raw user input. A board of four or five cards also
// supplies the turn and river; explicit turn and river values override them.
// Only the first card of an explicit turn or river is used.
func ParseInput(hero, board, turn, river string) (Input, error) {
	in := Input{Hero: poker.NormalizeHand(hero)}
	if len(in.Hero) != 4 {
		in.Warnings = append(in.Warnings,
			fmt.Sprintf("hero hand %q does not look like a 4-char hand string (e.g. AhKd)", strings.TrimSpace(hero)))
	}

	cards := poker.NormalizeBoard(board)
	switch len(cards) {
	case 3:
		in.Flop = cards
	case 4:
		in.Flop = cards[:3]
		in.Turn = cards[3]
	case 5:
		in.Flop = cards[:3]
		in.Turn = cards[3]
		in.River = cards[4]
	default:
		return Input{}, fmt.Errorf("%w: got %q", ErrInvalidBoard, strings.Join(cards, ","))
	}

	if t := poker.FirstCard(turn); t != "" {
		in.Turn = t
	}
	if r := poker.FirstCard(river); r != "" {
		in.River = r
	}
	return in, nil
}

// Board returns every known community card in deal order.
func (in Input) Board() []string {
	board := append([]string(nil), in.Flop...)
	if in.Turn != "" {
		board = append(board, in.Turn)
	}
	if in.River != "" {
		board = append(board, in.River)
	}
	return board
}
