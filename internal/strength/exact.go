package strength

import (
	ph "github.com/paulhankin/poker"

	"github.com/lox/pokeradvisor/poker"
)

// Exact describes the best five card hand using a full evaluator. It only
// answers for exactly five (flop) or seven (river) distinct cards; other
// counts, and duplicated cards, report false. The heuristic score is never
// derived from this description.
func Exact(cards []poker.Card) (string, bool) {
	if len(cards) != 5 && len(cards) != 7 {
		return "", false
	}

	seen := make(map[poker.Card]bool, len(cards))
	converted := make([]ph.Card, 0, len(cards))
	for _, c := range cards {
		if seen[c] {
			return "", false
		}
		seen[c] = true

		pc, err := toPH(c)
		if err != nil {
			return "", false
		}
		converted = append(converted, pc)
	}

	desc, err := ph.Describe(converted)
	if err != nil {
		return "", false
	}
	return desc, true
}

// ExactFromStrings is Exact over hero and board token strings.
func ExactFromStrings(hero, board string) (string, bool) {
	return Exact(poker.ParseCards(hero + board))
}

// toPH converts to the library's card. Its ranks run 1..13 with Ace=1.
func toPH(c poker.Card) (ph.Card, error) {
	var s ph.Suit
	switch c.Suit {
	case poker.Hearts:
		s = ph.Heart
	case poker.Diamonds:
		s = ph.Diamond
	case poker.Clubs:
		s = ph.Club
	default:
		s = ph.Spade
	}

	r := ph.Rank(int(c.Rank) + 2)
	if c.Rank == poker.Ace {
		r = ph.Rank(1)
	}
	return ph.MakeCard(s, r)
}
