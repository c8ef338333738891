// Package strength classifies hero hands into poker categories and assigns a
// heuristic 0-100 strength score.
//
// The score is an ordering signal only. Bands are not monotonic across
// categories and no kickers are compared beyond the single deciding rank.
package strength

import (
	"fmt"
	"slices"

	"github.com/lox/pokeradvisor/poker"
)

// Unknown is returned by Evaluate when no card can be parsed.
const Unknown = "Unknown"

// Category enumerates the hand classes in evaluation priority order.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return Unknown
	}
}

// Result is the outcome of classifying a set of cards.
type Result struct {
	Category Category
	// Deciding is the rank that places the hand inside its score band: the
	// flush suit's top rank, the straight's high card (Five for the wheel),
	// the quads/trips/top pair rank, or the highest rank present.
	Deciding poker.Rank
	// FlushSuit is only meaningful for Flush and StraightFlush.
	FlushSuit poker.Suit
	Score     int
}

// Description renders the category with its detail, e.g. "Pair of Kings".
func (r Result) Description() string {
	switch r.Category {
	case Flush:
		return fmt.Sprintf("Flush (%s)", r.FlushSuit.Name())
	case Pair:
		return fmt.Sprintf("Pair of %ss", r.Deciding.Name())
	case HighCard:
		return fmt.Sprintf("High Card (%s)", r.Deciding.Name())
	default:
		return r.Category.String()
	}
}

// String renders the display form "<Description> (Strength: N/100)".
func (r Result) String() string {
	return fmt.Sprintf("%s (Strength: %d/100)", r.Description(), r.Score)
}

// Evaluate classifies the hero hand plus whatever board cards are supplied.
// Both strings use concatenated two character tokens; commas are ignored and
// unrecognized tokens are skipped. It returns Unknown when nothing parses.
func Evaluate(hero, board string) string {
	cards := poker.ParseCards(hero + board)
	if len(cards) == 0 {
		return Unknown
	}
	return Classify(cards).String()
}

// Classify evaluates all supplied cards together, without choosing a best
// five card subset. The first matching category wins.
func Classify(cards []poker.Card) Result {
	var suitCounts [4]int
	for _, c := range cards {
		suitCounts[c.Suit]++
	}
	for suit, count := range suitCounts {
		if count < 5 {
			continue
		}
		var flushRanks []poker.Rank
		for _, c := range cards {
			if c.Suit == poker.Suit(suit) {
				flushRanks = append(flushRanks, c.Rank)
			}
		}
		slices.Sort(flushRanks)
		slices.Reverse(flushRanks)
		high := flushRanks[0]
		if _, ok := straightHigh(slices.Compact(flushRanks)); ok {
			return Result{Category: StraightFlush, Deciding: high, FlushSuit: poker.Suit(suit), Score: band(95, high, 5)}
		}
		return Result{Category: Flush, Deciding: high, FlushSuit: poker.Suit(suit), Score: band(75, high, 5)}
	}

	ranks := make([]poker.Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	slices.Sort(ranks)
	slices.Reverse(ranks)
	ranks = slices.Compact(ranks)

	if high, ok := straightHigh(ranks); ok {
		return Result{Category: Straight, Deciding: high, Score: band(70, high, 5)}
	}

	var rankCounts [13]int
	for _, c := range cards {
		rankCounts[c.Rank]++
	}
	// Collected from the top down so index 0 is always the highest rank.
	var pairs, trips, quads []poker.Rank
	for r := int(poker.Ace); r >= 0; r-- {
		switch rankCounts[r] {
		case 2:
			pairs = append(pairs, poker.Rank(r))
		case 3:
			trips = append(trips, poker.Rank(r))
		case 4:
			quads = append(quads, poker.Rank(r))
		}
	}

	switch {
	case len(quads) > 0:
		return Result{Category: FourOfAKind, Deciding: quads[0], Score: band(90, quads[0], 5)}
	case len(trips) > 0 && (len(pairs) > 0 || len(trips) > 1):
		return Result{Category: FullHouse, Deciding: trips[0], Score: band(80, trips[0], 10)}
	case len(trips) > 0:
		return Result{Category: ThreeOfAKind, Deciding: trips[0], Score: band(60, trips[0], 10)}
	case len(pairs) >= 2:
		return Result{Category: TwoPair, Deciding: pairs[0], Score: band(40, pairs[0], 20)}
	case len(pairs) == 1:
		return Result{Category: Pair, Deciding: pairs[0], Score: band(20, pairs[0], 20)}
	}

	return Result{Category: HighCard, Deciding: ranks[0], Score: band(0, ranks[0], 20)}
}

// band places a rank inside a category's score band using truncating
// integer division.
func band(base int, rank poker.Rank, width int) int {
	return base + int(rank)*width/13
}

// straightHigh looks for five consecutive ranks in a descending, duplicate
// free slice and returns the top of the highest run. The wheel (A-2-3-4-5)
// reports Five.
func straightHigh(ranks []poker.Rank) (poker.Rank, bool) {
	if len(ranks) < 5 {
		return 0, false
	}

	run := 1
	for i := 0; i+1 < len(ranks); i++ {
		if ranks[i] != ranks[i+1]+1 {
			run = 1
			continue
		}
		run++
		if run >= 5 {
			return ranks[i+1] + 4, true
		}
	}

	wheel := []poker.Rank{poker.Ace, poker.Five, poker.Four, poker.Three, poker.Two}
	for _, r := range wheel {
		if !slices.Contains(ranks, r) {
			return 0, false
		}
	}
	return poker.Five, true
}
