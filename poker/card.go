// Package poker holds the card codec shared by the evaluator, the strategy
// resolver and the solver job builder.
package poker

import "strings"

// Rank represents a card rank (0-12 for 2-A)
type Rank uint8

// Rank constants
const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit represents a card suit
type Suit uint8

// Suit constants, ordered as the solver writes them in hand keys
const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "hdcs"
)

var rankNames = [...]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

var suitNames = [...]string{"Hearts", "Diamonds", "Clubs", "Spades"}

// String returns the single character used in card tokens (e.g. "T")
func (r Rank) String() string {
	if r > Ace {
		return "?"
	}
	return string(rankChars[r])
}

// Name returns the English name of the rank (e.g. "Ten")
func (r Rank) Name() string {
	if r > Ace {
		return "?"
	}
	return rankNames[r]
}

// String returns the single lowercase character used in card tokens
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// Name returns the English name of the suit (e.g. "Hearts")
func (s Suit) Name() string {
	if s > Spades {
		return "?"
	}
	return suitNames[s]
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card is an immutable (rank, suit) pair
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two character token (e.g. "Ah")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCard parses a two character token like "As". Only uppercase ranks
// (digits, T, J, Q, K, A) and lowercase suits are recognized; callers
// normalize user input with NormalizeCard first.
func ParseCard(s string) (Card, bool) {
	if len(s) != 2 {
		return Card{}, false
	}
	r := strings.IndexByte(rankChars, s[0])
	if r < 0 {
		return Card{}, false
	}
	su := strings.IndexByte(suitChars, s[1])
	if su < 0 {
		return Card{}, false
	}
	return NewCard(Rank(r), Suit(su)), true
}

// ParseCards reads a concatenation of card tokens. Commas are ignored, the
// remaining characters are consumed two at a time and tokens that do not
// parse are skipped. A trailing odd character is dropped.
func ParseCards(s string) []Card {
	s = strings.ReplaceAll(s, ",", "")
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i+2 <= len(s); i += 2 {
		if c, ok := ParseCard(s[i : i+2]); ok {
			cards = append(cards, c)
		}
	}
	return cards
}

// FormatCards joins cards with the given separator
func FormatCards(cards []Card, sep string) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}
