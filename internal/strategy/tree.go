// Package strategy walks a solved game-tree document to find the hero's
// strategy on each street.
//
// The walk assumes one fixed tree shape: every street starts with an
// out-of-position decision, and the next street is only reachable through a
// CHECK, CHECK prelude followed by the dealt card. Lines where a bet is
// called are not modeled, so turn and river queries on such trees report
// not found.
package strategy

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	actionCheck = "CHECK"
	actionBet   = "BET"
)

// Tree is a loaded solver output document. It is never mutated after load,
// so concurrent queries are safe.
type Tree struct {
	root Node
}

// Load reads and decodes a solver output file.
func Load(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tree: %w", err)
	}
	defer f.Close()

	tree, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return tree, nil
}

// Decode parses a tree document. Documents whose root is not an object load
// successfully but answer every query with not found.
func Decode(r io.Reader) (*Tree, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return NewTree(doc), nil
}

// NewTree wraps an already decoded document.
func NewTree(doc any) *Tree {
	root, _ := NodeOf(doc)
	return &Tree{root: root}
}

// Root returns the flop's first decision node.
func (t *Tree) Root() Node {
	if t == nil {
		return Node{}
	}
	return t.root
}

// StreetStrategies holds the three decision points extracted per street.
// Any of them may be nil.
type StreetStrategies struct {
	// OOP is the out-of-position player's opening strategy.
	OOP *HeroStrategy `json:"oop,omitempty"`
	// IP is the in-position response after OOP checks.
	IP *HeroStrategy `json:"ip,omitempty"`
	// OOPVsBet is the out-of-position response after checking into a bet.
	OOPVsBet *HeroStrategy `json:"oop_vs_bet,omitempty"`
}

// Representative returns the in-position strategy, falling back to the
// out-of-position one.
func (s StreetStrategies) Representative() *HeroStrategy {
	if s.IP != nil {
		return s.IP
	}
	return s.OOP
}

// Empty reports whether no decision point produced a strategy.
func (s StreetStrategies) Empty() bool {
	return s.OOP == nil && s.IP == nil && s.OOPVsBet == nil
}

// StreetAt extracts the three decision points starting at a street's first
// decision node.
func StreetAt(node Node, hand string) StreetStrategies {
	out := StreetStrategies{OOP: HeroStrategyAt(node, hand)}

	check, ok := node.Child(actionCheck)
	if !ok {
		return out
	}
	out.IP = HeroStrategyAt(check, hand)

	for _, name := range check.ChildNames() {
		if !strings.Contains(name, actionBet) {
			continue
		}
		if bet, ok := check.Child(name); ok {
			out.OOPVsBet = HeroStrategyAt(bet, hand)
		}
		break
	}
	return out
}

// Flop extracts the flop decision points at the document root.
func (t *Tree) Flop(hand string) StreetStrategies {
	return StreetAt(t.Root(), hand)
}

// Turn follows CHECK, CHECK and the turn card from the root. It reports
// false when any hop is missing.
func (t *Tree) Turn(hand, turn string) (StreetStrategies, bool) {
	node, ok := nextStreet(t.Root(), turn)
	if !ok {
		return StreetStrategies{}, false
	}
	return StreetAt(node, hand), true
}

// River follows the turn path and then one more CHECK, CHECK, deal hop.
func (t *Tree) River(hand, turn, river string) (StreetStrategies, bool) {
	node, ok := nextStreet(t.Root(), turn)
	if !ok {
		return StreetStrategies{}, false
	}
	node, ok = nextStreet(node, river)
	if !ok {
		return StreetStrategies{}, false
	}
	return StreetAt(node, hand), true
}

// FlopStrategy is the representative flop strategy.
func (t *Tree) FlopStrategy(hand string) *HeroStrategy {
	return t.Flop(hand).Representative()
}

// TurnStrategy is the representative turn strategy.
func (t *Tree) TurnStrategy(hand, turn string) *HeroStrategy {
	s, ok := t.Turn(hand, turn)
	if !ok {
		return nil
	}
	return s.Representative()
}

// RiverStrategy is the representative river strategy.
func (t *Tree) RiverStrategy(hand, turn, river string) *HeroStrategy {
	s, ok := t.River(hand, turn, river)
	if !ok {
		return nil
	}
	return s.Representative()
}

// Find returns the strategy at the first node anywhere in the tree whose
// table holds the hand.
func (t *Tree) Find(hand string) *HeroStrategy {
	node, ok := FindNodeWithHand(t.Root(), hand)
	if !ok {
		return nil
	}
	return HeroStrategyAt(node, hand)
}

// Vector returns only the probabilities of Find.
func (t *Tree) Vector(hand string) []float64 {
	if h := t.Find(hand); h != nil {
		return h.Probs
	}
	return nil
}

// nextStreet walks both players checking and then the dealt card.
func nextStreet(node Node, card string) (Node, bool) {
	oopChecked, ok := node.Child(actionCheck)
	if !ok {
		return Node{}, false
	}
	ipChecked, ok := oopChecked.Child(actionCheck)
	if !ok {
		return Node{}, false
	}
	return ipChecked.Dealt(card)
}
