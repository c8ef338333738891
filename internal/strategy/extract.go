package strategy

import (
	"fmt"
	"slices"
)

// HeroStrategy pairs action labels with the hero's probability of taking
// each one. Both slices have the same length.
type HeroStrategy struct {
	Actions []string  `json:"actions"`
	Probs   []float64 `json:"probs"`
}

// Len returns the number of (action, probability) pairs.
func (h *HeroStrategy) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Actions)
}

// HeroStrategyAt extracts the hero's strategy at a single node. When the
// node carries no strategy table, the first descendant (depth first,
// children in sorted order) whose table holds the hand is used instead.
// It returns nil when nothing is found.
func HeroStrategyAt(node Node, hand string) *HeroStrategy {
	target := node
	if _, ok := node.StrategyTable(); !ok {
		found, ok := FindNodeWithHand(node, hand)
		if !ok {
			return nil
		}
		target = found
	}

	probs, ok := strategyVector(target, hand)
	if !ok {
		return nil
	}
	return pairActions(target.Actions(), probs)
}

// FindNodeWithHand searches start and its descendants for the first node
// whose strategy table resolves the hand.
func FindNodeWithHand(start Node, hand string) (Node, bool) {
	if !start.Valid() {
		return Node{}, false
	}

	stack := []Node{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if table, ok := n.StrategyTable(); ok {
			if _, ok := resolveHand(table, hand); ok {
				return n, true
			}
		}

		// Pushed in reverse so the lowest sorted name is visited first.
		names := n.ChildNames()
		for i := len(names) - 1; i >= 0; i-- {
			if child, ok := n.Child(names[i]); ok {
				stack = append(stack, child)
			}
		}
	}
	return Node{}, false
}

// resolveHand looks the hand up by exact key, then with its two cards
// swapped for four character keys.
func resolveHand(table map[string]any, hand string) (any, bool) {
	if v, ok := table[hand]; ok {
		return v, true
	}
	if len(hand) == 4 {
		if v, ok := table[hand[2:]+hand[:2]]; ok {
			return v, true
		}
	}
	return nil, false
}

// strategyVector reads the hand's probability vector, dropping entries that
// are not numeric.
func strategyVector(node Node, hand string) ([]float64, bool) {
	table, ok := node.StrategyTable()
	if !ok {
		return nil, false
	}
	entry, ok := resolveHand(table, hand)
	if !ok {
		return nil, false
	}
	raw, ok := entry.([]any)
	if !ok {
		return nil, false
	}

	probs := make([]float64, 0, len(raw))
	for _, v := range raw {
		if f, ok := toFloat(v); ok {
			probs = append(probs, f)
		}
	}
	return probs, true
}

// pairActions aligns labels with probabilities, truncating to the shorter of
// the two. Without labels, positional ones are synthesized.
func pairActions(labels []string, probs []float64) *HeroStrategy {
	if len(labels) == 0 {
		labels = make([]string, len(probs))
		for i := range probs {
			labels[i] = fmt.Sprintf("action #%d", i)
		}
		return &HeroStrategy{Actions: labels, Probs: probs}
	}

	n := min(len(labels), len(probs))
	return &HeroStrategy{
		Actions: slices.Clone(labels[:n]),
		Probs:   probs[:n],
	}
}
