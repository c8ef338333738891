package strategy

import (
	"encoding/json"
	"slices"
)

// Field names used by the solver's dump format.
const (
	fieldStrategy  = "strategy"
	fieldActions   = "actions"
	fieldChildren  = "childrens"
	fieldDealCards = "dealcards"
)

// Node is a read-only view over one object of a solved tree document. The
// zero value is an absent node: every accessor reports not found.
type Node struct {
	obj map[string]any
}

// NodeOf wraps a decoded JSON value. Values that are not objects yield an
// absent node.
func NodeOf(v any) (Node, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return Node{}, false
	}
	return Node{obj: obj}, true
}

// Valid reports whether the node wraps an object.
func (n Node) Valid() bool {
	return n.obj != nil
}

// Child returns the node reached by taking the named action.
func (n Node) Child(action string) (Node, bool) {
	children, ok := n.obj[fieldChildren].(map[string]any)
	if !ok {
		return Node{}, false
	}
	return NodeOf(children[action])
}

// ChildNames returns the action names of all children in sorted order.
func (n Node) ChildNames() []string {
	children, ok := n.obj[fieldChildren].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dealt returns the node reached after the given card is dealt.
func (n Node) Dealt(card string) (Node, bool) {
	deal, ok := n.obj[fieldDealCards].(map[string]any)
	if !ok {
		return Node{}, false
	}
	return NodeOf(deal[card])
}

// StrategyTable returns the nested strategy.strategy mapping from hand key to
// probability vector.
func (n Node) StrategyTable() (map[string]any, bool) {
	outer, ok := n.obj[fieldStrategy].(map[string]any)
	if !ok {
		return nil, false
	}
	table, ok := outer[fieldStrategy].(map[string]any)
	return table, ok
}

// Actions returns the node's action labels. Non-string entries are dropped.
func (n Node) Actions() []string {
	raw, ok := n.obj[fieldActions].([]any)
	if !ok {
		return nil
	}
	labels := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			labels = append(labels, s)
		}
	}
	return labels
}

// toFloat coerces numeric scalars to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
