package astgen

import "github.com/teranos/astgen/schema"

// DispatchStrategy selects how a family's accept methods and visitor
// surface are emitted. It is keyed on two inputs only: how many result
// kinds the family declares, and whether the target language supports
// generic methods on concrete receiver types.
type DispatchStrategy int

const (
	// SingleGeneric: one result kind, generic methods available. One
	// visitor interface; each node carries a single accept method
	// parameterized by that visitor.
	SingleGeneric DispatchStrategy = iota

	// SingleFixed: one result kind, no generic methods. Same visitor
	// interface; accept's result type is fixed to the one declared kind.
	SingleFixed

	// PerResultGeneric: multiple result kinds, generic methods available.
	// The visitor interface is generic over the result type and nodes
	// dispatch through one generic accept.
	PerResultGeneric

	// PerResultFacilitated: multiple result kinds, no generic methods.
	// One non-generic accept per result kind on each node, plus a generic
	// acceptor wrapper type per node hosting the uniform dispatch method
	// the node type itself cannot carry. The wrapper's instantiations are
	// the per (node, result kind) dispatchers.
	PerResultFacilitated
)

// StrategyFor applies the dispatch decision table.
func StrategyFor(fam *schema.Family, genericMethods bool) DispatchStrategy {
	multi := len(fam.Results) > 1
	switch {
	case !multi && genericMethods:
		return SingleGeneric
	case !multi:
		return SingleFixed
	case genericMethods:
		return PerResultGeneric
	default:
		return PerResultFacilitated
	}
}
