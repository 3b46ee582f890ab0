package kernel

import (
	"fmt"

	"ostrov/internal/pkg/errs"
)

// State is the constraint for status enums validated by a TransitionTable.
type State interface {
	comparable
	fmt.Stringer
}

// TransitionTable is a status registry: the exhaustive set of legal
// transitions for one entity kind. Any (from, to) pair not present in the
// edge set is illegal, and states without outgoing edges are terminal.
//
// The table is pure validation with no state of its own. It is instantiated
// once per entity kind (orders, shipment groups) from a literal edge map, so
// both lifecycles share a single registry implementation.
type TransitionTable[S State] struct {
	entityKind string
	edges      map[S]map[S]struct{}
}

// NewTransitionTable builds a registry for the given entity kind from an
// adjacency map of legal transitions.
func NewTransitionTable[S State](entityKind string, edges map[S][]S) TransitionTable[S] {
	indexed := make(map[S]map[S]struct{}, len(edges))
	for from, targets := range edges {
		set := make(map[S]struct{}, len(targets))
		for _, to := range targets {
			set[to] = struct{}{}
		}
		indexed[from] = set
	}
	return TransitionTable[S]{entityKind: entityKind, edges: indexed}
}

// Can reports whether the transition from one status to another is legal.
func (t TransitionTable[S]) Can(from, to S) bool {
	targets, ok := t.edges[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Validate returns an IllegalTransitionError naming the entity kind and the
// offending pair when the transition is not in the table, nil otherwise.
func (t TransitionTable[S]) Validate(from, to S) error {
	if !t.Can(from, to) {
		return errs.NewIllegalTransitionError(t.entityKind, from.String(), to.String())
	}
	return nil
}

// IsTerminal reports whether a status has no outgoing transitions.
func (t TransitionTable[S]) IsTerminal(s S) bool {
	return len(t.edges[s]) == 0
}

// TargetsOf returns the set of statuses reachable from the given status.
// Exposed for read surfaces that show operators the legal next steps.
func (t TransitionTable[S]) TargetsOf(from S) []S {
	targets := make([]S, 0, len(t.edges[from]))
	for to := range t.edges[from] {
		targets = append(targets, to)
	}
	return targets
}
