// Package statemachine holds the fixed transition graphs for transactions.
// A Machine never consults storage: it is a pure function over its graph.
package statemachine

import (
	"fmt"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
)

// Machine is a small directed graph over states of type S.
type Machine[S ~string] struct {
	name     string
	initial  S
	edges    map[S][]S
	terminal map[S]struct{}
}

// NewMachine builds a machine from an adjacency list. States with no outgoing edges are terminal.
func NewMachine[S ~string](name string, initial S, edges map[S][]S) *Machine[S] {
	m := &Machine[S]{
		name:     name,
		initial:  initial,
		edges:    make(map[S][]S, len(edges)),
		terminal: make(map[S]struct{}),
	}
	for from, targets := range edges {
		m.edges[from] = append([]S(nil), targets...)
		for _, to := range targets {
			if _, ok := edges[to]; !ok {
				m.terminal[to] = struct{}{}
			}
		}
	}
	for from, targets := range m.edges {
		if len(targets) == 0 {
			m.terminal[from] = struct{}{}
		}
	}
	return m
}

// Name returns the graph name used in error messages.
func (m *Machine[S]) Name() string { return m.name }

// Initial returns the state every new transaction starts in.
func (m *Machine[S]) Initial() S { return m.initial }

// CanTransition reports whether current -> requested is an edge of the graph.
func (m *Machine[S]) CanTransition(current, requested S) bool {
	for _, to := range m.edges[current] {
		if to == requested {
			return true
		}
	}
	return false
}

// Validate returns a wrapped apperrors.ErrInvalidTransition when the edge does not exist.
func (m *Machine[S]) Validate(current, requested S) error {
	if m.CanTransition(current, requested) {
		return nil
	}
	if m.IsTerminal(current) {
		return fmt.Errorf("%w: %s is terminal in %s graph, cannot move to %s", apperrors.ErrInvalidTransition, current, m.name, requested)
	}
	return fmt.Errorf("%w: %s -> %s is not allowed in %s graph", apperrors.ErrInvalidTransition, current, requested, m.name)
}

// IsTerminal reports whether no transition leaves state s.
func (m *Machine[S]) IsTerminal(s S) bool {
	_, ok := m.terminal[s]
	return ok
}

// IsKnown reports whether s appears anywhere in the graph.
func (m *Machine[S]) IsKnown(s S) bool {
	if s == m.initial {
		return true
	}
	if _, ok := m.edges[s]; ok {
		return true
	}
	_, ok := m.terminal[s]
	return ok
}

// ValidatePath checks that path starts at the initial state and follows only legal edges.
func (m *Machine[S]) ValidatePath(path []S) error {
	if len(path) == 0 {
		return nil
	}
	if path[0] != m.initial {
		return fmt.Errorf("%w: %s graph path starts at %s, want %s", apperrors.ErrInvalidTransition, m.name, path[0], m.initial)
	}
	for i := 1; i < len(path); i++ {
		if err := m.Validate(path[i-1], path[i]); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// Next lists the states reachable in one step from current.
func (m *Machine[S]) Next(current S) []S {
	return append([]S(nil), m.edges[current]...)
}
