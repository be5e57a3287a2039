package planner

import (
	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/physics"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// Satisfied evaluates the goal tree against a state: leaves through the
// physics oracle, internal nodes by their operator.
func Satisfied(s *world.State, g domain.Goal) bool {
	if g.Lit != nil {
		return physics.Holds(s, *g.Lit)
	}
	switch g.Op {
	case domain.OpAnd:
		for _, c := range g.Children {
			if !Satisfied(s, c) {
				return false
			}
		}
		return true
	case domain.OpOr:
		for _, c := range g.Children {
			if Satisfied(s, c) {
				return true
			}
		}
		return false
	}
	return false
}

// disjuncts flattens a goal tree into its disjunctive clauses: the goal
// is satisfied iff some clause has every literal satisfied. AND nodes
// take the cross product of their children's clauses; goals emitted by
// the interpreter keep this product small.
func disjuncts(g domain.Goal) [][]domain.Literal {
	if g.Lit != nil {
		return [][]domain.Literal{{*g.Lit}}
	}
	switch g.Op {
	case domain.OpOr:
		var out [][]domain.Literal
		for _, c := range g.Children {
			out = append(out, disjuncts(c)...)
		}
		return out
	case domain.OpAnd:
		out := [][]domain.Literal{nil}
		for _, c := range g.Children {
			var next [][]domain.Literal
			for _, left := range out {
				for _, right := range disjuncts(c) {
					clause := make([]domain.Literal, 0, len(left)+len(right))
					clause = append(clause, left...)
					clause = append(clause, right...)
					next = append(next, clause)
				}
			}
			out = next
		}
		return out
	}
	return nil
}

// clauseSatisfied reports whether every literal of one clause holds.
func clauseSatisfied(s *world.State, clause []domain.Literal) bool {
	for _, lit := range clause {
		if !physics.Holds(s, lit) {
			return false
		}
	}
	return true
}

// anySatisfied reports whether some clause holds entirely.
func anySatisfied(s *world.State, clauses [][]domain.Literal) bool {
	for _, clause := range clauses {
		if clauseSatisfied(s, clause) {
			return true
		}
	}
	return false
}
