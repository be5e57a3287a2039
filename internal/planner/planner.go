// Package planner finds minimal primitive-action sequences that carry a
// world into a state satisfying a goal formula. The search is A* over
// physical configurations with unit step costs and an admissible,
// relation-aware cost estimator.
package planner

import (
	"context"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// Planner runs searches with a shared expansion bound.
type Planner struct {
	// MaxStates caps expansions per search; DefaultMaxStates when zero.
	MaxStates int
}

// New creates a planner with the default expansion bound.
func New() *Planner {
	return &Planner{MaxStates: DefaultMaxStates}
}

// Plan annotates every interpretation with a plan found from the given
// world. Search failures are not caught here; they propagate to the
// caller. The world is read, never mutated.
func (p *Planner) Plan(ctx context.Context, results []domain.Result, s *world.State) ([]domain.Result, error) {
	planned := make([]domain.Result, 0, len(results))
	for _, r := range results {
		steps, err := p.Solve(ctx, s, r.Goal)
		if err != nil {
			return nil, err
		}
		r.Plan = steps
		planned = append(planned, r)
	}
	return planned, nil
}

// Solve searches for a plan satisfying a single goal and emits it as an
// interleaved stream of human-readable messages and action tokens:
// msg1, cmd1, msg2, cmd2, ... A world already satisfying the goal
// yields the empty plan.
func (p *Planner) Solve(ctx context.Context, s *world.State, goal domain.Goal) ([]string, error) {
	maxStates := p.MaxStates
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}

	goalNode, err := search(ctx, s, disjuncts(goal), maxStates)
	if err != nil {
		return nil, err
	}
	return emit(goalNode), nil
}

// Actions extracts the bare action tokens from an emitted plan,
// dropping the narration.
func Actions(plan []string) []domain.Action {
	var out []domain.Action
	for i := 1; i < len(plan); i += 2 {
		out = append(out, domain.Action(plan[i]))
	}
	return out
}

// emit walks the solution chain back to the root and renders the steps
// in execution order.
func emit(goal *node) []string {
	depth := 0
	for n := goal; n.parent != nil; n = n.parent {
		depth++
	}
	steps := make([]string, 2*depth)
	i := 2 * depth
	for n := goal; n.parent != nil; n = n.parent {
		steps[i-2] = n.message
		steps[i-1] = string(n.action)
		i -= 2
	}
	return steps
}
