// Package engine wires the pipeline: grammar, interpreter, and planner
// behind a single entry point shared by the HTTP API and the CLI.
package engine

import (
	"context"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/grammar"
	"github.com/anthropics/blocksworld-engine/internal/interpreter"
	"github.com/anthropics/blocksworld-engine/internal/planner"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// Engine runs utterances through parse, interpretation, and planning.
type Engine struct {
	Planner *planner.Planner
}

// New creates an engine with the given search bound (0 uses the
// default).
func New(maxStates int) *Engine {
	p := planner.New()
	if maxStates > 0 {
		p.MaxStates = maxStates
	}
	return &Engine{Planner: p}
}

// Outcome is the full pipeline result for one utterance.
type Outcome struct {
	Parses int           `json:"parses"`
	Goal   string        `json:"goal"`
	Result domain.Result `json:"result"`
}

// Process parses the utterance, interprets it against the world, and
// plans the single surviving interpretation. The world is not mutated;
// executing the returned plan is the caller's responsibility.
func (e *Engine) Process(ctx context.Context, s *world.State, utterance string) (*Outcome, error) {
	parses, err := grammar.Parse(utterance)
	if err != nil {
		return nil, err
	}

	results, err := interpreter.Interpret(parses, s)
	if err != nil {
		return nil, err
	}

	planned, err := e.Planner.Plan(ctx, results, s)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Parses: len(parses),
		Goal:   planned[0].Goal.String(),
		Result: planned[0],
	}, nil
}

// Execute applies a plan's action tokens to a world, returning the
// resulting state. Used by the REPL after a plan is accepted.
func Execute(s *world.State, plan []string) (*world.State, error) {
	cur := s
	for _, a := range planner.Actions(plan) {
		next, err := planner.Apply(cur, a)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
