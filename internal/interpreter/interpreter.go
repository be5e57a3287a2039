// Package interpreter resolves parsed commands against a world and
// synthesises goal formulas. It reads the world but never mutates it.
package interpreter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// Interpret processes every candidate parse in input order and returns
// the single semantically valid interpretation. Per-parse semantic
// failures drop that parse; ambiguity failures are additionally
// remembered so that a command with no valid reading can still be
// reported as "possibly ambiguous" with the forms that clashed.
func Interpret(parses []domain.Parse, s *world.State) ([]domain.Result, error) {
	var (
		valid     []domain.Result
		ambiguous []string
	)

	for _, p := range parses {
		goal, err := Command(p.Cmd, s)
		if err != nil {
			var amb *domain.AmbiguityError
			if errors.As(err, &amb) {
				ambiguous = append(ambiguous, amb.Candidates...)
				continue
			}
			if semantic(err) {
				continue
			}
			return nil, err
		}
		valid = append(valid, domain.Result{Parse: p, Goal: goal})
	}

	switch {
	case len(valid) == 1:
		return valid, nil
	case len(valid) > 1:
		return nil, domain.NewEngineError(domain.ErrMultipleInterpretations.Code,
			fmt.Sprintf("ambiguous command, %d interpretations: try using fewer relative descriptions", len(valid)))
	case len(ambiguous) > 0:
		return nil, domain.NewEngineError(domain.ErrAmbiguity.Code,
			fmt.Sprintf("possibly ambiguous command: several objects match the %s", strings.Join(ambiguousForms(s, ambiguous), ", the ")))
	}
	return nil, domain.ErrNoValidInterpretation
}

// Command interprets a single parsed command into a goal formula.
func Command(cmd domain.Command, s *world.State) (domain.Goal, error) {
	switch cmd.Verb {
	case domain.VerbTake:
		list, err := resolveEntity(s, cmd.Entity)
		if err != nil {
			return domain.Goal{}, err
		}
		return holdingGoal(list)

	case domain.VerbPut:
		if s.Holding == "" {
			return domain.Goal{}, domain.ErrArmEmpty
		}
		loc, err := resolveEntity(s, cmd.Location.Entity)
		if err != nil {
			return domain.Goal{}, err
		}
		held := domain.CandList{Candidates: []string{s.Holding}, Quant: domain.QuantThe}
		return movingGoal(cmd.Location.Rel, held, loc)

	case domain.VerbMove:
		subj, err := resolveEntity(s, cmd.Entity)
		if err != nil {
			return domain.Goal{}, err
		}
		loc, err := resolveEntity(s, cmd.Location.Entity)
		if err != nil {
			return domain.Goal{}, err
		}
		return movingGoal(cmd.Location.Rel, subj, loc)
	}
	return domain.Goal{}, domain.NewEngineError(domain.ErrUnknownVerb.Code,
		"unsupported verb: "+string(cmd.Verb))
}

// semantic reports whether the error only invalidates a single parse
// rather than the whole command.
func semantic(err error) bool {
	var eng *domain.EngineError
	if !errors.As(err, &eng) {
		return false
	}
	switch eng.Code {
	case domain.ErrNoMatch.Code, domain.ErrCannotHoldMany.Code, domain.ErrArmEmpty.Code:
		return true
	}
	return false
}

// ambiguousForms maps the clashing candidates to their distinct forms,
// sorted for a stable user message.
func ambiguousForms(s *world.State, cands []string) []string {
	set := make(map[string]bool)
	for _, c := range cands {
		if def, ok := s.Objects[c]; ok {
			set[string(def.Form)] = true
		}
	}
	forms := make([]string, 0, len(set))
	for f := range set {
		forms = append(forms, f)
	}
	sort.Strings(forms)
	return forms
}
