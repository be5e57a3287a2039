package interpreter

import (
	"github.com/anthropics/blocksworld-engine/internal/domain"
)

// holdingGoal interprets a take command over the resolved candidates.
func holdingGoal(list domain.CandList) (domain.Goal, error) {
	cands := withoutFloor(list.Candidates)
	if len(cands) == 0 {
		return domain.Goal{}, domain.ErrNoMatch
	}
	switch list.Quant {
	case domain.QuantAll:
		if len(cands) > 1 {
			return domain.Goal{}, domain.ErrCannotHoldMany
		}
	case domain.QuantThe:
		if len(cands) > 1 {
			return domain.Goal{}, &domain.AmbiguityError{Candidates: cands}
		}
	case domain.QuantAny:
	default:
		return domain.Goal{}, domain.NewEngineError(domain.ErrUnknownQuantifier.Code,
			"unsupported quantifier: "+string(list.Quant))
	}

	leaves := make([]domain.Goal, len(cands))
	for i, c := range cands {
		leaves[i] = domain.Leaf(domain.NewLiteral(domain.RelHolding, c))
	}
	return domain.Disj(leaves), nil
}

// movingGoal interprets a put or move command: place each subject
// candidate in rel to the location candidates, composing the goal
// according to the subject × location quantifier pair.
//
//	          the            any              all
//	the    rel(s,o)       OR_o rel(s,o)    AND_o rel(s,o)
//	any    OR_s rel(s,o)  OR_so rel(s,o)   OR_s AND_o rel(s,o)
//	all    AND_s rel(s,o) AND_s OR_o       AND_so rel(s,o)
func movingGoal(rel domain.Relation, subj, loc domain.CandList) (domain.Goal, error) {
	if !spatial(rel) {
		return domain.Goal{}, domain.NewEngineError(domain.ErrUnknownRelation.Code,
			"unsupported relation: "+string(rel))
	}
	subjCands := withoutFloor(subj.Candidates)
	if len(subjCands) == 0 || len(loc.Candidates) == 0 {
		return domain.Goal{}, domain.ErrNoMatch
	}
	if subj.Quant == domain.QuantThe && len(subjCands) > 1 {
		return domain.Goal{}, &domain.AmbiguityError{Candidates: subjCands}
	}
	if loc.Quant == domain.QuantThe && len(loc.Candidates) > 1 {
		return domain.Goal{}, &domain.AmbiguityError{Candidates: loc.Candidates}
	}

	// An object never stands in a spatial relation to itself, so
	// reflexive pairs are dropped during construction.
	perSubject := func(s string, combine func([]domain.Goal) domain.Goal) (domain.Goal, bool) {
		var leaves []domain.Goal
		for _, o := range loc.Candidates {
			if s == o {
				continue
			}
			leaves = append(leaves, domain.Leaf(domain.NewLiteral(rel, s, o)))
		}
		if len(leaves) == 0 {
			return domain.Goal{}, false
		}
		return combine(leaves), true
	}

	var inner func([]domain.Goal) domain.Goal
	switch loc.Quant {
	case domain.QuantThe, domain.QuantAny:
		inner = domain.Disj
	case domain.QuantAll:
		inner = domain.Conj
	default:
		return domain.Goal{}, domain.NewEngineError(domain.ErrUnknownQuantifier.Code,
			"unsupported quantifier: "+string(loc.Quant))
	}

	var outer func([]domain.Goal) domain.Goal
	switch subj.Quant {
	case domain.QuantThe, domain.QuantAny:
		outer = domain.Disj
	case domain.QuantAll:
		outer = domain.Conj
	default:
		return domain.Goal{}, domain.NewEngineError(domain.ErrUnknownQuantifier.Code,
			"unsupported quantifier: "+string(subj.Quant))
	}

	var groups []domain.Goal
	for _, s := range subjCands {
		g, ok := perSubject(s, inner)
		if !ok {
			// For a universally quantified subject the reflexive group is
			// vacuous; for an existential subject it is simply not an
			// option.
			continue
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return domain.Goal{}, domain.ErrNoMatch
	}
	return outer(groups), nil
}

// spatial reports whether rel is one of the seven binary relations.
func spatial(rel domain.Relation) bool {
	switch rel {
	case domain.RelLeftOf, domain.RelRightOf, domain.RelBeside,
		domain.RelAbove, domain.RelUnder, domain.RelOnTop, domain.RelInside:
		return true
	}
	return false
}

// withoutFloor strips the floor from a subject candidate list; the
// floor cannot be grasped or moved.
func withoutFloor(cands []string) []string {
	out := cands[:0:0]
	for _, c := range cands {
		if c != domain.Floor {
			out = append(out, c)
		}
	}
	return out
}
