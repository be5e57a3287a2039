package interpreter

import (
	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/physics"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// resolveEntity folds an entity description into the candidate
// identifiers that match it, carrying the entity's quantifier.
func resolveEntity(s *world.State, ent *domain.Entity) (domain.CandList, error) {
	cands, err := resolveObject(s, ent.Object)
	if err != nil {
		return domain.CandList{}, err
	}
	return domain.CandList{Candidates: cands, Quant: ent.Quant}, nil
}

// resolveObject matches a recursive object description against the
// world. A leaf matches on form/size/color, with FormAny matching every
// form; the floor is a candidate only for an explicit floor leaf. A
// relative description first resolves its base, then keeps the base
// candidates standing in the stated relation to the location entity.
func resolveObject(s *world.State, obj *domain.Object) ([]string, error) {
	if obj.IsLeaf() {
		if obj.Form == domain.FormFloor {
			return []string{domain.Floor}, nil
		}
		var cands []string
		for _, id := range s.Identifiers() {
			if matches(s.Objects[id], obj) {
				cands = append(cands, id)
			}
		}
		return cands, nil
	}

	base, err := resolveObject(s, obj.Described)
	if err != nil {
		return nil, err
	}
	list, err := resolveEntity(s, obj.Location.Entity)
	if err != nil {
		return nil, err
	}

	var kept []string
	for _, c := range base {
		// The floor never takes part in a relative description on the
		// subject side.
		if c == domain.Floor {
			continue
		}
		ok, err := inLocation(s, c, obj.Location.Rel, list)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, c)
		}
	}
	return kept, nil
}

// inLocation reports whether candidate c stands in rel to the resolved
// location list. At this nested level "the" is treated exactly like
// "any": the candidate qualifies if it relates to some object in the
// list, and any top-level ambiguity is resolved later rather than
// failing here. "all" requires the relation to hold against every
// object in the list other than the candidate itself.
func inLocation(s *world.State, c string, rel domain.Relation, list domain.CandList) (bool, error) {
	switch list.Quant {
	case domain.QuantThe, domain.QuantAny:
		for _, o := range list.Candidates {
			if physics.Related(s, rel, c, o) {
				return true, nil
			}
		}
		return false, nil
	case domain.QuantAll:
		if len(list.Candidates) == 0 {
			return false, nil
		}
		for _, o := range list.Candidates {
			if c == o {
				continue
			}
			if !physics.Related(s, rel, c, o) {
				return false, nil
			}
		}
		return true, nil
	}
	return false, domain.NewEngineError(domain.ErrUnknownQuantifier.Code,
		"unsupported quantifier: "+string(list.Quant))
}

// matches checks a catalogue entry against a leaf description.
func matches(def domain.ObjectDef, obj *domain.Object) bool {
	if obj.Form != domain.FormAny && obj.Form != def.Form {
		return false
	}
	if obj.Size != "" && obj.Size != def.Size {
		return false
	}
	if obj.Color != "" && obj.Color != def.Color {
		return false
	}
	return true
}
