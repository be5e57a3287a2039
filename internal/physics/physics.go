// Package physics evaluates the physical laws of the scene: spatial
// relations over a world snapshot and stacking legality. Every function
// here is a pure predicate; nothing mutates the world.
package physics

import (
	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// Holds evaluates a literal against the state. Negative-polarity
// literals invert the underlying relation.
func Holds(s *world.State, lit domain.Literal) bool {
	var v bool
	switch {
	case lit.Rel == domain.RelHolding && len(lit.Args) == 1:
		v = s.Holding == lit.Args[0]
	case len(lit.Args) == 2:
		v = Related(s, lit.Rel, lit.Args[0], lit.Args[1])
	}
	if !lit.Polarity {
		return !v
	}
	return v
}

// Related evaluates one of the seven binary spatial relations. A held
// object satisfies no spatial relation; the floor may only appear as
// the second argument, and only under above/ontop.
func Related(s *world.State, rel domain.Relation, a, b string) bool {
	if a == domain.Floor || a == s.Holding || b == s.Holding {
		return false
	}
	ca, ha, ok := s.Find(a)
	if !ok {
		return false
	}

	if b == domain.Floor {
		switch rel {
		case domain.RelAbove:
			return true
		case domain.RelOnTop:
			return ha == 0
		}
		return false
	}

	cb, hb, ok := s.Find(b)
	if !ok {
		return false
	}

	switch rel {
	case domain.RelLeftOf:
		return ca < cb
	case domain.RelRightOf:
		return ca > cb
	case domain.RelBeside:
		return ca-cb == 1 || cb-ca == 1
	case domain.RelAbove:
		return ca == cb && ha > hb
	case domain.RelUnder:
		return ca == cb && ha < hb
	case domain.RelOnTop:
		return ca == cb && ha == hb+1
	case domain.RelInside:
		return ca == cb && ha == hb+1 && s.Objects[b].Form == domain.FormBox
	}
	return false
}

// CanRestOn reports whether object a may be placed directly on b under
// the stacking laws. b may be the floor, which supports everything.
func CanRestOn(objects map[string]domain.ObjectDef, a, b string) bool {
	if b == domain.Floor {
		return true
	}
	da, db := objects[a], objects[b]

	// Balls support nothing, and must themselves rest in boxes.
	if db.Form == domain.FormBall {
		return false
	}
	if da.Form == domain.FormBall && db.Form != domain.FormBox {
		return false
	}

	if db.Size == domain.SizeSmall && da.Size == domain.SizeLarge {
		return false
	}
	if db.Size == domain.SizeLarge && da.Size == domain.SizeSmall {
		return true
	}

	// Same size from here on.
	if db.Form == domain.FormBox {
		switch da.Form {
		case domain.FormPyramid, domain.FormPlank, domain.FormBox:
			return false
		}
		return true
	}
	if da.Size == domain.SizeSmall &&
		(db.Form == domain.FormBrick || db.Form == domain.FormPyramid) &&
		da.Form == domain.FormBox {
		return false
	}
	if da.Size == domain.SizeLarge && da.Form == domain.FormBox && db.Form == domain.FormPyramid {
		return false
	}
	return true
}
