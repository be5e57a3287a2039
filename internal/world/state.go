// Package world holds the tabletop scene: the object catalogue, the
// stack layout, and the arm state.
package world

import (
	"fmt"
	"strings"

	"github.com/anthropics/blocksworld-engine/internal/domain"
)

// State is one snapshot of the scene. Stacks[i][0] is the bottom of
// column i and Stacks[i][len-1] its top. Holding is "" when the arm is
// empty. Successor states produced during planning share unchanged
// columns with their parent, so a State must never be mutated in place
// once it has been handed out.
type State struct {
	Objects map[string]domain.ObjectDef `json:"objects" yaml:"objects"`
	Stacks  [][]string                  `json:"stacks" yaml:"stacks"`
	Holding string                      `json:"holding" yaml:"holding"`
	Arm     int                         `json:"arm" yaml:"arm"`
}

// Columns returns the number of columns on the table.
func (s *State) Columns() int { return len(s.Stacks) }

// Top returns the identifier on top of column i, or "" when the column
// is empty.
func (s *State) Top(i int) string {
	st := s.Stacks[i]
	if len(st) == 0 {
		return ""
	}
	return st[len(st)-1]
}

// Find returns the column and height of a stack-resident object. It
// fails for the floor, for a held object, and for unknown identifiers.
func (s *State) Find(id string) (col, height int, ok bool) {
	for c, stack := range s.Stacks {
		for h, o := range stack {
			if o == id {
				return c, h, true
			}
		}
	}
	return 0, 0, false
}

// Exists reports whether the identifier is present in the scene, either
// in a stack or in the arm.
func (s *State) Exists(id string) bool {
	if id == s.Holding && id != "" {
		return true
	}
	_, _, ok := s.Find(id)
	return ok
}

// Identifiers returns every object in the scene in stack order, with
// the held object (if any) last.
func (s *State) Identifiers() []string {
	var ids []string
	for _, stack := range s.Stacks {
		ids = append(ids, stack...)
	}
	if s.Holding != "" {
		ids = append(ids, s.Holding)
	}
	return ids
}

// WithColumn returns a copy of the state in which column i is replaced.
// All other columns are shared with the receiver.
func (s *State) WithColumn(i int, col []string) *State {
	stacks := make([][]string, len(s.Stacks))
	copy(stacks, s.Stacks)
	stacks[i] = col
	return &State{Objects: s.Objects, Stacks: stacks, Holding: s.Holding, Arm: s.Arm}
}

// WithArm returns a copy of the state with the arm over column i.
func (s *State) WithArm(i int) *State {
	return &State{Objects: s.Objects, Stacks: s.Stacks, Holding: s.Holding, Arm: i}
}

// Pick returns the state after picking the top of the arm's column.
func (s *State) Pick() *State {
	stack := s.Stacks[s.Arm]
	top := stack[len(stack)-1]
	next := s.WithColumn(s.Arm, stack[:len(stack)-1:len(stack)-1])
	next.Holding = top
	return next
}

// Drop returns the state after dropping the held object onto the arm's
// column.
func (s *State) Drop() *State {
	stack := s.Stacks[s.Arm]
	col := make([]string, len(stack)+1)
	copy(col, stack)
	col[len(stack)] = s.Holding
	next := s.WithColumn(s.Arm, col)
	next.Holding = ""
	return next
}

// DeepCopy returns a state that shares nothing with the receiver except
// the immutable catalogue. Library.Get hands out such copies, so its
// callers may mutate them in place.
func (s *State) DeepCopy() *State {
	stacks := make([][]string, len(s.Stacks))
	for i, stack := range s.Stacks {
		stacks[i] = append([]string(nil), stack...)
	}
	return &State{Objects: s.Objects, Stacks: stacks, Holding: s.Holding, Arm: s.Arm}
}

// Key is the canonical identity of the physical configuration. Two
// search nodes representing equal configurations produce equal keys and
// must be deduplicated on this key, never on node identity.
func (s *State) Key() string {
	var b strings.Builder
	for i, stack := range s.Stacks {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strings.Join(stack, ","))
	}
	b.WriteByte(';')
	b.WriteString(s.Holding)
	fmt.Fprintf(&b, ";%d", s.Arm)
	return b.String()
}

// Validate checks the structural invariants: no identifier appears more
// than once across stacks and the arm, every placed identifier is
// catalogued, the floor is never placed, and the arm index is in range.
// Catalogued objects that are not placed anywhere are allowed.
func (s *State) Validate() error {
	if s.Arm < 0 || s.Arm >= len(s.Stacks) {
		return domain.NewEngineError(domain.ErrWorldInvalid.Code,
			fmt.Sprintf("arm column %d out of range [0,%d)", s.Arm, len(s.Stacks)))
	}
	seen := make(map[string]bool, len(s.Objects))
	for _, id := range s.Identifiers() {
		if id == domain.Floor {
			return domain.NewEngineError(domain.ErrWorldInvalid.Code, "the floor cannot be placed")
		}
		if _, ok := s.Objects[id]; !ok {
			return domain.NewEngineError(domain.ErrWorldInvalid.Code,
				fmt.Sprintf("object %q is not in the catalogue", id))
		}
		if seen[id] {
			return domain.NewEngineError(domain.ErrWorldInvalid.Code,
				fmt.Sprintf("object %q appears more than once", id))
		}
		seen[id] = true
	}
	return nil
}

// Describe renders a short human-readable description of an object,
// e.g. "the large white ball". The floor describes itself.
func (s *State) Describe(id string) string {
	if id == domain.Floor {
		return "the floor"
	}
	def, ok := s.Objects[id]
	if !ok {
		return id
	}
	return fmt.Sprintf("the %s %s %s", def.Size, def.Color, def.Form)
}
