package planner

import (
	"fmt"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/physics"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// successor is one legal primitive step out of a state.
type successor struct {
	action  domain.Action
	message string
	state   *world.State
}

// inverse maps each action to the action it undoes.
var inverse = map[domain.Action]domain.Action{
	domain.ActionLeft:  domain.ActionRight,
	domain.ActionRight: domain.ActionLeft,
	domain.ActionPick:  domain.ActionDrop,
	domain.ActionDrop:  domain.ActionPick,
}

// successors enumerates the legal actions out of s. The inverse of the
// action that produced s is pruned: undoing the previous step never
// helps, and the pruning keeps the frontier within the expansion bound.
func successors(s *world.State, incoming domain.Action) []successor {
	out := make([]successor, 0, 3)
	skip := inverse[incoming]

	if s.Arm > 0 && skip != domain.ActionLeft {
		out = append(out, successor{
			action:  domain.ActionLeft,
			message: "Moving left",
			state:   s.WithArm(s.Arm - 1),
		})
	}
	if s.Arm < s.Columns()-1 && skip != domain.ActionRight {
		out = append(out, successor{
			action:  domain.ActionRight,
			message: "Moving right",
			state:   s.WithArm(s.Arm + 1),
		})
	}
	if s.Holding == "" && len(s.Stacks[s.Arm]) > 0 && skip != domain.ActionPick {
		top := s.Top(s.Arm)
		out = append(out, successor{
			action:  domain.ActionPick,
			message: fmt.Sprintf("Picking up the %s", s.Objects[top].Form),
			state:   s.Pick(),
		})
	}
	if s.Holding != "" && skip != domain.ActionDrop {
		if top := s.Top(s.Arm); top == "" || physics.CanRestOn(s.Objects, s.Holding, top) {
			out = append(out, successor{
				action:  domain.ActionDrop,
				message: fmt.Sprintf("Dropping the %s", s.Objects[s.Holding].Form),
				state:   s.Drop(),
			})
		}
	}
	return out
}

// Apply executes a single action on a state, returning the successor
// state. It enforces the same legality rules as the search.
func Apply(s *world.State, a domain.Action) (*world.State, error) {
	switch a {
	case domain.ActionLeft:
		if s.Arm > 0 {
			return s.WithArm(s.Arm - 1), nil
		}
	case domain.ActionRight:
		if s.Arm < s.Columns()-1 {
			return s.WithArm(s.Arm + 1), nil
		}
	case domain.ActionPick:
		if s.Holding == "" && len(s.Stacks[s.Arm]) > 0 {
			return s.Pick(), nil
		}
	case domain.ActionDrop:
		if s.Holding != "" {
			if top := s.Top(s.Arm); top == "" || physics.CanRestOn(s.Objects, s.Holding, top) {
				return s.Drop(), nil
			}
		}
	}
	return nil, domain.NewEngineError(domain.ErrBadAction.Code,
		fmt.Sprintf("action %q is not legal in this state", a))
}
