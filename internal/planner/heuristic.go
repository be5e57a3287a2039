package planner

import (
	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/physics"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// The heuristic decomposes each conjunctive clause into per-literal
// (approach, work) pairs: approach is the arm travel needed to start on
// a literal, work the primitive actions its objects still require.
// Within a clause the approach term is the minimum across literals (one
// arm, position is reused) and the work term their sum (work is
// additive); across clauses the estimate is the minimum (a disjunction
// needs only its cheapest clause). Each primitive action costs 1, an
// object move costs at least pick + carry + drop, and clearing a pile
// costs at least 4 per blocking object, so every term below is a lower
// bound on the true remaining cost.

// estimate returns the admissible remaining-cost estimate for a state.
func estimate(s *world.State, clauses [][]domain.Literal) int {
	best := -1
	for _, clause := range clauses {
		arm, task := clauseEstimate(s, clause)
		if best < 0 || arm+task < best {
			best = arm + task
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func clauseEstimate(s *world.State, clause []domain.Literal) (arm, task int) {
	arm = -1
	for _, lit := range clause {
		a, t := literalEstimate(s, lit)
		if arm < 0 || a < arm {
			arm = a
		}
		task += t
	}
	if arm < 0 {
		arm = 0
	}
	return arm, task
}

func literalEstimate(s *world.State, lit domain.Literal) (int, int) {
	if physics.Holds(s, lit) {
		return 0, 0
	}
	switch lit.Rel {
	case domain.RelHolding:
		// The search drives an unsatisfied holding goal by itself.
		return 0, 0
	case domain.RelOnTop, domain.RelInside:
		return stackEstimate(s, lit.Args[0], lit.Args[1])
	case domain.RelAbove:
		return aboveEstimate(s, lit.Args[0], lit.Args[1])
	case domain.RelUnder:
		return aboveEstimate(s, lit.Args[1], lit.Args[0])
	case domain.RelLeftOf:
		return orderEstimate(s, lit.Args[0], lit.Args[1])
	case domain.RelRightOf:
		return orderEstimate(s, lit.Args[1], lit.Args[0])
	case domain.RelBeside:
		return besideEstimate(s, lit.Args[0], lit.Args[1])
	}
	return 0, 0
}

// stackEstimate bounds the cost of getting top directly onto bot.
func stackEstimate(s *world.State, top, bot string) (int, int) {
	topX := columnOf(s, top)
	freeTop := freeCost(s, top)

	var botX, freeBot int
	if bot == domain.Floor {
		botX = bestFloorColumn(s, topX)
		freeBot = 4 * len(s.Stacks[botX])
	} else {
		botX = columnOf(s, bot)
		freeBot = freeCost(s, bot)
	}

	// The approach term takes the nearer of the two columns: blocker
	// clearing already pays for its own approach, so charging the far
	// column here can exceed the true cost.
	approach := min(abs(s.Arm-topX), abs(s.Arm-botX))

	switch {
	case freeTop == 0:
		return approach, freeBot + moveCost(s, top, botX)
	case freeBot == 0:
		return approach, freeTop + moveCost(s, top, botX)
	case botX == topX:
		// Both live in the same pile: clearing down to the deeper one
		// clears the other on the way, so summing would overestimate.
		return abs(s.Arm - topX), max(freeTop, freeBot)
	default:
		return armToFreeBoth(s.Arm, topX, botX),
			freeTop + freeBot + moveCost(s, top, botX)
	}
}

// aboveEstimate bounds the cost of getting top somewhere above bot.
func aboveEstimate(s *world.State, top, bot string) (int, int) {
	if bot == domain.Floor {
		if s.Holding == top {
			return 0, 1
		}
		return 0, 0
	}
	extra := 0
	if s.Holding == bot {
		extra = 1
	}
	topX := columnOf(s, top)
	botX := columnOf(s, bot)
	return abs(s.Arm - topX), freeCost(s, top) + moveCost(s, top, botX) + extra
}

// orderEstimate bounds the cost of getting a strictly left of b: push
// whichever endpoint is cheaper toward the other's far side. An
// endpoint pinned against the table edge has no room on that side; the
// fallback then charges the full table width.
func orderEstimate(s *world.State, a, b string) (int, int) {
	n := s.Columns()
	xa := columnOf(s, a)
	xb := columnOf(s, b)

	armA, taskA := 0, n
	if xb > 0 {
		armA = abs(s.Arm - xa)
		taskA = freeCost(s, a) + moveCost(s, a, xb-1)
	}
	armB, taskB := 0, n
	if xa < n-1 {
		armB = abs(s.Arm - xb)
		taskB = freeCost(s, b) + moveCost(s, b, xa+1)
	}
	if armA+taskA <= armB+taskB {
		return armA, taskA
	}
	return armB, taskB
}

// besideEstimate bounds the cost of getting a and b into adjacent
// columns: free and move the cheaper endpoint next to the other.
func besideEstimate(s *world.State, a, b string) (int, int) {
	n := s.Columns()

	moveNextTo := func(id string, otherX int) (int, int, bool) {
		best := -1
		for _, t := range []int{otherX - 1, otherX + 1} {
			if t < 0 || t >= n {
				continue
			}
			if c := moveCost(s, id, t); best < 0 || c < best {
				best = c
			}
		}
		if best < 0 {
			return 0, 0, false
		}
		return abs(s.Arm - columnOf(s, id)), freeCost(s, id) + best, true
	}

	armA, taskA, okA := moveNextTo(a, columnOf(s, b))
	armB, taskB, okB := moveNextTo(b, columnOf(s, a))
	switch {
	case okA && (!okB || armA+taskA <= armB+taskB):
		return armA, taskA
	case okB:
		return armB, taskB
	}
	return 0, 0
}

// columnOf returns the column an object occupies, or the arm column
// when it is held.
func columnOf(s *world.State, id string) int {
	if id == s.Holding {
		return s.Arm
	}
	c, _, _ := s.Find(id)
	return c
}

// freeCost is the lower bound on clearing everything above an object:
// each blocker needs at least approach, pick, move aside, and drop.
func freeCost(s *world.State, id string) int {
	if id == s.Holding {
		return 0
	}
	c, h, ok := s.Find(id)
	if !ok {
		return 0
	}
	return 4 * (len(s.Stacks[c]) - 1 - h)
}

// moveCost is the lower bound on relocating an object to a column:
// the horizontal carry plus the pick when it is not already held.
func moveCost(s *world.State, id string, destX int) int {
	d := abs(columnOf(s, id) - destX)
	if id == s.Holding {
		return d
	}
	return d + 1
}

// bestFloorColumn picks the column where exposing floor space for an
// object at fromX is cheapest: clearing cost plus carry distance.
func bestFloorColumn(s *world.State, fromX int) int {
	best, bestCost := 0, -1
	for i, stack := range s.Stacks {
		cost := 4*len(stack) + abs(i-fromX)
		if bestCost < 0 || cost < bestCost {
			best, bestCost = i, cost
		}
	}
	return best
}

// armToFreeBoth is one less than the least arm travel that visits both
// columns.
func armToFreeBoth(arm, p1, p2 int) int {
	return min(abs(arm-p1), abs(arm-p2)) + abs(p1-p2) - 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
