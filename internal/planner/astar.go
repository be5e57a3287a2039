package planner

import (
	"container/heap"
	"context"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// DefaultMaxStates caps the number of expansions per search.
const DefaultMaxStates = 20000

// node is one frontier entry. Nodes are owned by a single search and
// discarded when it terminates. Physical configurations are identified
// by their canonical key, never by node identity: two nodes for equal
// configurations are the same search state.
type node struct {
	state   *world.State
	key     string
	action  domain.Action
	message string
	parent  *node
	g, f    int
	index   int
}

// openHeap is a binary min-heap over f-scores with the index bookkeeping
// needed for decrease-key via heap.Fix.
type openHeap []*node

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *openHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	l := len(old)
	n := old[l-1]
	old[l-1] = nil
	n.index = -1
	*h = old[:l-1]
	return n
}

// search runs best-first over the state graph: unit step costs, the
// clause heuristic, and goal satisfaction as defined by the clauses.
// It returns the goal node, from which the path is recovered through
// parent pointers.
func search(ctx context.Context, start *world.State, clauses [][]domain.Literal, maxStates int) (*node, error) {
	root := &node{state: start, key: start.Key(), f: estimate(start, clauses)}

	open := openHeap{}
	heap.Init(&open)
	heap.Push(&open, root)

	byKey := map[string]*node{root.key: root}
	closed := make(map[string]struct{})

	expanded := 0
	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := heap.Pop(&open).(*node)
		delete(byKey, current.key)

		if anySatisfied(current.state, clauses) {
			return current, nil
		}

		closed[current.key] = struct{}{}
		expanded++
		if expanded > maxStates {
			return nil, domain.ErrSearchLimit
		}

		for _, succ := range successors(current.state, current.action) {
			key := succ.state.Key()
			if _, done := closed[key]; done {
				continue
			}
			g := current.g + 1

			if known, ok := byKey[key]; ok {
				if g < known.g {
					known.f -= known.g - g
					known.g = g
					known.parent = current
					known.action = succ.action
					known.message = succ.message
					heap.Fix(&open, known.index)
				}
				continue
			}

			child := &node{
				state:   succ.state,
				key:     key,
				action:  succ.action,
				message: succ.message,
				parent:  current,
				g:       g,
				f:       g + estimate(succ.state, clauses),
			}
			heap.Push(&open, child)
			byKey[key] = child
		}
	}
	return nil, domain.ErrNoPath
}
