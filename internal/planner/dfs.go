package planner

import "github.com/elektrokombinacija/cleanbot-sim/internal/geom"

// dfsStrategy explores depth-first: it pushes newly discovered todo
// neighbors onto a stack as they're sensed and always aims at the
// top. When the top is no longer a todo (already cleaned, or turned
// out not to be reachable), it is popped and the next one tried. If
// the stack empties out entirely - everything it ever pushed has been
// visited or invalidated - it falls back to greedyStrategy's nearest
// known todo, the same way Greedy itself would behave; this keeps the
// agent moving instead of stalling when its own exploration order runs
// out of candidates.
type dfsStrategy struct {
	stack  []geom.Position
	pushed map[geom.Position]bool
}

// NewDFS returns a Planner that explores in depth-first order,
// falling back to nearest-todo once its candidate stack is exhausted.
func NewDFS() Planner {
	return NewBase(&dfsStrategy{pushed: make(map[geom.Position]bool)})
}

func (s *dfsStrategy) Name() string { return "dfs" }

func (s *dfsStrategy) NextTarget(b *Base) ([]geom.Direction, bool) {
	for _, d := range geom.Directions {
		n := b.currentPos.Neighbor(d)
		if b.todo[n] && !s.pushed[n] {
			s.pushed[n] = true
			s.stack = append(s.stack, n)
		}
	}

	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		if !b.todo[top] {
			s.stack = s.stack[:len(s.stack)-1]
			continue
		}
		path, ok := b.pathToPosition(b.currentPos, top, b.searchCap())
		if !ok {
			s.stack = s.stack[:len(s.stack)-1]
			continue
		}
		return path, true
	}

	return (greedyStrategy{}).NextTarget(b)
}
