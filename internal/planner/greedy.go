package planner

import "github.com/elektrokombinacija/cleanbot-sim/internal/geom"

// greedyStrategy always targets the nearest known todo cell by BFS
// distance, re-searching from scratch on every tick. It is the
// simplest TargetStrategy and the one every other strategy falls back
// to when its own bookkeeping runs dry.
type greedyStrategy struct{}

// NewGreedy returns a Planner that always walks toward the nearest
// sensed dirt or unexplored frontier cell.
func NewGreedy() Planner {
	return NewBase(greedyStrategy{})
}

func (greedyStrategy) Name() string { return "greedy" }

func (greedyStrategy) NextTarget(b *Base) ([]geom.Direction, bool) {
	return b.pathToNearestTodo(b.currentPos, b.searchCap())
}
