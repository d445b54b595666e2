package planner

import (
	"github.com/elektrokombinacija/cleanbot-sim/internal/geom"
	"github.com/elektrokombinacija/cleanbot-sim/internal/pathtree"
)

// bfs is a breadth-first search over the sensed portion of the map
// (wallMap), expanding in the fixed direction order
// North/East/South/West, that returns the shortest direction sequence
// from start to the first position satisfying found, or ok=false if
// none is reachable within maxDepth.
func bfs(wallMap map[geom.Position]bool, start geom.Position, maxDepth int, found func(geom.Position) bool) ([]geom.Direction, bool) {
	tree := pathtree.New()
	root := tree.InsertRoot(start)

	if found(start) {
		return tree.PathFromRoot(root), true
	}

	queue := []pathtree.NodeID{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if tree.Depth(cur) >= maxDepth {
			continue
		}
		curPos := tree.Position(cur)

		for _, dir := range geom.Directions {
			childPos := curPos.Neighbor(dir)
			if tree.Visited(childPos) {
				continue
			}
			isWall, sensed := wallMap[childPos]
			if !sensed || isWall {
				continue
			}

			childID, ok := tree.InsertChild(cur, dir, childPos, false)
			if !ok {
				continue
			}
			if found(childPos) {
				return tree.PathFromRoot(childID), true
			}
			queue = append(queue, childID)
		}
	}
	return nil, false
}
