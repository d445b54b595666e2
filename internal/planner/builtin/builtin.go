// Package builtin registers the two in-tree navigation strategies
// (greedy, dfs) with internal/planner/registry. It exists only to
// break the import cycle registry->planner would otherwise need to
// close on itself: callers blank-import this package for its side
// effect, the same way database/sql drivers register themselves.
package builtin

import (
	"github.com/elektrokombinacija/cleanbot-sim/internal/planner"
	"github.com/elektrokombinacija/cleanbot-sim/internal/planner/registry"
)

func init() {
	registry.Register("greedy", planner.NewGreedy)
	registry.Register("dfs", planner.NewDFS)
}
