// Package house is the authoritative environment model: a rectangular
// grid of walls and dirt, the agent's position, and the docking
// station. It implements sensors.WallsSensor and sensors.DirtSensor so
// the planner can read it only through those narrow contracts, without
// letting the planner mutate the grid directly.
package house

import (
	"fmt"

	"github.com/elektrokombinacija/cleanbot-sim/internal/geom"
)

// Cell is either a wall or holds a dirt level in [0,9].
type Cell struct {
	Wall      bool
	DirtLevel int
}

// Grid is the immutable shape of an environment: its cell matrix and
// dock position. Grid is parsed once (internal/envfile) and can seed
// any number of independent House instances.
type Grid struct {
	Rows, Cols int
	Cells      [][]Cell // [row][col]
	Dock       geom.Position
}

// InBounds reports whether pos lies within the grid's rectangle.
func (g *Grid) InBounds(pos geom.Position) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// House is the mutable, per-simulation environment state: a Grid's
// dirt levels (which only ever decrease) and the agent's current
// position. Everything else about the Grid is immutable for the
// lifetime of a House.
type House struct {
	grid         *Grid
	dirt         [][]int // mutable copy of grid.Cells[*][*].DirtLevel
	agentPos     geom.Position
	initialDirt  int
	totalDirt    int
}

// New creates a House seeded from grid, with the agent starting at the
// dock. It panics if the dock is out of bounds or on a wall, which
// would indicate a bug in the environment parser, not a user error to
// recover from at this layer.
func New(grid *Grid) *House {
	dirt := make([][]int, grid.Rows)
	total := 0
	for r := 0; r < grid.Rows; r++ {
		dirt[r] = make([]int, grid.Cols)
		for c := 0; c < grid.Cols; c++ {
			dirt[r][c] = grid.Cells[r][c].DirtLevel
			total += dirt[r][c]
		}
	}
	if !grid.InBounds(grid.Dock) || grid.Cells[grid.Dock.Row][grid.Dock.Col].Wall {
		panic(fmt.Sprintf("house: dock %v is out of bounds or a wall", grid.Dock))
	}
	return &House{
		grid:        grid,
		dirt:        dirt,
		agentPos:    grid.Dock,
		initialDirt: total,
		totalDirt:   total,
	}
}

// AgentPosition returns the agent's current position.
func (h *House) AgentPosition() geom.Position { return h.agentPos }

// DockPosition returns the docking station's position.
func (h *House) DockPosition() geom.Position { return h.grid.Dock }

// AtDock reports whether the agent currently occupies the dock.
func (h *House) AtDock() bool { return h.agentPos == h.grid.Dock }

// TotalDirtLeft returns the sum of all remaining dirt levels.
func (h *House) TotalDirtLeft() int { return h.totalDirt }

// InitialDirt returns the sum of dirt levels at construction time, used
// by the scheduler's timeout scoring formula.
func (h *House) InitialDirt() int { return h.initialDirt }

// isWallAt reports whether pos is off-grid or a wall cell.
func (h *House) isWallAt(pos geom.Position) bool {
	if !h.grid.InBounds(pos) {
		return true
	}
	return h.grid.Cells[pos.Row][pos.Col].Wall
}

// IsWall implements sensors.WallsSensor: whether the neighbor of the
// agent's current position in direction d is off-grid or a wall.
func (h *House) IsWall(d geom.Direction) bool {
	return h.isWallAt(h.agentPos.Neighbor(d))
}

// DirtLevel implements sensors.DirtSensor: dirt at the agent's current
// position.
func (h *House) DirtLevel() int {
	return h.dirt[h.agentPos.Row][h.agentPos.Col]
}

// CleanCurrentPosition subtracts one unit of dirt from the agent's
// current cell, if any remains. It is a no-op on an already-clean cell.
func (h *House) CleanCurrentPosition() {
	r, c := h.agentPos.Row, h.agentPos.Col
	if h.dirt[r][c] > 0 {
		h.dirt[r][c]--
		h.totalDirt--
	}
}

// Move relocates the agent to the neighbor in direction d. It panics if
// that neighbor is a wall: the simulator is required to check
// IsWall(d) itself and raise a planner fault (ErrInvalidMove) before
// ever calling Move, so reaching this panic would indicate a simulator
// bug rather than a planner lie.
func (h *House) Move(d geom.Direction) {
	next := h.agentPos.Neighbor(d)
	if h.isWallAt(next) {
		panic(fmt.Sprintf("house: Move(%v) from %v would enter a wall", d, h.agentPos))
	}
	h.agentPos = next
}
