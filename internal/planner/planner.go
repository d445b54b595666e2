// Package planner implements the navigation planner's incremental map,
// BFS search primitives and per-turn decision state machine: given only
// local sensors it must build a map of an unknown grid, decide whether
// to clean, move, recharge or finish, and always keep a safe path back
// to the dock.
//
// The decision table is implemented as ordered rule evaluation in
// Base.decide, not as a type hierarchy; the only extension point is the
// TargetStrategy used for the nearest-target rule.
package planner

import (
	"github.com/elektrokombinacija/cleanbot-sim/internal/geom"
	"github.com/elektrokombinacija/cleanbot-sim/internal/sensors"
)

// The dock is always (dockOrigin, dockOrigin) in planner-relative
// coordinates: the planner wakes up on it and maps everything else
// as an offset from there.
const dockOrigin = 0

// Planner is the plug-in contract every navigation strategy satisfies.
// Concrete planners are produced by factories registered in
// internal/planner/registry and driven once per simulation by
// internal/simulator.
type Planner interface {
	SetMaxSteps(n int)
	SetWallsSensor(w sensors.WallsSensor)
	SetDirtSensor(d sensors.DirtSensor)
	SetBatteryMeter(b sensors.BatteryMeter)
	NextStep() (geom.Step, error)
}

// TargetStrategy supplies rule 6's target selection: given the
// planner's current knowledge, propose a path (as a direction
// sequence) toward the next cell worth visiting. It is the single
// point where Greedy and DFS-like planners differ; every other rule in
// the decision table is shared.
type TargetStrategy interface {
	Name() string
	NextTarget(b *Base) (path []geom.Direction, ok bool)
}

// Base implements the full decision table and is parameterized only by
// a TargetStrategy. NewGreedy and NewDFS return a Base built over their
// strategy (greedyStrategy, dfsStrategy); the strategy types do not
// implement Planner themselves.
type Base struct {
	strategy TargetStrategy

	wallMap map[geom.Position]bool // sensed positions only; true = wall
	todo    map[geom.Position]bool

	currentPos   geom.Position
	currentDirt  int
	battRemain   int
	battCapacity int
	stepsRemain  int
	maxSteps     int

	walls   sensors.WallsSensor
	dirt    sensors.DirtSensor
	battery sensors.BatteryMeter

	haveMaxSteps, haveWalls, haveDirt, haveBattery bool
	firstTick                                      bool
}

// NewBase constructs a Base over the given target strategy. The
// returned planner still requires all four setters before its first
// NextStep call.
func NewBase(strategy TargetStrategy) *Base {
	return &Base{
		strategy:  strategy,
		wallMap:   make(map[geom.Position]bool),
		todo:      make(map[geom.Position]bool),
		firstTick: true,
	}
}

func (b *Base) SetMaxSteps(n int) {
	b.maxSteps = n
	b.stepsRemain = n
	b.haveMaxSteps = true
}

func (b *Base) SetWallsSensor(w sensors.WallsSensor) {
	b.walls = w
	b.haveWalls = true
}

func (b *Base) SetDirtSensor(d sensors.DirtSensor) {
	b.dirt = d
	b.haveDirt = true
}

func (b *Base) SetBatteryMeter(m sensors.BatteryMeter) {
	b.battery = m
	b.haveBattery = true
}

func (b *Base) initialized() bool {
	return b.haveMaxSteps && b.haveWalls && b.haveDirt && b.haveBattery
}

// NextStep runs one tick: sense, then decide.
func (b *Base) NextStep() (geom.Step, error) {
	if !b.initialized() {
		return geom.StepStay, ErrNotInitialized
	}
	if b.firstTick {
		b.currentPos = geom.Position{Row: dockOrigin, Col: dockOrigin}
		b.firstTick = false
	}

	b.sense()

	step, err := b.decide()
	if err != nil {
		return geom.StepStay, err
	}
	if step != geom.StepFinish {
		b.stepsRemain--
		if dir, ok := step.Direction(); ok {
			b.currentPos = b.currentPos.Neighbor(dir)
		}
	}
	return step, nil
}

// sense refreshes local knowledge in a fixed order: walls, then dirt,
// then battery. wallMap only ever grows; a todo entry is dropped once
// its cell is sensed clean with every neighbor known.
func (b *Base) sense() {
	for _, d := range geom.Directions {
		n := b.currentPos.Neighbor(d)
		if _, known := b.wallMap[n]; !known {
			isWall := b.walls.IsWall(d)
			b.wallMap[n] = isWall
			if !isWall {
				b.todo[n] = true
			}
		}
	}
	b.wallMap[b.currentPos] = false

	b.currentDirt = b.dirt.DirtLevel()
	if b.currentDirt > 0 {
		b.todo[b.currentPos] = true
	} else if !b.hasUnknownOpenNeighbor(b.currentPos) {
		delete(b.todo, b.currentPos)
	}

	b.battRemain = b.battery.BatteryState()
	// The planner is never told the battery's capacity directly (the
	// BatteryMeter contract only exposes the remaining count); it
	// infers capacity as the highest reading ever observed, which is
	// exactly the capacity on the very first tick, since the battery
	// always starts full.
	if b.battRemain > b.battCapacity {
		b.battCapacity = b.battRemain
	}
}

// hasUnknownOpenNeighbor reports whether any neighbor of pos has not
// yet been sensed. A clean cell with an unknown neighbor stays a todo
// because visiting it is still the only way to learn what lies beyond.
func (b *Base) hasUnknownOpenNeighbor(pos geom.Position) bool {
	for _, d := range geom.Directions {
		if _, known := b.wallMap[pos.Neighbor(d)]; !known {
			return true
		}
	}
	return false
}

func isDock(p geom.Position) bool {
	return p.Row == dockOrigin && p.Col == dockOrigin
}

// budget returns min(battery remaining, steps remaining).
func (b *Base) budget() int {
	if b.battRemain < b.stepsRemain {
		return b.battRemain
	}
	return b.stepsRemain
}

// maxReachableDistance is the furthest a fully charged agent could
// travel to dirt and still return within its joint battery/step budget.
func (b *Base) maxReachableDistance() int {
	joint := b.battCapacityCap()
	d := (joint - 1) / 2
	if d < 0 {
		return 0
	}
	return d
}

func (b *Base) battCapacityCap() int {
	if b.battCapacity < b.maxSteps {
		return b.battCapacity
	}
	return b.maxSteps
}

// pathToDock runs BFS from pos to the dock, capped at cap steps deep.
func (b *Base) pathToDock(pos geom.Position, cap int) ([]geom.Direction, bool) {
	return bfs(b.wallMap, pos, cap, isDock)
}

// pathToNearestTodo runs BFS from pos for the nearest position in todo.
func (b *Base) pathToNearestTodo(pos geom.Position, cap int) ([]geom.Direction, bool) {
	return bfs(b.wallMap, pos, cap, func(p geom.Position) bool { return b.todo[p] })
}

// pathToPosition runs BFS from pos to an exact target.
func (b *Base) pathToPosition(pos, target geom.Position, cap int) ([]geom.Direction, bool) {
	return bfs(b.wallMap, pos, cap, func(p geom.Position) bool { return p == target })
}

// allReachableCleaned is true when no BFS from the dock finds a todo,
// or the nearest one is farther than maxReachableDistance.
func (b *Base) allReachableCleaned() bool {
	path, ok := b.pathToNearestTodo(geom.Position{Row: dockOrigin, Col: dockOrigin}, b.searchCap())
	if !ok {
		return true
	}
	return len(path) > b.maxReachableDistance()
}

// searchCap is a generous, deterministic depth bound for BFS calls that
// are not themselves limited by the decision rule calling them: large
// enough that it never truncates a path shorter than the map the
// planner has actually sensed, since wallMap only ever grows by one
// ring of cells per tick.
func (b *Base) searchCap() int {
	if b.maxSteps > len(b.wallMap)+1 {
		return b.maxSteps
	}
	return len(b.wallMap) + 1
}
