package planner

import "github.com/elektrokombinacija/cleanbot-sim/internal/geom"

// decide evaluates the seven-rule decision table in order; the first
// matching rule wins. It never mutates planner state itself (NextStep
// applies the step's position/step-count effects once decide returns).
func (b *Base) decide() (geom.Step, error) {
	pathToDock, dockReachable := b.pathToDock(b.currentPos, b.searchCap())
	if !dockReachable {
		return geom.StepStay, ErrUnreachableDock
	}
	stationDistance := len(pathToDock)
	atDock := isDock(b.currentPos)
	budget := b.budget()
	allClean := b.allReachableCleaned()

	// Rule 1: out of steps, or parked at dock with nothing left to reach.
	if b.stepsRemain == 0 || (atDock && allClean) {
		return geom.StepFinish, nil
	}

	// Rule 2: at dock, not full, and there is a reachable todo the agent
	// could still clean within a fresh round trip; top up first.
	if atDock && b.battRemain < b.battCapacity {
		if path, ok := b.pathToNearestTodo(b.currentPos, b.searchCap()); ok {
			if 2*len(path)+1 < b.stepsRemain {
				return geom.StepStay, nil
			}
		}
	}

	// Rule 3: cannot safely spend another turn in place (or nothing left
	// worth reaching) - run for the dock now.
	if budget < 1+stationDistance || allClean {
		return dockStep(pathToDock), nil
	}

	// Rule 4: dirt underfoot always gets cleaned before the agent moves on.
	if b.currentDirt > 0 {
		return geom.StepStay, nil
	}

	// Rule 5: cannot safely take one more step away from the dock.
	if budget < 2+stationDistance {
		return dockStep(pathToDock), nil
	}

	// Rule 6: ask the strategy for its next target, then validate the
	// longest safe prefix of the path toward it - the prefix that ends
	// on a todo cell the agent can still return to the dock from within
	// budget. A Greedy path ends at the nearest todo and crosses no
	// other todo cell, so it validates whole or not at all; a DFS path
	// can cross other todo cells, and then a shorter safe prefix is
	// still preferable to no movement at all.
	if target, ok := b.strategy.NextTarget(b); ok {
		if prefix, ok := b.validateTargetPath(target, budget); ok && len(prefix) > 0 {
			dir := prefix[0]
			return geom.FromDirection(dir), nil
		}
	}

	// Rule 7: nothing else applies - head home, or stop if already there.
	if atDock {
		return geom.StepFinish, nil
	}
	return dockStep(pathToDock), nil
}

// dockStep returns the first step of path, or Finish if path is empty
// (the agent is already at the dock).
func dockStep(path []geom.Direction) geom.Step {
	if len(path) == 0 {
		return geom.StepFinish
	}
	return geom.FromDirection(path[0])
}

// validateTargetPath scans path from its end back toward its start for
// the longest prefix that stops on a todo cell from which a return trip
// to the dock still fits inside budget: steps taken so far, plus one
// step to clean, plus the return distance. It returns ok=false if no
// prefix qualifies, including the empty prefix.
func (b *Base) validateTargetPath(path []geom.Direction, budget int) ([]geom.Direction, bool) {
	pos := b.currentPos
	positions := make([]geom.Position, len(path)+1)
	positions[0] = pos
	for i, d := range path {
		pos = pos.Neighbor(d)
		positions[i+1] = pos
	}

	for k := len(path); k >= 1; k-- {
		cand := positions[k]
		if !b.todo[cand] {
			continue
		}
		back, ok := b.pathToDock(cand, b.searchCap())
		if !ok {
			continue
		}
		if k+1+len(back) <= budget {
			return path[:k], true
		}
	}
	return nil, false
}
