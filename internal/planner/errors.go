package planner

import "errors"

// ErrNotInitialized is returned by NextStep if any of the four setters
// (SetMaxSteps, SetWallsSensor, SetDirtSensor, SetBatteryMeter) has not
// yet been called.
var ErrNotInitialized = errors.New("planner: next_step called before all sensors/limits were set")

// ErrUnreachableDock is returned when the planner's own map proves the
// docking station cannot be reached from the current position. This is
// a fatal contract violation: the house/battery/step-budget invariants
// are supposed to make this unreachable in practice.
var ErrUnreachableDock = errors.New("planner: no path to the docking station exists in the known map")

// ErrInvalidMove is raised by the simulator (not the planner) when a
// planner returns a directional step into a sensed wall. It lives here,
// rather than in internal/simulator, so planner implementations and
// their tests can reference it without importing the simulator.
var ErrInvalidMove = errors.New("planner: returned a step into a wall")
