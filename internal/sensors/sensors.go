// Package sensors declares the read-only contracts the planner consumes
// and the house/battery models implement. Keeping these interfaces in
// their own package (rather than in either house or planner) avoids an
// import cycle: house and battery implement them, planner only depends
// on them, and neither house nor planner needs to import the other.
package sensors

import "github.com/elektrokombinacija/cleanbot-sim/internal/geom"

// WallsSensor reports whether the neighbor in a given direction is a
// wall (or off-grid).
type WallsSensor interface {
	IsWall(d geom.Direction) bool
}

// DirtSensor reports the dirt level of the cell currently occupied by
// the agent.
type DirtSensor interface {
	DirtLevel() int
}

// BatteryMeter reports the integer number of steps of charge remaining.
type BatteryMeter interface {
	BatteryState() int
}
