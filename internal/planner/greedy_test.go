package planner

import (
	"testing"

	"github.com/elektrokombinacija/cleanbot-sim/internal/geom"
)

func TestGreedyTargetsNearestTodo(t *testing.T) {
	b := NewBase(greedyStrategy{})
	b.currentPos = geom.Position{}
	b.wallMap = map[geom.Position]bool{
		{Row: 0, Col: 0}:  false,
		{Row: 0, Col: 1}:  false,
		{Row: 0, Col: -1}: false,
	}
	b.todo = map[geom.Position]bool{
		{Row: 0, Col: -1}: true,
	}

	path, ok := greedyStrategy{}.NextTarget(b)
	if !ok {
		t.Fatal("expected a reachable todo")
	}
	if len(path) != 1 || path[0] != geom.West {
		t.Errorf("NextTarget() = %v, want [West]", path)
	}
}

func TestGreedyNoTodoReturnsNotOK(t *testing.T) {
	b := NewBase(greedyStrategy{})
	b.currentPos = geom.Position{}
	b.wallMap = map[geom.Position]bool{{Row: 0, Col: 0}: false}
	if _, ok := (greedyStrategy{}).NextTarget(b); ok {
		t.Fatal("expected no target when todo is empty")
	}
}
