package planner

import (
	"testing"

	"github.com/elektrokombinacija/cleanbot-sim/internal/geom"
)

func TestDFSPushesSensedTodoNeighbors(t *testing.T) {
	s := &dfsStrategy{pushed: make(map[geom.Position]bool)}
	b := NewBase(s)
	b.currentPos = geom.Position{}
	b.wallMap = map[geom.Position]bool{
		{Row: 0, Col: 0}: false,
		{Row: 0, Col: 1}: false,
	}
	b.todo = map[geom.Position]bool{
		{Row: 0, Col: 1}: true,
	}

	path, ok := s.NextTarget(b)
	if !ok {
		t.Fatal("expected a target")
	}
	if len(path) != 1 || path[0] != geom.East {
		t.Errorf("NextTarget() = %v, want [East]", path)
	}
	if len(s.stack) != 1 {
		t.Errorf("stack length = %d, want 1", len(s.stack))
	}
}

func TestDFSPopsInvalidatedTopAndFallsBack(t *testing.T) {
	s := &dfsStrategy{pushed: make(map[geom.Position]bool)}
	b := NewBase(s)
	b.currentPos = geom.Position{}
	b.wallMap = map[geom.Position]bool{
		{Row: 0, Col: 0}:  false,
		{Row: 0, Col: 1}:  false,
		{Row: 0, Col: -1}: false,
	}
	b.todo = map[geom.Position]bool{
		{Row: 0, Col: 1}:  true,
		{Row: 0, Col: -1}: true,
	}

	// Prime the stack with both neighbors, then invalidate the one that
	// would be pushed last (stack top) by removing it from todo.
	if _, ok := s.NextTarget(b); !ok {
		t.Fatal("expected an initial target")
	}
	delete(b.todo, geom.Position{Row: 0, Col: -1})

	path, ok := s.NextTarget(b)
	if !ok {
		t.Fatal("expected fallback target after popping the invalidated top")
	}
	if len(path) != 1 || path[0] != geom.East {
		t.Errorf("NextTarget() after fallback = %v, want [East]", path)
	}
}
