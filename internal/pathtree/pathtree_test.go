package pathtree

import (
	"testing"

	"github.com/elektrokombinacija/cleanbot-sim/internal/geom"
)

func TestInsertRootTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second InsertRoot")
		}
	}()
	tree := New()
	tree.InsertRoot(geom.Position{})
	tree.InsertRoot(geom.Position{})
}

func TestInsertChildRejectsVisited(t *testing.T) {
	tree := New()
	root := tree.InsertRoot(geom.Position{Row: 0, Col: 0})
	child, ok := tree.InsertChild(root, geom.East, geom.Position{Row: 0, Col: 1}, false)
	if !ok {
		t.Fatal("expected first insert to succeed")
	}
	if _, ok := tree.InsertChild(root, geom.East, geom.Position{Row: 0, Col: 1}, false); ok {
		t.Fatal("expected re-insert of visited position to fail")
	}
	if tree.Depth(child) != 1 {
		t.Errorf("Depth(child) = %d, want 1", tree.Depth(child))
	}
}

func TestDepthAndScoreInvariant(t *testing.T) {
	tree := New()
	root := tree.InsertRoot(geom.Position{})
	a, _ := tree.InsertChild(root, geom.North, geom.Position{Row: -1}, true)
	b, _ := tree.InsertChild(a, geom.North, geom.Position{Row: -2}, false)

	if tree.Depth(a) != tree.Depth(root)+1 {
		t.Error("depth(a) != depth(root)+1")
	}
	if tree.Depth(b) != tree.Depth(a)+1 {
		t.Error("depth(b) != depth(a)+1")
	}
	if tree.Score(a) != tree.Score(root)+1 {
		t.Error("scoring child did not increment score")
	}
	if tree.Score(b) != tree.Score(a) {
		t.Error("non-scoring child changed score")
	}
}

func TestPathFromRoot(t *testing.T) {
	tree := New()
	root := tree.InsertRoot(geom.Position{})
	a, _ := tree.InsertChild(root, geom.East, geom.Position{Col: 1}, false)
	b, _ := tree.InsertChild(a, geom.South, geom.Position{Row: 1, Col: 1}, false)

	path := tree.PathFromRoot(b)
	want := []geom.Direction{geom.East, geom.South}
	if len(path) != len(want) {
		t.Fatalf("path length = %d, want %d", len(path), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
	if len(tree.PathFromRoot(root)) != 0 {
		t.Error("root's path should be empty")
	}
}

func TestBestEndByScoreTieBreaksFirstInserted(t *testing.T) {
	tree := New()
	root := tree.InsertRoot(geom.Position{})
	a, _ := tree.InsertChild(root, geom.North, geom.Position{Row: -1}, false)
	b, _ := tree.InsertChild(root, geom.East, geom.Position{Col: 1}, false)

	tree.RegisterEnd(a)
	tree.RegisterEnd(b)

	best, ok := tree.BestEndByScore()
	if !ok {
		t.Fatal("expected a best end")
	}
	if best != a {
		t.Errorf("expected tie to favor first-registered end %v, got %v", a, best)
	}
}

func TestBestEndByScoreNoneRegistered(t *testing.T) {
	tree := New()
	tree.InsertRoot(geom.Position{})
	if _, ok := tree.BestEndByScore(); ok {
		t.Error("expected ok=false with no registered ends")
	}
}

func TestMustNodeOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range node id")
		}
	}()
	tree := New()
	tree.InsertRoot(geom.Position{})
	tree.Depth(NodeID(99))
}
