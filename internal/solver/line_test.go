package solver

import (
	"testing"

	"github.com/jrbyrne/nonogram/internal/grid"
)

func TestLineInferEmptyFillsCrossed(t *testing.T) {
	g := grid.New(4, 1)
	l := NewLine(RowName(0), nil, grid.NewRowSlice(g, 0))

	if !l.Infer() {
		t.Fatal("Infer() = false, want true")
	}
	for x := 0; x < 4; x++ {
		if got := g.Get(x, 0); got != grid.Crossed {
			t.Errorf("Get(%d,0) = %v want Crossed", x, got)
		}
	}
}

func TestLineInferForcesOverlap(t *testing.T) {
	// A run of 2 in a line of length 3 must cover the middle cell
	// regardless of which end it starts from.
	g := grid.New(3, 1)
	l := NewLine(RowName(0), []int{2}, grid.NewRowSlice(g, 0))

	if !l.Infer() {
		t.Fatal("Infer() = false, want true")
	}
	if got := g.Get(1, 0); got != grid.Solid {
		t.Errorf("Get(1,0) = %v want Solid (forced overlap)", got)
	}
	if got := g.Get(0, 0); got != grid.Empty {
		t.Errorf("Get(0,0) = %v want Empty (not yet determined)", got)
	}
}

func TestLineInferFullLineSingleSegment(t *testing.T) {
	g := grid.New(5, 1)
	l := NewLine(RowName(0), []int{5}, grid.NewRowSlice(g, 0))

	if !l.Infer() {
		t.Fatal("Infer() = false, want true")
	}
	for x := 0; x < 5; x++ {
		if got := g.Get(x, 0); got != grid.Solid {
			t.Errorf("Get(%d,0) = %v want Solid", x, got)
		}
	}
	if !l.done[0] {
		t.Error("single full-length segment should be marked done")
	}
}

func TestLineInferDegenerateSingleCell(t *testing.T) {
	g := grid.New(1, 1)
	l := NewLine(RowName(0), []int{1}, grid.NewRowSlice(g, 0))

	if !l.Infer() {
		t.Fatal("Infer() = false, want true")
	}
	if got := g.Get(0, 0); got != grid.Solid {
		t.Errorf("Get(0,0) = %v want Solid", got)
	}
}

func TestLineInferAdjacentEqualSegments(t *testing.T) {
	// Two runs of length 1 in a line of length 3 forces a crossed cell
	// between them (positions 0 and 2 solid, 1 crossed) since they
	// cannot touch.
	g := grid.New(3, 1)
	l := NewLine(RowName(0), []int{1, 1}, grid.NewRowSlice(g, 0))

	if !l.Infer() {
		t.Fatal("Infer() = false, want true")
	}
	if got := g.Get(0, 0); got != grid.Solid {
		t.Errorf("Get(0,0) = %v want Solid", got)
	}
	if got := g.Get(2, 0); got != grid.Solid {
		t.Errorf("Get(2,0) = %v want Solid", got)
	}
	if got := g.Get(1, 0); got != grid.Crossed {
		t.Errorf("Get(1,0) = %v want Crossed", got)
	}
}

func TestLineStateRoundTrip(t *testing.T) {
	g := grid.New(5, 1)
	l := NewLine(RowName(0), []int{2, 1}, grid.NewRowSlice(g, 0))
	l.Infer()

	snap := l.GetState()
	l.lb[0] = 999
	l.SetState(snap)

	if l.lb[0] == 999 {
		t.Fatal("SetState did not restore lb")
	}
	restored := l.GetState()
	for i := range snap.LB {
		if snap.LB[i] != restored.LB[i] {
			t.Errorf("LB[%d] = %d want %d", i, restored.LB[i], snap.LB[i])
		}
	}
}
