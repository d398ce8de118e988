package solver

import (
	"testing"

	"github.com/jrbyrne/nonogram/internal/grid"
	"github.com/jrbyrne/nonogram/internal/scoring"
)

// newTestConfig builds a Config with a stubbed all-zero Net, matching
// the design note that the scorer affects only search order, not
// correctness: every satisfiable puzzle should still solve.
func newTestConfig(t *testing.T, maxLines int) *Config {
	t.Helper()
	coef := make([]float64, (gridSize+1)*2)
	net, err := scoring.NewNet([][]float64{coef}, gridSize)
	if err != nil {
		t.Fatalf("scoring.NewNet: %v", err)
	}
	return &Config{
		WiggleRoom:  1,
		NumSegments: 1,
		RowCoef:     1,
		ColCoef:     1,
		net:         net,
		MaxLines:    maxLines,
	}
}

func TestSolveDegenerate1x1Solid(t *testing.T) {
	s := New(newTestConfig(t, 1000), [][]int{{1}}, [][]int{{1}})
	if !s.Solve() {
		t.Fatal("Solve() = false, want true")
	}
	if got := s.Get(0, 0); got != grid.Solid {
		t.Errorf("Get(0,0) = %v want Solid", got)
	}
	if s.Stats.LineCount < 2 {
		t.Errorf("LineCount = %d want >= 2", s.Stats.LineCount)
	}
	if s.Stats.WrongGuesses != 0 {
		t.Errorf("WrongGuesses = %d want 0", s.Stats.WrongGuesses)
	}
}

func TestSolveDegenerate1x1Empty(t *testing.T) {
	s := New(newTestConfig(t, 1000), [][]int{nil}, [][]int{nil})
	if !s.Solve() {
		t.Fatal("Solve() = false, want true")
	}
	if got := s.Get(0, 0); got != grid.Crossed {
		t.Errorf("Get(0,0) = %v want Crossed", got)
	}
}

func TestSolveCross3x3(t *testing.T) {
	rows := [][]int{{1}, {3}, {1}}
	cols := [][]int{{1}, {3}, {1}}
	s := New(newTestConfig(t, 1000), rows, cols)
	if !s.Solve() {
		t.Fatal("Solve() = false, want true")
	}

	want := [3][3]grid.CellState{
		{grid.Crossed, grid.Solid, grid.Crossed},
		{grid.Solid, grid.Solid, grid.Solid},
		{grid.Crossed, grid.Solid, grid.Crossed},
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := s.Get(x, y); got != want[y][x] {
				t.Errorf("Get(%d,%d) = %v want %v", x, y, got, want[y][x])
			}
		}
	}
}

func TestSolveUnsolvable(t *testing.T) {
	rows := [][]int{{2}}
	cols := [][]int{{1}, {1}, {1}}
	s := New(newTestConfig(t, 1000), rows, cols)
	if s.Solve() {
		t.Fatal("Solve() = true, want false (infeasible)")
	}
}

func TestCheckpointRoundTrip(t *testing.T) {
	s := New(newTestConfig(t, 1000), [][]int{{1, 1}}, [][]int{{1}, nil, {1}})
	before := s.grid.Snapshot()

	s.pushState()
	s.Set(1, 0, grid.Solid)
	s.popState()

	after := s.grid.Snapshot()
	if len(before) != len(after) {
		t.Fatalf("snapshot length changed: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("cell %d = %v after round trip, want %v", i, after[i], before[i])
		}
	}
}

func TestSetNoOpAndContradiction(t *testing.T) {
	s := New(newTestConfig(t, 1000), [][]int{nil}, [][]int{nil})
	s.Set(0, 0, grid.Crossed)
	if s.failed {
		t.Fatal("first write should not fail")
	}
	s.Set(0, 0, grid.Crossed)
	if s.failed {
		t.Fatal("matching no-op write should not fail")
	}
	s.Set(0, 0, grid.Solid)
	if !s.failed {
		t.Fatal("differing write to a non-EMPTY cell should set the contradiction flag")
	}
}
