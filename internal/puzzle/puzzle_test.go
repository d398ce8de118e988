package puzzle

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jrbyrne/nonogram/internal/solver"
)

func newTestConfig(t *testing.T) *solver.Config {
	t.Helper()
	cfg, err := solver.LoadConfig(strings.NewReader(testConfigJSON))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	return cfg
}

// testConfigJSON carries an all-zero 25-input, one-layer net: the
// scorer contributes nothing, so solving exercises pure inference plus
// the default guess order.
var testConfigJSON = `{
	"wiggleRoom": 1,
	"numSegments": 1,
	"rowCoef": 1,
	"colCoef": 1,
	"edgeScore": [0, 0, 0, 0, 0],
	"maxLines": 10000,
	"coef": [[` + zeros(26*2) + `]]
}`

func zeros(n int) string {
	s := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		if i > 0 {
			s = append(s, ',')
		}
		s = append(s, '0')
	}
	return string(s)
}

func TestParse(t *testing.T) {
	body := `{"rows": ["1", "3", "1"], "cols": ["1", "3", "1"]}`
	spec, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := [][]int{{1}, {3}, {1}}
	if !reflect.DeepEqual(spec.Rows, want) {
		t.Errorf("Rows = %v want %v", spec.Rows, want)
	}
	if !reflect.DeepEqual(spec.Cols, want) {
		t.Errorf("Cols = %v want %v", spec.Cols, want)
	}
}

func TestParseEmptyRunsAsNil(t *testing.T) {
	body := `{"rows": ["0", ""], "cols": ["2 1", "0"]}`
	spec, err := Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if spec.Rows[0] != nil || spec.Rows[1] != nil {
		t.Errorf("Rows = %v want both nil", spec.Rows)
	}
	if !reflect.DeepEqual(spec.Cols[0], []int{2, 1}) {
		t.Errorf("Cols[0] = %v want [2 1]", spec.Cols[0])
	}
}

func TestParseRejectsEmptyPuzzle(t *testing.T) {
	body := `{"rows": [], "cols": []}`
	if _, err := Parse(strings.NewReader(body)); err != ErrEmptyPuzzle {
		t.Fatalf("Parse err = %v want ErrEmptyPuzzle", err)
	}
}

func TestParseRejectsNonIntegerRun(t *testing.T) {
	body := `{"rows": ["x"], "cols": ["1"]}`
	if _, err := Parse(strings.NewReader(body)); err == nil {
		t.Fatal("expected error for non-integer run token")
	}
}

func TestResultString(t *testing.T) {
	r := Result{Path: "p.json", Solved: true, Width: 3, Height: 3}
	r.Stats.LineCount = 6
	r.Stats.WrongGuesses = 1
	r.Stats.MaxDepth = 2

	want := "p.json (solved) 3 3 6 1 2"
	if got := r.String(); got != want {
		t.Errorf("String() = %q want %q", got, want)
	}
}

func TestResultStringFailed(t *testing.T) {
	r := Result{Path: "p.json", Solved: false, Width: 1, Height: 1}
	want := "p.json (failed) 1 1 0 0 0"
	if got := r.String(); got != want {
		t.Errorf("String() = %q want %q", got, want)
	}
}

func TestSolveEndToEnd(t *testing.T) {
	spec := &Spec{Rows: [][]int{{1}, {3}, {1}}, Cols: [][]int{{1}, {3}, {1}}}
	result := Solve("cross.json", spec, newTestConfig(t), true)

	if !result.Solved {
		t.Fatal("Solve() result.Solved = false, want true")
	}
	if result.Width != 3 || result.Height != 3 {
		t.Errorf("dimensions = %d,%d want 3,3", result.Width, result.Height)
	}
	if result.Printed == "" {
		t.Error("Printed grid is empty, want --print output")
	}
}
