// Package puzzle parses nonogram puzzle files and drives a single
// solve from a parsed puzzle plus a solver configuration.
package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jrbyrne/nonogram/internal/solver"
)

var (
	ErrEmptyPuzzle    = errors.New("puzzle: rows and cols must both be non-empty")
	ErrInvalidRunList = errors.New("puzzle: run-length list contains a non-integer token")
)

// file is the on-disk JSON shape: one whitespace-separated run-length
// list per row and per column.
type file struct {
	Rows []string `json:"rows"`
	Cols []string `json:"cols"`
}

// Spec is a parsed puzzle, ready to hand to solver.New.
type Spec struct {
	Rows [][]int
	Cols [][]int
}

// Parse reads a puzzle file's JSON body and converts each run-length
// string into a []int, splitting on whitespace. An empty string or the
// single token "0" means the row or column has no runs.
func Parse(r io.Reader) (*Spec, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("puzzle: decode: %w", err)
	}
	if len(f.Rows) == 0 || len(f.Cols) == 0 {
		return nil, ErrEmptyPuzzle
	}

	rows, err := parseRunLists(f.Rows)
	if err != nil {
		return nil, fmt.Errorf("puzzle: rows: %w", err)
	}
	cols, err := parseRunLists(f.Cols)
	if err != nil {
		return nil, fmt.Errorf("puzzle: cols: %w", err)
	}
	return &Spec{Rows: rows, Cols: cols}, nil
}

func parseRunLists(lines []string) ([][]int, error) {
	out := make([][]int, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || (len(fields) == 1 && fields[0] == "0") {
			out[i] = nil
			continue
		}
		runs := make([]int, len(fields))
		for j, tok := range fields {
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidRunList, tok)
			}
			runs[j] = n
		}
		out[i] = runs
	}
	return out, nil
}

// Load opens path and parses its contents.
func Load(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("puzzle: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Result is the outcome of solving one puzzle file, carrying enough of
// solver.Stats to produce the per-puzzle output line.
type Result struct {
	Path    string
	Solved  bool
	Width   int
	Height  int
	Stats   solver.Stats
	Printed string // populated when --print is set
}

// String renders the result line:
// "<filename> (solved|failed) <width> <height> <lineCount> <wrongGuesses> <maxDepth>".
func (r Result) String() string {
	status := "failed"
	if r.Solved {
		status = "solved"
	}
	return fmt.Sprintf("%s (%s) %d %d %d %d %d",
		r.Path, status, r.Width, r.Height,
		r.Stats.LineCount, r.Stats.WrongGuesses, r.Stats.MaxDepth)
}

// Solve runs a single puzzle end to end: builds a Solver from spec and
// config, runs it, and returns the Result.
func Solve(path string, spec *Spec, config *solver.Config, print bool) Result {
	s := solver.New(config, spec.Rows, spec.Cols)
	solved := s.Solve()

	r := Result{
		Path:   path,
		Solved: solved,
		Width:  s.Width(),
		Height: s.Height(),
		Stats:  s.Stats,
	}
	if print {
		r.Printed = s.Format()
	}
	return r
}
