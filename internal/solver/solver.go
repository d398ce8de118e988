// Package solver implements the nonogram constraint-propagation kernel
// and the depth-first search that sits on top of it.
package solver

import (
	"math"
	"sort"

	"github.com/jrbyrne/nonogram/internal/grid"
)

// Direction distinguishes a row line from a column line. The zero
// value, DirEmpty, marks "no current line" and is used by Solver to
// suppress re-queueing the line presently being inferred.
type Direction int

const (
	DirEmpty Direction = iota
	DirRow
	DirColumn
)

// LineName identifies a row or column line; it is comparable and usable
// directly as a map key.
type LineName struct {
	Dir   Direction
	Index int
}

func RowName(i int) LineName    { return LineName{Dir: DirRow, Index: i} }
func ColumnName(i int) LineName { return LineName{Dir: DirColumn, Index: i} }

// Guess is a single branching decision: set cell (X,Y) to Val.
type Guess struct {
	X, Y int
	Val  grid.CellState
}

// EmptyGuess is the sentinel meaning "no guess pending" / "nothing left
// to guess".
func EmptyGuess() Guess { return Guess{X: -1, Y: -1, Val: grid.Empty} }

func (g Guess) IsEmpty() bool { return g.X == -1 && g.Y == -1 && g.Val == grid.Empty }

// Stats tallies solver-wide progress, reported in the per-puzzle result
// line.
type Stats struct {
	LineCount    int
	WrongGuesses int
	MaxDepth     int
}

// checkpoint is the minimal record pushState needs to restore a Solver
// exactly: the grid, the pending guess, and every line's bounds.
type checkpoint struct {
	cells   []grid.CellState
	guessed Guess
	lines   []LineState
}

// Solver owns the grid, the Lines derived from the puzzle's row/column
// constraints, the dirty work queue, the checkpoint stack, and the
// search loop. It is not safe for concurrent use; a single Solver is
// meant to be driven start-to-finish by one goroutine.
type Solver struct {
	config *Config

	width, height int
	grid          *grid.Grid
	lines         []*Line // row i at i, column j at height+j

	dirty   []LineName
	states  []checkpoint
	guessed Guess
	failed  bool

	// currentLine tracks the line presently being inferred so that
	// writes originating from its own infer() don't re-mark it dirty.
	currentLine LineName

	Stats Stats
}

// New builds a Solver for the given row and column run-length
// constraints. rows has one entry per grid row (height = len(rows)),
// cols one per grid column (width = len(cols)).
func New(config *Config, rows, cols [][]int) *Solver {
	width, height := len(cols), len(rows)
	s := &Solver{
		config: config,
		width:  width,
		height: height,
		grid:   grid.New(width, height),
		lines:  make([]*Line, 0, width+height),
	}

	for i := 0; i < height; i++ {
		name := RowName(i)
		s.lines = append(s.lines, NewLine(name, rows[i], grid.NewRowSlice(s, i)))
		s.dirty = append(s.dirty, name)
	}
	for j := 0; j < width; j++ {
		name := ColumnName(j)
		s.lines = append(s.lines, NewLine(name, cols[j], grid.NewColumnSlice(s, j)))
		s.dirty = append(s.dirty, name)
	}
	return s
}

// Solver satisfies grid.Accessor so that every Line's Slice writes
// through its contradiction and dirty-marking logic instead of poking
// the grid directly.
func (s *Solver) Width() int  { return s.width }
func (s *Solver) Height() int { return s.height }

func (s *Solver) Get(x, y int) grid.CellState { return s.grid.Get(x, y) }

// Set is a no-op when val matches the current cell, raises the
// contradiction flag (and performs no write) when val differs from a
// non-EMPTY cell, and otherwise writes val and marks the perpendicular
// line dirty — plus the line matching the write's own orientation,
// unless that's the line currently running infer().
func (s *Solver) Set(x, y int, val grid.CellState) {
	cur := s.grid.Get(x, y)
	if val == cur {
		return
	}
	if cur != grid.Empty {
		s.failed = true
		return
	}

	s.grid.Set(x, y, val)
	if s.currentLine.Dir != DirRow {
		s.markDirty(RowName(y))
	}
	if s.currentLine.Dir != DirColumn {
		s.markDirty(ColumnName(x))
	}
}

func (s *Solver) getLine(name LineName) *Line {
	idx := name.Index
	if name.Dir == DirColumn {
		idx += s.height
	}
	return s.lines[idx]
}

// markDirty appends n to the dirty list if it isn't already present and
// counts the notification in that line's NumChanges.
func (s *Solver) markDirty(n LineName) {
	s.getLine(n).Stats.NumChanges++
	for _, d := range s.dirty {
		if d == n {
			return
		}
	}
	s.dirty = append(s.dirty, n)
}

// getDirty sorts the dirty list ascending by LineScore and pops the
// highest-scoring entry.
func (s *Solver) getDirty() LineName {
	sort.SliceStable(s.dirty, func(i, j int) bool {
		si := s.config.LineScore(s.getLine(s.dirty[i]).Stats)
		sj := s.config.LineScore(s.getLine(s.dirty[j]).Stats)
		return si < sj
	})
	n := s.dirty[len(s.dirty)-1]
	s.dirty = s.dirty[:len(s.dirty)-1]
	return n
}

// infer repeatedly pops the highest-priority dirty line and runs its
// Infer, stopping on contradiction, line-level infeasibility, or
// exhaustion of config.MaxLines.
func (s *Solver) infer() bool {
	for len(s.dirty) > 0 {
		name := s.getDirty()
		s.currentLine = name
		ok := s.getLine(name).Infer()
		s.currentLine = LineName{}
		if !ok {
			return false
		}
		s.Stats.LineCount++
		if s.failed || s.Stats.LineCount >= s.config.MaxLines {
			return false
		}
	}
	return true
}

// pushState snapshots the grid, the pending guess, and every line's
// bounds onto the checkpoint stack.
func (s *Solver) pushState() {
	cp := checkpoint{
		cells:   s.grid.Snapshot(),
		guessed: s.guessed,
		lines:   make([]LineState, len(s.lines)),
	}
	for i, l := range s.lines {
		cp.lines[i] = l.GetState()
	}
	s.states = append(s.states, cp)
	if s.Stats.MaxDepth < len(s.states) {
		s.Stats.MaxDepth = len(s.states)
	}
}

// popState restores the most recent checkpoint and clears the dirty
// queue; the caller re-seeds work by flipping the guess.
func (s *Solver) popState() {
	cp := s.states[len(s.states)-1]
	s.states = s.states[:len(s.states)-1]

	s.grid.Restore(cp.cells)
	s.guessed = cp.guessed
	for i, l := range s.lines {
		l.SetState(cp.lines[i])
	}
	s.dirty = s.dirty[:0]
}

// gridAt samples the local window around (x,y) used as the scoring
// network's input: SOLID=+1, CROSSED=-1, EMPTY=0, out-of-bounds=-1.
func (s *Solver) gridAt(x, y int) []float64 {
	out := make([]float64, 0, gridSize)
	for i := x - gridHalfEdge; i <= x+gridHalfEdge; i++ {
		for j := y - gridHalfEdge; j <= y+gridHalfEdge; j++ {
			if i < 0 || i >= s.width || j < 0 || j >= s.height {
				out = append(out, -1)
				continue
			}
			switch s.Get(i, j) {
			case grid.Solid:
				out = append(out, 1)
			case grid.Crossed:
				out = append(out, -1)
			default:
				out = append(out, 0)
			}
		}
	}
	return out
}

// guess scans every EMPTY cell and returns the one maximizing
// config.guessScore, or EmptyGuess() if none remain.
func (s *Solver) guess() Guess {
	best := EmptyGuess()
	maxScore := math.Inf(-1)

	for x := 0; x < s.width; x++ {
		for y := 0; y < s.height; y++ {
			if s.Get(x, y) != grid.Empty {
				continue
			}
			score, val := s.config.guessScore(s, x, y)
			if score > maxScore {
				best = Guess{X: x, Y: y, Val: val}
				maxScore = score
			}
		}
	}
	return best
}

// Solve runs the top-level loop: infer to a fixpoint, backtrack on
// contradiction or exhaustion, otherwise guess and recurse via the
// checkpoint stack. Returns false if the puzzle has no solution or
// config.MaxLines is exhausted with no checkpoint left to retry.
func (s *Solver) Solve() bool {
	for {
		if !s.infer() || s.failed {
			if len(s.states) == 0 {
				return false
			}
			s.failed = false
			s.popState()

			flipped := grid.Solid
			if s.guessed.Val == grid.Solid {
				flipped = grid.Crossed
			}
			s.Set(s.guessed.X, s.guessed.Y, flipped)
			s.Stats.WrongGuesses++
			s.guessed = EmptyGuess()
			continue
		}

		g := s.guess()
		if g.IsEmpty() {
			return true
		}
		s.guessed = g
		s.pushState()
		s.Set(g.X, g.Y, g.Val)
	}
}

// Format renders the grid with the ' '/'#'/'.' convention, one line per
// row.
func (s *Solver) Format() string { return s.grid.Format() }
