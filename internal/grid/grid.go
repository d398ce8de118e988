// Package grid implements the nonogram cell grid and the strided Slice
// view used by line inference to read and write one row or column at a
// time without knowing whether it is iterating forwards or backwards.
package grid

import "strings"

// CellState is the three-valued state of a single cell. EMPTY is the
// initial, unknown value; SOLID and CROSSED are terminal and mutually
// exclusive.
type CellState int

const (
	Empty CellState = iota
	Solid
	Crossed
)

// Rune renders a cell using the ' '/'#'/'.' convention from the puzzle
// output format.
func (c CellState) Rune() rune {
	switch c {
	case Solid:
		return '#'
	case Crossed:
		return '.'
	default:
		return ' '
	}
}

// Accessor is the minimal read/write surface a Slice needs. Grid
// satisfies it directly for standalone use; Solver satisfies it too,
// routing every write through its contradiction and dirty-marking
// logic. A Slice never owns cells — it only ever borrows an Accessor.
type Accessor interface {
	Width() int
	Height() int
	Get(x, y int) CellState
	Set(x, y int, v CellState)
}

// Grid is the width×height dense array of CellState that is the single
// source of truth for puzzle state. Slices alias into it.
type Grid struct {
	width, height int
	cells         []CellState
}

// New creates an all-EMPTY grid of the given dimensions.
func New(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]CellState, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) Get(x, y int) CellState {
	return g.cells[x+y*g.width]
}

// Set performs an unconditional write with no validation. Solver uses
// this for the raw write once it has already applied the contradiction
// check; direct callers (tests exercising Slice/Grid in isolation) may
// also use it as a plain Accessor.
func (g *Grid) Set(x, y int, v CellState) {
	g.cells[x+y*g.width] = v
}

// Snapshot returns a copy of the backing array, suitable for a
// checkpoint record.
func (g *Grid) Snapshot() []CellState {
	out := make([]CellState, len(g.cells))
	copy(out, g.cells)
	return out
}

// Restore replaces the backing array with a previously captured
// snapshot. The slice is copied, not aliased.
func (g *Grid) Restore(cells []CellState) {
	copy(g.cells, cells)
}

// Format renders the grid as one line per row using the ' '/'#'/'.'
// convention, for the CLI's --print flag.
func (g *Grid) Format() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.Get(x, y).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Slice is a strided, possibly-reversed view over an Accessor's cells.
// Constructing one from a row/column derives step=1, length=width for a
// row and step=width, length=height for a column; all Slice operations
// are defined purely in terms of get(i)/set(i), so they behave
// identically whether or not the Slice has been reversed.
type Slice struct {
	a      Accessor
	origin int
	step   int
	length int
}

// NewRowSlice returns the Slice for row y of a.
func NewRowSlice(a Accessor, y int) Slice {
	return Slice{a: a, origin: y * a.Width(), step: 1, length: a.Width()}
}

// NewColumnSlice returns the Slice for column x of a.
func NewColumnSlice(a Accessor, x int) Slice {
	return Slice{a: a, origin: x, step: a.Width(), length: a.Height()}
}

func (s Slice) Length() int { return s.length }

func (s Slice) xy(offset int) (int, int) {
	w := s.a.Width()
	return offset % w, offset / w
}

func (s Slice) Get(i int) CellState {
	x, y := s.xy(s.origin + s.step*i)
	return s.a.Get(x, y)
}

func (s Slice) Set(i int, v CellState) {
	x, y := s.xy(s.origin + s.step*i)
	s.a.Set(x, y, v)
}

// Reverse returns a new Slice viewing the same cells in the opposite
// order.
func (s Slice) Reverse() Slice {
	return Slice{a: s.a, origin: s.origin + s.step*(s.length-1), step: -s.step, length: s.length}
}

// FindHoleStartingAt returns the smallest i >= start such that cells
// [i, i+length) contain no CROSSED cell, or -1 if none exists.
func (s Slice) FindHoleStartingAt(start, length int) int {
	found := 0
	for i := start; i < s.length; i++ {
		if s.Get(i) == Crossed {
			found = 0
			continue
		}
		found++
		if found >= length {
			return i - found + 1
		}
	}
	return -1
}

// StripLength returns the length of the maximal run of cells sharing
// get(i)'s value, starting at i.
func (s Slice) StripLength(i int) int {
	val := s.Get(i)
	n := 0
	for ; i < s.length; i++ {
		if s.Get(i) != val {
			return n
		}
		n++
	}
	return n
}

// IndexOfNextSolid returns the first SOLID index in [start, bound), or
// -1 if there is none.
func (s Slice) IndexOfNextSolid(start, bound int) int {
	for i := start; i < bound; i++ {
		if s.Get(i) == Solid {
			return i
		}
	}
	return -1
}

// SetSegment writes v to every cell in [i, j) that differs from v,
// returning how many cells changed.
func (s Slice) SetSegment(i, j int, v CellState) int {
	changed := 0
	for n := i; n < j; n++ {
		if s.Get(n) != v {
			s.Set(n, v)
			changed++
		}
	}
	return changed
}
