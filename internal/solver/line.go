package solver

import "github.com/jrbyrne/nonogram/internal/grid"

// LineStats summarizes a Line for dirty-queue priority scoring.
type LineStats struct {
	WiggleRoom   int // max over segments of (ub-lb+1-segLen)
	NumSegments  int
	DoneSegments int
	NumChanges   int // notifications received since the last infer()
}

// LineState is a checkpointable snapshot of a Line's analytic bounds.
type LineState struct {
	LB   []int
	UB   []int
	Done []bool
}

// Line owns the per-line analytic state (segment bounds, done-flags)
// for one row or column, and writes cells through its Slice. lb and ub
// (stored as ub raw, symmetric from the right — see ubAt()) persist
// across calls: each infer() only ever tightens them.
type Line struct {
	Name  LineName
	Stats LineStats

	lens  []int
	lb    []int
	ub    []int // raw leftmost-fit result on the reversed slice/lens
	done  []bool
	slice grid.Slice
}

// NewLine constructs a Line for the given segment lengths over the
// given Slice. lb/ub/done start at their widest possible bounds: no
// inference has happened yet.
func NewLine(name LineName, lens []int, slice grid.Slice) *Line {
	sum := 0
	for _, l := range lens {
		sum += l
	}
	l := &Line{
		Name:  name,
		lens:  append([]int(nil), lens...),
		lb:    make([]int, len(lens)),
		ub:    make([]int, len(lens)),
		done:  make([]bool, len(lens)),
		slice: slice,
	}
	l.Stats = LineStats{WiggleRoom: slice.Length() - sum, NumSegments: len(lens)}
	return l
}

func (l *Line) numSegments() int { return len(l.lens) }

// ubAt returns the index of the last cell of segment i's rightmost
// feasible placement, derived from the raw leftmost-fit performed on the
// reversed slice.
func (l *Line) ubAt(i int) int {
	n := len(l.ub)
	return l.slice.Length() - l.ub[n-1-i] - 1
}

// Infer runs the full fixpoint step for this line: leftmost fit,
// rightmost fit, segment propagation, strip propagation, in order.
// Returns false immediately on any infeasibility.
func (l *Line) Infer() bool {
	if l.numSegments() == 0 {
		l.slice.SetSegment(0, l.slice.Length(), grid.Crossed)
		return true
	}

	if !fitLeftMost(l.slice, l.lens, l.lb) {
		return false
	}

	lensReversed := make([]int, len(l.lens))
	for i, v := range l.lens {
		lensReversed[len(l.lens)-1-i] = v
	}
	if !fitLeftMost(l.slice.Reverse(), lensReversed, l.ub) {
		return false
	}

	l.updateStats()

	if !l.inferSegments() {
		return false
	}
	return l.inferStrips()
}

// updateStats recomputes wiggleRoom and doneSegments and resets
// numChanges to 0 after an inference pass.
func (l *Line) updateStats() {
	w := 0
	for i := range l.lb {
		if wi := l.ubAt(i) - l.lb[i] + 1 - l.lens[i]; wi > w {
			w = wi
		}
	}
	l.Stats.WiggleRoom = w

	done := 0
	for _, d := range l.done {
		if d {
			done++
		}
	}
	l.Stats.DoneSegments = done
	l.Stats.NumChanges = 0
}

// fitLeftMost greedily places segments left to right in slice,
// honoring the already-known lower bounds in lb and tightening them.
// Returns false when no feasible placement exists.
func fitLeftMost(slice grid.Slice, lens []int, lb []int) bool {
	cursor := 0
	i := 0

	for cursor < slice.Length() {
		lBound := slice.Length()
		if i < len(lens) {
			lBound = lb[i]
		}

		if lBound > cursor {
			nextSolid := slice.IndexOfNextSolid(cursor, lBound)
			if nextSolid == -1 {
				cursor = lBound
				continue
			}

			stripLen := slice.StripLength(nextSolid)
			for {
				i--
				if i < 0 || lens[i] >= stripLen {
					break
				}
			}
			if i < 0 {
				return false
			}

			cursor = lb[i]
			lb[i] = nextSolid + stripLen - lens[i]
			continue
		}

		hole := slice.FindHoleStartingAt(cursor, lens[i])
		if hole == -1 {
			return false
		}

		skippedSolid := false
		for hole+lens[i] < slice.Length() && slice.Get(hole+lens[i]) == grid.Solid {
			if slice.Get(hole) == grid.Solid {
				skippedSolid = true
			}
			hole++
		}
		lb[i] = hole
		if !skippedSolid {
			cursor = hole + lens[i] + 1
			i++
		}
	}

	return i >= len(lens)
}

// inferSegments tightens crossed gaps before each segment and the
// solid overlap each segment's feasible span guarantees, marking a
// segment done once its span collapses to exactly its length.
func (l *Line) inferSegments() bool {
	n := l.numSegments()
	for i := 0; i < n; i++ {
		lo, up := l.lb[i], l.ubAt(i)
		prevUp := -1
		if i > 0 {
			prevUp = l.ubAt(i - 1)
		}

		if lo+l.lens[i]-1 > up {
			return false
		}
		if lo > prevUp+1 {
			l.slice.SetSegment(prevUp+1, lo, grid.Crossed)
		}
		if l.done[i] {
			continue
		}
		if up-l.lens[i]+1 <= lo+l.lens[i]-1 {
			l.slice.SetSegment(up-l.lens[i]+1, lo+l.lens[i], grid.Solid)
		}
		if up-lo+1 == l.lens[i] {
			l.done[i] = true
		}
	}
	if last := l.ubAt(n - 1); last+1 < l.slice.Length() {
		l.slice.SetSegment(last+1, l.slice.Length(), grid.Crossed)
	}
	return true
}

// collidingSegments returns the contiguous [first, second) range of
// segment indices whose feasible span covers the closed interval
// [start, end].
func (l *Line) collidingSegments(start, end int) (int, int) {
	first, second := 0, 0
	found := false
	for i := 0; i < l.numSegments(); i++ {
		if l.ubAt(i) < end {
			continue
		}
		if l.lb[i] <= start {
			if !found {
				found = true
				first = i
			}
			second = i + 1
		} else if found {
			break
		}
	}
	return first, second
}

// inferStrips scans strip by strip, tightening EMPTY strips that no
// colliding segment can fit and extending/capping SOLID strips that
// every colliding segment must overrun or that uniquely identify a
// segment.
func (l *Line) inferStrips() bool {
	length := l.slice.Length()
	stripLen := 0

	for i := 0; i < length; i += stripLen {
		stripLen = l.slice.StripLength(i)
		if i == 0 || i+stripLen == length {
			continue
		}

		switch l.slice.Get(i) {
		case grid.Empty:
			if l.slice.Get(i-1) != grid.Crossed || l.slice.Get(i+stripLen) != grid.Crossed {
				continue
			}
			first, second := l.collidingSegments(i, i+stripLen-1)
			if first == second {
				continue
			}
			minLen := l.lens[first]
			for j := first; j < second; j++ {
				if l.lens[j] < minLen {
					minLen = l.lens[j]
				}
			}
			if minLen <= stripLen {
				continue
			}
			l.slice.SetSegment(i, i+stripLen, grid.Crossed)

		case grid.Solid:
			first, second := l.collidingSegments(i, i+stripLen-1)
			if first == second {
				continue
			}
			if second-first == 1 && l.done[first] {
				continue
			}
			minLen, maxLen := l.lens[first], l.lens[first]
			for j := first; j < second; j++ {
				if l.lens[j] < minLen {
					minLen = l.lens[j]
				}
				if l.lens[j] > maxLen {
					maxLen = l.lens[j]
				}
			}

			for j := i + stripLen; j < i+minLen && j < length; j++ {
				s := l.slice.Get(j)
				if s == grid.Solid {
					break
				}
				if s == grid.Empty {
					continue
				}
				if l.slice.SetSegment(j-minLen, i, grid.Solid) > 0 {
					stripLen += i - (j - minLen)
					i = j - minLen
				}
				break
			}
			for j := i - 1; j >= i+stripLen-minLen && j >= 0; j-- {
				s := l.slice.Get(j)
				if s == grid.Solid {
					break
				}
				if s == grid.Empty {
					continue
				}
				if l.slice.SetSegment(i+stripLen, j+minLen+1, grid.Solid) > 0 {
					stripLen += j + minLen + 1 - (i + stripLen)
				}
				break
			}

			if maxLen == stripLen {
				l.slice.SetSegment(i-1, i, grid.Crossed)
				l.slice.SetSegment(i+stripLen, i+stripLen+1, grid.Crossed)
			}
		}
	}
	return true
}

// GetState snapshots lb/ub/done for a checkpoint.
func (l *Line) GetState() LineState {
	return LineState{
		LB:   append([]int(nil), l.lb...),
		UB:   append([]int(nil), l.ub...),
		Done: append([]bool(nil), l.done...),
	}
}

// SetState restores a previously captured snapshot.
func (l *Line) SetState(s LineState) {
	l.lb = append([]int(nil), s.LB...)
	l.ub = append([]int(nil), s.UB...)
	l.done = append([]bool(nil), s.Done...)
}
