package solver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jrbyrne/nonogram/internal/grid"
	"github.com/jrbyrne/nonogram/internal/scoring"
)

// ErrBadEdgeScoreLen is returned by LoadConfig when the "edgeScore"
// array in the configuration JSON is not exactly edgeScoreLen entries.
var ErrBadEdgeScoreLen = errors.New("solver: edgeScore must have exactly 5 entries")

// gridHalfEdge and gridSize fix the scoring network's input window: a
// (2*gridHalfEdge+1)^2 square of cells centered on the candidate guess.
const (
	gridHalfEdge = 2
	gridSize     = (2*gridHalfEdge + 1) * (2*gridHalfEdge + 1)
	edgeScoreLen = 5
)

// Config bundles the tunable coefficients driving dirty-queue priority
// (LineScore) and guess selection (guessScore): line statistics
// weights, a table biasing cells near the grid edge, and the scoring
// network itself. None of it is learned; it is loaded once from JSON
// and never mutated.
type Config struct {
	WiggleRoom   float64
	NumSegments  float64
	DoneSegments float64
	NumChanges   float64

	RowCoef float64
	ColCoef float64

	EdgeScore [edgeScoreLen]float64

	NetCoefficients [][]float64
	net             *scoring.Net

	MaxLines int
}

// configJSON mirrors Config's on-disk shape with EdgeScore as a slice,
// so LoadConfig can validate its length explicitly rather than letting
// encoding/json silently truncate or zero-pad a fixed-size array.
type configJSON struct {
	WiggleRoom   float64     `json:"wiggleRoom"`
	NumSegments  float64     `json:"numSegments"`
	DoneSegments float64     `json:"doneSegments"`
	NumChanges   float64     `json:"numChanges"`
	RowCoef      float64     `json:"rowCoef"`
	ColCoef      float64     `json:"colCoef"`
	EdgeScore    []float64   `json:"edgeScore"`
	Coef         [][]float64 `json:"coef"`
	MaxLines     int         `json:"maxLines"`
}

// LoadConfig decodes a Config from JSON and builds its scoring network.
// The network's input dimension is fixed at gridSize (the local window
// sampled around a candidate cell) and its final layer must output
// exactly 2 values (a crossed-score, solid-score pair).
func LoadConfig(r io.Reader) (*Config, error) {
	var raw configJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("solver: decode config: %w", err)
	}
	if raw.MaxLines <= 0 {
		return nil, fmt.Errorf("solver: config maxLines must be positive, got %d", raw.MaxLines)
	}
	if len(raw.EdgeScore) != edgeScoreLen {
		return nil, fmt.Errorf("%w: got %d", ErrBadEdgeScoreLen, len(raw.EdgeScore))
	}

	net, err := scoring.NewNet(raw.Coef, gridSize)
	if err != nil {
		return nil, fmt.Errorf("solver: config net: %w", err)
	}

	c := &Config{
		WiggleRoom:      raw.WiggleRoom,
		NumSegments:     raw.NumSegments,
		DoneSegments:    raw.DoneSegments,
		NumChanges:      raw.NumChanges,
		RowCoef:         raw.RowCoef,
		ColCoef:         raw.ColCoef,
		NetCoefficients: raw.Coef,
		net:             net,
		MaxLines:        raw.MaxLines,
	}
	copy(c.EdgeScore[:], raw.EdgeScore)
	return c, nil
}

// LineScore ranks a dirty line by how promising it is to infer next: a
// weighted sum of its wiggle room, segment count, done-segment count and
// pending notification count (numChanges), using the Config's
// coefficients. The signs of those coefficients decide which lines are
// favored.
func (c *Config) LineScore(stats LineStats) float64 {
	return c.WiggleRoom*float64(stats.WiggleRoom) +
		c.NumSegments*float64(stats.NumSegments) +
		c.DoneSegments*float64(stats.DoneSegments) +
		c.NumChanges*float64(stats.NumChanges)
}

// edgeWeight returns the EdgeScore entry for a coordinate's distance
// from the nearest border of the grid, or 0 if that distance falls
// outside the table (cells deep in the interior get no edge bias).
func (c *Config) edgeWeight(pos, extent int) float64 {
	d := pos
	if r := extent - 1 - pos; r < d {
		d = r
	}
	if d >= edgeScoreLen {
		return 0
	}
	return c.EdgeScore[d]
}

// guessScore combines the row and column LineScore (weighted by
// RowCoef/ColCoef) with the edge-distance bias for both axes and the
// scoring network's evaluation of the local window around (x,y),
// returning the combined score together with the cell value (SOLID or
// CROSSED) the network favors.
func (c *Config) guessScore(s *Solver, x, y int) (float64, grid.CellState) {
	base := c.RowCoef*c.LineScore(s.getLine(RowName(y)).Stats) +
		c.ColCoef*c.LineScore(s.getLine(ColumnName(x)).Stats)
	base += c.edgeWeight(x, s.width) + c.edgeWeight(y, s.height)

	out, err := c.net.Evaluate(s.gridAt(x, y))
	if err != nil {
		return base, grid.Solid
	}
	crossedScore, solidScore := out[0], out[1]

	val := grid.Solid
	netContribution := solidScore
	if crossedScore > solidScore {
		val = grid.Crossed
		netContribution = crossedScore
	}
	return base + netContribution, val
}
