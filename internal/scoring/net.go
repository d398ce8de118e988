// Package scoring implements the fixed-topology feed-forward network
// used by the solver to bias which cell to guess next. Weights are
// supplied as configuration; the package never trains anything.
package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrNoLayers          = errors.New("scoring: net must have at least one layer")
	ErrBadCoefficientLen = errors.New("scoring: coefficient vector length is not (1+dim_in)*dim_out")
	ErrBadOutputDim      = errors.New("scoring: final layer output dimension must be 2")
	ErrInputLen          = errors.New("scoring: input length does not match net's dim_in")
)

// Layer is one ReLU layer: dim_out neurons, each a dot product over
// dim_in inputs minus a leading coefficient, clipped at zero.
// Coefficients are laid out per output neuron as
// [c_o, w_0, w_1, ..., w_{dim_in-1}], and are immutable after
// construction.
type Layer struct {
	coef          []float64
	dimIn, dimOut int
}

// NewLayer builds a Layer from a flat coefficient vector. The vector's
// length must be a positive multiple of (1+dimIn); the quotient is
// dim_out.
func NewLayer(dimIn int, coef []float64) (*Layer, error) {
	width := dimIn + 1
	if width <= 0 || len(coef) == 0 || len(coef)%width != 0 {
		return nil, fmt.Errorf("%w: dim_in=%d len=%d", ErrBadCoefficientLen, dimIn, len(coef))
	}
	c := make([]float64, len(coef))
	copy(c, coef)
	return &Layer{coef: c, dimIn: dimIn, dimOut: len(coef) / width}, nil
}

func (l *Layer) DimIn() int  { return l.dimIn }
func (l *Layer) DimOut() int { return l.dimOut }

// Evaluate produces a dim_out vector: for output neuron o,
// ReLU(sum_k w_{o,k}*in[k] - c_o), where c_o is the neuron's leading
// coefficient. Caller must supply exactly dim_in inputs.
func (l *Layer) Evaluate(in []float64) []float64 {
	out := make([]float64, l.dimOut)
	idx := 0
	for o := 0; o < l.dimOut; o++ {
		v := -l.coef[idx]
		idx++
		for k := 0; k < l.dimIn; k++ {
			v += l.coef[idx] * in[k]
			idx++
		}
		if v < 0 {
			v = 0
		}
		out[o] = v
	}
	return out
}

// Net is an ordered sequence of Layers, composed left to right. It is
// immutable and safe to share read-only across Solver instances.
type Net struct {
	layers []*Layer
}

// NewNet builds a Net from one flat coefficient vector per layer. dimIn
// is the input dimension of the first layer; each subsequent layer's
// dim_in is the previous layer's dim_out. The final layer's dim_out
// must be 2, matching the (s_crossed, s_solid) score pair the solver
// expects.
func NewNet(coefs [][]float64, dimIn int) (*Net, error) {
	if len(coefs) == 0 {
		return nil, ErrNoLayers
	}
	layers := make([]*Layer, 0, len(coefs))
	in := dimIn
	for i, c := range coefs {
		l, err := NewLayer(in, c)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers = append(layers, l)
		in = l.DimOut()
	}
	if layers[len(layers)-1].DimOut() != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadOutputDim, layers[len(layers)-1].DimOut())
	}
	return &Net{layers: layers}, nil
}

func (n *Net) DimIn() int  { return n.layers[0].DimIn() }
func (n *Net) DimOut() int { return n.layers[len(n.layers)-1].DimOut() }

// Evaluate composes every layer in order. For fixed coefficients and
// input it is deterministic: no hidden state survives between calls.
func (n *Net) Evaluate(in []float64) ([]float64, error) {
	if len(in) != n.DimIn() {
		return nil, fmt.Errorf("%w: have %d want %d", ErrInputLen, len(in), n.DimIn())
	}
	out := in
	for _, l := range n.layers {
		out = l.Evaluate(out)
	}
	return out, nil
}
