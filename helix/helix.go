// Package helix implements the minimum-phase helix filter (C5): a
// causal N-D recursive filter described by a short lag table, with its
// transpose, causal inverse, and inverse-transpose operators, plus an
// experimental Wilson-Burg style refitting routine.
package helix

import (
	"github.com/andewx/corefft/cerr"
)

// Lag is one non-zero tap of the filter: a coefficient A applied to
// the sample at componentwise offset (L1, L2[, L3]) "in the past"
// along the scanning order (dimension-major, innermost axis first).
type Lag struct {
	Offset []int
	A      float64
}

// Filter is a minimum-phase helix filter descriptor built once and
// shared read-only across apply calls; the apply methods never modify
// it, while RefitWilsonBurg updates its lag coefficients in place. The
// constructor does
// not verify minimum phase: unstable lag tables yield unbounded
// inverse outputs, a documented precondition rather than a checked
// error.
type Filter struct {
	shape   []int
	strides []int
	a0      float64
	lags    []Lag
}

// NewMinPhaseFilter builds a filter over an N-D array of the given
// shape (innermost axis last) from the constant term a0 and the
// lag-coefficient list. a0 must be non-zero so the causal inverse's
// division is well-defined.
func NewMinPhaseFilter(shape []int, a0 float64, lags []Lag) (*Filter, error) {
	if len(shape) == 0 {
		return nil, &cerr.InvalidArgument{Context: "helix.NewMinPhaseFilter", Reason: "shape must have at least one axis"}
	}
	if a0 == 0 {
		return nil, &cerr.InvalidArgument{Context: "helix.NewMinPhaseFilter", Reason: "a0 must be non-zero"}
	}
	for _, lag := range lags {
		if len(lag.Offset) != len(shape) {
			return nil, &cerr.InvalidArgument{Context: "helix.NewMinPhaseFilter", Reason: "lag offset dimensionality must match shape"}
		}
	}
	strides := make([]int, len(shape))
	strides[len(shape)-1] = 1
	for i := len(shape) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * shape[i+1]
	}
	f := &Filter{
		shape:   append([]int(nil), shape...),
		strides: strides,
		a0:      a0,
		lags:    append([]Lag(nil), lags...),
	}
	return f, nil
}

func (f *Filter) size() int {
	n := 1
	for _, s := range f.shape {
		n *= s
	}
	return n
}

// coord converts a flat row-major index into per-axis coordinates.
func (f *Filter) coord(i int, out []int) {
	for a := range f.shape {
		out[a] = (i / f.strides[a]) % f.shape[a]
	}
}

// flatOffsetInBounds returns the flat offset of coord - sign*lag.Offset
// and whether every component stays within [0, shape[a]).
func (f *Filter) flatOffsetInBounds(coord []int, lag Lag, sign int) (int, bool) {
	off := 0
	for a, c := range coord {
		v := c - sign*lag.Offset[a]
		if v < 0 || v >= f.shape[a] {
			return 0, false
		}
		off += v * f.strides[a]
	}
	return off, true
}

func (f *Filter) checkBuffers(x, y []float64) error {
	n := f.size()
	if len(x) != n || len(y) != n {
		return &cerr.InsufficientBuffer{Context: "helix", Required: n, Got: len(x)}
	}
	return nil
}

// Apply computes the forward filter y[i] = a0*x[i] + sum_j aj*x[i-lj],
// scanning in increasing flat index order. Because every lag reads an
// earlier sample x[i-lj], which an aliased y has already overwritten,
// x and y may alias only if no lag reaches an in-bounds sample;
// callers wanting true in-place semantics should copy x aside first.
func (f *Filter) Apply(x, y []float64) error {
	if err := f.checkBuffers(x, y); err != nil {
		return err
	}
	n := f.size()
	coord := make([]int, len(f.shape))
	for i := 0; i < n; i++ {
		f.coord(i, coord)
		v := f.a0 * x[i]
		for _, lag := range f.lags {
			if off, ok := f.flatOffsetInBounds(coord, lag, 1); ok {
				v += lag.A * x[off]
			}
		}
		y[i] = v
	}
	return nil
}

// ApplyTranspose computes the time-reversed convolution
// y[i] = a0*x[i] + sum_j aj*x[i+lj], scanning in decreasing flat index
// order.
func (f *Filter) ApplyTranspose(x, y []float64) error {
	if err := f.checkBuffers(x, y); err != nil {
		return err
	}
	n := f.size()
	coord := make([]int, len(f.shape))
	for i := n - 1; i >= 0; i-- {
		f.coord(i, coord)
		v := f.a0 * x[i]
		for _, lag := range f.lags {
			if off, ok := f.flatOffsetInBounds(coord, lag, -1); ok {
				v += lag.A * x[off]
			}
		}
		y[i] = v
	}
	return nil
}

// ApplyInverse solves A*y = x by forward substitution:
// y[i] = (x[i] - sum_j aj*y[i-lj]) / a0, scanning in increasing flat
// index order so every y[i-lj] referenced has already been produced.
func (f *Filter) ApplyInverse(x, y []float64) error {
	if err := f.checkBuffers(x, y); err != nil {
		return err
	}
	n := f.size()
	coord := make([]int, len(f.shape))
	for i := 0; i < n; i++ {
		f.coord(i, coord)
		v := x[i]
		for _, lag := range f.lags {
			if off, ok := f.flatOffsetInBounds(coord, lag, 1); ok {
				v -= lag.A * y[off]
			}
		}
		y[i] = v / f.a0
	}
	return nil
}

// ApplyInverseTranspose solves A^T*y = x by backward substitution over
// the same lag pattern, scanning in decreasing flat index order.
func (f *Filter) ApplyInverseTranspose(x, y []float64) error {
	if err := f.checkBuffers(x, y); err != nil {
		return err
	}
	n := f.size()
	coord := make([]int, len(f.shape))
	for i := n - 1; i >= 0; i-- {
		f.coord(i, coord)
		v := x[i]
		for _, lag := range f.lags {
			if off, ok := f.flatOffsetInBounds(coord, lag, -1); ok {
				v -= lag.A * y[off]
			}
		}
		y[i] = v / f.a0
	}
	return nil
}
