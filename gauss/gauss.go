// Package gauss implements Deriche's 4th-order recursive approximation
// to the Gaussian and its first two derivatives (C4), applied as a
// causal forward sweep followed by an anticausal backward sweep for a
// zero-phase response, composable across any subset of axes of an
// N-dimensional array.
package gauss

import (
	"math"

	"github.com/andewx/corefft/cerr"
)

// derichePrototype is the published Deriche (1993) 8-element parameter
// set for one derivative order: (a0, a1, b0, b1, c0, c1, w0, w1). These
// eight numbers are independent of sigma; the per-sigma coefficients
// below are derived from them by substituting b/sigma and w/sigma into
// the closed-form recursion coefficients.
type derichePrototype struct {
	a0, a1, b0, b1, c0, c1, w0, w1 float64
}

var prototypes = [3]derichePrototype{
	{a0: 1.6800, a1: 3.7350, b0: 1.7830, b1: 1.7230, c0: -0.6803, c1: -0.2598, w0: 0.6318, w1: 1.9970},
	{a0: -0.6472, a1: -4.5310, b0: 1.5270, b1: 1.5160, c0: 0.6494, c1: 0.9557, w0: 0.6719, w1: 2.0720},
	{a0: -1.3310, a1: 3.6610, b0: 1.2400, b1: 1.3140, c0: 0.3225, c1: -1.7380, w0: 0.7480, w1: 2.1660},
}

// taps holds the four-tap forward numerator (n0..n3) and denominator
// (d1..d4) for the causal sweep.
type taps struct {
	n0, n1, n2, n3 float64
	d1, d2, d3, d4 float64
}

// bwdTaps holds the anticausal sweep's four numerator taps (n1..n4,
// indexed by x[i+1]..x[i+4]) together with the denominator it shares
// with the causal sweep.
type bwdTaps struct {
	n1, n2, n3, n4 float64
	d1, d2, d3, d4 float64
}

// order holds the forward- and backward-sweep taps for one derivative
// degree, already normalized so that filtering a unit impulse
// satisfies the order's moment constraint.
type order struct {
	fwd taps
	bwd bwdTaps
}

// Gaussian is an immutable Deriche recursive Gaussian descriptor for a
// fixed sigma, built once and shared read-only across calls.
type Gaussian struct {
	sigma  float64
	orders [3]order
}

// NewRecursiveGaussian builds the 0th, 1st, and 2nd derivative
// coefficient sets for the given standard deviation.
func NewRecursiveGaussian(sigma float64) (*Gaussian, error) {
	if !(sigma > 0) {
		return nil, &cerr.InvalidArgument{Context: "gauss.NewRecursiveGaussian", Reason: "sigma must be positive"}
	}
	g := &Gaussian{sigma: sigma}
	for d := 0; d < 3; d++ {
		g.orders[d] = buildOrder(prototypes[d], sigma, d)
	}
	return g, nil
}

func buildOrder(p derichePrototype, sigma float64, d int) order {
	b0 := p.b0 / sigma
	b1 := p.b1 / sigma
	w0 := p.w0 / sigma
	w1 := p.w1 / sigma

	eb0, eb1 := math.Exp(-b0), math.Exp(-b1)
	cw0, sw0 := math.Cos(w0), math.Sin(w0)
	cw1, sw1 := math.Cos(w1), math.Sin(w1)

	n0 := p.a0 + p.c0
	n1 := eb1*(p.c1*sw1-(p.c0+2*p.a0)*cw1) + eb0*(p.a1*sw0-(2*p.c0+p.a0)*cw0)
	n2 := 2*eb0*eb1*((p.a0+p.c0)*cw1*cw0-p.a1*cw1*sw0-p.c1*cw0*sw1) + p.c0*eb0*eb0 + p.a0*eb1*eb1
	n3 := eb1*eb0*eb0*(p.c1*sw1-p.c0*cw1) + eb0*eb1*eb1*(p.a1*sw0-p.a0*cw0)

	d1 := -2*eb0*cw0 - 2*eb1*cw1
	d2 := 4*cw0*cw1*eb0*eb1 + eb0*eb0 + eb1*eb1
	d3 := -2*cw1*eb1*eb0*eb0 - 2*cw0*eb0*eb1*eb1
	d4 := eb0 * eb0 * eb1 * eb1

	fwd := taps{n0: n0, n1: n1, n2: n2, n3: n3, d1: d1, d2: d2, d3: d3, d4: d4}

	// Sign flips for odd derivative orders, per the backward-sweep
	// rule in §4.4.
	sign := 1.0
	if d%2 == 1 {
		sign = -1.0
	}
	bwd := bwdTaps{
		n1: sign * (n1 - d1*n0),
		n2: sign * (n2 - d2*n0),
		n3: sign * (n3 - d3*n0),
		n4: sign * (-d4 * n0),
		d1: d1, d2: d2, d3: d3, d4: d4,
	}

	scale := normalizationScale(fwd, bwd, d, sigma)
	fwd.n0 *= scale
	fwd.n1 *= scale
	fwd.n2 *= scale
	fwd.n3 *= scale
	bwd.n1 *= scale
	bwd.n2 *= scale
	bwd.n3 *= scale
	bwd.n4 *= scale

	return order{fwd: fwd, bwd: bwd}
}

// normalizationScale filters a centered unit impulse on a window of
// length 1+2*floor(20*sigma) with the unscaled taps and returns the
// factor that makes the result satisfy the order's moment constraint
// (sum=1 for d=0, -sum(t*h)=1 for d=1, sum(t^2*h)/2=1 for d=2).
func normalizationScale(fwd taps, bwd bwdTaps, d int, sigma float64) float64 {
	half := int(20 * sigma)
	n := 1 + 2*half
	x := make([]float64, n)
	x[half] = 1

	y := sweep(fwd, x)
	h := sweepBackwardInto(bwd, x, y)

	var m float64
	for i, v := range h {
		t := float64(i - half)
		switch d {
		case 0:
			m += v
		case 1:
			m += -t * v
		case 2:
			m += 0.5 * t * t * v
		}
	}
	if m == 0 {
		return 1
	}
	return 1 / m
}

// sweep runs the causal forward recursion over x, producing y.
func sweep(c taps, x []float64) []float64 {
	n := len(x)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		v := c.n0 * x[i]
		if i-1 >= 0 {
			v += c.n1*x[i-1] - c.d1*y[i-1]
		}
		if i-2 >= 0 {
			v += c.n2*x[i-2] - c.d2*y[i-2]
		}
		if i-3 >= 0 {
			v += c.n3*x[i-3] - c.d3*y[i-3]
		}
		if i-4 >= 0 {
			v -= c.d4 * y[i-4]
		}
		y[i] = v
	}
	return y
}

// sweepBackwardInto runs the anticausal recursion over x using the
// backward numerator taps (n1..n4) and the denominator shared with the
// forward pass (d1..d4), accumulating the result into a copy of y and
// returning the combined zero-phase output.
func sweepBackwardInto(c bwdTaps, x []float64, y []float64) []float64 {
	n := len(x)
	z := make([]float64, n)
	out := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		var v float64
		if i+1 < n {
			v += c.n1*x[i+1] - c.d1*z[i+1]
		}
		if i+2 < n {
			v += c.n2*x[i+2] - c.d2*z[i+2]
		}
		if i+3 < n {
			v += c.n3*x[i+3] - c.d3*z[i+3]
		}
		if i+4 < n {
			v += c.n4*x[i+4] - c.d4*z[i+4]
		}
		z[i] = v
		out[i] = y[i] + z[i]
	}
	return out
}

// Apply1D runs the zero-phase forward+backward Deriche filter for
// derivative order d (0, 1, or 2) over a single 1-D signal, writing
// the result into y. x and y may not alias; callers needing in-place
// semantics must copy x aside first.
func (g *Gaussian) Apply1D(d int, x, y []float64) error {
	if d < 0 || d > 2 {
		return &cerr.InvalidArgument{Context: "gauss.Apply1D", Reason: "derivative order must be 0, 1, or 2"}
	}
	if len(x) != len(y) {
		return &cerr.InsufficientBuffer{Context: "gauss.Apply1D", Required: len(x), Got: len(y)}
	}
	if len(x) > 0 && &x[0] == &y[0] {
		return &cerr.AliasViolation{Context: "gauss.Apply1D"}
	}
	ord := g.orders[d]
	fy := sweep(ord.fwd, x)
	out := sweepBackwardInto(ord.bwd, x, fy)
	copy(y, out)
	return nil
}

// Volume is a flat row-major N-dimensional array, the data model the
// multi-axis Deriche composition operates over.
type Volume struct {
	Shape []int
	Data  []float64
}

// NewVolume allocates a zeroed volume of the given shape.
func NewVolume(shape []int) *Volume {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return &Volume{Shape: append([]int(nil), shape...), Data: make([]float64, n)}
}

// ApplyDerivative composes per-axis Deriche passes, one per entry of
// orders (orders[a] is the derivative degree along axis a, or -1 to
// skip that axis entirely). Composition proceeds innermost axis first;
// Deriche's separability guarantees this matches any other axis order.
func (g *Gaussian) ApplyDerivative(v *Volume, orders []int) (*Volume, error) {
	if len(orders) != len(v.Shape) {
		return nil, &cerr.InvalidArgument{Context: "gauss.ApplyDerivative", Reason: "orders must have one entry per axis"}
	}
	cur := &Volume{Shape: v.Shape, Data: append([]float64(nil), v.Data...)}
	for axis := len(v.Shape) - 1; axis >= 0; axis-- {
		d := orders[axis]
		if d < 0 {
			continue
		}
		if d > 2 {
			return nil, &cerr.InvalidArgument{Context: "gauss.ApplyDerivative", Reason: "derivative order must be 0, 1, or 2"}
		}
		next := make([]float64, len(cur.Data))
		if err := g.applyAxis(d, cur, axis, next); err != nil {
			return nil, err
		}
		cur = &Volume{Shape: cur.Shape, Data: next}
	}
	return cur, nil
}

// applyAxis filters every 1-D line of cur along axis, writing into out
// (already allocated to len(cur.Data)).
func (g *Gaussian) applyAxis(d int, cur *Volume, axis int, out []float64) error {
	shape := cur.Shape
	strides := make([]int, len(shape))
	strides[len(shape)-1] = 1
	for i := len(shape) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * shape[i+1]
	}

	lineLen := shape[axis]
	lineStride := strides[axis]
	total := len(cur.Data)
	numLines := total / lineLen

	line := make([]float64, lineLen)
	result := make([]float64, lineLen)

	for lineIdx := 0; lineIdx < numLines; lineIdx++ {
		base := lineBase(lineIdx, shape, strides, axis)
		for i := 0; i < lineLen; i++ {
			line[i] = cur.Data[base+i*lineStride]
		}
		if err := g.Apply1D(d, line, result); err != nil {
			return err
		}
		for i := 0; i < lineLen; i++ {
			out[base+i*lineStride] = result[i]
		}
	}
	return nil
}

// lineBase computes the flat offset of the 0th element of the
// lineIdx-th line running along axis, given lineIdx enumerates the
// remaining axes in row-major order.
func lineBase(lineIdx int, shape, strides []int, axis int) int {
	base := 0
	rem := lineIdx
	for a := len(shape) - 1; a >= 0; a-- {
		if a == axis {
			continue
		}
		base += (rem % shape[a]) * strides[a]
		rem /= shape[a]
	}
	return base
}
