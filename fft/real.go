package fft

import (
	"math"

	"github.com/andewx/corefft/cerr"
)

// Real is an immutable plan for a real-to-complex / complex-to-real
// transform of even length N, built by packing real pairs into a
// half-length complex sequence and running Complex on it, then
// applying the post/pre-twiddle rotation of §4.3.
type Real struct {
	n    int
	half *Complex
}

// NewReal builds a plan for a length-n real FFT. n must be even and
// n/2 must be a valid PFA complex transform length (so the maximum
// supported n is 2*MaxLength).
func NewReal(n int) (*Real, error) {
	if n < 2 || n%2 != 0 {
		return nil, &cerr.InvalidArgument{Context: "fft.NewReal", Reason: "n must be even and >= 2"}
	}
	half, err := NewComplex(n / 2)
	if err != nil {
		return nil, &cerr.InvalidArgument{Context: "fft.NewReal", Reason: "n/2 is not a valid PFA transform length"}
	}
	return &Real{n: n, half: half}, nil
}

// Len returns the real sample count N the plan was built for.
func (r *Real) Len() int { return r.n }

// RealToComplex transforms n real samples in into n/2+1 packed complex
// outputs in out (length n+2), computing X_k = sum_t in[t] *
// exp(sign*2*pi*i*t*k/n) for k = 0 .. n/2. Im[0] and Im[n/2] are
// always zero. in and out may alias the same backing array provided
// out is at least as long as required; when aliasing, out must be
// sized n+2 and in read only through in[:n] of that same array.
func (r *Real) RealToComplex(sign int, in, out []float32) error {
	if sign != 1 && sign != -1 {
		return &cerr.InvalidArgument{Context: "fft.Real.RealToComplex", Reason: "sign must be +1 or -1"}
	}
	n := r.n
	if len(in) < n {
		return &cerr.InsufficientBuffer{Context: "fft.Real.RealToComplex (in)", Required: n, Got: len(in)}
	}
	if len(out) < n+2 {
		return &cerr.InsufficientBuffer{Context: "fft.Real.RealToComplex (out)", Required: n + 2, Got: len(out)}
	}
	m := n / 2

	c := make([]float32, 2*m)
	copy(c, in[:n])
	if err := r.half.Apply(sign, c, c); err != nil {
		return err
	}

	s := float64(sign)
	c0re, c0im := float64(c[0]), float64(c[1])
	out[0] = float32(c0re + c0im)
	out[1] = 0
	out[n] = float32(c0re - c0im)
	out[n+1] = 0

	for k := 1; k < m; k++ {
		mk := m - k
		ckre, ckim := float64(c[2*k]), float64(c[2*k+1])
		cmre, cmim := float64(c[2*mk]), float64(c[2*mk+1])
		// conj(C[m-k]) = (cmre, -cmim)
		are := 0.5 * (ckre + cmre)
		aim := 0.5 * (ckim - cmim)
		bre := 0.5 * (ckre - cmre)
		bim := 0.5 * (ckim + cmim)

		angle := s * 2 * math.Pi * float64(k) / float64(n)
		wi, wr := math.Sincos(angle)
		// (bre,bim) = i*O_k, so the odd-sample transform is
		// O_k = (bim, -bre); X_k = A_k + W_k*O_k, W=(wr,wi)
		xre := are + (wr*bim + wi*bre)
		xim := aim + (wi*bim - wr*bre)
		out[2*k] = float32(xre)
		out[2*k+1] = float32(xim)
	}
	return nil
}

// ComplexToReal is the exact, self-normalized inverse of
// RealToComplex: given n/2+1 packed complex samples in (length n+2,
// with Im[0]=Im[n/2]=0) built with the same sign, it recovers n real
// samples in out (length n) such that
// ComplexToReal(sign, RealToComplex(sign, x, .), .) reproduces x to
// floating-point rounding error.
func (r *Real) ComplexToReal(sign int, in, out []float32) error {
	if sign != 1 && sign != -1 {
		return &cerr.InvalidArgument{Context: "fft.Real.ComplexToReal", Reason: "sign must be +1 or -1"}
	}
	n := r.n
	if len(in) < n+2 {
		return &cerr.InsufficientBuffer{Context: "fft.Real.ComplexToReal (in)", Required: n + 2, Got: len(in)}
	}
	if len(out) < n {
		return &cerr.InsufficientBuffer{Context: "fft.Real.ComplexToReal (out)", Required: n, Got: len(out)}
	}
	m := n / 2
	s := float64(sign)

	c := make([]float32, 2*m)
	x0, xm := float64(in[0]), float64(in[n])
	c[0] = float32(0.5 * (x0 + xm))
	c[1] = float32(0.5 * (x0 - xm))

	for k := 1; k < m; k++ {
		mk := m - k
		xkre, xkim := float64(in[2*k]), float64(in[2*k+1])
		xmre, xmim := float64(in[2*mk]), float64(in[2*mk+1])
		// conj(X[m-k]) = (xmre, -xmim)
		are := 0.5 * (xkre + xmre)
		aim := 0.5 * (xkim - xmim)
		dre := 0.5 * (xkre - xmre)
		dim := 0.5 * (xkim + xmim)

		// B_k = (dre + i*dim) * conj(W_k), W_k = exp(sign*2*pi*i*k/n)
		angle := s * 2 * math.Pi * float64(k) / float64(n)
		wi, wr := math.Sincos(angle)
		bre := dre*wr + dim*wi
		bim := dim*wr - dre*wi

		c[2*k] = float32(are - bim)
		c[2*k+1] = float32(aim + bre)
	}

	// c now holds C_k = A_k + i*B_k for k=0..m-1; invert the half-length
	// forward transform (built with the same sign) and undo its 1/m
	// scaling, recovering the packed even/odd real samples.
	if err := r.half.Apply(-sign, c, c); err != nil {
		return err
	}
	scale := float32(1.0 / float64(m))
	for j := 0; j < m; j++ {
		out[2*j] = c[2*j] * scale
		out[2*j+1] = c[2*j+1] * scale
	}
	return nil
}
