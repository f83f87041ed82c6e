// Package fft implements the prime-factor complex-to-complex transform
// (C2) and the real-to-complex/complex-to-real wrapper built on top of
// it (C3). Complex numbers are packed as interleaved [re, im, re, im, ...]
// float32 pairs, matching the binary layout used at every real/complex
// boundary in this library.
package fft

import (
	"github.com/andewx/corefft/cerr"
)

// Complex is an immutable plan for a length-N prime-factor
// complex-to-complex FFT. Build one with NewComplex and reuse it
// across any number of calls and goroutines: it holds no mutable
// state.
type Complex struct {
	n       int
	factors []int // descending, pairwise coprime, product == n
}

// NewComplex builds a plan for a length-n complex FFT. n must appear
// in the PFA valid-length table (see NFFTSmall); any other n fails
// with *cerr.InvalidArgument.
func NewComplex(n int) (*Complex, error) {
	if n < 1 || !IsValidLength(n) {
		return nil, &cerr.InvalidArgument{Context: "fft.NewComplex", Reason: "n is not a valid PFA transform length"}
	}
	return &Complex{n: n, factors: factorize(n)}, nil
}

// Len returns the transform length the plan was built for.
func (c *Complex) Len() int { return c.n }

// Apply computes Z_k = sum_n z_n * exp(sign*2*pi*i*n*k/N) in place on
// the packed-complex array in, writing the result to out. sign must be
// +1 (forward) or -1 (inverse, unscaled). in and out may alias the
// same backing array; both must be at least 2*N float32s long.
func (c *Complex) Apply(sign int, in, out []float32) error {
	if sign != 1 && sign != -1 {
		return &cerr.InvalidArgument{Context: "fft.Complex.Apply", Reason: "sign must be +1 or -1"}
	}
	need := 2 * c.n
	if len(in) < need {
		return &cerr.InsufficientBuffer{Context: "fft.Complex.Apply (in)", Required: need, Got: len(in)}
	}
	if len(out) < need {
		return &cerr.InsufficientBuffer{Context: "fft.Complex.Apply (out)", Required: need, Got: len(out)}
	}

	z := make([]complex128, c.n)
	for i := 0; i < c.n; i++ {
		z[i] = complex(float64(in[2*i]), float64(in[2*i+1]))
	}
	Z := pfa(z, c.factors, sign)
	for i := 0; i < c.n; i++ {
		out[2*i] = float32(real(Z[i]))
		out[2*i+1] = float32(imag(Z[i]))
	}
	return nil
}

// ApplyInverse computes the unnormalized inverse transform (sign -1)
// and scales the result by 1/N, recovering the original sequence given
// the forward transform's output.
func (c *Complex) ApplyInverse(in, out []float32) error {
	if err := c.Apply(-1, in, out); err != nil {
		return err
	}
	scale := float32(1.0 / float64(c.n))
	need := 2 * c.n
	for i := 0; i < need; i++ {
		out[i] *= scale
	}
	return nil
}

// pfa is the recursive prime-factor-algorithm core shared by every
// supported factor combination. factors is the descending,
// pairwise-coprime decomposition of len(z). At each level it splits
// n = p*q (p = factors[0], q = product of the rest, gcd(p,q)=1) using
// the classical Good-Thomas index maps instead of a Cooley-Tukey
// decimation:
//
//   - input (Ruritanian) map: the flat sample at time index n1*q+n2*p
//     (mod n) is gathered into group n2's n1'th slot, n1 in [0,p),
//     n2 in [0,q). Because gcd(p,q)=1 this map is a bijection onto
//     [0,n), by the Chinese Remainder Theorem.
//   - output (CRT) map: the p-point transform over n1 produces an
//     index k1 in [0,p); the length-q recursion over n2 produces k2 in
//     [0,q). The two are combined into the unique flat frequency index
//     k in [0,n) satisfying k = k1 (mod p) and k = k2 (mod q).
//
// W_n^{n*k} factors exactly into W_p^{n1*k1} * W_q^{n2*k2} under these
// maps (W_n^q = W_p and W_n^p = W_q), so no twiddle factor is needed
// between the two stages - the defining property of the prime-factor
// algorithm - and the CRT output map writes every result directly to
// its natural flat index, so no separate unscrambling pass is needed
// either.
func pfa(z []complex128, factors []int, sign int) []complex128 {
	n := len(z)
	if n <= 1 {
		out := make([]complex128, n)
		copy(out, z)
		return out
	}
	p := factors[0]
	rest := factors[1:]
	q := n / p

	groups := make([][]complex128, q)
	for n2 := 0; n2 < q; n2++ {
		group := make([]complex128, p)
		for n1 := 0; n1 < p; n1++ {
			group[n1] = z[(n1*q+n2*p)%n]
		}
		groups[n2] = group
	}

	// Stage 1: a p-point butterfly across n1, independently for each
	// n2, producing rows[k1][n2].
	rows := make([][]complex128, p)
	for k1 := range rows {
		rows[k1] = make([]complex128, q)
	}
	for n2 := 0; n2 < q; n2++ {
		y := radixButterfly(p, groups[n2], sign)
		for k1 := 0; k1 < p; k1++ {
			rows[k1][n2] = y[k1]
		}
	}

	// Stage 2: recurse over the remaining coprime factors for each k1
	// row, then scatter every (k1,k2) result to its CRT-combined flat
	// index.
	out := make([]complex128, n)
	for k1 := 0; k1 < p; k1++ {
		z2 := pfa(rows[k1], rest, sign)
		for k2 := 0; k2 < q; k2++ {
			out[crtCombine(k1, p, k2, q)] = z2[k2]
		}
	}
	return out
}

// crtCombine returns the unique k in [0, p*q) with k = k1 (mod p) and
// k = k2 (mod q), for coprime p, q.
func crtCombine(k1, p, k2, q int) int {
	n := p * q
	if q == 1 {
		return k1 % n
	}
	if p == 1 {
		return k2 % n
	}
	qInv := modInverse(q, p)
	pInv := modInverse(p, q)
	k := (k1*q*qInv + k2*p*pInv) % n
	if k < 0 {
		k += n
	}
	return k
}

// modInverse returns the inverse of a modulo m via the extended
// Euclidean algorithm, for coprime a, m.
func modInverse(a, m int) int {
	_, x, _ := extGCD(a%m, m)
	return ((x % m) + m) % m
}

func extGCD(a, b int) (g, x, y int) {
	if b == 0 {
		return a, 1, 0
	}
	g, x1, y1 := extGCD(b, a%b)
	return g, y1, x1 - (a/b)*y1
}
