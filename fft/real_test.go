package fft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRealFFTImpulseN8 is scenario S2: N=8 real FFT of
// [0,1,0,0,0,0,0,0], sign=-1, expecting the listed complex outputs.
func TestRealFFTImpulseN8(t *testing.T) {
	plan, err := NewReal(8)
	require.NoError(t, err)

	in := []float32{0, 1, 0, 0, 0, 0, 0, 0}
	out := make([]float32, 10)
	require.NoError(t, plan.RealToComplex(-1, in, out))

	want := [][2]float64{
		{1, 0},
		{0.707107, -0.707107},
		{0, -1},
		{-0.707107, -0.707107},
		{-1, 0},
	}
	for k, w := range want {
		assert.InDelta(t, w[0], float64(out[2*k]), 1e-5, "re[%d]", k)
		assert.InDelta(t, w[1], float64(out[2*k+1]), 1e-5, "im[%d]", k)
	}
}

func TestRealFFTRoundTrip(t *testing.T) {
	for _, n := range []int{2, 8, 16, 2 * 45, 2 * 144} {
		plan, err := NewReal(n)
		require.NoError(t, err)

		x := make([]float32, n)
		for i := range x {
			x[i] = float32(math.Sin(float64(i)) + 0.1*float64(i%5))
		}

		freq := make([]float32, n+2)
		require.NoError(t, plan.RealToComplex(1, x, freq))
		assert.InDelta(t, 0, float64(freq[1]), 1e-5)
		assert.InDelta(t, 0, float64(freq[n+1]), 1e-5)

		back := make([]float32, n)
		require.NoError(t, plan.ComplexToReal(1, freq, back))

		var maxAbs, maxErr float32
		for i := range x {
			if a := abs32(x[i]); a > maxAbs {
				maxAbs = a
			}
			if e := abs32(back[i] - x[i]); e > maxErr {
				maxErr = e
			}
		}
		assert.LessOrEqual(t, float64(maxErr), 1e-4*float64(maxAbs)+1e-5, "n=%d", n)
	}
}

func TestNewRealRejectsOddLength(t *testing.T) {
	_, err := NewReal(7)
	require.Error(t, err)
}

func TestRealMaxLength(t *testing.T) {
	_, err := NewReal(2 * MaxLength)
	require.NoError(t, err)
}
