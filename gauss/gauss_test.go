package gauss

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestImpulseNormalization is scenario S3 (sigma=2) together with
// property 6: d=0, d=1, and d=2 moment constraints for sigma in
// {2,4,8}.
func TestImpulseNormalization(t *testing.T) {
	for _, sigma := range []float64{2, 4, 8} {
		g, err := NewRecursiveGaussian(sigma)
		require.NoError(t, err)

		n := 101
		mid := n / 2
		x := make([]float64, n)
		x[mid] = 1

		h0 := make([]float64, n)
		require.NoError(t, g.Apply1D(0, x, h0))
		var sum0 float64
		for _, v := range h0 {
			sum0 += v
		}
		assert.InDelta(t, 1, sum0, 1e-4, "sigma=%v d=0", sigma)

		h1 := make([]float64, n)
		require.NoError(t, g.Apply1D(1, x, h1))
		var sum1 float64
		for i, v := range h1 {
			sum1 += -float64(i-mid) * v
		}
		assert.InDelta(t, 1, sum1, 1e-3, "sigma=%v d=1", sigma)

		h2 := make([]float64, n)
		require.NoError(t, g.Apply1D(2, x, h2))
		var sum2 float64
		for i, v := range h2 {
			t := float64(i - mid)
			sum2 += 0.5 * t * t * v
		}
		assert.InDelta(t, 1, sum2, 1e-3, "sigma=%v d=2", sigma)
	}
}

// TestImpulseSumSigma2Length101 is scenario S3 exactly: d=0, sigma=2,
// length-101 unit impulse at index 50.
func TestImpulseSumSigma2Length101(t *testing.T) {
	g, err := NewRecursiveGaussian(2)
	require.NoError(t, err)
	x := make([]float64, 101)
	x[50] = 1
	y := make([]float64, 101)
	require.NoError(t, g.Apply1D(0, x, y))
	var sum float64
	for _, v := range y {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-4)
}

// TestMatchesTruncatedGaussian is property 7: for sigma=4 applied to a
// length-256 random input, the recursive d=0 filter differs from
// direct truncated-Gaussian convolution by <= 1e-3 relative RMS.
func TestMatchesTruncatedGaussian(t *testing.T) {
	const sigma = 4.0
	const n = 256
	g, err := NewRecursiveGaussian(sigma)
	require.NoError(t, err)

	x := make([]float64, n)
	seed := uint64(12345)
	for i := range x {
		seed = seed*6364136223846793005 + 1442695040888963407
		x[i] = float64(int64(seed>>11)%1000)/1000 - 0.5
	}

	y := make([]float64, n)
	require.NoError(t, g.Apply1D(0, x, y))

	half := int(4 * sigma)
	kernel := make([]float64, 2*half+1)
	var ksum float64
	for i := range kernel {
		t := float64(i - half)
		kernel[i] = math.Exp(-t * t / (2 * sigma * sigma))
		ksum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= ksum
	}

	direct := make([]float64, n)
	for i := 0; i < n; i++ {
		var v float64
		for k := -half; k <= half; k++ {
			idx := i + k
			if idx < 0 || idx >= n {
				continue
			}
			v += kernel[k+half] * x[idx]
		}
		direct[i] = v
	}

	var num, den float64
	for i := 0; i < n; i++ {
		d := y[i] - direct[i]
		num += d * d
		den += direct[i] * direct[i]
	}
	assert.LessOrEqual(t, math.Sqrt(num/den), 1e-3)
}

func TestApply1DRejectsBadOrder(t *testing.T) {
	g, err := NewRecursiveGaussian(2)
	require.NoError(t, err)
	x := make([]float64, 8)
	y := make([]float64, 8)
	require.Error(t, g.Apply1D(3, x, y))
}

func TestApply1DRejectsAlias(t *testing.T) {
	g, err := NewRecursiveGaussian(2)
	require.NoError(t, err)
	buf := make([]float64, 8)
	require.Error(t, g.Apply1D(0, buf, buf))
}

func TestApplyDerivativeComposesAxes(t *testing.T) {
	g, err := NewRecursiveGaussian(1.5)
	require.NoError(t, err)

	shape := []int{6, 7}
	v := NewVolume(shape)
	for i := range v.Data {
		v.Data[i] = math.Sin(float64(i) * 0.3)
	}

	out, err := g.ApplyDerivative(v, []int{0, 0})
	require.NoError(t, err)
	require.Equal(t, len(v.Data), len(out.Data))

	// Applying axis 1 alone should match a manual per-row Apply1D.
	onlyAxis1, err := g.ApplyDerivative(v, []int{-1, 0})
	require.NoError(t, err)
	for row := 0; row < shape[0]; row++ {
		line := make([]float64, shape[1])
		copy(line, v.Data[row*shape[1]:(row+1)*shape[1]])
		want := make([]float64, shape[1])
		require.NoError(t, g.Apply1D(0, line, want))
		for col := 0; col < shape[1]; col++ {
			assert.InDelta(t, want[col], onlyAxis1.Data[row*shape[1]+col], 1e-9)
		}
	}
}

func TestNewRecursiveGaussianRejectsNonPositiveSigma(t *testing.T) {
	_, err := NewRecursiveGaussian(0)
	require.Error(t, err)
	_, err = NewRecursiveGaussian(-1)
	require.Error(t, err)
}
